package domain

// Answer is the response to one compliance criterion for one component.
type Answer string

const (
	AnswerYes           Answer = "YES"
	AnswerNo            Answer = "NO"
	AnswerNotApplicable Answer = "NOT_APPLICABLE"
)

// ComplianceCriterion is one weighted yes/no/not-applicable question from
// the architecture compliance checklist.
type ComplianceCriterion struct {
	ID          string `json:"id" yaml:"id"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Weight      int    `json:"weight" yaml:"weight"`
	Mandatory   bool   `json:"mandatory" yaml:"mandatory"`

	// Keywords mark a criterion as failed when an inspection issue
	// mentions any of them.
	Keywords []string `json:"keywords,omitempty" yaml:"keywords,omitempty"`

	// AppliesTo restricts the criterion to components whose name carries
	// the given suffix. Empty means the criterion applies to everything.
	AppliesTo string `json:"applies_to,omitempty" yaml:"applies_to,omitempty"`
}

// CriterionEvaluation is the answer for one (component, criterion) pair.
type CriterionEvaluation struct {
	CriterionID string `json:"criterion_id"`
	Answer      Answer `json:"answer"`
	Notes       string `json:"notes,omitempty"`
}

// Band is the qualitative compliance band derived from the weighted score.
type Band string

const (
	BandExcellent Band = "EXCELLENT"
	BandVeryGood  Band = "VERY_GOOD"
	BandGood      Band = "GOOD"
	BandFair      Band = "FAIR"
	BandPoor      Band = "POOR"
	BandCritical  Band = "CRITICAL"
)

// ComplianceScore is the derived per-component compliance result.
// If MandatoryFailures is non-empty the band is CRITICAL regardless of
// the percentage.
type ComplianceScore struct {
	Component         string   `json:"component,omitempty"`
	Percentage        float64  `json:"percentage"`
	Band              Band     `json:"band"`
	MandatoryFailures []string `json:"mandatory_failures,omitempty"`
}

// ChecklistResult is the outcome of one checklist item.
type ChecklistResult string

const (
	CheckPass   ChecklistResult = "PASS"
	CheckFail   ChecklistResult = "FAIL"
	CheckManual ChecklistResult = "MANUAL"
)

// ChecklistEntry is one item of the consolidated code/contract checklist
// appended to the documentation record.
type ChecklistEntry struct {
	Item      string          `json:"item"`
	Component string          `json:"component,omitempty"`
	Result    ChecklistResult `json:"result"`
	Notes     string          `json:"notes,omitempty"`
}
