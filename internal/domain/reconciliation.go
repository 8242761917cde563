package domain

// ElementMatch records which modeled element a requested component matched
// and the lifecycle stereotype the model assigns to it.
type ElementMatch struct {
	ElementName string     `json:"element_name"`
	Stereotype  Stereotype `json:"stereotype"`
}

// ReconcileResult is the outcome of matching requested components against
// the architecture model. Every requested name lands in exactly one of
// Found or Missing.
type ReconcileResult struct {
	Found   map[string]ElementMatch `json:"found"`
	Missing []string                `json:"missing"`

	// SuccessRate is |Found| / |requested|, 0 for empty input.
	SuccessRate float64 `json:"success_rate"`
}

// ApprovalResult is the outcome of the strict pre-approval gate: an exact
// membership test of requested names against the approved set.
type ApprovalResult struct {
	IsValid    bool     `json:"is_valid"`
	Approved   []string `json:"approved"`
	Unapproved []string `json:"unapproved"`
}
