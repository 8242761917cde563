// Package scoring computes weighted compliance scores and qualitative bands
// for components under validation.
package scoring

import (
	"strings"

	"github.com/releasegate/releasegate/internal/domain"
)

// Score computes the weighted compliance score for one component.
// NOT_APPLICABLE answers are excluded from both numerator and denominator.
// percentage = 100 * Σ(weight of YES) / Σ(weight of applicable), or 0 when
// no criteria apply. Any mandatory criterion answered NO forces the band to
// CRITICAL, overriding the threshold result.
func Score(evals []domain.CriterionEvaluation, criteria []domain.ComplianceCriterion) domain.ComplianceScore {
	byID := make(map[string]domain.ComplianceCriterion, len(criteria))
	for _, c := range criteria {
		byID[c.ID] = c
	}

	var totalWeight, yesWeight int
	var mandatoryFailures []string

	for _, ev := range evals {
		criterion, ok := byID[ev.CriterionID]
		if !ok || ev.Answer == domain.AnswerNotApplicable {
			continue
		}
		totalWeight += criterion.Weight
		switch ev.Answer {
		case domain.AnswerYes:
			yesWeight += criterion.Weight
		case domain.AnswerNo:
			if criterion.Mandatory {
				mandatoryFailures = append(mandatoryFailures, criterion.ID)
			}
		}
	}

	var percentage float64
	if totalWeight > 0 {
		percentage = 100 * float64(yesWeight) / float64(totalWeight)
	}

	band := BandFor(percentage)
	if len(mandatoryFailures) > 0 {
		band = domain.BandCritical
	}

	return domain.ComplianceScore{
		Percentage:        percentage,
		Band:              band,
		MandatoryFailures: mandatoryFailures,
	}
}

// BandFor maps a percentage to its qualitative band. Thresholds descend;
// the first match wins.
func BandFor(percentage float64) domain.Band {
	switch {
	case percentage >= 95:
		return domain.BandExcellent
	case percentage >= 85:
		return domain.BandVeryGood
	case percentage >= 75:
		return domain.BandGood
	case percentage >= 65:
		return domain.BandFair
	case percentage >= 50:
		return domain.BandPoor
	default:
		return domain.BandCritical
	}
}

// Evaluate derives criterion answers for a component from its inspection
// issues. A criterion answers NO when any issue mentions one of its
// keywords, NOT_APPLICABLE when its AppliesTo suffix does not match the
// component name, and YES otherwise.
func Evaluate(component string, criteria []domain.ComplianceCriterion, issues []string) []domain.CriterionEvaluation {
	evals := make([]domain.CriterionEvaluation, 0, len(criteria))
	for _, criterion := range criteria {
		ev := domain.CriterionEvaluation{CriterionID: criterion.ID, Answer: domain.AnswerYes}

		if criterion.AppliesTo != "" && !strings.HasSuffix(component, criterion.AppliesTo) {
			ev.Answer = domain.AnswerNotApplicable
			evals = append(evals, ev)
			continue
		}

		for _, issue := range issues {
			if matchesAnyKeyword(issue, criterion.Keywords) {
				ev.Answer = domain.AnswerNo
				ev.Notes = issue
				break
			}
		}
		evals = append(evals, ev)
	}
	return evals
}

func matchesAnyKeyword(issue string, keywords []string) bool {
	lowered := strings.ToLower(issue)
	for _, kw := range keywords {
		if strings.Contains(lowered, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}
