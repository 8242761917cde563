// Package reconcile matches requested components against the architecture
// model and runs the strict pre-approval gate.
package reconcile

import (
	"strings"

	"github.com/releasegate/releasegate/internal/domain"
)

// Reconcile matches requested components against the model's elements.
// A request matches an element when the element is an application component
// and the requested name appears as a case-insensitive substring of the
// element's name, not the reverse, since modeled names may carry longer
// prefixes or suffixes than the ticket-declared name. The first matching
// element in model order wins; no re-sorting. Every requested name lands in
// exactly one of Found or Missing.
func Reconcile(requested []domain.Component, elements []domain.ArchitectureElement) domain.ReconcileResult {
	result := domain.ReconcileResult{
		Found: make(map[string]domain.ElementMatch, len(requested)),
	}

	for _, comp := range requested {
		needle := strings.ToLower(comp.Name)
		matched := false
		for _, el := range elements {
			if !el.IsApplicationComponent() {
				continue
			}
			if strings.Contains(strings.ToLower(el.Name), needle) {
				result.Found[comp.Name] = domain.ElementMatch{
					ElementName: el.Name,
					Stereotype:  el.Stereotype,
				}
				matched = true
				break
			}
		}
		if !matched {
			result.Missing = append(result.Missing, comp.Name)
		}
	}

	if len(requested) > 0 {
		result.SuccessRate = float64(len(result.Found)) / float64(len(requested))
	}
	return result
}

// ValidateApproved runs the strict pre-approval gate: every requested name
// must be an exact member of the approved set. This is deliberately a
// different operation from Reconcile: substring matching must never widen
// the approval gate.
func ValidateApproved(requested, approved []string) domain.ApprovalResult {
	approvedSet := make(map[string]struct{}, len(approved))
	for _, name := range approved {
		approvedSet[name] = struct{}{}
	}

	result := domain.ApprovalResult{}
	for _, name := range requested {
		if _, ok := approvedSet[name]; ok {
			result.Approved = append(result.Approved, name)
		} else {
			result.Unapproved = append(result.Unapproved, name)
		}
	}
	result.IsValid = len(result.Unapproved) == 0
	return result
}
