package domain

import "fmt"

// ChangeType classifies the semantic-version delta between a production
// baseline and a proposed deployment version.
type ChangeType string

const (
	ChangeNew     ChangeType = "NEW"
	ChangeMajor   ChangeType = "MAJOR"
	ChangeMinor   ChangeType = "MINOR"
	ChangePatch   ChangeType = "PATCH"
	ChangeNone    ChangeType = "NONE"
	ChangeUnknown ChangeType = "UNKNOWN"
)

// VersionChange is the outcome of comparing one component's proposed version
// to its production baseline. An empty Baseline means the component has not
// been deployed before.
type VersionChange struct {
	Component string     `json:"component"`
	Baseline  string     `json:"baseline_version,omitempty"`
	Proposed  string     `json:"proposed_version"`
	Type      ChangeType `json:"change_type"`

	// IsMajor is true for NEW and MAJOR changes. This flag, not the raw
	// classification, drives downstream warning emission.
	IsMajor bool `json:"is_major"`
}

// Describe renders the change as "baseline → proposed" for reports.
func (c VersionChange) Describe() string {
	switch c.Type {
	case ChangeNew:
		return fmt.Sprintf("NEW → %s", c.Proposed)
	case ChangeNone:
		return "no change"
	default:
		return fmt.Sprintf("%s → %s", c.Baseline, c.Proposed)
	}
}

// VersionBatch aggregates the results of classifying a batch of components.
// Changes preserves input order; the name slices are order-preserving
// subsets. A component that failed its baseline lookup appears only in
// LookupErrors.
type VersionBatch struct {
	Changes       []VersionChange `json:"version_changes"`
	NewComponents []string        `json:"new_components"`
	MajorChanges  []string        `json:"major_changes"`
	LookupErrors  []string        `json:"lookup_errors"`
}
