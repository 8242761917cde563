package domain

import (
	"strings"
	"time"
)

// Status is the final verdict of a validation run.
type Status string

const (
	StatusPending              Status = "PENDING"
	StatusApproved             Status = "APPROVED"
	StatusFailed               Status = "FAILED"
	StatusRequiresManualAction Status = "REQUIRES_MANUAL_ACTION"
)

// ValidationRun is one execution of the compliance pipeline for a ticket.
// The accumulator slices are append-only: stages add entries, nothing
// removes them. Status is derived once at the end of the run.
type ValidationRun struct {
	ID              string            `json:"id"`
	TicketID        string            `json:"ticket_id"`
	Evaluator       string            `json:"evaluator"`
	StartedAt       time.Time         `json:"started_at"`
	StagesCompleted []string          `json:"stages_completed"`
	StagesTotal     int               `json:"stages_total"`
	Errors          []string          `json:"errors"`
	Warnings        []string          `json:"warnings"`
	ManualActions   []string          `json:"manual_actions"`
	RecordID        string            `json:"record_id,omitempty"`
	Status          Status            `json:"status"`
	Components      []Component       `json:"components,omitempty"`
	VersionChanges  []VersionChange   `json:"version_changes,omitempty"`
	Checklist       []ChecklistEntry  `json:"checklist,omitempty"`
	Scores          []ComplianceScore `json:"scores,omitempty"`
}

func (r *ValidationRun) AddError(msg string)        { r.Errors = append(r.Errors, msg) }
func (r *ValidationRun) AddWarning(msg string)      { r.Warnings = append(r.Warnings, msg) }
func (r *ValidationRun) AddManualAction(msg string) { r.ManualActions = append(r.ManualActions, msg) }

func (r *ValidationRun) CompleteStage(name string) {
	r.StagesCompleted = append(r.StagesCompleted, name)
}

// DeriveStatus computes the final verdict from the accumulator:
// FAILED wins over everything, then REQUIRES_MANUAL_ACTION, then APPROVED.
func DeriveStatus(errors, manualActions []string) Status {
	switch {
	case len(errors) > 0:
		return StatusFailed
	case len(manualActions) > 0:
		return StatusRequiresManualAction
	default:
		return StatusApproved
	}
}

// Finalize freezes the run's status. Called exactly once by the orchestrator.
func (r *ValidationRun) Finalize() {
	r.Status = DeriveStatus(r.Errors, r.ManualActions)
}

// Component is a named deployable unit under validation. Version is the
// version declared for deployment; RepositoryURL may be empty when the
// ticket source does not know the component's repository.
type Component struct {
	Name          string `json:"name"`
	Version       string `json:"version,omitempty"`
	RepositoryURL string `json:"repository_url,omitempty"`

	// Stereotype is filled in after reconciliation against the
	// architecture model; empty until then.
	Stereotype Stereotype `json:"stereotype,omitempty"`
}

// ParseComponentList extracts components from free-form text, one per line.
// Two line formats are accepted: "name -> version" and "name: version".
// Blank lines and lines matching neither format are skipped.
func ParseComponentList(text string) []Component {
	var components []Component
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		var name, version string
		switch {
		case strings.Contains(line, "->"):
			parts := strings.SplitN(line, "->", 2)
			name, version = strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
		case strings.Contains(line, ":") && !strings.HasPrefix(line, "{"):
			parts := strings.SplitN(line, ":", 2)
			name, version = strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
		}

		if name == "" {
			continue
		}
		components = append(components, Component{Name: name, Version: version})
	}
	return components
}
