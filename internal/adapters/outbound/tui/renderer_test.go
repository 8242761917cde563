package tui_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/releasegate/releasegate/internal/adapters/outbound/tui"
	"github.com/releasegate/releasegate/internal/domain"
)

func TestRenderRun(t *testing.T) {
	run := &domain.ValidationRun{
		TicketID:        "TCK-1",
		Status:          domain.StatusRequiresManualAction,
		StagesCompleted: []string{"Component Validation", "Documentation Record Creation", "Version Check", "Code/Contract Validation"},
		StagesTotal:     4,
		RecordID:        "REC-42",
		Components: []domain.Component{
			{Name: "payment-service", Version: "2.0.0", Stereotype: domain.StereotypeChanged},
		},
		VersionChanges: []domain.VersionChange{
			{Component: "payment-service", Baseline: "1.0.0", Proposed: "2.0.0", Type: domain.ChangeMajor, IsMajor: true},
		},
		Checklist: []domain.ChecklistEntry{
			{Item: "API contract validation", Component: "payment-service", Result: domain.CheckPass, Notes: "OpenAPI contract found"},
		},
		Scores: []domain.ComplianceScore{
			{Component: "payment-service", Percentage: 80, Band: domain.BandCritical, MandatoryFailures: []string{"structuredLogging"}},
		},
		Warnings:      []string{"Stage 3: major version changes detected for: payment-service"},
		ManualActions: []string{"Manually verify production version for payment-service"},
	}

	out := tui.RenderRun(run)

	assert.Contains(t, out, "releasegate")
	assert.Contains(t, out, "TCK-1")
	assert.Contains(t, out, "REQUIRES_MANUAL_ACTION")
	assert.Contains(t, out, "stages 4/4")
	assert.Contains(t, out, "payment-service")
	assert.Contains(t, out, "1.0.0 → 2.0.0")
	assert.Contains(t, out, "API contract validation")
	assert.Contains(t, out, "CRITICAL")
	assert.Contains(t, out, "structured logging", "criterion ids are humanized")
	assert.Contains(t, out, "REC-42")
}

func TestRenderRun_PartialRunStageCount(t *testing.T) {
	run := &domain.ValidationRun{
		TicketID:        "TCK-3",
		Status:          domain.StatusFailed,
		StagesCompleted: []string{"Component Validation"},
		StagesTotal:     4,
		Errors:          []string{"Stage 2: creating documentation record: sink down"},
	}

	out := tui.RenderRun(run)
	assert.Contains(t, out, "stages 1/4")
	assert.NotContains(t, out, "%!d", "stage counter must render the count, not the slice")
}

func TestRenderRun_CleanRun(t *testing.T) {
	run := &domain.ValidationRun{
		TicketID:    "TCK-2",
		Status:      domain.StatusApproved,
		StagesTotal: 4,
	}

	out := tui.RenderRun(run)
	assert.Contains(t, out, "APPROVED")
	assert.Contains(t, out, "No findings.")
}

func TestRenderVersionBatch(t *testing.T) {
	batch := domain.VersionBatch{
		Changes: []domain.VersionChange{
			{Component: "fresh-service", Proposed: "1.0.0", Type: domain.ChangeNew, IsMajor: true},
		},
		LookupErrors: []string{"flaky-service"},
	}

	out := tui.RenderVersionBatch(batch)
	assert.Contains(t, out, "fresh-service")
	assert.Contains(t, out, "NEW → 1.0.0")
	assert.Contains(t, out, "flaky-service")
}

func TestRenderReconcile(t *testing.T) {
	result := domain.ReconcileResult{
		Found: map[string]domain.ElementMatch{
			"payment": {ElementName: "Core Payment Service", Stereotype: domain.StereotypeChanged},
		},
		Missing:     []string{"ghost-service"},
		SuccessRate: 0.5,
	}

	out := tui.RenderReconcile(result)
	assert.Contains(t, out, "Core Payment Service")
	assert.Contains(t, out, "ghost-service")
	assert.Contains(t, out, "match rate 50%")
}
