package application_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/releasegate/releasegate/internal/application"
	"github.com/releasegate/releasegate/internal/domain"
)

// ── in-memory port fakes ──

type fakeTickets struct {
	info *domain.TicketInfo
	err  error
}

func (f *fakeTickets) TicketComponents(context.Context, string) (*domain.TicketInfo, error) {
	return f.info, f.err
}

type fakeArchitecture struct {
	elements    []domain.ArchitectureElement
	elementsErr error
	approved    []string
	approvedErr error
}

func (f *fakeArchitecture) ModelElements(context.Context, string) ([]domain.ArchitectureElement, error) {
	return f.elements, f.elementsErr
}

func (f *fakeArchitecture) ApprovedComponents(context.Context, string) ([]string, error) {
	return f.approved, f.approvedErr
}

type fakeRegistry struct {
	baselines map[string]string
	errs      map[string]error
}

func (f *fakeRegistry) ProductionVersion(_ context.Context, component string) (string, bool, error) {
	if err := f.errs[component]; err != nil {
		return "", false, err
	}
	baseline, ok := f.baselines[component]
	return baseline, ok, nil
}

type fakeSink struct {
	createErr    error
	appendVCErr  error
	appendCLErr  error
	recordID     string
	versionCalls [][]domain.VersionChange
	checklists   [][]domain.ChecklistEntry
}

func (f *fakeSink) CreateRecord(context.Context, string, string, []domain.Component) (string, error) {
	if f.createErr != nil {
		return "", f.createErr
	}
	if f.recordID == "" {
		f.recordID = "REC-1"
	}
	return f.recordID, nil
}

func (f *fakeSink) AppendVersionChanges(_ context.Context, _ string, changes []domain.VersionChange) error {
	f.versionCalls = append(f.versionCalls, changes)
	return f.appendVCErr
}

func (f *fakeSink) AppendChecklist(_ context.Context, _ string, entries []domain.ChecklistEntry) error {
	f.checklists = append(f.checklists, entries)
	return f.appendCLErr
}

type fakeInspector struct {
	reports map[string]*domain.InspectionReport
	errs    map[string]error
}

func (f *fakeInspector) Inspect(_ context.Context, _ string, component string) (*domain.InspectionReport, error) {
	if err := f.errs[component]; err != nil {
		return nil, err
	}
	if report, ok := f.reports[component]; ok {
		return report, nil
	}
	return &domain.InspectionReport{
		Component:         component,
		StructureValid:    true,
		DependenciesValid: true,
		HasContract:       true,
	}, nil
}

type fixture struct {
	tickets      *fakeTickets
	architecture *fakeArchitecture
	registry     *fakeRegistry
	sink         *fakeSink
	inspector    *fakeInspector
	cfg          domain.PipelineConfig
}

func newFixture() *fixture {
	return &fixture{
		tickets: &fakeTickets{info: &domain.TicketInfo{
			TicketID: "TCK-1",
			Components: []domain.Component{
				{Name: "payment-service", Version: "1.1.0", RepositoryURL: "https://git.example/payment"},
				{Name: "order-service", Version: "2.0.0", RepositoryURL: "https://git.example/order"},
			},
		}},
		architecture: &fakeArchitecture{
			approved: []string{"payment-service", "order-service"},
			elements: []domain.ArchitectureElement{
				{Name: "payment-service", Kind: "application-component", Stereotype: domain.StereotypeChanged},
				{Name: "order-service", Kind: "application-component", Stereotype: domain.StereotypeKept},
			},
		},
		registry: &fakeRegistry{baselines: map[string]string{
			"payment-service": "1.0.0",
			"order-service":   "1.9.0",
		}},
		sink:      &fakeSink{},
		inspector: &fakeInspector{},
		cfg:       domain.DefaultConfig(),
	}
}

func (f *fixture) service() *application.PipelineService {
	return application.NewPipelineService(f.tickets, f.architecture, f.registry, f.sink, f.inspector, f.cfg, nil)
}

// ── tests ──

func TestRunValidation_HappyPathWithMajorWarning(t *testing.T) {
	f := newFixture()
	run := f.service().RunValidation(context.Background(), "TCK-1", "alice")

	require.NotNil(t, run)
	assert.Equal(t, "TCK-1", run.TicketID)
	assert.Equal(t, "alice", run.Evaluator)
	assert.NotEmpty(t, run.ID)
	assert.Len(t, run.StagesCompleted, 4)
	assert.Empty(t, run.Errors)
	assert.Empty(t, run.ManualActions)
	assert.Equal(t, domain.StatusApproved, run.Status, "major bumps warn, they do not block")

	// order-service jumped 1.9.0 → 2.0.0.
	require.Len(t, run.VersionChanges, 2)
	assert.True(t, hasEntryContaining(run.Warnings, "major version changes detected for: order-service"))

	// Stereotypes were picked up from the model.
	assert.Equal(t, domain.StereotypeChanged, run.Components[0].Stereotype)

	// The record received both appends.
	assert.Equal(t, "REC-1", run.RecordID)
	require.Len(t, f.sink.versionCalls, 1)
	require.Len(t, f.sink.checklists, 1)
}

func TestRunValidation_UnapprovedComponentHalts(t *testing.T) {
	f := newFixture()
	f.architecture.approved = []string{"payment-service"}

	run := f.service().RunValidation(context.Background(), "TCK-1", "alice")

	assert.Equal(t, domain.StatusFailed, run.Status)
	assert.True(t, hasEntryContaining(run.Errors, "order-service not approved in technical vision"))
	assert.Empty(t, run.StagesCompleted, "stage 1 halts before completing")
	assert.Empty(t, run.RecordID, "no record for a rejected change")
	assert.Empty(t, f.sink.versionCalls)
}

func TestRunValidation_MissingVisionMeansZeroApprovals(t *testing.T) {
	f := newFixture()
	f.architecture.approvedErr = fmt.Errorf("vision: %w", domain.ErrNotFound)

	run := f.service().RunValidation(context.Background(), "TCK-1", "alice")

	assert.Equal(t, domain.StatusFailed, run.Status)
	assert.True(t, hasEntryContaining(run.Errors, "not approved in technical vision"))
}

func TestRunValidation_TicketFetchErrorHalts(t *testing.T) {
	f := newFixture()
	f.tickets.err = errors.New("connection refused")

	run := f.service().RunValidation(context.Background(), "TCK-1", "alice")

	assert.Equal(t, domain.StatusFailed, run.Status)
	assert.True(t, hasEntryContaining(run.Errors, "Stage 1: fetching ticket TCK-1"))
	assert.Empty(t, run.StagesCompleted)
}

func TestRunValidation_EmptyTicketHalts(t *testing.T) {
	f := newFixture()
	f.tickets.info = &domain.TicketInfo{TicketID: "TCK-1"}

	run := f.service().RunValidation(context.Background(), "TCK-1", "alice")

	assert.Equal(t, domain.StatusFailed, run.Status)
	assert.True(t, hasEntryContaining(run.Errors, "no components declared in ticket"))
}

func TestRunValidation_ComponentsParsedFromRawText(t *testing.T) {
	f := newFixture()
	f.tickets.info = &domain.TicketInfo{
		TicketID: "TCK-1",
		RawText:  "payment-service -> 1.1.0\norder-service -> 2.0.0\n",
	}

	run := f.service().RunValidation(context.Background(), "TCK-1", "alice")

	assert.Equal(t, domain.StatusApproved, run.Status)
	require.Len(t, run.Components, 2)
	assert.Equal(t, "payment-service", run.Components[0].Name)
	assert.Equal(t, "1.1.0", run.Components[0].Version)
}

func TestRunValidation_EmptyTicketID(t *testing.T) {
	f := newFixture()
	run := f.service().RunValidation(context.Background(), "", "alice")

	assert.Equal(t, domain.StatusFailed, run.Status)
	assert.True(t, hasEntryContaining(run.Errors, "ticket id is required"))
}

func TestRunValidation_RecordCreationFailureHalts(t *testing.T) {
	f := newFixture()
	f.sink.createErr = errors.New("sink down")

	run := f.service().RunValidation(context.Background(), "TCK-1", "alice")

	assert.Equal(t, domain.StatusFailed, run.Status)
	assert.True(t, hasEntryContaining(run.Errors, "Stage 2: creating documentation record"))
	assert.Equal(t, []string{"Component Validation"}, run.StagesCompleted)
	assert.Empty(t, f.sink.versionCalls, "stage 3 never ran")
}

func TestRunValidation_LookupErrorsBecomeManualActions(t *testing.T) {
	f := newFixture()
	f.registry.errs = map[string]error{"payment-service": errors.New("registry timeout")}

	run := f.service().RunValidation(context.Background(), "TCK-1", "alice")

	assert.Equal(t, domain.StatusRequiresManualAction, run.Status)
	assert.True(t, hasEntryContaining(run.Warnings, "could not check versions for: payment-service"))
	assert.True(t, hasEntryContaining(run.ManualActions, "Manually verify production version for payment-service"))
	assert.Len(t, run.StagesCompleted, 4, "lookup failures never halt the pipeline")
}

func TestRunValidation_GatewayComponentNeedsManualAction(t *testing.T) {
	f := newFixture()
	f.tickets.info.Components = append(f.tickets.info.Components,
		domain.Component{Name: "api-gateway", Version: "1.0.0"})
	f.architecture.approved = append(f.architecture.approved, "api-gateway")
	f.registry.baselines["api-gateway"] = "1.0.0"

	run := f.service().RunValidation(context.Background(), "TCK-1", "alice")

	assert.Equal(t, domain.StatusRequiresManualAction, run.Status)

	var gatewayActions int
	for _, action := range run.ManualActions {
		if strings.Contains(action, "api-gateway") {
			gatewayActions++
		}
	}
	assert.Equal(t, 1, gatewayActions, "exactly one manual action per gateway component")

	var manualEntry bool
	for _, entry := range run.Checklist {
		if entry.Item == "Gateway endpoint validation" && entry.Component == "api-gateway" {
			manualEntry = entry.Result == domain.CheckManual
		}
	}
	assert.True(t, manualEntry)
}

func TestRunValidation_AppendFailuresAreWarnings(t *testing.T) {
	f := newFixture()
	f.sink.appendVCErr = errors.New("write failed")
	f.sink.appendCLErr = errors.New("write failed")

	run := f.service().RunValidation(context.Background(), "TCK-1", "alice")

	assert.Equal(t, domain.StatusApproved, run.Status, "append failures must not fail the release")
	assert.True(t, hasEntryContaining(run.Warnings, "Stage 3: appending version changes"))
	assert.True(t, hasEntryContaining(run.Warnings, "Stage 4: appending checklist"))
	assert.Len(t, run.StagesCompleted, 4)
}

func TestRunValidation_FailedInspectionIsAdvisory(t *testing.T) {
	f := newFixture()
	f.inspector.errs = map[string]error{"payment-service": errors.New("clone failed")}

	run := f.service().RunValidation(context.Background(), "TCK-1", "alice")

	assert.Equal(t, domain.StatusRequiresManualAction, run.Status)
	assert.True(t, hasEntryContaining(run.Warnings, "could not inspect repository for payment-service"))
	assert.True(t, hasEntryContaining(run.ManualActions, "Manually validate code and contracts for payment-service"))
}

func TestRunValidation_MissingContractFailsChecklist(t *testing.T) {
	f := newFixture()
	f.inspector.reports = map[string]*domain.InspectionReport{
		"payment-service": {
			Component:         "payment-service",
			StructureValid:    true,
			DependenciesValid: true,
			HasContract:       false,
		},
	}

	run := f.service().RunValidation(context.Background(), "TCK-1", "alice")

	var contractEntry *domain.ChecklistEntry
	for i := range run.Checklist {
		if run.Checklist[i].Item == "API contract validation" && run.Checklist[i].Component == "payment-service" {
			contractEntry = &run.Checklist[i]
		}
	}
	require.NotNil(t, contractEntry)
	assert.Equal(t, domain.CheckFail, contractEntry.Result)
	assert.True(t, hasEntryContaining(run.Warnings, "API contract validation"))
}

func TestRunValidation_ScoresEveryComponent(t *testing.T) {
	f := newFixture()
	f.inspector.reports = map[string]*domain.InspectionReport{
		"payment-service": {
			Component:      "payment-service",
			StructureValid: true,
			HasContract:    true,
			Issues:         []string{"critical security vulnerability in base image"},
		},
	}

	run := f.service().RunValidation(context.Background(), "TCK-1", "alice")

	require.Len(t, run.Scores, 2)
	byComponent := map[string]domain.ComplianceScore{}
	for _, s := range run.Scores {
		byComponent[s.Component] = s
	}

	assert.Equal(t, domain.BandCritical, byComponent["payment-service"].Band)
	assert.Contains(t, byComponent["payment-service"].MandatoryFailures, "securityScan")
	assert.Equal(t, domain.BandExcellent, byComponent["order-service"].Band)
	assert.True(t, hasEntryContaining(run.Warnings, "payment-service fails mandatory criteria"))
}

func TestRunValidation_CancelledBeforeStart(t *testing.T) {
	f := newFixture()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	run := f.service().RunValidation(ctx, "TCK-1", "alice")

	assert.Equal(t, domain.StatusFailed, run.Status)
	assert.True(t, hasEntryContaining(run.Errors, "run cancelled before Component Validation"))
	assert.Empty(t, run.StagesCompleted)
}

func TestRunValidation_ModelGapIsWarningOnly(t *testing.T) {
	f := newFixture()
	f.architecture.elements = nil
	f.architecture.elementsErr = errors.New("model unavailable")

	run := f.service().RunValidation(context.Background(), "TCK-1", "alice")

	assert.Equal(t, domain.StatusApproved, run.Status)
	assert.True(t, hasEntryContaining(run.Warnings, "could not load architecture model"))
}

func hasEntryContaining(entries []string, substr string) bool {
	for _, e := range entries {
		if strings.Contains(e, substr) {
			return true
		}
	}
	return false
}
