package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/releasegate/releasegate/internal/domain"
	"github.com/releasegate/releasegate/internal/domain/reconcile"
)

// runComponentValidation fetches the ticket's declared components and runs
// the strict pre-approval gate against the technical vision. Either step
// failing halts the pipeline: a change with unapproved components cannot
// be released.
func (s *PipelineService) runComponentValidation(ctx context.Context, run *domain.ValidationRun) stageOutcome {
	tctx, cancel := s.callCtx(ctx)
	info, err := s.tickets.TicketComponents(tctx, run.TicketID)
	cancel()
	if err != nil {
		run.AddError(fmt.Sprintf("Stage 1: fetching ticket %s: %v", run.TicketID, err))
		return stageHalt
	}
	if len(info.Components) == 0 && info.RawText != "" {
		// Some ticket sources only carry the component list in the
		// description text.
		info.Components = domain.ParseComponentList(info.RawText)
	}
	if len(info.Components) == 0 {
		run.AddError("Stage 1: no components declared in ticket")
		return stageHalt
	}

	actx, cancel := s.callCtx(ctx)
	approved, err := s.architecture.ApprovedComponents(actx, run.TicketID)
	cancel()
	switch {
	case errors.Is(err, domain.ErrNotFound):
		// No technical vision means zero approvals, not a skipped gate.
		approved = nil
	case err != nil:
		run.AddError(fmt.Sprintf("Stage 1: fetching approved components: %v", err))
		return stageHalt
	}

	names := make([]string, len(info.Components))
	for i, c := range info.Components {
		names[i] = c.Name
	}

	approval := reconcile.ValidateApproved(names, approved)
	if !approval.IsValid {
		run.AddError(fmt.Sprintf("Stage 1: %s not approved in technical vision",
			strings.Join(approval.Unapproved, ", ")))
		return stageHalt
	}

	run.Components = info.Components
	s.attachStereotypes(ctx, run)
	run.CompleteStage(StageComponentValidation)
	return stageContinue
}

// attachStereotypes reconciles the approved components against the model's
// elements to pick up lifecycle stereotypes. Advisory only: the approval
// gate has already passed, so model gaps become warnings, never errors.
func (s *PipelineService) attachStereotypes(ctx context.Context, run *domain.ValidationRun) {
	mctx, cancel := s.callCtx(ctx)
	elements, err := s.architecture.ModelElements(mctx, run.TicketID)
	cancel()
	if err != nil {
		run.AddWarning(fmt.Sprintf("Stage 1: could not load architecture model: %v", err))
		return
	}

	result := reconcile.Reconcile(run.Components, elements)
	for i := range run.Components {
		if match, ok := result.Found[run.Components[i].Name]; ok {
			run.Components[i].Stereotype = match.Stereotype
		}
	}
	if len(result.Missing) > 0 {
		run.AddWarning(fmt.Sprintf("Stage 1: not present in architecture model: %s",
			strings.Join(result.Missing, ", ")))
	}
}
