package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/releasegate/releasegate/internal/domain"
)

// PipelineService orchestrates the staged compliance validation pipeline:
// component validation → documentation record → version check →
// code/contract validation → final verdict.
//
// Each run owns its accumulator exclusively; concurrent runs for different
// tickets share no mutable state.
type PipelineService struct {
	tickets      domain.TicketSource
	architecture domain.ArchitectureSource
	registry     domain.ProductionRegistry
	sink         domain.DocumentationSink
	inspector    domain.RepositoryInspector
	cfg          domain.PipelineConfig
	log          *zap.Logger
}

// NewPipelineService wires the pipeline with its collaborators. A nil
// logger is replaced with a no-op logger.
func NewPipelineService(
	tickets domain.TicketSource,
	architecture domain.ArchitectureSource,
	registry domain.ProductionRegistry,
	sink domain.DocumentationSink,
	inspector domain.RepositoryInspector,
	cfg domain.PipelineConfig,
	log *zap.Logger,
) *PipelineService {
	if log == nil {
		log = zap.NewNop()
	}
	return &PipelineService{
		tickets:      tickets,
		architecture: architecture,
		registry:     registry,
		sink:         sink,
		inspector:    inspector,
		cfg:          cfg,
		log:          log,
	}
}

// RunValidation executes the four stages in fixed order and returns the
// completed run. The caller always receives a fully formed ValidationRun
// with an explicit status; collaborator failures are converted into
// accumulator entries, never propagated as raw errors.
//
// Cancellation is checked between stages; a cancelled run is frozen as
// FAILED with an explicit error entry.
func (s *PipelineService) RunValidation(ctx context.Context, ticketID, evaluator string) *domain.ValidationRun {
	run := &domain.ValidationRun{
		ID:          uuid.NewString(),
		TicketID:    ticketID,
		Evaluator:   evaluator,
		StartedAt:   time.Now().UTC(),
		StagesTotal: totalStages,
		Status:      domain.StatusPending,
	}

	s.log.Info("validation run started",
		zap.String("run_id", run.ID),
		zap.String("ticket", ticketID),
		zap.String("evaluator", evaluator))

	if ticketID == "" {
		run.AddError("Stage 1: ticket id is required")
		run.Finalize()
		return run
	}

	stages := []struct {
		name string
		fn   func(context.Context, *domain.ValidationRun) stageOutcome
	}{
		{StageComponentValidation, s.runComponentValidation},
		{StageRecordCreation, s.runRecordCreation},
		{StageVersionCheck, s.runVersionCheck},
		{StageCodeValidation, s.runCodeValidation},
	}

	for _, stage := range stages {
		if err := ctx.Err(); err != nil {
			run.AddError(fmt.Sprintf("run cancelled before %s: %v", stage.name, err))
			break
		}

		outcome := stage.fn(ctx, run)
		s.log.Debug("stage finished",
			zap.String("run_id", run.ID),
			zap.String("stage", stage.name),
			zap.Bool("halted", outcome == stageHalt))
		if outcome == stageHalt {
			break
		}
	}

	run.Finalize()
	s.log.Info("validation run finished",
		zap.String("run_id", run.ID),
		zap.String("ticket", ticketID),
		zap.String("status", string(run.Status)),
		zap.Int("errors", len(run.Errors)),
		zap.Int("warnings", len(run.Warnings)),
		zap.Int("manual_actions", len(run.ManualActions)))
	return run
}

// callCtx bounds a single external call with the configured timeout.
func (s *PipelineService) callCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.cfg.Timeout())
}
