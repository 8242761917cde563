package application

import (
	"context"
	"fmt"

	"github.com/releasegate/releasegate/internal/domain"
)

// runRecordCreation opens the documentation record that the remaining
// stages append to. A run with no record cannot be audited, so creation
// failure halts the pipeline.
func (s *PipelineService) runRecordCreation(ctx context.Context, run *domain.ValidationRun) stageOutcome {
	cctx, cancel := s.callCtx(ctx)
	recordID, err := s.sink.CreateRecord(cctx, run.TicketID, run.Evaluator, run.Components)
	cancel()
	if err != nil {
		run.AddError(fmt.Sprintf("Stage 2: creating documentation record: %v", err))
		return stageHalt
	}

	run.RecordID = recordID
	run.CompleteStage(StageRecordCreation)
	return stageContinue
}
