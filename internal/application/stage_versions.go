package application

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/releasegate/releasegate/internal/domain"
	"github.com/releasegate/releasegate/internal/domain/version"
)

// runVersionCheck classifies every component's proposed version against the
// production baseline. Version drift is advisory: major bumps become
// warnings, unresolvable lookups become manual actions, and the stage never
// halts the pipeline.
func (s *PipelineService) runVersionCheck(ctx context.Context, run *domain.ValidationRun) stageOutcome {
	registry := timeoutRegistry{inner: s.registry, timeout: s.cfg.Timeout()}
	batch := version.ClassifyAll(ctx, run.Components, registry, s.cfg.EffectiveConcurrency())
	run.VersionChanges = batch.Changes

	if len(batch.MajorChanges) > 0 {
		run.AddWarning(fmt.Sprintf("Stage 3: major version changes detected for: %s",
			strings.Join(batch.MajorChanges, ", ")))
	}

	if len(batch.LookupErrors) > 0 {
		run.AddWarning(fmt.Sprintf("Stage 3: could not check versions for: %s",
			strings.Join(batch.LookupErrors, ", ")))
		for _, name := range batch.LookupErrors {
			run.AddManualAction(fmt.Sprintf("Manually verify production version for %s", name))
		}
	}

	if len(batch.Changes) > 0 {
		actx, cancel := s.callCtx(ctx)
		err := s.sink.AppendVersionChanges(actx, run.RecordID, batch.Changes)
		cancel()
		if err != nil {
			// The record is already open; a failed append must not fail
			// the release.
			run.AddWarning(fmt.Sprintf("Stage 3: appending version changes to record: %v", err))
		}
	}

	run.CompleteStage(StageVersionCheck)
	return stageContinue
}

// timeoutRegistry bounds each baseline lookup with the configured per-call
// timeout, so one slow lookup cannot stall the whole batch.
type timeoutRegistry struct {
	inner   domain.ProductionRegistry
	timeout time.Duration
}

func (t timeoutRegistry) ProductionVersion(ctx context.Context, component string) (string, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return t.inner.ProductionVersion(ctx, component)
}
