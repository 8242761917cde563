package cli

import (
	"go.uber.org/zap"

	"github.com/releasegate/releasegate/internal/adapters/outbound/architecture"
	"github.com/releasegate/releasegate/internal/adapters/outbound/config"
	"github.com/releasegate/releasegate/internal/adapters/outbound/docsink"
	"github.com/releasegate/releasegate/internal/adapters/outbound/inspector"
	"github.com/releasegate/releasegate/internal/adapters/outbound/registry"
	"github.com/releasegate/releasegate/internal/adapters/outbound/ticket"
	"github.com/releasegate/releasegate/internal/application"
	"github.com/releasegate/releasegate/internal/domain"
	"github.com/releasegate/releasegate/internal/logging"
)

// loadConfig reads .releasegate.yaml from dir, falling back to defaults.
func loadConfig(dir string) (domain.PipelineConfig, error) {
	return config.New().Load(dir)
}

// newLogger builds the CLI logger. Console encoding keeps structured fields
// readable next to the rendered output.
func newLogger(level string) (*zap.Logger, error) {
	if level == "" {
		level = "warn"
	}
	return logging.New(level, "console")
}

// newPipelineService wires the standard HTTP adapters into the service.
func newPipelineService(cfg domain.PipelineConfig, log *zap.Logger) *application.PipelineService {
	timeout := cfg.Timeout()
	return application.NewPipelineService(
		ticket.New(cfg.Ticket, timeout),
		architecture.New(cfg.Architecture, timeout),
		registry.New(cfg.Registry, timeout),
		docsink.New(cfg.DocSink, timeout),
		inspector.New(),
		cfg,
		log,
	)
}
