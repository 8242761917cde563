package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/releasegate/releasegate/internal/adapters/outbound/tui"
	"github.com/releasegate/releasegate/internal/domain"
)

func newValidateCmd() *cobra.Command {
	var (
		configDir  string
		evaluator  string
		logLevel   string
		jsonOutput bool
		strict     bool
	)

	cmd := &cobra.Command{
		Use:   "validate <ticket-id>",
		Short: "Run the full four-stage compliance validation for a ticket",
		Long:  "Validate the ticket's declared components against the technical vision, create a documentation record, classify version changes, and inspect repositories. The run always completes; the exit code reflects the final status.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configDir)
			if err != nil {
				return err
			}

			log, err := newLogger(logLevel)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			svc := newPipelineService(cfg, log)
			run := svc.RunValidation(cmd.Context(), args[0], evaluator)

			if jsonOutput {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				if err := enc.Encode(run); err != nil {
					return err
				}
			} else {
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderRun(run))
			}

			switch run.Status {
			case domain.StatusFailed:
				return fmt.Errorf("validation failed: %d error(s)", len(run.Errors))
			case domain.StatusRequiresManualAction:
				if strict {
					return fmt.Errorf("validation requires manual action: %d item(s)", len(run.ManualActions))
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&configDir, "config", ".", "Directory containing .releasegate.yaml")
	cmd.Flags().StringVar(&evaluator, "evaluator", "releasegate", "Name recorded as the evaluator on the documentation record")
	cmd.Flags().StringVar(&logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the run as JSON")
	cmd.Flags().BoolVar(&strict, "strict", false, "Exit non-zero when manual actions remain")

	return cmd
}
