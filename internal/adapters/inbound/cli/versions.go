package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/releasegate/releasegate/internal/adapters/outbound/registry"
	"github.com/releasegate/releasegate/internal/adapters/outbound/ticket"
	"github.com/releasegate/releasegate/internal/adapters/outbound/tui"
	"github.com/releasegate/releasegate/internal/domain"
	domainversion "github.com/releasegate/releasegate/internal/domain/version"
)

func newVersionsCmd() *cobra.Command {
	var (
		configDir  string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "versions <ticket-id>",
		Short: "Classify version changes for a ticket's components",
		Long:  "Fetch the ticket's declared components and classify each one against the version currently deployed in production.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configDir)
			if err != nil {
				return err
			}

			tickets := ticket.New(cfg.Ticket, cfg.Timeout())
			info, err := tickets.TicketComponents(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("fetching ticket: %w", err)
			}
			components := info.Components
			if len(components) == 0 {
				components = domain.ParseComponentList(info.RawText)
			}

			reg := registry.New(cfg.Registry, cfg.Timeout())
			batch := domainversion.ClassifyAll(cmd.Context(), components, reg, cfg.EffectiveConcurrency())

			if jsonOutput {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(batch)
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderVersionBatch(batch))
			return nil
		},
	}

	cmd.Flags().StringVar(&configDir, "config", ".", "Directory containing .releasegate.yaml")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the classification as JSON")

	return cmd
}
