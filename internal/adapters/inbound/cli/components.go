package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/releasegate/releasegate/internal/adapters/outbound/architecture"
	"github.com/releasegate/releasegate/internal/adapters/outbound/ticket"
	"github.com/releasegate/releasegate/internal/adapters/outbound/tui"
	"github.com/releasegate/releasegate/internal/domain"
	"github.com/releasegate/releasegate/internal/domain/reconcile"
)

func newComponentsCmd() *cobra.Command {
	var (
		configDir  string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "components <ticket-id>",
		Short: "Reconcile a ticket's components against its technical vision",
		Long:  "Fetch the ticket's declared components and match each one against the application components modeled in the linked technical vision.",
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

			visions := architecture.New(cfg.Architecture, cfg.Timeout())
			elements, err := visions.ModelElements(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("fetching architecture model: %w", err)
			}

			result := reconcile.Reconcile(components, elements)

			if jsonOutput {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(result)
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderReconcile(result))
			return nil
		},
	}

	cmd.Flags().StringVar(&configDir, "config", ".", "Directory containing .releasegate.yaml")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the reconciliation as JSON")

	return cmd
}
