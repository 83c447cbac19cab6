package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yakumwamba/lpg-delivery-access/internal/application/access"
	"github.com/yakumwamba/lpg-delivery-access/internal/application/admin"
)

func newMenuCommand(app *App) *cobra.Command {
	var page string
	cmd := &cobra.Command{
		Use:   "menu",
		Short: "Mostrar el menú del panel (o una página) visible para la sesión",
		RunE: func(cmd *cobra.Command, _ []string) error {
			snap := app.store.Snapshot()
			out := cmd.OutOrStdout()
			if page == "" {
				for _, item := range admin.Menu(snap) {
					fmt.Fprintf(out, "%-12s %s\n", item.Label, item.Href)
				}
				return nil
			}
			p, ok := admin.Lookup(page)
			if !ok {
				return fmt.Errorf("página desconocida %q", page)
			}
			if !access.Evaluate(snap, p.View) {
				return fmt.Errorf("%w: página %s", ErrDenied, page)
			}
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(admin.Render(snap, p))
		},
	}
	cmd.Flags().StringVar(&page, "page", "", "página a renderizar (dashboard, users, orders...)")
	return cmd
}
