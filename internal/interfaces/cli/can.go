package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yakumwamba/lpg-delivery-access/internal/application/access"
)

func newCanCommand(app *App) *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "can [permiso...]",
		Short: "Evaluar una consulta de permisos contra la sesión actual",
		Long: `Evalúa con el mismo evaluador que usa el panel. Sin permisos la consulta no
impone requisito. Sale con error si el acceso se deniega.

Ejemplos:
  adminctl can view_users
  adminctl can edit_users delete_users        # cualquiera
  adminctl can view_users export_data --all   # todos`,
		RunE: func(cmd *cobra.Command, args []string) error {
			q := access.AnyOf(args...)
			if all {
				q = access.AllOf(args...)
			}
			d := access.Decide(app.store.Snapshot(), q)
			if d.Granted {
				fmt.Fprintf(cmd.OutOrStdout(), "permitido (%s)\n", d.Reason)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "denegado (%s)\n", d.Reason)
			return ErrDenied
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "exigir todos los permisos (por defecto basta uno)")
	return cmd
}
