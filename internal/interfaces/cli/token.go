package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yakumwamba/lpg-delivery-access/pkg/jwt"
)

func newTokenCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Imprimir el bearer token de la sesión",
		RunE: func(cmd *cobra.Command, _ []string) error {
			tok := app.store.Credential()
			if tok == "" {
				return errors.New("sin sesión")
			}
			fmt.Fprintln(cmd.OutOrStdout(), tok)
			return nil
		},
	}

	var adminID, role string
	mint := &cobra.Command{
		Use:   "mint",
		Short: "Firmar un token de admin de desarrollo con JWT_SECRET",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if app.cfg.App.Env == "production" {
				return errors.New("mint no está disponible en production")
			}
			tok, err := jwt.GenerateAdmin(app.cfg.JWT.Secret, adminID, role, app.cfg.JWT.Issuer, app.cfg.JWT.Expiration)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tok)
			return nil
		},
	}
	mint.Flags().StringVar(&adminID, "admin-id", "", "id del admin")
	mint.Flags().StringVar(&role, "role", "manager", "subrol del admin")
	_ = mint.MarkFlagRequired("admin-id")

	cmd.AddCommand(mint)
	return cmd
}
