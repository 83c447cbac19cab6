package cli

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yakumwamba/lpg-delivery-access/internal/application/dto"
)

// passwordEnv variable alternativa a --password para scripts.
const passwordEnv = "ZAMGAS_PASSWORD"

func newSignInCommand(app *App) *cobra.Command {
	var in dto.SignInRequest
	var passwordStdin bool

	cmd := &cobra.Command{
		Use:   "signin",
		Short: "Iniciar sesión y guardar la sesión",
		Long: `Autentica contra el backend y persiste credencial e identidad.

Sin --password se lee de ZAMGAS_PASSWORD o de la primera línea de stdin.

Ejemplos:
  adminctl signin --email admin@zamgas.com
  echo "$PASS" | adminctl signin --email admin@zamgas.com --password-stdin
  adminctl signin --email cliente@x.com --audience user`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if in.Password == "" {
				pw, err := readPassword(cmd.InOrStdin(), passwordStdin)
				if err != nil {
					return err
				}
				in.Password = pw
			}
			identity, _, err := app.authUC.SignIn(cmd.Context(), app.store, in)
			if err != nil {
				return fmt.Errorf("inicio de sesión: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "sesión iniciada: %s (%s)\n", identity.Email, describeRole(app))
			return nil
		},
	}
	cmd.Flags().StringVar(&in.Email, "email", "", "email de la cuenta")
	cmd.Flags().StringVar(&in.Password, "password", "", "password (preferir ZAMGAS_PASSWORD o --password-stdin)")
	cmd.Flags().BoolVar(&passwordStdin, "password-stdin", false, "leer el password de stdin")
	cmd.Flags().StringVar(&in.Audience, "audience", dto.AudienceAdmin, "admin o user")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func readPassword(stdin io.Reader, fromStdin bool) (string, error) {
	if !fromStdin {
		if pw := os.Getenv(passwordEnv); pw != "" {
			return pw, nil
		}
	}
	line, err := bufio.NewReader(stdin).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("leer password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func describeRole(app *App) string {
	if app.store.IsAdmin() {
		return "admin " + app.store.AdminRole()
	}
	if id := app.store.Identity(); id != nil {
		return string(id.Role)
	}
	return "sin sesión"
}

func newSignOutCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "signout",
		Short: "Cerrar la sesión y borrar los slots guardados",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app.authUC.SignOut(cmd.Context(), app.store)
			fmt.Fprintln(cmd.OutOrStdout(), "sesión cerrada")
			return nil
		},
	}
}

func newWhoAmICommand(app *App) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Mostrar la sesión actual",
		RunE: func(cmd *cobra.Command, _ []string) error {
			snap := app.store.Snapshot()
			out := cmd.OutOrStdout()
			if asJSON {
				resp := dto.SessionResponse{
					IsAdmin:       snap.IsAdmin(),
					AdminRole:     snap.AdminRole(),
					Authenticated: snap.IsAuthenticated(),
				}
				if snap.Identity != nil {
					resp.User = *snap.Identity
				}
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(resp)
			}
			if !snap.IsAuthenticated() {
				fmt.Fprintln(out, "sin sesión")
				return nil
			}
			id := snap.Identity
			fmt.Fprintf(out, "id:          %s\n", id.ID)
			fmt.Fprintf(out, "email:       %s\n", id.Email)
			fmt.Fprintf(out, "nombre:      %s\n", id.Name)
			fmt.Fprintf(out, "rol:         %s\n", id.Role)
			if snap.IsAdmin() {
				fmt.Fprintf(out, "subrol:      %s\n", snap.AdminRole())
			}
			if id.HasPermissionSet() {
				fmt.Fprintf(out, "permisos:    %s\n", strings.Join(id.Permissions, ", "))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "salida JSON")
	return cmd
}
