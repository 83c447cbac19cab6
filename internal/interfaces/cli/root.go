// Package cli comandos de adminctl. Una sola sesión por proceso, hidratada desde el
// almacenamiento durable al arrancar e inyectada en cada comando.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/yakumwamba/lpg-delivery-access/internal/application/auth"
	"github.com/yakumwamba/lpg-delivery-access/internal/application/session"
	"github.com/yakumwamba/lpg-delivery-access/internal/domain/repository"
	"github.com/yakumwamba/lpg-delivery-access/internal/infrastructure/backend"
	"github.com/yakumwamba/lpg-delivery-access/pkg/config"
	"github.com/yakumwamba/lpg-delivery-access/pkg/logger"
)

// ErrDenied el chequeo de `can` fue denegado (sale con código distinto de cero).
var ErrDenied = errors.New("denegado")

// Options puntos de inyección; los valores nil se construyen desde la configuración.
type Options struct {
	Viper         *viper.Viper
	Authenticator auth.Authenticator
	Storage       repository.KeyValueStore
	Stderr        io.Writer
}

// App estado compartido por los comandos durante una ejecución.
type App struct {
	opts    Options
	cfg     *config.Config
	log     zerolog.Logger
	store   *session.Store
	authUC  *auth.UseCase
	closers []func() error

	cfgFile string
	verbose bool
}

// NewRootCommand arma el árbol de comandos de adminctl.
func NewRootCommand(opts Options) *cobra.Command {
	if opts.Viper == nil {
		opts.Viper = viper.New()
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	app := &App{opts: opts}

	root := &cobra.Command{
		Use:   "adminctl",
		Short: "Sesión de administración de ZamGas desde la terminal",
		Long: `adminctl inicia sesión contra el backend de ZamGas, guarda la sesión de forma
durable y responde preguntas de acceso con el mismo evaluador que usa el panel.

Ejemplos:
  adminctl signin --email admin@zamgas.com
  adminctl whoami
  adminctl can view_users edit_users --all
  adminctl menu
  adminctl signout`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return app.init(cmd.Context())
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			return app.close()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&app.cfgFile, "config", "", "archivo de configuración (formato env)")
	flags.BoolVarP(&app.verbose, "verbose", "v", false, "logs de depuración")
	flags.String("backend-url", "", "URL base del backend (BACKEND_URL)")
	flags.String("storage", "", "almacenamiento de la sesión: file, memory, redis, postgres (STORAGE_DRIVER)")
	flags.String("storage-file", "", "ruta del archivo de sesión (STORAGE_FILE_PATH)")
	flags.String("namespace", "", "namespace de la sesión en redis/postgres (STORAGE_NAMESPACE)")

	_ = opts.Viper.BindPFlag("BACKEND_URL", flags.Lookup("backend-url"))
	_ = opts.Viper.BindPFlag("STORAGE_DRIVER", flags.Lookup("storage"))
	_ = opts.Viper.BindPFlag("STORAGE_FILE_PATH", flags.Lookup("storage-file"))
	_ = opts.Viper.BindPFlag("STORAGE_NAMESPACE", flags.Lookup("namespace"))

	root.AddCommand(
		newSignInCommand(app),
		newSignOutCommand(app),
		newWhoAmICommand(app),
		newCanCommand(app),
		newMenuCommand(app),
		newTokenCommand(app),
	)
	return root
}

func (a *App) init(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if a.cfgFile != "" {
		a.opts.Viper.SetConfigFile(a.cfgFile)
	}
	cfg, err := config.LoadFrom(a.opts.Viper)
	if err != nil {
		return fmt.Errorf("cargar configuración: %w", err)
	}
	a.cfg = cfg

	level := cfg.App.LogLevel
	if a.verbose {
		level = "debug"
	}
	a.log = logger.New(logger.Config{Env: "development", Level: level, Out: a.opts.Stderr}).Component("adminctl")

	kv := a.opts.Storage
	if kv == nil {
		opened, closeFn, err := OpenStorage(ctx, cfg)
		if err != nil {
			return err
		}
		kv = opened
		a.closers = append(a.closers, closeFn)
	}

	authn := a.opts.Authenticator
	if authn == nil {
		authn = backend.NewClient(cfg.Backend)
	}
	a.authUC = auth.NewUseCase(authn, a.log)

	a.store = session.NewStore(session.NewSlotPersister(kv, session.PersisterOptions{Logger: a.log}))
	restored, err := a.store.Restore(ctx)
	if err != nil {
		// Sin almacenamiento legible la sesión arranca vacía; signin la vuelve a escribir.
		a.log.Warn().Err(err).Msg("no se pudo restaurar la sesión")
	}
	a.log.Debug().Bool("restored", restored).Str("storage", cfg.Storage.Driver).Msg("sesión cargada")
	return nil
}

func (a *App) close() error {
	var errs []error
	for _, c := range a.closers {
		if err := c(); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

// Session sesión del proceso (disponible tras PersistentPreRunE).
func (a *App) Session() *session.Store { return a.store }
