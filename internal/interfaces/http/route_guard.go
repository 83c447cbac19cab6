package http

import (
	"slices"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/yakumwamba/lpg-delivery-access/pkg/config"
)

// GuardOutcome resultado del chequeo de perímetro.
type GuardOutcome string

const (
	GuardOutside  GuardOutcome = "outside"  // fuera del prefijo protegido
	GuardPublic   GuardOutcome = "public"   // ruta pública dentro del prefijo
	GuardPass     GuardOutcome = "pass"     // cookie presente (no se valida aquí)
	GuardRedirect GuardOutcome = "redirect" // sin cookie: al login
)

// GuardDecision decisión para un request. Location solo con GuardRedirect.
type GuardDecision struct {
	Outcome  GuardOutcome
	Location string
}

// Allowed el request sigue hacia la aplicación.
func (d GuardDecision) Allowed() bool { return d.Outcome != GuardRedirect }

// GuardConfig perímetro: prefijo protegido, rutas públicas dentro de él y cookie de credencial.
type GuardConfig struct {
	Prefix      string
	SignInPath  string
	PublicPaths []string
	CookieName  string
}

// NewGuardConfig arma el perímetro desde la configuración de la app.
// La ruta de sign-in siempre queda entre las públicas.
func NewGuardConfig(g config.GuardConfig, cookie config.CookieConfig) GuardConfig {
	out := GuardConfig{
		Prefix:      strings.TrimRight(g.Prefix, "/"),
		SignInPath:  g.SignInPath,
		PublicPaths: slices.Clone(g.PublicPaths),
		CookieName:  cookie.Name,
	}
	if g.SignInPath != "" && !out.isPublic(g.SignInPath) {
		out.PublicPaths = append(out.PublicPaths, g.SignInPath)
	}
	return out
}

// Decide regla pura del perímetro: solo mira la presencia de la credencial, nunca su validez.
func (g GuardConfig) Decide(path, cookie string) GuardDecision {
	if !g.covers(path) {
		return GuardDecision{Outcome: GuardOutside}
	}
	if g.isPublic(path) {
		return GuardDecision{Outcome: GuardPublic}
	}
	if cookie == "" {
		return GuardDecision{Outcome: GuardRedirect, Location: g.SignInPath}
	}
	return GuardDecision{Outcome: GuardPass}
}

func (g GuardConfig) covers(path string) bool {
	prefix := strings.TrimRight(g.Prefix, "/")
	if prefix == "" {
		return true
	}
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}

func (g GuardConfig) isPublic(path string) bool {
	p := trimSlash(path)
	if g.SignInPath != "" && p == trimSlash(g.SignInPath) {
		return true
	}
	for _, pub := range g.PublicPaths {
		if p == trimSlash(pub) {
			return true
		}
	}
	return false
}

func trimSlash(p string) string {
	if len(p) > 1 {
		return strings.TrimSuffix(p, "/")
	}
	return p
}

// RouteGuard middleware de perímetro. Va antes de cualquier handler del prefijo protegido.
func RouteGuard(g GuardConfig, log zerolog.Logger, m *Metrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		d := g.Decide(c.Path(), c.Cookies(g.CookieName))
		m.guardOutcome(d.Outcome)
		if d.Allowed() {
			return c.Next()
		}
		log.Debug().Str("path", c.Path()).Str("location", d.Location).Msg("sin credencial, redirigiendo")
		return c.Redirect(d.Location, fiber.StatusTemporaryRedirect)
	}
}
