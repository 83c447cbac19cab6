package auth

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/yakumwamba/lpg-delivery-access/internal/application/dto"
	"github.com/yakumwamba/lpg-delivery-access/internal/domain"
	"github.com/yakumwamba/lpg-delivery-access/internal/domain/entity"
)

// Authenticator colaborador externo que valida credenciales contra el backend.
// Devuelve la identidad y el bearer token, o un error de autenticación.
type Authenticator interface {
	AdminSignIn(ctx context.Context, email, password string) (entity.Identity, string, error)
	SignIn(ctx context.Context, email, password string) (entity.Identity, string, error)
}

// SessionWriter las dos únicas operaciones que mutan una sesión (lo implementa *session.Store).
type SessionWriter interface {
	Establish(ctx context.Context, identity entity.Identity, credential string)
	Terminate(ctx context.Context)
}

// UseCase inicio y cierre de sesión. Establish solo se invoca con resultados ya validados.
type UseCase struct {
	authn    Authenticator
	validate *validator.Validate
	log      zerolog.Logger
}

// NewUseCase construye el caso de uso de auth.
func NewUseCase(authn Authenticator, log zerolog.Logger) *UseCase {
	return &UseCase{authn: authn, validate: validator.New(), log: log}
}

// SignIn valida la entrada, autentica contra el backend y establece la sesión en w.
// Ante cualquier error la sesión queda intacta.
func (uc *UseCase) SignIn(ctx context.Context, w SessionWriter, in dto.SignInRequest) (*entity.Identity, string, error) {
	if err := uc.validate.Struct(in); err != nil {
		return nil, "", fmt.Errorf("%w: %s", domain.ErrInvalidInput, describe(err))
	}

	var (
		identity entity.Identity
		token    string
		err      error
	)
	if in.Audience == dto.AudienceUser {
		identity, token, err = uc.authn.SignIn(ctx, in.Email, in.Password)
	} else {
		identity, token, err = uc.authn.AdminSignIn(ctx, in.Email, in.Password)
	}
	if err != nil {
		uc.log.Info().Err(err).Str("email", in.Email).Str("audience", audience(in)).Msg("inicio de sesión fallido")
		return nil, "", err
	}

	if token == "" {
		return nil, "", fmt.Errorf("%w: token vacío", domain.ErrInvalidIdentity)
	}
	if err := uc.validate.Struct(identity); err != nil {
		return nil, "", fmt.Errorf("%w: %s", domain.ErrInvalidIdentity, describe(err))
	}

	w.Establish(ctx, identity, token)
	uc.log.Info().Str("user_id", identity.ID).Str("role", string(identity.Role)).
		Str("admin_role", identity.AdminSubrole).Msg("sesión establecida")

	normalized := identity.Normalized()
	return &normalized, token, nil
}

// SignOut cierra la sesión; es idempotente.
func (uc *UseCase) SignOut(ctx context.Context, w SessionWriter) {
	w.Terminate(ctx)
}

func audience(in dto.SignInRequest) string {
	if in.Audience == "" {
		return dto.AudienceAdmin
	}
	return in.Audience
}

// describe resume los errores del validador como "campo: regla".
func describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field()+": "+fe.Tag())
	}
	slices.Sort(fields)
	return fmt.Sprint(fields)
}
