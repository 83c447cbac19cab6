package cli_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yakumwamba/lpg-delivery-access/internal/application/session"
	"github.com/yakumwamba/lpg-delivery-access/internal/domain"
	"github.com/yakumwamba/lpg-delivery-access/internal/domain/entity"
	"github.com/yakumwamba/lpg-delivery-access/internal/infrastructure/memory"
	"github.com/yakumwamba/lpg-delivery-access/internal/interfaces/cli"
	"github.com/yakumwamba/lpg-delivery-access/pkg/jwt"
)

type fakeAuthenticator struct{}

func (fakeAuthenticator) AdminSignIn(_ context.Context, email, password string) (entity.Identity, string, error) {
	if email == "admin@zamgas.com" && password == "secret" {
		return entity.Identity{
			ID: "a1", Email: email, Name: "Ana", Role: entity.RoleAdmin,
			AdminSubrole: entity.SubroleAnalyst, Permissions: []string{entity.PermViewAnalytics},
		}, "adm-tok", nil
	}
	return entity.Identity{}, "", domain.ErrInvalidCredentials
}

func (fakeAuthenticator) SignIn(_ context.Context, email, _ string) (entity.Identity, string, error) {
	return entity.Identity{ID: "u1", Email: email, Role: entity.RoleCustomer}, "usr-tok", nil
}

// run ejecuta adminctl como un proceso nuevo sobre el mismo almacenamiento.
func run(t *testing.T, kv *memory.KVStore, v *viper.Viper, stdin string, args ...string) (string, error) {
	t.Helper()
	if v == nil {
		v = viper.New()
	}
	stderr := new(bytes.Buffer)
	root := cli.NewRootCommand(cli.Options{
		Viper:         v,
		Authenticator: fakeAuthenticator{},
		Storage:       kv,
		Stderr:        stderr,
	})
	out := new(bytes.Buffer)
	root.SetOut(out)
	root.SetErr(stderr)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestRoot_Help(t *testing.T) {
	out, err := run(t, memory.NewKVStore(), nil, "", "--help")
	require.NoError(t, err)
	for _, c := range []string{"signin", "signout", "whoami", "can", "menu", "token"} {
		assert.Contains(t, out, c)
	}
}

func TestSignIn_PersisteYOtroProcesoRestaura(t *testing.T) {
	kv := memory.NewKVStore()

	out, err := run(t, kv, nil, "", "signin", "--email", "admin@zamgas.com", "--password", "secret")
	require.NoError(t, err)
	assert.Contains(t, out, "admin analyst")

	slots := kv.Dump()
	assert.Equal(t, "adm-tok", slots[session.CredentialKey])
	assert.Contains(t, slots[session.IdentityKey], `"admin_role":"analyst"`)

	out, err = run(t, kv, nil, "", "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "admin@zamgas.com")
	assert.Contains(t, out, "analyst")

	out, err = run(t, kv, nil, "", "token")
	require.NoError(t, err)
	assert.Equal(t, "adm-tok\n", out)
}

func TestSignIn_PasswordDesdeStdin(t *testing.T) {
	kv := memory.NewKVStore()

	_, err := run(t, kv, nil, "secret\n", "signin", "--email", "admin@zamgas.com", "--password-stdin")
	require.NoError(t, err)
	assert.NotEmpty(t, kv.Dump()[session.CredentialKey])
}

func TestSignIn_CredencialesInvalidas_NoTocaLaSesion(t *testing.T) {
	kv := memory.NewKVStore()

	_, err := run(t, kv, nil, "", "signin", "--email", "admin@zamgas.com", "--password", "mala")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	assert.Empty(t, kv.Dump())
}

func TestSignOut_BorraSlotsYEsIdempotente(t *testing.T) {
	kv := memory.NewKVStore()
	_, err := run(t, kv, nil, "", "signin", "--email", "admin@zamgas.com", "--password", "secret")
	require.NoError(t, err)

	for range 2 {
		_, err = run(t, kv, nil, "", "signout")
		require.NoError(t, err)
		assert.Empty(t, kv.Dump())
	}

	out, err := run(t, kv, nil, "", "whoami")
	require.NoError(t, err)
	assert.Equal(t, "sin sesión\n", out)
}

func TestCan(t *testing.T) {
	kv := memory.NewKVStore()

	// Sin sesión: un requisito se deniega
	out, err := run(t, kv, nil, "", "can", "view_users")
	assert.ErrorIs(t, err, cli.ErrDenied)
	assert.Contains(t, out, "permission_missing")

	// Sin requisito: permitido
	_, err = run(t, kv, nil, "", "can")
	assert.NoError(t, err)

	_, err = run(t, kv, nil, "", "signin", "--email", "admin@zamgas.com", "--password", "secret")
	require.NoError(t, err)

	// Con subrol: bypass
	out, err = run(t, kv, nil, "", "can", "edit_users", "delete_users", "--all")
	require.NoError(t, err)
	assert.Contains(t, out, "admin_bypass")
}

func TestCan_ClienteNoEsAdmin(t *testing.T) {
	kv := memory.NewKVStore()
	_, err := run(t, kv, nil, "", "signin", "--email", "c@x.com", "--password", "x", "--audience", "user")
	require.NoError(t, err)

	_, err = run(t, kv, nil, "", "can", "edit_users")
	assert.ErrorIs(t, err, cli.ErrDenied)
}

func TestMenu(t *testing.T) {
	kv := memory.NewKVStore()

	out, err := run(t, kv, nil, "", "menu")
	require.NoError(t, err)
	assert.Contains(t, out, "Dashboard")
	assert.NotContains(t, out, "Users")

	_, err = run(t, kv, nil, "", "menu", "--page", "users")
	assert.ErrorIs(t, err, cli.ErrDenied)

	_, err = run(t, kv, nil, "", "signin", "--email", "admin@zamgas.com", "--password", "secret")
	require.NoError(t, err)

	out, err = run(t, kv, nil, "", "menu", "--page", "users")
	require.NoError(t, err)
	assert.Contains(t, out, `"page": "users"`)

	_, err = run(t, kv, nil, "", "menu", "--page", "nope")
	assert.Error(t, err)
}

func TestToken_SinSesion(t *testing.T) {
	_, err := run(t, memory.NewKVStore(), nil, "", "token")
	assert.Error(t, err)
}

func TestTokenMint(t *testing.T) {
	v := viper.New()
	v.Set("JWT_SECRET", "dev-secret")
	v.Set("APP_ENV", "development")

	out, err := run(t, memory.NewKVStore(), v, "", "token", "mint", "--admin-id", "a7", "--role", "support")
	require.NoError(t, err)

	claims, err := jwt.ParseAdmin("dev-secret", strings.TrimSpace(out))
	require.NoError(t, err)
	assert.Equal(t, "a7", claims.AdminID)
	assert.Equal(t, "support", claims.Role)
}

func TestStorageFlag_ValidaDriver(t *testing.T) {
	_, err := run(t, memory.NewKVStore(), nil, "", "--storage", "floppy", "whoami")
	assert.Error(t, err)
}
