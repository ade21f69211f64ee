package partner

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRegistry_BuiltinProfiles(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	require.Equal(t, []string{"local", "production", "staging"}, r.Names())

	local, err := r.Lookup("LOCAL")
	require.NoError(t, err)
	require.Equal(t, 10*time.Second, local.Timeout)
	require.True(t, local.EnableLogs)

	prod, err := r.Lookup(EnvProduction)
	require.NoError(t, err)
	require.Equal(t, 30*time.Second, prod.Timeout)
	require.False(t, prod.EnableLogs)
	require.Equal(t, "/oauth/token", prod.Endpoints.Auth)
	require.Equal(t, DefaultRateLimitPerMinute, prod.RateLimitPerMinute)
}

func TestRegistry_LookupUnknown(t *testing.T) {
	t.Parallel()

	_, err := NewRegistry().Lookup("qa")
	require.ErrorIs(t, err, ErrUnknownEnvironment)
}

func TestRegistry_LookupReturnsCopy(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	p, err := r.Lookup(EnvStaging)
	require.NoError(t, err)

	p.BaseURL = "http://mutated"
	p.Endpoints.Leads = "/mutated"

	again, err := r.Lookup(EnvStaging)
	require.NoError(t, err)
	require.Equal(t, "https://api.crefaz.com.br", again.BaseURL)
	require.Equal(t, "/leads", again.Endpoints.Leads)
}

func TestRegistry_Register(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	require.Error(t, r.Register(EnvironmentProfile{}))
	require.Error(t, r.Register(EnvironmentProfile{Name: "qa"}))

	require.NoError(t, r.Register(EnvironmentProfile{Name: "QA", BaseURL: "https://qa.example.com"}))
	qa, err := r.Lookup("qa")
	require.NoError(t, err)
	require.Equal(t, "qa", qa.Name)
	require.Equal(t, "/oauth/token", qa.Endpoints.Auth)
}

func TestEndpoints_WithAndPath(t *testing.T) {
	t.Parallel()

	e := DefaultEndpoints()
	e2, err := e.With("leads", "/v2/leads")
	require.NoError(t, err)

	p, ok := e2.Path(ResourceLeads)
	require.True(t, ok)
	require.Equal(t, "/v2/leads", p)

	p, _ = e.Path(ResourceLeads)
	require.Equal(t, "/leads", p, "исходное значение не изменилось")

	e3, err := e.With("auth", "/token")
	require.NoError(t, err)
	require.Equal(t, "/token", e3.Auth)

	_, err = e.With("payments", "/p")
	require.Error(t, err)

	_, ok = Endpoints{}.Path(ResourceUsers)
	require.False(t, ok)
}

func TestProfile_URL(t *testing.T) {
	t.Parallel()

	p := EnvironmentProfile{BaseURL: "https://api.crefaz.com.br/"}
	require.Equal(t, "https://api.crefaz.com.br/leads", p.URL("/leads"))
	require.Equal(t, "https://api.crefaz.com.br/leads", p.URL("leads"))
	require.Equal(t, "https://api.crefaz.com.br", p.URL(""))
	require.Equal(t, "https://other.example.com/x", p.URL("https://other.example.com/x"))
}

func TestAccessToken_Valid(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	tok := &AccessToken{Value: "v", ObtainedAt: now, ExpiresIn: time.Hour}

	require.True(t, tok.Valid(now))
	require.True(t, tok.Valid(now.Add(time.Hour-SafetyMargin-time.Nanosecond)))
	require.False(t, tok.Valid(now.Add(time.Hour-SafetyMargin)))

	var nilTok *AccessToken
	require.False(t, nilTok.Valid(now))
	require.False(t, (&AccessToken{ObtainedAt: now, ExpiresIn: time.Hour}).Valid(now))
}
