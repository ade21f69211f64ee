package clients

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/brunosoares877/Crefaz/internal/config"
	"github.com/brunosoares877/Crefaz/internal/metrics"
	"github.com/brunosoares877/Crefaz/internal/partner"
)

func TestRegisterProfiles_OverridesAndAdds(t *testing.T) {
	reg := partner.NewRegistry()
	enable := true

	err := RegisterProfiles(reg, map[string]config.ProfileConfig{
		"production": {
			Timeout:    45 * time.Second,
			EnableLogs: &enable,
			Endpoints:  map[string]string{"leads": "/v2/leads"},
		},
		"sandbox": {BaseURL: "https://sandbox.example.com", ClientID: "sb"},
	})
	require.NoError(t, err)

	prod, err := reg.Lookup("production")
	require.NoError(t, err)
	require.Equal(t, 45*time.Second, prod.Timeout)
	require.True(t, prod.EnableLogs)
	require.Equal(t, "/v2/leads", prod.Endpoints.Leads)
	require.Equal(t, "/clients", prod.Endpoints.Clients)
	require.Equal(t, "https://api.crefaz.com.br", prod.BaseURL)

	sb, err := reg.Lookup("sandbox")
	require.NoError(t, err)
	require.Equal(t, "sb", sb.ClientID)
	require.Equal(t, partner.DefaultTimeout, sb.Timeout)
	require.Equal(t, "/oauth/token", sb.Endpoints.Auth)
}

func TestRegisterProfiles_Errors(t *testing.T) {
	reg := partner.NewRegistry()

	err := RegisterProfiles(reg, map[string]config.ProfileConfig{
		"staging": {Endpoints: map[string]string{"invoices": "/invoices"}},
	})
	require.Error(t, err)

	// Новый профиль без base_url не регистрируется.
	err = RegisterProfiles(reg, map[string]config.ProfileConfig{"qa": {ClientID: "x"}})
	require.Error(t, err)
}

func TestProfile_TopLevelOverrides(t *testing.T) {
	reg := partner.NewRegistry()

	p, err := Profile(reg, config.PartnerConfig{
		Environment:  "STAGING",
		ClientID:     "cid",
		ClientSecret: "secret",
	})
	require.NoError(t, err)
	require.Equal(t, "staging", p.Name)
	require.Equal(t, "cid", p.ClientID)
	require.Equal(t, "secret", p.ClientSecret)

	_, err = Profile(reg, config.PartnerConfig{Environment: "mars"})
	require.ErrorIs(t, err, partner.ErrUnknownEnvironment)
}

func TestNew_MemoryStorage(t *testing.T) {
	cfg := config.Config{
		Partner: config.PartnerConfig{
			Environment:  "local",
			ForwardLeads: true,
			SingleFlight: true,
		},
		Storage: config.StorageConfig{Driver: "memory"},
	}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	cl, err := New(context.Background(), cfg, log, metrics.New(prometheus.NewRegistry()))
	require.NoError(t, err)
	defer cl.Close()

	require.Equal(t, "local", cl.Partner.Environment().Name)
	require.NotNil(t, cl.Resources.Leads)
	require.NotNil(t, cl.Leads)
	require.False(t, cl.Partner.TokenInfo().HasToken)
}

func TestOpenStorage_UnknownDriver(t *testing.T) {
	_, err := OpenStorage(context.Background(), config.Config{Storage: config.StorageConfig{Driver: "mongo"}})
	require.Error(t, err)
}

func TestClients_ProfileFor(t *testing.T) {
	reg := partner.NewRegistry()
	require.NoError(t, RegisterProfiles(reg, map[string]config.ProfileConfig{
		"sandbox": {BaseURL: "https://sandbox.example.com", ClientSecret: "own"},
	}))

	cfg := config.PartnerConfig{
		Environment:  "staging",
		BaseURL:      "https://staging.internal",
		ClientID:     "cid",
		ClientSecret: "secret",
	}
	c := &Clients{Registry: reg, partnerCfg: cfg}

	p, err := c.ProfileFor("staging")
	require.NoError(t, err)
	require.Equal(t, "https://staging.internal", p.BaseURL)
	require.Equal(t, "cid", p.ClientID)
	require.Equal(t, "secret", p.ClientSecret)

	p, err = c.ProfileFor("production")
	require.NoError(t, err)
	require.Equal(t, "https://api.crefaz.com.br", p.BaseURL)
	require.Equal(t, "86feaeec-b8ca-4c9c-acb4-bb301e4165f1", p.ClientID)
	require.Empty(t, p.ClientSecret, "секрет стартового окружения не уходит в чужое")

	p, err = c.ProfileFor("sandbox")
	require.NoError(t, err)
	require.Equal(t, "own", p.ClientSecret)

	_, err = c.ProfileFor("mars")
	require.ErrorIs(t, err, partner.ErrUnknownEnvironment)
}
