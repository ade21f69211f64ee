package cli

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func fakePartner(t *testing.T) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		switch r.Method + " " + r.URL.Path {
		case "POST /oauth/token":
			_, _ = io.WriteString(w, `{"access_token":"secret-token","expires_in":3600}`)
		case "GET /health":
			w.WriteHeader(http.StatusOK)
		case "GET /leads":
			_, _ = io.WriteString(w, `{"data":[{"id":"l1","nome":"Maria","cpf":"12345678909","status":"novo"}],"pagination":{"currentPage":1,"totalPages":1,"totalItems":1}}`)
		case "POST /leads":
			_, _ = io.WriteString(w, `{"data":{"id":"l2","nome":"Ana"},"success":true}`)
		case "GET /custom":
			_, _ = io.WriteString(w, `{"echo":"`+r.URL.Query().Get("x")+`"}`)
		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, `{"message":"não encontrado"}`)
		}
	}))
	t.Cleanup(srv.Close)

	return srv
}

func writeConfig(t *testing.T, baseURL string) string {
	t.Helper()

	data := fmt.Sprintf(`
env: "local"
partner:
  environment: "local"
  base_url: %q
  client_id: "cid"
  client_secret: "secret"
storage:
  driver: "memory"
`, baseURL)

	p := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(p, []byte(data), 0o600))

	return p
}

func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	err := NewApp(&out).Run(append([]string{"partnerctl"}, args...))

	return out.String(), err
}

func TestToken_RedactsValue(t *testing.T) {
	cfg := writeConfig(t, fakePartner(t).URL)

	out, err := runApp(t, "--config", cfg, "token")
	require.NoError(t, err)
	require.Contains(t, out, "[REDACTED_TOKEN]")
	require.Contains(t, out, "valid:      true")
	require.NotContains(t, out, "secret-token")
}

func TestHealth(t *testing.T) {
	cfg := writeConfig(t, fakePartner(t).URL)

	out, err := runApp(t, "--config", cfg, "health")
	require.NoError(t, err)
	require.Contains(t, out, "api: true (local)")
}

func TestGet_WithQuery(t *testing.T) {
	cfg := writeConfig(t, fakePartner(t).URL)

	out, err := runApp(t, "--config", cfg, "get", "--query", "x=42", "/custom")
	require.NoError(t, err)
	require.Contains(t, out, `"echo": "42"`)

	_, err = runApp(t, "--config", cfg, "get", "--query", "broken", "/custom")
	require.Error(t, err)

	_, err = runApp(t, "--config", cfg, "get", "/missing")
	require.Error(t, err)
	require.Contains(t, err.Error(), "não encontrado")
}

func TestLeads_ListAndCreate(t *testing.T) {
	cfg := writeConfig(t, fakePartner(t).URL)

	out, err := runApp(t, "--config", cfg, "leads", "list", "--status", "novo")
	require.NoError(t, err)
	require.Contains(t, out, "l1\tMaria\t123.***.***-09\tnovo")
	require.Contains(t, out, "page 1/1, 1 total")

	out, err = runApp(t, "--config", cfg, "leads", "create", "--nome", "Ana", "--cpf", "98765432100", "--email", "ana.souza@example.com")
	require.NoError(t, err)
	require.Contains(t, out, "created lead l2")
	require.Contains(t, out, "cpf=987.***.***-00")
	require.Contains(t, out, "email=an***@example.com")
	require.NotContains(t, out, "98765432100")
	require.NotContains(t, out, "ana.souza")

	_, err = runApp(t, "--config", cfg, "leads", "create", "--nome", "Ana", "--cpf", "123")
	require.Error(t, err)
}

func TestEnvs_MarksCurrent(t *testing.T) {
	srv := fakePartner(t)
	cfg := writeConfig(t, srv.URL)

	out, err := runApp(t, "--config", cfg, "envs")
	require.NoError(t, err)
	require.Contains(t, out, "* local")
	require.Contains(t, out, srv.URL)
	require.Contains(t, out, "production")
	require.Contains(t, out, "client_id=cid\tsecret=[REDACTED_SECRET]")
	require.NotContains(t, out, "secret\n")

	_, err = runApp(t, "--config", cfg, "--env", "mars", "envs")
	require.Error(t, err)
}

func TestEnvs_OverrideDoesNotLeakCredentials(t *testing.T) {
	srv := fakePartner(t)
	cfg := writeConfig(t, srv.URL)

	out, err := runApp(t, "--config", cfg, "--env", "production", "envs")
	require.NoError(t, err)
	require.Contains(t, out, "* production")
	require.NotContains(t, out, srv.URL)
	require.NotContains(t, out, "client_id=cid")
	require.NotContains(t, out, "[REDACTED_SECRET]")
}

func TestCaptured_Empty(t *testing.T) {
	cfg := writeConfig(t, fakePartner(t).URL)

	out, err := runApp(t, "--config", cfg, "captured")
	require.NoError(t, err)
	require.Contains(t, out, "0 lead(s)")
}
