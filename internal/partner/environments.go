package partner

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
)

// Resource — имя ресурса партнёрского API.
type Resource string

const (
	ResourceLeads     Resource = "leads"
	ResourceDocuments Resource = "documents"
	ResourceProposals Resource = "proposals"
	ResourceClients   Resource = "clients"
	ResourceContracts Resource = "contracts"
	ResourceUsers     Resource = "users"
	ResourceProducts  Resource = "products"
)

// Endpoints — пути ресурсов относительно BaseURL.
type Endpoints struct {
	Auth      string
	Leads     string
	Documents string
	Proposals string
	Clients   string
	Contracts string
	Users     string
	Products  string
}

// DefaultEndpoints — пути, которые партнёр публикует по умолчанию.
func DefaultEndpoints() Endpoints {
	return Endpoints{
		Auth:      "/oauth/token",
		Leads:     "/leads",
		Documents: "/documents",
		Proposals: "/proposals",
		Clients:   "/clients",
		Contracts: "/contracts",
		Users:     "/users",
		Products:  "/products",
	}
}

// Path возвращает путь ресурса.
func (e Endpoints) Path(r Resource) (string, bool) {
	var p string
	switch r {
	case ResourceLeads:
		p = e.Leads
	case ResourceDocuments:
		p = e.Documents
	case ResourceProposals:
		p = e.Proposals
	case ResourceClients:
		p = e.Clients
	case ResourceContracts:
		p = e.Contracts
	case ResourceUsers:
		p = e.Users
	case ResourceProducts:
		p = e.Products
	}

	return p, p != ""
}

// With возвращает копию с переопределённым путём. name — имя ресурса или "auth".
func (e Endpoints) With(name, path string) (Endpoints, error) {
	switch Resource(name) {
	case "auth":
		e.Auth = path
	case ResourceLeads:
		e.Leads = path
	case ResourceDocuments:
		e.Documents = path
	case ResourceProposals:
		e.Proposals = path
	case ResourceClients:
		e.Clients = path
	case ResourceContracts:
		e.Contracts = path
	case ResourceUsers:
		e.Users = path
	case ResourceProducts:
		e.Products = path
	default:
		return e, fmt.Errorf("unknown endpoint %q", name)
	}

	return e, nil
}

// EnvironmentProfile — неизменяемое описание окружения партнёрского API.
// Передаётся по значению: клиент держит собственную копию.
type EnvironmentProfile struct {
	Name               string
	BaseURL            string
	ClientID           string
	ClientSecret       string
	Timeout            time.Duration
	EnableLogs         bool
	RateLimitPerMinute int
	Endpoints          Endpoints
}

// URL склеивает BaseURL и путь. Абсолютные URL возвращаются как есть.
func (p EnvironmentProfile) URL(path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}

	base := strings.TrimRight(p.BaseURL, "/")
	if path == "" {
		return base
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	return base + path
}

const (
	EnvLocal      = "local"
	EnvStaging    = "staging"
	EnvProduction = "production"

	DefaultTimeout            = 30 * time.Second
	DefaultRateLimitPerMinute = 1000
)

func builtinProfiles() []EnvironmentProfile {
	return []EnvironmentProfile{
		{
			Name:               EnvLocal,
			BaseURL:            "http://localhost:3000/api",
			Timeout:            10 * time.Second,
			EnableLogs:         true,
			RateLimitPerMinute: DefaultRateLimitPerMinute,
			Endpoints:          DefaultEndpoints(),
		},
		{
			Name:               EnvStaging,
			BaseURL:            "https://api.crefaz.com.br",
			ClientID:           "8f2cf2e0-f3f6-472f-808e-e9006a830090",
			Timeout:            DefaultTimeout,
			EnableLogs:         true,
			RateLimitPerMinute: DefaultRateLimitPerMinute,
			Endpoints:          DefaultEndpoints(),
		},
		{
			Name:               EnvProduction,
			BaseURL:            "https://api.crefaz.com.br",
			ClientID:           "86feaeec-b8ca-4c9c-acb4-bb301e4165f1",
			Timeout:            DefaultTimeout,
			EnableLogs:         false,
			RateLimitPerMinute: DefaultRateLimitPerMinute,
			Endpoints:          DefaultEndpoints(),
		},
	}
}

// Registry — таблица именованных профилей. Профили хранятся по значению,
// Lookup возвращает копию, поэтому изменение результата не затрагивает реестр.
type Registry struct {
	mu       sync.RWMutex
	profiles map[string]EnvironmentProfile
}

// NewRegistry создаёт реестр со встроенными профилями local, staging, production.
func NewRegistry() *Registry {
	r := &Registry{profiles: make(map[string]EnvironmentProfile)}
	for _, p := range builtinProfiles() {
		r.profiles[p.Name] = p
	}

	return r
}

// Lookup находит профиль по имени (без учёта регистра).
func (r *Registry) Lookup(name string) (EnvironmentProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.profiles[strings.ToLower(name)]
	if !ok {
		return EnvironmentProfile{}, fmt.Errorf("%w: %q", ErrUnknownEnvironment, name)
	}

	return p, nil
}

// Register добавляет или заменяет профиль.
func (r *Registry) Register(p EnvironmentProfile) error {
	if p.Name == "" {
		return fmt.Errorf("profile name is empty")
	}
	if p.BaseURL == "" {
		return fmt.Errorf("profile %q: base url is empty", p.Name)
	}

	p.Name = strings.ToLower(p.Name)
	if p.Endpoints.Auth == "" {
		p.Endpoints.Auth = DefaultEndpoints().Auth
	}

	r.mu.Lock()
	r.profiles[p.Name] = p
	r.mu.Unlock()

	return nil
}

// Names — отсортированный список имён профилей.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, 0, len(r.profiles))
	for name := range r.profiles {
		out = append(out, name)
	}
	sort.Strings(out)

	return out
}
