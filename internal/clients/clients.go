// clients — корень композиции: партнёрский клиент, фасады ресурсов,
// хранилище лидов, архив документов и сервис захвата лидов.
package clients

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/brunosoares877/Crefaz/internal/config"
	"github.com/brunosoares877/Crefaz/internal/leadcapture"
	"github.com/brunosoares877/Crefaz/internal/metrics"
	"github.com/brunosoares877/Crefaz/internal/partner"
	"github.com/brunosoares877/Crefaz/internal/resources"
	"github.com/brunosoares877/Crefaz/internal/storage"
	"github.com/brunosoares877/Crefaz/internal/storage/memory"
	"github.com/brunosoares877/Crefaz/internal/storage/minio"
	"github.com/brunosoares877/Crefaz/internal/storage/postgres"
	"github.com/brunosoares877/Crefaz/internal/storage/redis"
)

// Clients агрегирует зависимости HTTP-слоя и CLI.
type Clients struct {
	Registry  *partner.Registry
	Partner   *partner.Client
	Resources *resources.Set
	Leads     *leadcapture.Service
	Store     storage.LeadsStorage

	partnerCfg config.PartnerConfig
}

// New собирает зависимости по конфигурации. m может быть nil.
func New(ctx context.Context, cfg config.Config, log *slog.Logger, m *metrics.Metrics) (*Clients, error) {
	const op = "internal/clients/New"

	reg := partner.NewRegistry()
	if err := RegisterProfiles(reg, cfg.Partner.Profiles); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	profile, err := Profile(reg, cfg.Partner)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	opts := []partner.Option{
		partner.WithLogger(log),
		partner.WithUserAgent(cfg.Partner.UserAgent),
		partner.WithSingleFlight(cfg.Partner.SingleFlight),
	}
	if m != nil {
		opts = append(opts, partner.WithMetrics(m))
	}
	pc := partner.New(profile, opts...)

	var archive resources.DocumentArchive
	if cfg.S3.Endpoint != "" {
		a, err := minio.New(ctx, cfg.S3)
		if err != nil {
			return nil, fmt.Errorf("%s: document archive: %w", op, err)
		}
		archive = a
	}

	set := resources.NewSet(pc, archive, nil)

	store, err := OpenStorage(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var lcOpts []leadcapture.Option
	if cfg.Partner.ForwardLeads {
		lcOpts = append(lcOpts, leadcapture.WithForwarder(set.Leads))
	}

	log.Info("clients_configured",
		slog.String("partner_env", profile.Name),
		slog.String("storage", cfg.Storage.Driver),
		slog.Bool("forward_leads", cfg.Partner.ForwardLeads),
		slog.Bool("document_archive", archive != nil),
	)

	return &Clients{
		Registry:  reg,
		Partner:   pc,
		Resources: set,
		Leads:     leadcapture.New(store, lcOpts...),
		Store:     store,

		partnerCfg: cfg.Partner,
	}, nil
}

// Close освобождает хранилище.
func (c *Clients) Close() error {
	if c.Store != nil {
		c.Store.Close()
	}

	return nil
}

// ProfileFor возвращает профиль окружения name для переключения клиента.
// base_url, client_id и client_secret верхнего уровня конфигурации относятся
// только к стартовому окружению; остальные берут учётные данные из своего профиля.
func (c *Clients) ProfileFor(name string) (partner.EnvironmentProfile, error) {
	cfg := c.partnerCfg
	if !strings.EqualFold(name, cfg.Environment) {
		cfg.BaseURL, cfg.ClientID, cfg.ClientSecret = "", "", ""
	}
	cfg.Environment = name

	return Profile(c.Registry, cfg)
}

// OpenStorage открывает хранилище лидов по storage.driver.
func OpenStorage(ctx context.Context, cfg config.Config) (storage.LeadsStorage, error) {
	switch cfg.Storage.Driver {
	case "", "memory":
		return memory.New(), nil
	case "postgres":
		return postgres.New(ctx, cfg.DB.URL)
	case "redis":
		return redis.New(ctx, cfg.Redis.URL, cfg.Redis.Prefix)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

// Profile выбирает профиль окружения и накладывает на него base_url,
// client_id и client_secret из конфигурации, если они заданы.
func Profile(reg *partner.Registry, cfg config.PartnerConfig) (partner.EnvironmentProfile, error) {
	p, err := reg.Lookup(cfg.Environment)
	if err != nil {
		return partner.EnvironmentProfile{}, err
	}

	if cfg.BaseURL != "" {
		p.BaseURL = cfg.BaseURL
	}
	if cfg.ClientID != "" {
		p.ClientID = cfg.ClientID
	}
	if cfg.ClientSecret != "" {
		p.ClientSecret = cfg.ClientSecret
	}

	return p, nil
}

// RegisterProfiles накладывает профили из конфигурации на реестр.
// Существующий профиль дополняется, неизвестное имя создаёт новый.
func RegisterProfiles(reg *partner.Registry, profiles map[string]config.ProfileConfig) error {
	names := make([]string, 0, len(profiles))
	for name := range profiles {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		pc := profiles[name]

		p, err := reg.Lookup(name)
		if err != nil {
			p = partner.EnvironmentProfile{
				Name:               name,
				Timeout:            partner.DefaultTimeout,
				RateLimitPerMinute: partner.DefaultRateLimitPerMinute,
				Endpoints:          partner.DefaultEndpoints(),
			}
		}

		if pc.BaseURL != "" {
			p.BaseURL = pc.BaseURL
		}
		if pc.ClientID != "" {
			p.ClientID = pc.ClientID
		}
		if pc.ClientSecret != "" {
			p.ClientSecret = pc.ClientSecret
		}
		if pc.Timeout > 0 {
			p.Timeout = pc.Timeout
		}
		if pc.EnableLogs != nil {
			p.EnableLogs = *pc.EnableLogs
		}
		if pc.RateLimitPerMinute > 0 {
			p.RateLimitPerMinute = pc.RateLimitPerMinute
		}
		for res, path := range pc.Endpoints {
			if p.Endpoints, err = p.Endpoints.With(res, path); err != nil {
				return fmt.Errorf("profile %q: %w", name, err)
			}
		}

		if err := reg.Register(p); err != nil {
			return err
		}
	}

	return nil
}
