package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/brunosoares877/Crefaz/internal/clients"
	"github.com/brunosoares877/Crefaz/internal/config"
	"github.com/brunosoares877/Crefaz/internal/models"
	"github.com/brunosoares877/Crefaz/internal/partner"
	"github.com/brunosoares877/Crefaz/internal/pkg/redact"
)

// setup загружает конфигурацию и собирает зависимости для команды.
func setup(c *cli.Context) (*clients.Clients, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	// base_url и учётные данные верхнего уровня относятся к окружению из конфигурации.
	if env := c.String("env"); env != "" && !strings.EqualFold(env, cfg.Partner.Environment) {
		cfg.Partner.Environment = env
		cfg.Partner.BaseURL, cfg.Partner.ClientID, cfg.Partner.ClientSecret = "", "", ""
	}

	level := slog.LevelWarn
	if c.Bool("verbose") {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	return clients.New(c.Context, *cfg, log, nil)
}

// run — общая обвязка: setup, действие, Close.
func run(c *cli.Context, fn func(ctx context.Context, cl *clients.Clients, out io.Writer) error) error {
	cl, err := setup(c)
	if err != nil {
		return err
	}
	defer cl.Close()

	return fn(c.Context, cl, c.App.Writer)
}

func printJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func envsAction(c *cli.Context) error {
	return run(c, func(_ context.Context, cl *clients.Clients, out io.Writer) error {
		current := cl.Partner.Environment().Name
		for _, name := range cl.Registry.Names() {
			p, err := cl.ProfileFor(name)
			if err != nil {
				return err
			}

			mark := " "
			if name == current {
				mark = "*"
			}
			secret := "-"
			if p.ClientSecret != "" {
				secret = redact.Secret()
			}
			fmt.Fprintf(out, "%s %-12s %s\tclient_id=%s\tsecret=%s\n", mark, name, p.BaseURL, p.ClientID, secret)
		}

		return nil
	})
}

func healthAction(c *cli.Context) error {
	return run(c, func(ctx context.Context, cl *clients.Clients, out io.Writer) error {
		ok := cl.Partner.HealthCheck(ctx)
		fmt.Fprintf(out, "api: %t (%s)\n", ok, cl.Partner.Environment().Name)
		if !ok {
			return fmt.Errorf("partner API is unavailable")
		}

		return nil
	})
}

func tokenAction(c *cli.Context) error {
	return run(c, func(ctx context.Context, cl *clients.Clients, out io.Writer) error {
		info, err := cl.Partner.Authenticate(ctx)
		if err != nil {
			return err
		}

		fmt.Fprintf(out, "token:      %s\n", redact.Token())
		fmt.Fprintf(out, "valid:      %t\n", info.IsValid)
		if info.ExpiresAt != nil {
			fmt.Fprintf(out, "expires_at: %s\n", info.ExpiresAt.Format("2006-01-02T15:04:05Z07:00"))
		}

		return nil
	})
}

func getAction(c *cli.Context) error {
	path := c.Args().First()
	if path == "" {
		return fmt.Errorf("path is required")
	}

	query := url.Values{}
	for _, kv := range c.StringSlice("query") {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			return fmt.Errorf("bad query %q: want key=value", kv)
		}
		query.Add(k, v)
	}

	return run(c, func(ctx context.Context, cl *clients.Clients, out io.Writer) error {
		raw, err := partner.Get[json.RawMessage](ctx, cl.Partner, path, query)
		if err != nil {
			return err
		}

		return printJSON(out, raw)
	})
}

func leadsListAction(c *cli.Context) error {
	f := models.LeadFilters{
		PageParams: models.PageParams{Page: c.Int("page"), Limit: c.Int("limit")},
		Busca:      c.String("search"),
	}
	if s := c.String("status"); s != "" {
		f.Status = []models.LeadStatus{models.LeadStatus(s)}
	}

	return run(c, func(ctx context.Context, cl *clients.Clients, out io.Writer) error {
		page, err := cl.Resources.Leads.List(ctx, f)
		if err != nil {
			return err
		}

		for _, l := range page.Data {
			fmt.Fprintf(out, "%s\t%s\t%s\t%s\n", l.ID, l.Nome, redact.CPF(l.CPF), l.Status)
		}
		fmt.Fprintf(out, "page %d/%d, %d total\n",
			page.Pagination.CurrentPage, page.Pagination.TotalPages, page.Pagination.TotalItems)

		return nil
	})
}

func leadsCreateAction(c *cli.Context) error {
	req := models.CreateLeadRequest{
		Nome:     c.String("nome"),
		CPF:      c.String("cpf"),
		Email:    c.String("email"),
		Whatsapp: c.String("whatsapp"),
		Origem:   c.String("origem"),
	}

	return run(c, func(ctx context.Context, cl *clients.Clients, out io.Writer) error {
		lead, err := cl.Resources.Leads.Create(ctx, req)
		if err != nil {
			return err
		}

		fmt.Fprintf(out, "created lead %s\tcpf=%s", lead.ID, redact.CPF(req.CPF))
		if req.Email != "" {
			fmt.Fprintf(out, "\temail=%s", redact.Email(req.Email))
		}
		fmt.Fprintln(out)
		return nil
	})
}

func productsAction(c *cli.Context) error {
	return run(c, func(ctx context.Context, cl *clients.Clients, out io.Writer) error {
		products, err := cl.Resources.Products.Active(ctx)
		if err != nil {
			return err
		}

		for _, p := range products {
			fmt.Fprintf(out, "%s\t%s\t%s\n", p.ID, p.Nome, p.Tipo)
		}

		return nil
	})
}

func simulateAction(c *cli.Context) error {
	req := models.SimulationRequest{
		ProdutoID:  c.String("produto"),
		Valor:      c.Float64("valor"),
		PrazoMeses: c.Int("prazo"),
	}

	return run(c, func(ctx context.Context, cl *clients.Clients, out io.Writer) error {
		sim, err := cl.Resources.Proposals.Simulate(ctx, req)
		if err != nil {
			return err
		}

		return printJSON(out, sim)
	})
}

func capturedAction(c *cli.Context) error {
	return run(c, func(ctx context.Context, cl *clients.Clients, out io.Writer) error {
		leads, err := cl.Leads.List(ctx)
		if err != nil {
			return err
		}

		for _, l := range leads {
			fmt.Fprintf(out, "%s\t%s\t%s\t%s\t%s\n",
				l.ID, l.Nome, redact.CPF(l.CPF), l.Status, l.CreatedAt.Format("02/01/2006 15:04"))
		}
		fmt.Fprintf(out, "%d lead(s)\n", len(leads))

		return nil
	})
}
