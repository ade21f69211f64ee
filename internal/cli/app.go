// cli — partnerctl: операторская утилита для партнёрского API Crefaz
// и локального хранилища захваченных лидов.
package cli

import (
	"io"

	"github.com/urfave/cli/v2"
)

// NewApp создаёт CLI-приложение. Вывод команд идёт в out.
func NewApp(out io.Writer) *cli.App {
	app := &cli.App{
		Name:   "partnerctl",
		Usage:  "Crefaz partner API toolbox",
		Writer: out,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to config file",
				EnvVars: []string{"CONFIG_PATH"},
			},
			&cli.StringFlag{
				Name:    "env",
				Aliases: []string{"e"},
				Usage:   "partner environment (local, staging, production or a configured profile)",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "log partner requests to stderr",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "envs",
				Usage:  "List known partner environments",
				Action: envsAction,
			},
			{
				Name:   "health",
				Usage:  "Check partner API availability",
				Action: healthAction,
			},
			{
				Name:   "token",
				Usage:  "Obtain an access token and show its state",
				Action: tokenAction,
			},
			{
				Name:      "get",
				Usage:     "Authenticated GET of an arbitrary partner path",
				ArgsUsage: "<path>",
				Flags: []cli.Flag{
					&cli.StringSliceFlag{
						Name:    "query",
						Aliases: []string{"q"},
						Usage:   "query parameter key=value (repeatable)",
					},
				},
				Action: getAction,
			},
			{
				Name:  "leads",
				Usage: "Partner leads",
				Subcommands: []*cli.Command{
					{
						Name:  "list",
						Usage: "List partner leads",
						Flags: []cli.Flag{
							&cli.StringFlag{Name: "status", Usage: "lead status filter"},
							&cli.StringFlag{Name: "search", Usage: "free text search"},
							&cli.IntFlag{Name: "page", Value: 1},
							&cli.IntFlag{Name: "limit", Value: 20},
						},
						Action: leadsListAction,
					},
					{
						Name:  "create",
						Usage: "Create a partner lead",
						Flags: []cli.Flag{
							&cli.StringFlag{Name: "nome", Required: true},
							&cli.StringFlag{Name: "cpf", Required: true},
							&cli.StringFlag{Name: "email"},
							&cli.StringFlag{Name: "whatsapp"},
							&cli.StringFlag{Name: "origem", Value: "partnerctl"},
						},
						Action: leadsCreateAction,
					},
				},
			},
			{
				Name:   "products",
				Usage:  "List active partner products",
				Action: productsAction,
			},
			{
				Name:  "simulate",
				Usage: "Simulate a credit proposal",
				Flags: []cli.Flag{
					&cli.Float64Flag{Name: "valor", Required: true},
					&cli.IntFlag{Name: "prazo", Required: true, Usage: "term in months"},
					&cli.StringFlag{Name: "produto", Usage: "product id"},
				},
				Action: simulateAction,
			},
			{
				Name:   "captured",
				Usage:  "List leads captured by the landing page (local storage)",
				Action: capturedAction,
			},
		},
	}

	return app
}
