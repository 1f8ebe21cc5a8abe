// cmd/main.go

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/invoice-studio/pkg/config"
	"github.com/invoice-studio/pkg/pdf"
	"github.com/invoice-studio/pkg/profile"
	"github.com/invoice-studio/pkg/server"
)

// @title        Invoice Studio API
// @version      1.0
// @description  Compose invoices, keep the company profile and export PDFs.
// @host         localhost:8080
// @BasePath     /
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp(os.Stdout, os.Stderr).RunContext(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		code := 1
		var ec cli.ExitCoder
		if errors.As(err, &ec) {
			code = ec.ExitCode()
		}
		os.Exit(code)
	}
}

// app holds what every command needs once the configuration is loaded.
type app struct {
	cfg config.Config
	log *logrus.Logger
}

func newApp(stdout, stderr io.Writer) *cli.App {
	a := &app{}
	return &cli.App{
		Name:      "invoice-studio",
		Usage:     "compose invoices, keep the company profile and export PDFs",
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "YAML configuration file",
				EnvVars: []string{"INVOICE_CONFIG"},
			},
		},
		Before: func(c *cli.Context) error {
			cfg, err := config.Load(c.String("config"))
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.log = cfg.Logger(stderr)
			return nil
		},
		Commands: []*cli.Command{
			a.serveCommand(),
			a.profileCommand(),
			a.invoiceCommand(),
		},
		// main owns the exit code
		ExitErrHandler: func(*cli.Context, error) {},
	}
}

// profiles opens the configured store and loads the profile.
func (a *app) profiles(c *cli.Context) (*profile.Service, func(), error) {
	svc, closeFn, err := a.cfg.ProfileService(c.Context, a.log)
	done := func() {
		if err := closeFn(); err != nil {
			a.log.WithError(err).Warn("closing profile store")
		}
	}
	return svc, done, err
}

func (a *app) serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "run the HTTP server",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "addr", Usage: "listen address, overrides the configuration"},
		},
		Action: func(c *cli.Context) error {
			if c.IsSet("addr") {
				a.cfg.Addr = c.String("addr")
			}
			svc, done, err := a.profiles(c)
			if err != nil {
				return err
			}
			defer done()

			publish, err := a.cfg.PublishSink()
			if err != nil {
				return err
			}
			exporter := pdf.NewExporter(a.cfg.Engine(a.log), a.log)
			return server.New(svc, exporter, publish, a.log).ListenAndServe(c.Context, a.cfg.Addr)
		},
	}
}
