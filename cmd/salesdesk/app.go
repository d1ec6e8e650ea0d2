package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/diewo77/salesdesk/auth"
	"github.com/diewo77/salesdesk/i18n"
	"github.com/diewo77/salesdesk/internal/config"
	"github.com/diewo77/salesdesk/internal/db"
	"github.com/diewo77/salesdesk/internal/models"
	"github.com/diewo77/salesdesk/internal/policy"
	"github.com/diewo77/salesdesk/internal/registry"
	"github.com/diewo77/salesdesk/internal/report"
	"github.com/diewo77/salesdesk/internal/services"
	"github.com/urfave/cli/v2"
	"gorm.io/gorm"
)

// env holds the services a command needs. The store is opened on first
// use so that commands like lookup run without one.
type env struct {
	cfg    *config.Config
	lang   string
	out    io.Writer
	errOut io.Writer

	db       *gorm.DB
	auth     *auth.Service
	sales    *services.SalesService
	offers   *services.OfferService
	users    *services.UserService
	reports  *report.Assembler
	registry *registry.Client
}

func newEnv(cfg *config.Config) *env {
	return &env{
		cfg:      cfg,
		lang:     i18n.DetectLanguage(cfg.App.Lang),
		out:      os.Stdout,
		errOut:   os.Stderr,
		registry: registry.NewClient(cfg.Registry.BaseURL, cfg.Registry.Timeout),
	}
}

// open connects the store and builds the services once.
func (e *env) open() error {
	if e.db != nil {
		return nil
	}
	gdb, err := db.ConnectAndMigrate(e.cfg.Database)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	e.wire(gdb)
	return nil
}

func (e *env) wire(gdb *gorm.DB) {
	gate := policy.NewDefaultGate()
	totals := services.NewTotalsCache()
	e.db = gdb
	e.auth = auth.NewService(gdb)
	e.sales = services.NewSalesService(gdb, gate)
	e.offers = services.NewOfferService(gdb, gate, totals)
	e.users = services.NewUserService(gdb, gate, totals)
	e.reports = report.NewAssembler(e.sales, e.offers, e.cfg.Company)
}

func (e *env) close() {
	if e.db == nil {
		return
	}
	if sqlDB, err := e.db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	e.db = nil
}

// login opens the store and authenticates the global --user/--password.
func (e *env) login(c *cli.Context) (*models.User, error) {
	if err := e.open(); err != nil {
		return nil, err
	}
	u, err := e.auth.Login(c.Context, c.String("user"), c.String("password"))
	if err != nil {
		return nil, err
	}
	log.Printf("[cli] %s as %s", c.Command.FullName(), u.Username)
	return u, nil
}

func newApp(e *env) *cli.App {
	return &cli.App{
		Name:                      "salesdesk",
		Usage:                     "sales ledger, offers and PDF reports for a single business",
		Writer:                    e.out,
		ErrWriter:                 e.errOut,
		DisableSliceFlagSeparator: true,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "user", Aliases: []string{"u"}, Usage: "username", EnvVars: []string{"SALESDESK_USER"}},
			&cli.StringFlag{Name: "password", Aliases: []string{"p"}, Usage: "password", EnvVars: []string{"SALESDESK_PASSWORD"}},
		},
		Commands: []*cli.Command{
			registerCommand(e),
			saleCommand(e),
			offerCommand(e),
			reportCommand(e),
			lookupCommand(e),
			userCommand(e),
		},
	}
}

func registerCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:  "register",
		Usage: "create an account",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "username", Required: true},
			&cli.StringFlag{Name: "password", Required: true},
			&cli.StringFlag{Name: "email"},
			&cli.BoolFlag{Name: "admin"},
		},
		Action: func(c *cli.Context) error {
			if err := e.open(); err != nil {
				return err
			}
			u, err := e.auth.Register(c.Context, c.String("username"), c.String("password"), c.String("email"), c.Bool("admin"))
			if err != nil {
				return err
			}
			fmt.Fprintf(e.out, "user %d %s\n", u.ID, u.Username)
			return nil
		},
	}
}

func userCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:  "user",
		Usage: "manage accounts",
		Subcommands: []*cli.Command{
			{
				Name:  "delete",
				Usage: "delete an account with all its sales and offers (admin)",
				Flags: []cli.Flag{&cli.UintFlag{Name: "id", Required: true}},
				Action: func(c *cli.Context) error {
					actor, err := e.login(c)
					if err != nil {
						return err
					}
					id := c.Uint("id")
					if err := e.users.DeleteUser(c.Context, actor, id); err != nil {
						return err
					}
					fmt.Fprintf(e.out, "deleted user %d\n", id)
					return nil
				},
			},
		},
	}
}

func lookupCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:  "lookup",
		Usage: "look up a client company by CIF",
		Flags: []cli.Flag{&cli.StringFlag{Name: "cif", Required: true}},
		Action: func(c *cli.Context) error {
			co, err := e.registry.Lookup(c.Context, c.String("cif"))
			if err != nil {
				return err
			}
			fmt.Fprintf(e.out, "%s\n%s\n%s\n", co.Name, co.RegistrationNumber, co.Address)
			return nil
		},
	}
}
