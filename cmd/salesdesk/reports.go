package main

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

func reportCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:  "report",
		Usage: "write sales reports as PDF",
		Subcommands: []*cli.Command{
			{
				Name:  "daily",
				Usage: "sales of one day",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "date", Required: true, Usage: "YYYY-MM-DD"},
					&cli.StringFlag{Name: "out", Required: true},
				},
				Action: func(c *cli.Context) error {
					user, err := e.login(c)
					if err != nil {
						return err
					}
					date, err := parseDate("date", c.String("date"))
					if err != nil {
						return err
					}
					if err := e.reports.DailyReport(c.Context, user, date, c.String("out")); err != nil {
						return err
					}
					fmt.Fprintln(e.out, c.String("out"))
					return nil
				},
			},
			{
				Name:  "monthly",
				Usage: "sales of the month containing --date, grouped by day",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "date", Required: true, Usage: "YYYY-MM-DD or YYYY-MM"},
					&cli.StringFlag{Name: "out", Required: true},
				},
				Action: func(c *cli.Context) error {
					user, err := e.login(c)
					if err != nil {
						return err
					}
					ref, err := parseDate("date", c.String("date"))
					if err != nil {
						if ref, err = parseMonth("date", c.String("date")); err != nil {
							return err
						}
					}
					if err := e.reports.MonthlyReport(c.Context, user, ref, c.String("out")); err != nil {
						return err
					}
					fmt.Fprintln(e.out, c.String("out"))
					return nil
				},
			},
		},
	}
}
