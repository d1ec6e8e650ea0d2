package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/diewo77/salesdesk/internal/models"
	"github.com/diewo77/salesdesk/internal/services"
	"github.com/urfave/cli/v2"
)

func filterFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "date", Usage: "day, YYYY-MM-DD"},
		&cli.StringFlag{Name: "month", Usage: "month, YYYY-MM"},
		&cli.IntFlag{Name: "year", Usage: "year, e.g. 2024"},
	}
}

func saleCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:  "sale",
		Usage: "record and list sales",
		Subcommands: []*cli.Command{
			{
				Name:  "add",
				Usage: "record a sale",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "doc", Required: true, Usage: "document number"},
					&cli.StringFlag{Name: "amount", Required: true},
					&cli.StringFlag{Name: "date", Usage: "book on this day instead of today, YYYY-MM-DD"},
				},
				Action: e.addSale,
			},
			{
				Name:   "list",
				Usage:  "list sales, newest first",
				Flags:  filterFlags(),
				Action: e.listSales,
			},
			{
				Name:  "delete",
				Usage: "delete a sale",
				Flags: []cli.Flag{&cli.UintFlag{Name: "id", Required: true}},
				Action: func(c *cli.Context) error {
					user, err := e.login(c)
					if err != nil {
						return err
					}
					if err := e.sales.DeleteSale(c.Context, user, c.Uint("id")); err != nil {
						return err
					}
					fmt.Fprintf(e.out, "deleted sale %d\n", c.Uint("id"))
					return nil
				},
			},
			{
				Name:   "export",
				Usage:  "write sales to a CSV file",
				Flags:  append(filterFlags(), &cli.StringFlag{Name: "out", Required: true}),
				Action: e.exportSales,
			},
		},
	}
}

func (e *env) addSale(c *cli.Context) error {
	user, err := e.login(c)
	if err != nil {
		return err
	}
	amount, err := parseAmount(c.String("amount"))
	if err != nil {
		return err
	}
	var date *time.Time
	if c.IsSet("date") {
		d, err := parseDate("date", c.String("date"))
		if err != nil {
			return err
		}
		date = &d
	}
	sale, err := e.sales.CreateSale(c.Context, c.String("doc"), amount, user, date)
	if err != nil {
		return err
	}
	fmt.Fprintf(e.out, "sale %d %s %.2f %s\n", sale.ID, sale.Doc, sale.Amount, sale.Timestamp)
	return nil
}

// selectSales applies at most one of --date, --month, --year.
func (e *env) selectSales(c *cli.Context, user *models.User) ([]models.Sale, error) {
	switch {
	case c.IsSet("date"):
		d, err := parseDate("date", c.String("date"))
		if err != nil {
			return nil, err
		}
		return e.sales.GetSalesByDate(c.Context, user, d)
	case c.IsSet("month"):
		m, err := parseMonth("month", c.String("month"))
		if err != nil {
			return nil, err
		}
		return e.sales.GetSalesByMonth(c.Context, user, m.Year(), m.Month())
	case c.IsSet("year"):
		return e.sales.GetSalesByYear(c.Context, user, c.Int("year"))
	default:
		return e.sales.GetSalesByUser(c.Context, user)
	}
}

func (e *env) listSales(c *cli.Context) error {
	user, err := e.login(c)
	if err != nil {
		return err
	}
	sales, err := e.selectSales(c, user)
	if err != nil {
		return err
	}
	return printSales(e.out, sales)
}

func printSales(w io.Writer, sales []models.Sale) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDOC\tAMOUNT\tTIMESTAMP")
	for _, s := range sales {
		fmt.Fprintf(tw, "%d\t%s\t%.2f\t%s\n", s.ID, s.Doc, s.Amount, s.Timestamp)
	}
	sum := services.Summarize(sales)
	fmt.Fprintf(tw, "\t%d\t%.2f\t\n", sum.Count, sum.Total)
	return tw.Flush()
}

func (e *env) exportSales(c *cli.Context) error {
	user, err := e.login(c)
	if err != nil {
		return err
	}
	sales, err := e.selectSales(c, user)
	if err != nil {
		return err
	}
	path := c.String("out")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := services.ExportSalesCSV(f, sales); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	fmt.Fprintf(e.out, "exported %d sales to %s\n", len(sales), path)
	return nil
}
