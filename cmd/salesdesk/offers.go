package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/diewo77/salesdesk/i18n"
	"github.com/diewo77/salesdesk/internal/models"
	"github.com/diewo77/salesdesk/internal/services"
	"github.com/urfave/cli/v2"
)

func itemFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "code"},
		&cli.StringFlag{Name: "name", Required: true},
		&cli.StringFlag{Name: "qty", Required: true},
		&cli.StringFlag{Name: "price", Required: true},
		&cli.StringFlag{Name: "vat", Required: true, Usage: "percent"},
	}
}

func itemFromFlags(c *cli.Context) (services.LineItem, error) {
	return services.ParseLineItem(c.String("code"), c.String("name"), c.String("qty"), c.String("price"), c.String("vat"))
}

func offerCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:  "offer",
		Usage: "build price offers",
		Subcommands: []*cli.Command{
			{
				Name:  "create",
				Usage: "create an offer with its items",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "cif", Required: true, Usage: "client tax id"},
					&cli.StringFlag{Name: "name", Usage: "client name"},
					&cli.StringFlag{Name: "address"},
					&cli.StringFlag{Name: "phone"},
					&cli.StringSliceFlag{Name: "item", Usage: "code:name:qty:price:vat, repeatable"},
					&cli.BoolFlag{Name: "lookup", Usage: "fill missing client name and address from the registry"},
				},
				Action: e.createOffer,
			},
			{
				Name:   "list",
				Usage:  "list offers with totals, newest first",
				Action: e.listOffers,
			},
			{
				Name:  "add-product",
				Usage: "append an item to an offer",
				Flags: append(itemFlags(), &cli.UintFlag{Name: "offer", Required: true}),
				Action: func(c *cli.Context) error {
					user, err := e.login(c)
					if err != nil {
						return err
					}
					item, err := itemFromFlags(c)
					if err != nil {
						return err
					}
					row, err := e.offers.AddProduct(c.Context, user, c.Uint("offer"), item)
					if err != nil {
						return err
					}
					fmt.Fprintf(e.out, "item %d added to offer %d\n", row.ID, row.OfferID)
					return nil
				},
			},
			{
				Name:  "update-product",
				Usage: "replace an item's fields",
				Flags: append(itemFlags(), &cli.UintFlag{Name: "id", Required: true}),
				Action: func(c *cli.Context) error {
					user, err := e.login(c)
					if err != nil {
						return err
					}
					item, err := itemFromFlags(c)
					if err != nil {
						return err
					}
					if err := e.offers.UpdateProduct(c.Context, user, c.Uint("id"), item); err != nil {
						return err
					}
					fmt.Fprintf(e.out, "updated item %d\n", c.Uint("id"))
					return nil
				},
			},
			{
				Name:  "delete-product",
				Usage: "remove an item",
				Flags: []cli.Flag{&cli.UintFlag{Name: "id", Required: true}},
				Action: func(c *cli.Context) error {
					user, err := e.login(c)
					if err != nil {
						return err
					}
					if err := e.offers.DeleteProduct(c.Context, user, c.Uint("id")); err != nil {
						return err
					}
					fmt.Fprintf(e.out, "deleted item %d\n", c.Uint("id"))
					return nil
				},
			},
			{
				Name:  "delete",
				Usage: "delete an offer and its items",
				Flags: []cli.Flag{&cli.UintFlag{Name: "id", Required: true}},
				Action: func(c *cli.Context) error {
					user, err := e.login(c)
					if err != nil {
						return err
					}
					if err := e.offers.DeleteOffer(c.Context, user, c.Uint("id")); err != nil {
						return err
					}
					fmt.Fprintf(e.out, "deleted offer %d\n", c.Uint("id"))
					return nil
				},
			},
			{
				Name:  "pdf",
				Usage: "write the client offer document",
				Flags: []cli.Flag{
					&cli.UintFlag{Name: "id", Required: true},
					&cli.StringFlag{Name: "out", Required: true},
					&cli.BoolFlag{Name: "internal", Usage: "in-house variant"},
				},
				Action: func(c *cli.Context) error {
					user, err := e.login(c)
					if err != nil {
						return err
					}
					if err := e.reports.OfferDocument(c.Context, user, c.Uint("id"), c.String("out"), c.Bool("internal")); err != nil {
						return err
					}
					fmt.Fprintln(e.out, c.String("out"))
					return nil
				},
			},
			{
				Name:  "preview",
				Usage: "write the offer document to a temporary file and print its path",
				Flags: []cli.Flag{
					&cli.UintFlag{Name: "id", Required: true},
					&cli.BoolFlag{Name: "internal", Usage: "in-house variant"},
				},
				Action: func(c *cli.Context) error {
					user, err := e.login(c)
					if err != nil {
						return err
					}
					path, err := e.reports.PreviewOffer(c.Context, user, c.Uint("id"), c.Bool("internal"))
					if err != nil {
						return err
					}
					fmt.Fprintln(e.out, path)
					return nil
				},
			},
		},
	}
}

func (e *env) createOffer(c *cli.Context) error {
	user, err := e.login(c)
	if err != nil {
		return err
	}
	items, err := parseItems(c.StringSlice("item"))
	if err != nil {
		return err
	}
	draft := &services.DraftOffer{
		CIF:     strings.TrimSpace(c.String("cif")),
		Name:    strings.TrimSpace(c.String("name")),
		Address: strings.TrimSpace(c.String("address")),
		Phone:   strings.TrimSpace(c.String("phone")),
	}
	for _, it := range items {
		if err := draft.Add(it); err != nil {
			return err
		}
	}
	if c.Bool("lookup") && (draft.Name == "" || draft.Address == "") {
		e.prefillClient(c, draft)
	}
	offer, err := e.offers.Save(c.Context, draft, user)
	if err != nil {
		return err
	}
	t := draft.Totals()
	fmt.Fprintf(e.out, "offer %d: %d items, subtotal %.2f, vat %.2f, total %.2f\n",
		offer.ID, len(offer.Items), t.Subtotal, t.VAT, t.Final)
	return nil
}

// prefillClient fills blank client fields from the registry. A failed
// lookup is only a warning.
func (e *env) prefillClient(c *cli.Context, draft *services.DraftOffer) {
	co, err := e.registry.Lookup(c.Context, draft.CIF)
	if err != nil {
		fmt.Fprintf(e.errOut, "%s: %v\n", i18n.T(e.lang, "lookup_failed"), err)
		return
	}
	if draft.Name == "" {
		draft.Name = co.Name
	}
	if draft.Address == "" {
		draft.Address = co.Address
	}
}

func (e *env) listOffers(c *cli.Context) error {
	user, err := e.login(c)
	if err != nil {
		return err
	}
	offers, err := e.offers.GetOffersByUser(c.Context, user)
	if err != nil {
		return err
	}
	return e.printOffers(e.out, offers)
}

func (e *env) printOffers(w io.Writer, offers []models.Offer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCIF\tCLIENT\tITEMS\tTOTAL\tTIMESTAMP")
	for i := range offers {
		o := &offers[i]
		t := e.offers.OfferTotals(o)
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%.2f\t%s\n", o.ID, o.CIF, o.Name, len(o.Items), t.Final, o.Timestamp)
		for _, it := range o.Items {
			fmt.Fprintf(tw, "  #%d\t%s\t%s\t%g x %.2f\t%g%%\t\n", it.ID, it.ProductCode, it.ProductName, it.Quantity, it.UnitPrice, it.VAT)
		}
	}
	return tw.Flush()
}
