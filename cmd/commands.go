// cmd/commands.go

package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/glamour"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/invoice-studio/pkg/invoice"
	"github.com/invoice-studio/pkg/pdf"
	"github.com/invoice-studio/pkg/profile"
	"github.com/invoice-studio/pkg/render"
)

var profileFlags = []string{"name", "address", "email", "phone"}

func (a *app) profileCommand() *cli.Command {
	setFlags := make([]cli.Flag, 0, len(profileFlags))
	for _, name := range profileFlags {
		setFlags = append(setFlags, &cli.StringFlag{Name: name, Usage: "company " + name})
	}
	return &cli.Command{
		Name:  "profile",
		Usage: "show or edit the saved company profile",
		Subcommands: []*cli.Command{
			{
				Name:  "show",
				Usage: "print the saved profile",
				Action: func(c *cli.Context) error {
					svc, done, err := a.profiles(c)
					if err != nil {
						return err
					}
					defer done()
					return printProfile(c.App.Writer, svc.Current(c.Context))
				},
			},
			{
				Name:  "set",
				Usage: "merge the given fields into the profile",
				Flags: setFlags,
				Action: func(c *cli.Context) error {
					var u profile.Update
					fields := map[string]**string{"name": &u.Name, "address": &u.Address, "email": &u.Email, "phone": &u.Phone}
					for name, dst := range fields {
						if c.IsSet(name) {
							*dst = profile.String(c.String(name))
						}
					}
					svc, done, err := a.profiles(c)
					if err != nil {
						return err
					}
					defer done()
					return printProfile(c.App.Writer, svc.SaveDetails(c.Context, u))
				},
			},
			{
				Name:      "logo",
				Usage:     "replace the logo with an image file",
				ArgsUsage: "<image>",
				Action: func(c *cli.Context) error {
					f, err := os.Open(c.Args().First())
					if err != nil {
						return errors.Wrap(err, "opening logo")
					}
					defer f.Close()
					svc, done, err := a.profiles(c)
					if err != nil {
						return err
					}
					defer done()
					_, changed, err := svc.SetLogo(c.Context, f)
					if err != nil {
						return err
					}
					if !changed {
						return cli.Exit(fmt.Sprintf("%s is not an image, logo unchanged", f.Name()), 2)
					}
					fmt.Fprintln(c.App.Writer, "logo saved")
					return nil
				},
			},
			{
				Name:  "clear",
				Usage: "erase the saved profile",
				Action: func(c *cli.Context) error {
					svc, done, err := a.profiles(c)
					if err != nil {
						return err
					}
					defer done()
					svc.Clear(c.Context)
					fmt.Fprintln(c.App.Writer, "profile cleared")
					return nil
				},
			},
		},
	}
}

// printProfile writes p as YAML with the logo shortened.
func printProfile(w io.Writer, p profile.Profile) error {
	if p.HasLogo() {
		mime, data, err := profile.DecodeDataURI(p.Logo)
		if err == nil {
			p.Logo = fmt.Sprintf("<%s, %d bytes>", mime, len(data))
		}
	}
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return errors.Wrap(enc.Encode(p), "printing profile")
}

// readInvoice decodes a YAML or JSON invoice file; "-" reads stdin.
func readInvoice(c *cli.Context) (invoice.Invoice, error) {
	var inv invoice.Invoice
	path := c.Args().First()
	if path == "" {
		return inv, cli.Exit("an invoice file is required", 2)
	}
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return inv, errors.Wrap(err, "reading invoice")
	}
	if err := yaml.Unmarshal(data, &inv); err != nil {
		return inv, errors.Wrapf(err, "decoding %s", path)
	}
	return inv, nil
}

func (a *app) document(c *cli.Context) (*render.Document, error) {
	inv, err := readInvoice(c)
	if err != nil {
		return nil, err
	}
	svc, done, err := a.profiles(c)
	if err != nil {
		return nil, err
	}
	defer done()
	return render.Build(svc.Current(c.Context), inv), nil
}

func (a *app) invoiceCommand() *cli.Command {
	return &cli.Command{
		Name:  "invoice",
		Usage: "work with invoice files (YAML or JSON)",
		Subcommands: []*cli.Command{
			{
				Name:      "totals",
				Usage:     "print the computed totals",
				ArgsUsage: "<file>",
				Action: func(c *cli.Context) error {
					inv, err := readInvoice(c)
					if err != nil {
						return err
					}
					return printTotals(c.App.Writer, render.Build(profile.Profile{}, inv))
				},
			},
			{
				Name:      "render",
				Usage:     "render the invoice as HTML or markdown",
				ArgsUsage: "<file>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Value: render.ViewMarkdown, Usage: "screen, print, export or markdown"},
					&cli.BoolFlag{Name: "plain", Usage: "print markdown without terminal styling"},
				},
				Action: func(c *cli.Context) error {
					doc, err := a.document(c)
					if err != nil {
						return err
					}
					view := c.String("format")
					if view != render.ViewMarkdown || c.Bool("plain") {
						return render.Write(c.App.Writer, view, doc)
					}
					return printMarkdown(c.App.Writer, doc)
				},
			},
			{
				Name:      "pdf",
				Usage:     "export the invoice as a PDF file",
				ArgsUsage: "<file>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "output directory, overrides the configuration"},
					&cli.BoolFlag{Name: "publish", Usage: "upload to the configured bucket"},
				},
				Action: func(c *cli.Context) error {
					doc, err := a.document(c)
					if err != nil {
						return err
					}
					sink, err := a.sink(c)
					if err != nil {
						return err
					}
					art, err := pdf.NewExporter(a.cfg.Engine(a.log), a.log).Export(c.Context, doc, sink)
					if err != nil {
						return err
					}
					fmt.Fprintln(c.App.Writer, art.Location)
					return nil
				},
			},
		},
	}
}

func (a *app) sink(c *cli.Context) (pdf.Sink, error) {
	if !c.Bool("publish") {
		dir := a.cfg.OutDir
		if c.IsSet("out") {
			dir = c.String("out")
		}
		return pdf.DirSink{Dir: dir}, nil
	}
	sink, err := a.cfg.PublishSink()
	if err != nil {
		return nil, err
	}
	if sink == nil {
		return nil, cli.Exit("publishing needs s3_bucket in the configuration", 2)
	}
	return sink, nil
}

func printTotals(w io.Writer, doc *render.Document) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	for _, r := range doc.Rows {
		fmt.Fprintf(tw, "%s\t%s x %s\t%s\t\n", r.Description, r.Quantity, r.UnitPrice, r.LineTotal)
	}
	for _, t := range doc.Totals {
		fmt.Fprintf(tw, "%s\t\t%s\t\n", t.Label, t.Amount)
	}
	return tw.Flush()
}

func printMarkdown(w io.Writer, doc *render.Document) error {
	var md strings.Builder
	if err := render.Markdown(&md, doc); err != nil {
		return err
	}
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
	if err != nil {
		return errors.Wrap(err, "creating markdown renderer")
	}
	out, err := r.Render(md.String())
	if err != nil {
		return errors.Wrap(err, "rendering markdown")
	}
	_, err = io.WriteString(w, out)
	return err
}
