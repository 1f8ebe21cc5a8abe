// pkg/render/render.go

package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/pkg/errors"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// View names accepted by Write.
const (
	ViewScreen   = "screen"
	ViewPrint    = "print"
	ViewExport   = "export"
	ViewMarkdown = "markdown"
)

// ContentType returns the MIME type produced by a view.
func ContentType(view string) string {
	switch view {
	case ViewScreen, ViewPrint, ViewExport:
		return "text/html; charset=utf-8"
	case ViewMarkdown:
		return "text/markdown; charset=utf-8"
	}
	return ""
}

// Write renders doc with the named view.
func Write(w io.Writer, view string, doc *Document) error {
	switch view {
	case ViewScreen:
		return Screen(w, doc)
	case ViewPrint:
		return Print(w, doc)
	case ViewExport:
		return Export(w, doc)
	case ViewMarkdown:
		return Markdown(w, doc)
	}
	return errors.Errorf("unknown view %q", view)
}

// Screen writes an inline-styled fragment for embedding in a page.
func Screen(w io.Writer, doc *Document) error {
	return errors.Wrap(templates.ExecuteTemplate(w, "screen", doc), "rendering screen view")
}

// Print writes a standalone page with print styles and a print button.
func Print(w io.Writer, doc *Document) error {
	return errors.Wrap(templates.ExecuteTemplate(w, "print.html", struct{ Doc *Document }{doc}), "rendering print view")
}

// Export writes a standalone page that converts itself to PDF with html2pdf.js
// once loaded, then closes its window.
func Export(w io.Writer, doc *Document) error {
	name := doc.Filename()
	data := struct {
		Doc      *Document
		Name     string
		Filename string
	}{doc, strings.TrimSuffix(name, ".pdf"), name}
	return errors.Wrap(templates.ExecuteTemplate(w, "export.html", data), "rendering export view")
}

// Markdown writes a plain text rendition suitable for a terminal.
func Markdown(w io.Writer, doc *Document) error {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", doc.Title)
	fmt.Fprintf(&b, "**%s**  \n", md(doc.Company.Name))
	writeLines(&b, doc.Company.Address, doc.Company.Contact)
	b.WriteString("\n## Bill To\n\n")
	writeLines(&b, doc.BillTo.Name, doc.BillTo.Address, doc.BillTo.Contact)
	b.WriteString("\n")
	fmt.Fprintf(&b, "- **Invoice #:** %s\n", md(doc.Meta.Number))
	fmt.Fprintf(&b, "- **Date:** %s\n", md(doc.Meta.Date))
	fmt.Fprintf(&b, "- **Due:** %s\n", md(doc.Meta.Due))
	fmt.Fprintf(&b, "- **Currency:** %s\n\n", md(doc.Meta.Currency))

	b.WriteString("| Description | Qty | Unit Price | Total |\n")
	b.WriteString("|---|--:|--:|--:|\n")
	for _, r := range doc.Rows {
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n", md(r.Description), r.Quantity, md(r.UnitPrice), md(r.LineTotal))
	}
	b.WriteString("\n| | |\n|---|--:|\n")
	for i, a := range doc.Totals {
		if i == len(doc.Totals)-1 {
			fmt.Fprintf(&b, "| **%s** | **%s** |\n", a.Label, md(a.Amount))
			continue
		}
		fmt.Fprintf(&b, "| %s | %s |\n", a.Label, md(a.Amount))
	}
	_, err := io.WriteString(w, b.String())
	return errors.Wrap(err, "rendering markdown view")
}

func writeLines(b *strings.Builder, lines ...string) {
	for _, l := range lines {
		if l != "" {
			fmt.Fprintf(b, "%s  \n", md(l))
		}
	}
}

var mdEscaper = strings.NewReplacer(`\`, `\\`, `|`, `\|`, `*`, `\*`, `_`, `\_`, "`", "\\`", "\n", " ")

func md(s string) string { return mdEscaper.Replace(s) }
