// pkg/server/pages.go

package server

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
	"strconv"

	"github.com/invoice-studio/pkg/composer"
	"github.com/invoice-studio/pkg/invoice"
	"github.com/invoice-studio/pkg/profile"
	"github.com/invoice-studio/pkg/render"
)

//go:embed templates/*.html
var pageFS embed.FS

var pages = template.Must(template.New("").Funcs(template.FuncMap{
	"plain": invoice.FormatPlain,
}).ParseFS(pageFS, "templates/*.html"))

type pageData struct {
	Profile profile.Profile
	State   composer.State
	Preview template.HTML
}

func (s *Server) indexHandler(w http.ResponseWriter, r *http.Request) {
	s.renderIndex(w, r, composer.New())
}

// composeHandler applies one composer action to the posted form and renders
// the page again with recomputed totals.
func (s *Server) composeHandler(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(r); err != nil {
		http.Error(w, "Error reading the invoice", http.StatusBadRequest)
		return
	}
	c := composer.New(composer.WithInvoice(invoiceFromForm(r.PostForm)))
	if v := r.PostForm.Get("remove"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			c.RemoveItem(i)
		}
	}
	switch r.PostForm.Get("action") {
	case "add":
		c.AddItem()
	case "clear":
		c.ClearItems()
	default:
		c.Recalc()
	}
	s.renderIndex(w, r, c)
}

func (s *Server) renderIndex(w http.ResponseWriter, r *http.Request, c *composer.Composer) {
	p := s.profiles.Current(r.Context())
	state := c.State()
	var preview bytes.Buffer
	if err := render.Screen(&preview, render.Build(p, state.Invoice)); err != nil {
		s.log.WithError(err).Error("rendering preview")
	}
	data := pageData{
		Profile: p,
		State:   state,
		// produced by html/template, already escaped
		Preview: template.HTML(preview.String()),
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pages.ExecuteTemplate(w, "index.html", data); err != nil {
		s.log.WithError(err).Error("rendering index")
	}
}
