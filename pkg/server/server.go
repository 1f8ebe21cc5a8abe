// pkg/server/server.go

// Package server exposes the profile, composer and invoice renderers over HTTP.
package server

import (
	"bufio"
	"context"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/invoice-studio/docs" // swagger description
	"github.com/invoice-studio/pkg/pdf"
	"github.com/invoice-studio/pkg/profile"
)

// maxUpload matches the logo size limit plus room for the other form fields.
const maxUpload = profile.MaxLogoSize + 1<<20

// Server wires the HTTP routes to the profile service and the PDF exporter.
type Server struct {
	profiles *profile.Service
	exporter *pdf.Exporter
	publish  pdf.Sink
	log      logrus.FieldLogger
	router   *mux.Router
}

// New builds the server. publish may be nil when no remote sink is configured.
func New(profiles *profile.Service, exporter *pdf.Exporter, publish pdf.Sink, log logrus.FieldLogger) *Server {
	if log == nil {
		log = logrus.StandardLogger()
	}
	s := &Server{
		profiles: profiles,
		exporter: exporter,
		publish:  publish,
		log:      log.WithField("component", "http"),
		router:   mux.NewRouter(),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	r := s.router
	r.Use(s.requestLogger)

	r.HandleFunc("/", s.indexHandler).Methods("GET")
	r.HandleFunc("/compose", s.composeHandler).Methods("POST")
	r.HandleFunc("/profile", s.profileFormHandler).Methods("POST")
	r.HandleFunc("/profile/logo", s.logoFormHandler).Methods("POST")
	r.HandleFunc("/profile/clear", s.clearFormHandler).Methods("POST")
	r.HandleFunc("/invoice/{view:screen|print|export|markdown|pdf}", s.generateInvoiceHandler).Methods("POST")

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/profile", s.getProfile).Methods("GET")
	api.HandleFunc("/profile", s.patchProfile).Methods("PATCH")
	api.HandleFunc("/profile", s.deleteProfile).Methods("DELETE")
	api.HandleFunc("/profile/logo", s.putLogo).Methods("PUT")
	api.HandleFunc("/totals", s.totalsHandler).Methods("POST")
	api.HandleFunc("/invoices/pdf", s.pdfHandler).Methods("POST")

	r.HandleFunc("/ws/compose", s.composeSocket).Methods("GET")
	r.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		s.reply(w, http.StatusOK, map[string]string{"status": "OK"})
	}).Methods("GET")
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is done, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s, ReadHeaderTimeout: 10 * time.Second}
	errc := make(chan error, 1)
	go func() {
		s.log.WithField("addr", addr).Info("server listening")
		errc <- srv.ListenAndServe()
	}()
	select {
	case err := <-errc:
		return errors.Wrap(err, "http server")
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s.log.Info("server shutting down")
	return errors.Wrap(srv.Shutdown(shutdownCtx), "shutting down")
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Hijack lets the websocket upgrader take over the connection.
func (r *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h, ok := r.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("response writer cannot be hijacked")
	}
	r.status = http.StatusSwitchingProtocols
	return h.Hijack()
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(rec, r)
		s.log.WithFields(logrus.Fields{
			"request_id": id,
			"method":     r.Method,
			"path":       r.URL.Path,
			"status":     rec.status,
			"duration":   time.Since(start).String(),
		}).Info("request")
	})
}
