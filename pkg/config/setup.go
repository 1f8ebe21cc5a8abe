// pkg/config/setup.go

package config

import (
	"context"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/invoice-studio/pkg/pdf"
	"github.com/invoice-studio/pkg/profile"
)

// Logger builds the process logger.
func (c Config) Logger(out io.Writer) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(out)
	if lvl, err := logrus.ParseLevel(c.LogLevel); err == nil {
		log.SetLevel(lvl)
	} else {
		log.WithField("level", c.LogLevel).Warn("unknown log level, using info")
	}
	if c.LogFormat == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return log
}

// OpenStore opens the configured profile store. The returned close function
// is never nil.
func (c Config) OpenStore() (profile.Store, func() error, error) {
	noop := func() error { return nil }
	switch c.Store {
	case "memory":
		return profile.NewMemoryStore(), noop, nil
	case "sqlite", "postgres":
		s, err := profile.OpenSQL(c.Store, c.StoreDSN)
		if err != nil {
			return nil, noop, err
		}
		return s, s.Close, nil
	default:
		return profile.NewFileStore(c.DataDir), noop, nil
	}
}

// ProfileService opens the store and loads the profile.
func (c Config) ProfileService(ctx context.Context, log logrus.FieldLogger) (*profile.Service, func() error, error) {
	store, closeFn, err := c.OpenStore()
	if err != nil {
		return nil, closeFn, err
	}
	return profile.NewService(ctx, store, log), closeFn, nil
}

// Engine starts loading the PDF engine in the background.
func (c Config) Engine(log logrus.FieldLogger) pdf.Engine {
	opts := pdf.Options{FontFile: c.PDFFont}
	if opts.FontFile == "" {
		e, _ := pdf.NewGoFPDF(opts)
		return e
	}
	return pdf.Lazy("gofpdf", func() (pdf.Engine, error) {
		return pdf.NewGoFPDF(opts)
	}, log)
}

// PublishSink returns the S3 sink when a bucket is configured, nil otherwise.
func (c Config) PublishSink() (pdf.Sink, error) {
	if c.S3Bucket == "" {
		return nil, nil
	}
	return pdf.NewS3Sink(c.S3Region, c.S3Bucket, c.S3Prefix)
}
