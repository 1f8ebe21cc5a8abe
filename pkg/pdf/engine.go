// pkg/pdf/engine.go

// Package pdf converts rendered invoices to PDF and delivers the result.
package pdf

import (
	"io"
	"sync"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/invoice-studio/pkg/render"
)

// Engine converts a document to PDF.
type Engine interface {
	Name() string
	// Ready is closed once the engine can convert.
	Ready() <-chan struct{}
	Convert(doc *render.Document, w io.Writer) error
}

var closed = func() chan struct{} {
	c := make(chan struct{})
	close(c)
	return c
}()

// Available reports whether e can convert right now.
func Available(e Engine) bool {
	select {
	case <-e.Ready():
		return true
	default:
		return false
	}
}

// LazyEngine is an engine loaded in the background.
type LazyEngine struct {
	name   string
	ready  chan struct{}
	mu     sync.Mutex
	engine Engine
	err    error
}

// Lazy starts load in the background. The returned engine becomes ready when
// load succeeds; a failed load is logged and the engine never becomes ready.
func Lazy(name string, load func() (Engine, error), log logrus.FieldLogger) *LazyEngine {
	if log == nil {
		log = logrus.StandardLogger()
	}
	l := &LazyEngine{name: name, ready: make(chan struct{})}
	go func() {
		e, err := load()
		l.mu.Lock()
		l.engine, l.err = e, err
		l.mu.Unlock()
		if err != nil {
			log.WithError(err).WithField("engine", name).Error("pdf engine failed to load")
			return
		}
		log.WithField("engine", name).Debug("pdf engine loaded")
		close(l.ready)
	}()
	return l
}

func (l *LazyEngine) Name() string           { return l.name }
func (l *LazyEngine) Ready() <-chan struct{} { return l.ready }

// Err returns the load error, if loading failed.
func (l *LazyEngine) Err() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.err
}

func (l *LazyEngine) Convert(doc *render.Document, w io.Writer) error {
	l.mu.Lock()
	e := l.engine
	l.mu.Unlock()
	if e == nil {
		return errors.Errorf("pdf engine %s not loaded", l.name)
	}
	return e.Convert(doc, w)
}
