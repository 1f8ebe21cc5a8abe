// pkg/pdf/export.go

package pdf

import (
	"bytes"
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/invoice-studio/pkg/render"
)

// Artifact describes a delivered PDF. Receiving one means the export is complete.
type Artifact struct {
	Filename string `json:"filename"`
	Location string `json:"location"`
	Size     int    `json:"size"`
}

// Exporter converts documents with an engine and hands the bytes to a sink.
type Exporter struct {
	engine Engine
	log    logrus.FieldLogger
}

// NewExporter returns an exporter using e.
func NewExporter(e Engine, log logrus.FieldLogger) *Exporter {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Exporter{engine: e, log: log.WithField("component", "pdf")}
}

// Export converts doc and delivers it to sink under doc.Filename().
//
// When the engine is not ready yet the export waits for its ready signal and
// then makes exactly one attempt. Failures, including panics raised by the
// engine, are logged and returned.
func (x *Exporter) Export(ctx context.Context, doc *render.Document, sink Sink) (Artifact, error) {
	name := doc.Filename()
	log := x.log.WithFields(logrus.Fields{"engine": x.engine.Name(), "file": name})

	if !Available(x.engine) {
		log.Info("pdf engine not ready, deferring export")
		select {
		case <-x.engine.Ready():
		case <-ctx.Done():
			log.WithError(ctx.Err()).Warn("export abandoned before engine became ready")
			return Artifact{}, errors.Wrap(ctx.Err(), "waiting for pdf engine")
		}
	}

	var buf bytes.Buffer
	if err := x.convert(doc, &buf); err != nil {
		log.WithError(err).Error("pdf conversion failed")
		return Artifact{}, err
	}
	loc, err := sink.Deliver(ctx, name, buf.Bytes())
	if err != nil {
		log.WithError(err).Error("pdf delivery failed")
		return Artifact{}, errors.Wrap(err, "delivering pdf")
	}
	log.WithField("location", loc).Info("pdf exported")
	return Artifact{Filename: name, Location: loc, Size: buf.Len()}, nil
}

func (x *Exporter) convert(doc *render.Document, buf *bytes.Buffer) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.New(fmt.Sprint("pdf engine panic: ", r))
		}
	}()
	return errors.Wrap(x.engine.Convert(doc, buf), "converting to pdf")
}
