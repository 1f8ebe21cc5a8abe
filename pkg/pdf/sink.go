// pkg/pdf/sink.go

package pdf

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strconv"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/aws/aws-sdk-go/service/s3/s3manager/s3manageriface"
	"github.com/pkg/errors"
)

// Sink receives a finished PDF and reports where it went.
type Sink interface {
	Deliver(ctx context.Context, filename string, data []byte) (location string, err error)
}

// DirSink writes PDFs into a directory.
type DirSink struct {
	Dir string
}

func (s DirSink) Deliver(_ context.Context, filename string, data []byte) (string, error) {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return "", errors.Wrap(err, "creating output directory")
	}
	p := filepath.Join(s.Dir, filepath.Base(filename))
	if err := os.WriteFile(p, data, 0o644); err != nil {
		return "", errors.Wrap(err, "writing pdf file")
	}
	return p, nil
}

// ResponseSink sends the PDF as an HTTP download.
type ResponseSink struct {
	W http.ResponseWriter
}

func (s ResponseSink) Deliver(_ context.Context, filename string, data []byte) (string, error) {
	h := s.W.Header()
	h.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	h.Set("Content-Type", "application/pdf")
	h.Set("Content-Length", strconv.Itoa(len(data)))
	_, err := s.W.Write(data)
	return filename, err
}

// S3Sink uploads PDFs to a bucket.
type S3Sink struct {
	Uploader s3manageriface.UploaderAPI
	Bucket   string
	Prefix   string
}

// NewS3Sink builds an uploader from the default AWS credential chain.
func NewS3Sink(region, bucket, prefix string) (*S3Sink, error) {
	sess, err := session.NewSession(&aws.Config{Region: aws.String(region)})
	if err != nil {
		return nil, errors.Wrap(err, "creating aws session")
	}
	return &S3Sink{Uploader: s3manager.NewUploader(sess), Bucket: bucket, Prefix: prefix}, nil
}

func (s *S3Sink) Deliver(ctx context.Context, filename string, data []byte) (string, error) {
	key := path.Join(s.Prefix, filename)
	out, err := s.Uploader.UploadWithContext(ctx, &s3manager.UploadInput{
		Bucket:      aws.String(s.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/pdf"),
	})
	if err != nil {
		return "", errors.Wrapf(err, "uploading %s to s3", key)
	}
	return out.Location, nil
}
