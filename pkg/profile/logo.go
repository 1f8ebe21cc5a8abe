// pkg/profile/logo.go

package profile

import (
	"encoding/base64"
	"io"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/pkg/errors"
)

// MaxLogoSize caps the size of an uploaded logo.
const MaxLogoSize = 5 << 20

// ErrLogoTooLarge is returned when an upload exceeds MaxLogoSize.
var ErrLogoTooLarge = errors.New("logo exceeds 5MB")

// LogoDataURI reads an uploaded file to completion and encodes it as a data URI.
// ok is false, with no error, when the content is not an image.
func LogoDataURI(r io.Reader) (uri string, ok bool, err error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxLogoSize+1))
	if err != nil {
		return "", false, errors.Wrap(err, "reading logo")
	}
	if len(data) > MaxLogoSize {
		return "", false, ErrLogoTooLarge
	}
	mime, ok := SniffImage(data)
	if !ok {
		return "", false, nil
	}
	return EncodeDataURI(mime, data), true, nil
}

// EncodeDataURI builds a base64 data URI.
func EncodeDataURI(mime string, data []byte) string {
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// DecodeDataURI splits a base64 data URI into its MIME type and payload.
func DecodeDataURI(uri string) (mime string, data []byte, err error) {
	rest, found := strings.CutPrefix(uri, "data:")
	if !found {
		return "", nil, errors.New("not a data URI")
	}
	header, payload, found := strings.Cut(rest, ",")
	if !found {
		return "", nil, errors.New("data URI without payload")
	}
	params := strings.Split(header, ";")
	mime = params[0]
	base64Encoded := false
	for _, p := range params[1:] {
		if p == "base64" {
			base64Encoded = true
		}
	}
	if !base64Encoded {
		return mime, []byte(payload), nil
	}
	data, err = base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, errors.Wrap(err, "decoding data URI")
	}
	return mime, data, nil
}

// IsImageDataURI reports whether uri is an embedded image.
func IsImageDataURI(uri string) bool {
	return strings.HasPrefix(uri, "data:image/")
}

// SniffImage reports the detected MIME type of data when it is an image.
func SniffImage(data []byte) (string, bool) {
	mt := mimetype.Detect(data)
	if !strings.HasPrefix(mt.String(), "image/") {
		return "", false
	}
	return baseMIME(mt.String()), true
}

func baseMIME(m string) string {
	if i := strings.IndexByte(m, ';'); i >= 0 {
		return m[:i]
	}
	return m
}
