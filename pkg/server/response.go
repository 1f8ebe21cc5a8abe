// pkg/server/response.go

package server

import (
	"encoding/json"
	"net/http"
)

// Response is the JSON envelope of every API reply. Status is "success" or
// "error" and StatusCode repeats the HTTP status.
type Response struct {
	Status     string      `json:"status"`
	StatusCode int         `json:"status_code"`
	Data       interface{} `json:"data,omitempty"`
	Error      string      `json:"error,omitempty"`
}

func (resp Response) write(w http.ResponseWriter) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.StatusCode)
	return json.NewEncoder(w).Encode(resp)
}

// reply sends data wrapped in a success envelope.
func (s *Server) reply(w http.ResponseWriter, code int, data interface{}) {
	resp := Response{Status: "success", StatusCode: code, Data: data}
	if err := resp.write(w); err != nil {
		s.log.WithError(err).Warn("writing api response")
	}
}

// fail sends msg in an error envelope. Server side failures are logged.
func (s *Server) fail(w http.ResponseWriter, code int, msg string) {
	if code >= http.StatusInternalServerError {
		s.log.WithField("status", code).Warn(msg)
	}
	resp := Response{Status: "error", StatusCode: code, Error: msg}
	if err := resp.write(w); err != nil {
		s.log.WithError(err).Warn("writing api response")
	}
}
