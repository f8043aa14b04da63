package server

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/ontodag/pkg/errors"
	ontoio "github.com/matzehuels/ontodag/pkg/io"
)

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError reports err with the status of its code. Errors without a code
// are internal; their text is logged but not sent.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := errors.GetCode(err)
	msg := errors.UserMessage(err)
	if code == "" || code == errors.ErrCodeInternal {
		s.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "err", err)
		code = errors.ErrCodeInternal
		msg = "internal error"
	}
	writeJSON(w, errors.HTTPStatus(code), errorBody{Error: errorDetail{Code: code, Message: msg}})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body")
	}
	return nil
}

// pathParam returns a decoded path parameter. chi matches on the raw path
// when the request has one, so names with reserved characters such as "/"
// arrive escaped.
func pathParam(r *http.Request, key string) (string, error) {
	raw := chi.URLParam(r, key)
	if r.URL.RawPath == "" {
		return raw, nil
	}
	v, err := url.PathUnescape(raw)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidInput, err, "path parameter %s", key)
	}
	return v, nil
}

// categories reads the cat query parameter. A single value is split on
// commas; repeated parameters are taken verbatim so that names containing
// commas can still be queried.
func categories(r *http.Request) []string {
	vals := r.URL.Query()["cat"]
	if len(vals) == 1 {
		vals = strings.Split(vals[0], ",")
	}
	out := make([]string, 0, len(vals))
	for _, v := range vals {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func boolParam(r *http.Request, key string) bool {
	switch strings.ToLower(r.URL.Query().Get(key)) {
	case "1", "true", "yes":
		return true
	}
	return false
}

// formatParam reads the interchange format, defaulting to JSON.
func formatParam(r *http.Request) (ontoio.Format, error) {
	v := r.URL.Query().Get("format")
	if v == "" {
		return ontoio.FormatJSON, nil
	}
	return ontoio.ParseFormat(v)
}
