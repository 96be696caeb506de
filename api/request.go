package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/rpupo63/portfolio-catalog-backend/errs"
)

const (
	maxJSONBodyBytes   = 12 << 20 // inline data URI images travel inside project bodies
	maxUploadBodyBytes = 8 << 20
)

// decodeJSON reads a single JSON value from the request body into dst
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any, payloadType string) error {
	body := http.MaxBytesReader(w, r.Body, maxJSONBodyBytes)
	defer body.Close()

	if err := json.NewDecoder(body).Decode(dst); err != nil {
		var maxBytesErr *http.MaxBytesError
		var syntaxErr *json.SyntaxError
		var typeErr *json.UnmarshalTypeError
		switch {
		case errors.As(err, &maxBytesErr):
			return errs.NewMaxBodySizeExceededError(maxBytesErr.Limit)
		case errors.Is(err, io.EOF):
			return errs.NewMalformedPayloadError(payloadType, err)
		case errors.As(err, &syntaxErr), errors.Is(err, io.ErrUnexpectedEOF):
			return errs.NewInvalidJSONError(err)
		case errors.As(err, &typeErr):
			return errs.NewInvalidFieldError(typeErr.Field, "wrong type")
		default:
			return errs.NewMalformedPayloadError(payloadType, err)
		}
	}
	return nil
}
