package api

import (
	"encoding/json/v2"
	"net/http"

	"github.com/go-playground/validator/v10"
)

// maxBodySize caps request bodies at 1 MiB. The API only accepts small
// JSON documents.
const maxBodySize = 1 << 20

// decodeAndValidate decodes a JSON request body into dst and runs
// struct validation on it.
func (s *Server) decodeAndValidate(r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(nil, r.Body, maxBodySize)

	if err := json.UnmarshalRead(r.Body, dst); err != nil {
		return err
	}

	return s.validate.Struct(dst)
}

// validationMessage turns a validator error into a short user-facing
// message naming the first offending field.
func validationMessage(err error) string {
	if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
		return "invalid value for field " + errs[0].Field()
	}
	return "invalid request body"
}
