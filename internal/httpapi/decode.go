package httpapi

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"jobboard/internal/apperr"
)

const maxBodyBytes = 1 << 20

var errInvalidJSON = apperr.NewUnprocessable("invalid JSON body")

// Schema is a compiled JSON schema for a request body.
type Schema struct {
	schema *gojsonschema.Schema
}

// MustSchema compiles src and panics on a malformed schema. Intended for
// package-level vars.
func MustSchema(src string) *Schema {
	s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(src))
	if err != nil {
		panic(fmt.Sprintf("compile request schema: %v", err))
	}
	return &Schema{schema: s}
}

// Validate checks raw JSON against the schema and returns an Unprocessable
// error listing every violation.
func (s *Schema) Validate(raw []byte) error {
	if s == nil {
		return nil
	}
	res, err := s.schema.Validate(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return errInvalidJSON
	}
	if res.Valid() {
		return nil
	}
	msgs := make([]string, 0, len(res.Errors()))
	for _, e := range res.Errors() {
		msgs = append(msgs, fmt.Sprintf("%s: %s", e.Field(), e.Description()))
	}
	return apperr.NewUnprocessable(strings.Join(msgs, "; "))
}

// Decode reads at most 1 MiB of r's body, validates it against schema and
// unmarshals it into dst.
func Decode(r *http.Request, schema *Schema, dst any) error {
	raw, err := ReadBody(r)
	if err != nil {
		return err
	}
	return DecodeBytes(raw, schema, dst)
}

// ReadBody returns at most 1 MiB of r's body, rejecting anything that is not
// well-formed JSON.
func ReadBody(r *http.Request) ([]byte, error) {
	raw, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return nil, errInvalidJSON
	}
	if !json.Valid(raw) {
		return nil, errInvalidJSON
	}
	return raw, nil
}

// DecodeBytes validates raw against schema and unmarshals it into dst.
func DecodeBytes(raw []byte, schema *Schema, dst any) error {
	if err := schema.Validate(raw); err != nil {
		return err
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return errInvalidJSON
	}
	return nil
}
