package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
)

type BodyKind int

const (
	// BodyNone is an empty body or one that failed to parse.
	BodyNone BodyKind = iota
	BodyJSON
	BodyText
)

var ErrNotJSON = errors.New("response body is not JSON")

// Body is a response body parsed according to its content type. Parse
// failures are not errors: the body downgrades to BodyNone and ParseErr
// records why.
type Body struct {
	Kind     BodyKind
	Raw      []byte
	Value    any
	ParseErr error
}

// Text returns the string value of a text body or a JSON string body.
func (b Body) Text() (string, bool) {
	if b.Kind == BodyNone {
		return "", false
	}
	s, ok := b.Value.(string)
	return s, ok
}

// IsNull reports whether the body carries no value, either because it was
// empty, unparseable or a JSON null.
func (b Body) IsNull() bool {
	return b.Kind == BodyNone || (b.Kind == BodyJSON && b.Value == nil)
}

// Decode unmarshals a JSON body into v.
func (b Body) Decode(v any) error {
	if b.Kind != BodyJSON {
		return ErrNotJSON
	}
	return json.Unmarshal(b.Raw, v)
}

func parseBody(contentType string, raw []byte, readErr error) Body {
	if readErr != nil {
		return Body{Kind: BodyNone, Raw: raw, ParseErr: readErr}
	}
	if !strings.Contains(strings.ToLower(contentType), "application/json") {
		return Body{Kind: BodyText, Raw: raw, Value: string(raw)}
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return Body{Kind: BodyNone, Raw: raw, ParseErr: err}
	}
	if dec.More() {
		return Body{Kind: BodyNone, Raw: raw, ParseErr: errors.New("trailing data after JSON value")}
	}
	return Body{Kind: BodyJSON, Raw: raw, Value: v}
}
