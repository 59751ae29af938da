//go:build !noesljson

package eventsocket

import (
	"fmt"

	"github.com/tidwall/gjson"
)

// JSONValue is the Cast().JSON() projection of an event body. It wraps
// gjson.Result so indexing into the document happens on demand rather
// than through an eager decode into a Go value — the "zero-copy
// projection" spec.md §4.2 asks for.
type JSONValue struct {
	res gjson.Result
}

// Get indexes into the document using gjson path syntax, e.g. "Event-Name".
func (v JSONValue) Get(path string) JSONValue { return JSONValue{res: v.res.Get(path)} }

// String returns the value as a string.
func (v JSONValue) String() string { return v.res.String() }

// Exists reports whether the path resolved to a value.
func (v JSONValue) Exists() bool { return v.res.Exists() }

// Raw returns the raw JSON text backing this value.
func (v JSONValue) Raw() string { return v.res.Raw }

// JSON parses the body as JSON. Returns ErrMalformedBody if the body
// isn't valid JSON; the event remains usable via Bytes()/Header().
func (c Cast) JSON() (JSONValue, error) {
	body := c.ev.raw.Body
	if !gjson.ValidBytes(body) {
		return JSONValue{}, fmt.Errorf("%w: invalid JSON body", ErrMalformedBody)
	}
	return JSONValue{res: gjson.ParseBytes(body)}, nil
}
