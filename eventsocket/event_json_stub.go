//go:build noesljson

package eventsocket

// JSONValue is the noesljson stand-in for the gjson-backed projection; it
// carries no data because the JSON parser is compiled out entirely under
// this build tag (spec.md §6's json feature gate).
type JSONValue struct{}

func (v JSONValue) Get(string) JSONValue { return JSONValue{} }
func (v JSONValue) String() string       { return "" }
func (v JSONValue) Exists() bool         { return false }
func (v JSONValue) Raw() string          { return "" }

// JSON always fails under the noesljson build tag.
func (c Cast) JSON() (JSONValue, error) {
	return JSONValue{}, ErrUnsupportedFormat
}
