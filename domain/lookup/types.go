package lookup

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Table is a raw tabular dataset: row 0 is the header, the rest are data rows.
// Rows may be shorter or longer than the header.
type Table [][]string

// Header returns the header row, or nil for an empty table
func (t Table) Header() Header {
	if len(t) == 0 {
		return nil
	}
	return Header(t[0])
}

// DataRows returns every row after the header
func (t Table) DataRows() [][]string {
	if len(t) < 2 {
		return nil
	}
	return t[1:]
}

// Header holds field names by position. Names are not guaranteed unique.
type Header []string

// Field is a single name/value pair of a Record
type Field struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Record maps field names to values for one matched data row.
// Field order is the first header position at which each name appears.
type Record struct {
	names  []string
	values map[string]string
}

// NewRecord creates an empty record
func NewRecord() Record {
	return Record{values: make(map[string]string)}
}

// Set stores a value, keeping the existing position of a repeated name
func (r *Record) Set(name, value string) {
	if r.values == nil {
		r.values = make(map[string]string)
	}
	if _, exists := r.values[name]; !exists {
		r.names = append(r.names, name)
	}
	r.values[name] = value
}

// Unset removes a name from the record
func (r *Record) Unset(name string) {
	if _, exists := r.values[name]; !exists {
		return
	}
	delete(r.values, name)
	for i, n := range r.names {
		if n == name {
			r.names = append(r.names[:i:i], r.names[i+1:]...)
			break
		}
	}
}

// Get returns the value for name and whether it is present.
// Present-but-empty cells return ("", true).
func (r Record) Get(name string) (string, bool) {
	v, ok := r.values[name]
	return v, ok
}

// Value returns the value for name, or "" when absent
func (r Record) Value(name string) string {
	return r.values[name]
}

// Len returns the number of present fields
func (r Record) Len() int {
	return len(r.names)
}

// Names returns field names in record order
func (r Record) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// Fields returns name/value pairs in record order
func (r Record) Fields() []Field {
	fields := make([]Field, 0, len(r.names))
	for _, name := range r.names {
		fields = append(fields, Field{Name: name, Value: r.values[name]})
	}
	return fields
}

// Map returns an unordered copy of the record
func (r Record) Map() map[string]string {
	out := make(map[string]string, len(r.values))
	for k, v := range r.values {
		out[k] = v
	}
	return out
}

// Equal reports whether two records hold the same fields in the same order
func (r Record) Equal(other Record) bool {
	if len(r.names) != len(other.names) {
		return false
	}
	for i, name := range r.names {
		if other.names[i] != name || other.values[name] != r.values[name] {
			return false
		}
	}
	return true
}

// MarshalJSON encodes the record as a JSON object in record order
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range r.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, fmt.Errorf("failed to encode field name %q: %w", name, err)
		}
		val, err := json.Marshal(r.values[name])
		if err != nil {
			return nil, fmt.Errorf("failed to encode field %q: %w", name, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object of string values, keeping key order
func (r *Record) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("record must be a JSON object")
	}

	*r = NewRecord()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := tok.(string)
		if !ok {
			return fmt.Errorf("unexpected record key %v", tok)
		}
		var value string
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("field %q: %w", name, err)
		}
		r.Set(name, value)
	}
	_, err = dec.Token()
	return err
}

// Result is the outcome of a lookup: either Found with a Record, or NotFound.
type Result struct {
	Found  bool
	Record Record
}

// Found wraps a matched record
func Found(rec Record) Result {
	return Result{Found: true, Record: rec}
}

// NotFound is the result for a key with no matching row
func NotFound() Result {
	return Result{}
}

// Equal reports whether two results are the same outcome with the same record
func (r Result) Equal(other Result) bool {
	if r.Found != other.Found {
		return false
	}
	return !r.Found || r.Record.Equal(other.Record)
}
