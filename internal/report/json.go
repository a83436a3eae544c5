package report

import (
	"bytes"
	"fmt"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"

	"github.com/nao1215/obsreport/internal/model"
)

// ErrorInfoKey is the only results key of a record for a failed site.
const ErrorInfoKey = "error_info"

// Results maps a finding's pretty name to its collected values, keeping
// the order in which names were first seen.
type Results struct {
	keys   []string
	values map[string]any
}

// newResults creates an empty Results.
func newResults() Results {
	return Results{values: make(map[string]any)}
}

// Len returns the number of keys.
func (r Results) Len() int {
	return len(r.keys)
}

// Keys returns the keys in insertion order.
func (r Results) Keys() []string {
	out := make([]string, len(r.keys))
	copy(out, r.keys)
	return out
}

// Get returns the value stored under key.
func (r Results) Get(key string) (any, bool) {
	v, ok := r.values[key]
	return v, ok
}

// set stores v under key, replacing any previous value.
func (r *Results) set(key string, v any) {
	if r.values == nil {
		r.values = make(map[string]any)
	}
	if _, ok := r.values[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.values[key] = v
}

// appendValue adds v to the list kept under key.
func (r *Results) appendValue(key string, v any) {
	list, _ := r.values[key].([]any)
	r.set(key, append(list, v))
}

// collapse replaces every single-entry list by its entry.
func (r *Results) collapse() {
	for _, key := range r.keys {
		if list, ok := r.values[key].([]any); ok && len(list) == 1 {
			r.values[key] = list[0]
		}
	}
}

// encode writes the results as a JSON object in key order.
func (r Results) encode(enc *jsontext.Encoder) error {
	if err := enc.WriteToken(jsontext.BeginObject); err != nil {
		return err
	}
	for _, key := range r.keys {
		if err := enc.WriteToken(jsontext.String(key)); err != nil {
			return err
		}
		if err := json.MarshalEncode(enc, r.values[key]); err != nil {
			return fmt.Errorf("failed to encode %q: %w", key, err)
		}
	}
	return enc.WriteToken(jsontext.EndObject)
}

// MarshalJSON encodes the results preserving key order.
func (r Results) MarshalJSON() ([]byte, error) {
	return encodeValue(r.encode, "")
}

// Record is the structured form of one (target, site) pair.
type Record struct {
	Site                   string
	Results                Results
	Observable             string
	ObservableType         string
	ObservableTypeDetected string
}

// encode writes the record as a JSON object with its fixed member names.
func (r Record) encode(enc *jsontext.Encoder) error {
	if err := enc.WriteToken(jsontext.BeginObject); err != nil {
		return err
	}
	if err := writeMember(enc, "site", r.Site); err != nil {
		return err
	}
	if err := enc.WriteToken(jsontext.String("results")); err != nil {
		return err
	}
	if err := r.Results.encode(enc); err != nil {
		return err
	}
	if err := writeMember(enc, "observable", r.Observable); err != nil {
		return err
	}
	if err := writeMember(enc, "observable type", r.ObservableType); err != nil {
		return err
	}
	if err := writeMember(enc, "observable type detected", r.ObservableTypeDetected); err != nil {
		return err
	}
	return enc.WriteToken(jsontext.EndObject)
}

// MarshalJSON encodes the record as a compact JSON object.
func (r Record) MarshalJSON() ([]byte, error) {
	return encodeValue(r.encode, "")
}

// writeMember writes a string member name and value.
func writeMember(enc *jsontext.Encoder, name, value string) error {
	if err := enc.WriteToken(jsontext.String(name)); err != nil {
		return err
	}
	return enc.WriteToken(jsontext.String(value))
}

// encodeValue runs fn against a fresh encoder and returns the bytes written,
// without the trailing newline the encoder adds after a top-level value.
func encodeValue(fn func(*jsontext.Encoder) error, indent string) ([]byte, error) {
	var buf bytes.Buffer
	// Invalid UTF-8 is replaced rather than rejected so J accepts what N accepts.
	opts := []jsontext.Options{jsontext.AllowInvalidUTF8(true)}
	if indent != "" {
		opts = append(opts, jsontext.WithIndent(indent))
	}
	enc := jsontext.NewEncoder(&buf, opts...)
	if err := fn(enc); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// JSONRenderer renders one JSON record per (target, site) pair per line.
//
// Design decision: We use github.com/go-json-experiment/json and its
// jsontext token encoder rather than encoding/json because results must keep
// the order in which pretty names were first seen, and record members must
// appear in a fixed order with names that contain spaces. Writing tokens
// directly gives both without a map-sorting serializer in the way.
type JSONRenderer struct {
	indent string
}

// NewJSON creates the renderer for format code J.
func NewJSON(opts ...Option) *JSONRenderer {
	s := newSettings(opts)
	return &JSONRenderer{indent: s.indent}
}

// Format returns the format this renderer produces.
func (r *JSONRenderer) Format() Format {
	return FormatJSON
}

// Records builds the structured records for rows without serializing them.
func (r *JSONRenderer) Records(rows []model.TargetRow) ([]Record, error) {
	if err := model.ValidateRows(rows); err != nil {
		return nil, err
	}

	records := make([]Record, 0, len(rows))
	for _, row := range rows {
		for _, outcome := range row.Outcomes {
			records = append(records, Record{
				Site:                   outcome.SiteName,
				Results:                buildResults(outcome),
				Observable:             row.Target,
				ObservableType:         row.ObservableType,
				ObservableTypeDetected: row.ObservableTypeDetected,
			})
		}
	}
	return records, nil
}

// buildResults groups an outcome's findings by pretty name.
// The error key is set directly and never goes through list collapsing.
func buildResults(outcome model.SiteOutcome) Results {
	results := newResults()

	switch outcome.Kind() {
	case model.OutcomeError:
		results.set(ErrorInfoKey, outcome.ErrorMessage)
	case model.OutcomeResults:
		for _, item := range outcome.Items {
			values := item.RawValues()
			if len(values) == 1 {
				results.appendValue(item.PrettyName, values[0])
			} else {
				results.appendValue(item.PrettyName, values)
			}
		}
		results.collapse()
	case model.OutcomeEmpty:
	}

	return results
}

// Render serializes every record on its own line.
func (r *JSONRenderer) Render(rows []model.TargetRow) (string, error) {
	records, err := r.Records(rows)
	if err != nil {
		return "", err
	}

	b := newBuffer(false)
	for _, record := range records {
		line, err := encodeValue(record.encode, r.indent)
		if err != nil {
			return "", fmt.Errorf("failed to encode record for %q/%q: %w",
				record.Observable, record.Site, err)
		}
		b.println(string(line))
	}
	return b.String(), nil
}

// EncodeRecords serializes records as newline-delimited JSON.
func EncodeRecords(records []Record) (string, error) {
	b := newBuffer(false)
	for _, record := range records {
		line, err := record.MarshalJSON()
		if err != nil {
			return "", err
		}
		b.println(string(line))
	}
	return b.String(), nil
}
