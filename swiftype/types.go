package swiftype

import "maps"

// Params is the parameter mapping for one request. Values may be scalars,
// sequences or nested mappings.
type Params map[string]any

// Record is a single JSON object returned by the service.
type Record map[string]any

// merge returns a new Params holding p overlaid with other. Neither input is
// modified.
func (p Params) merge(other Params) Params {
	out := make(Params, len(p)+len(other))
	maps.Copy(out, p)
	maps.Copy(out, other)
	return out
}

// StringField returns the field as a string, or "" when absent or not a string.
func (r Record) StringField(field string) string {
	s, _ := r[field].(string)
	return s
}

// ID returns the record's "id" field formatted as a string.
func (r Record) ID() string {
	if v, ok := r["id"]; ok && v != nil {
		return scalarString(v)
	}
	return ""
}
