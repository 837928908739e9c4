// Package schema defines the AR billing scenario document model: the raw
// document representation, the fixed enumerations, the record field schemas,
// and the reference catalogs (denial codes, operator actions, async payer
// events). Catalogs are immutable process-wide data; nothing in this package
// mutates them after init.
package schema

// Document is a decoded scenario as produced by json.Unmarshal. Validation
// operates on the raw decoded form rather than typed structs so that a
// malformed document can be inspected field by field without ever panicking.
type Document map[string]any

// Tables lists the five account-state record tables in canonical order.
var Tables = []string{"demographics", "claims", "remits", "transactions", "notes"}

// Tracking fields carried by every record for frame-to-frame delta tracking.
const (
	FieldDelta         = "_delta"
	FieldChangedFields = "_changed_fields"
)

// Metadata returns the scenario_metadata section, or nil.
func (d Document) Metadata() map[string]any { return AsMap(d["scenario_metadata"]) }

// Account returns the account section, or nil.
func (d Document) Account() map[string]any { return AsMap(d["account"]) }

// Timeline returns the timeline frames. Non-map entries are preserved as nil
// so that frame indexes still line up with the raw document.
func (d Document) Timeline() []map[string]any {
	raw, _ := d["timeline"].([]any)
	frames := make([]map[string]any, len(raw))
	for i, v := range raw {
		frames[i] = AsMap(v)
	}
	return frames
}

// AccountState returns a frame's account_state section, or nil.
func AccountState(frame map[string]any) map[string]any {
	return AsMap(frame["account_state"])
}

// Table returns the named record table from an account state. A missing or
// mistyped table yields an empty slice; non-map records come back as nil
// entries so indexes stay aligned.
func Table(state map[string]any, name string) []map[string]any {
	raw, _ := state[name].([]any)
	records := make([]map[string]any, len(raw))
	for i, v := range raw {
		records[i] = AsMap(v)
	}
	return records
}

// RecordID returns the record's record_id, or "".
func RecordID(record map[string]any) string { return Str(record, "record_id") }

// AsMap converts a decoded JSON value to a map, or nil.
func AsMap(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}

// Str returns a string field, or "" when absent or not a string.
func Str(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

// Num returns a numeric field. JSON numbers decode as float64; anything else
// reports absent.
func Num(m map[string]any, key string) (float64, bool) {
	f, ok := m[key].(float64)
	return f, ok
}
