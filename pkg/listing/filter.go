package listing

import "time"

// DefaultTextDebounce is the settle delay for free-text filters
const DefaultTextDebounce = 500 * time.Millisecond

// FilterField describes one filter a list exposes.
type FilterField struct {
	// Name is the query parameter name, e.g. "clientId"
	Name string
	// Default is the value the filter starts with, usually "" or "all"
	Default string
	// Debounce delays participation of new values; zero applies them immediately
	Debounce time.Duration
	// Literal sends sentinel values as-is for backends that expect the literal string
	Literal bool
	// DependsOn names a parent filter. Changing the parent resets this filter to
	// its Default in the same reaction.
	DependsOn string
}

// Text is a free-text filter debounced by DefaultTextDebounce
func Text(name string) FilterField {
	return FilterField{Name: name, Debounce: DefaultTextDebounce}
}

// Select is a dropdown filter applied immediately
func Select(name, def string) FilterField {
	return FilterField{Name: name, Default: def}
}

// Dependent is a dropdown filter that resets whenever parent changes
func Dependent(name, parent string) FilterField {
	return FilterField{Name: name, Default: SentinelAll, DependsOn: parent}
}

// DeletedStatus is the three-valued soft-delete filter: "" all, "true" only
// deleted, "false" only active
func DeletedStatus() FilterField {
	return FilterField{Name: "deletedStatus"}
}

// WithDebounce returns a copy of f using delay
func (f FilterField) WithDebounce(delay time.Duration) FilterField {
	f.Debounce = delay
	return f
}

// normalize drops sentinel values unless the field is declared Literal.
// Values for names with no descriptor are treated as non-literal.
func normalize(fields map[string]FilterField, values map[string]string) map[string]string {
	out := make(map[string]string, len(values))
	for name, v := range values {
		if IsSentinel(v) && !fields[name].Literal {
			continue
		}
		out[name] = v
	}
	return out
}

// NormalizeFilters removes sentinel values ("all", "") from values, keeping
// those of fields marked Literal.
func NormalizeFilters(values map[string]string, fields ...FilterField) map[string]string {
	byName := make(map[string]FilterField, len(fields))
	for _, f := range fields {
		byName[f.Name] = f
	}
	return normalize(byName, values)
}
