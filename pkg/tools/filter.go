package tools

// Filter hides disabled tools. The zero value allows everything.
type Filter struct {
	disabled map[string]bool
}

// NewFilter returns a Filter that rejects the named tools.
func NewFilter(disabled []string) Filter {
	if len(disabled) == 0 {
		return Filter{}
	}
	m := make(map[string]bool, len(disabled))
	for _, name := range disabled {
		m[name] = true
	}
	return Filter{disabled: m}
}

// Allowed reports whether name may be listed and called.
func (f Filter) Allowed(name string) bool {
	return !f.disabled[name]
}

// Apply returns the descriptors that pass the filter, preserving order.
func (f Filter) Apply(descs []Descriptor) []Descriptor {
	if len(f.disabled) == 0 {
		return descs
	}
	out := make([]Descriptor, 0, len(descs))
	for _, d := range descs {
		if f.Allowed(d.Name) {
			out = append(out, d)
		}
	}
	return out
}
