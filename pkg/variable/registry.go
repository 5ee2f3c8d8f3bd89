package variable

// Definition describes a substitution token offered in the picker
type Definition struct {
	Token       string `json:"token"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Example     string `json:"example"`
}

// Registry is a read-only catalog of known tokens.
// Built once at startup; safe for concurrent reads.
type Registry struct {
	defs  []Definition
	index map[string]int
}

// NewRegistry builds a registry from definitions in declaration order.
// Later duplicates of a token are ignored so the first declaration wins.
func NewRegistry(defs ...Definition) *Registry {
	r := &Registry{
		defs:  make([]Definition, 0, len(defs)),
		index: make(map[string]int, len(defs)),
	}
	for _, d := range defs {
		if d.Token == "" {
			continue
		}
		if _, exists := r.index[d.Token]; exists {
			continue
		}
		r.index[d.Token] = len(r.defs)
		r.defs = append(r.defs, d)
	}
	return r
}

// ListAll returns every definition in declaration order
func (r *Registry) ListAll() []Definition {
	out := make([]Definition, len(r.defs))
	copy(out, r.defs)
	return out
}

// ListByCategory returns the definitions of one category, keeping declaration order
func (r *Registry) ListByCategory(category string) []Definition {
	out := make([]Definition, 0)
	for _, d := range r.defs {
		if d.Category == category {
			out = append(out, d)
		}
	}
	return out
}

// IsKnown reports whether token is registered (exact, case-sensitive)
func (r *Registry) IsKnown(token string) bool {
	_, ok := r.index[token]
	return ok
}

// Lookup returns the definition registered for token
func (r *Registry) Lookup(token string) (Definition, bool) {
	i, ok := r.index[token]
	if !ok {
		return Definition{}, false
	}
	return r.defs[i], true
}

// Categories returns category labels in order of first appearance
func (r *Registry) Categories() []string {
	seen := make(map[string]bool)
	var out []string
	for _, d := range r.defs {
		if seen[d.Category] {
			continue
		}
		seen[d.Category] = true
		out = append(out, d.Category)
	}
	return out
}

// Examples maps every token to its example value.
// Used to preview a template with sample data.
func (r *Registry) Examples() map[string]string {
	out := make(map[string]string, len(r.defs))
	for _, d := range r.defs {
		out[d.Token] = d.Example
	}
	return out
}
