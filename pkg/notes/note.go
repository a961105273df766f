// Package notes provides the note model and the service that applies
// list, get, create, update and delete operations to a note store.
//
// The store is always loaded in full, transformed in memory and, for
// mutations, written back in full. Service serializes these cycles with a
// single mutex so concurrent mutations never lose each other's changes.
package notes

// Note is a named text note. The JSON field names are the persisted and
// wire format and must not change.
type Note struct {
	Name string `json:"note_name" yaml:"note_name"`
	Text string `json:"note" yaml:"note"`
}

// Notes is an ordered note collection. Insertion order is file order and
// names are unique.
type Notes []Note

// Index returns the position of the first note named name, or -1.
func (ns Notes) Index(name string) int {
	for i, n := range ns {
		if n.Name == name {
			return i
		}
	}
	return -1
}

// Find returns the first note named name.
func (ns Notes) Find(name string) (Note, bool) {
	if i := ns.Index(name); i >= 0 {
		return ns[i], true
	}
	return Note{}, false
}

// Without returns a new collection excluding every note named name.
// The receiver is left untouched.
func (ns Notes) Without(name string) Notes {
	out := make(Notes, 0, len(ns))
	for _, n := range ns {
		if n.Name != name {
			out = append(out, n)
		}
	}
	return out
}

// Names returns the note names in order.
func (ns Notes) Names() []string {
	names := make([]string, len(ns))
	for i, n := range ns {
		names[i] = n.Name
	}
	return names
}
