package permmap

// defaultEntries is the hand-authored table of backend operations and the
// frontend capability each one coarsens into. Several operations may share a
// capability; each operation appears exactly once.
var defaultEntries = []Entry{
	// Products
	{Backend: "getAllProducts", Frontend: "viewProduct"},
	{Backend: "getProductById", Frontend: "viewProduct"},
	{Backend: "checkProductCode", Frontend: "viewProduct"},
	{Backend: "createProduct", Frontend: "createProduct"},
	{Backend: "updateProduct", Frontend: "updateProduct"},
}

// DefaultEntries returns a copy of the built-in mapping table.
func DefaultEntries() []Entry {
	out := make([]Entry, len(defaultEntries))
	copy(out, defaultEntries)
	return out
}

// MappingTable is a read-only, ordered mapping from backend permission
// identifiers to frontend capability identifiers.
type MappingTable struct {
	entries []Entry
	byKey   map[BackendPermissionID]int
}

// NewMappingTable builds a table from entries in the given order. It never
// fails: a repeated backend key keeps the position of its first appearance and
// takes the value of its last one. Use Validate to reject such tables up front.
func NewMappingTable(entries []Entry) *MappingTable {
	t := &MappingTable{
		entries: make([]Entry, 0, len(entries)),
		byKey:   make(map[BackendPermissionID]int, len(entries)),
	}
	for _, e := range entries {
		if i, ok := t.byKey[e.Backend]; ok {
			t.entries[i].Frontend = e.Frontend
			continue
		}
		t.byKey[e.Backend] = len(t.entries)
		t.entries = append(t.entries, e)
	}
	return t
}

// Lookup returns the capability a backend identifier maps to. Unknown
// identifiers report false; that is an expected outcome, not a fault.
func (t *MappingTable) Lookup(id BackendPermissionID) (FrontendCapabilityID, bool) {
	i, ok := t.byKey[id]
	if !ok {
		return "", false
	}
	return t.entries[i].Frontend, true
}

// Entries returns a copy of the effective entries in table order.
func (t *MappingTable) Entries() []Entry {
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Len returns the number of distinct backend identifiers in the table.
func (t *MappingTable) Len() int {
	return len(t.entries)
}
