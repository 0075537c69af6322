package permmap

import "sync"

// Direction identifies which way a translation runs.
type Direction string

const (
	// ToFrontendDirection coarsens backend permissions into capabilities.
	ToFrontendDirection Direction = "to_frontend"
	// ToBackendDirection expands capabilities into backend permissions.
	ToBackendDirection Direction = "to_backend"
)

// UnmappedObserver is told about every input identifier a translation drops
// because the table has no entry for it. It must be safe for concurrent use.
type UnmappedObserver func(dir Direction, id string)

// Option configures a Translator.
type Option func(*Translator)

// WithUnmappedObserver registers fn to be called for dropped identifiers.
// Results are the same with or without an observer.
func WithUnmappedObserver(fn UnmappedObserver) Option {
	return func(t *Translator) {
		t.onUnmapped = fn
	}
}

// Translator converts permission sets between the two granularities. It only
// reads its table and index after construction, so it is safe for concurrent
// use.
type Translator struct {
	table      *MappingTable
	inverse    *InverseIndex
	onUnmapped UnmappedObserver
}

// NewTranslator builds the inverse index of table and returns a translator
// over both.
func NewTranslator(table *MappingTable, opts ...Option) *Translator {
	t := &Translator{
		table:   table,
		inverse: BuildInverse(table),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Table returns the mapping table.
func (t *Translator) Table() *MappingTable {
	return t.table
}

// Inverse returns the inverse index derived from the table.
func (t *Translator) Inverse() *InverseIndex {
	return t.inverse
}

// ToFrontend returns the distinct capabilities granted by ids, ordered by first
// occurrence while scanning ids. Unmapped identifiers are dropped.
func (t *Translator) ToFrontend(ids []BackendPermissionID) []FrontendCapabilityID {
	out := &OrderedSet[FrontendCapabilityID]{}
	for _, id := range ids {
		f, ok := t.table.Lookup(id)
		if !ok {
			t.unmapped(ToFrontendDirection, string(id))
			continue
		}
		out.Add(f)
	}
	return out.Items()
}

// ToBackend returns the union of the backend identifiers behind each
// capability in ids, without duplicates, in first-occurrence order. Unknown
// capabilities contribute nothing.
func (t *Translator) ToBackend(ids []FrontendCapabilityID) []BackendPermissionID {
	out := &OrderedSet[BackendPermissionID]{}
	for _, id := range ids {
		if !t.inverse.union(out, id) {
			t.unmapped(ToBackendDirection, string(id))
		}
	}
	return out.Items()
}

func (t *Translator) unmapped(dir Direction, id string) {
	if t.onUnmapped != nil {
		t.onUnmapped(dir, id)
	}
}

var defaultTranslator = sync.OnceValue(func() *Translator {
	return NewTranslator(NewMappingTable(defaultEntries))
})

// Default returns the process-wide translator over the built-in table. It is
// built on first use; concurrent first callers all observe the same instance.
func Default() *Translator {
	return defaultTranslator()
}

// ToFrontend translates ids with the default translator.
func ToFrontend(ids []BackendPermissionID) []FrontendCapabilityID {
	return Default().ToFrontend(ids)
}

// ToBackend translates ids with the default translator.
func ToBackend(ids []FrontendCapabilityID) []BackendPermissionID {
	return Default().ToBackend(ids)
}
