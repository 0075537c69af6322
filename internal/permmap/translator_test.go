package permmap

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDefaultTranslator() *Translator {
	return NewTranslator(NewMappingTable(DefaultEntries()))
}

func TestToFrontend_ProductScenario(t *testing.T) {
	tr := newDefaultTranslator()

	got := tr.ToFrontend([]BackendPermissionID{"getAllProducts", "getProductById", "checkProductCode"})
	assert.Equal(t, []FrontendCapabilityID{"viewProduct"}, got)

	got = tr.ToFrontend([]BackendPermissionID{"createProduct", "updateProduct"})
	assert.Equal(t, []FrontendCapabilityID{"createProduct", "updateProduct"}, got)
}

func TestToBackend_ProductScenario(t *testing.T) {
	tr := newDefaultTranslator()

	got := tr.ToBackend([]FrontendCapabilityID{"viewProduct"})
	assert.Equal(t, []BackendPermissionID{"getAllProducts", "getProductById", "checkProductCode"}, got)

	got = tr.ToBackend([]FrontendCapabilityID{"viewProduct", "createProduct"})
	assert.Equal(t, []BackendPermissionID{"getAllProducts", "getProductById", "checkProductCode", "createProduct"}, got)
}

func TestToFrontend_EveryEntryIsReachable(t *testing.T) {
	tr := newDefaultTranslator()

	for _, e := range DefaultEntries() {
		assert.Contains(t, tr.ToFrontend([]BackendPermissionID{e.Backend}), e.Frontend)
	}
}

func TestToBackend_EveryPreimageIsReachable(t *testing.T) {
	tr := newDefaultTranslator()

	for _, e := range DefaultEntries() {
		assert.Contains(t, tr.ToBackend([]FrontendCapabilityID{e.Frontend}), e.Backend)
	}
}

func TestToFrontend_Deduplicates(t *testing.T) {
	tr := newDefaultTranslator()

	for _, e := range DefaultEntries() {
		once := tr.ToFrontend([]BackendPermissionID{e.Backend})
		thrice := tr.ToFrontend([]BackendPermissionID{e.Backend, e.Backend, e.Backend})
		assert.Equal(t, once, thrice)
		assert.Len(t, thrice, 1)
	}
}

func TestToBackend_Deduplicates(t *testing.T) {
	tr := newDefaultTranslator()

	got := tr.ToBackend([]FrontendCapabilityID{"viewProduct", "viewProduct", "createProduct", "viewProduct"})
	assert.Len(t, got, 4)
	assert.ElementsMatch(t, []BackendPermissionID{"getAllProducts", "getProductById", "checkProductCode", "createProduct"}, got)
}

// Coarsening is lossy, so expansion only recovers a superset of the input.
func TestRoundTripRecoversOriginal(t *testing.T) {
	tr := newDefaultTranslator()

	for _, e := range DefaultEntries() {
		expanded := tr.ToBackend(tr.ToFrontend([]BackendPermissionID{e.Backend}))
		assert.Contains(t, expanded, e.Backend)
	}

	siblings := tr.ToBackend(tr.ToFrontend([]BackendPermissionID{"getProductById"}))
	assert.Len(t, siblings, 3)
}

func TestToFrontend_OrderFollowsFirstOccurrence(t *testing.T) {
	tr := newDefaultTranslator()

	got := tr.ToFrontend([]BackendPermissionID{"updateProduct", "checkProductCode", "createProduct", "getAllProducts"})
	assert.Equal(t, []FrontendCapabilityID{"updateProduct", "viewProduct", "createProduct"}, got)
}

func TestToBackend_OrderFollowsFirstOccurrence(t *testing.T) {
	tr := newDefaultTranslator()

	got := tr.ToBackend([]FrontendCapabilityID{"createProduct", "viewProduct"})
	assert.Equal(t, []BackendPermissionID{"createProduct", "getAllProducts", "getProductById", "checkProductCode"}, got)
}

func TestTranslate_UnknownIdentifiers(t *testing.T) {
	tr := newDefaultTranslator()

	assert.Empty(t, tr.ToFrontend([]BackendPermissionID{"no_such_backend_id"}))
	assert.Empty(t, tr.ToBackend([]FrontendCapabilityID{"no_such_frontend_id"}))

	got := tr.ToFrontend([]BackendPermissionID{"no_such_backend_id", "createProduct"})
	assert.Equal(t, []FrontendCapabilityID{"createProduct"}, got)
}

func TestTranslate_EmptyInput(t *testing.T) {
	tr := newDefaultTranslator()

	front := tr.ToFrontend(nil)
	require.NotNil(t, front)
	assert.Empty(t, front)

	back := tr.ToBackend([]FrontendCapabilityID{})
	require.NotNil(t, back)
	assert.Empty(t, back)
}

// A non-functional shape must still yield unique backend identifiers.
func TestToBackend_DeduplicatesAcrossBuckets(t *testing.T) {
	idx := &InverseIndex{
		buckets: map[FrontendCapabilityID]*OrderedSet[BackendPermissionID]{
			"x": NewOrderedSet[BackendPermissionID]("a", "b"),
			"y": NewOrderedSet[BackendPermissionID]("b", "c"),
		},
		order: []FrontendCapabilityID{"x", "y"},
	}
	tr := &Translator{table: NewMappingTable(nil), inverse: idx}

	assert.Equal(t, []BackendPermissionID{"a", "b", "c"}, tr.ToBackend([]FrontendCapabilityID{"x", "y"}))
}

func TestWithUnmappedObserver(t *testing.T) {
	type call struct {
		dir Direction
		id  string
	}
	var calls []call
	tr := NewTranslator(NewMappingTable(DefaultEntries()), WithUnmappedObserver(func(dir Direction, id string) {
		calls = append(calls, call{dir, id})
	}))

	front := tr.ToFrontend([]BackendPermissionID{"getAllProducts", "deleteProduct"})
	back := tr.ToBackend([]FrontendCapabilityID{"deleteProduct", "viewProduct"})

	assert.Equal(t, []FrontendCapabilityID{"viewProduct"}, front)
	assert.Len(t, back, 3)
	assert.Equal(t, []call{
		{ToFrontendDirection, "deleteProduct"},
		{ToBackendDirection, "deleteProduct"},
	}, calls)
}

func TestDefault_BuiltOnce(t *testing.T) {
	const workers = 16

	var wg sync.WaitGroup
	got := make([]*Translator, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			got[i] = Default()
		}(i)
	}
	wg.Wait()

	for _, tr := range got {
		assert.Same(t, got[0], tr)
	}
}

func TestPackageLevelTranslation(t *testing.T) {
	assert.Equal(t, []FrontendCapabilityID{"viewProduct"}, ToFrontend([]BackendPermissionID{"getAllProducts"}))
	assert.Len(t, ToBackend([]FrontendCapabilityID{"viewProduct"}), 3)
}

func TestTranslator_ConcurrentUse(t *testing.T) {
	tr := newDefaultTranslator()

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Equal(t, []FrontendCapabilityID{"viewProduct"}, tr.ToFrontend([]BackendPermissionID{"getProductById"}))
			assert.Len(t, tr.ToBackend([]FrontendCapabilityID{"viewProduct", "updateProduct"}), 4)
		}()
	}
	wg.Wait()
}

func TestStringConversions(t *testing.T) {
	raw := []string{"getAllProducts", "createProduct"}

	assert.Equal(t, raw, BackendStrings(BackendIDs(raw)))
	assert.Equal(t, raw, FrontendStrings(FrontendIDs(raw)))
	assert.Empty(t, BackendIDs(nil))
}
