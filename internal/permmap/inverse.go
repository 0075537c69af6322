package permmap

// InverseIndex maps each frontend capability to the backend identifiers that
// coarsen into it, in the order they appear in the mapping table.
type InverseIndex struct {
	buckets map[FrontendCapabilityID]*OrderedSet[BackendPermissionID]
	order   []FrontendCapabilityID
}

// BuildInverse derives the inverse index of t. The result is the preimage
// partition of the table: every backend identifier lands in exactly the bucket
// of the capability it maps to. Identifiers are not validated; an empty string
// is indexed like any other.
func BuildInverse(t *MappingTable) *InverseIndex {
	idx := &InverseIndex{
		buckets: make(map[FrontendCapabilityID]*OrderedSet[BackendPermissionID]),
	}
	for _, e := range t.entries {
		bucket, ok := idx.buckets[e.Frontend]
		if !ok {
			bucket = &OrderedSet[BackendPermissionID]{}
			idx.buckets[e.Frontend] = bucket
			idx.order = append(idx.order, e.Frontend)
		}
		bucket.Add(e.Backend)
	}
	return idx
}

// Lookup returns a copy of the bucket for id.
func (idx *InverseIndex) Lookup(id FrontendCapabilityID) ([]BackendPermissionID, bool) {
	bucket, ok := idx.buckets[id]
	if !ok {
		return nil, false
	}
	return bucket.Items(), true
}

// Capabilities lists every indexed capability in first-seen order.
func (idx *InverseIndex) Capabilities() []FrontendCapabilityID {
	out := make([]FrontendCapabilityID, len(idx.order))
	copy(out, idx.order)
	return out
}

// Len returns the number of buckets.
func (idx *InverseIndex) Len() int {
	return len(idx.order)
}

// union adds the bucket for id to dst and reports whether the bucket exists.
func (idx *InverseIndex) union(dst *OrderedSet[BackendPermissionID], id FrontendCapabilityID) bool {
	bucket, ok := idx.buckets[id]
	if !ok {
		return false
	}
	dst.AddAll(bucket.items...)
	return true
}
