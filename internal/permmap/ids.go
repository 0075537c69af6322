// Package permmap translates permission identifiers between the backend
// authorization service, which grants one identifier per API operation, and the
// frontend, which gates UI on coarser user-facing capabilities.
//
// The mapping table is the single source of truth. Its inverse index is derived
// once from it and never mutated, so a Translator is safe for concurrent use.
package permmap

// BackendPermissionID names one backend-enforced operation, e.g. "getProductById".
type BackendPermissionID string

// FrontendCapabilityID names one user-facing capability, e.g. "viewProduct".
type FrontendCapabilityID string

// Entry is one row of a mapping table.
type Entry struct {
	Backend  BackendPermissionID  `json:"backend" mapstructure:"backend"`
	Frontend FrontendCapabilityID `json:"frontend" mapstructure:"frontend"`
}

// BackendIDs converts raw strings, as received from transport layers, into
// backend permission identifiers.
func BackendIDs(ids []string) []BackendPermissionID {
	out := make([]BackendPermissionID, len(ids))
	for i, id := range ids {
		out[i] = BackendPermissionID(id)
	}
	return out
}

// FrontendIDs converts raw strings into frontend capability identifiers.
func FrontendIDs(ids []string) []FrontendCapabilityID {
	out := make([]FrontendCapabilityID, len(ids))
	for i, id := range ids {
		out[i] = FrontendCapabilityID(id)
	}
	return out
}

// BackendStrings is the inverse of BackendIDs.
func BackendStrings(ids []BackendPermissionID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = string(id)
	}
	return out
}

// FrontendStrings is the inverse of FrontendIDs.
func FrontendStrings(ids []FrontendCapabilityID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = string(id)
	}
	return out
}
