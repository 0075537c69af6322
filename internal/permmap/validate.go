package permmap

import (
	"fmt"
	"strings"
)

// ProblemKind classifies a structural authoring error in a mapping table.
type ProblemKind string

const (
	ProblemEmptyBackend  ProblemKind = "empty_backend"
	ProblemEmptyFrontend ProblemKind = "empty_frontend"
	ProblemDuplicateKey  ProblemKind = "duplicate_key"
)

// Problem describes one malformed row. Row is zero-based.
type Problem struct {
	Kind    ProblemKind         `json:"kind"`
	Row     int                 `json:"row"`
	Backend BackendPermissionID `json:"backend,omitempty"`
	// FirstRow is set for duplicate keys and points at the earlier occurrence.
	FirstRow int `json:"first_row,omitempty"`
}

func (p Problem) String() string {
	switch p.Kind {
	case ProblemEmptyBackend:
		return fmt.Sprintf("row %d: empty backend permission id", p.Row)
	case ProblemEmptyFrontend:
		return fmt.Sprintf("row %d: empty frontend capability id for %q", p.Row, p.Backend)
	case ProblemDuplicateKey:
		return fmt.Sprintf("row %d: backend permission id %q already mapped at row %d", p.Row, p.Backend, p.FirstRow)
	default:
		return fmt.Sprintf("row %d: %s", p.Row, p.Kind)
	}
}

// ValidationError lists every problem found in a mapping table.
type ValidationError struct {
	Problems []Problem
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Problems))
	for i, p := range e.Problems {
		msgs[i] = p.String()
	}
	return fmt.Sprintf("invalid mapping table: %s", strings.Join(msgs, "; "))
}

// Validate checks entries for structural authoring errors: empty identifiers
// and repeated backend keys. It does not check that the table covers every
// backend operation. It returns nil or a *ValidationError.
func Validate(entries []Entry) error {
	var problems []Problem
	seen := make(map[BackendPermissionID]int, len(entries))

	for row, e := range entries {
		if e.Backend == "" {
			problems = append(problems, Problem{Kind: ProblemEmptyBackend, Row: row})
		}
		if e.Frontend == "" {
			problems = append(problems, Problem{Kind: ProblemEmptyFrontend, Row: row, Backend: e.Backend})
		}
		if first, ok := seen[e.Backend]; ok {
			problems = append(problems, Problem{Kind: ProblemDuplicateKey, Row: row, Backend: e.Backend, FirstRow: first})
			continue
		}
		seen[e.Backend] = row
	}

	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}
