package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/phyten/decomment/internal/engine"
)

type SortKey struct {
	Name string
	Desc bool
}

type SortSpec struct {
	Keys []SortKey
}

// ParseSortSpec parses a comma-separated key list. A leading '-' sorts the
// key in descending order, '+' (or nothing) ascending.
func ParseSortSpec(raw string) (SortSpec, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return SortSpec{}, nil
	}
	parts := strings.Split(raw, ",")
	keys := make([]SortKey, 0, len(parts))
	for _, part := range parts {
		token := strings.TrimSpace(part)
		if token == "" {
			return SortSpec{}, fmt.Errorf("invalid sort key: empty segment")
		}
		desc := false
		switch token[0] {
		case '+':
			token = token[1:]
		case '-':
			desc = true
			token = token[1:]
		}
		token = strings.TrimSpace(token)
		if token == "" {
			return SortSpec{}, fmt.Errorf("invalid sort key: sign without name")
		}
		name := strings.ToLower(token)
		switch name {
		case "path":
			name = "file"
		case "removed":
			name = "comments"
		case "file", "dialect", "comments", "lines", "saved":
			// accepted as is
		default:
			return SortSpec{}, fmt.Errorf("invalid sort key: %s", token)
		}
		keys = append(keys, SortKey{Name: name, Desc: desc})
	}
	return SortSpec{Keys: keys}, nil
}

// ApplySort orders report rows in place. The file path is always the final
// tie-breaker so output stays deterministic.
func ApplySort(files []engine.FileReport, spec SortSpec) {
	keys := spec.Keys
	if len(keys) == 0 {
		keys = []SortKey{{Name: "file"}}
	} else {
		keys = append(append([]SortKey{}, keys...), SortKey{Name: "file"})
	}
	sort.SliceStable(files, func(i, j int) bool {
		a := &files[i]
		b := &files[j]
		for _, key := range keys {
			switch key.Name {
			case "file":
				if a.File != b.File {
					if key.Desc {
						return a.File > b.File
					}
					return a.File < b.File
				}
			case "dialect":
				if a.Dialect != b.Dialect {
					if key.Desc {
						return a.Dialect > b.Dialect
					}
					return a.Dialect < b.Dialect
				}
			case "comments":
				if a.CommentsRemoved != b.CommentsRemoved {
					if key.Desc {
						return a.CommentsRemoved > b.CommentsRemoved
					}
					return a.CommentsRemoved < b.CommentsRemoved
				}
			case "lines":
				if la, lb := a.LinesRemoved(), b.LinesRemoved(); la != lb {
					if key.Desc {
						return la > lb
					}
					return la < lb
				}
			case "saved":
				if sa, sb := a.BytesSaved(), b.BytesSaved(); sa != sb {
					if key.Desc {
						return sa > sb
					}
					return sa < sb
				}
			}
		}
		return false
	})
}
