package native

import "github.com/koustreak/graphix/internal/dialect"

// Entry describes one column type kind.
type Entry struct {
	Kind    string `json:"kind"`
	Example string `json:"example"`
	SQL     string `json:"sql"`
	Native  string `json:"native,omitempty"`
}

// Catalog lists every kind in declaration order with a sample type and, when
// one exists, the native type that resolves to it.
func Catalog() []Entry {
	kinds := dialect.Kinds()
	out := make([]Entry, 0, len(kinds))
	for _, k := range kinds {
		sample := dialect.Sample(k)
		e := Entry{Kind: k.String(), Example: sample.String(), SQL: sample.SQL()}
		if name, ok := Reverse(sample); ok {
			e.Native = name
		}
		out = append(out, e)
	}
	return out
}
