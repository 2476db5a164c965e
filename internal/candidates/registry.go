package candidates

import (
	"slices"
	"strings"
)

// Writes are the write-bandwidth candidates.
func Writes() []Candidate {
	return []Candidate{
		{Name: "write-bytes", Run: WriteAllBytes},
		{Name: "write-clear", Run: ClearAllBytes},
	}
}

// Reads are the file-read candidates available on this platform.
func Reads() []Candidate {
	return append([]Candidate{
		{Name: "read-file", Run: ReadFile},
		{Name: "read-whole", Run: ReadWhole},
		{Name: "read-chunked", Run: ReadChunked},
	}, platformReads()...)
}

// Lookup finds the candidate called name in cs.
func Lookup(cs []Candidate, name string) (Candidate, bool) {
	i := slices.IndexFunc(cs, func(c Candidate) bool { return c.Name == name })
	if i < 0 {
		return Candidate{}, false
	}

	return cs[i], true
}

// Names returns the candidate names, comma separated.
func Names(cs []Candidate) string {
	names := make([]string, len(cs))
	for i, c := range cs {
		names[i] = c.Name
	}

	return strings.Join(names, ", ")
}
