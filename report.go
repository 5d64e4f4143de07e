package litterbox

import "strings"

// Report is the outcome of one detection cycle. Created and Deleted are
// the litter; Transient is advisory only and never dirties the report.
// All three are lexicographically sorted relative paths.
type Report struct {
	Created   []string
	Deleted   []string
	Transient []string
}

// Clean reports whether the tree came back with its entry set intact.
func (r *Report) Clean() bool {
	return len(r.Created) == 0 && len(r.Deleted) == 0
}

// String renders the report as indented sections. Empty sections are
// omitted; a clean report without transient paths renders empty.
func (r *Report) String() string {
	var b strings.Builder
	section(&b, "Created:", r.Created)
	section(&b, "Deleted:", r.Deleted)
	section(&b, "Transient:", r.Transient)
	return strings.TrimSuffix(b.String(), "\n")
}

func section(b *strings.Builder, header string, paths []string) {
	if len(paths) == 0 {
		return
	}
	b.WriteString(header)
	b.WriteString("\n")
	for _, p := range paths {
		b.WriteString("  ")
		b.WriteString(p)
		b.WriteString("\n")
	}
}
