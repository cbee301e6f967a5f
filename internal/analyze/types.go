package analyze

import (
	"fmt"
	"strings"
)

// Finding is one mismatch between a schema and its generated code.
type Finding struct {
	// Package is the import path of the package holding the mismatch.
	Package string
	// Name is the declaration concerned, if any.
	Name string
	// Msg describes the mismatch.
	Msg string
}

func (f Finding) String() string {
	if f.Name == "" {
		return f.Package + ": " + f.Msg
	}

	return f.Package + "." + f.Name + ": " + f.Msg
}

// Report collects the findings of a verification.
type Report struct {
	Findings []Finding
}

func (r *Report) addf(pkg, name, format string, args ...any) {
	r.Findings = append(r.Findings, Finding{Package: pkg, Name: name, Msg: fmt.Sprintf(format, args...)})
}

// OK reports whether nothing was found.
func (r *Report) OK() bool { return len(r.Findings) == 0 }

// Err returns nil for an empty report and an error listing the findings
// otherwise.
func (r *Report) Err() error {
	if r.OK() {
		return nil
	}

	lines := make([]string, len(r.Findings))
	for i, f := range r.Findings {
		lines[i] = "  " + f.String()
	}

	return fmt.Errorf("%d mismatches:\n%s", len(r.Findings), strings.Join(lines, "\n"))
}
