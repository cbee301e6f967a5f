package diagnostic

import (
	"errors"
	"strings"
)

// Severity ranks a Diagnostic.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

var severityNames = [...]string{
	SeverityInfo:    "info",
	SeverityWarning: "warning",
	SeverityError:   "error",
}

func (s Severity) String() string {
	if s < 0 || int(s) >= len(severityNames) {
		return "unknown"
	}

	return severityNames[s]
}

// Diagnostic is one finding about a schema.
type Diagnostic struct {
	Severity Severity
	// Code identifies the kind of finding ("unknown_field_type").
	Code    string
	Message string
	// Item is the type string of the item concerned, "" for the package.
	Item string
	// Field is the field concerned, if any.
	Field string
}

// String renders "[Item] Field: [code] message", leaving out what is empty.
func (d Diagnostic) String() string {
	var sb strings.Builder

	if d.Item != "" {
		sb.WriteString("[" + d.Item + "]")
	}

	if d.Field != "" {
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}

		sb.WriteString(d.Field)
	}

	if sb.Len() > 0 {
		sb.WriteString(": ")
	}

	if d.Code != "" {
		sb.WriteString("[" + d.Code + "] ")
	}

	sb.WriteString(d.Message)

	return sb.String()
}

// Diagnostics groups findings by severity.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
	Infos    []Diagnostic
}

func (d *Diagnostics) add(sev Severity, code, message, item, field string) {
	x := Diagnostic{Severity: sev, Code: code, Message: message, Item: item, Field: field}

	switch sev {
	case SeverityError:
		d.Errors = append(d.Errors, x)
	case SeverityWarning:
		d.Warnings = append(d.Warnings, x)
	default:
		d.Infos = append(d.Infos, x)
	}
}

func (d *Diagnostics) AddError(code, message, item, field string) {
	d.add(SeverityError, code, message, item, field)
}

func (d *Diagnostics) AddWarning(code, message, item, field string) {
	d.add(SeverityWarning, code, message, item, field)
}

func (d *Diagnostics) AddInfo(code, message, item, field string) {
	d.add(SeverityInfo, code, message, item, field)
}

// HasErrors reports whether any finding is an error.
func (d *Diagnostics) HasErrors() bool {
	return len(d.Errors) > 0
}

// Merge appends the findings of other.
func (d *Diagnostics) Merge(other Diagnostics) {
	for _, x := range other.All() {
		d.add(x.Severity, x.Code, x.Message, x.Item, x.Field)
	}
}

// All returns errors, then warnings, then infos.
func (d *Diagnostics) All() []Diagnostic {
	out := make([]Diagnostic, 0, len(d.Errors)+len(d.Warnings)+len(d.Infos))
	out = append(out, d.Errors...)
	out = append(out, d.Warnings...)

	return append(out, d.Infos...)
}

// Error joins the error findings into one error, nil when there are none.
func (d *Diagnostics) Error() error {
	errs := make([]error, len(d.Errors))
	for i, e := range d.Errors {
		errs[i] = errors.New(e.String())
	}

	return errors.Join(errs...)
}
