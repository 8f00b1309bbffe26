// Package diag holds the problem taxonomy shared by the collection parser,
// the setting registry and the tree builder.
//
// Parse- and build-time problems are collected as Diagnostics and returned
// next to a best-effort result. Only contract violations surface as errors.
package diag

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies a diagnostic.
type Kind int

const (
	// KindFormat is an unparseable line or section header. The line is skipped.
	KindFormat Kind = iota
	// KindUnknownSetting is a configuration name with no registered kind.
	// The raw value is kept so the collection can be written back.
	KindUnknownSetting
	// KindStructural is a section whose path cannot be attached to the tree.
	// Only that section is dropped.
	KindStructural
	// KindSerialization is an in-memory value that cannot be rendered back
	// to the text format.
	KindSerialization
)

// Sentinels for errors.Is matching on wrapped diagnostics.
var (
	ErrFormat         = errors.New("format error")
	ErrUnknownSetting = errors.New("unknown setting kind")
	ErrStructural     = errors.New("structural error")
	ErrSerialization  = errors.New("serialization error")
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindFormat:
		return "format"
	case KindUnknownSetting:
		return "unknown-setting"
	case KindStructural:
		return "structural"
	case KindSerialization:
		return "serialization"
	default:
		return "unknown"
	}
}

func (k Kind) sentinel() error {
	switch k {
	case KindFormat:
		return ErrFormat
	case KindUnknownSetting:
		return ErrUnknownSetting
	case KindStructural:
		return ErrStructural
	case KindSerialization:
		return ErrSerialization
	default:
		return nil
	}
}

// Severity tells callers whether the affected input was kept.
type Severity int

const (
	SeverityWarning Severity = iota // input kept or safely skipped
	SeverityError                   // input dropped
)

// String returns the severity name.
func (s Severity) String() string {
	if s == SeverityError {
		return "error"
	}
	return "warning"
}

// Diagnostic describes one problem found while loading a collection.
type Diagnostic struct {
	Kind     Kind
	Severity Severity
	Line     int    // 1-based; 0 means "not set"
	Section  string // section name; empty for top-level entries
	Message  string
	Err      error
}

// String renders the diagnostic on one line.
func (d Diagnostic) String() string {
	var b strings.Builder
	b.WriteString(d.Severity.String())
	b.WriteString(" [")
	b.WriteString(d.Kind.String())
	b.WriteString("]")
	if d.Line > 0 {
		fmt.Fprintf(&b, " line %d", d.Line)
	}
	if d.Section != "" {
		fmt.Fprintf(&b, " in [%s]", d.Section)
	}
	b.WriteString(": ")
	b.WriteString(d.Message)
	if d.Err != nil {
		b.WriteString(": ")
		b.WriteString(d.Err.Error())
	}
	return b.String()
}

// Error wraps a diagnostic for places that must return an error.
type Error struct {
	Diagnostic Diagnostic
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	return e.Diagnostic.String()
}

// Unwrap exposes both the kind sentinel and the underlying cause.
func (e *Error) Unwrap() []error {
	errs := []error{e.Diagnostic.Kind.sentinel()}
	if e.Diagnostic.Err != nil {
		errs = append(errs, e.Diagnostic.Err)
	}
	return errs
}

// AsError wraps d as an error.
func (d Diagnostic) AsError() error {
	return &Error{Diagnostic: d}
}

// Formatf builds a KindFormat diagnostic.
func Formatf(line int, section, format string, args ...any) Diagnostic {
	return Diagnostic{Kind: KindFormat, Severity: SeverityError, Line: line, Section: section, Message: fmt.Sprintf(format, args...)}
}

// UnknownSettingf builds a KindUnknownSetting diagnostic.
func UnknownSettingf(line int, section, format string, args ...any) Diagnostic {
	return Diagnostic{Kind: KindUnknownSetting, Severity: SeverityWarning, Line: line, Section: section, Message: fmt.Sprintf(format, args...)}
}

// Structuralf builds a KindStructural diagnostic.
func Structuralf(line int, section, format string, args ...any) Diagnostic {
	return Diagnostic{Kind: KindStructural, Severity: SeverityError, Line: line, Section: section, Message: fmt.Sprintf(format, args...)}
}

// Serializationf builds a KindSerialization diagnostic.
func Serializationf(section, format string, args ...any) Diagnostic {
	return Diagnostic{Kind: KindSerialization, Severity: SeverityError, Section: section, Message: fmt.Sprintf(format, args...)}
}

// List is an ordered set of diagnostics.
type List []Diagnostic

// HasErrors reports whether any diagnostic dropped input.
func (l List) HasErrors() bool {
	for _, d := range l {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

// OfKind returns the diagnostics of kind k.
func (l List) OfKind(k Kind) List {
	var out List
	for _, d := range l {
		if d.Kind == k {
			out = append(out, d)
		}
	}
	return out
}
