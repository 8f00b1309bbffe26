// Package setting models the typed settings that can be attached to a
// collection, a folder, a file or an environment.
//
// Every kind has a stable configuration name, a value grammar, a fixed
// inheritance behavior and an argument template for the hurl command line.
// The set of kinds is closed; see Names for the table.
package setting

import (
	"errors"
	"strconv"
	"strings"
)

// Behavior is the inheritance policy of a setting kind.
type Behavior int

const (
	// Overwrite means a setting closer to the leaf replaces the ancestor's.
	Overwrite Behavior = iota
	// Merge means entries accumulate across levels, replaced per Key.
	Merge
)

// String returns the behavior name.
func (b Behavior) String() string {
	switch b {
	case Overwrite:
		return "overwrite"
	case Merge:
		return "merge"
	default:
		return "unknown"
	}
}

var (
	// ErrUnknownKind is returned by Create for unregistered configuration names.
	ErrUnknownKind = errors.New("setting kind not found")
	// ErrNoMatch is returned by Create when the value yields no setting
	// (for example a blank path). Callers omit the setting.
	ErrNoMatch = errors.New("value does not produce a setting")
)

// Setting is one typed configuration value.
type Setting interface {
	// Name is the configuration name, e.g. "proxy".
	Name() string
	// Key identifies an entry inside a Merge kind. Empty for Overwrite kinds.
	Key() string
	// Value is the serialized configuration value.
	Value() string
	// Behavior is the inheritance policy of the kind.
	Behavior() Behavior
	// Arguments are the hurl command line tokens. Empty when the setting
	// has no effect or lacks a required field.
	Arguments() []string
}

// Unknown keeps an entry whose configuration name has no registered kind,
// so that the collection can be written back unchanged.
type Unknown struct {
	ConfigName string
	Raw        string
}

func (u *Unknown) Name() string        { return u.ConfigName }
func (u *Unknown) Key() string         { return "" }
func (u *Unknown) Value() string       { return u.Raw }
func (u *Unknown) Behavior() Behavior  { return Overwrite }
func (u *Unknown) Arguments() []string { return nil }

// IsUnknown reports whether s is an opaque entry.
func IsUnknown(s Setting) bool {
	_, ok := s.(*Unknown)
	return ok
}

// composite holds the key:value pieces of a value like
// "protocol:https,host:testproxy.local,port:8080".
type composite map[string]string

const (
	compositeSeparator = ","
	compositeAssign    = ":"
)

// parseComposite splits value on ',' then each piece on the first ':'.
// Keys are case-insensitive; later duplicates win.
func parseComposite(value string) (composite, bool) {
	if strings.TrimSpace(value) == "" {
		return nil, false
	}
	c := make(composite)
	for _, piece := range strings.Split(value, compositeSeparator) {
		k, v, _ := strings.Cut(piece, compositeAssign)
		k = strings.ToLower(strings.TrimSpace(k))
		if k == "" {
			continue
		}
		c[k] = strings.TrimSpace(v)
	}
	return c, true
}

func (c composite) str(key string) string {
	return c[key]
}

func (c composite) integer(key string) int {
	i, err := strconv.Atoi(c[key])
	if err != nil {
		return 0
	}
	return i
}

func (c composite) boolean(key string) bool {
	b, err := strconv.ParseBool(c[key])
	if err != nil {
		return false
	}
	return b
}

// compositeWriter renders fields in a fixed order.
type compositeWriter struct {
	parts []string
}

func (w *compositeWriter) add(key, value string) *compositeWriter {
	w.parts = append(w.parts, key+compositeAssign+value)
	return w
}

func (w *compositeWriter) addInt(key string, value int) *compositeWriter {
	return w.add(key, strconv.Itoa(value))
}

func (w *compositeWriter) addBool(key string, value bool) *compositeWriter {
	return w.add(key, strconv.FormatBool(value))
}

func (w *compositeWriter) addOptional(key, value string) *compositeWriter {
	if value == "" {
		return w
	}
	return w.add(key, value)
}

func (w *compositeWriter) String() string {
	return strings.Join(w.parts, compositeSeparator)
}

// plain returns the trimmed value, or false when it is blank.
func plain(value string) (string, bool) {
	value = strings.TrimSpace(value)
	return value, value != ""
}

func flagWithValue(flag, value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	return []string{flag, value}
}
