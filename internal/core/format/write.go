package format

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/hurlstudio/hurlc/internal/core/diag"
)

// Write renders doc in the collection file format.
//
// Keys and values that the grammar cannot represent (line breaks, '=' in a
// key, a key that would read as a comment or section header) are rejected
// with a serialization error before anything is written.
func Write(w io.Writer, doc *Document) error {
	if err := Validate(doc); err != nil {
		return err
	}

	bw := bufio.NewWriter(w)
	for _, p := range doc.Globals {
		fmt.Fprintf(bw, "%s%s%s\n", p.Key, pairSeparator, p.Value)
	}
	for i, s := range doc.Sections {
		if i > 0 || len(doc.Globals) > 0 {
			bw.WriteString("\n")
		}
		fmt.Fprintf(bw, "%s%s%s\n", sectionOpen, s.Name, sectionClose)
		for _, p := range s.Pairs {
			fmt.Fprintf(bw, "%s%s%s\n", p.Key, pairSeparator, p.Value)
		}
	}
	return bw.Flush()
}

// String renders doc to a string.
func (d *Document) String() (string, error) {
	var b strings.Builder
	if err := Write(&b, d); err != nil {
		return "", err
	}
	return b.String(), nil
}

// Validate reports the first key, value or section name in doc that the
// format cannot represent.
func Validate(doc *Document) error {
	for _, p := range doc.Globals {
		if err := validatePair("", p); err != nil {
			return err
		}
	}
	for _, s := range doc.Sections {
		name := strings.TrimSpace(s.Name)
		if name == "" || name != s.Name || strings.ContainsAny(s.Name, "\r\n]") {
			return diag.Serializationf(s.Name, "section name %q cannot be written", s.Name).AsError()
		}
		for _, p := range s.Pairs {
			if err := validatePair(s.Name, p); err != nil {
				return err
			}
		}
	}
	return nil
}

func validatePair(section string, p Pair) error {
	key := strings.TrimSpace(p.Key)
	switch {
	case key == "" || key != p.Key:
		return diag.Serializationf(section, "key %q cannot be written", p.Key).AsError()
	case strings.ContainsAny(p.Key, "=\r\n"):
		return diag.Serializationf(section, "key %q contains a reserved character", p.Key).AsError()
	case strings.HasPrefix(p.Key, commentPrefix), strings.HasPrefix(p.Key, altCommentPrefix), strings.HasPrefix(p.Key, sectionOpen):
		return diag.Serializationf(section, "key %q would not read back as a pair", p.Key).AsError()
	case strings.ContainsAny(p.Value, "\r\n"):
		return diag.Serializationf(section, "value of %q contains a line break", p.Key).AsError()
	case strings.TrimSpace(p.Value) != p.Value:
		return diag.Serializationf(section, "value of %q has surrounding whitespace", p.Key).AsError()
	}
	return nil
}
