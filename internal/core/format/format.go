// Package format reads and writes the line-based collection file format.
//
//	# comment
//	name=Valid collection
//	location=../HurlFiles/
//
//	[settings]
//	proxy=protocol:https,host:testproxy.local,port:8080
//
//	[../HurlFiles/]
//	file_root=../HurlFiles/
//
// Entries before the first section header are top-level pairs. Values are
// not escaped; '=' only separates on its first occurrence.
package format

import (
	"strings"

	"github.com/hurlstudio/hurlc/internal/core/diag"
)

const (
	commentPrefix    = "#"
	altCommentPrefix = ";"
	sectionOpen      = "["
	sectionClose     = "]"
	pairSeparator    = "="
)

// Pair is one key=value entry.
type Pair struct {
	Key   string
	Value string
	Line  int
}

// Section is a named block of pairs.
type Section struct {
	Name  string
	Line  int
	Pairs []Pair
}

// Document is the parsed form of a collection file.
type Document struct {
	Globals  []Pair
	Sections []Section
}

// Section returns the first section called name.
func (d *Document) Section(name string) (*Section, bool) {
	for i := range d.Sections {
		if d.Sections[i].Name == name {
			return &d.Sections[i], true
		}
	}
	return nil, false
}

// Parse splits text into top-level pairs and sections.
//
// Malformed lines are dropped and reported; Parse never fails as a whole.
func Parse(text string) (*Document, diag.List) {
	doc := &Document{}
	var diags diag.List
	current := -1

	for i, raw := range strings.Split(text, "\n") {
		lineNo := i + 1
		line := strings.TrimSpace(strings.TrimSuffix(raw, "\r"))

		if line == "" || strings.HasPrefix(line, commentPrefix) || strings.HasPrefix(line, altCommentPrefix) {
			continue
		}

		sectionName := ""
		if current >= 0 {
			sectionName = doc.Sections[current].Name
		}

		if strings.HasPrefix(line, sectionOpen) {
			if !strings.HasSuffix(line, sectionClose) {
				diags = append(diags, diag.Formatf(lineNo, sectionName, "unterminated section header %q", line))
				continue
			}
			name := strings.TrimSpace(line[len(sectionOpen) : len(line)-len(sectionClose)])
			if name == "" {
				diags = append(diags, diag.Formatf(lineNo, sectionName, "empty section name"))
				continue
			}
			doc.Sections = append(doc.Sections, Section{Name: name, Line: lineNo})
			current = len(doc.Sections) - 1
			continue
		}

		key, value, ok := strings.Cut(line, pairSeparator)
		if !ok {
			diags = append(diags, diag.Formatf(lineNo, sectionName, "missing %q in %q", pairSeparator, line))
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			diags = append(diags, diag.Formatf(lineNo, sectionName, "empty key in %q", line))
			continue
		}

		pair := Pair{Key: key, Value: strings.TrimSpace(value), Line: lineNo}
		if current < 0 {
			doc.Globals = append(doc.Globals, pair)
		} else {
			doc.Sections[current].Pairs = append(doc.Sections[current].Pairs, pair)
		}
	}

	return doc, diags
}
