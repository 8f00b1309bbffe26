package collection

import (
	"github.com/hurlstudio/hurlc/internal/core/diag"
	"github.com/hurlstudio/hurlc/internal/core/domain/setting"
	"github.com/hurlstudio/hurlc/internal/core/format"
)

// Serialize renders c back into a document: top-level properties, the
// collection settings, one section per declared or configured folder and
// file in tree order, then the environments.
//
// A setting whose value the format cannot carry is a serialization error.
func Serialize(c *Collection) (*format.Document, error) {
	doc := &format.Document{}
	if name := c.Name(); name != "" {
		doc.Globals = append(doc.Globals, format.Pair{Key: PropertyName, Value: name})
	}
	for _, loc := range c.Locations() {
		doc.Globals = append(doc.Globals, format.Pair{Key: PropertyLocation, Value: loc})
	}
	doc.Globals = append(doc.Globals, c.properties...)

	if root := c.nodes[Root]; len(root.settings) > 0 {
		doc.Sections = append(doc.Sections, section(SettingsSection, root.settings))
	}
	c.Walk(func(h Handle, n *Node) bool {
		if h == Root {
			return true
		}
		if n.declared || len(n.settings) > 0 {
			doc.Sections = append(doc.Sections, section(n.path, n.settings))
		}
		return true
	})
	for _, h := range c.envs {
		n := c.nodes[h]
		doc.Sections = append(doc.Sections, section(EnvironmentPrefix+n.name, n.settings))
	}

	if err := format.Validate(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// Text serializes c and writes it in the collection file format.
func Text(c *Collection) (string, error) {
	doc, err := Serialize(c)
	if err != nil {
		return "", err
	}
	return doc.String()
}

// Parse is Build over the text form, with format diagnostics first.
func Parse(text, source string) (*Collection, diag.List) {
	doc, diags := format.Parse(text)
	c, more := Build(doc, source)
	return c, append(diags, more...)
}

func section(name string, settings []setting.Setting) format.Section {
	s := format.Section{Name: name}
	for _, st := range settings {
		s.Pairs = append(s.Pairs, format.Pair{Key: st.Name(), Value: st.Value()})
	}
	return s
}
