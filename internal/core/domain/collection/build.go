package collection

import (
	"errors"
	"strings"

	"github.com/hurlstudio/hurlc/internal/core/diag"
	"github.com/hurlstudio/hurlc/internal/core/domain/setting"
	"github.com/hurlstudio/hurlc/internal/core/format"
)

// Well-known keys and section names of the collection file.
const (
	PropertyName      = "name"
	PropertyLocation  = "location"
	SettingsSection   = "settings"
	EnvironmentPrefix = "environment:"
)

// Build turns a parsed document into a collection tree.
//
// Problems are collected, never fatal: unknown setting names are kept as
// opaque entries, and a section whose path cannot be attached is dropped on
// its own while the rest of the collection loads.
func Build(doc *format.Document, source string) (*Collection, diag.List) {
	c := New(source, "")
	var diags diag.List

	for _, p := range doc.Globals {
		switch p.Key {
		case PropertyName:
			c.nodes[Root].name = p.Value
		case PropertyLocation:
			loc, ok := cleanPath(p.Value)
			if !ok {
				diags = append(diags, diag.Structuralf(p.Line, "", "location %q must be a relative path", p.Value))
				continue
			}
			if _, dup := c.byPath[loc]; dup {
				diags = append(diags, diag.Structuralf(p.Line, "", "location %q declared twice", p.Value))
				continue
			}
			c.locations = append(c.locations, loc)
			c.attach(Root, &Node{kind: KindFolder, id: childIdentity(c.nodes[Root].id, loc), name: loc, path: loc})
		default:
			c.properties = append(c.properties, p)
			diags = append(diags, diag.UnknownSettingf(p.Line, "", "unknown property %q kept verbatim", p.Key))
		}
	}
	if len(c.locations) == 0 {
		c.implicit = true
		c.locations = []string{ImplicitLocation}
		c.attach(Root, &Node{kind: KindFolder, id: childIdentity(c.nodes[Root].id, ImplicitLocation), name: ImplicitLocation, path: ImplicitLocation})
	}

	for i := range doc.Sections {
		s := &doc.Sections[i]
		switch {
		case s.Name == SettingsSection:
			c.nodes[Root].settings = append(c.nodes[Root].settings, buildSettings(s, &diags)...)
		case strings.HasPrefix(s.Name, EnvironmentPrefix):
			c.buildEnvironment(s, &diags)
		default:
			h, d, ok := c.resolveSection(s)
			if !ok {
				diags = append(diags, d)
				continue
			}
			n := c.nodes[h]
			n.declared = true
			n.settings = append(n.settings, buildSettings(s, &diags)...)
		}
	}
	return c, diags
}

func (c *Collection) buildEnvironment(s *format.Section, diags *diag.List) {
	name := strings.TrimSpace(strings.TrimPrefix(s.Name, EnvironmentPrefix))
	if name == "" {
		*diags = append(*diags, diag.Structuralf(s.Line, s.Name, "environment section without a name"))
		return
	}
	h, ok := c.envByName[name]
	if !ok {
		h = Handle(len(c.nodes))
		c.nodes = append(c.nodes, &Node{
			kind:     KindEnvironment,
			id:       environmentIdentity(c.nodes[Root].id, name),
			name:     name,
			parent:   Root,
			declared: true,
		})
		c.envs = append(c.envs, h)
		c.envByName[name] = h
	}
	env := c.nodes[h]
	for _, p := range s.Pairs {
		st, ok := buildSetting(p, s.Name, diags)
		if !ok {
			continue
		}
		if !allowedInEnvironment(st) {
			*diags = append(*diags, diag.Structuralf(p.Line, s.Name, "%s cannot be set in an environment", p.Key))
			continue
		}
		env.settings = append(env.settings, st)
	}
}

// resolveSection finds or creates the folder or file a section path names.
func (c *Collection) resolveSection(s *format.Section) (Handle, diag.Diagnostic, bool) {
	p, ok := cleanPath(s.Name)
	if !ok {
		return NoHandle, diag.Structuralf(s.Line, s.Name, "section path must be relative"), false
	}
	loc, ok := c.locationFor(p)
	if !ok {
		return NoHandle, diag.Structuralf(s.Line, s.Name, "path %s is outside every location", p), false
	}
	segments := relativeSegments(loc, p)
	for _, seg := range segments[:max(len(segments)-1, 0)] {
		if isFileName(seg) {
			return NoHandle, diag.Structuralf(s.Line, s.Name, "path %s descends beneath file %s", p, seg), false
		}
	}

	h := c.byPath[loc]
	for i, seg := range segments {
		parent := c.nodes[h]
		full := joinPath(parent.path, seg)
		if existing, ok := c.byPath[full]; ok {
			h = existing
			continue
		}
		kind := KindFolder
		if i == len(segments)-1 && isFileName(seg) {
			kind = KindFile
		}
		h = c.attach(h, &Node{kind: kind, id: childIdentity(parent.id, seg), name: seg, path: full})
	}
	return h, diag.Diagnostic{}, true
}

func buildSettings(s *format.Section, diags *diag.List) []setting.Setting {
	var out []setting.Setting
	for _, p := range s.Pairs {
		if st, ok := buildSetting(p, s.Name, diags); ok {
			out = append(out, st)
		}
	}
	return out
}

// buildSetting creates the setting for one pair. Values that produce no
// setting are dropped silently.
func buildSetting(p format.Pair, section string, diags *diag.List) (setting.Setting, bool) {
	st, err := setting.Create(p.Key, p.Value)
	switch {
	case err == nil:
		return st, true
	case errors.Is(err, setting.ErrUnknownKind):
		*diags = append(*diags, diag.UnknownSettingf(p.Line, section, "unknown setting %q kept verbatim", p.Key))
		return &setting.Unknown{ConfigName: p.Key, Raw: p.Value}, true
	default:
		return nil, false
	}
}
