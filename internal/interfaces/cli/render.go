package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/hurlstudio/hurlc/internal/core/diag"
	"github.com/hurlstudio/hurlc/internal/core/domain/collection"
	"github.com/hurlstudio/hurlc/internal/core/domain/setting"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86"))
	nodeStyle = lipgloss.NewStyle().
			Bold(true)
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
	keyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))
	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))
	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196"))
	okStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("46"))
)

const indentUnit = "  "

// renderCollection renders the tree with local settings under each node.
func renderCollection(c *collection.Collection) string {
	var lines []string

	name := c.Name()
	if name == "" {
		name = "(unnamed collection)"
	}
	root, _ := c.Node(collection.Root)
	lines = append(lines, titleStyle.Render(name)+" "+dimStyle.Render(root.ID().Short()))

	depth := map[collection.Handle]int{collection.Root: 0}
	c.Walk(func(h collection.Handle, n *collection.Node) bool {
		d := 0
		if h != collection.Root {
			d = depth[n.Parent()] + 1
			depth[h] = d
			label := n.Name()
			if n.Kind() == collection.KindFolder {
				label += "/"
			}
			lines = append(lines, strings.Repeat(indentUnit, d)+nodeStyle.Render(label)+" "+dimStyle.Render(n.ID().Short()))
		}
		lines = append(lines, settingLines(n.Settings(), d+1)...)
		return true
	})

	envs := c.Environments()
	if len(envs) > 0 {
		lines = append(lines, "", titleStyle.Render("Environments"))
		for _, h := range envs {
			n, _ := c.Node(h)
			lines = append(lines, indentUnit+nodeStyle.Render(n.Name())+" "+dimStyle.Render(n.ID().Short()))
			lines = append(lines, settingLines(n.Settings(), 2)...)
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func settingLines(settings []setting.Setting, depth int) []string {
	lines := make([]string, 0, len(settings))
	for _, s := range settings {
		line := strings.Repeat(indentUnit, depth) + keyStyle.Render(s.Name()+" =") + " " + setting.Display(s)
		if setting.IsUnknown(s) {
			line += " " + warningStyle.Render("(unknown)")
		}
		lines = append(lines, line)
	}
	return lines
}

// renderEffective renders resolved settings with their behavior.
func renderEffective(settings []setting.Setting) string {
	if len(settings) == 0 {
		return dimStyle.Render("no settings apply")
	}
	width := 0
	for _, s := range settings {
		width = max(width, len(s.Name()))
	}
	lines := make([]string, 0, len(settings))
	for _, s := range settings {
		lines = append(lines, fmt.Sprintf("%s %s %s",
			keyStyle.Render(fmt.Sprintf("%-*s", width, s.Name())),
			dimStyle.Render(fmt.Sprintf("%-9s", s.Behavior())),
			setting.Display(s)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// writeDiagnostics prints one line per diagnostic prefixed with path.
func writeDiagnostics(w io.Writer, path string, diags diag.List) {
	for _, d := range diags {
		style := warningStyle
		if d.Severity == diag.SeverityError {
			style = errorStyle
		}
		fmt.Fprintf(w, "%s: %s\n", path, style.Render(d.String()))
	}
}
