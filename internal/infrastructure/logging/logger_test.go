package logging

import (
	"bytes"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
)

func TestNew_Levels(t *testing.T) {
	tests := []struct {
		level string
		debug bool
		want  hclog.Level
	}{
		{level: "info", want: hclog.Info},
		{level: "", want: hclog.Warn},
		{level: "nonsense", want: hclog.Warn},
		{level: "error", debug: true, want: hclog.Debug},
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			l := New(tt.level, tt.debug, &bytes.Buffer{})
			assert.Equal(t, tt.want, l.GetLevel())
			assert.Equal(t, Name, l.Name())
		})
	}
}

func TestNew_WritesKeyValuePairs(t *testing.T) {
	var buf bytes.Buffer
	l := New("info", false, &buf)

	l.Info("collection loaded", "path", "api.hurlc", "warnings", 2)
	l.Debug("hidden")

	out := buf.String()
	assert.Contains(t, out, "hurlc: collection loaded")
	assert.Contains(t, out, "path=api.hurlc")
	assert.Contains(t, out, "warnings=2")
	assert.NotContains(t, out, "hidden")
}
