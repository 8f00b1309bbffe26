package diag

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDiagnostic_String_IncludesPosition(t *testing.T) {
	d := Formatf(7, "settings", "missing '=' in %q", "garbage")

	assert.Equal(t, `error [format] line 7 in [settings]: missing '=' in "garbage"`, d.String())
}

func TestDiagnostic_AsError_MatchesKindAndCause(t *testing.T) {
	d := Serializationf("a/b", "value contains a line break")
	d.Err = fs.ErrInvalid

	err := d.AsError()

	assert.True(t, errors.Is(err, ErrSerialization))
	assert.True(t, errors.Is(err, fs.ErrInvalid))
	assert.False(t, errors.Is(err, ErrFormat))

	var de *Error
	assert.True(t, errors.As(err, &de))
	assert.Equal(t, KindSerialization, de.Diagnostic.Kind)
}

func TestList_HasErrorsAndOfKind(t *testing.T) {
	l := List{
		UnknownSettingf(1, "settings", "unknown"),
		Structuralf(4, "../x", "outside"),
	}

	assert.True(t, l.HasErrors())
	assert.Len(t, l.OfKind(KindUnknownSetting), 1)
	assert.Len(t, l.OfKind(KindFormat), 0)
	assert.False(t, List{UnknownSettingf(1, "", "x")}.HasErrors())
}
