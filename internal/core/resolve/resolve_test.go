package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/hurlstudio/hurlc/internal/core/domain/collection"
	"github.com/hurlstudio/hurlc/internal/core/domain/setting"
)

const tree = `name=Resolve
location=api

[settings]
delay=100
variable=x=1
variable=y=1
user_agent=root-agent

[api]
insecure=true
variable=z=1

[api/users]
delay=200
variable=x=2

[api/users/get.hurl]
user_agent=leaf-agent
variable=w=3

[environment:prod]
variable=x=prod
custom_argument=--very-verbose
`

func parse(t *testing.T, text string) *collection.Collection {
	t.Helper()
	c, diags := collection.Parse(text, "resolve.hurlc")
	require.Empty(t, diags)
	return c
}

func values(settings []setting.Setting) []string {
	out := make([]string, len(settings))
	for i, s := range settings {
		out[i] = s.Name() + "=" + s.Value()
	}
	return out
}

func TestEffective_LeafFile(t *testing.T) {
	c := parse(t, tree)

	got, err := EffectivePath(c, "api/users/get.hurl")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"delay=200",
		"variable=x=2",
		"variable=y=1",
		"variable=z=1",
		"variable=w=3",
		"user_agent=leaf-agent",
		"insecure=true",
	}, values(got))
}

func TestEffective_IntermediateLevels(t *testing.T) {
	c := parse(t, tree)

	tests := []struct {
		path string
		want []string
	}{
		{
			path: "api",
			want: []string{"delay=100", "variable=x=1", "variable=y=1", "variable=z=1", "user_agent=root-agent", "insecure=true"},
		},
		{
			path: "api/users",
			want: []string{"delay=200", "variable=x=2", "variable=y=1", "variable=z=1", "user_agent=root-agent", "insecure=true"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := EffectivePath(c, tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, values(got))
		})
	}

	root, err := Effective(c, collection.Root)
	require.NoError(t, err)
	assert.Len(t, root, 4)
}

func TestEffective_OverwritePrecedence(t *testing.T) {
	ancestor := &setting.CaCert{File: "ancestor.pem"}
	leaf := &setting.CaCert{File: "leaf.pem"}

	got := Fold([]setting.Setting{ancestor}, nil, []setting.Setting{leaf})
	require.Len(t, got, 1)
	assert.Same(t, leaf, got[0])
}

func TestEffective_MergeAccumulation(t *testing.T) {
	x1 := &setting.Variable{VarName: "x", VarValue: "1"}
	y2 := &setting.Variable{VarName: "y", VarValue: "2"}
	x3 := &setting.Variable{VarName: "x", VarValue: "3"}

	assert.Equal(t, []setting.Setting{x1, y2}, Fold([]setting.Setting{x1}, []setting.Setting{y2}))
	assert.Equal(t, []setting.Setting{x3}, Fold([]setting.Setting{x1}, []setting.Setting{x3}))
}

func TestFold_SkipsUnknownAndRepeatedCustomArguments(t *testing.T) {
	unknown := &setting.Unknown{ConfigName: "teleport", Raw: "on"}
	a := &setting.CustomArgument{Tokens: []string{"--test"}}
	b := &setting.CustomArgument{Tokens: []string{"--test"}}

	got := Fold([]setting.Setting{unknown, a}, []setting.Setting{b})
	require.Len(t, got, 1)
	assert.Same(t, b, got[0])
}

func TestEffective_Errors(t *testing.T) {
	c := parse(t, tree)

	_, err := EffectivePath(c, "api/missing.hurl")
	assert.ErrorIs(t, err, ErrNodeNotFound)

	env, _ := c.Environment("prod")
	_, err = Effective(c, env)
	assert.ErrorIs(t, err, collection.ErrNotAllowed)

	_, err = Environment(c, "dev")
	assert.ErrorIs(t, err, ErrEnvironmentNotFound)
}

func TestOverlay_EnvironmentWins(t *testing.T) {
	c := parse(t, tree)

	effective, err := EffectivePath(c, "api/users/get.hurl")
	require.NoError(t, err)
	env, err := Environment(c, "prod")
	require.NoError(t, err)

	got := Overlay(effective, env)
	assert.Equal(t, []string{
		"delay=200",
		"variable=x=prod",
		"variable=y=1",
		"variable=z=1",
		"variable=w=3",
		"user_agent=leaf-agent",
		"insecure=true",
		"custom_argument=--very-verbose",
	}, values(got))

	again, err := EffectivePath(c, "api/users/get.hurl")
	require.NoError(t, err)
	assert.Equal(t, values(effective), values(again))
}

func genLevel(t *rapid.T, label string) []setting.Setting {
	names := []string{"a", "b", "c"}
	return rapid.SliceOfN(rapid.Custom(func(t *rapid.T) setting.Setting {
		switch rapid.IntRange(0, 3).Draw(t, "kind") {
		case 0:
			return &setting.Variable{
				VarName:  rapid.SampledFrom(names).Draw(t, "var"),
				VarValue: rapid.StringMatching(`[a-z0-9]{0,4}`).Draw(t, "val"),
			}
		case 1:
			return &setting.Delay{Millis: rapid.IntRange(0, 1000).Draw(t, "ms")}
		case 2:
			return &setting.Insecure{Enabled: rapid.Bool().Draw(t, "insecure")}
		default:
			return &setting.UserAgent{Agent: rapid.StringMatching(`[a-z]{1,6}`).Draw(t, "agent")}
		}
	}), 0, 6).Draw(t, label)
}

func TestFold_Properties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		depth := rapid.IntRange(1, 5).Draw(t, "depth")
		levels := make([][]setting.Setting, depth)
		for i := range levels {
			levels[i] = genLevel(t, "level")
		}

		first := Fold(levels...)
		second := Fold(levels...)
		assert.Equal(t, first, second)

		seenOverwrite := map[string]bool{}
		seenKey := map[string]bool{}
		for _, s := range first {
			if s.Behavior() == setting.Overwrite {
				assert.False(t, seenOverwrite[s.Name()], "overwrite kind %s listed twice", s.Name())
				seenOverwrite[s.Name()] = true
				continue
			}
			k := s.Name() + "/" + s.Key()
			assert.False(t, seenKey[k], "merge key %s listed twice", k)
			seenKey[k] = true
		}

		for _, s := range first {
			if s.Behavior() != setting.Overwrite {
				continue
			}
			var last setting.Setting
			for _, level := range levels {
				for _, x := range level {
					if x.Name() == s.Name() {
						last = x
					}
				}
			}
			assert.Same(t, last, s)
		}
	})
}
