package hcl_adapter

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/bridgego/internal/term"
	"github.com/specialistvlad/bridgego/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func TestLoader_Load(t *testing.T) {
	// --- Arrange ---
	dir := testutil.WriteSessionFiles(t, map[string]string{
		"a_components.hcl": `
			component "echo" "greeter" {
				config = { greeting = "hello" }
			}
			component "echo" "bare" {}
		`,
		"nested/b_calls.hcl": `
			call "greeter" "first" {
				input = { message = upper("hi"), tags = ["a", atom("b")], nothing = null }
			}
			call "bare" "empty" {}
			call "greeter" "second" {
				input = atom("nil")
			}
		`,
		"ignored.txt": `not hcl`,
	})

	// --- Act ---
	model, err := NewLoader().Load(context.Background(), dir)

	// --- Assert ---
	require.NoError(t, err)
	require.Len(t, model.Components, 2)
	assert.Equal(t, "echo", model.Components[0].Type)
	assert.Equal(t, "greeter", model.Components[0].Name)
	assert.True(t, model.Components[0].Config.GetAttr("greeting").RawEquals(cty.StringVal("hello")))
	assert.True(t, model.Components[1].Config.IsNull(), "omitted config must be null")

	require.Len(t, model.Calls, 3)
	first := model.Calls[0]
	assert.Equal(t, "call.greeter.first", first.ID())
	assert.True(t, first.Input.GetAttr("message").RawEquals(cty.StringVal("HI")))
	tags := first.Input.GetAttr("tags")
	name, ok := term.AtomName(tags.Index(cty.NumberIntVal(1)))
	require.True(t, ok)
	assert.Equal(t, "b", name)
	assert.True(t, first.Input.GetAttr("nothing").IsNull())

	assert.True(t, model.Calls[1].Input.IsNull())
	assert.True(t, model.Calls[2].Input.RawEquals(term.Nil))
	assert.Contains(t, model.Calls[0].DeclRange.Filename, "b_calls.hcl")
}

func TestLoader_Locals(t *testing.T) {
	dir := testutil.WriteSessionFiles(t, map[string]string{
		"main.hcl": `
			locals {
				greeting = "${local.prefix}, world"
				prefix   = "hello"
			}
			locals {
				payload = { text = local.greeting, size = strlen(local.greeting) }
			}
			component "echo" "e" {
				config = local.payload
			}
			call "e" "c" {
				input = local.payload.text
			}
		`,
	})

	model, err := NewLoader().Load(context.Background(), dir)
	require.NoError(t, err)
	assert.True(t, model.Calls[0].Input.RawEquals(cty.StringVal("hello, world")))
	size := model.Components[0].Config.GetAttr("size")
	assert.True(t, size.RawEquals(cty.NumberIntVal(12)))
}

func TestLoader_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		hcl     string
		wantErr string
	}{
		{
			name:    "syntax error",
			hcl:     `component "echo" "a" {`,
			wantErr: "failed to parse",
		},
		{
			name:    "unknown block",
			hcl:     `step "print" "a" {}`,
			wantErr: "failed to decode",
		},
		{
			name:    "unknown attribute",
			hcl:     `component "echo" "a" { settings = 1 }`,
			wantErr: "failed to decode",
		},
		{
			name: "duplicate component",
			hcl: `
				component "echo" "a" {}
				component "echo" "a" {}
			`,
			wantErr: "duplicate component 'a'",
		},
		{
			name:    "undeclared component",
			hcl:     `call "ghost" "x" {}`,
			wantErr: "undeclared component 'ghost'",
		},
		{
			name: "bad expression",
			hcl: `
				component "echo" "a" {}
				call "a" "x" { input = nosuchfunc(1) }
			`,
			wantErr: "call 'a.x': invalid input",
		},
		{
			name:    "cyclic locals",
			hcl:     "locals {\n a = local.b\n b = local.a\n}",
			wantErr: "cannot resolve locals a, b",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			dir := testutil.WriteSessionFiles(t, map[string]string{"main.hcl": tc.hcl})
			_, err := NewLoader().Load(context.Background(), dir)
			require.Error(t, err)
			assert.ErrorContains(t, err, tc.wantErr)
		})
	}
}

func TestLoader_MissingPathIsEmpty(t *testing.T) {
	model, err := NewLoader().Load(context.Background(), filepath.Join(t.TempDir(), "absent"))
	require.NoError(t, err)
	assert.Empty(t, model.Components)
	assert.Empty(t, model.Calls)
}

func TestLoader_FileOrderIsStable(t *testing.T) {
	dir := testutil.WriteSessionFiles(t, map[string]string{
		"b.hcl": `call "a" "from_b" {}`,
		"a.hcl": `
			component "echo" "a" {}
			call "a" "from_a" {}
		`,
	})

	model, err := NewLoader().Load(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, model.Calls, 2)
	assert.Equal(t, "from_a", model.Calls[0].Name)
	assert.Equal(t, "from_b", model.Calls[1].Name)
}
