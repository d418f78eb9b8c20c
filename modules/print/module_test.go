package print

import (
	"bytes"
	"context"
	"math"
	"testing"

	"github.com/specialistvlad/bridgego/internal/registry"
	"github.com/specialistvlad/bridgego/internal/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrint(t *testing.T) {
	out := &bytes.Buffer{}
	r := registry.New()
	(&Module{Out: out}).Register(r)
	ctx := context.Background()

	c, err := r.Create(Name, value.Object(map[string]value.Value{"prefix": value.String("> ")}))
	require.NoError(t, err)
	require.NoError(t, c.Initialize(ctx))

	in := value.Object(map[string]value.Value{"b": value.Int(2), "a": value.Array(value.Null())})
	got, err := c.Process(ctx, in)
	require.NoError(t, err)
	assert.True(t, in.Equal(got))
	assert.Equal(t, "> {\"a\":[null],\"b\":2}\n", out.String())

	_, err = c.Process(ctx, value.Float(math.Inf(1)))
	assert.ErrorContains(t, err, "non-finite")
	require.NoError(t, c.Cleanup(ctx))
}

func TestPrint_BadPrefix(t *testing.T) {
	r := registry.New()
	(&Module{}).Register(r)

	_, err := r.Create(Name, value.Object(map[string]value.Value{"prefix": value.Int(1)}))
	assert.ErrorContains(t, err, "prefix must be a string")
}
