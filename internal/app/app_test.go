package app

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/specialistvlad/bridgego/internal/config"
	"github.com/specialistvlad/bridgego/internal/registry"
	"github.com/specialistvlad/bridgego/internal/term"
	"github.com/specialistvlad/bridgego/internal/testutil"
	"github.com/specialistvlad/bridgego/internal/value"
	"github.com/specialistvlad/bridgego/modules/echo"
	"github.com/specialistvlad/bridgego/modules/print"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

type staticLoader struct {
	model *config.Model
	err   error
}

func (l *staticLoader) Load(context.Context, ...string) (*config.Model, error) {
	return l.model, l.err
}

func outputLines(buf *SafeBuffer) []string {
	var lines []string
	for _, line := range strings.Split(buf.String(), "\n") {
		if strings.HasPrefix(line, "call.") {
			lines = append(lines, line)
		}
	}
	return lines
}

func echoModel(calls ...*config.Call) *config.Model {
	return &config.Model{
		Components: []*config.Component{{Type: echo.Name, Name: "e"}},
		Calls:      calls,
	}
}

func TestApp_Run_WritesResults(t *testing.T) {
	// --- Arrange ---
	model := echoModel(
		&config.Call{Component: "e", Name: "obj", Input: cty.ObjectVal(map[string]cty.Value{
			"b": cty.True,
			"a": cty.TupleVal([]cty.Value{cty.NumberIntVal(1), term.AtomVal("x"), term.Nil}),
		})},
		&config.Call{Component: "e", Name: "nothing"},
	)
	cfg := &Config{SessionPath: "unused", Output: OutputJSON}
	testApp, buf := SetupAppTest(t, cfg, &staticLoader{model: model})

	// --- Act ---
	err := testApp.Run(context.Background())

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, []string{
		`call.e.obj = {"a":[1,"x",null],"b":true}`,
		`call.e.nothing = null`,
	}, outputLines(buf))
	assert.Equal(t, int64(0), testApp.Host().Live())
}

func TestApp_Run_ProtoJSON(t *testing.T) {
	model := echoModel(&config.Call{Component: "e", Name: "n", Input: cty.NumberFloatVal(1.5)})
	cfg := &Config{SessionPath: "unused", Output: OutputProtoJSON}
	testApp, buf := SetupAppTest(t, cfg, &staticLoader{model: model})

	require.NoError(t, testApp.Run(context.Background()))
	lines := outputLines(buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "call.e.n = 1.5", lines[0])
}

func TestApp_Run_ProtoJSONIsCompact(t *testing.T) {
	model := echoModel(&config.Call{Component: "e", Name: "obj", Input: cty.ObjectVal(map[string]cty.Value{
		"b": cty.True,
		"a": cty.TupleVal([]cty.Value{cty.NumberIntVal(1), term.AtomVal("x"), term.Nil}),
	})})
	cfg := &Config{SessionPath: "unused", Output: OutputProtoJSON}

	for range 5 {
		testApp, buf := SetupAppTest(t, cfg, &staticLoader{model: model})
		require.NoError(t, testApp.Run(context.Background()))

		lines := outputLines(buf)
		require.Len(t, lines, 1)
		encoded, found := strings.CutPrefix(lines[0], "call.e.obj = ")
		require.True(t, found, lines[0])
		assert.NotContains(t, encoded, " ")
		assert.JSONEq(t, `{"a":[1,"x",null],"b":true}`, encoded)
	}
}

func TestApp_Run_PrintWritesToAppOutput(t *testing.T) {
	model := &config.Model{
		Components: []*config.Component{
			{Type: print.Name, Name: "p", Config: cty.ObjectVal(map[string]cty.Value{"prefix": cty.StringVal("printed: ")})},
		},
		Calls: []*config.Call{{Component: "p", Name: "x", Input: cty.ObjectVal(map[string]cty.Value{"a": cty.NumberIntVal(1)})}},
	}
	testApp, buf := SetupAppTest(t, &Config{SessionPath: "unused"}, &staticLoader{model: model})

	require.NoError(t, testApp.Run(context.Background()))
	assert.Contains(t, strings.Split(buf.String(), "\n"), `printed: {"a":1}`)
	assert.Equal(t, []string{`call.p.x = {"a":1}`}, outputLines(buf))
}

func TestApp_Run_StrictNumbersRejectOutput(t *testing.T) {
	infinite := &testutil.SimpleModule{
		Name: "infinite",
		Process: func(context.Context, value.Value) (value.Value, error) {
			return value.Float(math.Inf(1)), nil
		},
	}
	model := &config.Model{
		Components: []*config.Component{{Type: "infinite", Name: "i"}},
		Calls:      []*config.Call{{Component: "i", Name: "x", Input: cty.True}},
	}

	t.Run("zero fallback", func(t *testing.T) {
		testApp, buf := SetupAppTest(t, &Config{SessionPath: "unused"}, &staticLoader{model: model}, infinite)
		require.NoError(t, testApp.Run(context.Background()))
		assert.Equal(t, []string{"call.i.x = 0"}, outputLines(buf))
	})

	t.Run("strict", func(t *testing.T) {
		testApp, buf := SetupAppTest(t, &Config{SessionPath: "unused", StrictNumbers: true}, &staticLoader{model: model}, infinite)
		require.ErrorIs(t, testApp.Run(context.Background()), ErrCallsFailed)
		lines := outputLines(buf)
		require.Len(t, lines, 1)
		assert.True(t, strings.HasPrefix(lines[0], "call.i.x ! output conversion failed"), lines[0])
	})
}

func TestApp_Run_FailedCalls(t *testing.T) {
	faulty := &testutil.FaultyModule{}
	model := &config.Model{
		Components: []*config.Component{
			{Type: testutil.FaultyName, Name: "f", Config: cty.ObjectVal(map[string]cty.Value{"fail": cty.StringVal("process")})},
		},
		Calls: []*config.Call{{Component: "f", Name: "x", Input: cty.True}},
	}
	cfg := &Config{SessionPath: "unused"}
	testApp, buf := SetupAppTest(t, cfg, &staticLoader{model: model}, faulty)

	err := testApp.Run(context.Background())
	require.ErrorIs(t, err, ErrCallsFailed)

	lines := outputLines(buf)
	require.Len(t, lines, 1)
	assert.True(t, strings.HasPrefix(lines[0], "call.f.x ! "), lines[0])
	assert.Contains(t, lines[0], testutil.ErrInjected.Error())
	assert.Equal(t, int32(1), faulty.Cleanups.Load())
}

func TestApp_Run_StrictNumbers(t *testing.T) {
	model := echoModel(&config.Call{Component: "e", Name: "inf", Input: cty.PositiveInfinity})

	t.Run("zero fallback", func(t *testing.T) {
		testApp, buf := SetupAppTest(t, &Config{SessionPath: "unused"}, &staticLoader{model: model})
		require.NoError(t, testApp.Run(context.Background()))
		assert.Equal(t, []string{"call.e.inf = 0"}, outputLines(buf))
	})

	t.Run("strict", func(t *testing.T) {
		testApp, buf := SetupAppTest(t, &Config{SessionPath: "unused", StrictNumbers: true}, &staticLoader{model: model})
		require.ErrorIs(t, testApp.Run(context.Background()), ErrCallsFailed)
		lines := outputLines(buf)
		require.Len(t, lines, 1)
		assert.Contains(t, lines[0], "conversion failed")
	})
}

func TestApp_Run_UnknownComponent(t *testing.T) {
	model := &config.Model{Components: []*config.Component{{Type: "nonexistent-name", Name: "x"}}}
	testApp, _ := SetupAppTest(t, &Config{SessionPath: "unused"}, &staticLoader{model: model})

	err := testApp.Run(context.Background())
	require.ErrorIs(t, err, registry.ErrNotImplemented)
}

func TestApp_Run_EmptySession(t *testing.T) {
	testApp, buf := SetupAppTest(t, &Config{SessionPath: "unused"}, &staticLoader{model: &config.Model{}})
	require.NoError(t, testApp.Run(context.Background()))
	assert.Contains(t, buf.String(), "No components found in session")
}

func TestNewApp_PanicsOnLoadError(t *testing.T) {
	loader := &staticLoader{err: errors.New("broken file")}
	assert.PanicsWithError(t, "failed to load session: broken file", func() {
		NewApp(&SafeBuffer{}, &Config{SessionPath: "unused"}, loader)
	})
}

func TestNewApp_DefaultModules(t *testing.T) {
	testApp, _ := SetupAppTest(t, &Config{SessionPath: "unused"}, &staticLoader{model: &config.Model{}})
	assert.Equal(t, []string{"echo", "env_vars", "print"}, testApp.Registry().Names())
}

func TestHealthHandler(t *testing.T) {
	testApp, _ := SetupAppTest(t, &Config{SessionPath: "unused"}, &staticLoader{model: &config.Model{}})

	rec := httptest.NewRecorder()
	testApp.healthHandler(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	var status healthStatus
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.Equal(t, healthStatus{Status: "ok", LiveHandles: 0}, status)
}

func TestNewConfig(t *testing.T) {
	cfg, err := NewConfig(Config{SessionPath: "s.hcl"})
	require.NoError(t, err)
	assert.Equal(t, OutputJSON, cfg.Output)

	_, err = NewConfig(Config{})
	assert.ErrorContains(t, err, "SessionPath")
	_, err = NewConfig(Config{SessionPath: "s.hcl", Output: "xml"})
	assert.ErrorContains(t, err, "invalid output format")
	_, err = NewConfig(Config{SessionPath: "s.hcl", MaxContexts: -1})
	assert.Error(t, err)
}
