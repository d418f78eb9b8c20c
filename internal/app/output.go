package app

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/specialistvlad/bridgego/internal/session"
	"github.com/specialistvlad/bridgego/internal/value"
	"google.golang.org/protobuf/encoding/protojson"
)

// formatResult renders one call result as a single output line:
//
//	call.<component>.<name> = <encoded output>
//	call.<component>.<name> ! <error>
//
// ok is false for error lines. Under the strict number policy an output that
// holds a non-finite number fails to convert and is reported as an error.
func (a *App) formatResult(res *session.Result) (line string, ok bool) {
	if res.Err != nil {
		return fmt.Sprintf("%s ! %v", res.Call.ID(), res.Err), false
	}
	v, err := a.converter.ToValue(res.Output)
	if err != nil {
		return fmt.Sprintf("%s ! output %v", res.Call.ID(), err), false
	}
	encoded, err := encodeValue(a.config.Output, v)
	if err != nil {
		return fmt.Sprintf("%s ! failed to encode output: %v", res.Call.ID(), err), false
	}
	return fmt.Sprintf("%s = %s", res.Call.ID(), encoded), true
}

// encodeValue renders v in the given output format as compact single-line
// JSON.
func encodeValue(format string, v value.Value) (string, error) {
	switch format {
	case OutputProtoJSON:
		b, err := protojson.MarshalOptions{}.Marshal(value.ToProto(v))
		if err != nil {
			return "", err
		}
		// protojson output is not byte-stable; it may add whitespace.
		var compact bytes.Buffer
		if err := json.Compact(&compact, b); err != nil {
			return "", err
		}
		return compact.String(), nil
	default:
		b, err := v.MarshalJSON()
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
}
