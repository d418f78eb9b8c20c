package value

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
)

// MarshalJSON encodes v as JSON. Object fields are written in sorted key
// order. Non-finite numbers cannot be represented and are rejected.
func (v Value) MarshalJSON() ([]byte, error) {
	if err := v.checkFinite(); err != nil {
		return nil, err
	}
	return v.appendJSON(nil), nil
}

// UnmarshalJSON decodes a single JSON document into v. Integral numbers that
// fit in an int64 become integers, everything else becomes a float.
func (v *Value) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return fmt.Errorf("value: failed to decode JSON: %w", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return errors.New("value: trailing data after JSON document")
	}

	decoded, err := fromNative(raw)
	if err != nil {
		return err
	}
	*v = decoded
	return nil
}

func (v Value) checkFinite() error {
	switch v.kind {
	case KindNumber:
		if !v.n.IsFinite() {
			return fmt.Errorf("value: cannot encode non-finite number %v as JSON", v.n.f)
		}
	case KindArray:
		for _, e := range v.arr {
			if err := e.checkFinite(); err != nil {
				return err
			}
		}
	case KindObject:
		for _, f := range v.obj {
			if err := f.checkFinite(); err != nil {
				return err
			}
		}
	}
	return nil
}

func (v Value) appendJSON(buf []byte) []byte {
	switch v.kind {
	case KindBool:
		return strconv.AppendBool(buf, v.b)
	case KindNumber:
		return v.n.appendText(buf)
	case KindString:
		return appendJSONString(buf, v.s)
	case KindArray:
		buf = append(buf, '[')
		for i, e := range v.arr {
			if i > 0 {
				buf = append(buf, ',')
			}
			buf = e.appendJSON(buf)
		}
		return append(buf, ']')
	case KindObject:
		buf = append(buf, '{')
		for i, k := range v.Keys() {
			if i > 0 {
				buf = append(buf, ',')
			}
			buf = appendJSONString(buf, k)
			buf = append(buf, ':')
			buf = v.obj[k].appendJSON(buf)
		}
		return append(buf, '}')
	default:
		return append(buf, "null"...)
	}
}

func appendJSONString(buf []byte, s string) []byte {
	// Marshalling a string cannot fail.
	quoted, _ := json.Marshal(s)
	return append(buf, quoted...)
}

// fromNative converts the output of a UseNumber JSON decode.
func fromNative(raw any) (Value, error) {
	switch x := raw.(type) {
	case nil:
		return Null(), nil
	case bool:
		return Bool(x), nil
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return Int(i), nil
		}
		f, err := x.Float64()
		if err != nil {
			return Value{}, fmt.Errorf("value: invalid JSON number %q: %w", x.String(), err)
		}
		return Float(f), nil
	case string:
		return String(x), nil
	case []any:
		elems := make([]Value, 0, len(x))
		for i, e := range x {
			ev, err := fromNative(e)
			if err != nil {
				return Value{}, fmt.Errorf("in element %d: %w", i, err)
			}
			elems = append(elems, ev)
		}
		return Value{kind: KindArray, arr: elems}, nil
	case map[string]any:
		fields := make(map[string]Value, len(x))
		for k, e := range x {
			ev, err := fromNative(e)
			if err != nil {
				return Value{}, fmt.Errorf("in field '%s': %w", k, err)
			}
			fields[k] = ev
		}
		return Object(fields), nil
	default:
		return Value{}, fmt.Errorf("value: unsupported JSON type %T", raw)
	}
}
