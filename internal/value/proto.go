package value

import (
	"google.golang.org/protobuf/types/known/structpb"
)

// ToProto converts v into the protobuf well-known Value type. Protobuf
// numbers are doubles, so integers beyond 2^53 lose precision.
func ToProto(v Value) *structpb.Value {
	switch v.kind {
	case KindBool:
		return structpb.NewBoolValue(v.b)
	case KindNumber:
		return structpb.NewNumberValue(v.n.Float64())
	case KindString:
		return structpb.NewStringValue(v.s)
	case KindArray:
		list := &structpb.ListValue{Values: make([]*structpb.Value, 0, len(v.arr))}
		for _, e := range v.arr {
			list.Values = append(list.Values, ToProto(e))
		}
		return structpb.NewListValue(list)
	case KindObject:
		st := &structpb.Struct{Fields: make(map[string]*structpb.Value, len(v.obj))}
		for k, f := range v.obj {
			st.Fields[k] = ToProto(f)
		}
		return structpb.NewStructValue(st)
	default:
		return structpb.NewNullValue()
	}
}

// FromProto converts a protobuf well-known Value. Integral doubles that fit in
// an int64 come back as integers. A nil message or an unset kind is Null.
func FromProto(pv *structpb.Value) Value {
	switch k := pv.GetKind().(type) {
	case *structpb.Value_BoolValue:
		return Bool(k.BoolValue)
	case *structpb.Value_NumberValue:
		if i, ok := floatToInt64(k.NumberValue); ok {
			return Int(i)
		}
		return Float(k.NumberValue)
	case *structpb.Value_StringValue:
		return String(k.StringValue)
	case *structpb.Value_ListValue:
		values := k.ListValue.GetValues()
		elems := make([]Value, 0, len(values))
		for _, e := range values {
			elems = append(elems, FromProto(e))
		}
		return Value{kind: KindArray, arr: elems}
	case *structpb.Value_StructValue:
		fields := k.StructValue.GetFields()
		obj := make(map[string]Value, len(fields))
		for name, f := range fields {
			obj[name] = FromProto(f)
		}
		return Object(obj)
	default:
		return Null()
	}
}
