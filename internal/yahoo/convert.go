package yahoo

import (
	"tickerprovider/internal/source"
)

// toValue converts a decoded JSON node into a source.Value tree. JSON null
// and unknown shapes become absent.
func toValue(v any) source.Value {
	switch x := v.(type) {
	case float64:
		return source.Number(x)
	case string:
		return source.String(x)
	case bool:
		return source.Bool(x)
	case map[string]any:
		m := make(map[string]source.Value, len(x))
		for k, e := range x {
			m[k] = toValue(e)
		}
		return source.Map(m)
	case []any:
		list := make([]source.Value, len(x))
		for i, e := range x {
			list[i] = toValue(e)
		}
		return source.List(list)
	default:
		return source.Value{}
	}
}

// unwrapRaw collapses Yahoo's {raw, fmt} leaf wrappers to the raw value;
// everything else passes through.
func unwrapRaw(v source.Value) source.Value {
	if v.Kind() != source.KindMap {
		return v
	}
	if raw := v.Get("raw"); !raw.IsAbsent() {
		return raw
	}
	return v
}
