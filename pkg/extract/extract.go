// Package extract overlays values from one mapping onto another without
// adding keys, so external configuration can selectively replace defaults.
package extract

import (
	"reflect"

	"github.com/bft-labs/graphitepush/pkg/log"
)

// Extract overwrites dst[key] with src[key] for every key already in dst
// whose source value is truthy. Keys missing from dst are never added.
func Extract(dst, src map[string]interface{}) {
	ExtractWithLogger(dst, src, log.NewNoopLogger())
}

// ExtractWithLogger is Extract with debug logging of each lookup.
func ExtractWithLogger(dst, src map[string]interface{}, logger log.Logger) {
	for key := range dst {
		logger.Debug("getting key", log.String("key", key))
		v, ok := src[key]
		if !ok || !Truthy(v) {
			continue
		}
		logger.Debug("extracted from config", log.String("key", key), log.Any("value", v))
		dst[key] = v
	}
}

// Truthy reports whether v counts as set: nil, false, numeric zero, and
// empty strings, slices, maps and arrays do not; nil pointers and
// interfaces do not either.
func Truthy(v interface{}) bool {
	if v == nil {
		return false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Bool:
		return rv.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() != 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rv.Uint() != 0
	case reflect.Float32, reflect.Float64:
		return rv.Float() != 0
	case reflect.Complex64, reflect.Complex128:
		return rv.Complex() != 0
	case reflect.String, reflect.Slice, reflect.Map, reflect.Array, reflect.Chan:
		return rv.Len() != 0
	case reflect.Ptr, reflect.Interface, reflect.Func:
		return !rv.IsNil()
	default:
		return true
	}
}
