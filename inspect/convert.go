package inspect

import (
	"fmt"
	"reflect"
	"strconv"
	"time"
)

var timeType = reflect.TypeOf(time.Time{})

// defaultTimeLayouts are tried in order when converting a time literal
var defaultTimeLayouts = []string{time.RFC3339, "2006-01-02 15:04:05.000", "2006-01-02"}

// ConvertLiteral converts a tag literal into a value of the target type.
// Supports scalars, time and pointers to either.
func ConvertLiteral(literal string, target reflect.Type) (interface{}, error) {
	if target.Kind() == reflect.Ptr {
		value, err := ConvertLiteral(literal, target.Elem())
		if err != nil {
			return nil, err
		}
		ptr := reflect.New(target.Elem())
		ptr.Elem().Set(reflect.ValueOf(value))
		return ptr.Interface(), nil
	}
	if target == timeType {
		for _, layout := range defaultTimeLayouts {
			if ts, err := time.Parse(layout, literal); err == nil {
				return ts, nil
			}
		}
		return nil, fmt.Errorf("unable to parse time literal %q", literal)
	}
	ret := reflect.New(target).Elem()
	switch target.Kind() {
	case reflect.String:
		ret.SetString(literal)
	case reflect.Bool:
		value, err := strconv.ParseBool(literal)
		if err != nil {
			return nil, fmt.Errorf("unable to parse bool literal %q: %w", literal, err)
		}
		ret.SetBool(value)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		value, err := strconv.ParseInt(literal, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("unable to parse int literal %q: %w", literal, err)
		}
		ret.SetInt(value)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		value, err := strconv.ParseUint(literal, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("unable to parse uint literal %q: %w", literal, err)
		}
		ret.SetUint(value)
	case reflect.Float32, reflect.Float64:
		value, err := strconv.ParseFloat(literal, 64)
		if err != nil {
			return nil, fmt.Errorf("unable to parse float literal %q: %w", literal, err)
		}
		ret.SetFloat(value)
	default:
		return nil, fmt.Errorf("unsupported default literal target: %s", target.String())
	}
	return ret.Interface(), nil
}
