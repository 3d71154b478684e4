package router

import (
	"errors"
	"math"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/spf13/cast"
)

var (
	errNotBool    = errors.New("not a boolean")
	errNotDecimal = errors.New("not a decimal number")
	errNotFinite  = errors.New("not a finite number")
)

// Captures are decimal only: no base prefixes, digit separators, hex
// floats, NaN or Inf.
var decimalFloatRe = regexp.MustCompile(`^[+-]?([0-9]+(\.[0-9]*)?|\.[0-9]+)([eE][+-]?[0-9]+)?$`)

// coerce converts a raw capture to the declared parameter type.
func coerce(raw string, info ParamInfo) (reflect.Value, error) {
	v := reflect.New(info.Type).Elem()

	switch info.Kind {
	case KindUntyped:
		return reflect.ValueOf(raw), nil

	case KindString:
		v.SetString(raw)

	case KindInt:
		bits := info.Type.Bits()
		if isUnsigned(info.Type.Kind()) {
			n, err := strconv.ParseUint(raw, 10, bits)
			if err != nil {
				return v, coercionError(info, raw, intError(err, info.Type))
			}
			v.SetUint(n)
			break
		}
		n, err := strconv.ParseInt(raw, 10, bits)
		if err != nil {
			return v, coercionError(info, raw, intError(err, info.Type))
		}
		v.SetInt(n)

	case KindFloat:
		if !decimalFloatRe.MatchString(raw) {
			return v, coercionError(info, raw, errNotDecimal)
		}
		f, err := cast.ToFloat64E(raw)
		if err != nil {
			return v, coercionError(info, raw, err)
		}
		if math.IsInf(f, 0) || math.IsNaN(f) {
			return v, coercionError(info, raw, errNotFinite)
		}
		if v.OverflowFloat(f) {
			return v, coercionError(info, raw, errors.New("value overflows "+info.Type.String()))
		}
		v.SetFloat(f)

	case KindBool:
		b, err := parseBool(raw)
		if err != nil {
			return v, coercionError(info, raw, err)
		}
		v.SetBool(b)

	default:
		return v, coercionError(info, raw, errors.New("request parameters are injected, not captured"))
	}

	return v, nil
}

// parseBool accepts the permissive boolean grammar used in URLs.
func parseBool(raw string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "true", "t", "yes", "y", "on":
		return true, nil
	case "0", "false", "f", "no", "n", "off":
		return false, nil
	}
	return false, errNotBool
}

// intError maps a strconv failure to an overflow or errNotDecimal.
func intError(err error, t reflect.Type) error {
	if errors.Is(err, strconv.ErrRange) {
		return errors.New("value overflows " + t.String())
	}
	return errNotDecimal
}

func isUnsigned(k reflect.Kind) bool {
	switch k {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	}
	return false
}

func coercionError(info ParamInfo, raw string, err error) error {
	return &CoercionError{Err: err, Param: info.Name, Raw: raw, Kind: info.Kind}
}
