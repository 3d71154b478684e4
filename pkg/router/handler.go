package router

import (
	"context"
	"fmt"
	"net/http"
	"reflect"
	"runtime"
	"strings"
)

// Kind is the type tag of a handler parameter.
type Kind int

const (
	KindUntyped Kind = iota
	KindString
	KindInt
	KindFloat
	KindBool
	KindRequest
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindRequest:
		return "request"
	default:
		return "untyped"
	}
}

var (
	errorType       = reflect.TypeFor[error]()
	httpRequestType = reflect.TypeFor[*http.Request]()
	contextType     = reflect.TypeFor[context.Context]()
)

// Param names one non-request handler input. Params are matched to the
// handler's inputs in declaration order, skipping request-typed inputs.
type Param struct {
	Default  any
	Name     string
	Optional bool
}

// Arg declares a required parameter bound to the route capture of the same name.
func Arg(name string) Param {
	return Param{Name: name}
}

// Optional declares a parameter that falls back to def when the route has no
// capture with that name. A nil default yields the zero value.
func Optional(name string, def any) Param {
	return Param{Name: name, Default: def, Optional: true}
}

// ParamInfo is the introspected descriptor of one handler input.
type ParamInfo struct {
	Type     reflect.Type
	Default  any
	Name     string
	Kind     Kind
	Optional bool
}

// Initializer is implemented by controllers that need setup after their
// zero value is created.
type Initializer interface {
	Init() error
}

// Handler is a route target together with its parameter signature.
// Build one with [Func], [Method] or [Controller].
type Handler struct {
	err      error
	call     func(args []reflect.Value) ([]reflect.Value, error)
	name     string
	params   []ParamInfo
	defaults []reflect.Value
	out      []reflect.Type
}

// Func wraps a function value.
//
// Example:
//
//	router.Func(func(id int, page int) (string, error) {
//	    return fmt.Sprintf("entry %d page %d", id, page), nil
//	}, router.Arg("id"), router.Optional("page", 1))
func Func(fn any, params ...Param) Handler {
	v := reflect.ValueOf(fn)
	if !v.IsValid() || v.Kind() != reflect.Func || v.IsNil() {
		return Handler{err: fmt.Errorf("%w: %T is not a function", ErrInvalidHandler, fn)}
	}

	name := runtime.FuncForPC(v.Pointer()).Name()
	h := newHandler(name, v.Type(), 0, params)
	h.call = func(args []reflect.Value) ([]reflect.Value, error) {
		return v.Call(args), nil
	}
	return h
}

// Method wraps the exported method name of receiver, bound to that receiver.
func Method(receiver any, name string, params ...Param) Handler {
	rv := reflect.ValueOf(receiver)
	if !rv.IsValid() {
		return Handler{err: fmt.Errorf("%w: nil receiver for method %q", ErrInvalidHandler, name)}
	}
	m := rv.MethodByName(name)
	if !m.IsValid() {
		return Handler{err: fmt.Errorf("%w: %s has no method %q", ErrInvalidHandler, rv.Type(), name)}
	}

	h := newHandler(rv.Type().String()+"."+name, m.Type(), 0, params)
	h.call = func(args []reflect.Value) ([]reflect.Value, error) {
		return m.Call(args), nil
	}
	return h
}

// Controller targets a method of *T. A fresh zero value of T is created for
// every dispatch; if *T implements [Initializer], Init runs before the call.
//
// Example:
//
//	r.Get("/entry/{id}/edit", router.Controller[EntryController]("Edit", router.Arg("id")))
func Controller[T any](method string, params ...Param) Handler {
	t := reflect.TypeFor[T]()
	if t.Kind() != reflect.Struct {
		return Handler{err: fmt.Errorf("%w: controller %s must be a struct", ErrInvalidHandler, t)}
	}
	m, ok := reflect.PointerTo(t).MethodByName(method)
	if !ok {
		return Handler{err: fmt.Errorf("%w: *%s has no method %q", ErrInvalidHandler, t, method)}
	}

	// In(0) of m.Type is the receiver.
	h := newHandler(t.String()+"."+method, m.Type, 1, params)
	h.call = func(args []reflect.Value) ([]reflect.Value, error) {
		instance := reflect.New(t)
		if init, ok := instance.Interface().(Initializer); ok {
			if err := init.Init(); err != nil {
				return nil, fmt.Errorf("%w: %s: %w", ErrHandlerInstantiation, t, err)
			}
		}
		return m.Func.Call(append([]reflect.Value{instance}, args...)), nil
	}
	return h
}

// Name returns a human readable handler name used in logs and route listings.
func (h Handler) Name() string {
	return h.name
}

// Err returns the construction error, if any.
func (h Handler) Err() error {
	return h.err
}

// Signature returns the handler's parameter descriptors in declaration order.
func (h Handler) Signature() []ParamInfo {
	out := make([]ParamInfo, len(h.params))
	copy(out, h.params)
	return out
}

// newHandler introspects fnType starting at input skip and binds params to
// the non-request inputs.
func newHandler(name string, fnType reflect.Type, skip int, params []Param) Handler {
	h := Handler{name: name}

	if fnType.IsVariadic() {
		h.err = fmt.Errorf("%w: %s is variadic", ErrInvalidHandler, name)
		return h
	}

	next := 0
	for i := skip; i < fnType.NumIn(); i++ {
		t := fnType.In(i)
		kind, ok := kindOf(t)
		if !ok {
			h.err = fmt.Errorf("%w: %s input %d has unsupported type %s", ErrInvalidHandler, name, i-skip, t)
			return h
		}

		if kind == KindRequest {
			h.params = append(h.params, ParamInfo{Type: t, Kind: KindRequest})
			h.defaults = append(h.defaults, reflect.Value{})
			continue
		}

		if next >= len(params) {
			h.err = fmt.Errorf("%w: %s input %d (%s) has no parameter name", ErrInvalidHandler, name, i-skip, t)
			return h
		}
		p := params[next]
		next++

		if strings.TrimSpace(p.Name) == "" {
			h.err = fmt.Errorf("%w: %s input %d has an empty parameter name", ErrInvalidHandler, name, i-skip)
			return h
		}

		def := reflect.Zero(t)
		if p.Optional && p.Default != nil {
			dv, err := convertDefault(p.Default, t, kind)
			if err != nil {
				h.err = fmt.Errorf("%w: %s parameter %q: %w", ErrInvalidHandler, name, p.Name, err)
				return h
			}
			def = dv
		}

		h.params = append(h.params, ParamInfo{
			Type:     t,
			Default:  p.Default,
			Name:     p.Name,
			Kind:     kind,
			Optional: p.Optional,
		})
		h.defaults = append(h.defaults, def)
	}

	if next != len(params) {
		h.err = fmt.Errorf("%w: %s declares %d parameter names but takes %d", ErrInvalidHandler, name, len(params), next)
		return h
	}

	for i := range fnType.NumOut() {
		h.out = append(h.out, fnType.Out(i))
	}
	switch len(h.out) {
	case 0, 1:
	case 2:
		if h.out[1] != errorType {
			h.err = fmt.Errorf("%w: %s second result must be error", ErrInvalidHandler, name)
		}
	default:
		h.err = fmt.Errorf("%w: %s returns too many results", ErrInvalidHandler, name)
	}

	return h
}

// kindOf maps a Go type to its parameter type tag.
func kindOf(t reflect.Type) (Kind, bool) {
	if t == httpRequestType {
		return KindRequest, true
	}
	switch t.Kind() {
	case reflect.Interface:
		if t.NumMethod() == 0 {
			return KindUntyped, true
		}
		return KindRequest, true
	case reflect.String:
		return KindString, true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return KindInt, true
	case reflect.Float32, reflect.Float64:
		return KindFloat, true
	case reflect.Bool:
		return KindBool, true
	default:
		return 0, false
	}
}

// convertDefault converts a declared default to the parameter type. Only
// conversions within the same type tag are allowed, so 1 never becomes "\x01".
func convertDefault(def any, t reflect.Type, kind Kind) (reflect.Value, error) {
	dv := reflect.ValueOf(def)
	if dv.Type().AssignableTo(t) {
		return dv, nil
	}
	dk, ok := kindOf(dv.Type())
	if ok && dk == KindInt && kind == KindFloat {
		dk = KindFloat
	}
	if !ok || dk != kind || !dv.CanConvert(t) {
		return reflect.Value{}, fmt.Errorf("default %T is not convertible to %s", def, t)
	}
	return dv.Convert(t), nil
}

// invoke calls the handler and normalizes its results.
func (h Handler) invoke(args []reflect.Value) (any, error) {
	out, err := h.call(args)
	if err != nil {
		return nil, err
	}

	switch len(out) {
	case 0:
		return nil, nil
	case 1:
		if h.out[0] == errorType {
			return nil, asError(out[0])
		}
		return out[0].Interface(), nil
	default:
		return out[0].Interface(), asError(out[1])
	}
}

func asError(v reflect.Value) error {
	if v.IsNil() {
		return nil
	}
	err, _ := v.Interface().(error)
	return err
}
