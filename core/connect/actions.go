package connect

import (
	"fmt"
	"reflect"
)

// ActionMap maps property names to dispatch targets. Each entry resolves at
// mount time to one of:
//
//   - nil: no override; the owner-supplied callback for that name, if any,
//     is used unmodified.
//   - a function (any signature): the rendered prop invokes it with the
//     same arguments.
//   - a channel-like value implementing Nexter (for example a
//     *stream.Stream[any] action channel): the rendered prop republishes
//     the invocation's first argument into the channel.
//
// Anything else is a configuration error: Mount fails immediately with
// ErrInvalidActionTarget rather than silently ignoring the entry.
type ActionMap map[string]any

// Nexter is the channel-like dispatch target: anything with a multicast
// Next publish operation. The core does not restrict producers to its own
// stream factory.
type Nexter interface {
	Next(v any)
}

// resolveActions turns an action map into rendered callback props, failing
// on the first invalid entry.
func resolveActions(m ActionMap) (map[string]func(args ...any), error) {
	if len(m) == 0 {
		return nil, nil
	}
	out := make(map[string]func(args ...any), len(m))
	for name, target := range m {
		if target == nil {
			continue
		}
		if ch, ok := target.(Nexter); ok {
			out[name] = wrapChannel(ch)
			continue
		}
		v := reflect.ValueOf(target)
		if v.Kind() == reflect.Func {
			out[name] = wrapCallback(v)
			continue
		}
		return nil, fmt.Errorf("connect: action map entry %q has type %T: %w", name, target, ErrInvalidActionTarget)
	}
	return out, nil
}

func wrapChannel(ch Nexter) func(args ...any) {
	return func(args ...any) {
		var payload any
		if len(args) > 0 {
			payload = args[0]
		}
		ch.Next(payload)
	}
}

// wrapCallback adapts an arbitrary function to the rendered callback shape.
// Arguments are matched positionally; missing or mismatched arguments fall
// back to the parameter's zero value, surplus arguments feed a variadic
// tail or are dropped.
func wrapCallback(fn reflect.Value) func(args ...any) {
	t := fn.Type()
	return func(args ...any) {
		numIn := t.NumIn()
		var in []reflect.Value
		if t.IsVariadic() {
			fixed := numIn - 1
			for i := 0; i < fixed; i++ {
				in = append(in, argValue(t.In(i), args, i))
			}
			elem := t.In(numIn - 1).Elem()
			for i := fixed; i < len(args); i++ {
				in = append(in, argValue(elem, args, i))
			}
		} else {
			for i := 0; i < numIn; i++ {
				in = append(in, argValue(t.In(i), args, i))
			}
		}
		fn.Call(in)
	}
}

func argValue(paramType reflect.Type, args []any, i int) reflect.Value {
	if i < len(args) && args[i] != nil {
		v := reflect.ValueOf(args[i])
		if v.Type().AssignableTo(paramType) {
			return v
		}
	}
	return reflect.Zero(paramType)
}
