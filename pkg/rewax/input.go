package rewax

import (
	"fmt"
	"log/slog"
	"reflect"
	"strings"

	"github.com/vango-dev/rewax/pkg/dom"
)

// HandleInput registers a callback that stores the event value into cell
// and mirrors it onto the target's value attribute. It never redraws, so
// typing does not reconcile the instance on every keystroke.
//
// field names the struct field or map entry to write. With an empty field
// the cell itself must hold a string.
func HandleInput[T any](s *Instance, cell *Cell[T], field string) string {
	return s.Handle(func(ev Event) {
		var err error
		cell.Ptr(func(p *T) {
			err = assignInput(reflect.ValueOf(p).Elem(), field, ev.Value)
		})
		if err != nil {
			s.rt.logger.Warn("rewax: input not stored",
				slog.String("instance", s.id),
				slog.String("field", field),
				slog.Any("error", err))
		}
		if ev.Target != nil {
			dom.SetAttribute(ev.Target, "value", ev.Value)
		}
	}, PreventRedraw())
}

// assignInput writes value into target, or into target's field.
func assignInput(target reflect.Value, field, value string) error {
	for target.Kind() == reflect.Pointer {
		if target.IsNil() {
			return fmt.Errorf("nil %s", target.Type())
		}
		target = target.Elem()
	}

	if field == "" {
		return setString(target, value)
	}

	switch target.Kind() {
	case reflect.Struct:
		f := target.FieldByNameFunc(func(n string) bool { return strings.EqualFold(n, field) })
		if !f.IsValid() {
			return fmt.Errorf("%s has no field %q", target.Type(), field)
		}
		return setString(f, value)

	case reflect.Map:
		mt := target.Type()
		if mt.Key().Kind() != reflect.String {
			return fmt.Errorf("%s is not keyed by string", mt)
		}
		if target.IsNil() {
			return fmt.Errorf("nil %s", mt)
		}
		elem := reflect.New(mt.Elem()).Elem()
		if err := setString(elem, value); err != nil {
			return err
		}
		target.SetMapIndex(reflect.ValueOf(field).Convert(mt.Key()), elem)
		return nil

	default:
		return fmt.Errorf("cannot set field %q on %s", field, target.Type())
	}
}

func setString(v reflect.Value, value string) error {
	if !v.CanSet() {
		return fmt.Errorf("%s is not settable", v.Type())
	}
	switch {
	case v.Kind() == reflect.String:
		v.SetString(value)
	case v.Kind() == reflect.Interface && v.NumMethod() == 0:
		v.Set(reflect.ValueOf(value))
	default:
		return fmt.Errorf("cannot store a string in %s", v.Type())
	}
	return nil
}
