package rewax

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
)

// Keyer is implemented by list items that know their own key.
type Keyer interface {
	RewaxKey() string
}

// EachOption configures Each.
type EachOption func(*eachConfig)

type eachConfig struct {
	key string
}

// EachKey names the struct field or map entry that holds the item key.
// Field names match case-insensitively.
func EachKey(name string) EachOption {
	return func(c *eachConfig) {
		c.key = name
	}
}

// Each renders every item of list with fn and concatenates the fragments.
//
// While fn runs for an item, the item's key is the ambient hook key of the
// instance, so hooks called for that item follow it through reorderings and
// are swept when it leaves the list. The key is, in order of precedence:
//
//   - the field or entry named by EachKey
//   - RewaxKey(), for items implementing Keyer
//   - a Key, ID or Id field, or a "key" or "id" map entry
//   - the JSON encoding of the item
//
// Zero values are skipped at every step. The JSON fallback changes whenever
// any part of the item changes, which resets the item's hooks.
func Each[T any](s *Instance, list []T, fn func(T) string, opts ...EachOption) string {
	var cfg eachConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	var b strings.Builder
	for _, item := range list {
		b.WriteString(eachItem(s, deriveKey(item, cfg.key), item, fn))
	}
	return b.String()
}

func eachItem[T any](s *Instance, key string, item T, fn func(T) string) string {
	s.pushKey(key)
	defer s.popKey()
	return fn(item)
}

var defaultKeyNames = []string{"Key", "ID", "Id"}

// deriveKey computes the ambient key of a list item.
func deriveKey(item any, name string) string {
	if name != "" {
		if k, ok := lookupKey(item, name, true); ok {
			return k
		}
	}
	if k, ok := item.(Keyer); ok {
		if key := k.RewaxKey(); key != "" {
			return key
		}
	}
	for _, n := range defaultKeyNames {
		if k, ok := lookupKey(item, n, false); ok {
			return k
		}
	}
	if data, err := json.Marshal(item); err == nil {
		return string(data)
	}
	return fmt.Sprintf("%v", item)
}

// lookupKey reads a struct field or a string-keyed map entry from item.
func lookupKey(item any, name string, fold bool) (string, bool) {
	v := reflect.ValueOf(item)
	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return "", false
		}
		v = v.Elem()
	}

	var field reflect.Value
	switch v.Kind() {
	case reflect.Struct:
		if fold {
			field = v.FieldByNameFunc(func(n string) bool { return strings.EqualFold(n, name) })
		} else {
			field = v.FieldByName(name)
		}
	case reflect.Map:
		if v.Type().Key().Kind() != reflect.String {
			return "", false
		}
		field = v.MapIndex(reflect.ValueOf(name).Convert(v.Type().Key()))
		if !field.IsValid() {
			field = v.MapIndex(reflect.ValueOf(strings.ToLower(name)).Convert(v.Type().Key()))
		}
	default:
		return "", false
	}

	for field.IsValid() && field.Kind() == reflect.Interface && !field.IsNil() {
		field = field.Elem()
	}
	if !field.IsValid() || !field.CanInterface() || field.IsZero() {
		return "", false
	}
	return fmt.Sprint(field.Interface()), true
}
