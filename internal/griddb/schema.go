// Binds a sheet's dynamic field bags to Go struct types.

package griddb

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"github.com/invopop/jsonschema"
	"github.com/maruel/sheetdb/internal/gridstore"
)

// CheckSchema verifies that the table's header covers T's JSON fields.
//
// The expected fields are derived from T with JSON Schema reflection.
// Every required field must name an existing column; optional fields are
// only reported in the returned error if nothing matches.
func CheckSchema[T any](t *Table) error {
	fields, err := fieldsFromType[T]()
	if err != nil {
		return err
	}
	known := make(map[string]bool, len(t.cols))
	for _, c := range t.cols {
		known[c.Name] = true
	}
	var missing []string
	for _, f := range fields {
		if f.required && !known[f.name] {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("sheet %q is missing required columns: %s", t.name, strings.Join(missing, ", "))
	}
	return nil
}

// Bind decodes the row's field bag into a value of type T through its JSON
// representation. Empty fields are omitted so optional struct fields keep
// their zero values.
func Bind[T any](r *Row) (T, error) {
	var out T
	m := make(map[string]any, len(r.fields))
	for name, v := range r.fields {
		if v.IsEmpty() {
			continue
		}
		m[name] = valueToAny(v)
	}
	data, err := json.Marshal(m)
	if err != nil {
		return out, fmt.Errorf("failed to marshal row: %w", err)
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return out, fmt.Errorf("failed to bind row: %w", err)
	}
	return out, nil
}

// BindAll decodes every row in the collection. See [Bind].
func BindAll[T any](rs *Rows) ([]T, error) {
	out := make([]T, 0, rs.Len())
	for r := range rs.All() {
		v, err := Bind[T](r)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func valueToAny(v gridstore.Value) any {
	if f, ok := v.Float(); ok {
		return f
	}
	if b, ok := v.Bool(); ok {
		return b
	}
	// Dates render as RFC 3339 strings, which json.Unmarshal accepts for
	// time.Time struct fields.
	return v.String()
}

type schemaField struct {
	name     string
	required bool
}

// fieldsFromType extracts field names using JSON Schema reflection, keeping
// declaration order and honoring json tags.
func fieldsFromType[T any]() ([]schemaField, error) {
	t := reflect.TypeFor[T]()
	switch t.Kind() {
	case reflect.Pointer:
		if t.Elem().Kind() != reflect.Struct {
			return nil, fmt.Errorf("type must be a struct or pointer to struct, got %s", t.Kind())
		}
		t = t.Elem()
	case reflect.Struct:
		// ok
	default:
		return nil, fmt.Errorf("type must be a struct or pointer to struct, got %s", t.Kind())
	}

	r := jsonschema.Reflector{Anonymous: true, DoNotReference: true}
	schema := r.ReflectFromType(t)

	required := make(map[string]bool, len(schema.Required))
	for _, name := range schema.Required {
		required[name] = true
	}

	var fields []schemaField
	for pair := schema.Properties.Oldest(); pair != nil; pair = pair.Next() {
		fields = append(fields, schemaField{name: pair.Key, required: required[pair.Key]})
	}
	return fields, nil
}
