package catalog

import (
	"reflect"
	"strings"

	"github.com/livebud/layoutc/internal/diagnostic"
)

// Enum is implemented by Go types that stand in for enumerations of the host
// runtime. EnumName returns the fully-qualified enum name.
type Enum interface {
	EnumName() string
}

var enumType = reflect.TypeOf((*Enum)(nil)).Elem()

var kinds = map[reflect.Kind]string{
	reflect.Bool:    "bool",
	reflect.Uint8:   "byte",
	reflect.Int16:   "short",
	reflect.Uint16:  "ushort",
	reflect.Int:     "int",
	reflect.Int32:   "int",
	reflect.Uint:    "uint",
	reflect.Uint32:  "uint",
	reflect.Int64:   "long",
	reflect.Uint64:  "ulong",
	reflect.Float32: "float",
	reflect.Float64: "double",
	reflect.String:  "string",
}

// Reflect describes components from Go struct values. Only exported fields
// declared on the struct itself are considered.
//
// Field tags:
//
//	layout:"char"          override the primitive type
//	hint:"Button"          component<Button>* (late-bound)
//	hint:"Button,early"    component<Button>
func Reflect(namespace string, values ...interface{}) Provider {
	return ProviderFunc(func(sink diagnostic.Sink) (components []*Component, err error) {
		for _, value := range values {
			t := reflect.TypeOf(value)
			for t != nil && t.Kind() == reflect.Pointer {
				t = t.Elem()
			}
			if t == nil || t.Kind() != reflect.Struct || t.Name() == "" {
				diagnostic.Reportf(sink, diagnostic.UnsupportedProperty, "catalog: %T is not a named struct", value)
				continue
			}
			components = append(components, reflectComponent(namespace, t, sink))
		}
		return components, nil
	})
}

func reflectComponent(namespace string, t reflect.Type, sink diagnostic.Sink) *Component {
	component := &Component{
		Name:      t.Name(),
		Namespace: namespace,
	}
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() || field.Anonymous {
			continue
		}
		typ, ok := fieldType(field)
		if !ok {
			sink.Report(diagnostic.Diagnostic{
				Kind:      diagnostic.UnsupportedProperty,
				Message:   "skipping " + component.FullName() + "." + field.Name + " of type " + field.Type.String(),
				Element:   component.FullName(),
				Attribute: field.Name,
			})
			continue
		}
		component.Properties = append(component.Properties, Property{
			Name: field.Name,
			Type: typ,
		})
	}
	return component
}

func fieldType(field reflect.StructField) (string, bool) {
	if hint, ok := field.Tag.Lookup("hint"); ok {
		name, flags, _ := strings.Cut(hint, ",")
		t := Type{Kind: KindComponent, Name: name, LateBind: true}
		if flags == "early" {
			t.LateBind = false
		}
		return t.String(), name != ""
	}
	if override, ok := field.Tag.Lookup("layout"); ok {
		return override, isPrimitive(override)
	}
	switch field.Type.Kind() {
	case reflect.Interface, reflect.Pointer:
		return "", false
	}
	if name, ok := enumName(field.Type); ok {
		return Type{Kind: KindEnum, Name: name}.String(), true
	}
	name, ok := kinds[field.Type.Kind()]
	return name, ok
}

// enumName calls EnumName on a fresh value of t, so pointer receivers work too
func enumName(t reflect.Type) (string, bool) {
	if !reflect.PointerTo(t).Implements(enumType) {
		return "", false
	}
	name := reflect.New(t).Interface().(Enum).EnumName()
	return name, name != ""
}
