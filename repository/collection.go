package repository

import (
	"reflect"

	"github.com/jinzhu/inflection"
)

// CollectionName derives the physical collection name for a model type by
// pluralizing its simple type name: Person -> People, Order -> Orders.
// Pointer model types resolve to their element type. The result is a pure
// function of the type name; repositories compute it once at construction.
func CollectionName[T any]() string {
	var model T
	t := reflect.TypeOf(&model).Elem()
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return inflection.Plural(t.Name())
}
