package structs

import (
	"reflect"

	"github.com/oleiade/reflections"
)

// GetField returns the value of the provided obj field. obj can whether be a structure or pointer to structure.
func GetField(obj any, name string) any {
	v, err := reflections.GetField(obj, name)
	if err != nil {
		panic(err)
	}

	return v
}

// Each calls fn for each element of the provided slice or pointer to slice.
func Each(slice any, fn func(v any)) {
	v := reflect.Indirect(reflect.ValueOf(slice))
	if v.Kind() != reflect.Slice {
		panic("structs: Each called on a non-slice value")
	}

	for i := 0; i < v.Len(); i++ {
		fn(v.Index(i).Interface())
	}
}
