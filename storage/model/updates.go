package model

import (
	"reflect"

	"github.com/fatih/structs"
)

// updatesTag is the struct tag carrying the database column an update field
// maps to.
const updatesTag = "updates"

// updateMap builds a gorm column/value map from a sparse update struct.
// Fields are pointers; nil ones are skipped, set ones are dereferenced so
// the caller ends up with plain values keyed by column name.
func updateMap(u any) map[string]any {
	m := make(map[string]any)
	for _, f := range structs.Fields(u) {
		col := f.Tag(updatesTag)
		if col == "" || f.IsZero() {
			continue
		}
		v := reflect.ValueOf(f.Value())
		if v.Kind() == reflect.Ptr {
			v = v.Elem()
		}
		m[col] = v.Interface()
	}
	return m
}
