// Package patch implements the three-state partial-update contract used
// across the API: a field that is absent from a JSON document means
// "leave unchanged", an explicit null means "clear", and a value means
// "set". encoding/json alone cannot distinguish the first two, so both
// the server DTOs and the client patch builder go through Optional.
package patch

import "encoding/json"

// Optional is one slot of a partial-update document.
//
// Decoding: a struct field of type Optional[T] is left with Set=false
// when the key is absent (UnmarshalJSON is never called), and gets
// Null=true for an explicit JSON null.
type Optional[T any] struct {
	Set   bool
	Null  bool
	Value T
}

// Value returns a set Optional carrying v.
func Value[T any](v T) Optional[T] {
	return Optional[T]{Set: true, Value: v}
}

// Null returns a set Optional carrying an explicit null.
func Null[T any]() Optional[T] {
	return Optional[T]{Set: true, Null: true}
}

// Ptr converts the slot to the nullable-pointer representation used by
// storage: nil for an explicit null, the value otherwise. Only
// meaningful when Set.
func (o Optional[T]) Ptr() *T {
	if !o.Set || o.Null {
		return nil
	}
	v := o.Value
	return &v
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Null = true
		return nil
	}
	return json.Unmarshal(data, &o.Value)
}

func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if o.Null {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}
