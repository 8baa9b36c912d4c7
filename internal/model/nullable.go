package model

import (
	"bytes"
	"encoding/json"
)

// Nullable tells an absent JSON key apart from an explicit null. Set is true
// whenever the key was present; Value is nil when that key held null.
type Nullable[T any] struct {
	Set   bool
	Value *T
}

func Some[T any](value T) Nullable[T] {
	return Nullable[T]{Set: true, Value: &value}
}

func Null[T any]() Nullable[T] {
	return Nullable[T]{Set: true}
}

func (n *Nullable[T]) UnmarshalJSON(data []byte) error {
	n.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		n.Value = nil
		return nil
	}
	var value T
	if err := json.Unmarshal(data, &value); err != nil {
		return err
	}
	n.Value = &value
	return nil
}

func (n Nullable[T]) MarshalJSON() ([]byte, error) {
	if n.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(n.Value)
}
