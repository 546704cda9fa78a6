package model

import (
	"bytes"
	"encoding/gob"
)

// valueWire is Value's exported mirror, used only to get its unexported
// fields through gob (which refuses to encode unexported struct fields).
// Value itself stays opaque everywhere else in the module.
type valueWire struct {
	Kind    Kind
	BoolV   bool
	IntV    int64
	FloatV  float64
	StrV    string
	ArrayV  []Value
	ObjectV Params
}

// GobEncode implements gob.GobEncoder so Value (and anything containing
// it, like Params and Variable) can round-trip through pkg/cache's
// persisted Configuration snapshot (spec.md §4.9).
func (v Value) GobEncode() ([]byte, error) {
	w := valueWire{
		Kind: v.kind, BoolV: v.boolV, IntV: v.intV, FloatV: v.floatV,
		StrV: v.strV, ArrayV: v.arrayV, ObjectV: v.objectV,
	}
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(w); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (v *Value) GobDecode(data []byte) error {
	var w valueWire
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&w); err != nil {
		return err
	}
	v.kind, v.boolV, v.intV, v.floatV, v.strV, v.arrayV, v.objectV =
		w.Kind, w.BoolV, w.IntV, w.FloatV, w.StrV, w.ArrayV, w.ObjectV
	return nil
}
