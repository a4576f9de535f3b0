package services

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Optional* types record whether a PATCH body carried a member at all. A JSON
// null leaves Set true with a nil Value; callers treat that as "no change".

type OptionalString struct {
	Set   bool
	Value *string
}

func (o *OptionalString) UnmarshalJSON(data []byte) error {
	o.Set = true
	data = bytes.TrimSpace(data)
	if string(data) == "null" {
		o.Value = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	s = strings.TrimSpace(s)
	o.Value = &s
	return nil
}

// Present reports whether the member carried a non-null value.
func (o OptionalString) Present() bool { return o.Set && o.Value != nil }

type OptionalInt struct {
	Set   bool
	Value *int
}

func (o *OptionalInt) UnmarshalJSON(data []byte) error {
	o.Set = true
	data = bytes.TrimSpace(data)
	if string(data) == "null" {
		o.Value = nil
		return nil
	}
	var v int
	if err := json.Unmarshal(data, &v); err == nil {
		o.Value = &v
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	s = strings.TrimSpace(s)
	if s == "" {
		o.Value = nil
		return nil
	}
	i, err := strconv.Atoi(s)
	if err != nil {
		return err
	}
	o.Value = &i
	return nil
}

func (o OptionalInt) Present() bool { return o.Set && o.Value != nil }

type OptionalStrings struct {
	Set   bool
	Value *[]string
}

func (o *OptionalStrings) UnmarshalJSON(data []byte) error {
	o.Set = true
	data = bytes.TrimSpace(data)
	if string(data) == "null" {
		o.Value = nil
		return nil
	}
	var v []string
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	if v == nil {
		v = []string{}
	}
	o.Value = &v
	return nil
}

func (o OptionalStrings) Present() bool { return o.Set && o.Value != nil }

type OptionalJSON struct {
	Set   bool
	Value *json.RawMessage
}

func (o *OptionalJSON) UnmarshalJSON(data []byte) error {
	o.Set = true
	data = bytes.TrimSpace(data)
	if string(data) == "null" {
		o.Value = nil
		return nil
	}
	var raw json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	cp := make(json.RawMessage, len(raw))
	copy(cp, raw)
	o.Value = &cp
	return nil
}

func (o OptionalJSON) Present() bool { return o.Set && o.Value != nil }

func SetString(v string) OptionalString { return OptionalString{Set: true, Value: &v} }
func SetInt(v int) OptionalInt          { return OptionalInt{Set: true, Value: &v} }
func SetStrings(v ...string) OptionalStrings {
	if v == nil {
		v = []string{}
	}
	return OptionalStrings{Set: true, Value: &v}
}
func SetJSON(raw string) OptionalJSON {
	v := json.RawMessage(raw)
	return OptionalJSON{Set: true, Value: &v}
}
