// Package wire decodes legacy backend payloads into canonical domain values.
//
// The upstream trip backend has changed JSON shape several times without a
// version field: fields renamed, lists nested under different envelope keys,
// numbers sent as strings, string lists sent as bulleted text, photo and
// review groupings split between a legacy flat form and an explicit
// family/community form. Every decoder in this package accepts the full
// enumerable set of known historical shapes for its entity and produces one
// canonical value, deterministically, without crashing on partial input.
//
// Decoding is pure and synchronous: bytes in, value or typed error out.
// Concurrent decodes share no state.
package wire

import (
	"encoding/json"
	"strings"
)

// rawObject is a partially decoded JSON object. Field values stay as raw
// bytes until a decoder commits to one of the tolerated representations.
type rawObject map[string]json.RawMessage

// decodeObject decodes data as a JSON object, keeping field values raw.
func decodeObject(data []byte) (rawObject, error) {
	var obj rawObject
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil, err
	}
	return obj, nil
}

// has reports whether the object carries the key at all, including an
// explicit null. Key presence matters: an explicitly empty family_photos
// list is authoritative, a missing one triggers legacy reconciliation.
func (o rawObject) has(key string) bool {
	_, ok := o[key]
	return ok
}

// stringField decodes a required string field.
func (o rawObject) stringField(entity, key string) (string, error) {
	raw, ok := o[key]
	if !ok {
		return "", missingField(entity, key)
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", badField(entity, key, "expected string", raw)
	}
	return s, nil
}

// optionalString decodes a string field, returning "" when the field is
// absent, null, or not a string.
func (o rawObject) optionalString(key string) string {
	raw, ok := o[key]
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

// floatField decodes a required numeric field through scalar coercion.
func (o rawObject) floatField(entity, key string) (float64, error) {
	raw, ok := o[key]
	if !ok {
		return 0, missingField(entity, key)
	}
	var f FlexFloat
	if err := json.Unmarshal(raw, &f); err != nil {
		return 0, badField(entity, key, "expected number or numeric string", raw)
	}
	return float64(f), nil
}

// boolField decodes an optional boolean field through scalar coercion,
// falling back to def when the field is absent or unconvertible.
func (o rawObject) boolField(key string, def bool) bool {
	raw, ok := o[key]
	if !ok {
		return def
	}
	var b FlexBool
	if err := json.Unmarshal(raw, &b); err != nil {
		return def
	}
	return bool(b)
}

// intField decodes an optional integer field, tolerating numeric strings,
// falling back to def when absent or unconvertible.
func (o rawObject) intField(key string, def int) int {
	raw, ok := o[key]
	if !ok {
		return def
	}
	var f FlexFloat
	if err := json.Unmarshal(raw, &f); err != nil {
		return def
	}
	return int(f)
}

// snippetLen bounds how much raw payload a decode error carries.
const snippetLen = 512

// snippet trims a raw body to a diagnosable size.
func snippet(data []byte) string {
	s := strings.TrimSpace(string(data))
	if len(s) > snippetLen {
		return s[:snippetLen] + "…"
	}
	return s
}

// isBlank reports whether s is empty or whitespace-only.
func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
