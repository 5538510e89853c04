package domain

import (
	"math"
	"strconv"
	"strings"
)

// ItemRef identifies an item line in a room: either a fixture from the
// fixed catalog or a freeform custom component. Exactly one field is set.
// For custom items the label is the identity; two entries with the same
// label are the same item.
type ItemRef struct {
	Code  Code   `json:"code,omitempty" doc:"Catalog code, empty for custom items"`
	Label string `json:"label,omitempty" doc:"Custom item label, empty for catalog items"`
}

// CatalogItem creates a reference to a catalog fixture.
func CatalogItem(code Code) ItemRef {
	return ItemRef{Code: code}
}

// CustomItem creates a reference to a custom component with the given label.
func CustomItem(label string) ItemRef {
	return ItemRef{Label: label}
}

// IsCustom reports whether the reference points at a custom component.
func (r ItemRef) IsCustom() bool {
	return r.Code == "" && r.Label != ""
}

// IsZero reports whether the reference is empty.
func (r ItemRef) IsZero() bool {
	return r.Code == "" && r.Label == ""
}

// DisplayLabel resolves the label shown in the UI: the registry label for
// catalog codes (falling back to the raw code for unknown ones, so stale
// data still renders), the stored label verbatim for custom items.
func (r ItemRef) DisplayLabel() string {
	if r.IsCustom() {
		return r.Label
	}
	if label, ok := CatalogLabel(r.Code); ok {
		return label
	}
	return string(r.Code)
}

// ExportLabel resolves the label used in exported documents: catalog labels
// carry the kit marker suffix, custom labels pass through unchanged.
func (r ItemRef) ExportLabel() string {
	if r.IsCustom() {
		return r.Label
	}
	return r.DisplayLabel() + KitSuffix
}

// ItemLine is one row of a room's inventory.
type ItemLine struct {
	Code     Code   `json:"code,omitempty"`
	Label    string `json:"label,omitempty"`
	Quantity int    `json:"quantity"`
}

// Ref returns the line's item reference.
func (l ItemLine) Ref() ItemRef {
	return ItemRef{Code: l.Code, Label: l.Label}
}

// ParseQuantity interprets free-form numeric text from a quantity field.
// Values that parse to a number greater than zero are floored to an
// integer; everything else (empty, non-numeric, non-positive, infinite)
// contributes zero. Never an error: bad input is simply ignored.
func ParseQuantity(raw string) int {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return 0
	}
	return int(math.Floor(v))
}

// FloorQuantity converts a requested quantity for an edit into its stored
// integer value. Values at or below zero, and fractional values that floor
// to zero, yield zero, which callers treat as removal.
func FloorQuantity(requested float64) int {
	if math.IsNaN(requested) || math.IsInf(requested, 0) || requested <= 0 {
		return 0
	}
	return int(math.Floor(requested))
}
