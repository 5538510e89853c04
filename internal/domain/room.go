package domain

import "slices"

// Room is a named collection of item lines. The same type backs both
// persisted rooms and the in-progress draft. Lines keep insertion order;
// lookups are by item reference.
//
// Invariant: no line ever holds a quantity below one. Edits that would
// produce a non-positive quantity remove the line instead.
type Room struct {
	ID    string     `json:"id"`
	Name  string     `json:"name"`
	Items []ItemLine `json:"items"`
}

// NewRoom creates an empty room with the given identifier.
func NewRoom(id string) *Room {
	return &Room{ID: id, Items: []ItemLine{}}
}

// find returns the index of the line matching ref, or -1.
func (r *Room) find(ref ItemRef) int {
	return slices.IndexFunc(r.Items, func(l ItemLine) bool {
		return l.Ref() == ref
	})
}

// Has reports whether the room holds an item line for ref.
func (r *Room) Has(ref ItemRef) bool {
	return r.find(ref) >= 0
}

// Quantity returns the stored quantity for ref, or 0 when absent.
func (r *Room) Quantity(ref ItemRef) int {
	if i := r.find(ref); i >= 0 {
		return r.Items[i].Quantity
	}
	return 0
}

// Add accumulates qty onto the line for ref, appending a new line when the
// item is not yet present. Non-positive quantities are a no-op.
func (r *Room) Add(ref ItemRef, qty int) {
	if qty <= 0 || ref.IsZero() {
		return
	}
	if i := r.find(ref); i >= 0 {
		r.Items[i].Quantity += qty
		return
	}
	r.Items = append(r.Items, ItemLine{Code: ref.Code, Label: ref.Label, Quantity: qty})
}

// SetQuantity applies an edit: the requested value is floored, and a result
// of zero or less removes the line entirely. Setting a quantity on an
// absent item creates its line.
func (r *Room) SetQuantity(ref ItemRef, requested float64) {
	qty := FloorQuantity(requested)
	if qty <= 0 {
		r.Remove(ref)
		return
	}
	if i := r.find(ref); i >= 0 {
		r.Items[i].Quantity = qty
		return
	}
	r.Items = append(r.Items, ItemLine{Code: ref.Code, Label: ref.Label, Quantity: qty})
}

// Remove deletes the line for ref. Returns false when the item was absent.
func (r *Room) Remove(ref ItemRef) bool {
	i := r.find(ref)
	if i < 0 {
		return false
	}
	r.Items = append(r.Items[:i], r.Items[i+1:]...)
	return true
}

// TotalQuantity sums the quantities of all lines.
func (r *Room) TotalQuantity() int {
	total := 0
	for _, l := range r.Items {
		total += l.Quantity
	}
	return total
}

// Clone returns a deep copy of the room.
func (r *Room) Clone() *Room {
	return &Room{
		ID:    r.ID,
		Name:  r.Name,
		Items: slices.Clone(r.Items),
	}
}
