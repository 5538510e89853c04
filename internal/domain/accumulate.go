package domain

// Entry is one "item selector plus quantity" input from the form. The
// quantity arrives as the raw text the user typed; parsing is lenient.
type Entry struct {
	Ref      ItemRef
	Quantity string
}

// Accumulate applies a batch of entries to a room and returns the total
// quantity added. Entries whose quantity does not parse to a positive
// number contribute nothing and are not an error, so the caller can tell
// "nothing entered" (total 0) from a real addition.
func Accumulate(room *Room, entries []Entry) int {
	total := 0
	for _, e := range entries {
		qty := ParseQuantity(e.Quantity)
		if qty <= 0 {
			continue
		}
		room.Add(e.Ref, qty)
		total += qty
	}
	return total
}
