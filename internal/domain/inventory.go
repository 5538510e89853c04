package domain

import (
	"slices"
	"strings"

	"github.com/luxlistapp/luxlist-server/internal/errors"
	"github.com/luxlistapp/luxlist-server/internal/normalize"
)

// Inventory is the full list-level state: the export title, the persisted
// rooms in insertion order, the single draft being edited, and the
// optional room targeted by custom entries.
//
// The draft and the custom-entry target are session-only; persistence
// covers the list name and rooms (see the store package).
type Inventory struct {
	ListName string  `json:"list_name"`
	Rooms    []*Room `json:"rooms"`

	Draft          *Room  `json:"draft"`
	CustomTargetID string `json:"custom_target_id,omitempty"`
}

// NewInventory creates an empty inventory with a fresh draft.
func NewInventory(draftID string) *Inventory {
	return &Inventory{
		Rooms: []*Room{},
		Draft: NewRoom(draftID),
	}
}

// FindRoom returns the persisted room with the given id, or nil.
func (inv *Inventory) FindRoom(id string) *Room {
	for _, r := range inv.Rooms {
		if r.ID == id {
			return r
		}
	}
	return nil
}

// FindRoomByName returns the first persisted room whose normalized name
// matches the given name, or nil. This is the uniqueness rule: the merge
// engine always folds into the first match, so at most one room per
// normalized name can ever exist.
func (inv *Inventory) FindRoomByName(name string) *Room {
	key := normalize.RoomKey(name)
	for _, r := range inv.Rooms {
		if normalize.RoomKey(r.Name) == key {
			return r
		}
	}
	return nil
}

// RenameDraft sets the draft's name from trimmed input text. Items are
// unaffected.
func (inv *Inventory) RenameDraft(name string) {
	inv.Draft.Name = strings.TrimSpace(name)
}

// ResetDraft replaces the draft with a fresh empty room under the given
// identifier. When preserveName is set the current name survives, so the
// user can keep adding to the same room after a save.
func (inv *Inventory) ResetDraft(draftID string, preserveName bool) {
	name := ""
	if preserveName {
		name = inv.Draft.Name
	}
	inv.Draft = NewRoom(draftID)
	inv.Draft.Name = name
}

// MergeDraft folds the draft into the persisted room list.
//
// The draft's trimmed name must be non-empty, otherwise a validation error
// is returned and nothing changes. When a persisted room matches the
// draft's normalized name, every draft quantity is added onto it (custom
// labels being identity, the draft's label trivially wins). Otherwise the
// draft is deep-copied and appended as a new room, keeping creation order.
// Either way the draft is then replaced by a fresh room with the given id,
// preserving the name verbatim when preserveName is set.
func (inv *Inventory) MergeDraft(nextDraftID string, preserveName bool) error {
	name := strings.TrimSpace(inv.Draft.Name)
	if name == "" {
		return errors.Validation("Informe o nome do cômodo.")
	}

	if target := inv.FindRoomByName(name); target != nil {
		for _, line := range inv.Draft.Items {
			target.Add(line.Ref(), line.Quantity)
		}
	} else {
		room := inv.Draft.Clone()
		room.Name = name
		inv.Rooms = append(inv.Rooms, room)
	}

	inv.ResetDraft(nextDraftID, false)
	if preserveName {
		inv.Draft.Name = name
	}
	return nil
}

// DeleteRoom removes the persisted room with the given id. Other rooms and
// the draft are untouched. Returns false when no such room exists. A
// deleted room that was the custom-entry target clears the target.
func (inv *Inventory) DeleteRoom(id string) bool {
	i := slices.IndexFunc(inv.Rooms, func(r *Room) bool { return r.ID == id })
	if i < 0 {
		return false
	}
	inv.Rooms = append(inv.Rooms[:i], inv.Rooms[i+1:]...)
	if inv.CustomTargetID == id {
		inv.CustomTargetID = ""
	}
	return true
}

// Reset clears the inventory back to its fresh-boot state: empty list
// name, no rooms, a fresh draft, no custom-entry target.
func (inv *Inventory) Reset(draftID string) {
	inv.ListName = ""
	inv.Rooms = []*Room{}
	inv.Draft = NewRoom(draftID)
	inv.CustomTargetID = ""
}

// Clone returns a deep copy of the inventory, used to hand out read-only
// snapshots without exposing internal state.
func (inv *Inventory) Clone() *Inventory {
	rooms := make([]*Room, len(inv.Rooms))
	for i, r := range inv.Rooms {
		rooms[i] = r.Clone()
	}
	return &Inventory{
		ListName:       inv.ListName,
		Rooms:          rooms,
		Draft:          inv.Draft.Clone(),
		CustomTargetID: inv.CustomTargetID,
	}
}
