// Package service orchestrates the inventory workflow: the draft being
// filled in, saves that merge it into the room list, custom entries, exports
// and resets. All state lives in memory behind a single lock; the store is
// written best-effort after each mutation of persisted state.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/luxlistapp/luxlist-server/internal/domain"
	domainerrors "github.com/luxlistapp/luxlist-server/internal/errors"
	"github.com/luxlistapp/luxlist-server/internal/export"
	"github.com/luxlistapp/luxlist-server/internal/id"
	"github.com/luxlistapp/luxlist-server/internal/store"
)

// EntryInput selects one catalog item plus the raw quantity text from the
// form. Sockets arrive as a style/amperage pair, everything else as a
// catalog code; a non-empty label selects a custom item instead.
type EntryInput struct {
	Code           string
	SocketStyle    string
	SocketAmperage string
	Label          string
	Quantity       string
}

// CustomEntryInput is one free-text item plus the raw quantity text.
type CustomEntryInput struct {
	Label    string
	Quantity string
}

// InventoryService owns the in-memory inventory and coordinates the store.
type InventoryService struct {
	mu        sync.Mutex
	inv       *domain.Inventory
	store     *store.Store
	formatter *export.Formatter
	logger    *slog.Logger
}

// NewInventoryService creates the service, restoring the persisted list
// name and rooms from the store. The draft always starts fresh.
func NewInventoryService(ctx context.Context, st *store.Store, formatter *export.Formatter, logger *slog.Logger) (*InventoryService, error) {
	draftID, err := id.Generate("draft")
	if err != nil {
		return nil, fmt.Errorf("generate draft ID: %w", err)
	}

	inv := domain.NewInventory(draftID)

	snap, err := st.LoadSnapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("load inventory snapshot: %w", err)
	}
	inv.ListName = snap.ListName
	inv.Rooms = snap.Rooms

	logger.Info("inventory restored",
		"rooms", len(inv.Rooms),
		"list_name", inv.ListName,
	)

	return &InventoryService{
		inv:       inv,
		store:     st,
		formatter: formatter,
		logger:    logger,
	}, nil
}

// State returns a deep copy of the current inventory.
func (s *InventoryService) State(ctx context.Context) (*domain.Inventory, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inv.Clone(), nil
}

// SetListName sets the export title shown on generated documents.
func (s *InventoryService) SetListName(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.inv.ListName = strings.TrimSpace(name)
	s.persist(ctx)
	return nil
}

// RenameDraft sets the draft's room name without touching its items.
func (s *InventoryService) RenameDraft(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.inv.RenameDraft(name)
	return nil
}

// NewDraft discards the draft, name included, and starts a fresh one.
func (s *InventoryService) NewDraft(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	draftID, err := id.Generate("draft")
	if err != nil {
		return fmt.Errorf("generate draft ID: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.inv.ResetDraft(draftID, false)
	return nil
}

// SaveEntries is the main form submission: it names the draft, accumulates
// the entered quantities into it and merges the result into the room list.
// The effective name (the given one, falling back to the draft's) must be
// non-empty and at least one entry must carry a positive quantity unless
// the draft already holds items. Validation failures leave the draft
// untouched. After a successful save the draft is fresh but keeps its
// name, so the next batch lands in the same room.
func (s *InventoryService) SaveEntries(ctx context.Context, roomName string, entries []EntryInput) (*domain.Room, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	resolved := make([]domain.Entry, 0, len(entries))
	for _, in := range entries {
		entry, err := resolveEntry(in)
		if err != nil {
			return nil, err
		}
		resolved = append(resolved, entry)
	}

	draftID, err := id.Generate("draft")
	if err != nil {
		return nil, fmt.Errorf("generate draft ID: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	name := strings.TrimSpace(roomName)
	if name == "" {
		name = strings.TrimSpace(s.inv.Draft.Name)
	}
	if name == "" {
		return nil, domainerrors.Validation("Informe o nome do cômodo.")
	}

	added := domain.Accumulate(s.inv.Draft, resolved)
	if added == 0 && s.inv.Draft.TotalQuantity() == 0 {
		return nil, domainerrors.Validation("Informe ao menos uma quantidade.")
	}

	s.inv.RenameDraft(name)
	if err := s.inv.MergeDraft(draftID, true); err != nil {
		return nil, err
	}

	room := s.inv.FindRoomByName(name)

	s.logger.Info("draft saved into room",
		"room_id", room.ID,
		"room_name", room.Name,
		"added", added,
	)

	s.persist(ctx)
	return room.Clone(), nil
}

// EditDraftItem sets an item's quantity on the draft. A requested value
// that floors to zero or below removes the item. The draft is session-only,
// so nothing is persisted.
func (s *InventoryService) EditDraftItem(ctx context.Context, in EntryInput, quantity float64) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	ref, err := resolveRef(in)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.inv.Draft.SetQuantity(ref, quantity)
	return nil
}

// DeleteDraftItem removes an item from the draft.
func (s *InventoryService) DeleteDraftItem(ctx context.Context, in EntryInput) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	ref, err := resolveRef(in)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.inv.Draft.Remove(ref)
	return nil
}

// EditRoomItem sets an item's quantity on a persisted room. A requested
// value that floors to zero or below removes the item. A miss on the room
// or the item is logged and ignored; stale clients re-sync on the next GET.
func (s *InventoryService) EditRoomItem(ctx context.Context, roomID string, in EntryInput, quantity float64) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	ref, err := resolveRef(in)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	room := s.inv.FindRoom(roomID)
	if room == nil {
		s.logger.Warn("edit on unknown room ignored", "room_id", roomID)
		return nil
	}

	room.SetQuantity(ref, quantity)
	s.persist(ctx)
	return nil
}

// DeleteRoomItem removes an item from a persisted room.
func (s *InventoryService) DeleteRoomItem(ctx context.Context, roomID string, in EntryInput) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	ref, err := resolveRef(in)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	room := s.inv.FindRoom(roomID)
	if room == nil {
		s.logger.Warn("item delete on unknown room ignored", "room_id", roomID)
		return nil
	}

	room.Remove(ref)
	s.persist(ctx)
	return nil
}

// DeleteRoom removes a persisted room. Deleting an unknown room is a no-op.
func (s *InventoryService) DeleteRoom(ctx context.Context, roomID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.inv.DeleteRoom(roomID) {
		s.logger.Warn("delete of unknown room ignored", "room_id", roomID)
		return nil
	}

	s.logger.Info("room deleted", "room_id", roomID)
	s.persist(ctx)
	return nil
}

// SetCustomTarget directs subsequent custom entries at the named room. When
// a persisted room matches the name, it becomes the target; otherwise the
// draft is restarted under that name so custom entries flow through it.
func (s *InventoryService) SetCustomTarget(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return domainerrors.Validation("Informe o nome do cômodo.")
	}

	draftID, err := id.Generate("draft")
	if err != nil {
		return fmt.Errorf("generate draft ID: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if room := s.inv.FindRoomByName(trimmed); room != nil {
		s.inv.CustomTargetID = room.ID
		return nil
	}

	s.inv.CustomTargetID = ""
	s.inv.ResetDraft(draftID, false)
	s.inv.RenameDraft(trimmed)
	return nil
}

// ClearCustomTarget reverts custom entries to the default draft flow.
func (s *InventoryService) ClearCustomTarget(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.inv.CustomTargetID = ""
	return nil
}

// AddCustomEntries accumulates free-text items. With a target room set they
// land on it directly; otherwise they go through the draft and are merged
// under the draft's current name. At least one entry must carry a positive
// quantity. Entries with a blank label are skipped.
func (s *InventoryService) AddCustomEntries(ctx context.Context, entries []CustomEntryInput) (*domain.Room, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	resolved := make([]domain.Entry, 0, len(entries))
	for _, in := range entries {
		label := strings.TrimSpace(in.Label)
		if label == "" {
			continue
		}
		resolved = append(resolved, domain.Entry{
			Ref:      domain.CustomItem(label),
			Quantity: in.Quantity,
		})
	}

	draftID, err := id.Generate("draft")
	if err != nil {
		return nil, fmt.Errorf("generate draft ID: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if targetID := s.inv.CustomTargetID; targetID != "" {
		room := s.inv.FindRoom(targetID)
		if room == nil {
			// Target rooms are cleared on delete; a dangling id means a bug.
			s.inv.CustomTargetID = ""
			return nil, domainerrors.NotFound("cômodo alvo não encontrado")
		}

		added := domain.Accumulate(room, resolved)
		if added == 0 {
			return nil, domainerrors.Validation("No personalizado, informe ao menos uma quantidade.")
		}

		s.logger.Info("custom entries added to room",
			"room_id", room.ID,
			"room_name", room.Name,
			"added", added,
		)

		s.persist(ctx)
		return room.Clone(), nil
	}

	added := domain.Accumulate(s.inv.Draft, resolved)
	if added == 0 {
		return nil, domainerrors.Validation("No personalizado, informe ao menos uma quantidade.")
	}

	name := strings.TrimSpace(s.inv.Draft.Name)
	if err := s.inv.MergeDraft(draftID, true); err != nil {
		return nil, err
	}

	room := s.inv.FindRoomByName(name)

	s.logger.Info("custom entries saved into room",
		"room_id", room.ID,
		"room_name", room.Name,
		"added", added,
	)

	s.persist(ctx)
	return room.Clone(), nil
}

// Export renders the persisted rooms into a document. At least one room
// must exist. When reset is set and rendering succeeds, the whole inventory
// is cleared afterwards.
func (s *InventoryService) Export(ctx context.Context, format export.Format, reset bool) (*export.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	draftID, err := id.Generate("draft")
	if err != nil {
		return nil, fmt.Errorf("generate draft ID: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.inv.Rooms) == 0 {
		return nil, domainerrors.Validation("Adicione ao menos um cômodo.")
	}

	doc, err := s.formatter.Render(s.inv.ListName, s.inv.Rooms, format)
	if err != nil {
		return nil, err
	}

	s.logger.Info("inventory exported",
		"document_id", doc.ID,
		"format", format,
		"rooms", len(s.inv.Rooms),
		"reset", reset,
	)

	if reset {
		s.resetLocked(ctx, draftID)
	}

	return doc, nil
}

// FullReset clears the inventory and the durable snapshot.
func (s *InventoryService) FullReset(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	draftID, err := id.Generate("draft")
	if err != nil {
		return fmt.Errorf("generate draft ID: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.resetLocked(ctx, draftID)
	return nil
}

// resetLocked clears all state and the stored snapshot. Callers hold s.mu.
func (s *InventoryService) resetLocked(ctx context.Context, draftID string) {
	s.inv.Reset(draftID)
	if err := s.store.DeleteSnapshot(ctx); err != nil {
		s.logger.Warn("failed to clear inventory snapshot", "error", err)
	}
	s.logger.Info("inventory reset")
}

// persist writes the current snapshot. Failures are logged, not surfaced:
// the in-memory state stays authoritative for the session and the next
// successful write catches up. Callers hold s.mu.
func (s *InventoryService) persist(ctx context.Context) {
	snap := &store.Snapshot{
		ListName: s.inv.ListName,
		Rooms:    s.inv.Rooms,
	}
	if err := s.store.SaveSnapshot(ctx, snap); err != nil {
		s.logger.Warn("failed to persist inventory snapshot", "error", err)
	}
}

// resolveEntry maps one form entry to a domain entry.
func resolveEntry(in EntryInput) (domain.Entry, error) {
	ref, err := resolveRef(in)
	if err != nil {
		return domain.Entry{}, err
	}
	return domain.Entry{Ref: ref, Quantity: in.Quantity}, nil
}

// resolveRef maps an item selector to an item reference. A non-empty label
// wins over the catalog fields.
func resolveRef(in EntryInput) (domain.ItemRef, error) {
	if label := strings.TrimSpace(in.Label); label != "" {
		return domain.CustomItem(label), nil
	}

	if in.SocketStyle != "" || in.SocketAmperage != "" {
		code, ok := domain.SocketCode(in.SocketStyle, in.SocketAmperage)
		if !ok {
			return domain.ItemRef{}, domainerrors.Validation(
				fmt.Sprintf("unknown socket selection %q/%q", in.SocketStyle, in.SocketAmperage))
		}
		return domain.CatalogItem(code), nil
	}

	code := domain.Code(in.Code)
	if !domain.ValidCode(code) {
		return domain.ItemRef{}, domainerrors.Validation(fmt.Sprintf("unknown catalog code %q", in.Code))
	}
	return domain.CatalogItem(code), nil
}
