package service

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luxlistapp/luxlist-server/internal/domain"
	domainerrors "github.com/luxlistapp/luxlist-server/internal/errors"
	"github.com/luxlistapp/luxlist-server/internal/export"
	"github.com/luxlistapp/luxlist-server/internal/store"
)

func setupTestService(t *testing.T) *InventoryService {
	t.Helper()
	return setupTestServiceAt(t, filepath.Join(t.TempDir(), "test.db"))
}

func setupTestServiceAt(t *testing.T, dbPath string) *InventoryService {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	st, err := store.New(dbPath, logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	formatter, err := export.NewFormatter()
	require.NoError(t, err)

	svc, err := NewInventoryService(context.Background(), st, formatter, logger)
	require.NoError(t, err)
	return svc
}

func socketEntry(style, amperage, qty string) EntryInput {
	return EntryInput{SocketStyle: style, SocketAmperage: amperage, Quantity: qty}
}

func codeEntry(code domain.Code, qty string) EntryInput {
	return EntryInput{Code: string(code), Quantity: qty}
}

func TestSaveEntries_CreatesRoom(t *testing.T) {
	svc := setupTestService(t)
	ctx := context.Background()

	room, err := svc.SaveEntries(ctx, "Sala", []EntryInput{
		socketEntry("simples", "10", "2"),
		codeEntry(domain.CodeSwitchSingle, "1"),
	})
	require.NoError(t, err)

	assert.Equal(t, "Sala", room.Name)
	assert.Equal(t, 2, room.Quantity(domain.CatalogItem(domain.CodeSocketSingle10)))
	assert.Equal(t, 1, room.Quantity(domain.CatalogItem(domain.CodeSwitchSingle)))

	state, err := svc.State(ctx)
	require.NoError(t, err)
	require.Len(t, state.Rooms, 1)
	assert.Equal(t, "Sala", state.Draft.Name, "draft keeps the room name after save")
	assert.Empty(t, state.Draft.Items, "draft items are cleared after save")
}

func TestSaveEntries_SecondSaveSumsIntoSameRoom(t *testing.T) {
	svc := setupTestService(t)
	ctx := context.Background()

	_, err := svc.SaveEntries(ctx, "Sala", []EntryInput{socketEntry("simples", "10", "3")})
	require.NoError(t, err)

	// Name variants fold into the existing room.
	room, err := svc.SaveEntries(ctx, "  salá ", []EntryInput{socketEntry("simples", "10", "2")})
	require.NoError(t, err)

	assert.Equal(t, "Sala", room.Name)
	assert.Equal(t, 5, room.Quantity(domain.CatalogItem(domain.CodeSocketSingle10)))

	state, err := svc.State(ctx)
	require.NoError(t, err)
	assert.Len(t, state.Rooms, 1)
}

func TestSaveEntries_EmptyNameFails(t *testing.T) {
	svc := setupTestService(t)
	ctx := context.Background()

	_, err := svc.SaveEntries(ctx, "   ", []EntryInput{socketEntry("simples", "10", "2")})

	require.Error(t, err)
	assert.True(t, domainerrors.Is(err, domainerrors.ErrValidation))
	assert.EqualError(t, err, "Informe o nome do cômodo.")

	state, err := svc.State(ctx)
	require.NoError(t, err)
	assert.Empty(t, state.Rooms)
	assert.Empty(t, state.Draft.Items, "a rejected save leaves the draft untouched")
}

func TestSaveEntries_RetryAfterEmptyNameDoesNotDoubleCount(t *testing.T) {
	svc := setupTestService(t)
	ctx := context.Background()

	entries := []EntryInput{socketEntry("simples", "10", "2")}

	_, err := svc.SaveEntries(ctx, "", entries)
	require.Error(t, err)

	// The client resubmits the same form, now with a name.
	room, err := svc.SaveEntries(ctx, "Sala", entries)
	require.NoError(t, err)
	assert.Equal(t, 2, room.Quantity(domain.CatalogItem(domain.CodeSocketSingle10)))
}

func TestSaveEntries_EmptyNameBeatsEmptyQuantities(t *testing.T) {
	svc := setupTestService(t)
	ctx := context.Background()

	_, err := svc.SaveEntries(ctx, "", nil)
	require.Error(t, err)
	assert.EqualError(t, err, "Informe o nome do cômodo.")
}

func TestSaveEntries_NoQuantitiesFails(t *testing.T) {
	svc := setupTestService(t)
	ctx := context.Background()

	_, err := svc.SaveEntries(ctx, "Sala", []EntryInput{
		socketEntry("simples", "10", "0"),
		codeEntry(domain.CodeDoorbell, "abc"),
	})

	require.Error(t, err)
	assert.True(t, domainerrors.Is(err, domainerrors.ErrValidation))
	assert.EqualError(t, err, "Informe ao menos uma quantidade.")

	state, err := svc.State(ctx)
	require.NoError(t, err)
	assert.Empty(t, state.Rooms)
}

func TestSaveEntries_NoNewQuantitiesButDraftHasItems(t *testing.T) {
	svc := setupTestService(t)
	ctx := context.Background()

	// Items placed on the draft through the edit endpoint.
	require.NoError(t, svc.EditDraftItem(ctx, socketEntry("simples", "10", ""), 2))

	// Naming the draft and submitting nothing new still saves it.
	room, err := svc.SaveEntries(ctx, "Sala", nil)
	require.NoError(t, err)
	assert.Equal(t, 2, room.Quantity(domain.CatalogItem(domain.CodeSocketSingle10)))
}

func TestSaveEntries_UnknownSelectorsFail(t *testing.T) {
	svc := setupTestService(t)
	ctx := context.Background()

	_, err := svc.SaveEntries(ctx, "Sala", []EntryInput{socketEntry("quadrupla", "10", "1")})
	assert.True(t, domainerrors.Is(err, domainerrors.ErrValidation))

	_, err = svc.SaveEntries(ctx, "Sala", []EntryInput{codeEntry("zz99", "1")})
	assert.True(t, domainerrors.Is(err, domainerrors.ErrValidation))
}

func TestDraftItemEditing(t *testing.T) {
	svc := setupTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.EditDraftItem(ctx, socketEntry("simples", "10", ""), 5))
	require.NoError(t, svc.EditDraftItem(ctx, socketEntry("simples", "10", ""), 2.9))

	state, err := svc.State(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, state.Draft.Quantity(domain.CatalogItem(domain.CodeSocketSingle10)))

	// A value that floors to zero removes the item.
	require.NoError(t, svc.EditDraftItem(ctx, socketEntry("simples", "10", ""), 0.5))
	state, err = svc.State(ctx)
	require.NoError(t, err)
	assert.Empty(t, state.Draft.Items)
}

func TestDeleteDraftItem(t *testing.T) {
	svc := setupTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.EditDraftItem(ctx, socketEntry("simples", "10", ""), 2))
	require.NoError(t, svc.EditDraftItem(ctx, codeEntry(domain.CodeDoorbell, ""), 1))

	require.NoError(t, svc.DeleteDraftItem(ctx, codeEntry(domain.CodeDoorbell, "")))

	state, err := svc.State(ctx)
	require.NoError(t, err)
	assert.False(t, state.Draft.Has(domain.CatalogItem(domain.CodeDoorbell)))
	assert.True(t, state.Draft.Has(domain.CatalogItem(domain.CodeSocketSingle10)))
}

func TestRoomItemEditing(t *testing.T) {
	svc := setupTestService(t)
	ctx := context.Background()

	room, err := svc.SaveEntries(ctx, "Sala", []EntryInput{socketEntry("simples", "10", "5")})
	require.NoError(t, err)

	require.NoError(t, svc.EditRoomItem(ctx, room.ID, socketEntry("simples", "10", ""), 3))

	state, err := svc.State(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, state.Rooms[0].Quantity(domain.CatalogItem(domain.CodeSocketSingle10)))

	require.NoError(t, svc.DeleteRoomItem(ctx, room.ID, socketEntry("simples", "10", "")))
	state, err = svc.State(ctx)
	require.NoError(t, err)
	assert.Empty(t, state.Rooms[0].Items)
}

func TestRoomEditing_UnknownRoomIsNoOp(t *testing.T) {
	svc := setupTestService(t)
	ctx := context.Background()

	_, err := svc.SaveEntries(ctx, "Sala", []EntryInput{socketEntry("simples", "10", "5")})
	require.NoError(t, err)

	require.NoError(t, svc.EditRoomItem(ctx, "room-missing", socketEntry("simples", "10", ""), 1))
	require.NoError(t, svc.DeleteRoomItem(ctx, "room-missing", socketEntry("simples", "10", "")))
	require.NoError(t, svc.DeleteRoom(ctx, "room-missing"))

	state, err := svc.State(ctx)
	require.NoError(t, err)
	require.Len(t, state.Rooms, 1)
	assert.Equal(t, 5, state.Rooms[0].Quantity(domain.CatalogItem(domain.CodeSocketSingle10)))
}

func TestDeleteRoom_LeavesOthersAndDraftUntouched(t *testing.T) {
	svc := setupTestService(t)
	ctx := context.Background()

	sala, err := svc.SaveEntries(ctx, "Sala", []EntryInput{socketEntry("simples", "10", "1")})
	require.NoError(t, err)
	_, err = svc.SaveEntries(ctx, "Cozinha", []EntryInput{socketEntry("dupla", "20", "2")})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteRoom(ctx, sala.ID))

	state, err := svc.State(ctx)
	require.NoError(t, err)
	require.Len(t, state.Rooms, 1)
	assert.Equal(t, "Cozinha", state.Rooms[0].Name)
	assert.Equal(t, "Cozinha", state.Draft.Name)
}

func TestCustomEntries_ThroughDraft(t *testing.T) {
	svc := setupTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.RenameDraft(ctx, "Quarto"))

	room, err := svc.AddCustomEntries(ctx, []CustomEntryInput{
		{Label: "Bastidor 4x2", Quantity: "2"},
		{Label: "   ", Quantity: "5"},
	})
	require.NoError(t, err)

	assert.Equal(t, "Quarto", room.Name)
	assert.Equal(t, 2, room.Quantity(domain.CustomItem("Bastidor 4x2")))
	require.Len(t, room.Items, 1, "blank labels are skipped")
}

func TestCustomEntries_TargetedAtExistingRoom(t *testing.T) {
	svc := setupTestService(t)
	ctx := context.Background()

	sala, err := svc.SaveEntries(ctx, "Sala", []EntryInput{socketEntry("simples", "10", "1")})
	require.NoError(t, err)

	require.NoError(t, svc.SetCustomTarget(ctx, "sala"))

	room, err := svc.AddCustomEntries(ctx, []CustomEntryInput{{Label: "Módulo dimer", Quantity: "1"}})
	require.NoError(t, err)

	assert.Equal(t, sala.ID, room.ID, "entries land on the targeted room, not a new one")
	assert.Equal(t, 1, room.Quantity(domain.CustomItem("Módulo dimer")))

	state, err := svc.State(ctx)
	require.NoError(t, err)
	assert.Len(t, state.Rooms, 1)
}

func TestSetCustomTarget_UnknownNameRestartsDraft(t *testing.T) {
	svc := setupTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.SetCustomTarget(ctx, "Varanda"))

	state, err := svc.State(ctx)
	require.NoError(t, err)
	assert.Empty(t, state.CustomTargetID)
	assert.Equal(t, "Varanda", state.Draft.Name)

	// Custom entries now create the room through the draft.
	room, err := svc.AddCustomEntries(ctx, []CustomEntryInput{{Label: "Arandela", Quantity: "2"}})
	require.NoError(t, err)
	assert.Equal(t, "Varanda", room.Name)
}

func TestClearCustomTarget(t *testing.T) {
	svc := setupTestService(t)
	ctx := context.Background()

	_, err := svc.SaveEntries(ctx, "Sala", []EntryInput{socketEntry("simples", "10", "1")})
	require.NoError(t, err)
	require.NoError(t, svc.SetCustomTarget(ctx, "Sala"))
	require.NoError(t, svc.ClearCustomTarget(ctx))

	state, err := svc.State(ctx)
	require.NoError(t, err)
	assert.Empty(t, state.CustomTargetID)
}

func TestCustomEntries_NoQuantitiesFails(t *testing.T) {
	svc := setupTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.RenameDraft(ctx, "Quarto"))

	_, err := svc.AddCustomEntries(ctx, []CustomEntryInput{{Label: "Bastidor 4x2", Quantity: "0"}})
	require.Error(t, err)
	assert.EqualError(t, err, "No personalizado, informe ao menos uma quantidade.")
}

func TestExport_RequiresRooms(t *testing.T) {
	svc := setupTestService(t)

	_, err := svc.Export(context.Background(), export.FormatHTML, false)
	require.Error(t, err)
	assert.True(t, domainerrors.Is(err, domainerrors.ErrValidation))
	assert.EqualError(t, err, "Adicione ao menos um cômodo.")
}

func TestExport_HTMLAndOptionalReset(t *testing.T) {
	svc := setupTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.SetListName(ctx, "Obra Vila Nova"))
	_, err := svc.SaveEntries(ctx, "Sala", []EntryInput{socketEntry("simples", "10", "2")})
	require.NoError(t, err)

	doc, err := svc.Export(ctx, export.FormatHTML, false)
	require.NoError(t, err)
	assert.Contains(t, doc.Title, "Obra Vila Nova")
	assert.Contains(t, doc.Content, "Tomada simples 10A")

	state, err := svc.State(ctx)
	require.NoError(t, err)
	assert.Len(t, state.Rooms, 1, "export without reset keeps the inventory")

	_, err = svc.Export(ctx, export.FormatMarkdown, true)
	require.NoError(t, err)

	state, err = svc.State(ctx)
	require.NoError(t, err)
	assert.Empty(t, state.Rooms)
	assert.Empty(t, state.ListName)
}

func TestFullReset(t *testing.T) {
	svc := setupTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.SetListName(ctx, "Casa"))
	_, err := svc.SaveEntries(ctx, "Sala", []EntryInput{socketEntry("simples", "10", "2")})
	require.NoError(t, err)

	require.NoError(t, svc.FullReset(ctx))

	state, err := svc.State(ctx)
	require.NoError(t, err)
	assert.Empty(t, state.ListName)
	assert.Empty(t, state.Rooms)
	assert.Empty(t, state.Draft.Name)
	assert.Empty(t, state.Draft.Items)
}

func TestPersistenceAcrossRestart(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	ctx := context.Background()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	st, err := store.New(dbPath, logger)
	require.NoError(t, err)
	formatter, err := export.NewFormatter()
	require.NoError(t, err)

	svc, err := NewInventoryService(ctx, st, formatter, logger)
	require.NoError(t, err)

	require.NoError(t, svc.SetListName(ctx, "Casa"))
	_, err = svc.SaveEntries(ctx, "Sala", []EntryInput{socketEntry("simples", "10", "2")})
	require.NoError(t, err)
	require.NoError(t, svc.RenameDraft(ctx, "Cozinha"))
	require.NoError(t, st.Close())

	svc2 := setupTestServiceAt(t, dbPath)

	state, err := svc2.State(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Casa", state.ListName)
	require.Len(t, state.Rooms, 1)
	assert.Equal(t, "Sala", state.Rooms[0].Name)
	assert.Equal(t, 2, state.Rooms[0].Quantity(domain.CatalogItem(domain.CodeSocketSingle10)))
	assert.Empty(t, state.Draft.Name, "the draft is session-only and restarts fresh")
}

func TestStateReturnsCopy(t *testing.T) {
	svc := setupTestService(t)
	ctx := context.Background()

	_, err := svc.SaveEntries(ctx, "Sala", []EntryInput{socketEntry("simples", "10", "2")})
	require.NoError(t, err)

	state, err := svc.State(ctx)
	require.NoError(t, err)
	state.Rooms[0].Add(domain.CatalogItem(domain.CodeSocketSingle10), 100)
	state.ListName = "mutated"

	fresh, err := svc.State(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, fresh.Rooms[0].Quantity(domain.CatalogItem(domain.CodeSocketSingle10)))
	assert.Empty(t, fresh.ListName)
}
