package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/luxlistapp/luxlist-server/internal/domain"
	"github.com/luxlistapp/luxlist-server/internal/service"
)

func (s *Server) registerInventoryRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getList",
		Method:      http.MethodGet,
		Path:        "/api/v1/list",
		Summary:     "Get list",
		Description: "Returns the full inventory: list name, rooms, draft and custom-entry target",
		Tags:        []string{"List"},
	}, s.handleGetList)

	huma.Register(s.api, huma.Operation{
		OperationID: "setListName",
		Method:      http.MethodPut,
		Path:        "/api/v1/list/name",
		Summary:     "Set list name",
		Description: "Sets the title used on exported documents",
		Tags:        []string{"List"},
	}, s.handleSetListName)

	huma.Register(s.api, huma.Operation{
		OperationID: "resetList",
		Method:      http.MethodPost,
		Path:        "/api/v1/list/reset",
		Summary:     "Reset list",
		Description: "Clears the whole inventory and the stored snapshot",
		Tags:        []string{"List"},
	}, s.handleResetList)

	huma.Register(s.api, huma.Operation{
		OperationID: "renameDraft",
		Method:      http.MethodPut,
		Path:        "/api/v1/draft/name",
		Summary:     "Rename draft",
		Description: "Sets the draft's room name without touching its items",
		Tags:        []string{"Draft"},
	}, s.handleRenameDraft)

	huma.Register(s.api, huma.Operation{
		OperationID: "newDraft",
		Method:      http.MethodPost,
		Path:        "/api/v1/draft/new",
		Summary:     "New draft",
		Description: "Discards the draft, name included, and starts a fresh one",
		Tags:        []string{"Draft"},
	}, s.handleNewDraft)

	huma.Register(s.api, huma.Operation{
		OperationID: "saveDraftEntries",
		Method:      http.MethodPost,
		Path:        "/api/v1/draft/entries",
		Summary:     "Save draft entries",
		Description: "Accumulates the entered quantities into the draft and merges it into the room list",
		Tags:        []string{"Draft"},
	}, s.handleSaveDraftEntries)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateDraftItem",
		Method:      http.MethodPut,
		Path:        "/api/v1/draft/items",
		Summary:     "Update draft item",
		Description: "Sets an item's quantity on the draft; zero removes it",
		Tags:        []string{"Draft"},
	}, s.handleUpdateDraftItem)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteDraftItem",
		Method:      http.MethodDelete,
		Path:        "/api/v1/draft/items",
		Summary:     "Delete draft item",
		Description: "Removes an item from the draft",
		Tags:        []string{"Draft"},
	}, s.handleDeleteDraftItem)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateRoomItem",
		Method:      http.MethodPatch,
		Path:        "/api/v1/rooms/{id}/items",
		Summary:     "Update room item",
		Description: "Sets an item's quantity on a saved room; zero removes it",
		Tags:        []string{"Rooms"},
	}, s.handleUpdateRoomItem)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteRoomItem",
		Method:      http.MethodDelete,
		Path:        "/api/v1/rooms/{id}/items",
		Summary:     "Delete room item",
		Description: "Removes an item from a saved room",
		Tags:        []string{"Rooms"},
	}, s.handleDeleteRoomItem)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteRoom",
		Method:      http.MethodDelete,
		Path:        "/api/v1/rooms/{id}",
		Summary:     "Delete room",
		Description: "Removes a saved room; other rooms and the draft are untouched",
		Tags:        []string{"Rooms"},
	}, s.handleDeleteRoom)

	huma.Register(s.api, huma.Operation{
		OperationID: "setCustomTarget",
		Method:      http.MethodPut,
		Path:        "/api/v1/custom-target",
		Summary:     "Set custom target",
		Description: "Directs subsequent custom entries at the named room",
		Tags:        []string{"Custom"},
	}, s.handleSetCustomTarget)

	huma.Register(s.api, huma.Operation{
		OperationID: "clearCustomTarget",
		Method:      http.MethodDelete,
		Path:        "/api/v1/custom-target",
		Summary:     "Clear custom target",
		Description: "Reverts custom entries to the default draft flow",
		Tags:        []string{"Custom"},
	}, s.handleClearCustomTarget)

	huma.Register(s.api, huma.Operation{
		OperationID: "addCustomEntries",
		Method:      http.MethodPost,
		Path:        "/api/v1/custom-entries",
		Summary:     "Add custom entries",
		Description: "Adds free-text items to the target room or through the draft",
		Tags:        []string{"Custom"},
	}, s.handleAddCustomEntries)
}

// === DTOs ===

// ItemSelector identifies one item: a catalog code, a socket style and
// amperage pair, or a free-text label for custom items.
type ItemSelector struct {
	Code           string `json:"code,omitempty" validate:"omitempty,max=10" doc:"Catalog code"`
	SocketStyle    string `json:"socket_style,omitempty" validate:"omitempty,oneof=simples dupla tripla" doc:"Socket style"`
	SocketAmperage string `json:"socket_amperage,omitempty" validate:"omitempty,oneof=10 20" doc:"Socket amperage"`
	Label          string `json:"label,omitempty" validate:"omitempty,max=120" doc:"Custom item label"`
}

// EntryRequest is one item selector plus the raw quantity text.
type EntryRequest struct {
	ItemSelector
	Quantity string `json:"quantity" validate:"max=12" doc:"Quantity as typed, parsed leniently"`
}

// ItemResponse contains one item line in API responses.
type ItemResponse struct {
	Code     string `json:"code,omitempty" doc:"Catalog code, empty for custom items"`
	Label    string `json:"label" doc:"Display label"`
	Custom   bool   `json:"custom" doc:"Whether this is a custom item"`
	Quantity int    `json:"quantity" doc:"Current quantity"`
}

// RoomResponse contains room data in API responses.
type RoomResponse struct {
	ID    string         `json:"id" doc:"Room ID"`
	Name  string         `json:"name" doc:"Room name"`
	Items []ItemResponse `json:"items" doc:"Item lines in insertion order"`
	Total int            `json:"total" doc:"Sum of all quantities"`
}

// ListResponse contains the full inventory state.
type ListResponse struct {
	ListName       string         `json:"list_name" doc:"Title used on exported documents"`
	Rooms          []RoomResponse `json:"rooms" doc:"Saved rooms in creation order"`
	Draft          RoomResponse   `json:"draft" doc:"Room currently being edited"`
	CustomTargetID string         `json:"custom_target_id,omitempty" doc:"Room targeted by custom entries"`
}

// ListOutput wraps the list response for Huma.
type ListOutput struct {
	Body ListResponse
}

// RoomOutput wraps a single room response for Huma.
type RoomOutput struct {
	Body RoomResponse
}

// MessageResponse contains a simple message.
type MessageResponse struct {
	Message string `json:"message" doc:"Human-readable status message"`
}

// MessageOutput wraps the message response for Huma.
type MessageOutput struct {
	Body MessageResponse
}

// SetListNameRequest is the request body for setting the list name.
type SetListNameRequest struct {
	Name string `json:"name" validate:"max=120" doc:"List name, empty clears it"`
}

// SetListNameInput wraps the request for Huma.
type SetListNameInput struct {
	Body SetListNameRequest
}

// RenameDraftRequest is the request body for renaming the draft.
type RenameDraftRequest struct {
	Name string `json:"name" validate:"max=120" doc:"Room name for the draft"`
}

// RenameDraftInput wraps the request for Huma.
type RenameDraftInput struct {
	Body RenameDraftRequest
}

// SaveEntriesRequest is the request body for the main form submission.
type SaveEntriesRequest struct {
	RoomName string         `json:"room_name,omitempty" validate:"omitempty,max=120" doc:"Room name; keeps the draft's current name when omitted"`
	Entries  []EntryRequest `json:"entries" validate:"dive" doc:"Entered quantities"`
}

// SaveEntriesInput wraps the request for Huma.
type SaveEntriesInput struct {
	Body SaveEntriesRequest
}

// UpdateItemRequest is the request body for setting an item quantity.
type UpdateItemRequest struct {
	Item     ItemSelector `json:"item" doc:"Item to update"`
	Quantity float64      `json:"quantity" validate:"gte=0" doc:"Requested quantity; values below 1 remove the item"`
}

// UpdateDraftItemInput wraps the request for Huma.
type UpdateDraftItemInput struct {
	Body UpdateItemRequest
}

// DeleteItemRequest is the request body for removing an item.
type DeleteItemRequest struct {
	Item ItemSelector `json:"item" doc:"Item to remove"`
}

// DeleteDraftItemInput wraps the request for Huma.
type DeleteDraftItemInput struct {
	Body DeleteItemRequest
}

// UpdateRoomItemInput wraps the request for Huma.
type UpdateRoomItemInput struct {
	ID   string `path:"id" doc:"Room ID"`
	Body UpdateItemRequest
}

// DeleteRoomItemInput wraps the request for Huma.
type DeleteRoomItemInput struct {
	ID   string `path:"id" doc:"Room ID"`
	Body DeleteItemRequest
}

// DeleteRoomInput contains parameters for deleting a room.
type DeleteRoomInput struct {
	ID string `path:"id" doc:"Room ID"`
}

// SetCustomTargetRequest is the request body for targeting custom entries.
type SetCustomTargetRequest struct {
	Name string `json:"name" validate:"required,max=120" doc:"Room name to target"`
}

// SetCustomTargetInput wraps the request for Huma.
type SetCustomTargetInput struct {
	Body SetCustomTargetRequest
}

// CustomEntryRequest is one free-text item plus the raw quantity text.
type CustomEntryRequest struct {
	Label    string `json:"label" validate:"required,max=120" doc:"Item label, exported verbatim"`
	Quantity string `json:"quantity" validate:"max=12" doc:"Quantity as typed, parsed leniently"`
}

// AddCustomEntriesRequest is the request body for adding custom entries.
type AddCustomEntriesRequest struct {
	Entries []CustomEntryRequest `json:"entries" validate:"required,min=1,dive" doc:"Custom items to add"`
}

// AddCustomEntriesInput wraps the request for Huma.
type AddCustomEntriesInput struct {
	Body AddCustomEntriesRequest
}

// === Handlers ===

func (s *Server) handleGetList(ctx context.Context, _ *struct{}) (*ListOutput, error) {
	inv, err := s.inventory.State(ctx)
	if err != nil {
		return nil, err
	}

	rooms := make([]RoomResponse, len(inv.Rooms))
	for i, r := range inv.Rooms {
		rooms[i] = toRoomResponse(r)
	}

	return &ListOutput{
		Body: ListResponse{
			ListName:       inv.ListName,
			Rooms:          rooms,
			Draft:          toRoomResponse(inv.Draft),
			CustomTargetID: inv.CustomTargetID,
		},
	}, nil
}

func (s *Server) handleSetListName(ctx context.Context, input *SetListNameInput) (*MessageOutput, error) {
	if err := s.validator.Validate(input.Body); err != nil {
		return nil, err
	}

	if err := s.inventory.SetListName(ctx, input.Body.Name); err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: "List name updated"}}, nil
}

func (s *Server) handleResetList(ctx context.Context, _ *struct{}) (*MessageOutput, error) {
	if err := s.inventory.FullReset(ctx); err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: "List reset"}}, nil
}

func (s *Server) handleRenameDraft(ctx context.Context, input *RenameDraftInput) (*MessageOutput, error) {
	if err := s.validator.Validate(input.Body); err != nil {
		return nil, err
	}

	if err := s.inventory.RenameDraft(ctx, input.Body.Name); err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: "Draft renamed"}}, nil
}

func (s *Server) handleNewDraft(ctx context.Context, _ *struct{}) (*MessageOutput, error) {
	if err := s.inventory.NewDraft(ctx); err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: "Draft cleared"}}, nil
}

func (s *Server) handleSaveDraftEntries(ctx context.Context, input *SaveEntriesInput) (*RoomOutput, error) {
	if err := s.validator.Validate(input.Body); err != nil {
		return nil, err
	}

	entries := make([]service.EntryInput, len(input.Body.Entries))
	for i, e := range input.Body.Entries {
		entries[i] = toEntryInput(e.ItemSelector, e.Quantity)
	}

	room, err := s.inventory.SaveEntries(ctx, input.Body.RoomName, entries)
	if err != nil {
		return nil, err
	}

	return &RoomOutput{Body: toRoomResponse(room)}, nil
}

func (s *Server) handleUpdateDraftItem(ctx context.Context, input *UpdateDraftItemInput) (*MessageOutput, error) {
	if err := s.validator.Validate(input.Body); err != nil {
		return nil, err
	}

	if err := s.inventory.EditDraftItem(ctx, toEntryInput(input.Body.Item, ""), input.Body.Quantity); err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: "Draft item updated"}}, nil
}

func (s *Server) handleDeleteDraftItem(ctx context.Context, input *DeleteDraftItemInput) (*MessageOutput, error) {
	if err := s.inventory.DeleteDraftItem(ctx, toEntryInput(input.Body.Item, "")); err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: "Draft item removed"}}, nil
}

func (s *Server) handleUpdateRoomItem(ctx context.Context, input *UpdateRoomItemInput) (*MessageOutput, error) {
	if err := s.validator.Validate(input.Body); err != nil {
		return nil, err
	}

	if err := s.inventory.EditRoomItem(ctx, input.ID, toEntryInput(input.Body.Item, ""), input.Body.Quantity); err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: "Room item updated"}}, nil
}

func (s *Server) handleDeleteRoomItem(ctx context.Context, input *DeleteRoomItemInput) (*MessageOutput, error) {
	if err := s.inventory.DeleteRoomItem(ctx, input.ID, toEntryInput(input.Body.Item, "")); err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: "Room item removed"}}, nil
}

func (s *Server) handleDeleteRoom(ctx context.Context, input *DeleteRoomInput) (*MessageOutput, error) {
	if err := s.inventory.DeleteRoom(ctx, input.ID); err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: "Room deleted"}}, nil
}

func (s *Server) handleSetCustomTarget(ctx context.Context, input *SetCustomTargetInput) (*MessageOutput, error) {
	if err := s.validator.Validate(input.Body); err != nil {
		return nil, err
	}

	if err := s.inventory.SetCustomTarget(ctx, input.Body.Name); err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: "Custom target set"}}, nil
}

func (s *Server) handleClearCustomTarget(ctx context.Context, _ *struct{}) (*MessageOutput, error) {
	if err := s.inventory.ClearCustomTarget(ctx); err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: "Custom target cleared"}}, nil
}

func (s *Server) handleAddCustomEntries(ctx context.Context, input *AddCustomEntriesInput) (*RoomOutput, error) {
	if err := s.validator.Validate(input.Body); err != nil {
		return nil, err
	}

	entries := make([]service.CustomEntryInput, len(input.Body.Entries))
	for i, e := range input.Body.Entries {
		entries[i] = service.CustomEntryInput{Label: e.Label, Quantity: e.Quantity}
	}

	room, err := s.inventory.AddCustomEntries(ctx, entries)
	if err != nil {
		return nil, err
	}

	return &RoomOutput{Body: toRoomResponse(room)}, nil
}

// === Helpers ===

func toEntryInput(sel ItemSelector, quantity string) service.EntryInput {
	return service.EntryInput{
		Code:           sel.Code,
		SocketStyle:    sel.SocketStyle,
		SocketAmperage: sel.SocketAmperage,
		Label:          sel.Label,
		Quantity:       quantity,
	}
}

func toRoomResponse(r *domain.Room) RoomResponse {
	items := make([]ItemResponse, len(r.Items))
	for i, line := range r.Items {
		ref := line.Ref()
		items[i] = ItemResponse{
			Code:     string(line.Code),
			Label:    ref.DisplayLabel(),
			Custom:   ref.IsCustom(),
			Quantity: line.Quantity,
		}
	}
	return RoomResponse{
		ID:    r.ID,
		Name:  r.Name,
		Items: items,
		Total: r.TotalQuantity(),
	}
}
