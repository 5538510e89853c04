package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/luxlistapp/luxlist-server/internal/export"
)

func (s *Server) registerExportRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "exportList",
		Method:      http.MethodPost,
		Path:        "/api/v1/export",
		Summary:     "Export list",
		Description: "Renders the saved rooms into a printable document, optionally resetting afterwards",
		Tags:        []string{"Export"},
	}, s.handleExportList)
}

// === DTOs ===

// ExportRequest is the request body for exporting the list.
type ExportRequest struct {
	Format string `json:"format,omitempty" validate:"omitempty,oneof=html markdown" doc:"Document format, defaults to html"`
	Reset  bool   `json:"reset,omitempty" doc:"Clear the whole inventory after a successful export"`
}

// ExportInput wraps the export request for Huma.
type ExportInput struct {
	Body ExportRequest
}

// ExportResponse contains a rendered document.
type ExportResponse struct {
	ID          string    `json:"id" doc:"Document ID"`
	Title       string    `json:"title" doc:"Document title"`
	Format      string    `json:"format" doc:"Rendered format"`
	ContentType string    `json:"content_type" doc:"MIME type of the content"`
	Content     string    `json:"content" doc:"Rendered document"`
	GeneratedAt time.Time `json:"generated_at" doc:"Render time"`
}

// ExportOutput wraps the export response for Huma.
type ExportOutput struct {
	Body ExportResponse
}

// === Handlers ===

func (s *Server) handleExportList(ctx context.Context, input *ExportInput) (*ExportOutput, error) {
	if err := s.validator.Validate(input.Body); err != nil {
		return nil, err
	}

	format, err := export.ParseFormat(input.Body.Format)
	if err != nil {
		return nil, err
	}

	doc, err := s.inventory.Export(ctx, format, input.Body.Reset)
	if err != nil {
		return nil, err
	}

	return &ExportOutput{
		Body: ExportResponse{
			ID:          doc.ID,
			Title:       doc.Title,
			Format:      string(doc.Format),
			ContentType: doc.ContentType,
			Content:     doc.Content,
			GeneratedAt: doc.GeneratedAt,
		},
	}, nil
}
