// Package export renders the inventory into shareable documents. HTML is
// the primary rendition, laid out for A4 printing; a Markdown rendition is
// derived from it for plain-text sharing.
package export

import (
	"embed"
	"fmt"
	"html/template"
	"strings"
	"time"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/google/uuid"

	"github.com/luxlistapp/luxlist-server/internal/domain"
	domainerrors "github.com/luxlistapp/luxlist-server/internal/errors"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Format selects a document rendition.
type Format string

const (
	FormatHTML     Format = "html"
	FormatMarkdown Format = "markdown"
)

// ParseFormat validates a format string. The empty string defaults to HTML.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatHTML, "":
		return FormatHTML, nil
	case FormatMarkdown:
		return FormatMarkdown, nil
	default:
		return "", domainerrors.Validation(fmt.Sprintf("unknown export format %q", s))
	}
}

// baseTitle heads every exported document; the list name, when present, is
// appended after an em dash.
const baseTitle = "Lista de Acabamentos"

// Document is a rendered export.
type Document struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Format      Format    `json:"format"`
	ContentType string    `json:"content_type"`
	Content     string    `json:"content"`
	GeneratedAt time.Time `json:"generated_at"`
}

// Formatter renders inventories into documents.
type Formatter struct {
	tmpl *template.Template
	now  func() time.Time
}

// NewFormatter creates a formatter with the embedded document template.
func NewFormatter() (*Formatter, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse export templates: %w", err)
	}
	return &Formatter{tmpl: tmpl, now: time.Now}, nil
}

type documentData struct {
	Title       string
	GeneratedAt string
	Rooms       []roomData
}

type roomData struct {
	Name  string
	Items []lineData
}

type lineData struct {
	Label    string
	Quantity int
}

// Render produces a document for the given rooms. Catalog item labels carry
// the kit suffix; custom labels are emitted verbatim. Rooms and items keep
// their insertion order.
func (f *Formatter) Render(listName string, rooms []*domain.Room, format Format) (*Document, error) {
	now := f.now()

	title := baseTitle
	if name := strings.TrimSpace(listName); name != "" {
		title = baseTitle + " — " + name
	}

	data := documentData{
		Title:       title,
		GeneratedAt: now.Format("02/01/2006 15:04"),
	}
	for _, room := range rooms {
		rd := roomData{Name: room.Name}
		for _, line := range room.Items {
			rd.Items = append(rd.Items, lineData{
				Label:    line.Ref().ExportLabel(),
				Quantity: line.Quantity,
			})
		}
		data.Rooms = append(data.Rooms, rd)
	}

	var buf strings.Builder
	if err := f.tmpl.ExecuteTemplate(&buf, "document.html.tmpl", data); err != nil {
		return nil, fmt.Errorf("render export document: %w", err)
	}

	doc := &Document{
		ID:          uuid.New().String(),
		Title:       title,
		Format:      format,
		ContentType: "text/html; charset=utf-8",
		Content:     buf.String(),
		GeneratedAt: now,
	}

	if format == FormatMarkdown {
		markdown, err := htmltomarkdown.ConvertString(doc.Content)
		if err != nil {
			return nil, fmt.Errorf("convert export to markdown: %w", err)
		}
		doc.ContentType = "text/markdown; charset=utf-8"
		doc.Content = markdown
	}

	return doc, nil
}
