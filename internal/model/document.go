package model

import (
	"strings"
	"time"
)

const untitled = "Untitled"

// Document is a single workspace document. Templates are documents with
// Template set.
type Document struct {
	ID           string     `json:"id"`
	URLID        string     `json:"url_id"`
	Title        string     `json:"title"`
	Text         string     `json:"text"`
	CollectionID string     `json:"collection_id,omitempty"`
	Template     bool       `json:"template"`
	TemplateOf   string     `json:"template_of,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	PublishedAt  *time.Time `json:"published_at,omitempty"`
}

// TitleWithDefault returns the title, or "Untitled" when it is blank.
func (d Document) TitleWithDefault() string {
	if title := strings.TrimSpace(d.Title); title != "" {
		return title
	}
	return untitled
}

// Published reports whether the document has been published.
func (d Document) Published() bool {
	return d.PublishedAt != nil
}

// TemplatizeParams are the inputs of the templatize mutation. An empty
// CollectionID targets the workspace root.
type TemplatizeParams struct {
	CollectionID string
	Publish      bool
}
