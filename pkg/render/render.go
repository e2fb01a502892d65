// Package render defines the contract between a data view's request handling
// and the code that turns view state into a response body.
package render

import "context"

// Row is one record prepared for the list table: display cells in column
// order plus the action links the table exposes.
type Row struct {
	ID        int64
	Cells     []string
	EditURL   string
	DeleteURL string
}

// ListData is everything a renderer needs for the list page.
type ListData struct {
	Slug        string
	Title       string
	Columns     []string
	Rows        []Row
	AddNewURL   string
	AddNewLabel string
	EmptyState  string
	Notice      string
}

// FieldView is one form control, fully resolved: label, input hint, current
// value and any validation messages that apply to it.
type FieldView struct {
	Name        string
	Label       string
	Input       string
	Placeholder string
	Description string
	Value       any
	Options     []string
	Required    bool
	Errors      []string
}

// FormData is everything a renderer needs for a create, edit or settings
// form page.
type FormData struct {
	Slug        string
	Title       string
	Action      string
	NonceField  string
	Nonce       string
	Fields      []FieldView
	SubmitLabel string
	BackURL     string
	BackLabel   string
	Notice      string
}

// Renderer converts prepared view data into a response body.
type Renderer interface {
	Name() string
	ContentType() string
	RenderList(ctx context.Context, data ListData) ([]byte, error)
	RenderForm(ctx context.Context, data FormData) ([]byte, error)
}
