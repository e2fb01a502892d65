// Package labels derives the full set of admin UI strings for a data type
// from its singular noun.
package labels

import (
	"fmt"
	"strings"
)

// Set holds every UI string the admin surface needs for one data type.
// All values are derived from the singular/plural pair; callers can override
// individual entries after generation.
type Set struct {
	Name          string `json:"name" yaml:"name"`
	SingularName  string `json:"singular_name" yaml:"singular_name"`
	MenuName      string `json:"menu_name" yaml:"menu_name"`
	AllItems      string `json:"all_items" yaml:"all_items"`
	AddNew        string `json:"add_new" yaml:"add_new"`
	AddNewItem    string `json:"add_new_item" yaml:"add_new_item"`
	EditItem      string `json:"edit_item" yaml:"edit_item"`
	NewItem       string `json:"new_item" yaml:"new_item"`
	ViewItem      string `json:"view_item" yaml:"view_item"`
	ViewItems     string `json:"view_items" yaml:"view_items"`
	SearchItems   string `json:"search_items" yaml:"search_items"`
	NotFound      string `json:"not_found" yaml:"not_found"`
	NoSearchHits  string `json:"no_search_hits" yaml:"no_search_hits"`
	BackToList    string `json:"back_to_list" yaml:"back_to_list"`
	SaveItem      string `json:"save_item" yaml:"save_item"`
	CreateItem    string `json:"create_item" yaml:"create_item"`
	UpdateItem    string `json:"update_item" yaml:"update_item"`
	DeleteItem    string `json:"delete_item" yaml:"delete_item"`
	ConfirmDelete string `json:"confirm_delete" yaml:"confirm_delete"`
	ItemCreated   string `json:"item_created" yaml:"item_created"`
	ItemUpdated   string `json:"item_updated" yaml:"item_updated"`
	ItemDeleted   string `json:"item_deleted" yaml:"item_deleted"`
	EmptyState    string `json:"empty_state" yaml:"empty_state"`
	ListTitle     string `json:"list_title" yaml:"list_title"`
	SettingsSaved string `json:"settings_saved" yaml:"settings_saved"`
}

// Generate produces the label set for a singular noun. When plural is empty
// it is derived with Pluralize.
func Generate(singular, plural string) Set {
	singular = strings.TrimSpace(singular)
	plural = strings.TrimSpace(plural)
	if plural == "" {
		plural = Pluralize(singular)
	}

	lowerSingular := strings.ToLower(singular)
	lowerPlural := strings.ToLower(plural)

	return Set{
		Name:          plural,
		SingularName:  singular,
		MenuName:      plural,
		AllItems:      fmt.Sprintf("All %s", plural),
		AddNew:        "Add New",
		AddNewItem:    fmt.Sprintf("Add New %s", singular),
		EditItem:      fmt.Sprintf("Edit %s", singular),
		NewItem:       fmt.Sprintf("New %s", singular),
		ViewItem:      fmt.Sprintf("View %s", singular),
		ViewItems:     fmt.Sprintf("View %s", plural),
		SearchItems:   fmt.Sprintf("Search %s", plural),
		NotFound:      fmt.Sprintf("No %s found", lowerPlural),
		NoSearchHits:  fmt.Sprintf("No %s match your search", lowerPlural),
		BackToList:    fmt.Sprintf("Back to %s", plural),
		SaveItem:      fmt.Sprintf("Save %s", singular),
		CreateItem:    fmt.Sprintf("Create %s", singular),
		UpdateItem:    fmt.Sprintf("Update %s", singular),
		DeleteItem:    fmt.Sprintf("Delete %s", singular),
		ConfirmDelete: fmt.Sprintf("Are you sure you want to delete this %s?", lowerSingular),
		ItemCreated:   fmt.Sprintf("%s created.", singular),
		ItemUpdated:   fmt.Sprintf("%s updated.", singular),
		ItemDeleted:   fmt.Sprintf("%s deleted.", singular),
		EmptyState:    fmt.Sprintf("No %s yet. Add your first %s to get started.", lowerPlural, lowerSingular),
		ListTitle:     plural,
		SettingsSaved: "Settings saved.",
	}
}
