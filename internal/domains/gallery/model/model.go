package model

import "stayhub/shared/model"

const (
	TableName  = "property_photos"
	EntityName = "gallery"

	FieldID         = "id"
	FieldPropertyID = "property_id"
	FieldURL        = "url"
	FieldCaption    = "caption"
	FieldSortOrder  = "sort_order"

	// MaxPhotosPerProperty caps a single property's gallery.
	MaxPhotosPerProperty = 20
)

// Photo is one image in a property's gallery, shown in SortOrder.
type Photo struct {
	ID         string `db:"id"`
	PropertyID string `db:"property_id"`
	URL        string `db:"url"`
	Caption    string `db:"caption"`
	SortOrder  int    `db:"sort_order"`
	model.Metadata
}
