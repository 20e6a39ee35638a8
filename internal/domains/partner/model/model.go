package model

import "stayhub/shared/model"

const (
	TableName  = "partners"
	EntityName = "partner"

	FieldID          = "id"
	FieldName        = "name"
	FieldLogo        = "logo"
	FieldWebsite     = "website"
	FieldDescription = "description"
	FieldSortOrder   = "sort_order"
	FieldActive      = "active"
)

// Partner is a brand shown on the public site, ordered by SortOrder.
type Partner struct {
	ID          string `db:"id"`
	Name        string `db:"name"`
	Logo        string `db:"logo"`
	Website     string `db:"website"`
	Description string `db:"description"`
	SortOrder   int    `db:"sort_order"`
	Active      bool   `db:"active"`
	model.Metadata
}
