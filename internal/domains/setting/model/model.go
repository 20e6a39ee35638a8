package model

import "stayhub/shared/model"

const (
	TableName  = "settings"
	EntityName = "setting"

	FieldKey         = "key"
	FieldValue       = "value"
	FieldDescription = "description"
	FieldPublic      = "public"
)

// Setting is a site-wide key/value entry such as contact details or policies.
type Setting struct {
	Key         string `db:"key"`
	Value       string `db:"value"`
	Description string `db:"description"`
	Public      bool   `db:"public"`
	model.Metadata
}
