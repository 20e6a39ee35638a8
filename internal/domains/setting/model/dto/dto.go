package dto

import (
	"stayhub/internal/domains/setting/model"
	gDto "stayhub/shared/dto"
	gModel "stayhub/shared/model"
	"stayhub/shared/timezone"
)

const KeyRule = "required,max=100,excludesall= /?#"

type PutSettingRequest struct {
	Value       string `json:"value"       validate:"required,max=10000"`
	Description string `json:"description" validate:"omitempty,max=255"`
	Public      *bool  `json:"public"      validate:"omitempty"`
}

func (p *PutSettingRequest) ToModel(key, user string) model.Setting {
	now := timezone.Now()

	return model.Setting{
		Key:         key,
		Value:       p.Value,
		Description: p.Description,
		Public:      p.Public != nil && *p.Public,
		Metadata: gModel.NewMetadata(user, now),
	}
}

// Fields lists the columns an existing setting is overwritten with. Value is
// always written; description and visibility only when given.
func (p *PutSettingRequest) Fields() map[string]any {
	fields := map[string]any{model.FieldValue: p.Value}

	if p.Description != "" {
		fields[model.FieldDescription] = p.Description
	}

	if p.Public != nil {
		fields[model.FieldPublic] = *p.Public
	}

	return fields
}

type SettingResponse struct {
	Key         string `json:"key"`
	Value       string `json:"value"`
	Description string `json:"description"`
	Public      bool   `json:"public"`
	gDto.Metadata
}

func (r *SettingResponse) FromModel(model model.Setting) {
	r.Key = model.Key
	r.Value = model.Value
	r.Description = model.Description
	r.Public = model.Public
	r.Metadata.FromModel(model.Metadata)
}

type GetSettingsResponse struct {
	Settings []SettingResponse `json:"settings"`
}

func (r *GetSettingsResponse) FromModels(models []model.Setting) {
	r.Settings = make([]SettingResponse, len(models))
	for i, mod := range models {
		r.Settings[i].FromModel(mod)
	}
}
