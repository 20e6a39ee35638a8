package dto

import (
	"mime/multipart"

	"github.com/google/uuid"

	"stayhub/internal/domains/partner/model"
	"stayhub/shared"
	gDto "stayhub/shared/dto"
	gModel "stayhub/shared/model"
	"stayhub/shared/timezone"
)

type CreatePartnerRequest struct {
	Name        string                `form:"name"        validate:"required,min=2,max=100"`
	Website     string                `form:"website"     validate:"omitempty,url,max=255"`
	Description string                `form:"description" validate:"omitempty,max=1000"`
	SortOrder   int                   `form:"sort_order"  validate:"omitempty,min=0"`
	Active      *bool                 `form:"active"      validate:"omitempty"`
	Logo        *multipart.FileHeader `form:"-"           validate:"required,mimetypes=image/png image/jpg image/jpeg,maxfilesize=2"`
	LogoFile    multipart.File        `form:"-"`
}

func (c *CreatePartnerRequest) ToModel(user, logoURL string) model.Partner {
	active := true
	if c.Active != nil {
		active = *c.Active
	}

	return model.Partner{
		ID:          uuid.NewString(),
		Name:        c.Name,
		Logo:        logoURL,
		Website:     c.Website,
		Description: c.Description,
		SortOrder:   c.SortOrder,
		Active:      active,
		Metadata: gModel.NewMetadata(user, timezone.Now()),
	}
}

type UpdatePartnerRequest struct {
	Name        string                `db:"name"        form:"name"        validate:"omitempty,min=2,max=100"`
	Website     string                `db:"website"     form:"website"     validate:"omitempty,url,max=255"`
	Description string                `db:"description" form:"description" validate:"omitempty,max=1000"`
	SortOrder   *int                  `db:"sort_order"  form:"sort_order"  validate:"omitempty,min=0"`
	Active      *bool                 `db:"active"      form:"active"      validate:"omitempty"`
	Logo        *multipart.FileHeader `form:"-"         validate:"omitempty,mimetypes=image/png image/jpg image/jpeg,maxfilesize=2"`
	LogoFile    multipart.File        `form:"-"`
}

type PartnerResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Logo        string `json:"logo"`
	Website     string `json:"website"`
	Description string `json:"description"`
	SortOrder   int    `json:"sort_order"`
	Active      bool   `json:"active"`
	gDto.Metadata
}

func (r *PartnerResponse) FromModel(model model.Partner) {
	r.ID = model.ID
	r.Name = model.Name
	r.Logo = model.Logo
	r.Website = model.Website
	r.Description = model.Description
	r.SortOrder = model.SortOrder
	r.Active = model.Active
	r.Metadata.FromModel(model.Metadata)
}

type GetPartnersResponse struct {
	Partners  []PartnerResponse `json:"partners"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetPartnersResponse) FromModels(models []model.Partner, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Partners = make([]PartnerResponse, len(models))
	for i, m := range models {
		r.Partners[i].FromModel(m)
	}
}
