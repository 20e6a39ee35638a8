package dto

import (
	"mime/multipart"

	"github.com/google/uuid"

	"stayhub/internal/domains/property/model"
	"stayhub/shared"
	gDto "stayhub/shared/dto"
	gModel "stayhub/shared/model"
	"stayhub/shared/money"
	"stayhub/shared/timezone"
)

type CreatePropertyRequest struct {
	Name          string                `form:"name"           validate:"required,max=150"`
	Kind          string                `form:"kind"           validate:"required,oneof=hotel resort chalet apartment"`
	City          string                `form:"city"           validate:"omitempty,max=100"`
	Address       string                `form:"address"        validate:"omitempty,max=255"`
	Description   string                `form:"description"    validate:"omitempty,max=2000"`
	Capacity      int                   `form:"capacity"       validate:"omitempty,min=0"`
	BasePrice     money.Amount          `form:"base_price"     validate:"gt=0"`
	DiscountPrice *money.Amount         `form:"discount_price" validate:"omitempty,amount"`
	Currency      string                `form:"currency"       validate:"omitempty,len=3"`
	Active        *bool                 `form:"active"         validate:"omitempty"`
	Image         *multipart.FileHeader `form:"-"              validate:"omitempty,mimetypes=image/png image/jpg image/jpeg,maxfilesize=5"`
	ImageFile     multipart.File        `form:"-"`
}

func (c *CreatePropertyRequest) ToModel(user, imageURL string) (model.Property, error) {
	currency, err := money.NormalizeCurrency(c.Currency)
	if err != nil {
		return model.Property{}, err
	}

	active := true
	if c.Active != nil {
		active = *c.Active
	}

	return model.Property{
		ID:            uuid.NewString(),
		Name:          c.Name,
		Kind:          c.Kind,
		City:          c.City,
		Address:       c.Address,
		Description:   c.Description,
		Capacity:      c.Capacity,
		BasePrice:     c.BasePrice,
		DiscountPrice: c.DiscountPrice,
		Currency:      currency,
		Image:         imageURL,
		Active:        active,
		Metadata: gModel.NewMetadata(user, timezone.Now()),
	}, nil
}

type UpdatePropertyRequest struct {
	Name          string                `db:"name"           form:"name"           validate:"omitempty,max=150"`
	Kind          string                `db:"kind"           form:"kind"           validate:"omitempty,oneof=hotel resort chalet apartment"`
	City          string                `db:"city"           form:"city"           validate:"omitempty,max=100"`
	Address       string                `db:"address"        form:"address"        validate:"omitempty,max=255"`
	Description   string                `db:"description"    form:"description"    validate:"omitempty,max=2000"`
	Capacity      *int                  `db:"capacity"       form:"capacity"       validate:"omitempty,min=0"`
	BasePrice     *money.Amount         `db:"base_price"     form:"base_price"     validate:"omitempty,gt=0"`
	DiscountPrice *money.Amount         `db:"discount_price" form:"discount_price" validate:"omitempty,amount"`
	Currency      string                `db:"currency"       form:"currency"       validate:"omitempty,len=3"`
	Active        *bool                 `db:"active"         form:"active"         validate:"omitempty"`
	Image         *multipart.FileHeader `form:"-"            validate:"omitempty,mimetypes=image/png image/jpg image/jpeg,maxfilesize=5"`
	ImageFile     multipart.File        `form:"-"`
}

type PropertyResponse struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Kind          string        `json:"kind"`
	City          string        `json:"city"`
	Address       string        `json:"address"`
	Description   string        `json:"description"`
	Capacity      int           `json:"capacity"`
	BasePrice     money.Amount  `json:"base_price"     swaggertype:"number"`
	DiscountPrice *money.Amount `json:"discount_price" swaggertype:"number"`
	NightlyPrice  money.Amount  `json:"nightly_price"  swaggertype:"number"`
	Currency      string        `json:"currency"`
	Image         string        `json:"image"`
	Active        bool          `json:"active"`
	gDto.Metadata
}

func (r *PropertyResponse) FromModel(model model.Property) {
	r.ID = model.ID
	r.Name = model.Name
	r.Kind = model.Kind
	r.City = model.City
	r.Address = model.Address
	r.Description = model.Description
	r.Capacity = model.Capacity
	r.BasePrice = model.BasePrice
	r.DiscountPrice = model.DiscountPrice
	r.NightlyPrice = model.UnitPrice().Nightly()
	r.Currency = model.Currency
	r.Image = model.Image
	r.Active = model.Active
	r.Metadata.FromModel(model.Metadata)
}

type GetPropertiesResponse struct {
	Properties []PropertyResponse `json:"properties"`
	TotalPage  int                `json:"total_page"`
	TotalData  int                `json:"total_data"`
}

func (r *GetPropertiesResponse) FromModels(models []model.Property, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Properties = make([]PropertyResponse, len(models))
	for i, mod := range models {
		r.Properties[i].FromModel(mod)
	}
}
