package dto

import (
	"mime/multipart"

	"github.com/google/uuid"

	"stayhub/internal/domains/room/model"
	"stayhub/shared"
	gDto "stayhub/shared/dto"
	gModel "stayhub/shared/model"
	"stayhub/shared/money"
	"stayhub/shared/timezone"
)

type CreateRoomRequest struct {
	PropertyID    string                `form:"property_id"    validate:"required,uuid"`
	Name          string                `form:"name"           validate:"required,max=100"`
	Description   string                `form:"description"    validate:"omitempty,max=2000"`
	Capacity      int                   `form:"capacity"       validate:"omitempty,min=0"`
	BasePrice     money.Amount          `form:"base_price"     validate:"gt=0"`
	DiscountPrice *money.Amount         `form:"discount_price" validate:"omitempty,amount"`
	Currency      string                `form:"currency"       validate:"omitempty,len=3"`
	Active        *bool                 `form:"active"         validate:"omitempty"`
	Image         *multipart.FileHeader `form:"-"              validate:"omitempty,mimetypes=image/png image/jpg image/jpeg,maxfilesize=5"`
	ImageFile     multipart.File        `form:"-"`
}

func (c *CreateRoomRequest) ToModel(user, imageURL string) (model.Room, error) {
	currency, err := money.NormalizeCurrency(c.Currency)
	if err != nil {
		return model.Room{}, err
	}

	active := true
	if c.Active != nil {
		active = *c.Active
	}

	return model.Room{
		ID:            uuid.NewString(),
		PropertyID:    c.PropertyID,
		Name:          c.Name,
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

type UpdateRoomRequest struct {
	Name          string                `db:"name"           form:"name"           validate:"omitempty,max=100"`
	Description   string                `db:"description"    form:"description"    validate:"omitempty,max=2000"`
	Capacity      *int                  `db:"capacity"       form:"capacity"       validate:"omitempty,min=0"`
	BasePrice     *money.Amount         `db:"base_price"     form:"base_price"     validate:"omitempty,gt=0"`
	DiscountPrice *money.Amount         `db:"discount_price" form:"discount_price" validate:"omitempty,amount"`
	Currency      string                `db:"currency"       form:"currency"       validate:"omitempty,len=3"`
	Active        *bool                 `db:"active"         form:"active"         validate:"omitempty"`
	Image         *multipart.FileHeader `form:"-"            validate:"omitempty,mimetypes=image/png image/jpg image/jpeg,maxfilesize=5"`
	ImageFile     multipart.File        `form:"-"`
}

type RoomResponse struct {
	ID            string        `json:"id"`
	PropertyID    string        `json:"property_id"`
	Name          string        `json:"name"`
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

func (r *RoomResponse) FromModel(model model.Room) {
	r.ID = model.ID
	r.PropertyID = model.PropertyID
	r.Name = model.Name
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

type GetRoomsResponse struct {
	Rooms     []RoomResponse `json:"rooms"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetRoomsResponse) FromModels(models []model.Room, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Rooms = make([]RoomResponse, len(models))
	for i, mod := range models {
		r.Rooms[i].FromModel(mod)
	}
}
