package dto

import (
	"mime/multipart"

	"github.com/google/uuid"

	"stayhub/internal/domains/gallery/model"
	"stayhub/shared"
	gDto "stayhub/shared/dto"
	gModel "stayhub/shared/model"
	"stayhub/shared/timezone"
)

type UploadPhotoRequest struct {
	PropertyID string                `form:"property_id" validate:"required,uuid"`
	Caption    string                `form:"caption"     validate:"omitempty,max=255"`
	SortOrder  int                   `form:"sort_order"  validate:"omitempty,min=0"`
	Image      *multipart.FileHeader `form:"-"           validate:"required,mimetypes=image/png image/jpg image/jpeg,maxfilesize=5"`
	ImageFile  multipart.File        `form:"-"`
}

func (c *UploadPhotoRequest) ToModel(user, url string) model.Photo {
	return model.Photo{
		ID:         uuid.NewString(),
		PropertyID: c.PropertyID,
		URL:        url,
		Caption:    c.Caption,
		SortOrder:  c.SortOrder,
		Metadata: gModel.NewMetadata(user, timezone.Now()),
	}
}

type UpdatePhotoRequest struct {
	Caption   *string `db:"caption"    json:"caption"    validate:"omitempty,max=255"`
	SortOrder *int    `db:"sort_order" json:"sort_order" validate:"omitempty,min=0"`
}

func (r UpdatePhotoRequest) Empty() bool {
	return r.Caption == nil && r.SortOrder == nil
}

type PhotoResponse struct {
	ID         string `json:"id"`
	PropertyID string `json:"property_id"`
	URL        string `json:"url"`
	Caption    string `json:"caption"`
	SortOrder  int    `json:"sort_order"`
	gDto.Metadata
}

func (r *PhotoResponse) FromModel(m model.Photo) {
	r.ID = m.ID
	r.PropertyID = m.PropertyID
	r.URL = m.URL
	r.Caption = m.Caption
	r.SortOrder = m.SortOrder
	r.Metadata.FromModel(m.Metadata)
}

type GetPhotosResponse struct {
	Photos    []PhotoResponse `json:"photos"`
	TotalPage int             `json:"total_page"`
	TotalData int             `json:"total_data"`
}

func (r *GetPhotosResponse) FromModels(models []model.Photo, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Photos = make([]PhotoResponse, len(models))
	for i, m := range models {
		r.Photos[i].FromModel(m)
	}
}
