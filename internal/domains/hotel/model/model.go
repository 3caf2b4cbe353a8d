package model

import "hotel/shared/model"

const (
	TableName  = "hotels"
	EntityName = "hotel"

	FieldID          = "id"
	FieldName        = "name"
	FieldAddress     = "address"
	FieldRating      = "rating"
	FieldDescription = "description"
)

type Hotel struct {
	ID          string  `db:"id"`
	Name        string  `db:"name"`
	Address     string  `db:"address"`
	Rating      float64 `db:"rating"`
	Description *string `db:"description"`
	model.Metadata
}
