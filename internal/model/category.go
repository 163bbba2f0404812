package model

import (
	"time"

	"github.com/google/uuid"
)

// Category classifies products. Deletion is referentially protected: a
// category cannot be removed while any product still points at it.
type Category struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name        string    `gorm:"uniqueIndex;not null"`
	Description *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName matches the table created by the original SQL schema.
func (Category) TableName() string { return "product_categories" }
