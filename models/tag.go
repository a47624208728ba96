package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Tag is a classification label attached to recipes. Slug is the identity.
type Tag struct {
	ID    uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Name  string    `json:"name" db:"name" gorm:"type:text;not null;index"`
	Color string    `json:"color" db:"color" gorm:"type:varchar(7);not null"`
	Slug  string    `json:"slug" db:"slug" gorm:"type:varchar(50);not null;uniqueIndex"`
}

func (t *Tag) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
