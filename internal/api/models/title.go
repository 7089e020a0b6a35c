package models

import "time"

type Title struct {
	ID          int64   `json:"id" gorm:"primaryKey;autoIncrement"`
	Name        string  `json:"name" gorm:"size:200;not null;index"`
	Year        int     `json:"year" gorm:"not null"`
	Description *string `json:"description,omitempty" gorm:"size:255"`

	CategoryID *int64    `json:"-" gorm:"index"`
	Category   *Category `json:"category,omitempty" gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL;"`
	Genres     []Genre   `json:"genre,omitempty" gorm:"many2many:title_genres;constraint:OnDelete:CASCADE;"`

	// Rating is the mean of review scores, recomputed on read. Nil when the
	// title has no reviews yet. Never persisted.
	Rating *float64 `json:"rating" gorm:"-"`

	CreatedAt time.Time `json:"-" gorm:"autoCreateTime"`
}

func (Title) TableName() string {
	return "titles"
}
