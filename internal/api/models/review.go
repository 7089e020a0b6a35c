package models

import "time"

// Review holds a single user's review of a title. The composite unique index
// on (author_id, title_id) is the authoritative guard against duplicates; the
// service-level existence check is only a fast path.
type Review struct {
	ID       int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	AuthorID string `json:"-" gorm:"type:uuid;not null;uniqueIndex:idx_reviews_author_title"`
	TitleID  int64  `json:"title_id" gorm:"not null;uniqueIndex:idx_reviews_author_title"`
	Text     string `json:"text" gorm:"not null;type:text"`
	Score    int    `json:"score" gorm:"not null;check:score >= 1 AND score <= 10"`

	CreatedAt time.Time `json:"pub_date" gorm:"autoCreateTime;index"`

	// Associations
	Author User  `json:"-" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE;"`
	Title  Title `json:"-" gorm:"foreignKey:TitleID;constraint:OnDelete:CASCADE;"`
}

func (Review) TableName() string {
	return "reviews"
}
