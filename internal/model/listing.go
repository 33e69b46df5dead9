package model

import "time"

// Listing 商品主体（团、房源等，仅本子系统所需字段）
type Listing struct {
	ID       string  `json:"id" gorm:"primaryKey;type:varchar(36)"`
	AuthorID string  `json:"author_id" gorm:"type:varchar(36);index:idx_listing_author;not null"`
	Title    string  `json:"title" gorm:"type:varchar(255)"`
	Payload  string  `json:"payload" gorm:"type:text"`
	ShortID  *string `json:"short_id,omitempty" gorm:"type:varchar(32);uniqueIndex"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Listing) TableName() string { return "listings" }
