package models

import (
	"time"
)

type Recipe struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	Title             string    `gorm:"not null;type:varchar(255)" json:"title"`
	Instructions      string    `gorm:"not null;type:text" json:"instructions"`
	MinutesToComplete int       `gorm:"not null" json:"minutes_to_complete"`
	UserID            uint      `gorm:"not null;index" json:"user_id"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (Recipe) TableName() string {
	return "recipes"
}

// PublicRecipe is the client-facing view of a recipe.
type PublicRecipe struct {
	ID                uint   `json:"id"`
	Title             string `json:"title"`
	Instructions      string `json:"instructions"`
	MinutesToComplete int    `json:"minutes_to_complete"`
	UserID            uint   `json:"user_id"`
}

func (r *Recipe) Public() PublicRecipe {
	return PublicRecipe{
		ID:                r.ID,
		Title:             r.Title,
		Instructions:      r.Instructions,
		MinutesToComplete: r.MinutesToComplete,
		UserID:            r.UserID,
	}
}
