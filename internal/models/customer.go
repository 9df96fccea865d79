package models

import "time"

type Customer struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	Name               string    `gorm:"type:varchar(255);not null" json:"name"`
	Email              string    `gorm:"type:varchar(255);not null;uniqueIndex" json:"email"`
	PhoneNumber        string    `gorm:"type:varchar(30)" json:"phone_number"`
	DietaryPreferences string    `gorm:"type:text" json:"dietary_preferences,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}
