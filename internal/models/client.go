package models

import "time"

// Client is a billed customer, identified in business terms by its document number.
type Client struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	DocumentNumber string    `gorm:"size:50;not null;uniqueIndex" json:"document_number"`
	FullName       string    `gorm:"size:255;not null" json:"full_name"`
	AddressLine    *string   `gorm:"size:255" json:"address_line"`
	PhoneNumber    *string   `gorm:"size:50" json:"phone_number"`
	Email          *string   `gorm:"size:255;uniqueIndex" json:"email"`
	CreatedAt      time.Time `json:"created_at"`
}
