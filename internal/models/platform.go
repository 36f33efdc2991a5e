package models

// Platform is a payment channel a transaction can arrive through.
type Platform struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:100;not null;uniqueIndex" json:"name"`
}
