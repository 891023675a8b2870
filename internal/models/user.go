package models

// User represents a registered account holder
type User struct {
	Base
	Username     string        `gorm:"size:255;uniqueIndex;not null"`
	PasswordHash string        `gorm:"not null"`
	Categories   []Category    `gorm:"foreignKey:UserID"`
	Transactions []Transaction `gorm:"foreignKey:UserID"`
}
