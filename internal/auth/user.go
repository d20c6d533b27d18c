package auth

import "time"

type User struct {
	ID           uint64    `gorm:"primaryKey"`
	Username     string    `gorm:"uniqueIndex;not null"`
	PasscodeHash string    `gorm:"not null"`
	CreatedAt    time.Time `gorm:"not null"`
}
