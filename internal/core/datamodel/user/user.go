package user

import "time"

// User is the persistence shape of an account row.
type User struct {
	ID           int64     `gorm:"primaryKey;column:id" db:"id"`
	Name         string    `gorm:"column:name" db:"name"`
	Email        string    `gorm:"column:email;uniqueIndex" db:"email"`
	PasswordHash string    `gorm:"column:password_hash" db:"password_hash"`
	Role         string    `gorm:"column:role" db:"role"`
	CreatedAt    time.Time `gorm:"column:created_at" db:"created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at" db:"updated_at"`
}

func (User) TableName() string {
	return "users"
}
