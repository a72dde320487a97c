package school

import "time"

// School is the persistence shape of a school record. UserID references the
// creating user and never changes after insert.
type School struct {
	ID          int64     `gorm:"primaryKey;column:id" db:"id"`
	Name        string    `gorm:"column:name" db:"name"`
	Responsible string    `gorm:"column:responsible" db:"responsible"`
	Contact     string    `gorm:"column:contact" db:"contact"`
	Address     string    `gorm:"column:address" db:"address"`
	UserID      int64     `gorm:"column:user_id" db:"user_id"`
	CreatedAt   time.Time `gorm:"column:created_at" db:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at" db:"updated_at"`
}

func (School) TableName() string {
	return "schools"
}
