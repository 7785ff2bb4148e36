package domain

import "time"

type Category struct {
	CategoryID   int64     `json:"categoryID" db:"category_id"`
	CategoryName string    `json:"categoryName" db:"category_name"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}
