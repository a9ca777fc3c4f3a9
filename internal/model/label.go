package model

import "time"

// Label is a colored tag the user can attach to tasks.
type Label struct {
	ID          string    `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Color       string    `json:"color" db:"color"`
	CompanyCode string    `json:"company_code" db:"company_code"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}
