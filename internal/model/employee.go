package model

import "time"

// Employee is a directory entry that task CreatedBy/AssignedTo refer to.
type Employee struct {
	ID          string    `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Email       string    `json:"email" db:"email"`
	Department  string    `json:"department" db:"department"`
	Position    string    `json:"position" db:"position"`
	CompanyCode string    `json:"company_code" db:"company_code"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}
