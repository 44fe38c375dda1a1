package model

import (
	"time"
)

type StaffRole string

const (
	RoleAdmin        StaffRole = "Admin"
	RoleDoctor       StaffRole = "Doctor"
	RoleNurse        StaffRole = "Nurse"
	RoleReceptionist StaffRole = "Receptionist"
)

// Staff is a clinic employee account. Staff are never hard-deleted;
// the is_active flag is a reversible soft delete.
type Staff struct {
	ID             int64     `db:"id" json:"id"`
	Email          string    `db:"email" json:"email"`
	PasswordHash   string    `db:"password_hash" json:"-"`
	FirstName      string    `db:"first_name" json:"first_name"`
	LastName       string    `db:"last_name" json:"last_name"`
	Phone          *string   `db:"phone" json:"phone,omitempty"`
	Role           StaffRole `db:"role" json:"role"`
	Specialization *string   `db:"specialization" json:"specialization,omitempty"`
	IsActive       bool      `db:"is_active" json:"is_active"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

type CreateStaffRequest struct {
	Email     string    `json:"email" binding:"required,email"`
	Password  string    `json:"password" binding:"required,strongpassword"`
	FirstName string    `json:"first_name" binding:"required"`
	LastName  string    `json:"last_name" binding:"required"`
	Role      StaffRole `json:"role" binding:"required,staffrole"`
}

// UpdateStaffRequest carries the optional subset of mutable staff
// fields. A nil pointer means the field was absent from the request.
type UpdateStaffRequest struct {
	FirstName      *string    `json:"first_name"`
	LastName       *string    `json:"last_name"`
	Phone          *string    `json:"phone"`
	Role           *StaffRole `json:"role" binding:"omitempty,staffrole"`
	Specialization *string    `json:"specialization"`
}

type StaffFilters struct {
	Role     *StaffRole
	IsActive *bool
}
