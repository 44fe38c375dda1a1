package model

import (
	"time"
)

// Patient is a clinic patient record, identified externally by a
// unique medical record number. Archiving is a reversible soft delete;
// archived patients are excluded from default listings and from new
// appointment eligibility.
type Patient struct {
	ID                    int64     `db:"id" json:"id"`
	MedicalRecordNumber   string    `db:"medical_record_number" json:"medical_record_number"`
	FirstName             string    `db:"first_name" json:"first_name"`
	LastName              string    `db:"last_name" json:"last_name"`
	DateOfBirth           string    `db:"date_of_birth" json:"date_of_birth"`
	Gender                string    `db:"gender" json:"gender"`
	Phone                 *string   `db:"phone" json:"phone"`
	Email                 *string   `db:"email" json:"email"`
	Address               *string   `db:"address" json:"address,omitempty"`
	City                  *string   `db:"city" json:"city,omitempty"`
	State                 *string   `db:"state" json:"state,omitempty"`
	ZipCode               *string   `db:"zip_code" json:"zip_code,omitempty"`
	Allergies             *string   `db:"allergies" json:"allergies"`
	BloodType             *string   `db:"blood_type" json:"blood_type"`
	EmergencyContactName  *string   `db:"emergency_contact_name" json:"emergency_contact_name,omitempty"`
	EmergencyContactPhone *string   `db:"emergency_contact_phone" json:"emergency_contact_phone,omitempty"`
	IsArchived            bool      `db:"is_archived" json:"is_archived"`
	CreatedAt             time.Time `db:"created_at" json:"created_at"`
	UpdatedAt             time.Time `db:"updated_at" json:"updated_at"`

	// Populated only when the caller asks for embedded appointments.
	Appointments []*AppointmentDetail `db:"-" json:"appointments,omitempty"`
}

type CreatePatientRequest struct {
	MedicalRecordNumber string  `json:"medical_record_number" binding:"required,mrn"`
	FirstName           string  `json:"first_name" binding:"required"`
	LastName            string  `json:"last_name" binding:"required"`
	DateOfBirth         string  `json:"date_of_birth" binding:"required,dateonly"`
	Gender              string  `json:"gender" binding:"required,gender"`
	Phone               *string `json:"phone"`
	Email               *string `json:"email" binding:"omitempty,email"`
	Allergies           *string `json:"allergies"`
	BloodType           *string `json:"blood_type" binding:"omitempty,bloodtype"`
}

// UpdatePatientRequest distinguishes absent fields (nil pointer, left
// untouched) from fields explicitly submitted empty (cleared). Identity
// fields (name, date of birth, gender) are never cleared: an empty
// value for those is ignored.
type UpdatePatientRequest struct {
	FirstName             *string `json:"first_name"`
	LastName              *string `json:"last_name"`
	DateOfBirth           *string `json:"date_of_birth" binding:"omitempty,dateonly"`
	Gender                *string `json:"gender" binding:"omitempty,gender"`
	Phone                 *string `json:"phone"`
	Email                 *string `json:"email" binding:"omitempty,email"`
	Address               *string `json:"address"`
	City                  *string `json:"city"`
	State                 *string `json:"state"`
	ZipCode               *string `json:"zip_code"`
	Allergies             *string `json:"allergies"`
	BloodType             *string `json:"blood_type" binding:"omitempty,bloodtype"`
	EmergencyContactName  *string `json:"emergency_contact_name"`
	EmergencyContactPhone *string `json:"emergency_contact_phone"`
}

type PatientFilters struct {
	Search     string
	Gender     *string
	IsArchived *bool
}

// PatientSearchQuery narrows the quick-search endpoint. Field is one of
// name, mrn, phone; empty searches all three.
type PatientSearchQuery struct {
	Term  string
	Field string
}
