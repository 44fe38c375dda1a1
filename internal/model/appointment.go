package model

import (
	"time"
)

type AppointmentStatus string

const (
	AppointmentStatusScheduled AppointmentStatus = "Scheduled"
	AppointmentStatusCompleted AppointmentStatus = "Completed"
	AppointmentStatusCancelled AppointmentStatus = "Cancelled"
	AppointmentStatusNoShow    AppointmentStatus = "No-show"
)

// Appointment is a booking of a doctor for a patient at an exact
// (date, time) slot. The slot must be unique per doctor among
// non-cancelled appointments. Dates are ISO YYYY-MM-DD, times HH:MM.
type Appointment struct {
	ID              int64             `db:"id" json:"id"`
	PatientID       int64             `db:"patient_id" json:"patient_id"`
	DoctorID        int64             `db:"doctor_id" json:"doctor_id"`
	AppointmentDate string            `db:"appointment_date" json:"appointment_date"`
	AppointmentTime string            `db:"appointment_time" json:"appointment_time"`
	Status          AppointmentStatus `db:"status" json:"status"`
	Notes           *string           `db:"notes" json:"notes"`
	CreatedAt       time.Time         `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time         `db:"updated_at" json:"updated_at"`
}

// AppointmentDetail joins the appointment with the display fields of
// its patient and doctor.
type AppointmentDetail struct {
	Appointment
	PatientFirstName    string    `db:"patient_first_name" json:"patient_first_name"`
	PatientLastName     string    `db:"patient_last_name" json:"patient_last_name"`
	MedicalRecordNumber string    `db:"medical_record_number" json:"medical_record_number"`
	DoctorFirstName     string    `db:"doctor_first_name" json:"doctor_first_name"`
	DoctorLastName      string    `db:"doctor_last_name" json:"doctor_last_name"`
	StaffRole           StaffRole `db:"staff_role" json:"staff_role"`
}

type CreateAppointmentRequest struct {
	PatientID       int64   `json:"patient_id" binding:"required"`
	DoctorID        int64   `json:"doctor_id" binding:"required"`
	AppointmentDate string  `json:"appointment_date" binding:"required,dateonly"`
	AppointmentTime string  `json:"appointment_time" binding:"required,clocktime"`
	Notes           *string `json:"notes"`
}

// UpdateAppointmentRequest covers the mutable subset of an appointment.
// Date and time are ignored when submitted empty; notes clear on an
// explicit empty string.
type UpdateAppointmentRequest struct {
	AppointmentDate *string `json:"appointment_date" binding:"omitempty,dateonly"`
	AppointmentTime *string `json:"appointment_time" binding:"omitempty,clocktime"`
	Notes           *string `json:"notes"`
}

type UpdateAppointmentStatusRequest struct {
	Status AppointmentStatus `json:"status" binding:"required,apptstatus"`
}

type AppointmentFilters struct {
	Date      string
	StartDate string
	EndDate   string
	DoctorID  *int64
	PatientID *int64
	Status    *AppointmentStatus
}
