package models

import "time"

// ReservationStatus tracks the lifecycle of a granted bed claim.
// A rejected booking is returned to the caller but never persisted.
type ReservationStatus string

const (
	ReservationGranted  ReservationStatus = "granted"
	ReservationReleased ReservationStatus = "released"
)

// Reservation represents a granted claim on one bed of a category.
// Created in the same transaction as the counter decrement; released
// symmetrically via the release path.
type Reservation struct {
	ID           string            `gorm:"primaryKey;size:36" json:"id"`
	HospitalCode string            `gorm:"size:50;not null;index" json:"hospital_code"`
	Category     BedCategory       `gorm:"size:20;not null" json:"category"`
	Status       ReservationStatus `gorm:"size:20;not null;default:'granted'" json:"status"`

	// Patient details captured at booking time.
	PatientName    string `gorm:"size:100;not null" json:"patient_name"`
	PatientPhone   string `gorm:"size:30" json:"patient_phone,omitempty"`
	PatientAddress string `gorm:"size:255" json:"patient_address,omitempty"`
	PatientEmail   string `gorm:"size:100;index" json:"patient_email"`
	SpO2           int    `gorm:"column:spo2" json:"spo2,omitempty"`

	// RequestedBy is the authenticated user who placed the booking.
	RequestedBy uint      `gorm:"not null;index" json:"requested_by"`
	CreatedAt   time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	ReleasedAt  *time.Time `json:"released_at,omitempty"`
}

// TableName specifies the table name for Reservation model
func (Reservation) TableName() string {
	return "reservations"
}
