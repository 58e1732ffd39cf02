package models

import "time"

// Hospital represents a hospital/medical facility in the system.
// The four bed counters hold the currently available beds per category and
// are mutated only through the inventory store's ApplyDelta.
type Hospital struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Code           string    `gorm:"size:50;uniqueIndex;not null" json:"code"`
	Name           string    `gorm:"size:255;not null" json:"name"`
	Address        string    `gorm:"type:text" json:"address,omitempty"`
	City           string    `gorm:"size:100" json:"city,omitempty"`
	NormalBeds     int       `gorm:"not null;default:0" json:"normal_beds"`
	HICUBeds       int       `gorm:"column:hicu_beds;not null;default:0" json:"hicu_beds"`
	ICUBeds        int       `gorm:"column:icu_beds;not null;default:0" json:"icu_beds"`
	VentilatorBeds int       `gorm:"not null;default:0" json:"ventilator_beds"`
	CreatedAt      time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt      time.Time `gorm:"default:CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP" json:"updated_at"`
	IsActive       bool      `gorm:"default:true" json:"is_active"`
}

// TableName specifies the table name for Hospital model
func (Hospital) TableName() string {
	return "hospitals"
}

// AvailableBeds returns the current counter for the given category.
func (h *Hospital) AvailableBeds(category BedCategory) int {
	switch category {
	case BedNormal:
		return h.NormalBeds
	case BedHICU:
		return h.HICUBeds
	case BedICU:
		return h.ICUBeds
	case BedVentilator:
		return h.VentilatorBeds
	}
	return 0
}

// TotalAvailable returns the sum of all four category counters.
func (h *Hospital) TotalAvailable() int {
	return h.NormalBeds + h.HICUBeds + h.ICUBeds + h.VentilatorBeds
}

// HospitalAvailability is the read model served by the public availability API.
type HospitalAvailability struct {
	Code           string    `json:"hcode"`
	Name           string    `json:"hname"`
	NormalBeds     int       `json:"normal"`
	HICUBeds       int       `json:"hicu"`
	ICUBeds        int       `json:"icu"`
	VentilatorBeds int       `json:"ventilator"`
	TotalAvailable int       `json:"total_available"`
	UpdatedAt      time.Time `json:"last_updated"`
}
