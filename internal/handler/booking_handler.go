package handler

import (
	"errors"
	"net/http"

	"emergency-bed-booking/internal/models"
	"emergency-bed-booking/internal/repository"
	"emergency-bed-booking/internal/service"
	"emergency-bed-booking/pkg/utils"

	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	bookingService *service.BookingService
}

func NewBookingHandler(bookingService *service.BookingService) *BookingHandler {
	return &BookingHandler{
		bookingService: bookingService,
	}
}

type BookRequest struct {
	HospitalCode   string `json:"hospital_code" binding:"required"`
	BedType        string `json:"bed_type" binding:"required"`
	PatientName    string `json:"patient_name" binding:"required,max=100"`
	PatientPhone   string `json:"patient_phone" binding:"omitempty,max=30"`
	PatientAddress string `json:"patient_address" binding:"omitempty,max=255"`
	PatientEmail   string `json:"patient_email" binding:"required,email"`
	SpO2           int    `json:"spo2" binding:"omitempty,min=0,max=100"`
}

// Book reserves one bed of the requested category
func (h *BookingHandler) Book(c *gin.Context) {
	var req BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	category, err := models.ParseBedCategory(req.BedType)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	userID, _ := c.Get("userID")

	reservation, err := h.bookingService.Book(service.BookingRequest{
		HospitalCode:   req.HospitalCode,
		Category:       category,
		PatientName:    req.PatientName,
		PatientPhone:   req.PatientPhone,
		PatientAddress: req.PatientAddress,
		PatientEmail:   req.PatientEmail,
		SpO2:           req.SpO2,
		RequestedBy:    userID.(uint),
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrHospitalNotFound):
			utils.ErrorResponse(c, http.StatusNotFound, err.Error())
		case errors.Is(err, repository.ErrInsufficientCapacity):
			// Expected outcome, not a fault: the category is depleted.
			utils.ErrorResponse(c, http.StatusConflict, err.Error())
		case errors.Is(err, repository.ErrStorageUnavailable):
			utils.ErrorResponse(c, http.StatusServiceUnavailable, err.Error())
		default:
			utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to book bed")
		}
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message":     "Bed booked successfully, kindly visit the hospital for further procedure",
		"reservation": reservation,
	})
}

// Release reverses a granted reservation
func (h *BookingHandler) Release(c *gin.Context) {
	id := c.Param("id")

	userID, _ := c.Get("userID")

	reservation, err := h.bookingService.Release(id, userID.(uint))
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrReservationNotFound):
			utils.ErrorResponse(c, http.StatusNotFound, err.Error())
		case errors.Is(err, repository.ErrAlreadyReleased):
			utils.ErrorResponse(c, http.StatusConflict, err.Error())
		case errors.Is(err, repository.ErrStorageUnavailable):
			utils.ErrorResponse(c, http.StatusServiceUnavailable, err.Error())
		default:
			utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to release bed")
		}
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message":     "Reservation released",
		"reservation": reservation,
	})
}

// GetReservation retrieves a reservation by id
func (h *BookingHandler) GetReservation(c *gin.Context) {
	id := c.Param("id")

	reservation, err := h.bookingService.GetReservation(id)
	if err != nil {
		if errors.Is(err, repository.ErrReservationNotFound) {
			utils.ErrorResponse(c, http.StatusNotFound, err.Error())
			return
		}
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to fetch reservation")
		return
	}

	// Patients may only see their own bookings; staff and admin see all.
	userID, _ := c.Get("userID")
	role, _ := c.Get("role")
	if role.(string) == models.RolePatient && reservation.RequestedBy != userID.(uint) {
		utils.ErrorResponse(c, http.StatusForbidden, "Access denied")
		return
	}

	utils.SuccessResponse(c, reservation)
}

// ListHospitalReservations lists the bookings for the staff user's hospital
func (h *BookingHandler) ListHospitalReservations(c *gin.Context) {
	hcode := c.Param("code")

	// Staff are confined to their own hospital; admins may query any.
	role, _ := c.Get("role")
	if role.(string) == models.RoleStaff {
		staffHcode, _ := c.Get("hospitalCode")
		if staffHcode.(string) != hcode {
			utils.ErrorResponse(c, http.StatusForbidden, "Access denied: not your hospital")
			return
		}
	}

	reservations, err := h.bookingService.ListHospitalReservations(hcode)
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to fetch reservations")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"reservations": reservations,
		"count":        len(reservations),
	})
}
