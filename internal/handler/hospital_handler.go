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

type HospitalHandler struct {
	hospitalService *service.HospitalService
}

func NewHospitalHandler(hospitalService *service.HospitalService) *HospitalHandler {
	return &HospitalHandler{
		hospitalService: hospitalService,
	}
}

type CreateHospitalRequest struct {
	Code           string `json:"code" binding:"required,max=50"`
	Name           string `json:"name" binding:"required,max=255"`
	Address        string `json:"address"`
	City           string `json:"city" binding:"omitempty,max=100"`
	NormalBeds     int    `json:"normal_beds" binding:"omitempty,min=0"`
	HICUBeds       int    `json:"hicu_beds" binding:"omitempty,min=0"`
	ICUBeds        int    `json:"icu_beds" binding:"omitempty,min=0"`
	VentilatorBeds int    `json:"ventilator_beds" binding:"omitempty,min=0"`
}

type UpdateHospitalRequest struct {
	Name    string `json:"name" binding:"required,max=255"`
	Address string `json:"address"`
	City    string `json:"city" binding:"omitempty,max=100"`
}

// GetAllHospitals retrieves all active hospitals
func (h *HospitalHandler) GetAllHospitals(c *gin.Context) {
	hospitals, err := h.hospitalService.GetAllHospitals()
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to fetch hospitals")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"hospitals": hospitals,
		"count":     len(hospitals),
	})
}

// GetHospital retrieves a specific hospital by code
func (h *HospitalHandler) GetHospital(c *gin.Context) {
	code := c.Param("code")

	hospital, err := h.hospitalService.GetHospitalByCode(code)
	if err != nil {
		if errors.Is(err, repository.ErrHospitalNotFound) {
			utils.ErrorResponse(c, http.StatusNotFound, err.Error())
			return
		}
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to fetch hospital")
		return
	}

	utils.SuccessResponse(c, hospital)
}

// CreateHospital onboards a new hospital (admin only)
func (h *HospitalHandler) CreateHospital(c *gin.Context) {
	var req CreateHospitalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	adminID, _ := c.Get("userID")

	hospital := &models.Hospital{
		Code:    req.Code,
		Name:    req.Name,
		Address: req.Address,
		City:    req.City,
	}
	capacity := service.InitialCapacity{
		Normal:     req.NormalBeds,
		HICU:       req.HICUBeds,
		ICU:        req.ICUBeds,
		Ventilator: req.VentilatorBeds,
	}

	if err := h.hospitalService.CreateHospital(hospital, capacity, adminID.(uint)); err != nil {
		if errors.Is(err, repository.ErrDuplicateHospitalCode) {
			utils.ErrorResponse(c, http.StatusConflict, err.Error())
			return
		}
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to create hospital")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message":  "Hospital created successfully",
		"hospital": hospital,
	})
}

// UpdateHospital updates a hospital's descriptive fields (admin only)
func (h *HospitalHandler) UpdateHospital(c *gin.Context) {
	code := c.Param("code")

	var req UpdateHospitalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	adminID, _ := c.Get("userID")

	hospital := &models.Hospital{
		Code:    code,
		Name:    req.Name,
		Address: req.Address,
		City:    req.City,
	}

	if err := h.hospitalService.UpdateHospital(hospital, adminID.(uint)); err != nil {
		if errors.Is(err, repository.ErrHospitalNotFound) {
			utils.ErrorResponse(c, http.StatusNotFound, err.Error())
			return
		}
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to update hospital")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message":  "Hospital updated successfully",
		"hospital": hospital,
	})
}

// DeactivateHospital soft deletes a hospital (admin only)
func (h *HospitalHandler) DeactivateHospital(c *gin.Context) {
	code := c.Param("code")

	adminID, _ := c.Get("userID")

	if err := h.hospitalService.DeactivateHospital(code, adminID.(uint)); err != nil {
		if errors.Is(err, repository.ErrHospitalNotFound) {
			utils.ErrorResponse(c, http.StatusNotFound, err.Error())
			return
		}
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to deactivate hospital")
		return
	}

	utils.MessageResponse(c, "Hospital deactivated successfully")
}
