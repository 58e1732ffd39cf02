package handler

import (
	"errors"
	"net/http"
	"time"

	"emergency-bed-booking/internal/models"
	"emergency-bed-booking/internal/repository"
	"emergency-bed-booking/internal/service"
	"emergency-bed-booking/pkg/utils"

	"github.com/gin-gonic/gin"
)

type InventoryHandler struct {
	inventoryService *service.InventoryService
}

func NewInventoryHandler(inventoryService *service.InventoryService) *InventoryHandler {
	return &InventoryHandler{
		inventoryService: inventoryService,
	}
}

type AdjustRequest struct {
	HospitalCode string `json:"hospital_code" binding:"required"`
	BedType      string `json:"bed_type" binding:"required"`
	Delta        int    `json:"delta" binding:"required"`
}

// GetAvailability returns live per-category bed counts for all hospitals.
// Public endpoint, polled by front ends and export/analytics consumers.
func (h *InventoryHandler) GetAvailability(c *gin.Context) {
	availability, err := h.inventoryService.GetAvailability()
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to fetch hospital availability")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"hospitals": availability,
		"timestamp": time.Now().UTC(),
	})
}

// Adjust applies an audited administrative capacity change (staff/admin)
func (h *InventoryHandler) Adjust(c *gin.Context) {
	var req AdjustRequest
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
	role, _ := c.Get("role")

	// Staff may only adjust their own hospital's inventory.
	if role.(string) == models.RoleStaff {
		staffHcode, _ := c.Get("hospitalCode")
		if staffHcode.(string) != req.HospitalCode {
			utils.ErrorResponse(c, http.StatusForbidden, "Access denied: not your hospital")
			return
		}
	}

	entry, err := h.inventoryService.Adjust(req.HospitalCode, category, req.Delta, userID.(uint))
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrHospitalNotFound):
			utils.ErrorResponse(c, http.StatusNotFound, err.Error())
		case errors.Is(err, repository.ErrInsufficientCapacity):
			utils.ErrorResponse(c, http.StatusConflict, "Adjustment would drive the counter negative")
		case errors.Is(err, repository.ErrStorageUnavailable):
			utils.ErrorResponse(c, http.StatusServiceUnavailable, err.Error())
		default:
			utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		}
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": "Inventory adjusted",
		"entry":   entry,
	})
}

// QueryLedger returns the inventory audit trail for a hospital (staff/admin)
func (h *InventoryHandler) QueryLedger(c *gin.Context) {
	hcode := c.Query("hospital")
	if hcode == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, "hospital query parameter is required")
		return
	}

	var since time.Time
	if raw := c.Query("since"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			utils.ErrorResponse(c, http.StatusBadRequest, "since must be RFC 3339 formatted")
			return
		}
		since = parsed
	}

	// Staff see only their own hospital's history.
	role, _ := c.Get("role")
	if role.(string) == models.RoleStaff {
		staffHcode, _ := c.Get("hospitalCode")
		if staffHcode.(string) != hcode {
			utils.ErrorResponse(c, http.StatusForbidden, "Access denied: not your hospital")
			return
		}
	}

	entries, err := h.inventoryService.QueryLedger(hcode, since)
	if err != nil {
		if errors.Is(err, repository.ErrHospitalNotFound) {
			utils.ErrorResponse(c, http.StatusNotFound, err.Error())
			return
		}
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to query ledger")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"entries": entries,
		"count":   len(entries),
	})
}
