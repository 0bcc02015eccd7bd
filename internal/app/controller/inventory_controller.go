package controller

import (
	"github.com/gin-gonic/gin"
	"github.com/jmlee/fantasy-shop-backend/internal/app/service"
	apperrors "github.com/jmlee/fantasy-shop-backend/internal/errors"
	"github.com/jmlee/fantasy-shop-backend/internal/middleware"
)

type InventoryController struct {
	inventoryService service.InventoryService
}

func NewInventoryController(inventoryService service.InventoryService) *InventoryController {
	return &InventoryController{
		inventoryService: inventoryService,
	}
}

// GetMyInventory returns the items the user owns
// GET /api/inventory
func (ctrl *InventoryController) GetMyInventory(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Respond(c, apperrors.AuthNoToken)
		return
	}

	rows, err := ctrl.inventoryService.GetMyInventory(userID)
	if err != nil {
		log.Error("Failed to fetch inventory", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.Respond(c, apperrors.InternalServerError)
		return
	}

	apperrors.RespondSuccess(c, rows)
}
