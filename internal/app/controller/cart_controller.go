package controller

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jmlee/fantasy-shop-backend/internal/app/service"
	apperrors "github.com/jmlee/fantasy-shop-backend/internal/errors"
	"github.com/jmlee/fantasy-shop-backend/internal/middleware"
)

type CartController struct {
	cartService service.CartService
}

func NewCartController(cartService service.CartService) *CartController {
	return &CartController{
		cartService: cartService,
	}
}

type AddToCartRequest struct {
	ItemID   uint `json:"itemId" binding:"required"`
	Quantity int  `json:"quantity" binding:"required,min=1"`
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" binding:"required,min=1"`
}

// AddToCart merges an item into the user's cart
// POST /api/cart
func (ctrl *CartController) AddToCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Respond(c, apperrors.AuthNoToken)
		return
	}

	var req AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid add to cart request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.Respond(c, apperrors.ValidationFailed)
		return
	}

	cartItem, err := ctrl.cartService.AddToCart(userID, req.ItemID, req.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrItemNotFound):
			apperrors.Respond(c, apperrors.ItemNotFound)
		case errors.Is(err, service.ErrInvalidQuantity):
			apperrors.Respond(c, apperrors.ValidationFailed)
		default:
			log.Error("Failed to add item to cart", err, map[string]interface{}{
				"user_id": userID,
				"item_id": req.ItemID,
			})
			apperrors.Respond(c, apperrors.InternalServerError)
		}
		return
	}

	apperrors.RespondCreated(c, cartItem)
}

// GetCart returns the user's cart rows with items
// GET /api/cart
func (ctrl *CartController) GetCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Respond(c, apperrors.AuthNoToken)
		return
	}

	rows, err := ctrl.cartService.GetCart(userID)
	if err != nil {
		log.Error("Failed to fetch cart", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.Respond(c, apperrors.InternalServerError)
		return
	}

	apperrors.RespondSuccess(c, rows)
}

// UpdateCartItem overwrites a cart row's quantity
// PATCH /api/cart/:id
func (ctrl *CartController) UpdateCartItem(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Respond(c, apperrors.AuthNoToken)
		return
	}

	cartItemID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.Respond(c, apperrors.InvalidQueryParam)
		return
	}

	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid cart update request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.Respond(c, apperrors.ValidationFailed)
		return
	}

	cartItem, err := ctrl.cartService.UpdateQuantity(userID, uint(cartItemID), req.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCartItemNotFound):
			apperrors.Respond(c, apperrors.CartItemNotFound)
		case errors.Is(err, service.ErrInvalidQuantity):
			apperrors.Respond(c, apperrors.ValidationFailed)
		default:
			log.Error("Failed to update cart item", err, map[string]interface{}{
				"user_id":      userID,
				"cart_item_id": cartItemID,
			})
			apperrors.Respond(c, apperrors.InternalServerError)
		}
		return
	}

	apperrors.RespondSuccess(c, cartItem)
}

// RemoveCartItem deletes one cart row
// DELETE /api/cart/:id
func (ctrl *CartController) RemoveCartItem(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Respond(c, apperrors.AuthNoToken)
		return
	}

	cartItemID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.Respond(c, apperrors.InvalidQueryParam)
		return
	}

	if err := ctrl.cartService.RemoveFromCart(userID, uint(cartItemID)); err != nil {
		if errors.Is(err, service.ErrCartItemNotFound) {
			apperrors.Respond(c, apperrors.CartItemNotFound)
			return
		}
		log.Error("Failed to remove cart item", err, map[string]interface{}{
			"user_id":      userID,
			"cart_item_id": cartItemID,
		})
		apperrors.Respond(c, apperrors.InternalServerError)
		return
	}

	apperrors.RespondSuccess(c, gin.H{
		"deleted": true,
	})
}

// ClearCart removes every row of the user's cart
// DELETE /api/cart/clear
func (ctrl *CartController) ClearCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Respond(c, apperrors.AuthNoToken)
		return
	}

	if err := ctrl.cartService.ClearCart(userID); err != nil {
		log.Error("Failed to clear cart", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.Respond(c, apperrors.InternalServerError)
		return
	}

	apperrors.RespondSuccess(c, gin.H{
		"cleared": true,
	})
}
