package controllers

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/prepfox/catalog-service/middleware"
	"github.com/prepfox/catalog-service/models"
)

// CartServiceAPI defines the cart and wishlist operations the controller
// depends on.
type CartServiceAPI interface {
	GetCart(ctx context.Context, userID string) (*models.Cart, error)
	AddItem(ctx context.Context, userID, productID string, quantity int) (*models.Cart, error)
	RemoveItem(ctx context.Context, userID, productID string) (*models.Cart, error)
	ClearCart(ctx context.Context, userID string) error
	GetWishlist(ctx context.Context, userID string) (*models.Wishlist, error)
	ToggleWishlist(ctx context.Context, userID, productID string) (*models.Wishlist, bool, error)
}

type CartController struct {
	service CartServiceAPI
}

func NewCartController(s CartServiceAPI) *CartController {
	return &CartController{service: s}
}

type addItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity"`
}

func (ctrl *CartController) GetCart(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	cart, err := ctrl.service.GetCart(c.Request.Context(), userID)
	if err != nil {
		zap.L().Error("Failed to fetch cart", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
		return
	}

	c.JSON(http.StatusOK, cart)
}

func (ctrl *CartController) AddItem(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if _, err := uuid.Parse(req.ProductID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	cart, err := ctrl.service.AddItem(c.Request.Context(), userID, req.ProductID, req.Quantity)
	if err != nil {
		if strings.Contains(err.Error(), "quantity") {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		zap.L().Error("Failed to add cart item", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart"})
		return
	}

	c.JSON(http.StatusOK, cart)
}

func (ctrl *CartController) RemoveItem(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	productID := c.Param("productId")
	if _, err := uuid.Parse(productID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	cart, err := ctrl.service.RemoveItem(c.Request.Context(), userID, productID)
	if err != nil {
		if strings.Contains(err.Error(), "not in cart") {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		zap.L().Error("Failed to remove cart item", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart"})
		return
	}

	c.JSON(http.StatusOK, cart)
}

func (ctrl *CartController) ClearCart(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := ctrl.service.ClearCart(c.Request.Context(), userID); err != nil {
		zap.L().Error("Failed to clear cart", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear cart"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
}

func (ctrl *CartController) GetWishlist(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	wishlist, err := ctrl.service.GetWishlist(c.Request.Context(), userID)
	if err != nil {
		zap.L().Error("Failed to fetch wishlist", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch wishlist"})
		return
	}

	c.JSON(http.StatusOK, wishlist)
}

// ToggleWishlist adds the product when absent, removes it when present.
func (ctrl *CartController) ToggleWishlist(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	productID := c.Param("productId")
	if _, err := uuid.Parse(productID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	wishlist, added, err := ctrl.service.ToggleWishlist(c.Request.Context(), userID, productID)
	if err != nil {
		zap.L().Error("Failed to toggle wishlist", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update wishlist"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"wishlist": wishlist, "added": added})
}
