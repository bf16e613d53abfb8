package httpserver

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"shopping-cart-service/internal/domain"

	"github.com/gin-gonic/gin"
)

// CartService is the slice of the cart service the handlers use.
type CartService interface {
	GetCart(ctx context.Context, userID int64) ([]domain.CartItem, error)
	ClearCart(ctx context.Context, userID int64) (int64, error)
	AddProduct(ctx context.Context, userID, productID int64) (*domain.CartItem, error)
	RemoveProduct(ctx context.Context, userID, productID int64) error
	ChangeQuantity(ctx context.Context, userID, productID int64, quantity float64) error
}

type cartHandler struct {
	svc CartService
}

type quantityRequest struct {
	Quantity *float64 `json:"quantity" binding:"required"`
}

func (h *cartHandler) getCart(c *gin.Context) {
	userID, ok := pathID(c, "userID")
	if !ok {
		return
	}

	items, err := h.svc.GetCart(c.Request.Context(), userID)
	if err != nil {
		writeCartError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *cartHandler) clearCart(c *gin.Context) {
	userID, ok := pathID(c, "userID")
	if !ok {
		return
	}

	if _, err := h.svc.ClearCart(c.Request.Context(), userID); err != nil {
		writeCartError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *cartHandler) addProduct(c *gin.Context) {
	userID, productID, ok := pathIDs(c)
	if !ok {
		return
	}

	item, err := h.svc.AddProduct(c.Request.Context(), userID, productID)
	if err != nil {
		writeProductError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *cartHandler) removeProduct(c *gin.Context) {
	userID, productID, ok := pathIDs(c)
	if !ok {
		return
	}

	if err := h.svc.RemoveProduct(c.Request.Context(), userID, productID); err != nil {
		writeProductError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *cartHandler) changeQuantity(c *gin.Context) {
	userID, productID, ok := pathIDs(c)
	if !ok {
		return
	}

	var req quantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "body must contain a numeric quantity"})
		return
	}

	if err := h.svc.ChangeQuantity(c.Request.Context(), userID, productID, *req.Quantity); err != nil {
		writeProductError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": name + " must be an integer"})
		return 0, false
	}
	return id, true
}

func pathIDs(c *gin.Context) (userID, productID int64, ok bool) {
	userID, ok = pathID(c, "userID")
	if !ok {
		return 0, 0, false
	}
	productID, ok = pathID(c, "productID")
	if !ok {
		return 0, 0, false
	}
	return userID, productID, true
}

// writeCartError maps failures of the cart-level routes: absence of the user
// and an empty cart are both 404s, as this API has always answered.
func writeCartError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrUserNotFound), errors.Is(err, domain.ErrEmptyCart):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrCatalogUnavailable):
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// writeProductError maps failures of the product-level routes: unknown
// user/product and product-not-in-cart are 404s, while already-in-cart,
// empty-cart and invalid-quantity are client mistakes (400).
func writeProductError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrProductNotFound),
		errors.Is(err, domain.ErrProductNotInCart):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrAlreadyInCart),
		errors.Is(err, domain.ErrEmptyCart),
		errors.Is(err, domain.ErrInvalidQuantity):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrCatalogUnavailable):
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
