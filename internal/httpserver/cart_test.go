package httpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"shopping-cart-service/internal/domain"

	"github.com/gin-gonic/gin"
)

type stubCartService struct {
	items       []domain.CartItem
	item        *domain.CartItem
	getErr      error
	clearErr    error
	addErr      error
	removeErr   error
	changeErr   error
	lastUserID  int64
	lastProduct int64
	lastQty     float64
}

func (s *stubCartService) GetCart(_ context.Context, userID int64) ([]domain.CartItem, error) {
	s.lastUserID = userID
	return s.items, s.getErr
}

func (s *stubCartService) ClearCart(_ context.Context, userID int64) (int64, error) {
	s.lastUserID = userID
	return int64(len(s.items)), s.clearErr
}

func (s *stubCartService) AddProduct(_ context.Context, userID, productID int64) (*domain.CartItem, error) {
	s.lastUserID = userID
	s.lastProduct = productID
	return s.item, s.addErr
}

func (s *stubCartService) RemoveProduct(_ context.Context, userID, productID int64) error {
	s.lastUserID = userID
	s.lastProduct = productID
	return s.removeErr
}

func (s *stubCartService) ChangeQuantity(_ context.Context, userID, productID int64, quantity float64) error {
	s.lastUserID = userID
	s.lastProduct = productID
	s.lastQty = quantity
	return s.changeErr
}

func testRouter(svc CartService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return buildRouter(log.New(io.Discard, "", 0), nil, Deps{CartSvc: svc}, "*")
}

func doRequest(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestGetCart_OK(t *testing.T) {
	svc := &stubCartService{items: []domain.CartItem{{ID: 1, UserID: 1, ProductID: 2, Quantity: 1}}}
	rec := doRequest(testRouter(svc), http.MethodGet, "/cart/user/1", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if svc.lastUserID != 1 {
		t.Fatalf("expected userID 1, got %d", svc.lastUserID)
	}
	var items []domain.CartItem
	if err := json.Unmarshal(rec.Body.Bytes(), &items); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(items) != 1 || items[0].ProductID != 2 {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}
}

func TestGetCart_EmptyCartIs404(t *testing.T) {
	svc := &stubCartService{getErr: domain.ErrEmptyCart}
	rec := doRequest(testRouter(svc), http.MethodGet, "/cart/user/5", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestGetCart_UnknownUserIs404(t *testing.T) {
	svc := &stubCartService{getErr: domain.ErrUserNotFound}
	rec := doRequest(testRouter(svc), http.MethodGet, "/cart/user/42", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestGetCart_CatalogDownIs502(t *testing.T) {
	svc := &stubCartService{getErr: domain.ErrCatalogUnavailable}
	rec := doRequest(testRouter(svc), http.MethodGet, "/cart/user/1", "")
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", rec.Code)
	}
}

func TestGetCart_BadUserID(t *testing.T) {
	rec := doRequest(testRouter(&stubCartService{}), http.MethodGet, "/cart/user/abc", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestClearCart_NoContent(t *testing.T) {
	svc := &stubCartService{items: []domain.CartItem{{ID: 1}}}
	rec := doRequest(testRouter(svc), http.MethodDelete, "/cart/user/1", "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
}

func TestClearCart_EmptyCartIs404(t *testing.T) {
	svc := &stubCartService{clearErr: domain.ErrEmptyCart}
	rec := doRequest(testRouter(svc), http.MethodDelete, "/cart/user/1", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestAddProduct_Created(t *testing.T) {
	svc := &stubCartService{item: &domain.CartItem{ID: 1, UserID: 1, ProductID: 2, Username: "amy", Quantity: 1}}
	rec := doRequest(testRouter(svc), http.MethodPost, "/cart/user/1/product/2", "")

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if svc.lastUserID != 1 || svc.lastProduct != 2 {
		t.Fatalf("unexpected ids user=%d product=%d", svc.lastUserID, svc.lastProduct)
	}
	var item domain.CartItem
	if err := json.Unmarshal(rec.Body.Bytes(), &item); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if item.Username != "amy" {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}
}

func TestAddProduct_DuplicateIs400(t *testing.T) {
	svc := &stubCartService{addErr: domain.ErrAlreadyInCart}
	rec := doRequest(testRouter(svc), http.MethodPost, "/cart/user/1/product/2", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAddProduct_UnknownProductIs404(t *testing.T) {
	svc := &stubCartService{addErr: domain.ErrProductNotFound}
	rec := doRequest(testRouter(svc), http.MethodPost, "/cart/user/1/product/42", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestRemoveProduct_NoContent(t *testing.T) {
	rec := doRequest(testRouter(&stubCartService{}), http.MethodDelete, "/cart/user/1/product/2", "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
}

func TestRemoveProduct_EmptyCartIs400(t *testing.T) {
	svc := &stubCartService{removeErr: domain.ErrEmptyCart}
	rec := doRequest(testRouter(svc), http.MethodDelete, "/cart/user/1/product/2", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestRemoveProduct_NotInCartIs404(t *testing.T) {
	svc := &stubCartService{removeErr: domain.ErrProductNotInCart}
	rec := doRequest(testRouter(svc), http.MethodDelete, "/cart/user/1/product/2", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestChangeQuantity_OK(t *testing.T) {
	svc := &stubCartService{}
	rec := doRequest(testRouter(svc), http.MethodPut, "/cart/user/1/product/2", `{"quantity": 5}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if svc.lastQty != 5 {
		t.Fatalf("expected quantity 5, got %v", svc.lastQty)
	}
}

func TestChangeQuantity_InvalidIs400(t *testing.T) {
	svc := &stubCartService{changeErr: domain.ErrInvalidQuantity}
	rec := doRequest(testRouter(svc), http.MethodPut, "/cart/user/1/product/2", `{"quantity": 150}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestChangeQuantity_MissingBody(t *testing.T) {
	rec := doRequest(testRouter(&stubCartService{}), http.MethodPut, "/cart/user/1/product/2", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestChangeQuantity_NonNumericQuantity(t *testing.T) {
	rec := doRequest(testRouter(&stubCartService{}), http.MethodPut, "/cart/user/1/product/2", `{"quantity": "five"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestChangeQuantity_WrappedErrorStillMaps(t *testing.T) {
	svc := &stubCartService{changeErr: fmt.Errorf("%w: must be at most 100", domain.ErrInvalidQuantity)}
	rec := doRequest(testRouter(svc), http.MethodPut, "/cart/user/1/product/2", `{"quantity": 150}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "at most 100") {
		t.Fatalf("expected reason in body, got %s", rec.Body.String())
	}
}
