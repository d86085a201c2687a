package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/adi-0104/Qkart/internal/apperr"
	"github.com/adi-0104/Qkart/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type serviceMock struct {
	cart *domain.Cart
	err  error

	gotProductID string
	gotQuantity  int
}

func (s *serviceMock) GetCartByUser(context.Context, *domain.UserAccount) (*domain.Cart, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.cart, nil
}

func (s *serviceMock) AddProductToCart(_ context.Context, _ *domain.UserAccount, productID string, quantity int) (*domain.Cart, error) {
	s.gotProductID = productID
	s.gotQuantity = quantity
	if s.err != nil {
		return nil, s.err
	}
	return s.cart, nil
}

func (s *serviceMock) UpdateProductInCart(_ context.Context, _ *domain.UserAccount, productID string, quantity int) (*domain.Cart, error) {
	s.gotProductID = productID
	s.gotQuantity = quantity
	if s.err != nil {
		return nil, s.err
	}
	return s.cart, nil
}

func (s *serviceMock) DeleteProductFromCart(_ context.Context, _ *domain.UserAccount, productID string) error {
	s.gotProductID = productID
	return s.err
}

func (s *serviceMock) Checkout(context.Context, *domain.UserAccount) error {
	return s.err
}

func withUser(r *http.Request) *http.Request {
	user := &domain.UserAccount{Email: "crio-user@gmail.com", WalletMoney: 500}
	return r.WithContext(context.WithValue(r.Context(), userKey, user))
}

func testCartDoc() *domain.Cart {
	return &domain.Cart{
		Email: "crio-user@gmail.com",
		Items: []domain.CartItem{
			{Product: domain.Product{ID: "p-1", Name: "OnePlus 6", Cost: 100}, Quantity: 2},
		},
	}
}

func TestGetCart_OK(t *testing.T) {
	handler := NewCartHandler(&serviceMock{cart: testCartDoc()})

	recorder := httptest.NewRecorder()
	request := withUser(httptest.NewRequest("GET", "/api/v1/cart", nil))

	handler.GetCart(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)
	var body domain.Cart
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, "crio-user@gmail.com", body.Email)
	require.Len(t, body.Items, 1)
	assert.Equal(t, 2, body.Items[0].Quantity)
}

func TestGetCart_NotFoundMapsTo404(t *testing.T) {
	handler := NewCartHandler(&serviceMock{err: apperr.NotFound("User does not have a cart")})

	recorder := httptest.NewRecorder()
	request := withUser(httptest.NewRequest("GET", "/api/v1/cart", nil))

	handler.GetCart(recorder, request)

	require.Equal(t, http.StatusNotFound, recorder.Code)
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, "User does not have a cart", body.Message)
}

func TestGetCart_MissingUser(t *testing.T) {
	handler := NewCartHandler(&serviceMock{cart: testCartDoc()})

	recorder := httptest.NewRecorder()
	handler.GetCart(recorder, httptest.NewRequest("GET", "/api/v1/cart", nil))

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestAddProduct_Created(t *testing.T) {
	mock := &serviceMock{cart: testCartDoc()}
	handler := NewCartHandler(mock)

	payload, _ := json.Marshal(map[string]interface{}{"productId": "p-1", "quantity": 2})
	recorder := httptest.NewRecorder()
	request := withUser(httptest.NewRequest("POST", "/api/v1/cart", bytes.NewReader(payload)))

	handler.AddProduct(recorder, request)

	assert.Equal(t, http.StatusCreated, recorder.Code)
	assert.Equal(t, "p-1", mock.gotProductID)
	assert.Equal(t, 2, mock.gotQuantity)
}

func TestAddProduct_InvalidBody(t *testing.T) {
	handler := NewCartHandler(&serviceMock{})

	recorder := httptest.NewRecorder()
	request := withUser(httptest.NewRequest("POST", "/api/v1/cart", bytes.NewReader([]byte("{not json"))))

	handler.AddProduct(recorder, request)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestAddProduct_RejectsZeroQuantity(t *testing.T) {
	mock := &serviceMock{}
	handler := NewCartHandler(mock)

	payload, _ := json.Marshal(map[string]interface{}{"productId": "p-1", "quantity": 0})
	recorder := httptest.NewRecorder()
	request := withUser(httptest.NewRequest("POST", "/api/v1/cart", bytes.NewReader(payload)))

	handler.AddProduct(recorder, request)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Empty(t, mock.gotProductID) // never reached the service
}

func TestAddProduct_DuplicateMapsTo400(t *testing.T) {
	handler := NewCartHandler(&serviceMock{
		err: apperr.InvalidRequest("Product already in cart. Use PUT to update quantity"),
	})

	payload, _ := json.Marshal(map[string]interface{}{"productId": "p-1", "quantity": 2})
	recorder := httptest.NewRecorder()
	request := withUser(httptest.NewRequest("POST", "/api/v1/cart", bytes.NewReader(payload)))

	handler.AddProduct(recorder, request)

	require.Equal(t, http.StatusBadRequest, recorder.Code)
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, "Product already in cart. Use PUT to update quantity", body.Message)
}

func TestUpdateProduct_OK(t *testing.T) {
	mock := &serviceMock{cart: testCartDoc()}
	handler := NewCartHandler(mock)

	payload, _ := json.Marshal(map[string]interface{}{"productId": "p-1", "quantity": 5})
	recorder := httptest.NewRecorder()
	request := withUser(httptest.NewRequest("PUT", "/api/v1/cart", bytes.NewReader(payload)))

	handler.UpdateProduct(recorder, request)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, 5, mock.gotQuantity)
}

func TestDeleteProduct_OK(t *testing.T) {
	mock := &serviceMock{}
	handler := NewCartHandler(mock)

	payload, _ := json.Marshal(map[string]string{"productId": "p-1"})
	recorder := httptest.NewRecorder()
	request := withUser(httptest.NewRequest("DELETE", "/api/v1/cart", bytes.NewReader(payload)))

	handler.DeleteProduct(recorder, request)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "p-1", mock.gotProductID)
}

func TestCheckout_NoContent(t *testing.T) {
	handler := NewCartHandler(&serviceMock{})

	recorder := httptest.NewRecorder()
	request := withUser(httptest.NewRequest("POST", "/api/v1/cart/checkout", nil))

	handler.Checkout(recorder, request)

	assert.Equal(t, http.StatusNoContent, recorder.Code)
	assert.Empty(t, recorder.Body.Bytes())
}

func TestCheckout_InsufficientBalance(t *testing.T) {
	handler := NewCartHandler(&serviceMock{err: apperr.InvalidRequest("Insufficient Balance")})

	recorder := httptest.NewRecorder()
	request := withUser(httptest.NewRequest("POST", "/api/v1/cart/checkout", nil))

	handler.Checkout(recorder, request)

	require.Equal(t, http.StatusBadRequest, recorder.Code)
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, "Insufficient Balance", body.Message)
}
