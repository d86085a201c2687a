package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusOf_AppError(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, StatusOf(NotFound("User does not have a cart")))
	assert.Equal(t, http.StatusBadRequest, StatusOf(InvalidRequest("Product not in cart")))
	assert.Equal(t, http.StatusInternalServerError, StatusOf(Internal("Cart creation failed")))
}

func TestStatusOf_Wrapped(t *testing.T) {
	err := fmt.Errorf("checkout: %w", InvalidRequest("Insufficient Balance"))
	assert.Equal(t, http.StatusBadRequest, StatusOf(err))
	assert.Equal(t, "Insufficient Balance", MessageOf(err))
}

func TestStatusOf_UnknownError(t *testing.T) {
	err := errors.New("connection reset")
	assert.Equal(t, http.StatusInternalServerError, StatusOf(err))
	assert.Equal(t, "internal server error", MessageOf(err))
}
