package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/promocodes/validate", r.URL.Path)

		var req validateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "HONEY10", req.Code)
		assert.Equal(t, 2000.0, req.Subtotal)

		json.NewEncoder(w).Encode(validateResponse{
			Code:          "HONEY10",
			DiscountType:  "fixed",
			DiscountValue: 300,
			Discount:      300,
		})
	}))
	defer server.Close()

	service := NewPromocodeService(server.URL)
	applied, err := service.Validate(context.Background(), "HONEY10", 2000)
	require.NoError(t, err)
	assert.Equal(t, "HONEY10", applied.Code)
	assert.Equal(t, "fixed", applied.DiscountType)
	assert.Equal(t, 300.0, applied.Discount)
}

func TestValidateRejectionCarriesReason(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"reason": "Промокод истёк"})
	}))
	defer server.Close()

	service := NewPromocodeService(server.URL)
	_, err := service.Validate(context.Background(), "OLD", 2000)

	var rejection *RejectionError
	require.ErrorAs(t, err, &rejection)
	assert.Equal(t, "Промокод истёк", rejection.Reason)
}

func TestValidateRejectionWithoutReason(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	service := NewPromocodeService(server.URL)
	_, err := service.Validate(context.Background(), "NOPE", 2000)

	var rejection *RejectionError
	require.ErrorAs(t, err, &rejection)
	assert.Empty(t, rejection.Reason)
}

func TestValidateTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	service := NewPromocodeService(server.URL)
	_, err := service.Validate(context.Background(), "HONEY10", 2000)

	require.Error(t, err)
	var rejection *RejectionError
	assert.False(t, errors.As(err, &rejection), "transport failures are not business rejections")
}

func TestValidateUnconfigured(t *testing.T) {
	service := NewPromocodeService("")
	_, err := service.Validate(context.Background(), "HONEY10", 2000)
	require.Error(t, err)
}
