package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/example/medovik/internal/models"
)

var promoHTTPClient = &http.Client{Timeout: 10 * time.Second}

// RejectionError is a business rejection from the validation endpoint
// (code not found, expired, minimum not met). Reason carries the
// server-supplied human-readable text and may be empty.
type RejectionError struct {
	Reason string
}

func (e *RejectionError) Error() string {
	if e.Reason == "" {
		return "promocode rejected"
	}
	return "promocode rejected: " + e.Reason
}

// PromocodeService talks to the external promocode validation
// endpoint. The endpoint resolves the absolute discount for the
// submitted subtotal; this service never computes discounts itself.
type PromocodeService struct {
	baseURL string
}

// NewPromocodeService constructs PromocodeService.
func NewPromocodeService(baseURL string) *PromocodeService {
	return &PromocodeService{baseURL: strings.TrimRight(baseURL, "/")}
}

type validateRequest struct {
	Code     string  `json:"code"`
	Subtotal float64 `json:"subtotal"`
}

type validateResponse struct {
	Code          string  `json:"code"`
	DiscountType  string  `json:"discount_type"`
	DiscountValue float64 `json:"discount_value"`
	Discount      float64 `json:"discount"`
}

type rejectionResponse struct {
	Reason string `json:"reason"`
	Detail string `json:"detail"`
}

// Validate checks a promocode against the current subtotal. A non-2xx
// status yields a *RejectionError; transport failures come back as
// wrapped errors.
func (s *PromocodeService) Validate(ctx context.Context, code string, subtotal float64) (*models.PromocodeApplication, error) {
	if s.baseURL == "" {
		return nil, errors.New("promocode validation is not configured")
	}

	payload, err := json.Marshal(validateRequest{Code: code, Subtotal: subtotal})
	if err != nil {
		return nil, fmt.Errorf("promocode request marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/promocodes/validate", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("promocode request build: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := promoHTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("promocode request: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var rejection rejectionResponse
		_ = json.Unmarshal(body, &rejection)
		reason := rejection.Reason
		if reason == "" {
			reason = rejection.Detail
		}
		return nil, &RejectionError{Reason: reason}
	}

	var result validateResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("promocode response unmarshal: %w", err)
	}

	return &models.PromocodeApplication{
		Code:          result.Code,
		DiscountType:  result.DiscountType,
		DiscountValue: result.DiscountValue,
		Discount:      result.Discount,
	}, nil
}
