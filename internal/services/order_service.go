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

var orderHTTPClient = &http.Client{Timeout: 15 * time.Second}

// OrderService relays assembled orders to the external persistence
// endpoint. Callers treat the call as best-effort: the messenger deep
// link, not this endpoint, is the authoritative order record.
type OrderService struct {
	baseURL string
}

// NewOrderService constructs OrderService.
func NewOrderService(baseURL string) *OrderService {
	return &OrderService{baseURL: strings.TrimRight(baseURL, "/")}
}

// Submit posts the order. The response body is ignored beyond the
// status code.
func (s *OrderService) Submit(ctx context.Context, order models.Order) error {
	if s.baseURL == "" {
		return errors.New("order persistence is not configured")
	}

	payload, err := json.Marshal(order)
	if err != nil {
		return fmt.Errorf("order request marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/orders", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("order request build: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := orderHTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("order request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("order persistence failed: status %d, body: %s", resp.StatusCode, string(body))
	}

	return nil
}
