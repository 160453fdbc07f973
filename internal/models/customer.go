package models

// CustomerInfo holds checkout form fields. Scoped to a single
// checkout attempt, never persisted.
type CustomerInfo struct {
	Name         string `json:"name"`
	PhoneDisplay string `json:"phone"`
	PhoneDigits  string `json:"phone_digits"`
}
