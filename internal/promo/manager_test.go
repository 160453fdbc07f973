package promo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/medovik/internal/models"
	"github.com/example/medovik/internal/services"
)

type fakeValidator struct {
	result *models.PromocodeApplication
	err    error
	calls  int
}

func (f *fakeValidator) Validate(ctx context.Context, code string, subtotal float64) (*models.PromocodeApplication, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func TestApplySuccessReplacesState(t *testing.T) {
	validator := &fakeValidator{result: &models.PromocodeApplication{Code: "HONEY10", Discount: 300}}
	m := NewManager(validator)

	applied, err := m.Apply(context.Background(), "s1", " HONEY10 ", 2000)
	require.NoError(t, err)
	require.NotNil(t, applied)
	assert.Equal(t, "HONEY10", applied.Code)
	assert.Equal(t, applied, m.Applied("s1"))
}

func TestApplyBlankCodeIsNoop(t *testing.T) {
	validator := &fakeValidator{}
	m := NewManager(validator)

	applied, err := m.Apply(context.Background(), "s1", "   ", 2000)
	require.NoError(t, err)
	assert.Nil(t, applied)
	assert.Zero(t, validator.calls)
}

func TestApplyFailureClearsPrevious(t *testing.T) {
	validator := &fakeValidator{result: &models.PromocodeApplication{Code: "HONEY10", Discount: 300}}
	m := NewManager(validator)

	_, err := m.Apply(context.Background(), "s1", "HONEY10", 2000)
	require.NoError(t, err)

	validator.err = &services.RejectionError{Reason: "Промокод истёк"}
	_, err = m.Apply(context.Background(), "s1", "EXPIRED", 2000)
	require.Error(t, err)
	assert.Nil(t, m.Applied("s1"))
}

func TestRemoveAndEditedClearState(t *testing.T) {
	validator := &fakeValidator{result: &models.PromocodeApplication{Code: "HONEY10", Discount: 300}}
	m := NewManager(validator)

	_, err := m.Apply(context.Background(), "s1", "HONEY10", 2000)
	require.NoError(t, err)

	m.Remove("s1")
	assert.Nil(t, m.Applied("s1"))

	_, err = m.Apply(context.Background(), "s1", "HONEY10", 2000)
	require.NoError(t, err)

	m.Edited("s1")
	assert.Nil(t, m.Applied("s1"))
}

func TestAppliedIsPerSession(t *testing.T) {
	validator := &fakeValidator{result: &models.PromocodeApplication{Code: "HONEY10", Discount: 300}}
	m := NewManager(validator)

	_, err := m.Apply(context.Background(), "s1", "HONEY10", 2000)
	require.NoError(t, err)
	assert.Nil(t, m.Applied("s2"))
}
