package checkout

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/medovik/internal/cartstore"
	"github.com/example/medovik/internal/models"
	"github.com/example/medovik/internal/promo"
)

type captureSubmitter struct {
	mu     sync.Mutex
	err    error
	orders []models.Order
}

func (c *captureSubmitter) Submit(ctx context.Context, order models.Order) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.orders = append(c.orders, order)
	return c.err
}

func (c *captureSubmitter) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.orders)
}

func (c *captureSubmitter) last() models.Order {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.orders[len(c.orders)-1]
}

type staticValidator struct {
	result *models.PromocodeApplication
}

func (s *staticValidator) Validate(ctx context.Context, code string, subtotal float64) (*models.PromocodeApplication, error) {
	if s.result == nil {
		return nil, errors.New("no promocode configured")
	}
	return s.result, nil
}

type workflowFixture struct {
	workflow  *Workflow
	carts     *cartstore.Store
	promos    *promo.Manager
	submitter *captureSubmitter
	session   string
}

func newFixture(t *testing.T, promoResult *models.PromocodeApplication) *workflowFixture {
	t.Helper()
	carts := cartstore.New(cartstore.NewMemoryKV())
	promos := promo.NewManager(&staticValidator{result: promoResult})
	submitter := &captureSubmitter{}
	workflow := NewWorkflow(Config{
		WhatsAppNumber:   "77083214571",
		TelegramHandle:   "fermamedovik",
		CountdownSeconds: 4,
		TickInterval:     5 * time.Millisecond,
	}, carts, promos, submitter)

	return &workflowFixture{
		workflow:  workflow,
		carts:     carts,
		promos:    promos,
		submitter: submitter,
		session:   "s1",
	}
}

func (f *workflowFixture) fillCart(t *testing.T) {
	t.Helper()
	product := models.Product{
		BaseModel: models.BaseModel{ID: uuid.New()},
		Name:      "Мёд Цветочный",
		BasePrice: 1000,
	}
	f.carts.Add(context.Background(), f.session, product, nil)
	f.carts.UpdateQuantity(context.Background(), f.session, product.ID.String()+"-default", 1)
}

var validCustomer = models.CustomerInfo{
	Name:         "Арман",
	PhoneDisplay: "+7 (708) 321-45-71",
	PhoneDigits:  "77083214571",
}

func TestSubmitRejectsBlankName(t *testing.T) {
	f := newFixture(t, nil)
	f.fillCart(t)

	customer := validCustomer
	customer.Name = "   "
	_, err := f.workflow.Submit(context.Background(), f.session, customer, MessengerWhatsApp, "")

	var validation *ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Equal(t, "Введите ваше имя", validation.Message)

	time.Sleep(30 * time.Millisecond)
	assert.Zero(t, f.submitter.count(), "rejected submission must not persist an order")
	assert.Equal(t, PhaseIdle, f.workflow.State(f.session).Phase, "rejected submission must not start a countdown")
}

func TestSubmitRejectsIncompletePhone(t *testing.T) {
	f := newFixture(t, nil)
	f.fillCart(t)

	customer := validCustomer
	customer.PhoneDisplay = "+7 (708) 321"
	_, err := f.workflow.Submit(context.Background(), f.session, customer, MessengerWhatsApp, "")

	var validation *ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Equal(t, "Введите корректный номер телефона", validation.Message)
	assert.Zero(t, f.submitter.count())
}

func TestSubmitRejectsEmptyCart(t *testing.T) {
	f := newFixture(t, nil)

	_, err := f.workflow.Submit(context.Background(), f.session, validCustomer, MessengerWhatsApp, "")

	var validation *ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Equal(t, "Корзина пуста", validation.Message)
	assert.Zero(t, f.submitter.count())
}

func TestSubmitRejectsUnknownMessenger(t *testing.T) {
	f := newFixture(t, nil)
	f.fillCart(t)

	_, err := f.workflow.Submit(context.Background(), f.session, validCustomer, Messenger("viber"), "")

	var validation *ValidationError
	require.ErrorAs(t, err, &validation)
}

func TestCountdownReachesRedirect(t *testing.T) {
	f := newFixture(t, nil)
	f.fillCart(t)

	state, err := f.workflow.Submit(context.Background(), f.session, validCustomer, MessengerWhatsApp, "")
	require.NoError(t, err)
	assert.Equal(t, PhaseCountingDown, state.Phase)
	assert.Equal(t, 4, state.SecondsRemaining)

	var final RedirectState
	require.Eventually(t, func() bool {
		final = f.workflow.State(f.session)
		return final.Phase == PhaseRedirecting
	}, time.Second, time.Millisecond)

	assert.True(t, strings.HasPrefix(final.TargetURL, "https://wa.me/77083214571?text="), final.TargetURL)
	require.NotNil(t, final.Navigation)
	assert.Equal(t, "navigate", final.Navigation.Method)

	// A redirecting state is handed out once, then the session is idle.
	assert.Equal(t, PhaseIdle, f.workflow.State(f.session).Phase)

	require.Eventually(t, func() bool { return f.submitter.count() == 1 }, time.Second, time.Millisecond)
}

func TestCancelPreventsRedirect(t *testing.T) {
	f := newFixture(t, nil)
	f.fillCart(t)

	_, err := f.workflow.Submit(context.Background(), f.session, validCustomer, MessengerWhatsApp, "")
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		return f.workflow.State(f.session).SecondsRemaining <= 2
	}, time.Second, time.Millisecond)

	f.workflow.Cancel(f.session)

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, PhaseIdle, f.workflow.State(f.session).Phase, "no queued tick may fire after cancel")
}

func TestPersistenceFailureDoesNotBlockRedirect(t *testing.T) {
	f := newFixture(t, nil)
	f.submitter.err = errors.New("order endpoint down")
	f.fillCart(t)

	_, err := f.workflow.Submit(context.Background(), f.session, validCustomer, MessengerWhatsApp, "")
	require.NoError(t, err, "persistence failures are swallowed, not surfaced")

	require.Eventually(t, func() bool {
		return f.workflow.State(f.session).Phase == PhaseRedirecting
	}, time.Second, time.Millisecond)
}

func TestSubmitCarriesPromoIntoOrder(t *testing.T) {
	f := newFixture(t, &models.PromocodeApplication{Code: "HONEY10", Discount: 300})
	f.fillCart(t)

	_, err := f.promos.Apply(context.Background(), f.session, "HONEY10", 2000)
	require.NoError(t, err)

	_, err = f.workflow.Submit(context.Background(), f.session, validCustomer, MessengerWhatsApp, "")
	require.NoError(t, err)

	require.Eventually(t, func() bool { return f.submitter.count() == 1 }, time.Second, time.Millisecond)

	order := f.submitter.last()
	assert.Equal(t, 2000.0, order.Subtotal)
	assert.Equal(t, 300.0, order.Discount)
	assert.Equal(t, 1700.0, order.Total)
	require.NotNil(t, order.Promocode)
	assert.Equal(t, "HONEY10", *order.Promocode)
}

func TestTelegramWebAppNavigation(t *testing.T) {
	f := newFixture(t, nil)
	f.fillCart(t)

	_, err := f.workflow.Submit(context.Background(), f.session, validCustomer, MessengerTelegram, "telegram-webapp")
	require.NoError(t, err)

	var final RedirectState
	require.Eventually(t, func() bool {
		final = f.workflow.State(f.session)
		return final.Phase == PhaseRedirecting
	}, time.Second, time.Millisecond)

	assert.True(t, strings.HasPrefix(final.TargetURL, "https://t.me/fermamedovik"), final.TargetURL)
	require.NotNil(t, final.Navigation)
	assert.Equal(t, "open_telegram_link", final.Navigation.Method)
}
