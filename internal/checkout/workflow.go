// Package checkout orchestrates order submission: validation,
// best-effort persistence and the countdown that ends in a messenger
// redirect.
package checkout

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/example/medovik/internal/cartstore"
	"github.com/example/medovik/internal/models"
	"github.com/example/medovik/internal/phone"
	"github.com/example/medovik/internal/pricing"
	"github.com/example/medovik/internal/promo"
)

// Phase is the redirect state machine position.
type Phase string

const (
	PhaseIdle         Phase = "idle"
	PhaseCountingDown Phase = "counting_down"
	PhaseRedirecting  Phase = "redirecting"
)

// RedirectState is what clients poll while waiting for the redirect.
type RedirectState struct {
	Phase            Phase       `json:"phase"`
	Messenger        Messenger   `json:"messenger,omitempty"`
	SecondsRemaining int         `json:"seconds_remaining"`
	TargetURL        string      `json:"target_url,omitempty"`
	Navigation       *Navigation `json:"navigation,omitempty"`
}

// ValidationError is a user-correctable submission failure. Message
// is shown to the customer verbatim.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// OrderSubmitter persists an order with the external endpoint.
type OrderSubmitter interface {
	Submit(ctx context.Context, order models.Order) error
}

// Config tunes the workflow. TickInterval defaults to one second and
// only tests shorten it.
type Config struct {
	WhatsAppNumber   string
	TelegramHandle   string
	CountdownSeconds int
	TickInterval     time.Duration
}

// Workflow runs one redirect state machine per cart session.
type Workflow struct {
	cfg    Config
	carts  *cartstore.Store
	promos *promo.Manager
	orders OrderSubmitter

	mu       sync.Mutex
	sessions map[string]*redirectSession
}

type redirectSession struct {
	state     RedirectState
	summary   string
	opener    LinkOpener
	timer     *time.Timer
	cancelled bool
}

// NewWorkflow constructs Workflow.
func NewWorkflow(cfg Config, carts *cartstore.Store, promos *promo.Manager, orders OrderSubmitter) *Workflow {
	if cfg.CountdownSeconds <= 0 {
		cfg.CountdownSeconds = 4
	}
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = time.Second
	}
	return &Workflow{
		cfg:      cfg,
		carts:    carts,
		promos:   promos,
		orders:   orders,
		sessions: map[string]*redirectSession{},
	}
}

// Submit validates the checkout form, relays the order to the
// persistence endpoint without waiting for it, and starts the
// redirect countdown. Validation failures return a *ValidationError
// and leave no side effects behind.
func (w *Workflow) Submit(ctx context.Context, session string, customer models.CustomerInfo, messenger Messenger, host string) (RedirectState, error) {
	if strings.TrimSpace(customer.Name) == "" {
		return RedirectState{Phase: PhaseIdle}, &ValidationError{Message: "Введите ваше имя"}
	}
	if !phone.Valid(customer.PhoneDisplay) {
		return RedirectState{Phase: PhaseIdle}, &ValidationError{Message: "Введите корректный номер телефона"}
	}
	if messenger != MessengerWhatsApp && messenger != MessengerTelegram {
		return RedirectState{Phase: PhaseIdle}, &ValidationError{Message: "Выберите способ заказа"}
	}

	cart := w.carts.Items(ctx, session)
	if len(cart) == 0 {
		return RedirectState{Phase: PhaseIdle}, &ValidationError{Message: "Корзина пуста"}
	}

	applied := w.promos.Applied(session)
	order := BuildOrder(customer, cart, applied)
	summary := SummaryText(customer, cart, applied)

	// Persistence is fire-and-forget: the messenger message is the
	// order record the customer relies on, so a save failure must not
	// gate or delay the redirect.
	go func(order models.Order) {
		if err := w.orders.Submit(context.Background(), order); err != nil {
			log.Printf("[Checkout] order persistence failed for session %s (total %v): %v",
				session, pricing.FinalTotal(cart, applied), err)
		}
	}(order)

	w.mu.Lock()
	defer w.mu.Unlock()

	if prev := w.sessions[session]; prev != nil {
		prev.cancel()
	}

	sess := &redirectSession{
		state: RedirectState{
			Phase:            PhaseCountingDown,
			Messenger:        messenger,
			SecondsRemaining: w.cfg.CountdownSeconds,
		},
		summary: summary,
		opener:  OpenerForHost(host),
	}
	w.sessions[session] = sess
	w.armTick(session, sess)

	return sess.state, nil
}

// State reports the session's redirect state. A Redirecting state is
// delivered once: handing out the navigation directive completes the
// workflow and resets the session to Idle.
func (w *Workflow) State(session string) RedirectState {
	w.mu.Lock()
	defer w.mu.Unlock()

	sess := w.sessions[session]
	if sess == nil {
		return RedirectState{Phase: PhaseIdle}
	}

	state := sess.state
	if state.Phase == PhaseRedirecting {
		delete(w.sessions, session)
	}
	return state
}

// Cancel aborts a pending countdown, for example when the customer
// closes the dialog. No queued tick fires after Cancel returns.
func (w *Workflow) Cancel(session string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	sess := w.sessions[session]
	if sess == nil {
		return
	}
	sess.cancel()
	delete(w.sessions, session)
}

func (w *Workflow) armTick(session string, sess *redirectSession) {
	sess.timer = time.AfterFunc(w.cfg.TickInterval, func() {
		w.tick(session, sess)
	})
}

func (w *Workflow) tick(session string, sess *redirectSession) {
	w.mu.Lock()
	defer w.mu.Unlock()

	// The cancellation token is the source of truth, not the stopped
	// timer handle: a tick already in flight when Cancel ran lands
	// here and must do nothing.
	if sess.cancelled || w.sessions[session] != sess {
		return
	}

	sess.state.SecondsRemaining--
	if sess.state.SecondsRemaining > 0 {
		w.armTick(session, sess)
		return
	}

	link := w.resolveLink(sess.state.Messenger, sess.summary)
	nav := sess.opener.OpenMessengerLink(link, sess.state.Messenger)
	sess.state = RedirectState{
		Phase:      PhaseRedirecting,
		Messenger:  sess.state.Messenger,
		TargetURL:  link,
		Navigation: &nav,
	}
}

func (w *Workflow) resolveLink(messenger Messenger, summary string) string {
	if messenger == MessengerTelegram {
		return TelegramLink(w.cfg.TelegramHandle, summary)
	}
	return WhatsAppLink(w.cfg.WhatsAppNumber, summary)
}

func (s *redirectSession) cancel() {
	s.cancelled = true
	if s.timer != nil {
		s.timer.Stop()
	}
}
