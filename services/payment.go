package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sync"
	"time"

	"startup-registration/common"
	"startup-registration/metrics"
	"startup-registration/models"
	"startup-registration/repository"
)

const notifyTimeout = 15 * time.Second

// OrderCreator creates orders at the payment gateway.
type OrderCreator interface {
	CreateOrder(ctx context.Context, req models.OrderRequest) (*models.Order, error)
}

// SignatureVerifier checks a checkout signature for an order and payment.
type SignatureVerifier interface {
	Verify(orderID, paymentID, signature string) bool
}

// PaymentNotifier is told about every submission that became paid.
type PaymentNotifier interface {
	PaymentConfirmed(ctx context.Context, s *models.Submission) error
}

// PaymentService runs the payment protocol. A submission starts unpaid and
// becomes paid only through VerifyPayment with a valid signature; nothing
// moves it back.
//
// Orders are not bound to submissions: any correctly signed order/payment
// pair marks the given email as paid.
type PaymentService struct {
	repo     repository.SubmissionRepository
	gateway  OrderCreator
	verifier SignatureVerifier
	notifier PaymentNotifier
	metrics  *metrics.Metrics
	log      *slog.Logger

	now     func() time.Time
	pending sync.WaitGroup
}

// NewPaymentService wires the protocol. notifier may be nil.
func NewPaymentService(repo repository.SubmissionRepository, gateway OrderCreator, verifier SignatureVerifier, notifier PaymentNotifier, m *metrics.Metrics, log *slog.Logger) *PaymentService {
	return &PaymentService{
		repo:     repo,
		gateway:  gateway,
		verifier: verifier,
		notifier: notifier,
		metrics:  m,
		log:      log,
		now:      time.Now,
	}
}

// VerifyEmailExists reports whether a submission with this exact email
// exists, failing with common.ErrNotFound when it does not.
func (s *PaymentService) VerifyEmailExists(ctx context.Context, email string) (bool, error) {
	if _, err := s.repo.FindByEmail(ctx, email); err != nil {
		return false, err
	}
	return true, nil
}

// CreateOrder asks the gateway for an INR order of amount (major units) for
// a registered email.
func (s *PaymentService) CreateOrder(ctx context.Context, email string, amount float64) (*models.Order, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be a positive number", common.ErrValidation)
	}
	minor := math.Round(amount * 100)
	if minor >= math.MaxInt64 {
		return nil, fmt.Errorf("%w: amount is too large", common.ErrValidation)
	}

	if _, err := s.repo.FindByEmail(ctx, email); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			s.metrics.OrdersTotal.WithLabelValues(metrics.ResultNotFound).Inc()
		}
		return nil, err
	}

	req := models.OrderRequest{
		Amount:   int64(minor),
		Currency: models.CurrencyINR,
		Receipt:  fmt.Sprintf("receipt_order_%d", s.now().UnixMilli()),
		Notes:    map[string]string{"email": email},
	}

	order, err := s.gateway.CreateOrder(ctx, req)
	if err != nil {
		s.metrics.OrdersTotal.WithLabelValues(metrics.ResultError).Inc()
		return nil, fmt.Errorf("%w: %w", common.ErrGateway, err)
	}

	s.metrics.OrdersTotal.WithLabelValues(metrics.ResultSuccess).Inc()
	s.log.InfoContext(ctx, "payment order created",
		"order_id", order.ID, "email", email, "amount", order.Amount, "receipt", req.Receipt)
	return order, nil
}

// VerifyPayment checks the checkout signature and, when it matches, marks
// the submission for v.Email as paid. A mismatch never touches the store.
func (s *PaymentService) VerifyPayment(ctx context.Context, v models.PaymentVerification) (*models.Submission, error) {
	if !s.verifier.Verify(v.OrderID, v.PaymentID, v.Signature) {
		s.metrics.VerificationsTotal.WithLabelValues(metrics.ResultRejected).Inc()
		s.log.WarnContext(ctx, "payment signature mismatch",
			"order_id", v.OrderID, "payment_id", v.PaymentID, "email", v.Email)
		return nil, common.ErrSignatureMismatch
	}

	sub, transitioned, err := s.repo.MarkPaidByEmail(ctx, v.Email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			s.metrics.VerificationsTotal.WithLabelValues(metrics.ResultNotFound).Inc()
		} else {
			s.metrics.VerificationsTotal.WithLabelValues(metrics.ResultError).Inc()
		}
		return nil, err
	}

	s.metrics.VerificationsTotal.WithLabelValues(metrics.ResultSuccess).Inc()
	s.log.InfoContext(ctx, "payment verified",
		"order_id", v.OrderID, "payment_id", v.PaymentID, "email", v.Email, "transitioned", transitioned)

	if transitioned && s.notifier != nil {
		s.pending.Add(1)
		go func(sub models.Submission) {
			defer s.pending.Done()
			s.notify(sub)
		}(*sub)
	}
	return sub, nil
}

func (s *PaymentService) notify(sub models.Submission) {
	ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
	defer cancel()

	if err := s.notifier.PaymentConfirmed(ctx, &sub); err != nil {
		s.log.ErrorContext(ctx, "payment confirmation email failed", "email", sub.Email, "error", err)
	}
}

// Wait blocks until in-flight confirmation emails finish or ctx is done.
func (s *PaymentService) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.pending.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
