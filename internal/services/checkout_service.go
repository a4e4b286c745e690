package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"loja/internal/errs"
	"loja/internal/models"
	"loja/internal/repositories"
	"loja/pkg/payment"
	"loja/pkg/rabbitmq"
)

// CheckoutService drives the payment leg of the lifecycle: it requests
// hosted payment sessions from the processor and reconciles their outcome
// into order status.
type CheckoutService struct {
	orderRepo  repositories.OrderRepository
	processor  payment.Processor
	publisher  EventPublisher // optional; nil skips event publication
	appBaseURL string
}

// NewCheckoutService creates a new CheckoutService. appBaseURL is the
// storefront root the processor redirects back to.
func NewCheckoutService(
	orderRepo repositories.OrderRepository,
	processor payment.Processor,
	publisher EventPublisher,
	appBaseURL string,
) *CheckoutService {
	return &CheckoutService{
		orderRepo:  orderRepo,
		processor:  processor,
		publisher:  publisher,
		appBaseURL: appBaseURL,
	}
}

// CreateSession asks the processor for a hosted payment session covering
// the order. The order id travels as session metadata; the processor echoes
// it back at verification time, which is what ties the payment to the
// order. No local state changes besides recording the session id for
// forensics, so a discarded session leaves the order untouched.
func (s *CheckoutService) CreateSession(ctx context.Context, userID, orderID string) (*payment.Session, error) {
	if orderID == "" {
		return nil, errs.Validation("orderId", "is required")
	}

	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, fmt.Errorf("order %s: %w", orderID, errs.ErrForbidden)
	}

	lineItems := make([]payment.LineItem, 0, len(order.Items))
	for _, item := range order.Items {
		lineItems = append(lineItems, payment.LineItem{
			Name:        item.ProductName,
			Description: item.Description,
			ImageURL:    item.ImageURL,
			UnitAmount:  item.PriceInCents,
			Quantity:    item.Quantity,
		})
	}

	session, err := s.processor.CreateSession(ctx, payment.CreateSessionParams{
		LineItems: lineItems,
		// {CHECKOUT_SESSION_ID} is a processor-side template, substituted
		// when the user is redirected back.
		SuccessURL: fmt.Sprintf("%s/checkout/success?orderId=%s&session_id={CHECKOUT_SESSION_ID}", s.appBaseURL, orderID),
		CancelURL:  s.appBaseURL + "/",
		Metadata:   map[string]string{"orderId": orderID},
	})
	if err != nil {
		return nil, err
	}

	// Defense in depth: keep our own record of the session. Reconciliation
	// still trusts only the metadata the processor echoes back.
	if err := s.orderRepo.SetCheckoutSession(orderID, session.ID); err != nil {
		log.Printf("Warning: failed to record checkout session %s for order %s: %v", session.ID, orderID, err)
	}

	return session, nil
}

// VerifyResult is the outcome of a payment verification.
type VerifyResult struct {
	Success bool `json:"success"`
}

// VerifyPayment asks the processor for the session's state and, if the
// payment settled, moves the order from pending to paid. The transition is
// a conditional update, so concurrent and repeated calls for the same
// session all succeed while the side effects fire exactly once. A non-paid
// session reports {success:false} without touching the order.
func (s *CheckoutService) VerifyPayment(ctx context.Context, sessionID string) (VerifyResult, error) {
	if sessionID == "" {
		return VerifyResult{}, errs.Validation("sessionId", "is required")
	}

	session, err := s.processor.RetrieveSession(ctx, sessionID)
	if err != nil {
		return VerifyResult{}, err
	}

	if !session.Paid() {
		return VerifyResult{Success: false}, nil
	}

	orderID := session.Metadata["orderId"]
	if orderID == "" {
		// The processor took a payment we cannot attribute. Never guess an
		// order id; this needs an operator.
		return VerifyResult{}, fmt.Errorf("paid session %s has no order metadata: %w", sessionID, errs.ErrConsistency)
	}

	transitioned, err := s.orderRepo.TransitionStatus(orderID, models.OrderStatusPending, models.OrderStatusPaid)
	if err != nil {
		return VerifyResult{}, err
	}

	if transitioned {
		s.publishPaid(orderID, sessionID)
		return VerifyResult{Success: true}, nil
	}

	// Nothing moved: either an earlier verification already settled the
	// order, or the processor references an order we never created.
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return VerifyResult{}, fmt.Errorf("paid session %s references unknown order %s: %w", sessionID, orderID, errs.ErrConsistency)
		}
		return VerifyResult{}, err
	}
	switch order.Status {
	case models.OrderStatusPaid, models.OrderStatusShipped, models.OrderStatusDelivered:
		// Payment already settled, possibly via an earlier verification.
		return VerifyResult{Success: true}, nil
	}
	// Money was taken against an order that left pending some other way,
	// e.g. a cancellation. This needs an operator, not a success page.
	return VerifyResult{}, fmt.Errorf("paid session %s but order %s is %s: %w", sessionID, orderID, order.Status, errs.ErrConsistency)
}

// publishPaid emits the order.paid event. Only called after this request
// won the conditional update, so the event fires at most once per order.
func (s *CheckoutService) publishPaid(orderID, sessionID string) {
	if s.publisher == nil {
		log.Println("Event publisher is not configured. Skipping message publication.")
		return
	}
	body, err := json.Marshal(map[string]interface{}{
		"orderID":   orderID,
		"sessionID": sessionID,
		"status":    models.OrderStatusPaid,
	})
	if err != nil {
		log.Printf("Failed to marshal order.paid event for order %s: %v", orderID, err)
		return
	}
	if err := s.publisher.Publish(rabbitmq.RouteOrderPaid, body); err != nil {
		log.Printf("Warning: failed to publish order.paid event for order %s: %v", orderID, err)
	}
}
