package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"lablink/internal/models"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// OrderSink creates orders on the commerce backend. An empty result ID is a
// failure regardless of err.
type OrderSink interface {
	CreateOrder(ctx context.Context, submission models.OrderSubmission) (models.OrderResult, error)
}

// OrderEventPublisher announces placed orders to other systems.
type OrderEventPublisher interface {
	PublishOrderPlaced(order models.Order) error
}

// CheckoutService turns the store's cart into a placed order.
type CheckoutService struct {
	store      *Store
	sink       OrderSink
	publisher  OrderEventPublisher // may be nil
	notifier   Notifier
	logger     *zap.Logger
	validate   *validator.Validate
	processing atomic.Bool
	now        func() time.Time
}

// NewCheckoutService creates a new CheckoutService.
func NewCheckoutService(store *Store, sink OrderSink, publisher OrderEventPublisher, notifier Notifier, logger *zap.Logger) *CheckoutService {
	return &CheckoutService{
		store:     store,
		sink:      sink,
		publisher: publisher,
		notifier:  notifier,
		logger:    logger.Named("checkout"),
		validate:  validator.New(),
		now:       time.Now,
	}
}

// Processing reports whether an order placement is in flight.
func (s *CheckoutService) Processing() bool {
	return s.processing.Load()
}

// PlaceOrder submits the current cart. Only one placement runs at a time;
// a concurrent call gets ErrCheckoutInProgress. On failure the cart and
// coupon are kept so the user can retry.
func (s *CheckoutService) PlaceOrder(ctx context.Context) (*models.Order, error) {
	if !s.processing.CompareAndSwap(false, true) {
		return nil, ErrCheckoutInProgress
	}
	defer s.processing.Store(false)

	draft := s.store.Draft()
	if err := s.checkDraft(draft); err != nil {
		s.notifier.Notify(err.Error(), SeverityError)
		return nil, err
	}

	submission := BuildOrderSubmission(draft)
	result, err := s.sink.CreateOrder(ctx, submission)
	if err != nil || !result.Succeeded() {
		reason := result.Message
		if err != nil {
			reason = err.Error()
		}
		if reason == "" {
			reason = "Unknown error"
		}
		s.logger.Warn("order sink rejected order", zap.String("reason", reason), zap.Error(err))
		s.notifier.Notify("Failed to place order: "+reason, SeverityError)
		return nil, &OrderFailedError{Reason: reason, Err: err}
	}

	order := models.Order{
		ID:          result.ID,
		CreatedAt:   s.now().UTC(),
		Items:       draft.Lines,
		TotalAmount: draft.Totals.FinalTotal,
		Status:      models.OrderPending,
		UserDetails: draft.User,
	}
	s.store.RecordOrder(ctx, order, draft.Coupon)
	s.logger.Info("order placed", zap.String("order_id", order.ID), zap.Int64("total", order.TotalAmount))

	if s.publisher != nil {
		if err := s.publisher.PublishOrderPlaced(order); err != nil {
			s.logger.Warn("failed to publish order placed event", zap.String("order_id", order.ID), zap.Error(err))
		}
	}

	s.notifier.Notify(fmt.Sprintf("Order Placed Successfully! Order ID: %s", order.ID), SeveritySuccess)
	return &order, nil
}

func (s *CheckoutService) checkDraft(draft CheckoutDraft) error {
	if len(draft.Lines) == 0 {
		return &ValidationError{Kind: EmptyCart, Message: "Your cart is empty"}
	}
	err := s.validate.Struct(draft.User)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return fmt.Errorf("failed to validate user details: %w", err)
	}
	for _, fe := range verrs {
		if fe.Field() == "FullName" || fe.Field() == "Phone" {
			return &ValidationError{Kind: MissingField, Message: "Please enter Name and Phone"}
		}
	}
	for _, fe := range verrs {
		if fe.Field() == "Address" {
			return &ValidationError{Kind: MissingField, Message: "Please enter your full address for Home Collection."}
		}
	}
	return &ValidationError{Kind: MissingField, Message: fmt.Sprintf("Invalid %s", strings.ToLower(verrs[0].Field()))}
}

// BuildOrderSubmission maps a checkout draft to the commerce backend's order shape.
func BuildOrderSubmission(draft CheckoutDraft) models.OrderSubmission {
	user := draft.User
	first, last := splitName(user.FullName)
	address := user.Address
	if address == "" {
		address = "Lab Visit"
	}

	billing := models.OrderAddress{
		FirstName: first,
		LastName:  last,
		Address1:  address,
		City:      "Kurnool",
		State:     "AP",
		Postcode:  "518001",
		Country:   "IN",
		Email:     "guest@lablink.com",
		Phone:     user.Phone,
	}
	shipping := billing
	shipping.Email = ""
	shipping.Phone = ""

	items := make([]models.OrderLineItem, 0, len(draft.Lines))
	centers := make([]string, 0, len(draft.Lines))
	for _, l := range draft.Lines {
		// Non-numeric ids come from seed data and map to 0.
		id, _ := strconv.ParseInt(l.Item.ID, 10, 64)
		items = append(items, models.OrderLineItem{ProductID: id, Quantity: 1})
		centers = append(centers, l.SelectedCenter.CenterName)
	}

	meta := []models.OrderMeta{
		{Key: "service_type", Value: string(user.ServiceType)},
		{Key: "time_slot", Value: string(user.TimeSlot)},
		{Key: "age", Value: user.Age},
		{Key: "gender", Value: string(user.Gender)},
		{Key: "centers", Value: strings.Join(centers, ", ")},
		{Key: "final_total", Value: strconv.FormatInt(draft.Totals.FinalTotal, 10)},
	}
	if draft.Coupon != nil {
		meta = append(meta, models.OrderMeta{Key: "coupon", Value: draft.Coupon.Code})
	}

	return models.OrderSubmission{
		PaymentMethod:      "razorpay",
		PaymentMethodTitle: "Razorpay",
		SetPaid:            false,
		Billing:            billing,
		Shipping:           shipping,
		LineItems:          items,
		MetaData:           meta,
	}
}

func splitName(full string) (string, string) {
	parts := strings.Fields(full)
	if len(parts) == 0 {
		return "", ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}
