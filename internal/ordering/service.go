package ordering

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"cafe/internal/metrics"
	"cafe/internal/models"
	"cafe/internal/notify"
)

// ErrSettingsUnavailable means the business constraints could not be read,
// so nothing was written.
var ErrSettingsUnavailable = errors.New("order settings unavailable")

type OrderStore interface {
	Create(ctx context.Context, order *models.Order) (primitive.ObjectID, error)
}

type SettingsLoader interface {
	Load(ctx context.Context) (*models.Settings, error)
}

type Notifier interface {
	Dispatch(ctx context.Context, rec notify.Record, id string) []notify.Result
}

type Service struct {
	orders   OrderStore
	settings SettingsLoader
	notifier Notifier
	log      *zap.Logger
	metrics  *metrics.Registry
	now      func() time.Time
}

func NewService(orders OrderStore, settings SettingsLoader, notifier Notifier, log *zap.Logger, m *metrics.Registry) *Service {
	return &Service{
		orders:   orders,
		settings: settings,
		notifier: notifier,
		log:      log,
		metrics:  m,
		now:      time.Now,
	}
}

// Submit validates, prices and stores the order, then notifies the staff.
// Notification problems are logged and never fail the order.
func (s *Service) Submit(ctx context.Context, req SubmitRequest) (*models.Order, error) {
	settings, err := s.settings.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSettingsUnavailable, err)
	}
	constraints := ConstraintsFrom(settings)

	if err := Validate(req, constraints); err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			s.metrics.OrderRejected(verr.Code)
		}
		return nil, err
	}

	order := buildOrder(req, Quote(req, constraints), s.now().UTC())

	id, err := s.orders.Create(ctx, order)
	if err != nil {
		return nil, fmt.Errorf("store order: %w", err)
	}
	order.ID = id
	s.metrics.OrderCreated()
	s.log.Info("order created",
		zap.String("order_id", id.Hex()),
		zap.String("type", string(order.Type)),
		zap.Float64("total", order.Total),
	)

	s.notify(ctx, order)
	return order, nil
}

func (s *Service) notify(ctx context.Context, order *models.Order) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("order notification panicked", zap.String("order_id", order.ID.Hex()), zap.Any("panic", r))
		}
	}()
	s.notifier.Dispatch(ctx, notify.OrderRecord{Order: *order}, order.ID.Hex())
}

func buildOrder(req SubmitRequest, totals Totals, now time.Time) *models.Order {
	items := make([]models.OrderItem, 0, len(req.Items))
	for _, line := range req.Items {
		items = append(items, models.OrderItem{
			ItemID:   line.Item.ID,
			Name:     line.Item.Name,
			Price:    line.Item.EffectivePrice(),
			Quantity: line.Quantity,
		})
	}

	customer := models.OrderCustomer{
		Name:  strings.TrimSpace(req.Customer.Name),
		Phone: strings.TrimSpace(req.Customer.Phone),
		Notes: strings.TrimSpace(req.Customer.Notes),
	}
	order := &models.Order{
		Items:       items,
		Subtotal:    totals.Subtotal,
		DeliveryFee: totals.DeliveryFee,
		Total:       totals.Total,
		Type:        req.Type,
		Customer:    customer,
		Status:      models.OrderStatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	switch req.Type {
	case models.OrderTypeDineIn:
		order.TableNumber = strings.TrimSpace(req.TableNumber)
	case models.OrderTypeDelivery:
		order.Customer.Address = strings.TrimSpace(req.Customer.Address)
	}
	return order
}
