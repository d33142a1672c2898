package rabbitmq

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"lablink/internal/models"

	amqp "github.com/streadway/amqp"
	"go.uber.org/zap"
)

// DefaultQueue receives order-placed events.
const DefaultQueue = "order_placed"

// publisher is the part of *amqp.Channel the client needs.
type publisher interface {
	Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// Client holds the RabbitMQ connection and channel.
type Client struct {
	conn    *amqp.Connection
	channel publisher
	queue   string
	logger  *zap.Logger
	mu      sync.Mutex // amqp channels are not safe for concurrent publishes
}

// Config holds RabbitMQ connection details.
type Config struct {
	URL   string
	Queue string
}

// NewClient connects to RabbitMQ, opens a channel and declares the event queue.
func NewClient(cfg Config, logger *zap.Logger) (*Client, error) {
	queue := cfg.Queue
	if queue == "" {
		queue = DefaultQueue
	}

	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	_, err = ch.QueueDeclare(
		queue,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare %s: %w", queue, err)
	}

	logger = logger.Named("rabbitmq")
	logger.Info("connected", zap.String("queue", queue))

	return &Client{conn: conn, channel: ch, queue: queue, logger: logger}, nil
}

// Close closes the RabbitMQ channel and connection.
func (c *Client) Close() error {
	var errs []error
	if c.channel != nil {
		if err := c.channel.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close channel: %w", err))
		}
	}
	if c.conn != nil {
		if err := c.conn.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close connection: %w", err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("errors closing RabbitMQ client: %v", errs)
	}
	return nil
}

// OrderPlacedEvent is the message body published for each placed order.
type OrderPlacedEvent struct {
	OrderID     string             `json:"orderId"`
	PlacedAt    time.Time          `json:"placedAt"`
	TotalAmount int64              `json:"totalAmount"`
	ServiceType models.ServiceType `json:"serviceType"`
	Customer    string             `json:"customer"`
	Phone       string             `json:"phone"`
	ItemIDs     []string           `json:"itemIds"`
	Centers     []string           `json:"centers"`
}

// NewOrderPlacedEvent builds the event for order.
func NewOrderPlacedEvent(order models.Order) OrderPlacedEvent {
	ev := OrderPlacedEvent{
		OrderID:     order.ID,
		PlacedAt:    order.CreatedAt,
		TotalAmount: order.TotalAmount,
		ServiceType: order.UserDetails.ServiceType,
		Customer:    order.UserDetails.FullName,
		Phone:       order.UserDetails.Phone,
		ItemIDs:     make([]string, 0, len(order.Items)),
		Centers:     make([]string, 0, len(order.Items)),
	}
	for _, line := range order.Items {
		ev.ItemIDs = append(ev.ItemIDs, line.LineID())
		ev.Centers = append(ev.Centers, line.SelectedCenter.CenterName)
	}
	return ev
}

// PublishOrderPlaced publishes a persistent JSON event for order.
func (c *Client) PublishOrderPlaced(order models.Order) error {
	if c.channel == nil {
		return fmt.Errorf("RabbitMQ channel is not available")
	}

	body, err := json.Marshal(NewOrderPlacedEvent(order))
	if err != nil {
		return fmt.Errorf("failed to marshal order event: %w", err)
	}

	c.mu.Lock()
	err = c.channel.Publish(
		"",      // default exchange
		c.queue, // routing key
		false,   // mandatory
		false,   // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
			MessageId:    order.ID,
			Type:         "order.placed",
		})
	c.mu.Unlock()
	if err != nil {
		return fmt.Errorf("failed to publish order event: %w", err)
	}

	c.logger.Debug("order event published", zap.String("order_id", order.ID))
	return nil
}
