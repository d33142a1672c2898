package rabbitmq

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"lablink/internal/models"

	amqp "github.com/streadway/amqp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeChannel struct {
	published []amqp.Publishing
	keys      []string
	err       error
	closed    bool
}

func (f *fakeChannel) Publish(_, key string, _, _ bool, msg amqp.Publishing) error {
	if f.err != nil {
		return f.err
	}
	f.keys = append(f.keys, key)
	f.published = append(f.published, msg)
	return nil
}

func (f *fakeChannel) Close() error {
	f.closed = true
	return nil
}

func sampleOrder() models.Order {
	return models.Order{
		ID:          "5123",
		CreatedAt:   time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
		TotalAmount: 1299,
		Status:      models.OrderPending,
		Items: []models.CartLine{{
			Item:           models.CatalogItem{ID: "t1", Kind: models.KindTest, Name: "CBC"},
			SelectedCenter: models.CenterOffer{CenterName: "Apollo Diagnostics", Price: 1199},
		}},
		UserDetails: models.UserDetails{FullName: "Asha Rao", Phone: "9876543210", ServiceType: models.ServiceHome},
	}
}

func TestPublishOrderPlaced(t *testing.T) {
	ch := &fakeChannel{}
	c := &Client{channel: ch, queue: DefaultQueue, logger: zap.NewNop()}

	require.NoError(t, c.PublishOrderPlaced(sampleOrder()))
	require.Len(t, ch.published, 1)
	assert.Equal(t, DefaultQueue, ch.keys[0])

	msg := ch.published[0]
	assert.Equal(t, "application/json", msg.ContentType)
	assert.Equal(t, amqp.Persistent, msg.DeliveryMode)
	assert.Equal(t, "5123", msg.MessageId)

	var ev OrderPlacedEvent
	require.NoError(t, json.Unmarshal(msg.Body, &ev))
	assert.Equal(t, "5123", ev.OrderID)
	assert.Equal(t, int64(1299), ev.TotalAmount)
	assert.Equal(t, []string{"t1"}, ev.ItemIDs)
	assert.Equal(t, []string{"Apollo Diagnostics"}, ev.Centers)
	assert.Equal(t, models.ServiceHome, ev.ServiceType)
}

func TestPublishOrderPlacedErrors(t *testing.T) {
	c := &Client{logger: zap.NewNop()}
	assert.Error(t, c.PublishOrderPlaced(sampleOrder()))

	ch := &fakeChannel{err: errors.New("channel closed")}
	c = &Client{channel: ch, queue: DefaultQueue, logger: zap.NewNop()}
	err := c.PublishOrderPlaced(sampleOrder())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "channel closed")
}

func TestClose(t *testing.T) {
	ch := &fakeChannel{}
	c := &Client{channel: ch}
	assert.NoError(t, c.Close())
	assert.True(t, ch.closed)
}
