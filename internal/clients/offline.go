package clients

import (
	"context"
	"math/rand"
	"strconv"
	"sync"
	"time"

	"lablink/internal/models"
)

// OfflineOrderSink accepts every order and assigns a random id. It is used
// when no commerce backend is configured.
type OfflineOrderSink struct {
	mu          sync.RWMutex
	submissions []models.OrderSubmission
	rng         *rand.Rand
	delay       time.Duration
}

// NewOfflineOrderSink creates an OfflineOrderSink. delay simulates network
// latency and may be zero.
func NewOfflineOrderSink(delay time.Duration) *OfflineOrderSink {
	return &OfflineOrderSink{
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
		delay: delay,
	}
}

// CreateOrder records the submission and returns an id in [5000, 15000).
func (s *OfflineOrderSink) CreateOrder(ctx context.Context, submission models.OrderSubmission) (models.OrderResult, error) {
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return models.OrderResult{Message: ctx.Err().Error()}, nil
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.submissions = append(s.submissions, submission)
	id := 5000 + s.rng.Intn(10000)
	return models.OrderResult{ID: strconv.Itoa(id)}, nil
}

// Submissions returns every order received so far.
func (s *OfflineOrderSink) Submissions() []models.OrderSubmission {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.OrderSubmission(nil), s.submissions...)
}
