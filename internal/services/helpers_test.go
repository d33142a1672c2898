package services_test

import (
	"context"
	"sync"
	"testing"

	"lablink/internal/models"
	"lablink/internal/repositories"
	"lablink/internal/seed"
	"lablink/internal/services"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type notification struct {
	Message  string
	Severity services.Severity
}

// recordingNotifier keeps every notification for assertions.
type recordingNotifier struct {
	mu   sync.Mutex
	sent []notification
}

func (n *recordingNotifier) Notify(message string, severity services.Severity) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, notification{Message: message, Severity: severity})
}

func (n *recordingNotifier) Messages() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]string, 0, len(n.sent))
	for _, s := range n.sent {
		out = append(out, s.Message)
	}
	return out
}

func (n *recordingNotifier) Last() notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.sent) == 0 {
		return notification{}
	}
	return n.sent[len(n.sent)-1]
}

func newTestStore(t *testing.T, opts ...services.StoreOption) (*services.Store, *repositories.MockSnapshotRepository, *recordingNotifier) {
	t.Helper()
	repo := repositories.NewMockSnapshotRepository()
	notifier := &recordingNotifier{}
	store := services.NewStore(repo, repositories.NewStaticCouponRepository(seed.Coupons()), notifier, zap.NewNop(), opts...)
	require.NoError(t, store.Load(context.Background()))
	return store, repo, notifier
}

// seedItem returns the bundled catalog item or doctor with id.
func seedItem(t *testing.T, id string) models.CatalogItem {
	t.Helper()
	for _, items := range [][]models.CatalogItem{seed.Tests(), seed.Doctors()} {
		for _, item := range items {
			if item.ID == id {
				return item
			}
		}
	}
	t.Fatalf("no seed item %s", id)
	return models.CatalogItem{}
}

func ptr[T any](v T) *T {
	return &v
}
