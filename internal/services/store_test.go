package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"lablink/internal/models"
	"lablink/internal/repositories"
	"lablink/internal/seed"
	"lablink/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestStoreAddToCartNotifies(t *testing.T) {
	ctx := context.Background()
	store, repo, notifier := newTestStore(t)

	store.AddToCart(ctx, seedItem(t, "t1"), 0, nil)
	assert.Equal(t, "Added Complete Blood Count (CBC) to cart", notifier.Last().Message)
	store.AddToCart(ctx, seedItem(t, "t1"), 2, nil)
	assert.Equal(t, "Updated Complete Blood Count (CBC) in cart", notifier.Last().Message)

	lines := store.Cart()
	require.Len(t, lines, 1)
	assert.Equal(t, "Apollo Medical Centre", lines[0].SelectedCenter.CenterName)
	assert.Equal(t, 2, repo.Saves())
}

func TestStoreRemoveAbsentIsNoop(t *testing.T) {
	ctx := context.Background()
	store, repo, notifier := newTestStore(t)

	store.RemoveFromCart(ctx, "missing")
	assert.Equal(t, 0, repo.Saves())
	assert.Empty(t, notifier.Messages())

	store.AddToCart(ctx, seedItem(t, "t2"), 0, nil)
	store.RemoveFromCart(ctx, "t2")
	assert.Empty(t, store.Cart())
	assert.Equal(t, "Removed HbA1c from cart", notifier.Last().Message)
}

func TestStoreCouponMinimumEnforced(t *testing.T) {
	ctx := context.Background()
	store, _, notifier := newTestStore(t)
	store.AddToCart(ctx, seedItem(t, "t1"), 1, nil) // 300

	err := store.ApplyCoupon(ctx, "FIRST50")
	require.Error(t, err)
	assert.True(t, services.IsValidation(err, services.BelowMinimum))
	assert.Nil(t, store.AppliedCoupon())
	assert.Equal(t, services.SeverityError, notifier.Last().Severity)
	assert.Equal(t, int64(0), store.CartTotal().Discount)
}

func TestStoreHealth100(t *testing.T) {
	ctx := context.Background()
	store, _, _ := newTestStore(t)
	_, err := store.UpdateUser(ctx, models.UserPatch{ServiceType: ptr(models.ServiceLab)})
	require.NoError(t, err)

	store.AddToCart(ctx, seedItem(t, "s2"), 0, nil) // 1200
	require.NoError(t, store.ApplyCoupon(ctx, "health100"))

	totals := store.CartTotal()
	assert.Equal(t, int64(1200), totals.Subtotal)
	assert.Equal(t, int64(100), totals.Discount)
	assert.Equal(t, int64(1100), totals.FinalTotal)
}

func TestStoreCouponAutoRevoked(t *testing.T) {
	ctx := context.Background()
	store, _, notifier := newTestStore(t)
	store.AddToCart(ctx, seedItem(t, "t1"), 0, nil) // 350
	store.AddToCart(ctx, seedItem(t, "t2"), 0, nil) // 400
	require.NoError(t, store.ApplyCoupon(ctx, "FIRST50"))

	store.RemoveFromCart(ctx, "t2")
	assert.Nil(t, store.AppliedCoupon())
	assert.Contains(t, notifier.Messages(), "Coupon FIRST50 removed: minimum order value of ₹500 required")

	// Re-selecting a cheaper offer also revalidates.
	store.AddToCart(ctx, seedItem(t, "t2"), 1, nil) // 450 -> 800
	require.NoError(t, store.ApplyCoupon(ctx, "FIRST50"))
	store.AddToCart(ctx, seedItem(t, "t1"), 1, nil) // 300 + 450 = 750
	assert.NotNil(t, store.AppliedCoupon())
}

func TestStoreClearCartClearsCoupon(t *testing.T) {
	ctx := context.Background()
	store, _, _ := newTestStore(t)
	store.AddToCart(ctx, seedItem(t, "p1"), 0, nil)
	require.NoError(t, store.ApplyCoupon(ctx, "FIRST50"))

	store.ClearCart(ctx)
	assert.Empty(t, store.Cart())
	assert.Nil(t, store.AppliedCoupon())
	assert.Equal(t, models.CartTotals{}, store.CartTotal())
}

func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewMockSnapshotRepository()
	coupons := repositories.NewStaticCouponRepository(seed.Coupons())
	ids := 0
	newID := func() string {
		ids++
		return fmt.Sprintf("patient-%d", ids)
	}

	first := services.NewStore(repo, coupons, &recordingNotifier{}, zap.NewNop(), services.WithPatientIDs(newID))
	require.NoError(t, first.Load(ctx))
	first.ToggleDarkMode(ctx)
	first.SetTests(ctx, seed.Tests())
	first.SetDoctors(ctx, seed.Doctors())
	first.AddToCart(ctx, seedItem(t, "p1"), 1, nil)
	first.AddToCart(ctx, seedItem(t, "d2"), 0, &models.Appointment{Date: "2026-10-21", Slot: "05:00 PM"})
	require.NoError(t, first.ApplyCoupon(ctx, "FIRST50"))
	_, err := first.UpdateUser(ctx, models.UserPatch{FullName: ptr("Asha Rao"), Phone: ptr("9876543210"), Address: ptr("12 MG Road")})
	require.NoError(t, err)
	_, err = first.AddPatient(ctx, models.Patient{FullName: "Ravi Rao", Age: "62", Phone: "9000000001", Gender: models.GenderMale})
	require.NoError(t, err)
	first.LoginB2B(ctx, models.B2BUser{ID: "7", Name: "City Clinic", Token: "tok"})
	first.RecordOrder(ctx, models.Order{ID: "5001", CreatedAt: time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC), Status: models.OrderPending}, nil)
	first.AddToCart(ctx, seedItem(t, "t3"), 0, nil)

	second := services.NewStore(repo, coupons, &recordingNotifier{}, zap.NewNop())
	require.NoError(t, second.Load(ctx))
	assert.Equal(t, first.Snapshot(), second.Snapshot())
	assert.True(t, second.DarkMode())
	assert.Equal(t, "patient-1", second.Patients()[0].ID)
	assert.Equal(t, "5001", second.Orders()[0].ID)
	assert.Equal(t, "tok", second.Partner().Token)
}

func TestStoreLoadWithoutSnapshotKeepsDefaults(t *testing.T) {
	store, _, _ := newTestStore(t)
	assert.Equal(t, models.DefaultUserDetails(), store.User())
	assert.False(t, store.DarkMode())
	assert.Empty(t, store.Cart())
	assert.Nil(t, store.Partner())
}

func TestStoreSnapshotKeyIsolation(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewMockSnapshotRepository()
	coupons := repositories.NewStaticCouponRepository(seed.Coupons())

	a := services.NewStore(repo, coupons, &recordingNotifier{}, zap.NewNop(), services.WithSnapshotKey("a"))
	a.ToggleDarkMode(ctx)

	b := services.NewStore(repo, coupons, &recordingNotifier{}, zap.NewNop(), services.WithSnapshotKey("b"))
	require.NoError(t, b.Load(ctx))
	assert.False(t, b.DarkMode())
}

func TestStoreUpdateUserMerges(t *testing.T) {
	ctx := context.Background()
	store, _, notifier := newTestStore(t)

	_, err := store.UpdateUser(ctx, models.UserPatch{FullName: ptr("Asha"), Age: ptr("31")})
	require.NoError(t, err)
	user, err := store.UpdateUser(ctx, models.UserPatch{Phone: ptr("98765")})
	require.NoError(t, err)
	assert.Equal(t, "Asha", user.FullName)
	assert.Equal(t, "31", user.Age)
	assert.Equal(t, "98765", user.Phone)
	assert.Equal(t, models.ServiceHome, user.ServiceType)

	_, err = store.UpdateUser(ctx, models.UserPatch{ServiceType: ptr(models.ServiceType("drive-through"))})
	assert.True(t, services.IsValidation(err, services.MissingField))
	assert.Equal(t, models.ServiceHome, store.User().ServiceType)
	require.Len(t, notifier.Messages(), 1)
	assert.Equal(t, err.Error(), notifier.Last().Message)
	assert.Equal(t, services.SeverityError, notifier.Last().Severity)
}

func TestStorePatients(t *testing.T) {
	ctx := context.Background()
	store, _, notifier := newTestStore(t)

	_, err := store.AddPatient(ctx, models.Patient{FullName: "No Phone", Age: "40"})
	assert.True(t, services.IsValidation(err, services.InvalidPatient))
	assert.Equal(t, "Please enter name, age and phone", notifier.Last().Message)

	saved, err := store.AddPatient(ctx, models.Patient{ID: "client-id", FullName: "Ravi Rao", Age: "62", Phone: "9000000001", Gender: models.GenderMale, Address: "4 Park St"})
	require.NoError(t, err)
	assert.NotEqual(t, "client-id", saved.ID)
	assert.NotEmpty(t, saved.ID)

	user, err := store.SelectPatient(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ravi Rao", user.FullName)
	assert.Equal(t, models.GenderMale, user.Gender)
	assert.Equal(t, "4 Park St", user.Address)

	// Editing the draft leaves the saved patient alone.
	_, err = store.UpdateUser(ctx, models.UserPatch{FullName: ptr("Ravi K Rao")})
	require.NoError(t, err)
	assert.Equal(t, "Ravi Rao", store.Patients()[0].FullName)

	sent := len(notifier.Messages())
	_, err = store.SelectPatient(ctx, "nope")
	assert.True(t, services.IsValidation(err, services.PatientNotFound))
	assert.Len(t, notifier.Messages(), sent+1)
	assert.Equal(t, "Patient nope not found", notifier.Last().Message)
	assert.Equal(t, services.SeverityError, notifier.Last().Severity)

	store.RemovePatient(ctx, saved.ID)
	assert.Empty(t, store.Patients())
}

func TestStoreLoginClearsOrders(t *testing.T) {
	ctx := context.Background()
	store, _, _ := newTestStore(t)
	store.LoginB2B(ctx, models.B2BUser{ID: "1", Name: "A", Token: "a"})
	store.RecordOrder(ctx, models.Order{ID: "5001"}, nil)
	require.Len(t, store.Orders(), 1)

	store.LoginB2B(ctx, models.B2BUser{ID: "2", Name: "B", Token: "b"})
	assert.Empty(t, store.Orders())
	assert.Equal(t, "2", store.Partner().ID)

	store.RecordOrder(ctx, models.Order{ID: "5002"}, nil)
	store.LogoutB2B(ctx)
	assert.Empty(t, store.Orders())
	assert.Nil(t, store.Partner())
}

func TestStoreRecordOrderPrependsAndClears(t *testing.T) {
	ctx := context.Background()
	store, _, _ := newTestStore(t)
	store.AddToCart(ctx, seedItem(t, "p1"), 0, nil)
	require.NoError(t, store.ApplyCoupon(ctx, "FIRST50"))

	draft := store.Draft()
	store.RecordOrder(ctx, models.Order{ID: "1", Items: draft.Lines}, draft.Coupon)
	store.RecordOrder(ctx, models.Order{ID: "2"}, nil)

	orders := store.Orders()
	require.Len(t, orders, 2)
	assert.Equal(t, "2", orders[0].ID)
	assert.Empty(t, store.Cart())
	assert.Nil(t, store.AppliedCoupon())
}

func TestStoreRecordOrderKeepsLinesAddedInFlight(t *testing.T) {
	ctx := context.Background()
	store, _, _ := newTestStore(t)
	store.AddToCart(ctx, seedItem(t, "t1"), 0, nil)
	store.AddToCart(ctx, seedItem(t, "p1"), 0, nil)
	require.NoError(t, store.ApplyCoupon(ctx, "FIRST50"))
	draft := store.Draft()

	store.AddToCart(ctx, seedItem(t, "t3"), 0, nil)
	store.AddToCart(ctx, seedItem(t, "t1"), 1, nil)
	store.RecordOrder(ctx, models.Order{ID: "5001", Items: draft.Lines}, draft.Coupon)

	cart := store.Cart()
	require.Len(t, cart, 2)
	assert.Equal(t, "t1", cart[0].Item.ID)
	assert.Equal(t, 1, cart[0].CenterOfferIndex)
	assert.Equal(t, "t3", cart[1].Item.ID)
	assert.Nil(t, store.AppliedCoupon())
	require.Len(t, store.Orders(), 1)
	assert.Len(t, store.Orders()[0].Items, 2)
}

func TestStoreRecordOrderKeepsCouponAppliedInFlight(t *testing.T) {
	ctx := context.Background()
	store, _, _ := newTestStore(t)
	store.AddToCart(ctx, seedItem(t, "t1"), 0, nil)
	draft := store.Draft()
	require.Nil(t, draft.Coupon)

	store.AddToCart(ctx, seedItem(t, "t3"), 0, nil)
	require.NoError(t, store.ApplyCoupon(ctx, "FIRST50"))
	store.RecordOrder(ctx, models.Order{ID: "5001", Items: draft.Lines}, draft.Coupon)

	require.Len(t, store.Cart(), 1)
	assert.Equal(t, "t3", store.Cart()[0].Item.ID)
	require.NotNil(t, store.AppliedCoupon())
	assert.Equal(t, "FIRST50", store.AppliedCoupon().Code)
}

func TestStoreFindItem(t *testing.T) {
	ctx := context.Background()
	store, _, _ := newTestStore(t)
	store.SetTests(ctx, seed.Tests())
	store.SetDoctors(ctx, seed.Doctors())

	item, ok := store.FindItem("s4")
	require.True(t, ok)
	assert.Equal(t, "MRI Brain Plain", item.Name)
	item, ok = store.FindItem("d3")
	require.True(t, ok)
	assert.Equal(t, models.KindDoctor, item.Kind)
	_, ok = store.FindItem("zz")
	assert.False(t, ok)
}

func TestStoreConcurrentMutations(t *testing.T) {
	ctx := context.Background()
	store, _, _ := newTestStore(t)
	items := seed.Tests()

	done := make(chan struct{})
	for i := 0; i < 8; i++ {
		go func(i int) {
			defer func() { done <- struct{}{} }()
			for j := 0; j < 20; j++ {
				item := items[(i+j)%len(items)]
				store.AddToCart(ctx, item, 0, nil)
				_ = store.CartTotal()
			}
		}(i)
	}
	for i := 0; i < 8; i++ {
		<-done
	}

	seen := map[string]bool{}
	for _, l := range store.Cart() {
		assert.False(t, seen[l.LineID()], "duplicate line %s", l.LineID())
		seen[l.LineID()] = true
	}
	assert.Len(t, store.Cart(), len(items))
}
