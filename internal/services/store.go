package services

import (
	"context"
	"fmt"
	"sync"

	"lablink/internal/models"
	"lablink/internal/repositories"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// DefaultSnapshotKey is the key the store persists under.
const DefaultSnapshotKey = "lab-link-storage"

// Store owns all client-side state: cart, coupon, user draft, patients,
// orders, partner session, cached catalog and preferences. Every operation
// runs to completion under one mutex and saves the full snapshot before
// returning, so snapshots are written in mutation order.
type Store struct {
	mu sync.Mutex

	repo     repositories.SnapshotRepository
	key      string
	notifier Notifier
	logger   *zap.Logger
	pricing  Pricing
	validate *validator.Validate

	darkMode bool
	cart     *Cart
	coupons  *CouponEngine
	patients *PatientRegistry
	user     models.UserDetails
	orders   []models.Order
	partner  *models.B2BUser
	tests    []models.CatalogItem
	doctors  []models.CatalogItem
}

// StoreOption customizes a Store.
type StoreOption func(*Store)

// WithSnapshotKey overrides the persistence key.
func WithSnapshotKey(key string) StoreOption {
	return func(s *Store) { s.key = key }
}

// WithPricing overrides the pricing configuration.
func WithPricing(p Pricing) StoreOption {
	return func(s *Store) { s.pricing = p }
}

// WithPatientIDs overrides patient id generation.
func WithPatientIDs(newID func() string) StoreOption {
	return func(s *Store) { s.patients.newID = newID }
}

// NewStore creates an empty store. Call Load to rehydrate persisted state.
func NewStore(repo repositories.SnapshotRepository, coupons repositories.CouponRepository, notifier Notifier, logger *zap.Logger, opts ...StoreOption) *Store {
	s := &Store{
		repo:     repo,
		key:      DefaultSnapshotKey,
		notifier: notifier,
		logger:   logger.Named("store"),
		pricing:  NewPricing(DefaultHomeCollectionCharge),
		validate: validator.New(),
		cart:     NewCart(nil),
		coupons:  NewCouponEngine(coupons),
		patients: NewPatientRegistry(nil),
		user:     models.DefaultUserDetails(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load replaces in-memory state with the persisted snapshot, if any.
func (s *Store) Load(ctx context.Context) error {
	snapshot, err := s.repo.Load(ctx, s.key)
	if err != nil {
		return fmt.Errorf("failed to rehydrate store: %w", err)
	}
	if snapshot == nil {
		s.logger.Info("no persisted snapshot, starting fresh", zap.String("key", s.key))
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.restore(*snapshot)
	s.logger.Info("store rehydrated",
		zap.String("key", s.key),
		zap.Int("cart_lines", s.cart.Len()),
		zap.Int("orders", len(s.orders)),
		zap.Int("patients", len(s.patients.List())),
	)
	return nil
}

func (s *Store) restore(snapshot models.Snapshot) {
	s.darkMode = snapshot.DarkMode
	s.cart.lines = models.CloneLines(snapshot.Cart)
	s.coupons.Restore(snapshot.AppliedCoupon)
	s.tests = cloneItems(snapshot.Tests)
	s.doctors = cloneItems(snapshot.Doctors)
	s.user = snapshot.User
	if s.user.ServiceType == "" {
		s.user = mergeNonEmpty(models.DefaultUserDetails(), snapshot.User)
	}
	s.patients.patients = append([]models.Patient(nil), snapshot.Patients...)
	s.orders = cloneOrders(snapshot.Orders)
	if snapshot.B2BUser != nil {
		p := *snapshot.B2BUser
		s.partner = &p
	} else {
		s.partner = nil
	}
}

// mergeNonEmpty overlays the non-empty fields of src onto dst.
func mergeNonEmpty(dst, src models.UserDetails) models.UserDetails {
	if src.FullName != "" {
		dst.FullName = src.FullName
	}
	if src.Age != "" {
		dst.Age = src.Age
	}
	if src.Phone != "" {
		dst.Phone = src.Phone
	}
	if src.Gender != "" {
		dst.Gender = src.Gender
	}
	if src.Address != "" {
		dst.Address = src.Address
	}
	if src.TimeSlot != "" {
		dst.TimeSlot = src.TimeSlot
	}
	dst.DoctorName = src.DoctorName
	dst.PrescriptionAttached = src.PrescriptionAttached
	return dst
}

// Snapshot returns a deep copy of the persisted slice of state.
func (s *Store) Snapshot() models.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() models.Snapshot {
	var partner *models.B2BUser
	if s.partner != nil {
		p := *s.partner
		partner = &p
	}
	return models.Snapshot{
		DarkMode:      s.darkMode,
		Cart:          s.cart.Lines(),
		AppliedCoupon: s.coupons.Applied(),
		Tests:         cloneItems(s.tests),
		Doctors:       cloneItems(s.doctors),
		User:          s.user,
		Patients:      s.patients.List(),
		Orders:        cloneOrders(s.orders),
		B2BUser:       partner,
	}
}

// persistLocked saves the current snapshot. Failures are logged and do not
// undo the in-memory mutation.
func (s *Store) persistLocked(ctx context.Context) {
	if err := s.repo.Save(ctx, s.key, s.snapshotLocked()); err != nil {
		s.logger.Error("failed to persist snapshot", zap.String("key", s.key), zap.Error(err))
	}
}

// --- Preferences ---

// DarkMode reports the dark mode preference.
func (s *Store) DarkMode() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.darkMode
}

// ToggleDarkMode flips the dark mode preference and returns the new value.
func (s *Store) ToggleDarkMode(ctx context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.darkMode = !s.darkMode
	s.persistLocked(ctx)
	return s.darkMode
}

// --- Catalog cache ---

// SetTests replaces the cached tests, scans and packages.
func (s *Store) SetTests(ctx context.Context, items []models.CatalogItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tests = cloneItems(items)
	s.persistLocked(ctx)
}

// SetDoctors replaces the cached doctor listings.
func (s *Store) SetDoctors(ctx context.Context, items []models.CatalogItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doctors = cloneItems(items)
	s.persistLocked(ctx)
}

// Tests returns the cached tests, scans and packages.
func (s *Store) Tests() []models.CatalogItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneItems(s.tests)
}

// Doctors returns the cached doctors.
func (s *Store) Doctors() []models.CatalogItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneItems(s.doctors)
}

// FindItem looks up a cached catalog item or doctor by id.
func (s *Store) FindItem(id string) (models.CatalogItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, group := range [][]models.CatalogItem{s.tests, s.doctors} {
		for _, item := range group {
			if item.ID == id {
				return item.Clone(), true
			}
		}
	}
	return models.CatalogItem{}, false
}

// --- Cart ---

// Cart returns a copy of the cart lines in insertion order.
func (s *Store) Cart() []models.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Lines()
}

// AddToCart binds item to the offer at offerIndex, replacing any line for the
// same item in place. It panics on an invalid offer index.
func (s *Store) AddToCart(ctx context.Context, item models.CatalogItem, offerIndex int, appt *models.Appointment) {
	s.mu.Lock()
	defer s.mu.Unlock()

	replaced := s.cart.Add(item, offerIndex, appt)
	s.revalidateCouponLocked()
	s.persistLocked(ctx)

	if replaced {
		s.notifier.Notify(fmt.Sprintf("Updated %s in cart", item.Name), SeveritySuccess)
	} else {
		s.notifier.Notify(fmt.Sprintf("Added %s to cart", item.Name), SeveritySuccess)
	}
}

// RemoveFromCart removes the line for itemID. Absent ids are a no-op.
func (s *Store) RemoveFromCart(ctx context.Context, itemID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	line, ok := s.cart.Remove(itemID)
	if !ok {
		return
	}
	s.revalidateCouponLocked()
	s.persistLocked(ctx)
	s.notifier.Notify(fmt.Sprintf("Removed %s from cart", line.Item.Name), SeverityInfo)
}

// ClearCart empties the cart and drops the applied coupon.
func (s *Store) ClearCart(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.Clear()
	s.coupons.Remove()
	s.persistLocked(ctx)
}

// revalidateCouponLocked revokes the applied coupon once the cart falls
// below its minimum order value.
func (s *Store) revalidateCouponLocked() {
	dropped := s.coupons.Revalidate(s.cart.Subtotal())
	if dropped == nil {
		return
	}
	s.notifier.Notify(fmt.Sprintf("Coupon %s removed: minimum order value of ₹%d required", dropped.Code, dropped.MinOrderValue), SeverityInfo)
}

// --- Coupon ---

// AppliedCoupon returns the applied coupon, or nil.
func (s *Store) AppliedCoupon() *models.Coupon {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.coupons.Applied()
}

// ApplyCoupon validates rawCode against the live subtotal and applies it.
// Rejections come back as *ValidationError and leave state untouched.
func (s *Store) ApplyCoupon(ctx context.Context, rawCode string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	coupon, err := s.coupons.Apply(rawCode, s.cart.Subtotal())
	if err != nil {
		s.notifier.Notify(err.Error(), SeverityError)
		return err
	}
	s.persistLocked(ctx)
	s.notifier.Notify(fmt.Sprintf("Coupon %s applied", coupon.Code), SeveritySuccess)
	return nil
}

// RemoveCoupon clears the applied coupon.
func (s *Store) RemoveCoupon(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.coupons.Remove()
	s.persistLocked(ctx)
}

// CartTotal derives the price breakdown from current state. It has no side effects.
func (s *Store) CartTotal() models.CartTotals {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pricing.Totals(s.cart.lines, s.coupons.applied, s.user.ServiceType)
}

// --- User draft ---

// User returns the checkout draft.
func (s *Store) User() models.UserDetails {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

// UpdateUser merges patch into the checkout draft.
func (s *Store) UpdateUser(ctx context.Context, patch models.UserPatch) (models.UserDetails, error) {
	if err := s.validate.Struct(patch); err != nil {
		verr := &ValidationError{Kind: MissingField, Message: fmt.Sprintf("Invalid user details: %v", err)}
		s.notifier.Notify(verr.Message, SeverityError)
		return models.UserDetails{}, verr
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = s.user.Merge(patch)
	s.persistLocked(ctx)
	return s.user, nil
}

// --- Patients ---

// Patients returns the saved patients.
func (s *Store) Patients() []models.Patient {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.patients.List()
}

// AddPatient validates and saves p under a new id.
func (s *Store) AddPatient(ctx context.Context, p models.Patient) (models.Patient, error) {
	if err := s.validate.Struct(p); err != nil {
		verr := &ValidationError{Kind: InvalidPatient, Message: "Please enter name, age and phone"}
		s.notifier.Notify(verr.Message, SeverityError)
		return models.Patient{}, verr
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	saved := s.patients.Add(p)
	s.persistLocked(ctx)
	s.notifier.Notify(fmt.Sprintf("Patient %s added", saved.FullName), SeveritySuccess)
	return saved, nil
}

// RemovePatient deletes the patient with id. Absent ids are a no-op.
func (s *Store) RemovePatient(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.patients.Remove(id) {
		return
	}
	s.persistLocked(ctx)
	s.notifier.Notify("Patient removed", SeverityInfo)
}

// SelectPatient copies the saved patient's fields into the checkout draft.
// Later draft edits do not touch the saved patient.
func (s *Store) SelectPatient(ctx context.Context, id string) (models.UserDetails, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.patients.Get(id)
	if !ok {
		verr := &ValidationError{Kind: PatientNotFound, Message: fmt.Sprintf("Patient %s not found", id)}
		s.notifier.Notify(verr.Message, SeverityError)
		return models.UserDetails{}, verr
	}
	s.user.FullName = p.FullName
	s.user.Age = p.Age
	s.user.Phone = p.Phone
	if p.Gender != "" {
		s.user.Gender = p.Gender
	}
	s.user.Address = p.Address
	s.persistLocked(ctx)
	return s.user, nil
}

// --- Orders ---

// Orders returns order history, newest first.
func (s *Store) Orders() []models.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneOrders(s.orders)
}

// CheckoutDraft is a consistent view of what an order would be placed for.
type CheckoutDraft struct {
	Lines  []models.CartLine
	Coupon *models.Coupon
	User   models.UserDetails
	Totals models.CartTotals
}

// Draft captures cart, coupon, user and totals under one lock.
func (s *Store) Draft() CheckoutDraft {
	s.mu.Lock()
	defer s.mu.Unlock()
	return CheckoutDraft{
		Lines:  s.cart.Lines(),
		Coupon: s.coupons.Applied(),
		User:   s.user,
		Totals: s.pricing.Totals(s.cart.lines, s.coupons.applied, s.user.ServiceType),
	}
}

// RecordOrder prepends order to history and, in the same step, removes the
// ordered lines from the cart. Lines added or changed while the order was in
// flight stay. The applied coupon is cleared only when it is still the one the
// order was priced with.
func (s *Store) RecordOrder(ctx context.Context, order models.Order, coupon *models.Coupon) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders = append([]models.Order{order.Clone()}, s.orders...)
	for _, line := range order.Items {
		s.cart.RemoveLine(line)
	}
	if applied := s.coupons.Applied(); applied != nil && coupon != nil && applied.Code == coupon.Code {
		s.coupons.Remove()
	}
	s.revalidateCouponLocked()
	s.persistLocked(ctx)
}

// --- Partner session ---

// Partner returns the current partner session, or nil.
func (s *Store) Partner() *models.B2BUser {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.partner == nil {
		return nil
	}
	p := *s.partner
	return &p
}

// LoginB2B replaces the partner session. Order history belongs to the
// previous identity and is cleared.
func (s *Store) LoginB2B(ctx context.Context, user models.B2BUser) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.partner = &user
	s.orders = nil
	s.persistLocked(ctx)
	s.notifier.Notify(fmt.Sprintf("Logged in as %s", user.Name), SeveritySuccess)
}

// LogoutB2B clears the partner session together with order history.
func (s *Store) LogoutB2B(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.partner = nil
	s.orders = nil
	s.persistLocked(ctx)
	s.notifier.Notify("Logged out", SeverityInfo)
}

func cloneItems(items []models.CatalogItem) []models.CatalogItem {
	if items == nil {
		return nil
	}
	out := make([]models.CatalogItem, len(items))
	for i, item := range items {
		out[i] = item.Clone()
	}
	return out
}

func cloneOrders(orders []models.Order) []models.Order {
	if orders == nil {
		return nil
	}
	out := make([]models.Order, len(orders))
	for i, o := range orders {
		out[i] = o.Clone()
	}
	return out
}
