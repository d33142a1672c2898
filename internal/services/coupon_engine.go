package services

import (
	"errors"
	"fmt"

	"lablink/internal/models"
	"lablink/internal/repositories"
)

// CouponEngine validates codes against the coupon table and tracks the one
// applied coupon.
type CouponEngine struct {
	repo    repositories.CouponRepository
	applied *models.Coupon
}

// NewCouponEngine creates an engine with no coupon applied.
func NewCouponEngine(repo repositories.CouponRepository) *CouponEngine {
	return &CouponEngine{repo: repo}
}

// Check validates rawCode against subtotal without applying it.
func (e *CouponEngine) Check(rawCode string, subtotal int64) (*models.Coupon, error) {
	coupon, err := e.repo.FindByCode(rawCode)
	if err != nil {
		if errors.Is(err, repositories.ErrCouponNotFound) {
			return nil, &ValidationError{Kind: InvalidCode, Message: "Invalid coupon code"}
		}
		return nil, fmt.Errorf("failed to look up coupon: %w", err)
	}
	if subtotal < coupon.MinOrderValue {
		return nil, belowMinimum(coupon.MinOrderValue)
	}
	return coupon, nil
}

// Apply validates rawCode and makes it the applied coupon. On error the
// applied coupon is left unchanged.
func (e *CouponEngine) Apply(rawCode string, subtotal int64) (*models.Coupon, error) {
	coupon, err := e.Check(rawCode, subtotal)
	if err != nil {
		return nil, err
	}
	e.applied = coupon
	c := *coupon
	return &c, nil
}

// Remove clears the applied coupon.
func (e *CouponEngine) Remove() {
	e.applied = nil
}

// Applied returns a copy of the applied coupon, or nil.
func (e *CouponEngine) Applied() *models.Coupon {
	if e.applied == nil {
		return nil
	}
	c := *e.applied
	return &c
}

// Restore sets the applied coupon from persisted state without re-validating.
func (e *CouponEngine) Restore(coupon *models.Coupon) {
	if coupon == nil {
		e.applied = nil
		return
	}
	c := *coupon
	e.applied = &c
}

// Revalidate drops the applied coupon when subtotal no longer meets its
// minimum, and returns the dropped coupon.
func (e *CouponEngine) Revalidate(subtotal int64) *models.Coupon {
	if e.applied == nil || subtotal >= e.applied.MinOrderValue {
		return nil
	}
	dropped := *e.applied
	e.applied = nil
	return &dropped
}

func belowMinimum(min int64) *ValidationError {
	return &ValidationError{
		Kind:          BelowMinimum,
		Message:       fmt.Sprintf("Minimum order value of ₹%d required", min),
		MinOrderValue: min,
	}
}
