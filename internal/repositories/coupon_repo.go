package repositories

import (
	"errors"
	"strings"

	"lablink/internal/models"
)

// ErrCouponNotFound is returned when no coupon matches a code.
var ErrCouponNotFound = errors.New("coupon not found")

// CouponRepository defines the interface for coupon lookups.
type CouponRepository interface {
	GetAll() ([]models.Coupon, error)
	FindByCode(code string) (*models.Coupon, error)
}

// StaticCouponRepository serves a fixed coupon table. Codes are matched
// case-insensitively after trimming.
type StaticCouponRepository struct {
	coupons map[string]models.Coupon
	order   []string
}

// NewStaticCouponRepository creates a repository over the given coupons.
func NewStaticCouponRepository(coupons []models.Coupon) *StaticCouponRepository {
	r := &StaticCouponRepository{coupons: make(map[string]models.Coupon, len(coupons))}
	for _, c := range coupons {
		code := NormalizeCouponCode(c.Code)
		c.Code = code
		if _, dup := r.coupons[code]; !dup {
			r.order = append(r.order, code)
		}
		r.coupons[code] = c
	}
	return r
}

// NormalizeCouponCode trims and upper-cases a raw coupon code.
func NormalizeCouponCode(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}

// GetAll returns every coupon in declaration order.
func (r *StaticCouponRepository) GetAll() ([]models.Coupon, error) {
	list := make([]models.Coupon, 0, len(r.order))
	for _, code := range r.order {
		list = append(list, r.coupons[code])
	}
	return list, nil
}

// FindByCode returns the coupon for code.
func (r *StaticCouponRepository) FindByCode(code string) (*models.Coupon, error) {
	c, ok := r.coupons[NormalizeCouponCode(code)]
	if !ok {
		return nil, ErrCouponNotFound
	}
	return &c, nil
}
