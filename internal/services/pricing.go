package services

import (
	"lablink/internal/models"

	"github.com/shopspring/decimal"
)

// DefaultHomeCollectionCharge is the flat fee for sample pickup at home.
const DefaultHomeCollectionCharge int64 = 100

var hundred = decimal.NewFromInt(100)

// Pricing derives cart totals. It holds no state beyond its configuration.
type Pricing struct {
	HomeCollectionCharge int64
}

// NewPricing returns a calculator using the given home collection charge.
func NewPricing(homeCollectionCharge int64) Pricing {
	return Pricing{HomeCollectionCharge: homeCollectionCharge}
}

// Subtotal sums the selected offer price of every line. MRP is never used.
func Subtotal(lines []models.CartLine) int64 {
	var sum int64
	for _, l := range lines {
		sum += l.SelectedCenter.Price
	}
	return sum
}

// Discount returns the coupon discount against subtotal, rounded half-up to
// whole currency units.
func Discount(subtotal int64, coupon *models.Coupon) int64 {
	if coupon == nil {
		return 0
	}
	value := decimal.NewFromFloat(coupon.Value)
	var amount decimal.Decimal
	switch coupon.DiscountType {
	case models.DiscountPercent:
		amount = decimal.NewFromInt(subtotal).Mul(value).Div(hundred)
	case models.DiscountFlat:
		amount = value
	default:
		return 0
	}
	// Round rounds half away from zero, which is half-up for non-negative amounts.
	return amount.Round(0).IntPart()
}

// needsHomeCollection reports whether any line requires a specimen pickup.
func needsHomeCollection(lines []models.CartLine) bool {
	for _, l := range lines {
		if l.Item.Kind.NeedsSampleCollection() {
			return true
		}
	}
	return false
}

// Totals computes the price breakdown. The surcharge is added after the
// subtotal-minus-discount floor and is never discounted.
func (p Pricing) Totals(lines []models.CartLine, coupon *models.Coupon, serviceType models.ServiceType) models.CartTotals {
	subtotal := Subtotal(lines)
	discount := Discount(subtotal, coupon)

	var charge int64
	if serviceType == models.ServiceHome && needsHomeCollection(lines) {
		charge = p.HomeCollectionCharge
	}

	net := subtotal - discount
	if net < 0 {
		net = 0
	}
	return models.CartTotals{
		Subtotal:             subtotal,
		Discount:             discount,
		HomeCollectionCharge: charge,
		FinalTotal:           net + charge,
	}
}
