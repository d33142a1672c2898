package models

// DiscountType selects how a coupon's Value is interpreted.
type DiscountType string

const (
	DiscountFlat    DiscountType = "flat"
	DiscountPercent DiscountType = "percent"
)

// Coupon is a discount code with an eligibility threshold.
type Coupon struct {
	Code          string       `json:"code" validate:"required"`
	DiscountType  DiscountType `json:"discountType" validate:"required,oneof=flat percent"`
	Value         float64      `json:"value" validate:"gt=0"`
	MinOrderValue int64        `json:"minOrderValue" validate:"gte=0"`
}
