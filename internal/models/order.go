package models

import "time"

// OrderStatus is the lifecycle state of a placed order. The client only ever
// creates orders as Pending.
type OrderStatus string

const (
	OrderPending   OrderStatus = "Pending"
	OrderConfirmed OrderStatus = "Confirmed"
	OrderCompleted OrderStatus = "Completed"
	OrderCancelled OrderStatus = "Cancelled"
)

// Order is an immutable record of a placed booking.
type Order struct {
	ID          string      `json:"id"`
	CreatedAt   time.Time   `json:"date"`
	Items       []CartLine  `json:"items"`
	TotalAmount int64       `json:"totalAmount"`
	Status      OrderStatus `json:"status"`
	UserDetails UserDetails `json:"userDetails"` // copy taken at placement time
}

// Clone returns a deep copy of the order.
func (o Order) Clone() Order {
	out := o
	out.Items = CloneLines(o.Items)
	return out
}

// OrderAddress is the billing/shipping block of an order submission.
type OrderAddress struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Address1  string `json:"address_1"`
	City      string `json:"city"`
	State     string `json:"state"`
	Postcode  string `json:"postcode"`
	Country   string `json:"country"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

// OrderLineItem references one booked product.
type OrderLineItem struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

// OrderMeta is a key/value pair attached to an order submission.
type OrderMeta struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// OrderSubmission is what gets sent to the order sink.
type OrderSubmission struct {
	PaymentMethod      string          `json:"payment_method"`
	PaymentMethodTitle string          `json:"payment_method_title"`
	SetPaid            bool            `json:"set_paid"`
	Billing            OrderAddress    `json:"billing"`
	Shipping           OrderAddress    `json:"shipping"`
	LineItems          []OrderLineItem `json:"line_items"`
	MetaData           []OrderMeta     `json:"meta_data"`
}

// OrderResult is the order sink's answer. An empty ID means failure,
// whatever the transport said.
type OrderResult struct {
	ID      string `json:"id"`
	Message string `json:"message,omitempty"`
}

// Succeeded reports whether the sink assigned an order id.
func (r OrderResult) Succeeded() bool {
	return r.ID != ""
}
