package models

// CartLine is a catalog item bound to one chosen center offer.
// AppointmentDate and AppointmentSlot are only set for doctor bookings.
type CartLine struct {
	Item             CatalogItem `json:"item"`
	CenterOfferIndex int         `json:"centerOfferIndex"`
	SelectedCenter   CenterOffer `json:"selectedCenter"`
	AppointmentDate  string      `json:"appointmentDate,omitempty"`
	AppointmentSlot  string      `json:"appointmentSlot,omitempty"`
}

// LineID identifies the line in the cart. The catalog item id is the only key,
// so two lines can never collide.
func (l CartLine) LineID() string {
	return l.Item.ID
}

// Clone returns a deep copy of the line.
func (l CartLine) Clone() CartLine {
	out := l
	out.Item = l.Item.Clone()
	return out
}

// Appointment is the optional doctor booking slot passed when adding to cart.
type Appointment struct {
	Date string `json:"date"`
	Slot string `json:"slot"`
}

// CartTotals is the derived price breakdown of the cart.
type CartTotals struct {
	Subtotal             int64 `json:"subtotal"`
	Discount             int64 `json:"discount"`
	HomeCollectionCharge int64 `json:"homeCollectionCharge"`
	FinalTotal           int64 `json:"finalTotal"`
}

// CloneLines deep-copies a slice of cart lines.
func CloneLines(lines []CartLine) []CartLine {
	if lines == nil {
		return nil
	}
	out := make([]CartLine, len(lines))
	for i, l := range lines {
		out[i] = l.Clone()
	}
	return out
}
