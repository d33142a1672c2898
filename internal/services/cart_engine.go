package services

import "lablink/internal/models"

// Cart holds the selected lines in insertion order, at most one per catalog item.
type Cart struct {
	lines []models.CartLine
}

// NewCart returns a cart seeded with lines.
func NewCart(lines []models.CartLine) *Cart {
	return &Cart{lines: models.CloneLines(lines)}
}

// Add binds item to the offer at offerIndex. A line for the same item is
// replaced in place; otherwise the line is appended. It panics on an invalid
// offer index.
func (c *Cart) Add(item models.CatalogItem, offerIndex int, appt *models.Appointment) (replaced bool) {
	line := models.CartLine{
		Item:             item.Clone(),
		CenterOfferIndex: offerIndex,
		SelectedCenter:   item.Offer(offerIndex),
	}
	if appt != nil {
		line.AppointmentDate = appt.Date
		line.AppointmentSlot = appt.Slot
	}

	for i := range c.lines {
		if c.lines[i].Item.ID == item.ID {
			c.lines[i] = line
			return true
		}
	}
	c.lines = append(c.lines, line)
	return false
}

// Remove drops the line for itemID and reports whether one existed.
func (c *Cart) Remove(itemID string) (models.CartLine, bool) {
	for i, l := range c.lines {
		if l.Item.ID == itemID {
			c.lines = append(c.lines[:i:i], c.lines[i+1:]...)
			return l, true
		}
	}
	return models.CartLine{}, false
}

// RemoveLine drops the line for the same item bound to the same offer. A line
// re-added with another offer is kept.
func (c *Cart) RemoveLine(line models.CartLine) bool {
	for i, l := range c.lines {
		if l.Item.ID == line.Item.ID && l.CenterOfferIndex == line.CenterOfferIndex {
			c.lines = append(c.lines[:i:i], c.lines[i+1:]...)
			return true
		}
	}
	return false
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.lines = nil
}

// Lines returns a copy of the lines.
func (c *Cart) Lines() []models.CartLine {
	return models.CloneLines(c.lines)
}

// Len returns the number of lines.
func (c *Cart) Len() int {
	return len(c.lines)
}

// Subtotal sums the selected offer prices.
func (c *Cart) Subtotal() int64 {
	return Subtotal(c.lines)
}
