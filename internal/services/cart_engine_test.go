package services_test

import (
	"testing"

	"lablink/internal/models"
	"lablink/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartAddReplacesInPlace(t *testing.T) {
	cart := services.NewCart(nil)
	cbc := seedItem(t, "t1")
	hba1c := seedItem(t, "t2")

	assert.False(t, cart.Add(cbc, 0, nil))
	assert.False(t, cart.Add(hba1c, 0, nil))
	assert.True(t, cart.Add(cbc, 1, nil))

	lines := cart.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, "t1", lines[0].LineID())
	assert.Equal(t, 1, lines[0].CenterOfferIndex)
	assert.Equal(t, "Lucid Diagnostics", lines[0].SelectedCenter.CenterName)
	assert.Equal(t, int64(300), lines[0].SelectedCenter.Price)
	assert.Equal(t, "t2", lines[1].LineID())
	assert.Equal(t, int64(700), cart.Subtotal())
}

func TestCartDedupAcrossManyAdds(t *testing.T) {
	cart := services.NewCart(nil)
	item := seedItem(t, "t1")
	for i := 0; i < 10; i++ {
		cart.Add(item, i%len(item.CenterOffers), nil)
	}
	assert.Equal(t, 1, cart.Len())
}

func TestCartAppointment(t *testing.T) {
	cart := services.NewCart(nil)
	cart.Add(seedItem(t, "d1"), 0, &models.Appointment{Date: "2026-10-20", Slot: "10:30 AM"})

	l := cart.Lines()[0]
	assert.Equal(t, "2026-10-20", l.AppointmentDate)
	assert.Equal(t, "10:30 AM", l.AppointmentSlot)
}

func TestCartAddInvalidOfferPanics(t *testing.T) {
	cart := services.NewCart(nil)
	item := seedItem(t, "s3")
	assert.Panics(t, func() { cart.Add(item, len(item.CenterOffers), nil) })
	assert.Panics(t, func() { cart.Add(item, -1, nil) })
	assert.Equal(t, 0, cart.Len())
}

func TestCartRemoveAndClear(t *testing.T) {
	cart := services.NewCart(nil)
	cart.Add(seedItem(t, "t1"), 0, nil)
	cart.Add(seedItem(t, "t2"), 0, nil)

	removed, ok := cart.Remove("t1")
	assert.True(t, ok)
	assert.Equal(t, "t1", removed.LineID())
	_, ok = cart.Remove("t1")
	assert.False(t, ok)
	assert.Equal(t, 1, cart.Len())

	cart.Clear()
	assert.Equal(t, 0, cart.Len())
	assert.Empty(t, cart.Lines())
}

func TestCartLinesAreCopies(t *testing.T) {
	cart := services.NewCart(nil)
	cart.Add(seedItem(t, "t1"), 0, nil)

	lines := cart.Lines()
	lines[0].Item.Tags[0] = "mutated"
	lines[0].SelectedCenter.Price = 1

	again := cart.Lines()
	assert.Equal(t, "Popular", again[0].Item.Tags[0])
	assert.Equal(t, int64(350), again[0].SelectedCenter.Price)
}
