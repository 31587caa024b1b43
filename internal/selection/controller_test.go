package selection_test

import (
	"math/rand"
	"testing"

	"go-gin-cinema-booking/internal/model"
	"go-gin-cinema-booking/internal/seatmap"
	"go-gin-cinema-booking/internal/selection"
	apperrors "go-gin-cinema-booking/pkg/app_errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildGrid() *seatmap.Grid {
	normal := &model.SeatType{Name: model.SeatTypeNormal, Price: 50000}
	vip := &model.SeatType{Name: model.SeatTypeVIP, Price: 80000}
	sweet := &model.SeatType{Name: model.SeatTypeSweetBox, Price: 120000}

	rows := []model.SeatRow{
		{Row: "A", SeatColumns: []model.SeatColumn{
			{Column: 1, SeatID: 1, SeatType: normal, Status: model.SeatStatusAvailable},
			{Column: 2, SeatID: 2, SeatType: normal, Status: model.SeatStatusAvailable},
			{Column: 3, SeatID: 3, SeatType: normal, Status: model.SeatStatusTaken},
		}},
		{Row: "B", SeatColumns: []model.SeatColumn{
			{Column: 1, SeatID: 11, SeatType: vip, Status: model.SeatStatusAvailable},
			{Column: 2, SeatID: 12, SeatType: vip, Status: model.SeatStatusAvailable},
		}},
		{Row: "C", SeatColumns: []model.SeatColumn{
			{Column: 1, SeatID: 21, SeatType: sweet, Status: model.SeatStatusAvailable},
			{Column: 2, SeatID: 22, SeatType: sweet, Status: model.SeatStatusAvailable},
			{Column: 3, SeatID: 23, SeatType: sweet, Status: model.SeatStatusAvailable},
			{Column: 4, SeatID: 24, SeatType: sweet, Status: model.SeatStatusTaken},
		}},
	}
	return seatmap.BuildGrid(rows, []string{"A", "B", "C"}, 4)
}

func TestController_SubtotalAndLabel(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		c := selection.New(buildGrid())

		c.Toggle(2, "A")
		c.Toggle(11, "B")

		assert.Equal(t, int64(130000), c.SeatSubtotal())
		assert.Equal(t, "A2, B1", c.Label())
		assert.True(t, c.CanProceed())
	})

	t.Run("Success - sweet box pair counted twice", func(t *testing.T) {
		c := selection.New(buildGrid())

		c.ToggleAt("C", 2)

		assert.Equal(t, int64(240000), c.SeatSubtotal())
		assert.Equal(t, "C2, C1", c.Label())
	})

	t.Run("Success - subtotal matches sum after random toggles", func(t *testing.T) {
		c := selection.New(buildGrid())
		r := rand.New(rand.NewSource(42))
		rows := []string{"A", "B", "C"}

		for i := 0; i < 200; i++ {
			c.ToggleAt(rows[r.Intn(len(rows))], r.Intn(5)+1)

			var want int64
			for _, s := range c.SelectedSeats() {
				assert.Equal(t, model.SeatStatusSelected, s.Status)
				want += s.SeatType.Price
			}
			assert.Equal(t, want, c.SeatSubtotal())
		}
	})

	t.Run("Success - toggle twice is identity", func(t *testing.T) {
		c := selection.New(buildGrid())
		c.Toggle(1, "A")
		before := c.Grid().Cells()

		c.ToggleAt("B", 2)
		c.ToggleAt("B", 2)

		assert.Equal(t, before, c.Grid().Cells())
		assert.Equal(t, int64(50000), c.SeatSubtotal())
	})
}

func TestController_Proceed(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		c := selection.New(buildGrid())
		c.Toggle(12, "B")
		c.Toggle(1, "A")

		sel, err := c.Proceed()

		require.NoError(t, err)
		assert.Equal(t, []int{12, 1}, sel.SeatIDs())
		assert.Equal(t, int64(130000), sel.Subtotal)
		assert.Equal(t, "B2, A1", sel.Label)

		// 快照不受之後的操作影響
		c.Toggle(1, "A")
		assert.Equal(t, 2, sel.Len())
	})

	t.Run("Failed - ErrNoSeatsSelected", func(t *testing.T) {
		c := selection.New(buildGrid())

		sel, err := c.Proceed()

		assert.ErrorIs(t, err, apperrors.ErrNoSeatsSelected)
		assert.Equal(t, 0, sel.Len())
		assert.False(t, c.CanProceed())
		assert.Equal(t, "", c.Label())
		assert.Equal(t, int64(0), c.SeatSubtotal())
	})

	t.Run("Success - nil grid behaves as empty", func(t *testing.T) {
		c := selection.New(nil)
		c.ToggleAt("A", 1)
		assert.False(t, c.CanProceed())
	})
}
