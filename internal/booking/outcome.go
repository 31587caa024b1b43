package booking

import (
	"fmt"
	"strconv"
	"strings"

	"go-gin-cinema-booking/internal/model"
	apperrors "go-gin-cinema-booking/pkg/app_errors"
)

// Kind 訂位結果種類
type Kind int

const (
	KindFailed Kind = iota
	KindConfirmed
	KindPartialFailure
)

func (k Kind) String() string {
	switch k {
	case KindConfirmed:
		return "confirmed"
	case KindPartialFailure:
		return "partial_failure"
	default:
		return "failed"
	}
}

// Result is the tagged outcome of one submission. TicketID is set only for
// KindConfirmed; the unavailable lists only for KindPartialFailure.
type Result struct {
	Kind              Kind
	TicketID          string
	UnavailableSeats  []model.UnavailableSeat
	UnavailableCombos []model.UnavailableCombo
	Err               error
}

// Classify maps a sink response onto a Result. A success code carrying any
// unavailable item is a partial failure even when a ticket id is present.
func Classify(resp *model.BookingResponse, err error) Result {
	if err != nil {
		return Result{Kind: KindFailed, Err: err}
	}
	if resp == nil {
		return Result{Kind: KindFailed, Err: apperrors.ErrInternalServerError}
	}
	if resp.Code != model.BookingCodeSuccess {
		return Result{Kind: KindFailed, Err: fmt.Errorf("%w: %s", apperrors.ErrBookingRejected, resp.Message)}
	}

	if len(resp.UnavailableSeats) > 0 || len(resp.UnavailableCombos) > 0 {
		return Result{
			Kind:              KindPartialFailure,
			UnavailableSeats:  append([]model.UnavailableSeat(nil), resp.UnavailableSeats...),
			UnavailableCombos: append([]model.UnavailableCombo(nil), resp.UnavailableCombos...),
		}
	}

	// success 但沒有票號，視為失敗
	if resp.TicketID == nil || *resp.TicketID == "" {
		return Result{Kind: KindFailed, Err: fmt.Errorf("%w: missing ticket id", apperrors.ErrBookingRejected)}
	}
	return Result{Kind: KindConfirmed, TicketID: *resp.TicketID}
}

// Labeler 回應缺少顯示資料時，由本地座位圖與套餐清單補上
type Labeler interface {
	SeatLabel(seatID int) (string, bool)
	ComboName(comboID int) (string, bool)
}

// Message 給使用者看的訊息
func (r Result) Message(l Labeler) string {
	switch r.Kind {
	case KindConfirmed:
		return "Booking confirmed. Ticket " + r.TicketID
	case KindPartialFailure:
		return UnavailableMessage(r.UnavailableSeats, r.UnavailableCombos, l)
	default:
		return "Booking failed, please try again."
	}
}

// UnavailableMessage renders seats as row+column and combos by name, each
// category comma joined, in one message naming both categories.
func UnavailableMessage(seats []model.UnavailableSeat, combos []model.UnavailableCombo, l Labeler) string {
	parts := make([]string, 0, 2)

	if len(seats) > 0 {
		labels := make([]string, 0, len(seats))
		for _, s := range seats {
			labels = append(labels, seatLabel(s, l))
		}
		parts = append(parts, "Seats no longer available: "+strings.Join(labels, ", "))
	}

	if len(combos) > 0 {
		names := make([]string, 0, len(combos))
		for _, c := range combos {
			names = append(names, comboName(c, l))
		}
		parts = append(parts, "Combos out of stock: "+strings.Join(names, ", "))
	}

	return strings.Join(parts, ". ")
}

func seatLabel(s model.UnavailableSeat, l Labeler) string {
	if s.Row != "" && s.Column > 0 {
		return s.Row + strconv.Itoa(s.Column)
	}
	if l != nil {
		if label, ok := l.SeatLabel(s.SeatID); ok {
			return label
		}
	}
	return "#" + strconv.Itoa(s.SeatID)
}

func comboName(c model.UnavailableCombo, l Labeler) string {
	if c.Name != "" {
		return c.Name
	}
	if l != nil {
		if name, ok := l.ComboName(c.ComboID); ok {
			return name
		}
	}
	return "#" + strconv.Itoa(c.ComboID)
}
