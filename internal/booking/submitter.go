package booking

import (
	"context"
	"sync"

	"go-gin-cinema-booking/internal/model"
	apperrors "go-gin-cinema-booking/pkg/app_errors"
)

// Sink 訂位服務
type Sink interface {
	CreateBooking(ctx context.Context, req model.BookingRequest) (*model.BookingResponse, error)
}

// State 單次訂位嘗試的狀態
type State int

const (
	StateIdle State = iota
	StateSubmitting
	StateConfirmed
	StatePartialFailure
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateSubmitting:
		return "submitting"
	case StateConfirmed:
		return "confirmed"
	case StatePartialFailure:
		return "partial_failure"
	case StateFailed:
		return "failed"
	default:
		return "idle"
	}
}

// Submitter guards a booking attempt so only one request is in flight.
// A confirmed booking is terminal; partial and hard failures allow a retry.
type Submitter struct {
	mu    sync.Mutex
	sink  Sink
	state State
	last  Result
}

func NewSubmitter(sink Sink) *Submitter {
	return &Submitter{sink: sink}
}

func (s *Submitter) Submit(ctx context.Context, req model.BookingRequest) (Result, error) {
	s.mu.Lock()
	switch s.state {
	case StateSubmitting:
		s.mu.Unlock()
		return Result{}, apperrors.ErrSubmissionInProgress
	case StateConfirmed:
		s.mu.Unlock()
		return Result{}, apperrors.ErrBookingAlreadyConfirmed
	}
	if len(req.SeatIDs) == 0 {
		s.mu.Unlock()
		return Result{}, apperrors.ErrNoSeatsSelected
	}
	s.state = StateSubmitting
	s.mu.Unlock()

	result := Classify(s.sink.CreateBooking(ctx, req))

	s.mu.Lock()
	defer s.mu.Unlock()
	s.last = result
	switch result.Kind {
	case KindConfirmed:
		s.state = StateConfirmed
	case KindPartialFailure:
		s.state = StatePartialFailure
	default:
		s.state = StateFailed
	}
	return result, nil
}

func (s *Submitter) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Last 最近一次的結果
func (s *Submitter) Last() Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}
