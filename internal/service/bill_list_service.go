// Package service implements the bill listing pipeline and the new-bill
// submission flow.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/billed-app/billed-server/internal/domain/entity"
	"github.com/billed-app/billed-server/internal/format"
	"go.uber.org/zap"
)

// BillReader is the query half of the document store contract.
type BillReader interface {
	GetAll(ctx context.Context) ([]*entity.Bill, error)
}

// Identity resolves the authenticated user for one request.
type Identity interface {
	CurrentUserEmail(ctx context.Context) string
}

// BillListService fetches all bill records, applies display formatting and
// per-user filtering.
type BillListService struct {
	bills  BillReader
	logger *zap.Logger
}

// NewBillListService creates a new bill list service. A nil reader is
// refused up front instead of surfacing as undefined behavior later.
func NewBillListService(bills BillReader, logger *zap.Logger) (*BillListService, error) {
	if bills == nil {
		return nil, errors.New("bill list service requires a bill reader")
	}
	return &BillListService{
		bills:  bills,
		logger: logger,
	}, nil
}

// ListBillsForCurrentUser returns the display-ready bills owned by the
// identity's user. Filtering happens here, client-side: the store query
// fetches every bill document. Ordering is not guaranteed; sorting is a
// presentation concern applied after retrieval.
//
// A store failure is returned as an error. A record with an unparsable
// date is never dropped: it falls back to the raw date string, with the
// failure logged for diagnostics.
func (s *BillListService) ListBillsForCurrentUser(ctx context.Context, identity Identity) ([]entity.DisplayBill, error) {
	email := identity.CurrentUserEmail(ctx)

	bills, err := s.bills.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list bills: %w", err)
	}

	display := make([]entity.DisplayBill, 0, len(bills))
	for _, bill := range bills {
		if bill.Email != email {
			continue
		}

		d, err := toDisplayBill(bill)
		if err != nil {
			// Corrupted data in one record must not abort the whole
			// listing: keep the raw date and still format the status.
			s.logger.Warn("Unparsable bill date, keeping raw value",
				zap.String("bill_id", bill.ID),
				zap.String("date", bill.Date),
				zap.Error(err))
			d = rawDisplayBill(bill)
		}
		display = append(display, d)
	}

	s.logger.Debug("Listed bills for user",
		zap.String("email", email),
		zap.Int("count", len(display)))

	return display, nil
}

// toDisplayBill formats one record, failing when its date cannot be parsed.
func toDisplayBill(bill *entity.Bill) (entity.DisplayBill, error) {
	date, err := format.FormatDate(bill.Date)
	if err != nil {
		return entity.DisplayBill{}, err
	}
	return entity.DisplayBill{
		Bill:          *bill,
		DisplayDate:   date,
		DisplayStatus: format.FormatStatus(bill.Status),
	}, nil
}

// rawDisplayBill is the fallback for a record whose date did not parse.
func rawDisplayBill(bill *entity.Bill) entity.DisplayBill {
	return entity.DisplayBill{
		Bill:          *bill,
		DisplayDate:   bill.Date,
		DisplayStatus: format.FormatStatus(bill.Status),
	}
}
