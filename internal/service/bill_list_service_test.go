package service

import (
	"context"
	"errors"
	"testing"

	"github.com/billed-app/billed-server/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeBillReader struct {
	bills []*entity.Bill
	err   error
}

func (f *fakeBillReader) GetAll(context.Context) ([]*entity.Bill, error) {
	return f.bills, f.err
}

type staticIdentity string

func (s staticIdentity) CurrentUserEmail(context.Context) string { return string(s) }

func billFixture(email, date, status string) *entity.Bill {
	return &entity.Bill{
		ID:     "b-" + email + "-" + date,
		Email:  email,
		Type:   entity.TypeTransports,
		Name:   "Vol Paris Londres",
		Amount: 348,
		Date:   date,
		Status: status,
	}
}

func TestListBillsFiltersByCurrentUser(t *testing.T) {
	reader := &fakeBillReader{bills: []*entity.Bill{
		billFixture("mel@gmail.com", "2021-10-10", entity.StatusPending),
		billFixture("other@corp.fr", "2021-10-11", entity.StatusAccepted),
		billFixture("mel@gmail.com", "2021-10-12", entity.StatusRefused),
		billFixture("third@corp.fr", "2021-10-13", entity.StatusPending),
	}}

	svc, err := NewBillListService(reader, zap.NewNop())
	require.NoError(t, err)

	bills, err := svc.ListBillsForCurrentUser(context.Background(), staticIdentity("mel@gmail.com"))
	require.NoError(t, err)
	require.Len(t, bills, 2)
	for _, b := range bills {
		assert.Equal(t, "mel@gmail.com", b.Email)
	}
}

func TestListBillsFormatsDateAndStatus(t *testing.T) {
	reader := &fakeBillReader{bills: []*entity.Bill{
		billFixture("mel@gmail.com", "2004-04-04", entity.StatusPending),
	}}

	svc, err := NewBillListService(reader, zap.NewNop())
	require.NoError(t, err)

	bills, err := svc.ListBillsForCurrentUser(context.Background(), staticIdentity("mel@gmail.com"))
	require.NoError(t, err)
	require.Len(t, bills, 1)
	assert.Equal(t, "4 Avr. 04", bills[0].DisplayDate)
	assert.Equal(t, "En attente", bills[0].DisplayStatus)
	// The raw storage form stays on the record untouched.
	assert.Equal(t, "2004-04-04", bills[0].Date)
}

func TestListBillsKeepsRecordWithCorruptedDate(t *testing.T) {
	reader := &fakeBillReader{bills: []*entity.Bill{
		billFixture("mel@gmail.com", "not-a-date", entity.StatusRefused),
		billFixture("mel@gmail.com", "2021-01-05", entity.StatusAccepted),
	}}

	svc, err := NewBillListService(reader, zap.NewNop())
	require.NoError(t, err)

	bills, err := svc.ListBillsForCurrentUser(context.Background(), staticIdentity("mel@gmail.com"))
	require.NoError(t, err)
	require.Len(t, bills, 2, "a corrupted record must never be dropped")

	assert.Equal(t, "not-a-date", bills[0].DisplayDate, "raw date preserved")
	assert.Equal(t, "Refusé", bills[0].DisplayStatus, "status still formatted")
	assert.Equal(t, "5 Jan. 21", bills[1].DisplayDate)
}

func TestListBillsStoreFailure(t *testing.T) {
	storeErr := errors.New("store unavailable")
	svc, err := NewBillListService(&fakeBillReader{err: storeErr}, zap.NewNop())
	require.NoError(t, err)

	bills, err := svc.ListBillsForCurrentUser(context.Background(), staticIdentity("mel@gmail.com"))
	require.Error(t, err)
	assert.ErrorIs(t, err, storeErr)
	assert.Nil(t, bills)
}

func TestListBillsEmptyStoreIsNotAnError(t *testing.T) {
	svc, err := NewBillListService(&fakeBillReader{}, zap.NewNop())
	require.NoError(t, err)

	bills, err := svc.ListBillsForCurrentUser(context.Background(), staticIdentity("mel@gmail.com"))
	require.NoError(t, err)
	assert.Empty(t, bills)
}

func TestNewBillListServiceRequiresReader(t *testing.T) {
	_, err := NewBillListService(nil, zap.NewNop())
	assert.Error(t, err)
}

func TestListBillsNoSessionUser(t *testing.T) {
	reader := &fakeBillReader{bills: []*entity.Bill{
		billFixture("mel@gmail.com", "2021-10-10", entity.StatusPending),
	}}

	svc, err := NewBillListService(reader, zap.NewNop())
	require.NoError(t, err)

	// An anonymous session resolves to "" and matches no bill.
	bills, err := svc.ListBillsForCurrentUser(context.Background(), staticIdentity(""))
	require.NoError(t, err)
	assert.Empty(t, bills)
}
