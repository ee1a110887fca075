package service

import (
	"bytes"
	"context"
	"testing"

	"github.com/billed-app/billed-server/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

func TestExportBills(t *testing.T) {
	reader := &fakeBillReader{bills: []*entity.Bill{
		billFixture("mel@gmail.com", "2004-04-04", entity.StatusPending),
		billFixture("other@corp.fr", "2021-03-03", entity.StatusAccepted),
		billFixture("mel@gmail.com", "2021-05-06", entity.StatusAccepted),
	}}

	list, err := NewBillListService(reader, zap.NewNop())
	require.NoError(t, err)
	svc := NewExportService(list, zap.NewNop())

	data, err := svc.ExportBills(context.Background(), staticIdentity("mel@gmail.com"))
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(exportSheet)
	require.NoError(t, err)
	// Header plus one row per owned bill; the other user's bill is absent.
	require.Len(t, rows, 3)
	assert.Equal(t, "Type", rows[0][0])
	assert.Equal(t, "4 Avr. 04", rows[1][2])
	assert.Equal(t, "En attente", rows[1][6])
	assert.Equal(t, "Accepté", rows[2][6])
}

func TestExportBillsStoreFailure(t *testing.T) {
	list, err := NewBillListService(&fakeBillReader{err: assert.AnError}, zap.NewNop())
	require.NoError(t, err)
	svc := NewExportService(list, zap.NewNop())

	_, err = svc.ExportBills(context.Background(), staticIdentity("mel@gmail.com"))
	assert.Error(t, err)
}
