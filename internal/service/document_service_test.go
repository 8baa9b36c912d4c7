package service

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nurpe/tourbook/internal/model"
)

func TestExportReservations(t *testing.T) {
	reservations, _ := newTestReservationService()
	excel := &fakeSpreadsheet{}
	svc := NewDocumentService(reservations, excel, &fakeVoucher{})
	ctx := context.Background()

	_, err := reservations.Create(ctx, validInput(nil), adminPrincipal)
	require.NoError(t, err)

	result, err := svc.ExportReservations(ctx, adminPrincipal)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(result.FileName, "reservations-"))
	assert.True(t, strings.HasSuffix(result.FileName, ".xlsx"))
	require.Len(t, excel.reports, 1)
	assert.Len(t, excel.reports[0].Reservations, 1)

	_, err = svc.ExportReservations(ctx, model.Principal{UserID: uuid.New(), Role: model.RoleUser})
	assert.ErrorIs(t, err, ErrPermissionDenied)
}

func TestVoucher(t *testing.T) {
	reservations, _ := newTestReservationService()
	pdf := &fakeVoucher{}
	svc := NewDocumentService(reservations, &fakeSpreadsheet{}, pdf)
	owner := model.Principal{UserID: uuid.New(), Role: model.RoleUser}
	ctx := context.Background()

	created, err := reservations.Create(ctx, validInput(&owner.UserID), adminPrincipal)
	require.NoError(t, err)

	result, err := svc.Voucher(ctx, created.ID, owner)
	require.NoError(t, err)
	assert.Equal(t, "voucher-Gobi-5-days-"+created.ID.String()[:8]+".pdf", result.FileName)
	require.Len(t, pdf.vouchers, 1)

	_, err = svc.Voucher(ctx, created.ID, model.Principal{UserID: uuid.New(), Role: model.RoleUser})
	assert.ErrorIs(t, err, ErrPermissionDenied)
}
