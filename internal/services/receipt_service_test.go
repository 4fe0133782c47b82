package services

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-redis/redismock/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReceiptService_GenerateReceipt(t *testing.T) {
	t.Run("builds a QR receipt from the payment row", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		redisClient, redisMock := redismock.NewClientMock()
		service := NewReceiptService(db, redisClient)

		redisMock.ExpectGet("receipt:pay-1").RedisNil()

		paymentDate := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
		mock.ExpectQuery("SELECT p.id, p.tenant_id, p.amount, p.payment_date, p.payment_period, p.receipt_number, t.full_name, t.currency").
			WithArgs("pay-1").
			WillReturnRows(sqlmock.NewRows([]string{"id", "tenant_id", "amount", "payment_date", "payment_period", "receipt_number", "full_name", "currency"}).
				AddRow("pay-1", "tenant-1", 500.0, paymentDate, "2026-08", "0042", "Jane Nakato", "UGX"))

		redisMock.Regexp().ExpectSet("receipt:pay-1", `.*`, 10*time.Minute).SetVal("OK")

		receipt, err := service.GenerateReceipt(context.Background(), "pay-1")
		require.NoError(t, err)

		assert.Equal(t, "0042", receipt.ReceiptNumber)
		assert.Equal(t, "Jane Nakato", receipt.TenantName)
		assert.Equal(t, "UGX", receipt.Currency)
		assert.Equal(t, "2026-08-01", receipt.PaymentDate)
		assert.NotEmpty(t, receipt.QRImage)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown payment", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		redisClient, redisMock := redismock.NewClientMock()
		service := NewReceiptService(db, redisClient)

		redisMock.ExpectGet("receipt:nope").RedisNil()
		mock.ExpectQuery("SELECT p.id, p.tenant_id").
			WithArgs("nope").
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err = service.GenerateReceipt(context.Background(), "nope")
		assert.ErrorIs(t, err, sql.ErrNoRows)
	})
}
