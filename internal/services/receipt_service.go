package services

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image/png"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/skip2/go-qrcode"

	"github.com/rentbooks/backend/internal/config"
)

// ReceiptService produces QR-encoded receipt payloads for recorded
// payments. The rendered statement itself lives outside this service; the
// QR carries enough for a reader to verify the payment against the ledger.
type ReceiptService struct {
	db    *sql.DB
	redis *redis.Client
	cfg   *config.LedgerConfig
}

func NewReceiptService(db *sql.DB, redisClient *redis.Client) *ReceiptService {
	return &ReceiptService{
		db:    db,
		redis: redisClient,
		cfg:   config.LoadLedgerConfig(),
	}
}

// Receipt is the QR payload plus its rendered image.
type Receipt struct {
	ReceiptNumber string  `json:"receiptNumber"`
	PaymentID     string  `json:"paymentId"`
	TenantID      string  `json:"tenantId"`
	TenantName    string  `json:"tenantName"`
	Amount        float64 `json:"amount"`
	Currency      string  `json:"currency"`
	PaymentDate   string  `json:"paymentDate"`
	PaymentPeriod string  `json:"paymentPeriod"`
	QRImage       string  `json:"qrImage"` // base64 PNG
}

// GenerateReceipt builds the receipt payload for a payment, serving from the
// redis cache when the payment was requested recently.
func (s *ReceiptService) GenerateReceipt(ctx context.Context, paymentID string) (*Receipt, error) {
	key := fmt.Sprintf("receipt:%s", paymentID)

	if s.redis != nil {
		if data, err := s.redis.Get(ctx, key).Bytes(); err == nil {
			var receipt Receipt
			if json.Unmarshal(data, &receipt) == nil {
				return &receipt, nil
			}
		}
	}

	var receipt Receipt
	var paymentDate time.Time
	err := s.db.QueryRow(`
		SELECT p.id, p.tenant_id, p.amount, p.payment_date, p.payment_period, p.receipt_number, t.full_name, t.currency
		FROM payments p
		JOIN tenants t ON t.id = p.tenant_id
		WHERE p.id = $1`, paymentID).
		Scan(&receipt.PaymentID, &receipt.TenantID, &receipt.Amount, &paymentDate,
			&receipt.PaymentPeriod, &receipt.ReceiptNumber, &receipt.TenantName, &receipt.Currency)
	if err != nil {
		return nil, err
	}
	receipt.PaymentDate = paymentDate.Format("2006-01-02")

	payload, err := json.Marshal(map[string]any{
		"receiptNumber": receipt.ReceiptNumber,
		"paymentId":     receipt.PaymentID,
		"tenantId":      receipt.TenantID,
		"amount":        receipt.Amount,
		"currency":      receipt.Currency,
		"date":          receipt.PaymentDate,
	})
	if err != nil {
		return nil, err
	}

	qr, err := qrcode.New(base64.URLEncoding.EncodeToString(payload), qrcode.Medium)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, qr.Image(256)); err != nil {
		return nil, err
	}
	receipt.QRImage = base64.StdEncoding.EncodeToString(buf.Bytes())

	if s.redis != nil {
		if data, err := json.Marshal(receipt); err == nil {
			s.redis.Set(ctx, key, data, s.cfg.ReceiptCacheTTL)
		}
	}

	return &receipt, nil
}
