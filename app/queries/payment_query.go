package queries

import (
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/sajankarki/sewabazar-backend/app/models"
)

type PaymentQueries struct {
	DB *sql.DB
}

const paymentColumns = `id, booking_id, transaction_uuid, product_code, base_amount, tax_amount, total_amount, signature, status, ref_id, created_at, updated_at`

func (q *PaymentQueries) CreatePaymentTransaction(t *models.PaymentTransaction) error {
	query := `INSERT INTO payment_transactions (` + paymentColumns + `)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err := q.DB.Exec(query,
		t.ID, t.BookingID, t.TransactionUUID, t.ProductCode,
		t.BaseAmount, t.TaxAmount, t.TotalAmount, t.Signature,
		t.Status, t.RefID, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		return errors.New("unable to create payment transaction")
	}
	return nil
}

func (q *PaymentQueries) GetByTransactionUUID(transactionUUID string) (models.PaymentTransaction, error) {
	t := models.PaymentTransaction{}
	query := `SELECT ` + paymentColumns + ` FROM payment_transactions WHERE transaction_uuid = $1`

	err := q.DB.QueryRow(query, transactionUUID).Scan(
		&t.ID, &t.BookingID, &t.TransactionUUID, &t.ProductCode,
		&t.BaseAmount, &t.TaxAmount, &t.TotalAmount, &t.Signature,
		&t.Status, &t.RefID, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return t, models.ErrPaymentNotFound
		}
		return t, errors.New("unable to get payment transaction")
	}
	return t, nil
}

func (q *PaymentQueries) GetLatestByBookingID(bookingID uuid.UUID) (models.PaymentTransaction, error) {
	t := models.PaymentTransaction{}
	query := `SELECT ` + paymentColumns + ` FROM payment_transactions WHERE booking_id = $1 ORDER BY created_at DESC LIMIT 1`

	err := q.DB.QueryRow(query, bookingID).Scan(
		&t.ID, &t.BookingID, &t.TransactionUUID, &t.ProductCode,
		&t.BaseAmount, &t.TaxAmount, &t.TotalAmount, &t.Signature,
		&t.Status, &t.RefID, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return t, models.ErrPaymentNotFound
		}
		return t, errors.New("unable to get payment transaction")
	}
	return t, nil
}

// UpdatePaymentStatus records the status confirmed by the gateway's status
// endpoint; once a terminal status lands here the row is never touched again.
func (q *PaymentQueries) UpdatePaymentStatus(transactionUUID, status, refID string) error {
	query := `UPDATE payment_transactions SET status = $2, ref_id = $3, updated_at = now() WHERE transaction_uuid = $1`

	res, err := q.DB.Exec(query, transactionUUID, status, refID)
	if err != nil {
		return errors.New("unable to update payment transaction")
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return errors.New("unable to update payment transaction")
	}
	if rows == 0 {
		return models.ErrPaymentNotFound
	}
	return nil
}
