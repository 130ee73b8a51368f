package controllers

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sajankarki/sewabazar-backend/app/models"
	"github.com/sajankarki/sewabazar-backend/app/queries"
	"github.com/sajankarki/sewabazar-backend/pkg/database"
	"github.com/sajankarki/sewabazar-backend/pkg/utils"
)

func esewaTaxRate() float64 {
	if env := os.Getenv("ESEWA_TAX_RATE"); env != "" {
		if v, err := strconv.ParseFloat(env, 64); err == nil && v >= 0 {
			return v
		}
	}
	return 0.13
}

// StartCheckout begins one payment attempt for a booking: it moves the
// payment status to pending, records the transaction and returns the signed
// gateway form for the client to POST. The PAYMENT_INITIATED transition is
// the double-submission guard: a booking with an attempt already in flight,
// or already paid, is refused here.
func StartCheckout(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	userID, err := utils.ExtractUserIDFromHeader(authHeader)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	payload := &models.CheckoutRequest{}
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validate.Struct(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	bookingID, err := uuid.Parse(payload.BookingID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid booking_id"})
	}

	bookingQueries := queries.BookingQueries{DB: database.DB}
	booking, err := bookingQueries.GetBookingByID(bookingID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "booking not found"})
	}
	if booking.UserID != userID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "not your booking"})
	}

	updated, err := models.ApplyBookingEvent(booking, models.EventPaymentInitiated)
	if err != nil {
		switch booking.PaymentStatus {
		case models.PaymentStatusPaid:
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": models.ErrAlreadyPaid.Error()})
		case models.PaymentStatusPending:
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": models.ErrPaymentInProgress.Error()})
		default:
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
		}
	}

	transactionUUID, err := utils.GenerateTransactionUUID()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to generate transaction id"})
	}

	taxAmount := booking.Amount * esewaTaxRate()
	form, err := utils.BuildPaymentForm(
		booking.Amount, taxAmount, 0, 0,
		transactionUUID,
		os.Getenv("ESEWA_SUCCESS_URL"),
		os.Getenv("ESEWA_FAILURE_URL"),
	)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	now := time.Now()
	txn := &models.PaymentTransaction{
		ID:              uuid.New(),
		BookingID:       booking.ID,
		TransactionUUID: transactionUUID,
		ProductCode:     form.ProductCode,
		BaseAmount:      booking.Amount,
		TaxAmount:       taxAmount,
		TotalAmount:     booking.Amount + taxAmount,
		Signature:       form.Signature,
		Status:          models.GatewayStatusPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	paymentQueries := queries.PaymentQueries{DB: database.DB}
	if err := paymentQueries.CreatePaymentTransaction(txn); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to create payment transaction"})
	}
	if err := bookingQueries.UpdateBookingState(&updated); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to update booking"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"transaction_uuid": transactionUUID,
		"payment_form":     form,
	})
}

// VerifyPayment handles the return from the gateway redirect. The Base64
// JSON in the data parameter is decoded and its signature checked, but the
// redirect is never what upgrades a booking to paid: the authoritative
// answer always comes from the gateway's status endpoint. An unverifiable
// signature only downgrades the response to verified=false.
func VerifyPayment(c *fiber.Ctx) error {
	data := c.Query("data")
	if data == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "missing data parameter"})
	}

	fields, err := utils.DecodeCallbackData(data)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid callback payload"})
	}

	transactionUUID := fields["transaction_uuid"]
	if transactionUUID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "callback payload missing transaction_uuid"})
	}

	verified := utils.VerifySignature(fields, fields["signature"], os.Getenv("ESEWA_SECRET_KEY"))
	if !verified {
		// Unverified is not fatal: the status check below is what decides,
		// the redirect payload never is.
		log.Printf("event=payment_callback_unverified transaction_uuid=%s err=%s", transactionUUID, models.ErrSignatureMismatch)
	}

	return finalizePayment(c, transactionUUID, verified)
}

// PaymentStatus re-runs the authoritative status check for a known
// transaction. Idempotent; used to reconcile attempts whose redirect was
// lost or whose earlier check was unreachable.
func PaymentStatus(c *fiber.Ctx) error {
	transactionUUID := c.Params("transaction_uuid")
	if transactionUUID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "missing transaction_uuid"})
	}
	return finalizePayment(c, transactionUUID, true)
}

func finalizePayment(c *fiber.Ctx, transactionUUID string, verified bool) error {
	paymentQueries := queries.PaymentQueries{DB: database.DB}
	txn, err := paymentQueries.GetByTransactionUUID(transactionUUID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "payment transaction not found"})
	}

	bookingQueries := queries.BookingQueries{DB: database.DB}
	booking, err := bookingQueries.GetBookingByID(txn.BookingID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "booking not found"})
	}

	result, err := utils.CheckPaymentStatus(txn.ProductCode, txn.TransactionUUID, txn.TotalAmount)
	if err != nil {
		// Gateway unreachable: last known state stands, the caller retries
		// the same transaction later.
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error":            models.ErrGatewayUnreachable.Error(),
			"retryable":        true,
			"verified":         verified,
			"transaction_uuid": txn.TransactionUUID,
		})
	}

	event, err := models.ResolvePaymentEvent(result, txn.TotalAmount)
	if err != nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error":            err.Error(),
			"gateway_status":   result.Status,
			"verified":         verified,
			"transaction_uuid": txn.TransactionUUID,
		})
	}

	if event == "" {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"message":          "payment pending verification",
			"gateway_status":   result.Status,
			"payment_status":   booking.PaymentStatus,
			"booking_status":   booking.BookingStatus,
			"verified":         verified,
			"transaction_uuid": txn.TransactionUUID,
		})
	}

	updated, err := models.ApplyBookingEvent(booking, event)
	if err != nil {
		// A repeated check on an already-settled attempt is not an error.
		settled := (event == models.EventPaymentConfirmed && booking.PaymentStatus == models.PaymentStatusPaid) ||
			(event == models.EventPaymentFailed && booking.PaymentStatus == models.PaymentStatusUnpaid)
		if settled {
			return c.Status(fiber.StatusOK).JSON(fiber.Map{
				"message":          "payment already settled",
				"gateway_status":   result.Status,
				"payment_status":   booking.PaymentStatus,
				"booking_status":   booking.BookingStatus,
				"verified":         verified,
				"transaction_uuid": txn.TransactionUUID,
			})
		}
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	}

	if err := paymentQueries.UpdatePaymentStatus(txn.TransactionUUID, result.Status, result.RefID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to update payment transaction"})
	}
	if err := bookingQueries.UpdateBookingState(&updated); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to update booking"})
	}

	message := "payment failed, try again with a different method"
	if event == models.EventPaymentConfirmed {
		// Payment and acceptance are orthogonal: the booking stays pending
		// until the provider accepts.
		message = "payment confirmed"
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message":          message,
		"gateway_status":   result.Status,
		"ref_id":           result.RefID,
		"payment_status":   updated.PaymentStatus,
		"booking_status":   updated.BookingStatus,
		"verified":         verified,
		"transaction_uuid": txn.TransactionUUID,
	})
}
