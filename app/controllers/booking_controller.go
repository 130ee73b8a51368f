package controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sajankarki/sewabazar-backend/app/models"
	"github.com/sajankarki/sewabazar-backend/app/queries"
	"github.com/sajankarki/sewabazar-backend/pkg/database"
	"github.com/sajankarki/sewabazar-backend/pkg/utils"
)

func CreateBooking(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	userID, err := utils.ExtractUserIDFromHeader(authHeader)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	payload := &models.CreateBookingRequest{}
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validate.Struct(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	serviceID, err := uuid.Parse(payload.ServiceID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid service_id"})
	}

	scheduledDate, err := time.Parse(time.RFC3339, payload.ScheduledDate)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "scheduled_date must be RFC3339"})
	}
	if !scheduledDate.After(time.Now()) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "scheduled_date must be in the future"})
	}

	serviceQueries := queries.ServiceQueries{DB: database.DB}
	service, err := serviceQueries.GetServiceByID(serviceID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "service not found"})
	}

	providerID := uuid.NullUUID{UUID: service.ProviderID, Valid: true}
	if payload.ProviderID != "" {
		pid, err := uuid.Parse(payload.ProviderID)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid provider_id"})
		}
		providerID = uuid.NullUUID{UUID: pid, Valid: true}
	}

	now := time.Now()
	booking := &models.Booking{
		ID:            uuid.New(),
		UserID:        userID,
		ProviderID:    providerID,
		ServiceID:     serviceID,
		ScheduledDate: scheduledDate,
		BookedAt:      now,
		BookingStatus: models.BookingStatusPending,
		PaymentStatus: models.PaymentStatusUnpaid,
		// Amount is snapshotted from the service price at creation time;
		// later price changes never touch existing bookings.
		Amount:    service.Price,
		Address:   payload.Address,
		City:      payload.City,
		Lat:       payload.Lat,
		Lon:       payload.Lon,
		CreatedAt: now,
		UpdatedAt: now,
	}

	bookingQueries := queries.BookingQueries{DB: database.DB}
	if err := bookingQueries.CreateBooking(booking); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to create booking"})
	}

	return c.Status(fiber.StatusCreated).JSON(models.CreateBookingResponse{
		ID:            booking.ID,
		BookingStatus: booking.BookingStatus,
		PaymentStatus: booking.PaymentStatus,
		Amount:        booking.Amount,
	})
}

func GetBookingByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}

	q := queries.BookingQueries{DB: database.DB}
	booking, err := q.GetBookingByID(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "booking not found"})
	}
	return c.Status(fiber.StatusOK).JSON(booking)
}

func ListUserBookings(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	userID, err := utils.ExtractUserIDFromHeader(authHeader)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	q := queries.BookingQueries{DB: database.DB}
	bookings, err := q.ListBookingsByUser(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to list bookings"})
	}
	return c.Status(fiber.StatusOK).JSON(bookings)
}

func ListProviderBookings(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	providerID, err := utils.ExtractUserIDFromHeader(authHeader)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	q := queries.BookingQueries{DB: database.DB}
	bookings, err := q.ListBookingsByProvider(providerID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to list bookings"})
	}
	return c.Status(fiber.StatusOK).JSON(bookings)
}

func AcceptBooking(c *fiber.Ctx) error {
	return applyProviderEvent(c, models.EventProviderAccept)
}

func RejectBooking(c *fiber.Ctx) error {
	return applyProviderEvent(c, models.EventProviderReject)
}

func CompleteBooking(c *fiber.Ctx) error {
	return applyProviderEvent(c, models.EventProviderComplete)
}

func CancelBooking(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	userID, err := utils.ExtractUserIDFromHeader(authHeader)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}

	q := queries.BookingQueries{DB: database.DB}
	booking, err := q.GetBookingByID(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "booking not found"})
	}
	if booking.UserID != userID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "not your booking"})
	}

	updated, err := models.ApplyBookingEvent(booking, models.EventUserCancel)
	if err != nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	}

	if err := q.UpdateBookingState(&updated); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to update booking"})
	}
	return c.Status(fiber.StatusOK).JSON(updated)
}

// applyProviderEvent runs one provider-side event (accept, reject,
// complete) through the state machine. Accept claims an unassigned booking
// for the calling provider; otherwise only the assigned provider may act.
func applyProviderEvent(c *fiber.Ctx, event models.BookingEvent) error {
	authHeader := c.Get("Authorization")
	providerID, err := utils.ExtractUserIDFromHeader(authHeader)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}
	role, err := utils.ExtractUserRoleFromHeader(authHeader)
	if err != nil || role != "provider" {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "only providers can perform this action"})
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}

	q := queries.BookingQueries{DB: database.DB}
	booking, err := q.GetBookingByID(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "booking not found"})
	}

	if booking.ProviderID.Valid {
		if booking.ProviderID.UUID != providerID {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "booking belongs to another provider"})
		}
	} else if event != models.EventProviderAccept {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "booking has no assigned provider"})
	}

	updated, err := models.ApplyBookingEvent(booking, event)
	if err != nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	}

	if event == models.EventProviderAccept && !updated.ProviderID.Valid {
		updated.ProviderID = uuid.NullUUID{UUID: providerID, Valid: true}
	}

	if err := q.UpdateBookingState(&updated); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to update booking"})
	}
	return c.Status(fiber.StatusOK).JSON(updated)
}
