package queries

import (
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/sajankarki/sewabazar-backend/app/models"
)

type BookingQueries struct {
	DB *sql.DB
}

const bookingColumns = `id, user_id, provider_id, service_id, scheduled_date, booked_at, booking_status, payment_status, amount, address, city, lat, lon, created_at, updated_at`

func scanBooking(row interface{ Scan(...interface{}) error }) (models.Booking, error) {
	b := models.Booking{}
	err := row.Scan(
		&b.ID,
		&b.UserID,
		&b.ProviderID,
		&b.ServiceID,
		&b.ScheduledDate,
		&b.BookedAt,
		&b.BookingStatus,
		&b.PaymentStatus,
		&b.Amount,
		&b.Address,
		&b.City,
		&b.Lat,
		&b.Lon,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	return b, err
}

func (q *BookingQueries) CreateBooking(b *models.Booking) error {
	query := `INSERT INTO bookings (` + bookingColumns + `)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`

	_, err := q.DB.Exec(query,
		b.ID, b.UserID, b.ProviderID, b.ServiceID, b.ScheduledDate, b.BookedAt,
		b.BookingStatus, b.PaymentStatus, b.Amount, b.Address, b.City, b.Lat, b.Lon,
		b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		return errors.New("unable to create booking")
	}
	return nil
}

func (q *BookingQueries) GetBookingByID(id uuid.UUID) (models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`
	b, err := scanBooking(q.DB.QueryRow(query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return b, models.ErrBookingNotFound
		}
		return b, errors.New("unable to get booking")
	}
	return b, nil
}

func (q *BookingQueries) ListBookingsByUser(userID uuid.UUID) ([]models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE user_id = $1 ORDER BY booked_at DESC`
	return q.listBookings(query, userID)
}

func (q *BookingQueries) ListBookingsByProvider(providerID uuid.UUID) ([]models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE provider_id = $1 ORDER BY booked_at DESC`
	return q.listBookings(query, providerID)
}

func (q *BookingQueries) listBookings(query string, arg interface{}) ([]models.Booking, error) {
	rows, err := q.DB.Query(query, arg)
	if err != nil {
		return nil, errors.New("unable to list bookings")
	}
	defer rows.Close()

	bookings := []models.Booking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, errors.New("unable to scan booking")
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.New("unable to list bookings")
	}
	return bookings, nil
}

// UpdateBookingState persists the fields the state machine and provider
// assignment are allowed to touch. Everything else on the row is immutable
// after creation.
func (q *BookingQueries) UpdateBookingState(b *models.Booking) error {
	query := `UPDATE bookings SET booking_status = $2, payment_status = $3, provider_id = $4, updated_at = now() WHERE id = $1`

	res, err := q.DB.Exec(query, b.ID, b.BookingStatus, b.PaymentStatus, b.ProviderID)
	if err != nil {
		return errors.New("unable to update booking")
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return errors.New("unable to update booking")
	}
	if rows == 0 {
		return models.ErrBookingNotFound
	}
	return nil
}
