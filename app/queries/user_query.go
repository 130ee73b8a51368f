package queries

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sajankarki/sewabazar-backend/app/models"
)

type UserQueries struct {
	DB *sql.DB
}

func (q *UserQueries) GetUserByID(id uuid.UUID) (models.User, error) {
	user := models.User{}

	query := `SELECT uid, username, user_role, email, phone_number, avatar, password_hash, category, city, rating, created_at, updated_at
			  FROM users WHERE uid = $1`

	err := q.DB.QueryRow(query, id).Scan(
		&user.ID,
		&user.Username,
		&user.UserRole,
		&user.Email,
		&user.PhoneNumber,
		&user.Avatar,
		&user.PasswordHash,
		&user.Category,
		&user.City,
		&user.Rating,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return user, models.ErrUserNotFound
		}
		return user, errors.New("unable to get user, DB error")
	}

	return user, nil
}

func (q *UserQueries) GetUserByEmail(email string) (models.User, error) {
	user := models.User{}

	query := `SELECT uid, username, user_role, email, password_hash, created_at, updated_at
			  FROM users WHERE email = $1`

	err := q.DB.QueryRow(query, email).Scan(
		&user.ID,
		&user.Username,
		&user.UserRole,
		&user.Email,
		&user.PasswordHash,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return user, models.ErrUserNotFound
		}
		return user, errors.New("unable to get user, DB error")
	}

	return user, nil
}

func (q *UserQueries) CreateUser(u *models.User) error {
	query := `INSERT INTO users (uid, username, user_role, email, password_hash, phone_number, avatar, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := q.DB.Exec(query,
		u.ID,
		u.Username,
		u.UserRole,
		u.Email,
		u.PasswordHash,
		u.PhoneNumber,
		u.Avatar,
		u.CreatedAt,
		u.UpdatedAt,
	)
	if err != nil {
		return errors.New("unable to create user")
	}
	return nil
}

// PromoteProvider flips the user's role to provider and records the
// provider profile fields.
func (q *UserQueries) PromoteProvider(id uuid.UUID, category, city string) error {
	query := `UPDATE users SET user_role = 'provider', category = $2, city = $3, updated_at = now() WHERE uid = $1`

	res, err := q.DB.Exec(query, id, category, city)
	if err != nil {
		return errors.New("unable to promote user")
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return errors.New("unable to promote user")
	}
	if rows == 0 {
		return models.ErrUserNotFound
	}
	return nil
}

func (q *UserQueries) UpdateUser(id uuid.UUID, payload *models.UpdateUserRequest) error {
	sets := []string{}
	args := []interface{}{}
	idx := 1

	if payload.Username != nil {
		sets = append(sets, fmt.Sprintf("username = $%d", idx))
		args = append(args, *payload.Username)
		idx++
	}
	if payload.PhoneNumber != nil {
		sets = append(sets, fmt.Sprintf("phone_number = $%d", idx))
		args = append(args, *payload.PhoneNumber)
		idx++
	}
	if payload.Avatar != nil {
		sets = append(sets, fmt.Sprintf("avatar = $%d", idx))
		args = append(args, *payload.Avatar)
		idx++
	}
	if payload.City != nil {
		sets = append(sets, fmt.Sprintf("city = $%d", idx))
		args = append(args, *payload.City)
		idx++
	}

	if len(sets) == 0 {
		return errors.New("no fields to update")
	}

	sets = append(sets, "updated_at = now()")
	query := fmt.Sprintf("UPDATE users SET %s WHERE uid = $%d", strings.Join(sets, ", "), idx)
	args = append(args, id)

	res, err := q.DB.Exec(query, args...)
	if err != nil {
		return errors.New("unable to update user")
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return errors.New("unable to update user")
	}
	if rows == 0 {
		return models.ErrUserNotFound
	}
	return nil
}
