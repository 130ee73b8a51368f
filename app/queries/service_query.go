package queries

import (
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/sajankarki/sewabazar-backend/app/models"
)

type ServiceQueries struct {
	DB *sql.DB
}

func (q *ServiceQueries) CreateService(s *models.Service) error {
	query := `INSERT INTO services (id, provider_id, name, category, description, price, city, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := q.DB.Exec(query, s.ID, s.ProviderID, s.Name, s.Category, s.Description, s.Price, s.City, s.CreatedAt, s.UpdatedAt)
	if err != nil {
		return errors.New("unable to create service")
	}
	return nil
}

func (q *ServiceQueries) GetServiceByID(id uuid.UUID) (models.Service, error) {
	s := models.Service{}

	query := `SELECT id, provider_id, name, category, description, price, city, created_at, updated_at
			  FROM services WHERE id = $1`

	err := q.DB.QueryRow(query, id).Scan(
		&s.ID,
		&s.ProviderID,
		&s.Name,
		&s.Category,
		&s.Description,
		&s.Price,
		&s.City,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return s, models.ErrServiceNotFound
		}
		return s, errors.New("unable to get service")
	}
	return s, nil
}

func (q *ServiceQueries) ListServices(category string) ([]models.Service, error) {
	query := `SELECT id, provider_id, name, category, description, price, city, created_at, updated_at
			  FROM services`
	args := []interface{}{}
	if category != "" {
		query += ` WHERE category = $1`
		args = append(args, category)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := q.DB.Query(query, args...)
	if err != nil {
		return nil, errors.New("unable to list services")
	}
	defer rows.Close()

	services := []models.Service{}
	for rows.Next() {
		s := models.Service{}
		if err := rows.Scan(&s.ID, &s.ProviderID, &s.Name, &s.Category, &s.Description, &s.Price, &s.City, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, errors.New("unable to scan service")
		}
		services = append(services, s)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.New("unable to list services")
	}
	return services, nil
}
