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

func CreateService(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	providerID, err := utils.ExtractUserIDFromHeader(authHeader)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}
	role, err := utils.ExtractUserRoleFromHeader(authHeader)
	if err != nil || role != "provider" {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "only providers can create services"})
	}

	payload := &models.CreateServiceRequest{}
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validate.Struct(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	service := &models.Service{
		ID:          uuid.New(),
		ProviderID:  providerID,
		Name:        payload.Name,
		Category:    payload.Category,
		Description: payload.Description,
		Price:       payload.Price,
		City:        payload.City,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	q := queries.ServiceQueries{DB: database.DB}
	if err := q.CreateService(service); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to create service"})
	}

	return c.Status(fiber.StatusCreated).JSON(service)
}

func ListServices(c *fiber.Ctx) error {
	q := queries.ServiceQueries{DB: database.DB}
	services, err := q.ListServices(c.Query("category"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to list services"})
	}
	return c.Status(fiber.StatusOK).JSON(services)
}

func GetServiceByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}

	q := queries.ServiceQueries{DB: database.DB}
	service, err := q.GetServiceByID(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "service not found"})
	}
	return c.Status(fiber.StatusOK).JSON(service)
}
