package server

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"CoinOracle/internal/engine"
)

// New builds the HTTP application with all routes registered.
func New(eng *engine.Engine) *fiber.App {
	h := newHandler(eng)

	app := fiber.New(fiber.Config{
		ServerHeader: "CoinOracle",
		AppName:      "CoinOracle v1.0",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		ErrorHandler: errorHandler,
	})

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept",
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"service": "CoinOracle",
			"version": "1.0.0",
			"status":  "running",
		})
	})
	app.Get("/health", h.health)

	v1 := app.Group("/v1")
	v1.Get("/coins", h.listCoins)
	v1.Post("/predictions", h.createPrediction)
	v1.Get("/predictions/:coinId", h.getPrediction)

	return app
}

// errorHandler maps unhandled Fiber errors to the JSON error envelope.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}
	return c.Status(code).JSON(errorResponse{
		Error:   "Request failed",
		Message: err.Error(),
		Code:    code,
	})
}
