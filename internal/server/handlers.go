package server

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"CoinOracle/internal/engine"
	"CoinOracle/internal/marketdata"
)

type handler struct {
	engine    *engine.Engine
	startTime time.Time
}

func newHandler(eng *engine.Engine) *handler {
	return &handler{engine: eng, startTime: time.Now()}
}

type predictionRequest struct {
	CoinID string  `json:"coinId"`
	Amount float64 `json:"amount"`
	Period float64 `json:"period"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    int    `json:"code"`
}

type coinInfo struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
}

// supportedCoins is the list exposed to clients. Prediction itself accepts
// any identifier the data provider recognizes.
var supportedCoins = []coinInfo{
	{ID: "bitcoin", Name: "Bitcoin", Symbol: "BTC"},
	{ID: "ethereum", Name: "Ethereum", Symbol: "ETH"},
	{ID: "dogecoin", Name: "Dogecoin", Symbol: "DOGE"},
	{ID: "cardano", Name: "Cardano", Symbol: "ADA"},
	{ID: "solana", Name: "Solana", Symbol: "SOL"},
}

// health handles GET /health
func (h *handler) health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "healthy",
		"service": "coin-oracle",
		"version": "1.0.0",
		"uptime":  time.Since(h.startTime).String(),
		"time":    time.Now(),
	})
}

// listCoins handles GET /v1/coins
func (h *handler) listCoins(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"coins": supportedCoins})
}

// createPrediction handles POST /v1/predictions
func (h *handler) createPrediction(c *fiber.Ctx) error {
	var req predictionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(errorResponse{
			Error:   "Invalid request body",
			Message: err.Error(),
			Code:    fiber.StatusBadRequest,
		})
	}
	return h.predict(c, req)
}

// getPrediction handles GET /v1/predictions/:coinId
func (h *handler) getPrediction(c *fiber.Ctx) error {
	return h.predict(c, predictionRequest{CoinID: c.Params("coinId")})
}

func (h *handler) predict(c *fiber.Ctx, req predictionRequest) error {
	if req.CoinID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(errorResponse{
			Error:   "coinId is required",
			Message: "Provide a coin identifier, e.g. \"bitcoin\"",
			Code:    fiber.StatusBadRequest,
		})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 30*time.Second)
	defer cancel()

	pred, err := h.engine.Predict(ctx, req.CoinID, req.Amount, req.Period)
	if err != nil {
		var fetchErr *marketdata.FetchError
		switch {
		case errors.Is(err, engine.ErrInsufficientData):
			return c.Status(fiber.StatusUnprocessableEntity).JSON(errorResponse{
				Error:   "Not enough price history",
				Message: err.Error(),
				Code:    fiber.StatusUnprocessableEntity,
			})
		case errors.As(err, &fetchErr):
			return c.Status(fiber.StatusBadGateway).JSON(errorResponse{
				Error:   "Market data provider unavailable",
				Message: err.Error(),
				Code:    fiber.StatusBadGateway,
			})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(errorResponse{
				Error:   "Failed to generate prediction",
				Message: err.Error(),
				Code:    fiber.StatusInternalServerError,
			})
		}
	}

	return c.JSON(pred)
}
