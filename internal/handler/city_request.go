package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/sedrickcz/cityvizor"
)

// RequestStore persists city requests
type RequestStore interface {
	Insert(context.Context, *cityvizor.CityRequest) (cityvizor.Outcome, error)
}

// CityRequestHandler handles the contact and subscription form
type CityRequestHandler struct {
	store  RequestStore
	logger zerolog.Logger
	now    func() time.Time
}

// cityRequestBody is the accepted form payload. Time and IP are set by the
// server.
type cityRequestBody struct {
	City      string `json:"city"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	Subscribe bool   `json:"subscribe"`
	GDPR      bool   `json:"gdpr"`
}

// NewCityRequestHandler creates a new city request handler. A nil clock means
// time.Now.
func NewCityRequestHandler(store RequestStore, logger zerolog.Logger, now func() time.Time) *CityRequestHandler {
	if now == nil {
		now = time.Now
	}
	return &CityRequestHandler{store: store, logger: logger, now: now}
}

// Create handles POST /city-requests
func (h *CityRequestHandler) Create(c *gin.Context) {
	var body cityRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	request := &cityvizor.CityRequest{
		Time:      h.now(),
		City:      body.City,
		Email:     body.Email,
		Name:      body.Name,
		Subscribe: body.Subscribe,
		GDPR:      body.GDPR,
		IP:        c.ClientIP(),
	}

	outcome, err := h.store.Insert(c.Request.Context(), request)
	if err != nil {
		h.logger.Error().Err(err).Str("city", request.City).Msg("city request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	switch outcome {
	case cityvizor.OutcomeWritten:
		c.JSON(http.StatusCreated, gin.H{"status": outcome.String()})
	default:
		c.JSON(http.StatusAccepted, gin.H{"status": outcome.String()})
	}
}
