package api

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/ANIKETPROJECTS/RestrauntPOSV6-sub000/internal/service"
)

type JwtCustomClaims struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// defaultIntervalMs is used when a start request does not set intervalMs.
const defaultIntervalMs = 30000

type SyncHandler struct {
	scheduler *service.Scheduler
}

func NewSyncHandler(scheduler *service.Scheduler) *SyncHandler {
	return &SyncHandler{scheduler: scheduler}
}

// StartSync starts the periodic digital-menu sync --> POST /sync/start
func (h *SyncHandler) StartSync(c echo.Context) error {
	req := struct {
		IntervalMs int `json:"intervalMs"`
	}{}
	if err := c.Bind(&req); err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid request payload"})
	}
	if req.IntervalMs <= 0 {
		req.IntervalMs = defaultIntervalMs
	}

	h.scheduler.Start(time.Duration(req.IntervalMs) * time.Millisecond)

	return c.JSON(200, map[string]interface{}{
		"status":     "started",
		"intervalMs": req.IntervalMs,
	})
}

// StopSync stops the periodic sync --> POST /sync/stop
func (h *SyncHandler) StopSync(c echo.Context) error {
	h.scheduler.Stop()
	return c.JSON(200, map[string]string{"status": "stopped"})
}

// SyncNow runs one manual sync pass --> POST /sync/now
func (h *SyncHandler) SyncNow(c echo.Context) error {
	count, err := h.scheduler.SyncNow(c.Request().Context())
	if err != nil {
		if errors.Is(err, service.ErrSyncInProgress) {
			return c.JSON(409, map[string]string{"error": err.Error()})
		}
		return c.JSON(500, map[string]string{"error": err.Error()})
	}

	return c.JSON(200, map[string]interface{}{"synced": count})
}

// GetStatus reports scheduler state --> GET /sync/status
func (h *SyncHandler) GetStatus(c echo.Context) error {
	return c.JSON(200, h.scheduler.Status())
}
