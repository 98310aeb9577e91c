package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mozoqr/mozo-app/utils"
)

// ErrNoPermission is returned when a caller touches another tenant's data.
var ErrNoPermission = &CustomError{"You do not have permission"}

type CustomError struct {
	Message string
}

func (e *CustomError) Error() string {
	return e.Message
}

func parseID(c *gin.Context, param string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(param), 10, 32)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, utils.ValidationErr("Invalid %s", param))
		return 0, false
	}
	return uint(id), true
}

// restaurantScope checks that the :restaurant_id route param matches the
// restaurant in the caller's token. Admin routes are tenant-scoped.
func restaurantScope(c *gin.Context) (uint, bool) {
	restaurantID, ok := parseID(c, "restaurant_id")
	if !ok {
		return 0, false
	}

	claimed, exists := c.Get("restaurant_id")
	if !exists || claimed.(uint) != restaurantID {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return 0, false
	}
	return restaurantID, true
}

// parseTimeParam accepts RFC3339 or a plain date.
func parseTimeParam(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", value)
}

// dateRange reads from/to query params, defaulting to today.
func dateRange(c *gin.Context) (time.Time, time.Time, error) {
	now := time.Now()
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	to := from.Add(24*time.Hour - time.Millisecond)

	if raw := c.Query("from"); raw != "" {
		parsed, err := parseTimeParam(raw)
		if err != nil {
			return from, to, utils.ValidationErr("Invalid from date")
		}
		from = parsed
	}
	if raw := c.Query("to"); raw != "" {
		parsed, err := parseTimeParam(raw)
		if err != nil {
			return from, to, utils.ValidationErr("Invalid to date")
		}
		to = parsed
		// A bare date means "until the end of that day".
		if to.Hour() == 0 && to.Minute() == 0 && to.Second() == 0 {
			to = to.Add(24*time.Hour - time.Millisecond)
		}
	}

	if from.After(to) {
		return from, to, utils.ValidationErr("Invalid date range: from is after to")
	}

	return from, to, nil
}
