package dbtime

import (
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"

	"reporthub_backend/internals/configs"
)

var (
	locOnce sync.Once
	appLoc  *time.Location
)

// AppLocation is the zone from APP_TIMEZONE, falling back to UTC.
func AppLocation() *time.Location {
	locOnce.Do(func() {
		appLoc = time.UTC
		name := strings.TrimSpace(configs.AppTimezone)
		if name == "" {
			return
		}
		if loc, err := time.LoadLocation(name); err == nil {
			appLoc = loc
		}
	})
	return appLoc
}

// ParseDateQuery reads ?key= as "2006-01-02" or RFC3339 and returns it in UTC.
// Missing params return (nil, nil).
func ParseDateQuery(c *fiber.Ctx, key string) (*time.Time, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		u := t.UTC()
		return &u, nil
	}
	t, err := time.ParseInLocation("2006-01-02", raw, time.UTC)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, key+" must be YYYY-MM-DD")
	}
	return &t, nil
}

// EndOfDay returns the last millisecond of t's UTC day, for inclusive "to" filters.
func EndOfDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), time.UTC)
}

// ParseDay accepts RFC3339 or "2006-01-02" from request bodies and returns UTC.
func ParseDay(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC(), nil
	}
	return time.ParseInLocation("2006-01-02", raw, time.UTC)
}
