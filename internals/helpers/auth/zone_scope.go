package helper

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"reporthub_backend/internals/constants"
)

// ZoneScope says which zone (if any) the caller is restricted to.
// ZoneID == nil means unrestricted (SUPER_ADMIN, or USER reading).
type ZoneScope struct {
	Role   string
	ZoneID *uuid.UUID
}

func (s ZoneScope) Restricted() bool { return s.ZoneID != nil }

// Allows reports whether zoneID is inside the scope.
func (s ZoneScope) Allows(zoneID uuid.UUID) bool {
	return s.ZoneID == nil || *s.ZoneID == zoneID
}

// ResolveZoneScope builds the scope for the current request.
// A ZONE_ADMIN without a zone in the token is rejected.
func ResolveZoneScope(c *fiber.Ctx) (ZoneScope, error) {
	role := GetRole(c)
	s := ZoneScope{Role: role}
	if role != constants.RoleZoneAdmin {
		return s, nil
	}
	zid := GetZoneIDFromToken(c)
	if zid == nil {
		return s, fiber.NewError(fiber.StatusForbidden, "Zone admin has no zone assigned")
	}
	s.ZoneID = zid
	return s, nil
}

// EnsureZoneAccess returns 403 when the caller's scope excludes zoneID.
func EnsureZoneAccess(c *fiber.Ctx, zoneID uuid.UUID, resource string) error {
	s, err := ResolveZoneScope(c)
	if err != nil {
		return err
	}
	if !s.Allows(zoneID) {
		return fiber.NewError(fiber.StatusForbidden, constants.ZoneError(resource))
	}
	return nil
}
