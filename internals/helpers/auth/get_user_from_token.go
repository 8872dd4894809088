package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Locals set by middlewares/auth.AuthJWT
const (
	LocUserID   = "user_id"   // string UUID
	LocRole     = "userRole"  // SUPER_ADMIN | ZONE_ADMIN | USER
	LocZoneID   = "zone_id"   // string UUID, only for ZONE_ADMIN
	LocUserName = "user_name" // display name
	LocClaims   = "jwt_claims"
)

func GetUserIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	s, _ := c.Locals(LocUserID).(string)
	s = strings.TrimSpace(s)
	if s == "" {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Unauthorized")
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid user id in token")
	}
	return id, nil
}

// OptionalUserID is GetUserIDFromToken without the error, for audit columns.
func OptionalUserID(c *fiber.Ctx) *uuid.UUID {
	id, err := GetUserIDFromToken(c)
	if err != nil {
		return nil
	}
	return &id
}

func GetRole(c *fiber.Ctx) string {
	r, _ := c.Locals(LocRole).(string)
	return strings.ToUpper(strings.TrimSpace(r))
}

func GetZoneIDFromToken(c *fiber.Ctx) *uuid.UUID {
	s, _ := c.Locals(LocZoneID).(string)
	id, err := uuid.Parse(strings.TrimSpace(s))
	if err != nil {
		return nil
	}
	return &id
}
