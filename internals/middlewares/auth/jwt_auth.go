package auth

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"reporthub_backend/internals/constants"
	helperAuth "reporthub_backend/internals/helpers/auth"
)

// Identity is what the database says about the token's subject.
type Identity struct {
	Role   string
	ZoneID *uuid.UUID
	Name   string
	Active bool
}

type AuthJWTOpts struct {
	Secret string
	// optional: refresh role / zone / active flag from storage so that
	// role changes and deactivation apply before the token expires
	IdentityResolver    func(c *fiber.Ctx, userID uuid.UUID) (*Identity, error)
	AllowCookieFallback bool // read cookie access_token when there is no Bearer
}

func AuthJWT(o AuthJWTOpts) fiber.Handler {
	secret := strings.TrimSpace(o.Secret)
	if secret == "" {
		panic("AuthJWT: Secret is required")
	}

	return func(c *fiber.Ctx) error {
		// 1) token: Authorization: Bearer xxx (or cookie when allowed)
		raw := ""
		if authz := strings.TrimSpace(c.Get(fiber.HeaderAuthorization)); strings.HasPrefix(strings.ToLower(authz), "bearer ") {
			raw = strings.TrimSpace(authz[7:])
		} else if o.AllowCookieFallback {
			raw = strings.TrimSpace(c.Cookies("access_token"))
		}
		if raw == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized")
		}

		// 2) parse + pin algorithm
		tok, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
			}
			return []byte(secret), nil
		})
		if err != nil || !tok.Valid {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid token")
		}
		claims, ok := tok.Claims.(jwt.MapClaims)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid token claims")
		}
		c.Locals(helperAuth.LocClaims, claims)

		// 3) user id: id / sub / user_id in that order
		sub := firstClaim(claims, "id", "sub", "user_id")
		userID, err := uuid.Parse(sub)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid user id in token")
		}
		c.Locals(helperAuth.LocUserID, userID.String())

		role := strings.ToUpper(firstClaim(claims, "role"))
		zone := firstClaim(claims, "zone_id", "zoneId")
		name := firstClaim(claims, "name", "user_name")

		// 4) storage wins over claims
		if o.IdentityResolver != nil {
			id, err := o.IdentityResolver(c, userID)
			if err != nil {
				return err
			}
			if id == nil || !id.Active {
				log.Printf("[WARN] inactive or unknown user %s rejected", userID)
				return fiber.NewError(fiber.StatusUnauthorized, "Account is inactive")
			}
			role = id.Role
			zone = ""
			if id.ZoneID != nil {
				zone = id.ZoneID.String()
			}
			if id.Name != "" {
				name = id.Name
			}
		}

		if !constants.IsValidRole(role) {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Role not found")
		}
		c.Locals(helperAuth.LocRole, role)
		if zone != "" {
			c.Locals(helperAuth.LocZoneID, zone)
		}
		if name != "" {
			c.Locals(helperAuth.LocUserName, name)
		}
		return c.Next()
	}
}

func firstClaim(m jwt.MapClaims, keys ...string) string {
	for _, k := range keys {
		if v, ok := m[k]; ok {
			if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
				return strings.TrimSpace(s)
			}
		}
	}
	return ""
}
