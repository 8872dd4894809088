package service

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"reporthub_backend/internals/features/users/user/model"
	authMiddleware "reporthub_backend/internals/middlewares/auth"
)

// IdentityResolver feeds AuthJWT with the stored role / zone / active flag.
func IdentityResolver(db *gorm.DB) func(c *fiber.Ctx, userID uuid.UUID) (*authMiddleware.Identity, error) {
	return func(c *fiber.Ctx, userID uuid.UUID) (*authMiddleware.Identity, error) {
		var u model.UserModel
		err := db.WithContext(c.Context()).
			Select("user_id", "user_name", "user_role", "user_zone_id", "user_is_active").
			First(&u, "user_id = ?", userID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		if err != nil {
			return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to load user")
		}
		return &authMiddleware.Identity{
			Role:   u.UserRole,
			ZoneID: u.UserZoneID,
			Name:   u.UserName,
			Active: u.UserIsActive,
		}, nil
	}
}
