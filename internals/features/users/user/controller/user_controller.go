package controller

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"reporthub_backend/internals/constants"
	departmentModel "reporthub_backend/internals/features/catalog/departments/model"
	zoneModel "reporthub_backend/internals/features/organization/zones/model"
	"reporthub_backend/internals/features/users/user/dto"
	"reporthub_backend/internals/features/users/user/model"
	helper "reporthub_backend/internals/helpers"
	helperAuth "reporthub_backend/internals/helpers/auth"
)

type UserController struct {
	DB *gorm.DB
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{DB: db}
}

// =========================
// List users (?role=, ?zone_id=, ?q=)
// =========================
func (ctrl *UserController) GetUsers(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 20, 200)
	scope, err := helperAuth.ResolveZoneScope(c)
	if err != nil {
		return err
	}

	q := ctrl.DB.WithContext(c.Context()).Model(&model.UserModel{})
	if s := strings.TrimSpace(c.Query("q")); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		q = q.Where("LOWER(user_name) LIKE ? OR LOWER(user_email) LIKE ?", like, like)
	}
	if r := strings.ToUpper(strings.TrimSpace(c.Query("role"))); r != "" {
		if !constants.IsValidRole(r) {
			return fiber.NewError(fiber.StatusBadRequest, "role is invalid")
		}
		q = q.Where("user_role = ?", r)
	}
	if z := strings.TrimSpace(c.Query("zone_id")); z != "" {
		zid, err := uuid.Parse(z)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "zone_id must be a UUID")
		}
		q = q.Where("user_zone_id = ?", zid)
	}
	if scope.Restricted() {
		q = q.Where("user_zone_id = ?", *scope.ZoneID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.MapDBError(err, "")
	}
	var rows []model.UserModel
	if err := q.Preload("Zone").Preload("Department").
		Order("user_name ASC").Offset(p.Offset).Limit(p.Limit).
		Find(&rows).Error; err != nil {
		return helper.MapDBError(err, "")
	}
	out := make([]dto.UserResponse, 0, len(rows))
	for _, u := range rows {
		out = append(out, dto.ToUserResponse(u))
	}
	return helper.JsonList(c, "ok", out, helper.BuildPaginationFromPage(total, p.Page, p.PerPage))
}

// GetMe returns the caller's own record.
func (ctrl *UserController) GetMe(c *fiber.Ctx) error {
	uid, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	var u model.UserModel
	if err := ctrl.DB.WithContext(c.Context()).Preload("Zone").Preload("Department").
		First(&u, "user_id = ?", uid).Error; err != nil {
		return helper.MapDBError(err, "User not found")
	}
	return helper.JsonOK(c, "ok", dto.ToUserResponse(u))
}

func (ctrl *UserController) GetUserByID(c *fiber.Ctx) error {
	u, err := ctrl.load(c, ctrl.DB.WithContext(c.Context()))
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "ok", dto.ToUserResponse(u))
}

// =========================
// Create user
// =========================
func (ctrl *UserController) CreateUser(c *fiber.Ctx) error {
	var body dto.CreateUserRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	body.Normalize()
	if err := helper.Validate(body); err != nil {
		return err
	}

	u := model.UserModel{
		UserName:     body.UserName,
		UserEmail:    body.UserEmail,
		UserRole:     body.UserRole,
		UserIsActive: true,
	}
	if body.UserIsActive != nil {
		u.UserIsActive = *body.UserIsActive
	}
	if body.UserZoneID != nil {
		zid := uuid.MustParse(*body.UserZoneID)
		u.UserZoneID = &zid
	}
	if body.UserDepartmentID != nil {
		did := uuid.MustParse(*body.UserDepartmentID)
		u.UserDepartmentID = &did
	}
	if body.UserPassword != nil {
		if err := u.SetPassword(*body.UserPassword); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to hash password")
		}
	}

	err := ctrl.DB.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		if err := validateUserRefs(tx, &u); err != nil {
			return err
		}
		if err := ensureEmailFree(c, tx, u.UserEmail, nil); err != nil {
			return err
		}
		return tx.Omit("Zone", "Department").Create(&u).Error
	})
	if err != nil {
		return helper.MapDBError(err, "")
	}
	log.Printf("[INFO] user created: %s (%s)", u.UserEmail, u.UserRole)
	return helper.JsonCreated(c, "User created", dto.ToUserResponse(u))
}

// =========================
// Update user
// =========================
func (ctrl *UserController) UpdateUser(c *fiber.Ctx) error {
	var body dto.UpdateUserRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	body.Normalize()
	if err := helper.Validate(body); err != nil {
		return err
	}

	var u model.UserModel
	err := ctrl.DB.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		cur, err := ctrl.load(c, tx)
		if err != nil {
			return err
		}
		u = cur

		if body.UserName != nil {
			u.UserName = *body.UserName
		}
		if body.UserEmail != nil && *body.UserEmail != u.UserEmail {
			if err := ensureEmailFree(c, tx, *body.UserEmail, &u.UserID); err != nil {
				return err
			}
			u.UserEmail = *body.UserEmail
		}
		if body.UserRole != nil {
			u.UserRole = *body.UserRole
		}
		if body.UserZoneID != nil {
			if strings.TrimSpace(*body.UserZoneID) == "" {
				u.UserZoneID = nil
			} else {
				zid := uuid.MustParse(*body.UserZoneID)
				u.UserZoneID = &zid
			}
		}
		if body.UserDepartmentID != nil {
			if strings.TrimSpace(*body.UserDepartmentID) == "" {
				u.UserDepartmentID = nil
			} else {
				did := uuid.MustParse(*body.UserDepartmentID)
				u.UserDepartmentID = &did
			}
		}
		if body.UserIsActive != nil {
			u.UserIsActive = *body.UserIsActive
		}
		if body.UserPassword != nil {
			if err := u.SetPassword(*body.UserPassword); err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Failed to hash password")
			}
		}
		if err := validateUserRefs(tx, &u); err != nil {
			return err
		}
		u.Zone, u.Department = nil, nil
		return tx.Omit("Zone", "Department").Save(&u).Error
	})
	if err != nil {
		return helper.MapDBError(err, "")
	}
	return helper.JsonUpdated(c, "User updated", dto.ToUserResponse(u))
}

// =========================
// Delete user (soft)
// =========================
func (ctrl *UserController) DeleteUser(c *fiber.Ctx) error {
	me, _ := helperAuth.GetUserIDFromToken(c)
	u, err := ctrl.load(c, ctrl.DB.WithContext(c.Context()))
	if err != nil {
		return err
	}
	if u.UserID == me {
		return fiber.NewError(fiber.StatusBadRequest, "You cannot delete your own account")
	}
	if err := ctrl.DB.WithContext(c.Context()).Delete(&model.UserModel{}, "user_id = ?", u.UserID).Error; err != nil {
		return helper.MapDBError(err, "")
	}
	log.Printf("[INFO] user deleted: %s", u.UserEmail)
	return helper.JsonDeleted(c, "User deleted", fiber.Map{"user_id": u.UserID})
}

func (ctrl *UserController) load(c *fiber.Ctx, db *gorm.DB) (model.UserModel, error) {
	var u model.UserModel
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return u, fiber.NewError(fiber.StatusBadRequest, "Invalid user id")
	}
	if err := db.Preload("Zone").Preload("Department").First(&u, "user_id = ?", id).Error; err != nil {
		return u, helper.MapDBError(err, "User not found")
	}
	scope, err := helperAuth.ResolveZoneScope(c)
	if err != nil {
		return u, err
	}
	if scope.Restricted() && (u.UserZoneID == nil || *u.UserZoneID != *scope.ZoneID) {
		return u, fiber.NewError(fiber.StatusForbidden, constants.ZoneError("User"))
	}
	return u, nil
}

// validateUserRefs enforces ZONE_ADMIN ⇒ zone, and that referenced rows exist.
func validateUserRefs(tx *gorm.DB, u *model.UserModel) error {
	if u.UserRole == constants.RoleZoneAdmin && u.UserZoneID == nil {
		return fiber.NewError(fiber.StatusBadRequest, "user_zone_id is required for ZONE_ADMIN")
	}
	if u.UserZoneID != nil {
		var n int64
		if err := tx.Model(&zoneModel.ZoneModel{}).Where("zone_id = ?", *u.UserZoneID).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Zone not found")
		}
	}
	if u.UserDepartmentID != nil {
		var n int64
		if err := tx.Model(&departmentModel.DepartmentModel{}).Where("department_id = ?", *u.UserDepartmentID).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Department not found")
		}
	}
	return nil
}

func ensureEmailFree(c *fiber.Ctx, tx *gorm.DB, email string, exclude *uuid.UUID) error {
	var scope func(*gorm.DB) *gorm.DB
	if exclude != nil {
		scope = func(q *gorm.DB) *gorm.DB { return q.Where("user_id <> ?", *exclude) }
	}
	taken, err := helper.NameTakenCI(c.Context(), tx, "users", "user_email", "user_deleted_at", email, scope)
	if err != nil {
		return err
	}
	if taken {
		return fiber.NewError(fiber.StatusConflict, "A user with this email already exists")
	}
	return nil
}
