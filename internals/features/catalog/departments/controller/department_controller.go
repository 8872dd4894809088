package controller

import (
	"fmt"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"reporthub_backend/internals/features/catalog/departments/dto"
	"reporthub_backend/internals/features/catalog/departments/model"
	productModel "reporthub_backend/internals/features/catalog/product_types/model"
	transactionModel "reporthub_backend/internals/features/finance/transactions/model"
	userModel "reporthub_backend/internals/features/users/user/model"
	helper "reporthub_backend/internals/helpers"
)

type DepartmentController struct {
	DB *gorm.DB
}

func NewDepartmentController(db *gorm.DB) *DepartmentController {
	return &DepartmentController{DB: db}
}

func (ctrl *DepartmentController) GetDepartments(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 50, 200)
	q := ctrl.DB.WithContext(c.Context()).Model(&model.DepartmentModel{})
	if s := strings.TrimSpace(c.Query("q")); s != "" {
		q = q.Where("LOWER(department_name) LIKE ?", "%"+strings.ToLower(s)+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.MapDBError(err, "")
	}
	var rows []model.DepartmentModel
	if err := q.Order("department_name ASC").Offset(p.Offset).Limit(p.Limit).Find(&rows).Error; err != nil {
		return helper.MapDBError(err, "")
	}
	out := make([]dto.DepartmentResponse, 0, len(rows))
	for _, d := range rows {
		out = append(out, dto.ToDepartmentResponse(d))
	}
	return helper.JsonList(c, "ok", out, helper.BuildPaginationFromPage(total, p.Page, p.PerPage))
}

func (ctrl *DepartmentController) GetDepartmentByID(c *fiber.Ctx) error {
	db := ctrl.DB.WithContext(c.Context())
	dept, err := loadDepartment(c, db)
	if err != nil {
		return err
	}
	counts, err := countDepartmentDependents(db, dept.DepartmentID)
	if err != nil {
		return helper.MapDBError(err, "")
	}
	resp := dto.ToDepartmentResponse(dept)
	resp.Count = &counts
	return helper.JsonOK(c, "ok", resp)
}

func (ctrl *DepartmentController) CreateDepartment(c *fiber.Ctx) error {
	var body dto.CreateDepartmentRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	body.Normalize()
	if err := helper.Validate(body); err != nil {
		return err
	}
	if err := ensureDepartmentNameFree(c, ctrl.DB, body.DepartmentName, nil); err != nil {
		return err
	}

	dept := model.DepartmentModel{
		DepartmentName:        body.DepartmentName,
		DepartmentDescription: body.DepartmentDescription,
	}
	if err := ctrl.DB.WithContext(c.Context()).Create(&dept).Error; err != nil {
		return helper.MapDBError(err, "")
	}
	log.Printf("[INFO] department created: %s", dept.DepartmentName)
	return helper.JsonCreated(c, "Department created", dto.ToDepartmentResponse(dept))
}

func (ctrl *DepartmentController) UpdateDepartment(c *fiber.Ctx) error {
	var body dto.UpdateDepartmentRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	body.Normalize()
	if err := helper.Validate(body); err != nil {
		return err
	}

	db := ctrl.DB.WithContext(c.Context())
	dept, err := loadDepartment(c, db)
	if err != nil {
		return err
	}
	if body.DepartmentName != nil && !strings.EqualFold(*body.DepartmentName, dept.DepartmentName) {
		if err := ensureDepartmentNameFree(c, ctrl.DB, *body.DepartmentName, &dept.DepartmentID); err != nil {
			return err
		}
		dept.DepartmentName = *body.DepartmentName
	}
	if body.DepartmentDescription != nil {
		dept.DepartmentDescription = body.DepartmentDescription
	}
	if err := db.Save(&dept).Error; err != nil {
		return helper.MapDBError(err, "")
	}
	return helper.JsonUpdated(c, "Department updated", dto.ToDepartmentResponse(dept))
}

func (ctrl *DepartmentController) DeleteDepartment(c *fiber.Ctx) error {
	var deleted uuid.UUID
	err := ctrl.DB.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		dept, err := loadDepartment(c, tx)
		if err != nil {
			return err
		}
		counts, err := countDepartmentDependents(tx, dept.DepartmentID)
		if err != nil {
			return err
		}
		switch {
		case counts.ProductTypes > 0:
			return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("Cannot delete department: it has %d product type(s)", counts.ProductTypes))
		case counts.Transactions > 0:
			return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("Cannot delete department: it has %d transaction(s)", counts.Transactions))
		case counts.Users > 0:
			return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("Cannot delete department: it has %d user(s)", counts.Users))
		}
		deleted = dept.DepartmentID
		return tx.Delete(&model.DepartmentModel{}, "department_id = ?", dept.DepartmentID).Error
	})
	if err != nil {
		return helper.MapDBError(err, "")
	}
	return helper.JsonDeleted(c, "Department deleted", fiber.Map{"department_id": deleted})
}

func loadDepartment(c *fiber.Ctx, db *gorm.DB) (model.DepartmentModel, error) {
	var dept model.DepartmentModel
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return dept, fiber.NewError(fiber.StatusBadRequest, "Invalid department id")
	}
	if err := db.First(&dept, "department_id = ?", id).Error; err != nil {
		return dept, helper.MapDBError(err, "Department not found")
	}
	return dept, nil
}

func ensureDepartmentNameFree(c *fiber.Ctx, db *gorm.DB, name string, exclude *uuid.UUID) error {
	var scope func(*gorm.DB) *gorm.DB
	if exclude != nil {
		scope = func(q *gorm.DB) *gorm.DB { return q.Where("department_id <> ?", *exclude) }
	}
	taken, err := helper.NameTakenCI(c.Context(), db, "departments", "department_name", "department_deleted_at", name, scope)
	if err != nil {
		return helper.MapDBError(err, "")
	}
	if taken {
		return fiber.NewError(fiber.StatusConflict, "A department with this name already exists")
	}
	return nil
}

func countDepartmentDependents(db *gorm.DB, id uuid.UUID) (dto.DepartmentCounts, error) {
	var out dto.DepartmentCounts
	if err := db.Model(&productModel.ProductTypeModel{}).Where("product_type_department_id = ?", id).Count(&out.ProductTypes).Error; err != nil {
		return out, err
	}
	if err := db.Model(&transactionModel.TransactionModel{}).Where("transaction_department_id = ?", id).Count(&out.Transactions).Error; err != nil {
		return out, err
	}
	if err := db.Model(&userModel.UserModel{}).Where("user_department_id = ?", id).Count(&out.Users).Error; err != nil {
		return out, err
	}
	return out, nil
}
