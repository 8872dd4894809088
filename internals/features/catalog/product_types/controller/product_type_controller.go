package controller

import (
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	departmentModel "reporthub_backend/internals/features/catalog/departments/model"
	"reporthub_backend/internals/features/catalog/product_types/dto"
	"reporthub_backend/internals/features/catalog/product_types/model"
	transactionModel "reporthub_backend/internals/features/finance/transactions/model"
	helper "reporthub_backend/internals/helpers"
)

type ProductTypeController struct {
	DB *gorm.DB
}

func NewProductTypeController(db *gorm.DB) *ProductTypeController {
	return &ProductTypeController{DB: db}
}

// =========================
// List (?department_id=, ?is_active=, ?q=)
// =========================
func (ctrl *ProductTypeController) GetProductTypes(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 50, 500)
	q := ctrl.DB.WithContext(c.Context()).Model(&model.ProductTypeModel{})

	if s := strings.TrimSpace(c.Query("q")); s != "" {
		q = q.Where("LOWER(product_type_name) LIKE ?", "%"+strings.ToLower(s)+"%")
	}
	if d := strings.TrimSpace(c.Query("department_id")); d != "" {
		did, err := uuid.Parse(d)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "department_id must be a UUID")
		}
		q = q.Where("product_type_department_id = ?", did)
	}
	if a := strings.TrimSpace(c.Query("is_active")); a != "" {
		active, err := strconv.ParseBool(a)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "is_active must be true or false")
		}
		q = q.Where("product_type_is_active = ?", active)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.MapDBError(err, "")
	}
	var rows []model.ProductTypeModel
	if err := q.Preload("Department").Order("product_type_name ASC").Offset(p.Offset).Limit(p.Limit).Find(&rows).Error; err != nil {
		return helper.MapDBError(err, "")
	}
	out := make([]dto.ProductTypeResponse, 0, len(rows))
	for _, pt := range rows {
		out = append(out, dto.ToProductTypeResponse(pt))
	}
	return helper.JsonList(c, "ok", out, helper.BuildPaginationFromPage(total, p.Page, p.PerPage))
}

func (ctrl *ProductTypeController) GetProductTypeByID(c *fiber.Ctx) error {
	db := ctrl.DB.WithContext(c.Context())
	pt, err := loadProductType(c, db)
	if err != nil {
		return err
	}
	var n int64
	if err := db.Model(&transactionModel.TransactionLineItemModel{}).
		Where("line_item_product_type_id = ?", pt.ProductTypeID).Count(&n).Error; err != nil {
		return helper.MapDBError(err, "")
	}
	resp := dto.ToProductTypeResponse(pt)
	resp.Count = &dto.ProductTypeCounts{LineItems: n}
	return helper.JsonOK(c, "ok", resp)
}

func (ctrl *ProductTypeController) CreateProductType(c *fiber.Ctx) error {
	var body dto.CreateProductTypeRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	body.Normalize()
	if err := helper.Validate(body); err != nil {
		return err
	}
	if body.ProductTypeUnitPrice != nil && body.ProductTypeUnitPrice.IsNegative() {
		return fiber.NewError(fiber.StatusBadRequest, "product_type_unit_price must not be negative")
	}
	deptID := uuid.MustParse(body.ProductTypeDepartmentID)

	var pt model.ProductTypeModel
	err := ctrl.DB.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		if err := ensureDepartmentExists(tx, deptID); err != nil {
			return err
		}
		if err := ensureProductNameFree(c, tx, body.ProductTypeName, nil); err != nil {
			return err
		}
		pt = model.ProductTypeModel{
			ProductTypeDepartmentID: deptID,
			ProductTypeName:         body.ProductTypeName,
			ProductTypeIsActive:     true,
		}
		if body.ProductTypeUnitPrice != nil {
			pt.ProductTypeUnitPrice = body.ProductTypeUnitPrice.Round(2)
		}
		if body.ProductTypeIsActive != nil {
			pt.ProductTypeIsActive = *body.ProductTypeIsActive
		}
		return tx.Create(&pt).Error
	})
	if err != nil {
		return helper.MapDBError(err, "")
	}
	log.Printf("[INFO] product type created: %s @ %s", pt.ProductTypeName, pt.ProductTypeUnitPrice.StringFixed(2))
	return helper.JsonCreated(c, "Product type created", dto.ToProductTypeResponse(pt))
}

// UpdateProductType changes the catalog entry. Existing line items keep their
// price until POST /api/admin/sync-prices is run for a period.
func (ctrl *ProductTypeController) UpdateProductType(c *fiber.Ctx) error {
	var body dto.UpdateProductTypeRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	body.Normalize()
	if err := helper.Validate(body); err != nil {
		return err
	}
	if body.ProductTypeUnitPrice != nil && body.ProductTypeUnitPrice.IsNegative() {
		return fiber.NewError(fiber.StatusBadRequest, "product_type_unit_price must not be negative")
	}

	var pt model.ProductTypeModel
	err := ctrl.DB.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		cur, err := loadProductType(c, tx)
		if err != nil {
			return err
		}
		pt = cur

		updates := map[string]any{}
		if body.ProductTypeDepartmentID != nil {
			did := uuid.MustParse(*body.ProductTypeDepartmentID)
			if err := ensureDepartmentExists(tx, did); err != nil {
				return err
			}
			updates["product_type_department_id"] = did
			pt.ProductTypeDepartmentID = did
		}
		if body.ProductTypeName != nil && !strings.EqualFold(*body.ProductTypeName, pt.ProductTypeName) {
			if err := ensureProductNameFree(c, tx, *body.ProductTypeName, &pt.ProductTypeID); err != nil {
				return err
			}
		}
		if body.ProductTypeName != nil {
			updates["product_type_name"] = *body.ProductTypeName
			pt.ProductTypeName = *body.ProductTypeName
		}
		if body.ProductTypeUnitPrice != nil {
			price := body.ProductTypeUnitPrice.Round(2)
			updates["product_type_unit_price"] = price
			pt.ProductTypeUnitPrice = price
		}
		if body.ProductTypeIsActive != nil {
			updates["product_type_is_active"] = *body.ProductTypeIsActive
			pt.ProductTypeIsActive = *body.ProductTypeIsActive
		}
		if len(updates) == 0 {
			return nil
		}
		return tx.Model(&model.ProductTypeModel{}).Where("product_type_id = ?", pt.ProductTypeID).Updates(updates).Error
	})
	if err != nil {
		return helper.MapDBError(err, "")
	}
	pt.Department = nil
	return helper.JsonUpdated(c, "Product type updated", dto.ToProductTypeResponse(pt))
}

func (ctrl *ProductTypeController) DeleteProductType(c *fiber.Ctx) error {
	var deleted uuid.UUID
	err := ctrl.DB.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		pt, err := loadProductType(c, tx)
		if err != nil {
			return err
		}
		var n int64
		if err := tx.Model(&transactionModel.TransactionLineItemModel{}).
			Where("line_item_product_type_id = ?", pt.ProductTypeID).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("Cannot delete product type: it has %d line item(s)", n))
		}
		deleted = pt.ProductTypeID
		return tx.Delete(&model.ProductTypeModel{}, "product_type_id = ?", pt.ProductTypeID).Error
	})
	if err != nil {
		return helper.MapDBError(err, "")
	}
	return helper.JsonDeleted(c, "Product type deleted", fiber.Map{"product_type_id": deleted})
}

func loadProductType(c *fiber.Ctx, db *gorm.DB) (model.ProductTypeModel, error) {
	var pt model.ProductTypeModel
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return pt, fiber.NewError(fiber.StatusBadRequest, "Invalid product type id")
	}
	if err := db.Preload("Department").First(&pt, "product_type_id = ?", id).Error; err != nil {
		return pt, helper.MapDBError(err, "Product type not found")
	}
	return pt, nil
}

func ensureDepartmentExists(tx *gorm.DB, id uuid.UUID) error {
	var n int64
	if err := tx.Model(&departmentModel.DepartmentModel{}).Where("department_id = ?", id).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "Department not found")
	}
	return nil
}

func ensureProductNameFree(c *fiber.Ctx, tx *gorm.DB, name string, exclude *uuid.UUID) error {
	var scope func(*gorm.DB) *gorm.DB
	if exclude != nil {
		scope = func(q *gorm.DB) *gorm.DB { return q.Where("product_type_id <> ?", *exclude) }
	}
	taken, err := helper.NameTakenCI(c.Context(), tx, "product_types", "product_type_name", "product_type_deleted_at", name, scope)
	if err != nil {
		return err
	}
	if taken {
		return fiber.NewError(fiber.StatusConflict, "A product type with this name already exists")
	}
	return nil
}
