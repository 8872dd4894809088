package controller

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"reporthub_backend/internals/features/finance/campaign_categories/dto"
	"reporthub_backend/internals/features/finance/campaign_categories/model"
	paymentModel "reporthub_backend/internals/features/finance/payments/model"
	helper "reporthub_backend/internals/helpers"
)

type CampaignCategoryController struct {
	DB *gorm.DB
}

func NewCampaignCategoryController(db *gorm.DB) *CampaignCategoryController {
	return &CampaignCategoryController{DB: db}
}

func (ctrl *CampaignCategoryController) GetCampaignCategories(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 50, 200)
	q := ctrl.DB.WithContext(c.Context()).Model(&model.CampaignCategoryModel{})
	if s := strings.TrimSpace(c.Query("q")); s != "" {
		q = q.Where("LOWER(campaign_category_name) LIKE ?", "%"+strings.ToLower(s)+"%")
	}
	if a := strings.TrimSpace(c.Query("auto_created")); a == "true" || a == "false" {
		q = q.Where("campaign_category_is_auto_created = ?", a == "true")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.MapDBError(err, "")
	}
	var rows []model.CampaignCategoryModel
	if err := q.Order("campaign_category_name ASC").Offset(p.Offset).Limit(p.Limit).Find(&rows).Error; err != nil {
		return helper.MapDBError(err, "")
	}
	out := make([]dto.CampaignCategoryResponse, 0, len(rows))
	for _, m := range rows {
		out = append(out, dto.ToCampaignCategoryResponse(m))
	}
	return helper.JsonList(c, "ok", out, helper.BuildPaginationFromPage(total, p.Page, p.PerPage))
}

func (ctrl *CampaignCategoryController) GetCampaignCategoryByID(c *fiber.Ctx) error {
	db := ctrl.DB.WithContext(c.Context())
	cat, err := loadCategory(c, db)
	if err != nil {
		return err
	}
	resp := dto.ToCampaignCategoryResponse(cat)
	resp.Count = &dto.CampaignCategoryCounts{}
	if err := db.Model(&paymentModel.PaymentModel{}).
		Where("payment_campaign_category_id = ?", cat.CampaignCategoryID).
		Count(&resp.Count.Payments).Error; err != nil {
		return helper.MapDBError(err, "")
	}
	return helper.JsonOK(c, "ok", resp)
}

func (ctrl *CampaignCategoryController) CreateCampaignCategory(c *fiber.Ctx) error {
	var body dto.CreateCampaignCategoryRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	body.Normalize()
	if err := helper.Validate(body); err != nil {
		return err
	}
	if err := ensureCategoryNameFree(c, ctrl.DB, body.CampaignCategoryName, nil); err != nil {
		return err
	}
	cat := model.CampaignCategoryModel{
		CampaignCategoryName:        body.CampaignCategoryName,
		CampaignCategoryDescription: body.CampaignCategoryDescription,
	}
	if err := ctrl.DB.WithContext(c.Context()).Create(&cat).Error; err != nil {
		return helper.MapDBError(err, "")
	}
	return helper.JsonCreated(c, "Campaign category created", dto.ToCampaignCategoryResponse(cat))
}

func (ctrl *CampaignCategoryController) UpdateCampaignCategory(c *fiber.Ctx) error {
	var body dto.UpdateCampaignCategoryRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	body.Normalize()
	if err := helper.Validate(body); err != nil {
		return err
	}
	db := ctrl.DB.WithContext(c.Context())
	cat, err := loadCategory(c, db)
	if err != nil {
		return err
	}
	if body.CampaignCategoryName != nil && !strings.EqualFold(*body.CampaignCategoryName, cat.CampaignCategoryName) {
		if err := ensureCategoryNameFree(c, ctrl.DB, *body.CampaignCategoryName, &cat.CampaignCategoryID); err != nil {
			return err
		}
	}
	if body.CampaignCategoryName != nil {
		cat.CampaignCategoryName = *body.CampaignCategoryName
	}
	if body.CampaignCategoryDescription != nil {
		cat.CampaignCategoryDescription = body.CampaignCategoryDescription
	}
	if err := db.Save(&cat).Error; err != nil {
		return helper.MapDBError(err, "")
	}
	return helper.JsonUpdated(c, "Campaign category updated", dto.ToCampaignCategoryResponse(cat))
}

func (ctrl *CampaignCategoryController) DeleteCampaignCategory(c *fiber.Ctx) error {
	var deleted uuid.UUID
	err := ctrl.DB.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		cat, err := loadCategory(c, tx)
		if err != nil {
			return err
		}
		var n int64
		if err := tx.Model(&paymentModel.PaymentModel{}).
			Where("payment_campaign_category_id = ?", cat.CampaignCategoryID).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("Cannot delete campaign category: it has %d payment(s)", n))
		}
		deleted = cat.CampaignCategoryID
		return tx.Delete(&model.CampaignCategoryModel{}, "campaign_category_id = ?", cat.CampaignCategoryID).Error
	})
	if err != nil {
		return helper.MapDBError(err, "")
	}
	return helper.JsonDeleted(c, "Campaign category deleted", fiber.Map{"campaign_category_id": deleted})
}

func loadCategory(c *fiber.Ctx, db *gorm.DB) (model.CampaignCategoryModel, error) {
	var cat model.CampaignCategoryModel
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return cat, fiber.NewError(fiber.StatusBadRequest, "Invalid campaign category id")
	}
	if err := db.First(&cat, "campaign_category_id = ?", id).Error; err != nil {
		return cat, helper.MapDBError(err, "Campaign category not found")
	}
	return cat, nil
}

func ensureCategoryNameFree(c *fiber.Ctx, db *gorm.DB, name string, exclude *uuid.UUID) error {
	var scope func(*gorm.DB) *gorm.DB
	if exclude != nil {
		scope = func(q *gorm.DB) *gorm.DB { return q.Where("campaign_category_id <> ?", *exclude) }
	}
	taken, err := helper.NameTakenCI(c.Context(), db, "campaign_categories", "campaign_category_name", "", name, scope)
	if err != nil {
		return helper.MapDBError(err, "")
	}
	if taken {
		return fiber.NewError(fiber.StatusConflict, "A campaign category with this name already exists")
	}
	return nil
}
