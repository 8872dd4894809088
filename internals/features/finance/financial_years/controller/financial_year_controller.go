package controller

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"reporthub_backend/internals/features/finance/financial_years/dto"
	"reporthub_backend/internals/features/finance/financial_years/model"
	"reporthub_backend/internals/features/finance/financial_years/service"
	helper "reporthub_backend/internals/helpers"
	"reporthub_backend/internals/helpers/fiscal"
)

type FinancialYearController struct {
	DB  *gorm.DB
	Now func() time.Time
}

func NewFinancialYearController(db *gorm.DB) *FinancialYearController {
	return &FinancialYearController{DB: db, Now: time.Now}
}

func (ctrl *FinancialYearController) GetFinancialYears(c *fiber.Ctx) error {
	var rows []model.FinancialYearModel
	if err := ctrl.DB.WithContext(c.Context()).
		Order("financial_year_start_date DESC").
		Find(&rows).Error; err != nil {
		return helper.MapDBError(err, "")
	}
	out := make([]dto.FinancialYearResponse, 0, len(rows))
	for _, m := range rows {
		out = append(out, dto.ToFinancialYearResponse(m))
	}
	return helper.JsonList(c, "ok", out, helper.BuildPaginationFromPage(int64(len(out)), 1, max(len(out), 1)))
}

// GetCurrent: persisted current year, or the calendar year for today.
func (ctrl *FinancialYearController) GetCurrent(c *fiber.Ctx) error {
	r, err := service.ResolveCurrent(c.Context(), ctrl.DB, ctrl.Now())
	if err != nil {
		return helper.MapDBError(err, "")
	}
	return helper.JsonOK(c, "ok", r)
}

// Resolve: GET /financial-years/resolve?fy=FY2025
func (ctrl *FinancialYearController) Resolve(c *fiber.Ctx) error {
	label := strings.ToUpper(strings.TrimSpace(c.Query("fy")))
	if label == "" {
		return fiber.NewError(fiber.StatusBadRequest, "fy is required")
	}
	r, err := service.ResolveByLabel(c.Context(), ctrl.DB, label)
	if err != nil {
		return mapServiceError(err)
	}
	return helper.JsonOK(c, "ok", r)
}

func (ctrl *FinancialYearController) GetFinancialYearByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid financial year id")
	}
	var m model.FinancialYearModel
	if err := ctrl.DB.WithContext(c.Context()).First(&m, "financial_year_id = ?", id).Error; err != nil {
		return helper.MapDBError(err, "Financial year not found")
	}
	resp := fiber.Map{
		"financial_year": dto.ToFinancialYearResponse(m),
		"months":         m.Year().Months(),
	}
	return helper.JsonOK(c, "ok", resp)
}

func (ctrl *FinancialYearController) CreateFinancialYear(c *fiber.Ctx) error {
	var body dto.CreateFinancialYearRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	body.Normalize()
	if err := helper.Validate(body); err != nil {
		return err
	}
	if !fiscal.IsValidLabel(body.FinancialYearLabel) {
		return fiber.NewError(fiber.StatusBadRequest, fiscal.ErrInvalidLabel.Error())
	}

	var n int64
	if err := ctrl.DB.WithContext(c.Context()).Model(&model.FinancialYearModel{}).
		Where("financial_year_label = ?", body.FinancialYearLabel).Count(&n).Error; err != nil {
		return helper.MapDBError(err, "")
	}
	if n > 0 {
		return fiber.NewError(fiber.StatusConflict, "Financial year "+body.FinancialYearLabel+" already exists")
	}

	m, err := service.Create(c.Context(), ctrl.DB, body.FinancialYearLabel, body.FinancialYearIsCurrent)
	if err != nil {
		return mapServiceError(err)
	}
	log.Printf("[INFO] financial year created: %s current=%v", m.FinancialYearLabel, m.FinancialYearIsCurrent)
	return helper.JsonCreated(c, "Financial year created", dto.ToFinancialYearResponse(m))
}

// UpdateFinancialYear: a new label re-derives both dates; is_current=true moves the flag here.
func (ctrl *FinancialYearController) UpdateFinancialYear(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid financial year id")
	}
	var body dto.UpdateFinancialYearRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	body.Normalize()
	if err := helper.Validate(body); err != nil {
		return err
	}

	var m model.FinancialYearModel
	db := ctrl.DB.WithContext(c.Context())
	if err := db.First(&m, "financial_year_id = ?", id).Error; err != nil {
		return helper.MapDBError(err, "Financial year not found")
	}

	if body.FinancialYearLabel != nil && *body.FinancialYearLabel != m.FinancialYearLabel {
		y, err := fiscal.BoundsForLabel(*body.FinancialYearLabel)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if err := db.Model(&model.FinancialYearModel{}).Where("financial_year_id = ?", id).
			Updates(map[string]any{
				"financial_year_label":      y.Label,
				"financial_year_start_date": y.Start,
				"financial_year_end_date":   y.End,
			}).Error; err != nil {
			return helper.MapDBError(err, "")
		}
		m.FinancialYearLabel, m.FinancialYearStartDate, m.FinancialYearEndDate = y.Label, y.Start, y.End
	}

	if body.FinancialYearIsCurrent != nil {
		if *body.FinancialYearIsCurrent {
			updated, err := service.SetCurrent(c.Context(), ctrl.DB, id)
			if err != nil {
				return mapServiceError(err)
			}
			m = updated
		} else if m.FinancialYearIsCurrent {
			if err := db.Model(&model.FinancialYearModel{}).Where("financial_year_id = ?", id).
				Update("financial_year_is_current", false).Error; err != nil {
				return helper.MapDBError(err, "")
			}
			m.FinancialYearIsCurrent = false
		}
	}
	return helper.JsonUpdated(c, "Financial year updated", dto.ToFinancialYearResponse(m))
}

func (ctrl *FinancialYearController) SetCurrent(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid financial year id")
	}
	m, err := service.SetCurrent(c.Context(), ctrl.DB, id)
	if err != nil {
		return mapServiceError(err)
	}
	log.Printf("[INFO] financial year %s set as current", m.FinancialYearLabel)
	return helper.JsonUpdated(c, "Current financial year changed", dto.ToFinancialYearResponse(m))
}

func (ctrl *FinancialYearController) DeleteFinancialYear(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid financial year id")
	}
	if err := service.Delete(c.Context(), ctrl.DB, id); err != nil {
		return mapServiceError(err)
	}
	return helper.JsonDeleted(c, "Financial year deleted", fiber.Map{"financial_year_id": id})
}

func mapServiceError(err error) error {
	switch {
	case errors.Is(err, fiscal.ErrInvalidLabel):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, "Financial year not found")
	case errors.Is(err, service.ErrDeleteCurrent):
		return fiber.NewError(fiber.StatusBadRequest, "Cannot delete the current financial year")
	}
	return helper.MapDBError(err, "")
}
