package controller

import (
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"reporthub_backend/internals/configs"
	"reporthub_backend/internals/constants"
	"reporthub_backend/internals/features/uploads/dto"
	"reporthub_backend/internals/features/uploads/model"
	"reporthub_backend/internals/features/uploads/service"
	helper "reporthub_backend/internals/helpers"
	helperAuth "reporthub_backend/internals/helpers/auth"
	"reporthub_backend/internals/helpers/fiscal"
)

const defaultUploadMaxBytes = 10 * 1024 * 1024

type UploadController struct {
	DB *gorm.DB
}

func NewUploadController(db *gorm.DB) *UploadController {
	return &UploadController{DB: db}
}

// =========================
// POST /api/uploads (multipart: file, uploadType, orderPeriod)
// =========================
func (ctrl *UploadController) Upload(c *fiber.Ctx) error {
	var uploadType string
	switch strings.ToLower(strings.TrimSpace(c.FormValue("uploadType"))) {
	case "transactions":
		uploadType = model.UploadTypeTransactions
	case "orders":
		uploadType = model.UploadTypeOrders
	case "":
		return fiber.NewError(fiber.StatusBadRequest, "uploadType is required")
	default:
		return fiber.NewError(fiber.StatusBadRequest, "uploadType must be transactions or orders")
	}

	orderPeriod := strings.TrimSpace(c.FormValue("orderPeriod"))
	if uploadType == model.UploadTypeOrders {
		if orderPeriod == "" {
			return fiber.NewError(fiber.StatusBadRequest, "orderPeriod is required for order uploads")
		}
		if !fiscal.IsValidPeriod(orderPeriod) {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid orderPeriod, expected YYYY-MM")
		}
	}
	return ctrl.process(c, uploadType, orderPeriod)
}

// =========================
// POST /api/churches/upload (multipart: file)
// =========================
func (ctrl *UploadController) UploadChurches(c *fiber.Ctx) error {
	return ctrl.process(c, model.UploadTypeChurches, "")
}

func (ctrl *UploadController) process(c *fiber.Ctx, uploadType, orderPeriod string) error {
	scope, err := helperAuth.ResolveZoneScope(c)
	if err != nil {
		return err
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "file is required")
	}
	if constants.DetectUploadFileType(fh.Filename) == constants.UploadFileUnknown {
		return fiber.NewError(fiber.StatusBadRequest, service.ErrUnsupportedFile.Error())
	}
	limit := int64(configs.UploadMaxBytes)
	if limit <= 0 {
		limit = defaultUploadMaxBytes
	}
	if fh.Size > limit {
		return fiber.NewError(fiber.StatusRequestEntityTooLarge, fmt.Sprintf("File too large (max %d MB)", limit/(1024*1024)))
	}

	f, err := fh.Open()
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Could not read uploaded file")
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, limit+1))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Could not read uploaded file")
	}
	if int64(len(data)) > limit {
		return fiber.NewError(fiber.StatusRequestEntityTooLarge, fmt.Sprintf("File too large (max %d MB)", limit/(1024*1024)))
	}

	table, err := service.ReadTable(fh.Filename, data)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	out, err := service.Run(c.Context(), ctrl.DB, table, service.Options{
		UploadType:        uploadType,
		FileName:          fh.Filename,
		OrderPeriod:       orderPeriod,
		UploadedBy:        helperAuth.OptionalUserID(c),
		Scope:             scope,
		DefaultDepartment: configs.OrderDefaultDepartment,
	})
	if err != nil {
		if errors.Is(err, fiscal.ErrInvalidPeriod) {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid orderPeriod, expected YYYY-MM")
		}
		log.Printf("[UPLOAD] %s %q failed: %v", uploadType, fh.Filename, err)
		return helper.MapDBError(err, "")
	}
	return c.Status(fiber.StatusOK).JSON(out)
}

// =========================
// GET /api/uploads (?upload_type= ?status=)
// =========================
func (ctrl *UploadController) GetUploads(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 20, 100)
	q := ctrl.DB.WithContext(c.Context()).Model(&model.UploadHistoryModel{})

	if s := strings.ToUpper(strings.TrimSpace(c.Query("upload_type"))); s != "" {
		q = q.Where("upload_type = ?", s)
	}
	if s := strings.ToUpper(strings.TrimSpace(c.Query("status"))); s != "" {
		q = q.Where("upload_status = ?", s)
	}
	if helperAuth.GetRole(c) == constants.RoleZoneAdmin {
		if uid := helperAuth.OptionalUserID(c); uid != nil {
			q = q.Where("upload_uploaded_by = ?", *uid)
		}
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.MapDBError(err, "")
	}
	var rows []model.UploadHistoryModel
	if err := q.Order("upload_created_at DESC").Offset(p.Offset).Limit(p.Limit).Find(&rows).Error; err != nil {
		return helper.MapDBError(err, "")
	}
	out := make([]dto.UploadHistoryResponse, 0, len(rows))
	for _, m := range rows {
		out = append(out, dto.ToUploadHistoryResponse(m, false))
	}
	return helper.JsonList(c, "ok", out, helper.BuildPaginationFromPage(total, p.Page, p.PerPage))
}

func (ctrl *UploadController) GetUploadByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid upload id")
	}
	var m model.UploadHistoryModel
	if err := ctrl.DB.WithContext(c.Context()).First(&m, "upload_id = ?", id).Error; err != nil {
		return helper.MapDBError(err, "Upload not found")
	}
	if helperAuth.GetRole(c) == constants.RoleZoneAdmin {
		uid := helperAuth.OptionalUserID(c)
		if uid == nil || m.UploadUploadedBy == nil || *m.UploadUploadedBy != *uid {
			return fiber.NewError(fiber.StatusForbidden, "You can only view your own uploads")
		}
	}
	return helper.JsonOK(c, "ok", dto.ToUploadHistoryResponse(m, true))
}
