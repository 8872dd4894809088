package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	departmentModel "reporthub_backend/internals/features/catalog/departments/model"
	"reporthub_backend/internals/features/catalog/product_types/model"
	helper "reporthub_backend/internals/helpers"
)

// FindByName is a case-insensitive exact match on product name. (nil, nil) when absent.
func FindByName(ctx context.Context, db *gorm.DB, name string) (*model.ProductTypeModel, error) {
	var pt model.ProductTypeModel
	err := db.WithContext(ctx).
		Where("LOWER(product_type_name) = LOWER(?)", helper.CleanName(name)).
		Take(&pt).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &pt, nil
}

// FindOrCreateDepartment returns the department called name, creating it if missing.
func FindOrCreateDepartment(ctx context.Context, db *gorm.DB, name string) (*departmentModel.DepartmentModel, error) {
	name = helper.CleanName(name)
	var dept departmentModel.DepartmentModel
	err := db.WithContext(ctx).Where("LOWER(department_name) = LOWER(?)", name).Take(&dept).Error
	if err == nil {
		return &dept, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	dept = departmentModel.DepartmentModel{DepartmentName: name}
	if err := db.WithContext(ctx).Create(&dept).Error; err != nil {
		return nil, err
	}
	return &dept, nil
}

// CreateAuto registers a product type seen for the first time in an order sheet.
// Price starts at 0 until an admin sets it; price sync then back-fills line items.
func CreateAuto(ctx context.Context, db *gorm.DB, name string, departmentID uuid.UUID) (*model.ProductTypeModel, error) {
	pt := model.ProductTypeModel{
		ProductTypeDepartmentID: departmentID,
		ProductTypeName:         helper.CleanName(name),
		ProductTypeUnitPrice:    decimal.Zero,
		ProductTypeIsActive:     true,
	}
	if err := db.WithContext(ctx).Create(&pt).Error; err != nil {
		return nil, err
	}
	return &pt, nil
}
