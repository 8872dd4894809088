package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"reporthub_backend/internals/features/finance/campaign_categories/model"
	helper "reporthub_backend/internals/helpers"
)

// FindByName is a case-insensitive exact match. (nil, nil) when absent.
func FindByName(ctx context.Context, db *gorm.DB, name string) (*model.CampaignCategoryModel, error) {
	var cat model.CampaignCategoryModel
	err := db.WithContext(ctx).
		Where("LOWER(campaign_category_name) = LOWER(?)", helper.CleanName(name)).
		Take(&cat).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cat, nil
}

// FindOrCreate returns the category called name; created reports whether it was
// inserted by this call (flagged is_auto_created).
func FindOrCreate(ctx context.Context, db *gorm.DB, name string) (cat *model.CampaignCategoryModel, created bool, err error) {
	cat, err = FindByName(ctx, db, name)
	if err != nil || cat != nil {
		return cat, false, err
	}
	cat = &model.CampaignCategoryModel{
		CampaignCategoryName:          helper.CleanName(name),
		CampaignCategoryIsAutoCreated: true,
	}
	if err := db.WithContext(ctx).Create(cat).Error; err != nil {
		return nil, false, err
	}
	return cat, true, nil
}
