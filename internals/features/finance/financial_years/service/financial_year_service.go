package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"reporthub_backend/internals/features/finance/financial_years/model"
	"reporthub_backend/internals/helpers/fiscal"
)

var (
	ErrNotFound      = errors.New("financial year not found")
	ErrDeleteCurrent = errors.New("the current financial year cannot be deleted")
)

// Resolved is a financial year, persisted or computed from the calendar rule.
type Resolved struct {
	fiscal.Year
	ID        *uuid.UUID `json:"id,omitempty"`
	IsCurrent bool       `json:"isCurrent"`
	Persisted bool       `json:"persisted"`
}

func fromModel(m model.FinancialYearModel) Resolved {
	id := m.FinancialYearID
	return Resolved{Year: m.Year(), ID: &id, IsCurrent: m.FinancialYearIsCurrent, Persisted: true}
}

// ResolveCurrent returns the row flagged current, or the calendar year containing now.
func ResolveCurrent(ctx context.Context, db *gorm.DB, now time.Time) (Resolved, error) {
	var m model.FinancialYearModel
	err := db.WithContext(ctx).Where("financial_year_is_current = ?", true).Take(&m).Error
	if err == nil {
		return fromModel(m), nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return Resolved{}, err
	}
	return Resolved{Year: fiscal.Bounds(now)}, nil
}

// ResolveByLabel validates the label, then prefers the persisted row.
func ResolveByLabel(ctx context.Context, db *gorm.DB, label string) (Resolved, error) {
	y, err := fiscal.BoundsForLabel(label)
	if err != nil {
		return Resolved{}, err
	}
	var m model.FinancialYearModel
	err = db.WithContext(ctx).Where("financial_year_label = ?", label).Take(&m).Error
	if err == nil {
		return fromModel(m), nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return Resolved{}, err
	}
	return Resolved{Year: y}, nil
}

// Resolve picks ?fy= when given, else the current year.
func Resolve(ctx context.Context, db *gorm.DB, label string, now time.Time) (Resolved, error) {
	if label == "" {
		return ResolveCurrent(ctx, db, now)
	}
	return ResolveByLabel(ctx, db, label)
}

// SetCurrent clears the flag everywhere and sets it on id, in one transaction.
func SetCurrent(ctx context.Context, db *gorm.DB, id uuid.UUID) (model.FinancialYearModel, error) {
	var out model.FinancialYearModel
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&out, "financial_year_id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if err := clearCurrent(tx); err != nil {
			return err
		}
		out.FinancialYearIsCurrent = true
		return tx.Model(&model.FinancialYearModel{}).
			Where("financial_year_id = ?", id).
			Update("financial_year_is_current", true).Error
	})
	return out, err
}

// EnsureYear makes sure the year containing now exists. A newly created year
// becomes current; an existing one only does when no year is flagged, so a
// year picked through SetCurrent survives the daily cron run.
func EnsureYear(ctx context.Context, db *gorm.DB, now time.Time) (model.FinancialYearModel, bool, error) {
	y := fiscal.Bounds(now)
	var out model.FinancialYearModel
	created := false

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("financial_year_label = ?", y.Label).Take(&out).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			if err := clearCurrent(tx); err != nil {
				return err
			}
			out = model.FromYear(y)
			out.FinancialYearIsCurrent = true
			created = true
			return tx.Create(&out).Error
		case err != nil:
			return err
		}
		if out.FinancialYearIsCurrent {
			return nil
		}
		var flagged int64
		if err := tx.Model(&model.FinancialYearModel{}).
			Where("financial_year_is_current = ?", true).
			Count(&flagged).Error; err != nil {
			return err
		}
		if flagged > 0 {
			return nil
		}
		out.FinancialYearIsCurrent = true
		return tx.Model(&model.FinancialYearModel{}).
			Where("financial_year_id = ?", out.FinancialYearID).
			Update("financial_year_is_current", true).Error
	})
	if err == nil && created {
		log.Printf("[CRON] financial year %s created and set current", out.FinancialYearLabel)
	}
	return out, created, err
}

// Create persists the year for label. Dates always come from the label.
func Create(ctx context.Context, db *gorm.DB, label string, makeCurrent bool) (model.FinancialYearModel, error) {
	y, err := fiscal.BoundsForLabel(label)
	if err != nil {
		return model.FinancialYearModel{}, err
	}
	m := model.FromYear(y)
	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if makeCurrent {
			if err := clearCurrent(tx); err != nil {
				return err
			}
			m.FinancialYearIsCurrent = true
		}
		return tx.Create(&m).Error
	})
	return m, err
}

// Delete removes a non-current year.
func Delete(ctx context.Context, db *gorm.DB, id uuid.UUID) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var m model.FinancialYearModel
		if err := tx.First(&m, "financial_year_id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if m.FinancialYearIsCurrent {
			return ErrDeleteCurrent
		}
		return tx.Delete(&m).Error
	})
}

func clearCurrent(tx *gorm.DB) error {
	return tx.Model(&model.FinancialYearModel{}).
		Where("financial_year_is_current = ?", true).
		Update("financial_year_is_current", false).Error
}
