package helper

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// NameTakenCI reports whether value already exists in table.column, case-insensitively.
// scopeFn may narrow the search (tenant, parent id, excluding the row being updated).
// Soft-deleted rows are skipped when softDeleteColumn is set.
func NameTakenCI(
	ctx context.Context,
	db *gorm.DB,
	table, column, softDeleteColumn, value string,
	scopeFn func(*gorm.DB) *gorm.DB,
) (bool, error) {
	q := db.WithContext(ctx).Table(table).
		Where(fmt.Sprintf("LOWER(%s) = LOWER(?)", column), CleanName(value))
	if softDeleteColumn != "" {
		q = q.Where(fmt.Sprintf("%s IS NULL", softDeleteColumn))
	}
	if scopeFn != nil {
		q = scopeFn(q)
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}
