package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reporthub_backend/internals/databases/testdb"
	"reporthub_backend/internals/features/finance/financial_years/model"
	"reporthub_backend/internals/features/finance/financial_years/service"
	"reporthub_backend/internals/helpers/fiscal"
)

func TestEnsureYear_Idempotent(t *testing.T) {
	db := testdb.New(t)
	ctx := context.Background()
	now := time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC)

	m, created, err := service.EnsureYear(ctx, db, now)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "FY2025", m.FinancialYearLabel)
	assert.True(t, m.FinancialYearIsCurrent)

	_, created, err = service.EnsureYear(ctx, db, now)
	require.NoError(t, err)
	assert.False(t, created)

	var n int64
	require.NoError(t, db.Model(&model.FinancialYearModel{}).Count(&n).Error)
	assert.EqualValues(t, 1, n)
}

func TestEnsureYear_RolloverOnDecemberFirst(t *testing.T) {
	db := testdb.New(t)
	ctx := context.Background()

	_, _, err := service.EnsureYear(ctx, db, time.Date(2025, time.November, 30, 23, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	m, created, err := service.EnsureYear(ctx, db, time.Date(2025, time.December, 1, 0, 5, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "FY2026", m.FinancialYearLabel)

	var current []model.FinancialYearModel
	require.NoError(t, db.Where("financial_year_is_current = ?", true).Find(&current).Error)
	require.Len(t, current, 1)
	assert.Equal(t, "FY2026", current[0].FinancialYearLabel)
}

func TestSetCurrent_KeepsSingleCurrent(t *testing.T) {
	db := testdb.New(t)
	ctx := context.Background()

	a, err := service.Create(ctx, db, "FY2024", true)
	require.NoError(t, err)
	b, err := service.Create(ctx, db, "FY2025", false)
	require.NoError(t, err)

	got, err := service.SetCurrent(ctx, db, b.FinancialYearID)
	require.NoError(t, err)
	assert.True(t, got.FinancialYearIsCurrent)

	var reloaded model.FinancialYearModel
	require.NoError(t, db.First(&reloaded, "financial_year_id = ?", a.FinancialYearID).Error)
	assert.False(t, reloaded.FinancialYearIsCurrent)

	var n int64
	require.NoError(t, db.Model(&model.FinancialYearModel{}).Where("financial_year_is_current = ?", true).Count(&n).Error)
	assert.EqualValues(t, 1, n)
}

func TestDelete_CurrentYearBlocked(t *testing.T) {
	db := testdb.New(t)
	ctx := context.Background()

	cur, err := service.Create(ctx, db, "FY2025", true)
	require.NoError(t, err)
	old, err := service.Create(ctx, db, "FY2023", false)
	require.NoError(t, err)

	assert.ErrorIs(t, service.Delete(ctx, db, cur.FinancialYearID), service.ErrDeleteCurrent)
	assert.NoError(t, service.Delete(ctx, db, old.FinancialYearID))
	assert.ErrorIs(t, service.Delete(ctx, db, old.FinancialYearID), service.ErrNotFound)
}

func TestResolve(t *testing.T) {
	db := testdb.New(t)
	ctx := context.Background()
	now := time.Date(2024, time.December, 15, 0, 0, 0, 0, time.UTC)

	r, err := service.Resolve(ctx, db, "", now)
	require.NoError(t, err)
	assert.Equal(t, "FY2025", r.Label)
	assert.False(t, r.Persisted)

	_, err = service.Create(ctx, db, "FY2022", true)
	require.NoError(t, err)
	r, err = service.Resolve(ctx, db, "", now)
	require.NoError(t, err)
	assert.Equal(t, "FY2022", r.Label)
	assert.True(t, r.Persisted)
	assert.True(t, r.IsCurrent)

	r, err = service.ResolveByLabel(ctx, db, "FY2030")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2029, time.December, 1, 0, 0, 0, 0, time.UTC), r.Start)
	assert.False(t, r.Persisted)

	_, err = service.ResolveByLabel(ctx, db, "2025")
	assert.ErrorIs(t, err, fiscal.ErrInvalidLabel)
}

func TestEnsureYear_KeepsChosenCurrentYear(t *testing.T) {
	db := testdb.New(t)
	ctx := context.Background()

	_, _, err := service.EnsureYear(ctx, db, time.Date(2025, time.March, 10, 0, 5, 0, 0, time.UTC))
	require.NoError(t, err)
	prev, err := service.Create(ctx, db, "FY2024", false)
	require.NoError(t, err)
	_, err = service.SetCurrent(ctx, db, prev.FinancialYearID)
	require.NoError(t, err)

	m, created, err := service.EnsureYear(ctx, db, time.Date(2025, time.March, 11, 0, 5, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, "FY2025", m.FinancialYearLabel)
	assert.False(t, m.FinancialYearIsCurrent)

	r, err := service.ResolveCurrent(ctx, db, time.Date(2025, time.March, 11, 0, 5, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, "FY2024", r.Label)

	// nothing flagged: the calendar year takes the flag back
	require.NoError(t, db.Model(&model.FinancialYearModel{}).
		Where("financial_year_id = ?", prev.FinancialYearID).
		Update("financial_year_is_current", false).Error)
	m, _, err = service.EnsureYear(ctx, db, time.Date(2025, time.March, 12, 0, 5, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.True(t, m.FinancialYearIsCurrent)
}
