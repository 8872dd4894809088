package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"reporthub_backend/internals/databases/testdb"
	departmentModel "reporthub_backend/internals/features/catalog/departments/model"
	productModel "reporthub_backend/internals/features/catalog/product_types/model"
	"reporthub_backend/internals/features/finance/price_sync/service"
	transactionModel "reporthub_backend/internals/features/finance/transactions/model"
	txService "reporthub_backend/internals/features/finance/transactions/service"
	"reporthub_backend/internals/helpers/fiscal"
)

var now = time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC)

func seedProduct(t *testing.T, db *gorm.DB, name string, price int64) productModel.ProductTypeModel {
	t.Helper()
	var dept departmentModel.DepartmentModel
	if err := db.Where("department_name = ?", "Publishing").Take(&dept).Error; err != nil {
		dept = departmentModel.DepartmentModel{DepartmentName: "Publishing"}
		require.NoError(t, db.Create(&dept).Error)
	}
	pt := productModel.ProductTypeModel{
		ProductTypeDepartmentID: dept.DepartmentID,
		ProductTypeName:         name,
		ProductTypeUnitPrice:    decimal.NewFromInt(price),
		ProductTypeIsActive:     true,
	}
	require.NoError(t, db.Create(&pt).Error)
	return pt
}

func seedTransaction(t *testing.T, db *gorm.DB, date time.Time, items ...transactionModel.TransactionLineItemModel) transactionModel.TransactionModel {
	t.Helper()
	tr := transactionModel.TransactionModel{TransactionChurchID: uuid.New(), TransactionDate: date}
	require.NoError(t, txService.CreateWithLineItems(db, &tr, items))
	return tr
}

func TestSync_UpdatesOnlyMismatchesInWindow(t *testing.T) {
	db := testdb.New(t)
	ctx := context.Background()
	rhapsody := seedProduct(t, db, "Rhapsody", 200)
	teevo := seedProduct(t, db, "Teevo", 50)

	inWindow := seedTransaction(t, db, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		transactionModel.NewLineItem(rhapsody.ProductTypeID, 3, decimal.NewFromInt(150)),
		transactionModel.NewLineItem(teevo.ProductTypeID, 2, decimal.NewFromInt(50)),
	)
	seedTransaction(t, db, time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
		transactionModel.NewLineItem(rhapsody.ProductTypeID, 1, decimal.NewFromInt(100)),
	)

	res, err := service.Sync(ctx, db, "2025-03", now)
	require.NoError(t, err)
	assert.Equal(t, 1, res.LineItemsUpdated)
	assert.Equal(t, 1, res.TransactionsAffected)
	require.Len(t, res.Changes, 1)
	assert.Equal(t, inWindow.TransactionID, res.Changes[0].TransactionID)
	assert.True(t, res.Changes[0].NewTotal.Equal(decimal.NewFromInt(600)))

	var items []transactionModel.TransactionLineItemModel
	require.NoError(t, db.Where("line_item_product_type_id = ?", rhapsody.ProductTypeID).
		Order("line_item_quantity DESC").Find(&items).Error)
	require.Len(t, items, 2)
	assert.True(t, items[0].LineItemUnitPrice.Equal(decimal.NewFromInt(200)))
	assert.True(t, items[0].LineItemTotalAmount.Equal(decimal.NewFromInt(600)))
	// April is outside the window
	assert.True(t, items[1].LineItemUnitPrice.Equal(decimal.NewFromInt(100)))
}

func TestSync_Idempotent(t *testing.T) {
	db := testdb.New(t)
	ctx := context.Background()
	rhapsody := seedProduct(t, db, "Rhapsody", 200)
	seedTransaction(t, db, time.Date(2025, 5, 20, 0, 0, 0, 0, time.UTC),
		transactionModel.NewLineItem(rhapsody.ProductTypeID, 4, decimal.NewFromInt(180)),
	)

	first, err := service.Sync(ctx, db, "2025-05", now)
	require.NoError(t, err)
	assert.Equal(t, 1, first.LineItemsUpdated)

	second, err := service.Sync(ctx, db, "2025-05", now)
	require.NoError(t, err)
	assert.Equal(t, 0, second.LineItemsUpdated)
	assert.Equal(t, "All prices are already up to date", second.Message)
	assert.Empty(t, second.Changes)
}

func TestSync_NoMismatchesLeavesRowsUntouched(t *testing.T) {
	db := testdb.New(t)
	ctx := context.Background()
	rhapsody := seedProduct(t, db, "Rhapsody", 200)
	tr := seedTransaction(t, db, time.Date(2025, 5, 2, 0, 0, 0, 0, time.UTC),
		transactionModel.NewLineItem(rhapsody.ProductTypeID, 1, decimal.NewFromInt(200)),
	)
	before := tr.LineItems[0]

	res, err := service.Sync(ctx, db, "2025-05", now)
	require.NoError(t, err)
	assert.Equal(t, 0, res.LineItemsUpdated)

	var after transactionModel.TransactionLineItemModel
	require.NoError(t, db.First(&after, "line_item_id = ?", before.LineItemID).Error)
	assert.True(t, after.LineItemTotalAmount.Equal(before.LineItemTotalAmount))
	assert.Equal(t, before.LineItemUpdatedAt.Unix(), after.LineItemUpdatedAt.Unix())
}

func TestPreview_DoesNotWrite(t *testing.T) {
	db := testdb.New(t)
	ctx := context.Background()
	rhapsody := seedProduct(t, db, "Rhapsody", 200)
	seedTransaction(t, db, time.Date(2025, 5, 2, 0, 0, 0, 0, time.UTC),
		transactionModel.NewLineItem(rhapsody.ProductTypeID, 1, decimal.NewFromInt(120)),
	)

	res, err := service.Preview(ctx, db, "2025-05", now)
	require.NoError(t, err)
	assert.Equal(t, 1, res.LineItemsUpdated)

	var li transactionModel.TransactionLineItemModel
	require.NoError(t, db.Take(&li).Error)
	assert.True(t, li.LineItemUnitPrice.Equal(decimal.NewFromInt(120)))
}

func TestValidatePeriod(t *testing.T) {
	_, err := service.ValidatePeriod("2025-13", now)
	assert.ErrorIs(t, err, fiscal.ErrInvalidPeriod)
	_, err = service.ValidatePeriod("25-01", now)
	assert.ErrorIs(t, err, fiscal.ErrInvalidPeriod)

	_, err = service.ValidatePeriod("2023-06", now)
	assert.NoError(t, err)
	_, err = service.ValidatePeriod("2023-05", now)
	assert.ErrorIs(t, err, service.ErrPeriodTooOld)
}
