package seeds_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reporthub_backend/internals/databases/testdb"
	productModel "reporthub_backend/internals/features/catalog/product_types/model"
	churchModel "reporthub_backend/internals/features/organization/churches/model"
	"reporthub_backend/internals/features/users/user/model"
	"reporthub_backend/internals/seeds"
)

func TestRunAllSeeds_Idempotent(t *testing.T) {
	db := testdb.New(t)
	require.NoError(t, seeds.RunAllSeeds(db, "data"))
	require.NoError(t, seeds.RunAllSeeds(db, "data"))

	var n int64
	require.NoError(t, db.Model(&churchModel.ChurchModel{}).Count(&n).Error)
	assert.EqualValues(t, 4, n)
	require.NoError(t, db.Model(&productModel.ProductTypeModel{}).Count(&n).Error)
	assert.EqualValues(t, 2, n)

	var admin model.UserModel
	require.NoError(t, db.Where("user_role = ?", "ZONE_ADMIN").Take(&admin).Error)
	assert.NotNil(t, admin.UserZoneID)
	assert.True(t, admin.CheckPassword("change-me-now"))
}
