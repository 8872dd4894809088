package catalog

import (
	"log"
	"os"

	"github.com/bytedance/sonic"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	departmentModel "reporthub_backend/internals/features/catalog/departments/model"
	productModel "reporthub_backend/internals/features/catalog/product_types/model"
	categoryModel "reporthub_backend/internals/features/finance/campaign_categories/model"
)

type CatalogSeed struct {
	Departments []DepartmentSeed `json:"departments"`
	Categories  []string         `json:"campaign_categories"`
}

type DepartmentSeed struct {
	Name     string        `json:"name"`
	Products []ProductSeed `json:"products"`
}

type ProductSeed struct {
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

func SeedCatalogFromJSON(db *gorm.DB, filePath string) error {
	log.Println("📥 Reading file:", filePath)
	file, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	var in CatalogSeed
	if err := sonic.Unmarshal(file, &in); err != nil {
		return err
	}

	for _, d := range in.Departments {
		var dept departmentModel.DepartmentModel
		err := db.Where("LOWER(department_name) = LOWER(?)", d.Name).
			Attrs(departmentModel.DepartmentModel{DepartmentName: d.Name}).
			FirstOrCreate(&dept).Error
		if err != nil {
			log.Printf("❌ department %q: %v", d.Name, err)
			continue
		}
		for _, p := range d.Products {
			var prod productModel.ProductTypeModel
			err := db.Where("LOWER(product_type_name) = LOWER(?)", p.Name).
				Attrs(productModel.ProductTypeModel{
					ProductTypeDepartmentID: dept.DepartmentID,
					ProductTypeName:         p.Name,
					ProductTypeUnitPrice:    p.UnitPrice,
					ProductTypeIsActive:     true,
				}).
				FirstOrCreate(&prod).Error
			if err != nil {
				log.Printf("❌ product type %q: %v", p.Name, err)
			}
		}
	}

	for _, name := range in.Categories {
		var cat categoryModel.CampaignCategoryModel
		err := db.Where("LOWER(campaign_category_name) = LOWER(?)", name).
			Attrs(categoryModel.CampaignCategoryModel{CampaignCategoryName: name}).
			FirstOrCreate(&cat).Error
		if err != nil {
			log.Printf("❌ campaign category %q: %v", name, err)
		}
	}
	log.Printf("✅ catalog seeded: %d department(s), %d campaign categor(ies)", len(in.Departments), len(in.Categories))
	return nil
}
