package seeds

import (
	"log"

	"gorm.io/gorm"

	"reporthub_backend/internals/seeds/catalog"
	"reporthub_backend/internals/seeds/organization"
	"reporthub_backend/internals/seeds/users"
)

// RunAllSeeds loads the JSON fixtures under dir in dependency order.
func RunAllSeeds(db *gorm.DB, dir string) error {
	//* Organization
	if err := organization.SeedOrganizationFromJSON(db, dir+"/data_organization.json"); err != nil {
		return err
	}

	//* Catalog
	if err := catalog.SeedCatalogFromJSON(db, dir+"/data_catalog.json"); err != nil {
		return err
	}

	//* Users
	if err := users.SeedUsersFromJSON(db, dir+"/data_users.json"); err != nil {
		return err
	}
	log.Println("✅ Seeds done.")
	return nil
}
