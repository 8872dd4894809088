package organization

import (
	"log"
	"os"

	"github.com/bytedance/sonic"
	"gorm.io/gorm"

	churchModel "reporthub_backend/internals/features/organization/churches/model"
	groupModel "reporthub_backend/internals/features/organization/groups/model"
	zoneModel "reporthub_backend/internals/features/organization/zones/model"
)

type ZoneSeed struct {
	Name     string      `json:"name"`
	Currency string      `json:"currency"`
	Groups   []GroupSeed `json:"groups"`
}

type GroupSeed struct {
	Name     string   `json:"name"`
	Churches []string `json:"churches"`
}

// SeedOrganizationFromJSON creates zones → groups → churches, skipping names that already exist.
func SeedOrganizationFromJSON(db *gorm.DB, filePath string) error {
	log.Println("📥 Reading file:", filePath)
	file, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	var zones []ZoneSeed
	if err := sonic.Unmarshal(file, &zones); err != nil {
		return err
	}

	for _, z := range zones {
		var zone zoneModel.ZoneModel
		err := db.Where("LOWER(zone_name) = LOWER(?)", z.Name).
			Attrs(zoneModel.ZoneModel{ZoneName: z.Name, ZoneCurrency: z.Currency}).
			FirstOrCreate(&zone).Error
		if err != nil {
			log.Printf("❌ zone %q: %v", z.Name, err)
			continue
		}

		for _, g := range z.Groups {
			var group groupModel.GroupModel
			err := db.Where("group_zone_id = ? AND LOWER(group_name) = LOWER(?)", zone.ZoneID, g.Name).
				Attrs(groupModel.GroupModel{GroupZoneID: zone.ZoneID, GroupName: g.Name}).
				FirstOrCreate(&group).Error
			if err != nil {
				log.Printf("❌ group %q: %v", g.Name, err)
				continue
			}

			for _, name := range g.Churches {
				var church churchModel.ChurchModel
				err := db.Where("LOWER(church_name) = LOWER(?)", name).
					Attrs(churchModel.ChurchModel{ChurchGroupID: group.GroupID, ChurchName: name}).
					FirstOrCreate(&church).Error
				if err != nil {
					log.Printf("❌ church %q: %v", name, err)
				}
			}
		}
		log.Printf("✅ zone %q seeded", z.Name)
	}
	return nil
}
