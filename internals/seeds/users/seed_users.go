package users

import (
	"log"
	"os"
	"strings"

	"github.com/bytedance/sonic"
	"gorm.io/gorm"

	zoneModel "reporthub_backend/internals/features/organization/zones/model"
	"reporthub_backend/internals/features/users/user/model"
)

type UserSeed struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
	ZoneName string `json:"zone_name"`
}

// SeedUsersFromJSON inserts users that do not exist yet (matched by email).
// SEED_ADMIN_PASSWORD overrides every seeded password when set.
func SeedUsersFromJSON(db *gorm.DB, filePath string) error {
	log.Println("📥 Reading file:", filePath)
	file, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	var inputs []UserSeed
	if err := sonic.Unmarshal(file, &inputs); err != nil {
		return err
	}
	override := os.Getenv("SEED_ADMIN_PASSWORD")

	for _, data := range inputs {
		email := strings.ToLower(strings.TrimSpace(data.Email))
		var n int64
		if err := db.Model(&model.UserModel{}).Where("user_email = ?", email).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			log.Printf("ℹ️ user %s already exists, skipped", email)
			continue
		}

		u := model.UserModel{
			UserName:     data.Name,
			UserEmail:    email,
			UserRole:     strings.ToUpper(data.Role),
			UserIsActive: true,
		}
		pw := data.Password
		if override != "" {
			pw = override
		}
		if err := u.SetPassword(pw); err != nil {
			log.Printf("❌ hash password for %s: %v", email, err)
			continue
		}
		if data.ZoneName != "" {
			var z zoneModel.ZoneModel
			if err := db.Where("LOWER(zone_name) = LOWER(?)", data.ZoneName).Take(&z).Error; err != nil {
				log.Printf("❌ zone %q for %s: %v", data.ZoneName, email, err)
				continue
			}
			u.UserZoneID = &z.ZoneID
		}

		if err := db.Omit("Zone", "Department").Create(&u).Error; err != nil {
			log.Printf("❌ insert user %s: %v", email, err)
		} else {
			log.Printf("✅ inserted user %s", email)
		}
	}
	return nil
}
