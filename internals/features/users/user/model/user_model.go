package model

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	departmentModel "reporthub_backend/internals/features/catalog/departments/model"
	zoneModel "reporthub_backend/internals/features/organization/zones/model"
)

type UserModel struct {
	UserID           uuid.UUID  `gorm:"column:user_id;type:uuid;primaryKey" json:"user_id"`
	UserName         string     `gorm:"column:user_name;type:varchar(120);not null" json:"user_name"`
	UserEmail        string     `gorm:"column:user_email;type:varchar(255);not null" json:"user_email"`
	UserPasswordHash *string    `gorm:"column:user_password_hash" json:"-"`
	UserRole         string     `gorm:"column:user_role;type:varchar(20);not null" json:"user_role"`
	UserZoneID       *uuid.UUID `gorm:"column:user_zone_id;type:uuid;index" json:"user_zone_id,omitempty"`
	UserDepartmentID *uuid.UUID `gorm:"column:user_department_id;type:uuid;index" json:"user_department_id,omitempty"`
	UserIsActive     bool       `gorm:"column:user_is_active;not null" json:"user_is_active"`

	UserCreatedAt time.Time      `gorm:"column:user_created_at;autoCreateTime" json:"user_created_at"`
	UserUpdatedAt time.Time      `gorm:"column:user_updated_at;autoUpdateTime" json:"user_updated_at"`
	UserDeletedAt gorm.DeletedAt `gorm:"column:user_deleted_at;index" json:"-"`

	Zone       *zoneModel.ZoneModel             `gorm:"foreignKey:UserZoneID;references:ZoneID" json:"zone,omitempty"`
	Department *departmentModel.DepartmentModel `gorm:"foreignKey:UserDepartmentID;references:DepartmentID" json:"department,omitempty"`
}

func (UserModel) TableName() string { return "users" }

func (m *UserModel) BeforeCreate(tx *gorm.DB) error {
	if m.UserID == uuid.Nil {
		m.UserID = uuid.New()
	}
	return nil
}

// SetPassword stores a bcrypt hash; the external credentials provider verifies against it.
func (m *UserModel) SetPassword(plain string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	h := string(hash)
	m.UserPasswordHash = &h
	return nil
}

func (m *UserModel) CheckPassword(plain string) bool {
	if m.UserPasswordHash == nil {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(*m.UserPasswordHash), []byte(plain)) == nil
}
