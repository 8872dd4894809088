package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	UploadTypeTransactions = "TRANSACTIONS"
	UploadTypeOrders       = "ORDERS"
	UploadTypeChurches     = "CHURCHES"
)

const (
	UploadStatusSuccess = "SUCCESS"
	UploadStatusPartial = "PARTIAL"
	UploadStatusFailed  = "FAILED"
)

type UploadHistoryModel struct {
	UploadID               uuid.UUID         `gorm:"column:upload_id;type:uuid;primaryKey" json:"upload_id"`
	UploadType             string            `gorm:"column:upload_type;type:varchar(20);not null;index" json:"upload_type"`
	UploadFileName         string            `gorm:"column:upload_file_name;not null" json:"upload_file_name"`
	UploadOrderPeriod      *string           `gorm:"column:upload_order_period;type:varchar(7)" json:"upload_order_period,omitempty"`
	UploadStatus           string            `gorm:"column:upload_status;type:varchar(10);not null;index" json:"upload_status"`
	UploadRecordsProcessed int               `gorm:"column:upload_records_processed;not null" json:"upload_records_processed"`
	UploadTotalRows        int               `gorm:"column:upload_total_rows;not null" json:"upload_total_rows"`
	UploadErrorLog         string            `gorm:"column:upload_error_log;type:text" json:"upload_error_log"`
	UploadMeta             datatypes.JSONMap `gorm:"column:upload_meta" json:"upload_meta,omitempty"`
	UploadUploadedBy       *uuid.UUID        `gorm:"column:upload_uploaded_by;type:uuid" json:"upload_uploaded_by,omitempty"`

	UploadCreatedAt time.Time `gorm:"column:upload_created_at;autoCreateTime;index" json:"upload_created_at"`
	UploadUpdatedAt time.Time `gorm:"column:upload_updated_at;autoUpdateTime" json:"upload_updated_at"`
}

func (UploadHistoryModel) TableName() string { return "upload_histories" }

func (m *UploadHistoryModel) BeforeCreate(tx *gorm.DB) error {
	if m.UploadID == uuid.Nil {
		m.UploadID = uuid.New()
	}
	return nil
}
