package dto

import (
	"time"

	"github.com/google/uuid"

	"reporthub_backend/internals/features/uploads/model"
)

type UploadHistoryResponse struct {
	UploadID               string         `json:"upload_id"`
	UploadType             string         `json:"upload_type"`
	UploadFileName         string         `json:"upload_file_name"`
	UploadOrderPeriod      *string        `json:"upload_order_period,omitempty"`
	UploadStatus           string         `json:"upload_status"`
	UploadRecordsProcessed int            `json:"upload_records_processed"`
	UploadTotalRows        int            `json:"upload_total_rows"`
	UploadErrorLog         string         `json:"upload_error_log,omitempty"`
	UploadMeta             map[string]any `json:"upload_meta,omitempty"`
	UploadUploadedBy       *uuid.UUID     `json:"upload_uploaded_by,omitempty"`
	UploadCreatedAt        time.Time      `json:"upload_created_at"`
}

// ToUploadHistoryResponse drops the meta blob unless withMeta (detail view only).
func ToUploadHistoryResponse(m model.UploadHistoryModel, withMeta bool) UploadHistoryResponse {
	out := UploadHistoryResponse{
		UploadID:               m.UploadID.String(),
		UploadType:             m.UploadType,
		UploadFileName:         m.UploadFileName,
		UploadOrderPeriod:      m.UploadOrderPeriod,
		UploadStatus:           m.UploadStatus,
		UploadRecordsProcessed: m.UploadRecordsProcessed,
		UploadTotalRows:        m.UploadTotalRows,
		UploadUploadedBy:       m.UploadUploadedBy,
		UploadCreatedAt:        m.UploadCreatedAt,
	}
	if withMeta {
		out.UploadErrorLog = m.UploadErrorLog
		out.UploadMeta = m.UploadMeta
	}
	return out
}
