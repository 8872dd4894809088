package constants

import (
	"path/filepath"
	"strings"
)

const (
	UploadFileCSV     = 1
	UploadFileXLSX    = 2
	UploadFileUnknown = 99
)

func DetectUploadFileType(filename string) int {
	ext := strings.ToLower(filepath.Ext(filename))

	switch ext {
	case ".csv", ".txt":
		return UploadFileCSV
	case ".xlsx", ".xlsm":
		return UploadFileXLSX
	default:
		return UploadFileUnknown
	}
}
