package model

type ValidationProcessLogAsset struct {
	ID                     int64  `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	ValidationProcessLogID int64  `gorm:"not null;index" json:"validation_process_log_id"`
	FileName               string `gorm:"size:255;not null" json:"file_name"`
	FileKey                string `gorm:"size:255;not null" json:"file_key"`
	Status                 int    `gorm:"not null" json:"status"`
	RowsRead               int64  `gorm:"not null" json:"rows_read"`
	RowsSkipped            int64  `gorm:"not null" json:"rows_skipped"`
	ErrorMessage           string `gorm:"type:text" json:"error_message,omitempty"`
	CreateTime             int64  `gorm:"not null" json:"create_time"`
	CreateBy               string `gorm:"size:100;not null" json:"create_by"`
}
