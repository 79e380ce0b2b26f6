package model

type ValidationProcessLog struct {
	ID           int64  `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	RunUUID      string `gorm:"size:36;not null;unique_index" json:"run_uuid"`
	BatchDate    string `gorm:"size:10;not null;index" json:"batch_date"`
	Status       int    `gorm:"not null" json:"status"`
	TotalRows    int64  `gorm:"not null" json:"total_rows"`
	PassedRows   int64  `gorm:"not null" json:"passed_rows"`
	FailedRows   int64  `gorm:"not null" json:"failed_rows"`
	CleanKey     string `gorm:"size:255" json:"clean_key"`
	RejectedKey  string `gorm:"size:255" json:"rejected_key"`
	ProcessInfo  string `gorm:"type:text" json:"process_info"`
	Result       string `gorm:"type:text" json:"result"`
	ErrorMessage string `gorm:"type:text" json:"error_message,omitempty"`
	CreateTime   int64  `gorm:"not null" json:"create_time"`
	CreateBy     string `gorm:"size:100;not null" json:"create_by"`
	UpdateTime   int64  `gorm:"not null" json:"update_time"`
	UpdateBy     string `gorm:"size:100;not null" json:"update_by"`

	Assets []ValidationProcessLogAsset `gorm:"-" json:"assets,omitempty"`
}
