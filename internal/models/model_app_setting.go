package models

import "time"

const AppSettingMaintenanceMode = "maintenance_mode"

// AppSetting is a process-wide key/value flag.
type AppSetting struct {
	Key       string    `gorm:"column:key;type:varchar(64);primary_key" json:"key"`
	Value     string    `gorm:"column:value;type:text;not null" json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (AppSetting) TableName() string {
	return "app_setting"
}
