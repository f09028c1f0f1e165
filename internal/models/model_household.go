package models

import "time"

// Category groups a tenant's subscriptions (streaming, utilities, ...).
type Category struct {
	ID        string    `gorm:"column:id;type:uuid;primary_key" json:"id"`
	TenantID  string    `gorm:"column:tenant_id;type:varchar(64);not null;index" json:"tenant_id"`
	Name      string    `gorm:"column:name;type:varchar(128);not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Category) TableName() string {
	return "category"
}

// Member is a household member a subscription can be assigned to.
type Member struct {
	ID        string    `gorm:"column:id;type:uuid;primary_key" json:"id"`
	TenantID  string    `gorm:"column:tenant_id;type:varchar(64);not null;index" json:"tenant_id"`
	Name      string    `gorm:"column:name;type:varchar(128);not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Member) TableName() string {
	return "member"
}
