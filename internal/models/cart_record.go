package models

import "time"

// CartRecord 购物车持久化记录（单个存储键对应一个 JSON 数组）
type CartRecord struct {
	Key       string    `gorm:"primarykey;type:varchar(191)" json:"key"` // 存储键
	Payload   string    `gorm:"type:text;not null" json:"payload"`       // 序列化后的购物车项数组
	CreatedAt time.Time `json:"created_at"`                              // 创建时间
	UpdatedAt time.Time `gorm:"index" json:"updated_at"`                 // 更新时间
}

// TableName 指定表名
func (CartRecord) TableName() string {
	return "cart_records"
}
