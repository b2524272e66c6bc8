package model

// Category 工具分类模型
type Category struct {
	Base
	Name        string `gorm:"type:varchar(100);not null;index" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	Icon        string `gorm:"type:varchar(32)" json:"icon"`
	Count       int    `gorm:"not null;default:0" json:"count"` // 冗余的工具数量
}

// TableName 指定表名
func (Category) TableName() string {
	return "categories"
}
