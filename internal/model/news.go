package model

// News 资讯模型
type News struct {
	Base
	Title     string     `gorm:"type:varchar(255);not null" json:"title"`
	Date      string     `gorm:"type:varchar(32);index" json:"date"` // 展示用日期字符串
	Category  string     `gorm:"type:varchar(64);index" json:"category"`
	Summary   string     `gorm:"type:text" json:"summary"`
	Content   string     `gorm:"type:longtext" json:"content"`
	Image     string     `gorm:"type:varchar(32)" json:"image"` // emoji
	Tags      StringList `gorm:"type:text" json:"tags"`
	Published bool       `gorm:"not null;default:false;index" json:"published"`
}

// TableName 指定表名
func (News) TableName() string {
	return "news"
}
