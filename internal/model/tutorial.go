package model

// 教程难度
const (
	LevelBeginner     = "入门"
	LevelIntermediate = "中级"
	LevelAdvanced     = "高级"
)

// Tutorial 教程模型
type Tutorial struct {
	Base
	Slug         string     `gorm:"type:varchar(128);not null;uniqueIndex" json:"slug"` // 创建后不可修改
	Title        string     `gorm:"type:varchar(200);not null" json:"title"`
	Description  string     `gorm:"type:text" json:"description"`
	Content      string     `gorm:"type:longtext" json:"content"`
	Icon         string     `gorm:"type:varchar(32)" json:"icon"`
	Level        string     `gorm:"type:varchar(16);not null;index" json:"level"`
	Duration     string     `gorm:"type:varchar(64)" json:"duration"`
	Tools        StringList `gorm:"type:text" json:"tools"` // 工具名称，不是外键
	Published    bool       `gorm:"not null;default:false;index" json:"published"`
	ChapterCount int        `gorm:"not null;default:0" json:"chapterCount"`

	// 关联
	Chapters []TutorialChapter `gorm:"foreignKey:TutorialID;constraint:OnDelete:CASCADE" json:"chapters,omitempty"`
}

// TableName 指定表名
func (Tutorial) TableName() string {
	return "tutorials"
}

// TutorialChapter 教程章节
type TutorialChapter struct {
	Base
	TutorialID string `gorm:"type:varchar(64);not null;index" json:"tutorialId"`
	Title      string `gorm:"type:varchar(200);not null" json:"title"`
	Content    string `gorm:"type:longtext" json:"content"`
	Order      int    `gorm:"column:sort_order;not null;default:0;index" json:"order"`
}

// TableName 指定表名
func (TutorialChapter) TableName() string {
	return "tutorial_chapters"
}
