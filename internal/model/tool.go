package model

// 定价类型
const (
	PricingFree     = "free"
	PricingPaid     = "paid"
	PricingFreemium = "freemium"
)

// Tool AI工具模型
type Tool struct {
	Base
	Name        string     `gorm:"type:varchar(100);not null;index" json:"name"`
	Description string     `gorm:"type:text;not null" json:"description"`
	CategoryID  string     `gorm:"type:varchar(64);not null;index" json:"categoryId"`
	Pricing     string     `gorm:"type:varchar(16);not null;index" json:"pricing"`
	Rating      float64    `gorm:"not null;default:0" json:"rating"`
	ReviewCount int        `gorm:"not null;default:0" json:"reviewCount"`
	Tags        StringList `gorm:"type:text" json:"tags"`
	Icon        string     `gorm:"type:varchar(32)" json:"icon"`
	Website     string     `gorm:"type:varchar(255)" json:"website"`
	Featured    bool       `gorm:"not null;default:false;index" json:"featured"`
	Trending    bool       `gorm:"not null;default:false;index" json:"trending"`
	Latest      bool       `gorm:"not null;default:false;index" json:"latest"`

	// 关联
	Category *Category `gorm:"foreignKey:CategoryID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"category,omitempty"`
	Reviews  []Review  `gorm:"foreignKey:ToolID;constraint:OnDelete:CASCADE" json:"reviews,omitempty"`
}

// TableName 指定表名
func (Tool) TableName() string {
	return "tools"
}

// Review 工具评价
type Review struct {
	Base
	ToolID   string `gorm:"type:varchar(64);not null;index" json:"toolId"`
	UserName string `gorm:"type:varchar(64);not null" json:"userName"`
	Rating   int    `gorm:"not null" json:"rating"`
	Content  string `gorm:"type:text" json:"content"`
}

// TableName 指定表名
func (Review) TableName() string {
	return "reviews"
}
