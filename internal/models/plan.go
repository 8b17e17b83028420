package models

type Plan struct {
	BaseModel
	Title       string       `gorm:"not null" json:"title"`
	Category    PlanCategory `gorm:"type:varchar(20);not null;index" json:"category"`
	Description string       `gorm:"type:text;not null" json:"description"`
	Details     string       `gorm:"type:text" json:"details,omitempty"`
	Icon        string       `gorm:"type:varchar(64)" json:"icon,omitempty"`
	ImageURL    string       `gorm:"type:varchar(512)" json:"image_url,omitempty"`
}
