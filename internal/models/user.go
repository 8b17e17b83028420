package models

// User is the application's own record for an identity subject.
// IsAdmin is only ever written by seeding and first-login bootstrap.
type User struct {
	BaseModel
	Email   string   `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Name    string   `gorm:"type:varchar(255)" json:"name,omitempty"`
	Mobile  string   `gorm:"type:varchar(32)" json:"mobile,omitempty"`
	Income  *float64 `json:"income,omitempty"`
	IsAdmin bool     `gorm:"not null" json:"is_admin"`
}

// Identity is the credential record owned by the identity provider.
type Identity struct {
	BaseModel
	Email        string `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`
}
