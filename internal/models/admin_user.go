package models

// AdminUser is a back-office account. The first one is seeded at startup;
// account management beyond that lives outside this service.
type AdminUser struct {
	BaseModel
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`
	Role         string `gorm:"type:varchar(20);not null;default:'admin'" json:"role"`
}

type AdminLoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AdminLoginResponse struct {
	Ok    bool   `json:"ok"`
	Token string `json:"token"`
}
