package model

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// User 用户（旅客或运营商）
type User struct {
	ID       string  `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Username string  `json:"username" gorm:"type:varchar(64);uniqueIndex;not null"`
	Email    string  `json:"email" gorm:"type:varchar(128);uniqueIndex;not null"`
	Password string  `json:"-" gorm:"type:varchar(128);not null"`
	ShortID  *string `json:"short_id,omitempty" gorm:"type:varchar(32);uniqueIndex"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (User) TableName() string { return "users" }

// SetPassword 写入 bcrypt 哈希
func (u *User) SetPassword(plain string) error {
	h, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(h)
	return nil
}

// CheckPassword 校验明文密码
func (u *User) CheckPassword(plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(plain)) == nil
}
