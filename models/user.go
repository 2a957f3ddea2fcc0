package models

import (
	"time"
)

type User struct {
	ID           uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	Email        string    `json:"email" gorm:"size:250;uniqueIndex;not null"`
	Name         string    `json:"name" gorm:"size:250;not null"`
	PasswordHash string    `json:"-" gorm:"column:password;size:250;not null"`
	TokenVersion uint      `json:"-" gorm:"not null;default:0"`
	CreatedAt    time.Time `json:"created_at"`
	Posts        []Post    `json:"posts,omitempty" gorm:"foreignKey:AuthorID"`
	Comments     []Comment `json:"comments,omitempty" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
}

func (User) TableName() string {
	return "users"
}

type RegisterRequest struct {
	Name     string `json:"name" form:"name" binding:"required,max=250"`
	Email    string `json:"email" form:"email" binding:"required,email,max=250"`
	Password string `json:"password" form:"password" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" form:"email" binding:"required,email"`
	Password string `json:"password" form:"password" binding:"required"`
}
