package db

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// User 是后台管理员账号
type User struct {
	gorm.Model
	Username string `gorm:"unique;not null"`
	Password string `gorm:"not null"`
}

// ErrEmptyCredentials 表示用户名或密码为空。
var ErrEmptyCredentials = errors.New("username and password are required")

// EnsureUser 若提供的用户名与密码均非空且不存在对应账号，则创建一个 bcrypt 哈希的用户。
func EnsureUser(username, password string) error {
	if strings.TrimSpace(username) == "" || strings.TrimSpace(password) == "" {
		return nil
	}
	if DB == nil {
		return errors.New("database not initialized")
	}
	_, err := UpsertUser(DB, username, password, false)
	return err
}

// UpsertUser 创建账号；overwrite 为 true 时会重置已存在账号的密码。
// 返回值表示是否写入了数据。
func UpsertUser(conn *gorm.DB, username, password string, overwrite bool) (bool, error) {
	trimmedUser := strings.TrimSpace(username)
	trimmedPassword := strings.TrimSpace(password)
	if trimmedUser == "" || trimmedPassword == "" {
		return false, ErrEmptyCredentials
	}

	var existing User
	err := conn.Where("username = ?", trimmedUser).First(&existing).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}
	found := err == nil
	if found && !overwrite {
		return false, nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(trimmedPassword), bcrypt.DefaultCost)
	if err != nil {
		return false, err
	}

	if found {
		return true, conn.Model(&existing).Update("password", string(hashed)).Error
	}
	return true, conn.Create(&User{Username: trimmedUser, Password: string(hashed)}).Error
}
