package services

import "errors"

// PasswordErrors содержит ошибки, связанные с паролями.
var (
	ErrHashingFailed   = errors.New("failed to hash password")
	ErrInvalidPassword = errors.New("invalid password")
)

// MaxPasswordLength - предел длины пароля в байтах, который учитывает bcrypt.
const MaxPasswordLength = 72
