package services

import "errors"

// ErrInvalidCredentials возвращается и для неизвестного идентификатора, и для неверного пароля.
var ErrInvalidCredentials = errors.New("invalid credentials")
