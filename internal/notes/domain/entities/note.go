// Package entities описывает заметки и выданные на них доступы.
package entities

import (
	"errors"
	"time"
)

// Ошибки домена заметок.
var (
	// ErrNoteNotFound означает, что заметка отсутствует или не видна пользователю.
	ErrNoteNotFound = errors.New("note not found")
	// ErrNoteNotFoundOrUnauthorized означает, что заметка отсутствует или пользователь ей не владеет.
	ErrNoteNotFoundOrUnauthorized = errors.New("note not found or unauthorized")
	// ErrRecipientNotFound означает, что email получателя не принадлежит ни одному пользователю.
	ErrRecipientNotFound = errors.New("recipient not found")
)

// Note представляет собой заметку пользователя. Владелец назначается при создании и не меняется.
type Note struct {
	ID        int64
	UserID    int64
	Title     string
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewNote создает заметку, принадлежащую userID.
func NewNote(userID int64, title, content string) *Note {
	now := time.Now()
	return &Note{
		UserID:    userID,
		Title:     title,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Share - выданный владельцем доступ на чтение заметки другому пользователю.
type Share struct {
	NoteID     int64
	SharedWith int64
	CreatedAt  time.Time
}
