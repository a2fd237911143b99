package dto

import (
	"time"

	"sharenote/internal/notes/domain/entities"
)

// NoteRequest содержит данные для создания и обновления заметки.
type NoteRequest struct {
	Title   string `json:"title" validate:"required,max=255"`
	Content string `json:"content"`
}

// ShareRequest содержит email получателя доступа.
type ShareRequest struct {
	SharedWithEmail string `json:"sharedWithEmail" validate:"required,email"`
}

// Note представляет заметку.
type Note struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MessageResponse - ответ с одним сообщением, в том числе об ошибке.
type MessageResponse struct {
	Message string `json:"message"`
}

// CreatedResponse возвращается при создании заметки.
type CreatedResponse struct {
	Message string `json:"message"`
	ID      int64  `json:"id"`
}

// NoteFromEntity преобразует доменную заметку в DTO.
func NoteFromEntity(note *entities.Note) Note {
	return Note{
		ID:        note.ID,
		UserID:    note.UserID,
		Title:     note.Title,
		Content:   note.Content,
		CreatedAt: note.CreatedAt,
		UpdatedAt: note.UpdatedAt,
	}
}

// NotesFromEntities преобразует список заметок. Результат никогда не nil.
func NotesFromEntities(notes []*entities.Note) []Note {
	out := make([]Note, 0, len(notes))
	for _, note := range notes {
		out = append(out, NoteFromEntity(note))
	}
	return out
}
