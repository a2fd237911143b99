// Package notes содержит HTTP-обработчики для управления заметками.
package notes

import (
	"context"
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"sharenote/internal/api/dto"
	"sharenote/internal/api/http/middleware"
	"sharenote/internal/api/http/response"
	"sharenote/internal/notes/domain/entities"
	"sharenote/internal/notes/ports/api"
	"sharenote/pkg/logger"
)

// Константы для логирования.
const (
	LogHandlerListNotes   = "handling list notes request"
	LogHandlerGetNote     = "handling get note request"
	LogHandlerCreateNote  = "handling create note request"
	LogHandlerUpdateNote  = "handling update note request"
	LogHandlerDeleteNote  = "handling delete note request"
	LogHandlerShareNote   = "handling share note request"
	LogHandlerUnshareNote = "handling unshare note request"
	LogHandlerSearchNotes = "handling search notes request"
)

// Константы ответов.
const (
	MsgNoteCreated       = "Note created"
	MsgNoteUpdated       = "Note updated"
	MsgNoteDeleted       = "Note deleted"
	MsgNoteShared        = "Note shared successfully"
	MsgNoteUnshared      = "Note unshared successfully"
	MsgNoteNotFound      = "Note not found"
	MsgNotFoundOrUnauth  = "Note not found or unauthorized"
	MsgUserNotFound      = "User not found"
	MsgErrFetchingNotes  = "Error fetching notes"
	MsgErrFetchingNote   = "Error fetching note"
	MsgErrCreatingNote   = "Error creating note"
	MsgErrUpdatingNote   = "Error updating note"
	MsgErrDeletingNote   = "Error deleting note"
	MsgErrSharingNote    = "Error sharing note"
	MsgErrUnsharingNote  = "Error unsharing note"
	MsgErrSearchingNotes = "Error searching notes"
)

// ParamNoteID - имя параметра маршрута с ID заметки.
const ParamNoteID = "id"

// Handler обработчик HTTP-запросов для работы с заметками.
type Handler struct {
	notes    api.NoteUseCase
	validate *validator.Validate
}

// NewHandler создает новый экземпляр обработчика заметок.
func NewHandler(notes api.NoteUseCase) *Handler {
	return &Handler{
		notes:    notes,
		validate: validator.New(),
	}
}

// request собирает общие для всех обработчиков части запроса.
func request(ctx fiber.Ctx, handler, msg string) (context.Context, *logger.Logger, int64, bool) {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx).With(zap.String("handler", handler))
	log.Debug(requestCtx, msg)

	userID, ok := middleware.CurrentUserID(ctx)
	return requestCtx, log, userID, ok
}

// noteID разбирает ID заметки. Некорректный ID обрабатывается как отсутствующая заметка.
func noteID(ctx fiber.Ctx) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Params(ParamNoteID), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// ListNotes возвращает собственные и расшаренные заметки.
func (h *Handler) ListNotes(ctx fiber.Ctx) error {
	requestCtx, log, userID, ok := request(ctx, "notes.ListNotes", LogHandlerListNotes)
	if !ok {
		return response.Unauthorized(ctx, middleware.MsgAccessDenied)
	}

	notes, err := h.notes.ListNotes(requestCtx, userID)
	if err != nil {
		log.Error(requestCtx, MsgErrFetchingNotes, zap.Error(err))
		return response.InternalError(ctx, MsgErrFetchingNotes)
	}

	return response.OK(ctx, dto.NotesFromEntities(notes))
}

// GetNote возвращает заметку по ID.
func (h *Handler) GetNote(ctx fiber.Ctx) error {
	requestCtx, log, userID, ok := request(ctx, "notes.GetNote", LogHandlerGetNote)
	if !ok {
		return response.Unauthorized(ctx, middleware.MsgAccessDenied)
	}

	id, ok := noteID(ctx)
	if !ok {
		return response.NotFound(ctx, MsgNoteNotFound)
	}

	note, err := h.notes.GetNote(requestCtx, userID, id)
	if err != nil {
		if errors.Is(err, entities.ErrNoteNotFound) {
			return response.NotFound(ctx, MsgNoteNotFound)
		}
		log.Error(requestCtx, MsgErrFetchingNote, zap.Error(err))
		return response.InternalError(ctx, MsgErrFetchingNote)
	}

	return response.OK(ctx, dto.NoteFromEntity(note))
}

// CreateNote создает заметку от имени текущего пользователя.
func (h *Handler) CreateNote(ctx fiber.Ctx) error {
	requestCtx, log, userID, ok := request(ctx, "notes.CreateNote", LogHandlerCreateNote)
	if !ok {
		return response.Unauthorized(ctx, middleware.MsgAccessDenied)
	}

	var req dto.NoteRequest
	if err := h.bind(ctx, &req); err != nil {
		return response.BadRequest(ctx, err.Error())
	}

	id, err := h.notes.CreateNote(requestCtx, userID, req.Title, req.Content)
	if err != nil {
		log.Error(requestCtx, MsgErrCreatingNote, zap.Error(err))
		return response.InternalError(ctx, MsgErrCreatingNote)
	}

	return response.OK(ctx, dto.CreatedResponse{Message: MsgNoteCreated, ID: id})
}

// UpdateNote перезаписывает заголовок и содержимое заметки владельца.
func (h *Handler) UpdateNote(ctx fiber.Ctx) error {
	requestCtx, log, userID, ok := request(ctx, "notes.UpdateNote", LogHandlerUpdateNote)
	if !ok {
		return response.Unauthorized(ctx, middleware.MsgAccessDenied)
	}

	id, ok := noteID(ctx)
	if !ok {
		return response.NotFound(ctx, MsgNotFoundOrUnauth)
	}

	var req dto.NoteRequest
	if err := h.bind(ctx, &req); err != nil {
		return response.BadRequest(ctx, err.Error())
	}

	if err := h.notes.UpdateNote(requestCtx, userID, id, req.Title, req.Content); err != nil {
		if errors.Is(err, entities.ErrNoteNotFoundOrUnauthorized) {
			return response.NotFound(ctx, MsgNotFoundOrUnauth)
		}
		log.Error(requestCtx, MsgErrUpdatingNote, zap.Error(err))
		return response.InternalError(ctx, MsgErrUpdatingNote)
	}

	return response.OK(ctx, dto.MessageResponse{Message: MsgNoteUpdated})
}

// DeleteNote удаляет заметку владельца.
func (h *Handler) DeleteNote(ctx fiber.Ctx) error {
	requestCtx, log, userID, ok := request(ctx, "notes.DeleteNote", LogHandlerDeleteNote)
	if !ok {
		return response.Unauthorized(ctx, middleware.MsgAccessDenied)
	}

	id, ok := noteID(ctx)
	if !ok {
		return response.NotFound(ctx, MsgNotFoundOrUnauth)
	}

	if err := h.notes.DeleteNote(requestCtx, userID, id); err != nil {
		if errors.Is(err, entities.ErrNoteNotFoundOrUnauthorized) {
			return response.NotFound(ctx, MsgNotFoundOrUnauth)
		}
		log.Error(requestCtx, MsgErrDeletingNote, zap.Error(err))
		return response.InternalError(ctx, MsgErrDeletingNote)
	}

	return response.OK(ctx, dto.MessageResponse{Message: MsgNoteDeleted})
}

// ShareNote выдает доступ на чтение пользователю с указанным email.
func (h *Handler) ShareNote(ctx fiber.Ctx) error {
	requestCtx, log, userID, ok := request(ctx, "notes.ShareNote", LogHandlerShareNote)
	if !ok {
		return response.Unauthorized(ctx, middleware.MsgAccessDenied)
	}

	id, ok := noteID(ctx)
	if !ok {
		return response.NotFound(ctx, MsgNotFoundOrUnauth)
	}

	var req dto.ShareRequest
	if err := h.bind(ctx, &req); err != nil {
		return response.BadRequest(ctx, err.Error())
	}

	if err := h.notes.ShareNote(requestCtx, userID, id, req.SharedWithEmail); err != nil {
		return shareError(ctx, requestCtx, log, err, MsgErrSharingNote)
	}

	return response.OK(ctx, dto.MessageResponse{Message: MsgNoteShared})
}

// UnshareNote отзывает доступ на чтение.
func (h *Handler) UnshareNote(ctx fiber.Ctx) error {
	requestCtx, log, userID, ok := request(ctx, "notes.UnshareNote", LogHandlerUnshareNote)
	if !ok {
		return response.Unauthorized(ctx, middleware.MsgAccessDenied)
	}

	id, ok := noteID(ctx)
	if !ok {
		return response.NotFound(ctx, MsgNotFoundOrUnauth)
	}

	var req dto.ShareRequest
	if err := h.bind(ctx, &req); err != nil {
		return response.BadRequest(ctx, err.Error())
	}

	if err := h.notes.UnshareNote(requestCtx, userID, id, req.SharedWithEmail); err != nil {
		return shareError(ctx, requestCtx, log, err, MsgErrUnsharingNote)
	}

	return response.OK(ctx, dto.MessageResponse{Message: MsgNoteUnshared})
}

func shareError(ctx fiber.Ctx, requestCtx context.Context, log *logger.Logger, err error, msg string) error {
	switch {
	case errors.Is(err, entities.ErrRecipientNotFound):
		return response.NotFound(ctx, MsgUserNotFound)
	case errors.Is(err, entities.ErrNoteNotFoundOrUnauthorized):
		return response.NotFound(ctx, MsgNotFoundOrUnauth)
	default:
		log.Error(requestCtx, msg, zap.Error(err))
		return response.InternalError(ctx, msg)
	}
}

// SearchNotes ищет по словам среди видимых заметок.
func (h *Handler) SearchNotes(ctx fiber.Ctx) error {
	requestCtx, log, userID, ok := request(ctx, "notes.SearchNotes", LogHandlerSearchNotes)
	if !ok {
		return response.Unauthorized(ctx, middleware.MsgAccessDenied)
	}

	notes, err := h.notes.SearchNotes(requestCtx, userID, ctx.Query("q"))
	if err != nil {
		log.Error(requestCtx, MsgErrSearchingNotes, zap.Error(err))
		return response.InternalError(ctx, MsgErrSearchingNotes)
	}

	return response.OK(ctx, dto.NotesFromEntities(notes))
}

// bindError - ошибка разбора или валидации тела, ее текст уходит клиенту.
type bindError string

func (e bindError) Error() string { return string(e) }

func (h *Handler) bind(ctx fiber.Ctx, out any) error {
	if err := ctx.Bind().JSON(out); err != nil {
		return bindError(response.MsgInvalidBody)
	}
	if err := h.validate.Struct(out); err != nil {
		return bindError(response.ValidationMessage(err))
	}
	return nil
}
