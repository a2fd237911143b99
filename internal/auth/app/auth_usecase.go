// Package app реализует сценарии регистрации, входа и проверки токена доступа.
package app

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"sharenote/internal/auth/domain/entities"
	"sharenote/internal/auth/domain/services"
	"sharenote/internal/auth/ports/api"
	"sharenote/internal/auth/ports/repositories"
	svc "sharenote/internal/auth/ports/services"
	"sharenote/pkg/logger"
)

const (
	methodSignup       = "Signup"
	methodLogin        = "Login"
	methodAuthenticate = "Authenticate"

	msgStartSignup          = "starting user signup"
	msgUsernameTaken        = "username already taken"
	msgEmailInUse           = "email already in use"
	msgUserCreated          = "user created successfully"
	msgLoginAttempt         = "login attempt"
	msgLoginUnknownIdentity = "login attempt with unknown identifier"
	msgInvalidPasswordAuth  = "invalid password provided"
	msgUserLoggedIn         = "user logged in successfully"
	msgTokenRejected        = "access token rejected"

	msgErrCheckExistingUser = "failed to check existing user"
	msgErrHashPassword      = "failed to hash password"
	msgErrCreateUser        = "failed to create user"
	msgErrFindingUser       = "error finding user by identifier"
	msgErrVerifyingPassword = "error verifying password"
	msgErrGenerateToken     = "failed to generate access token"
	msgErrDummyHash         = "failed to prepare timing equalizer hash"

	errCtxCheckingUser       = "checking existing user"
	errCtxHashingPassword    = "hashing password"
	errCtxCreatingUser       = "creating user"
	errCtxInvalidCredentials = "invalid credentials"
	errCtxFindingUser        = "finding user"
	errCtxVerifyingPassword  = "verifying password"
	errCtxGeneratingToken    = "generating access token"
	errCtxValidatingToken    = "validating access token"
)

// dummyPassword хэшируется один раз и сравнивается при входе с неизвестным идентификатором.
const dummyPassword = "sharenote-timing-equalizer"

// AuthUseCaseImpl реализует интерфейс AuthUseCase.
type AuthUseCaseImpl struct {
	userRepo    repositories.UserRepository
	passwordSvc svc.PasswordService
	tokenSvc    svc.TokenService

	dummyOnce sync.Once
	dummyHash string
}

// NewAuthUseCase создает новый экземпляр сервиса аутентификации.
func NewAuthUseCase(
	userRepo repositories.UserRepository,
	passwordSvc svc.PasswordService,
	tokenSvc svc.TokenService,
) api.AuthUseCase {
	return &AuthUseCaseImpl{
		userRepo:    userRepo,
		passwordSvc: passwordSvc,
		tokenSvc:    tokenSvc,
	}
}

// Signup регистрирует пользователя и возвращает его ID.
// Занятое имя сообщается раньше занятого email.
func (a *AuthUseCaseImpl) Signup(ctx context.Context, username, email, password string) (int64, error) {
	log := logger.Log(ctx).With(zap.String("method", methodSignup), zap.String("username", username))
	log.Debug(ctx, msgStartSignup)

	existing, err := a.userRepo.FindByUsernameOrEmail(ctx, username, email)
	if err != nil {
		log.Error(ctx, msgErrCheckExistingUser, zap.Error(err))
		return 0, fmt.Errorf("%s: %w", errCtxCheckingUser, err)
	}
	if err := conflictFor(existing, username, email); err != nil {
		if errors.Is(err, entities.ErrUsernameTaken) {
			log.Debug(ctx, msgUsernameTaken)
		} else {
			log.Debug(ctx, msgEmailInUse)
		}
		return 0, err
	}

	hashedPassword, err := a.passwordSvc.Hash(ctx, password)
	if err != nil {
		log.Error(ctx, msgErrHashPassword, zap.Error(err))
		return 0, fmt.Errorf("%s: %w", errCtxHashingPassword, err)
	}

	created, err := a.userRepo.Create(ctx, &entities.User{
		Username:     username,
		Email:        email,
		PasswordHash: hashedPassword,
	})
	if err != nil {
		log.Error(ctx, msgErrCreateUser, zap.Error(err))
		return 0, fmt.Errorf("%s: %w", errCtxCreatingUser, err)
	}

	log.Info(ctx, msgUserCreated, zap.Int64("userID", created.ID))
	return created.ID, nil
}

func conflictFor(existing []*entities.User, username, email string) error {
	for _, user := range existing {
		if user.Username == username {
			return entities.ErrUsernameTaken
		}
	}
	for _, user := range existing {
		if user.Email == email {
			return entities.ErrEmailInUse
		}
	}
	return nil
}

// Login проверяет пароль пользователя, найденного по имени или email, и выпускает токен.
func (a *AuthUseCaseImpl) Login(ctx context.Context, identifier, password string) (*api.AccessToken, error) {
	log := logger.Log(ctx).With(zap.String("method", methodLogin))
	log.Debug(ctx, msgLoginAttempt)

	user, err := a.userRepo.FindByIdentifier(ctx, identifier)
	if err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			log.Debug(ctx, msgLoginUnknownIdentity)
			a.equalizeTiming(ctx, password)
			return nil, fmt.Errorf("%s: %w", errCtxInvalidCredentials, services.ErrInvalidCredentials)
		}
		log.Error(ctx, msgErrFindingUser, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxFindingUser, err)
	}

	valid, err := a.passwordSvc.Verify(ctx, password, user.PasswordHash)
	if err != nil {
		if errors.Is(err, services.ErrInvalidPassword) {
			log.Debug(ctx, msgInvalidPasswordAuth, zap.Int64("userID", user.ID))
			return nil, fmt.Errorf("%s: %w", errCtxInvalidCredentials, services.ErrInvalidCredentials)
		}
		log.Error(ctx, msgErrVerifyingPassword, zap.Error(err), zap.Int64("userID", user.ID))
		return nil, fmt.Errorf("%s: %w", errCtxVerifyingPassword, err)
	}
	if !valid {
		log.Debug(ctx, msgInvalidPasswordAuth, zap.Int64("userID", user.ID))
		return nil, fmt.Errorf("%s: %w", errCtxInvalidCredentials, services.ErrInvalidCredentials)
	}

	token, expiresAt, err := a.tokenSvc.GenerateAccessToken(ctx, user.ID)
	if err != nil {
		log.Error(ctx, msgErrGenerateToken, zap.Error(err), zap.Int64("userID", user.ID))
		return nil, fmt.Errorf("%s: %w", errCtxGeneratingToken, err)
	}

	log.Info(ctx, msgUserLoggedIn, zap.Int64("userID", user.ID))
	return &api.AccessToken{UserID: user.ID, Token: token, ExpiresAt: expiresAt}, nil
}

// equalizeTiming выполняет сравнение с фиктивным хэшем, чтобы время ответа
// не выдавало существование учетной записи.
func (a *AuthUseCaseImpl) equalizeTiming(ctx context.Context, password string) {
	a.dummyOnce.Do(func() {
		hash, err := a.passwordSvc.Hash(ctx, dummyPassword)
		if err != nil {
			logger.Log(ctx).Warn(ctx, msgErrDummyHash, zap.Error(err))
			return
		}
		a.dummyHash = hash
	})
	if a.dummyHash == "" || password == "" {
		return
	}
	_, _ = a.passwordSvc.Verify(ctx, password, a.dummyHash)
}

// Authenticate проверяет токен доступа.
func (a *AuthUseCaseImpl) Authenticate(ctx context.Context, token string) (int64, error) {
	userID, err := a.tokenSvc.ValidateAccessToken(ctx, token)
	if err != nil {
		logger.Log(ctx).Debug(ctx, msgTokenRejected, zap.String("method", methodAuthenticate), zap.Error(err))
		return 0, fmt.Errorf("%s: %w", errCtxValidatingToken, err)
	}
	return userID, nil
}
