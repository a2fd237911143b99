package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"sharenote/internal/auth/domain/services"
	svc "sharenote/internal/auth/ports/services"
	"sharenote/pkg/logger"
)

// Константы для работы с JWT.
const (
	methodGenerateAccessToken = "GenerateAccessToken"
	methodValidateAccessToken = "ValidateAccessToken"
	msgGeneratingAccessToken  = "generating access token"
	msgValidatingToken        = "validating token"
	msgTokenGenerated         = "token generated successfully"
	msgTokenValidated         = "token validated successfully"
	msgInvalidToken           = "invalid token format"
	msgTokenExpired           = "token has expired"
	msgEmptySecret            = "empty secret key provided"
	msgEmptyUserID            = "user_id claim is empty"
	//nolint:gosec
	errSigningToken = "error signing token"
	//nolint:gosec
	errParsingToken       = "error parsing token"
	errCtxGeneratingToken = "generating token"
	errCtxParsingToken    = "parsing token"
	errCtxValidatingToken = "validating token"
)

// ErrInvalidAlgorithm представляет статическую ошибку неверного алгоритма подписи.
var ErrInvalidAlgorithm = errors.New("invalid signing algorithm")

// Claims используется для адаптации между доменной моделью и библиотекой JWT.
type Claims struct {
	UserID int64 `json:"user_id"`
	jwt.RegisteredClaims
}

// ServiceJWT реализует интерфейс TokenService на HS256.
type ServiceJWT struct {
	config services.JWTConfig
}

// NewJWT создает новый экземпляр сервиса JWT.
func NewJWT(secretKey string, accessTokenTTL time.Duration) svc.TokenService {
	return &ServiceJWT{
		config: services.JWTConfig{
			SecretKey:      []byte(secretKey),
			AccessTokenTTL: accessTokenTTL,
		},
	}
}

func domainToJWTClaims(claims services.JWTClaims) Claims {
	return Claims{
		UserID: claims.UserID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(claims.ExpiresAt),
			IssuedAt:  jwt.NewNumericDate(claims.IssuedAt),
			Subject:   strconv.FormatInt(claims.UserID, 10),
		},
	}
}

// GenerateAccessToken генерирует JWT токен доступа.
func (s *ServiceJWT) GenerateAccessToken(ctx context.Context, userID int64) (string, time.Time, error) {
	log := logger.Log(ctx).With(
		zap.String("method", methodGenerateAccessToken),
		zap.Int64("userID", userID),
	)
	log.Debug(ctx, msgGeneratingAccessToken)

	if len(s.config.SecretKey) == 0 {
		log.Error(ctx, msgEmptySecret)
		return "", time.Time{}, fmt.Errorf("%s: %w: empty secret key", errCtxGeneratingToken, services.ErrGeneratingJWTToken)
	}

	now := time.Now()
	expiresAt := now.Add(s.config.AccessTokenTTL)

	jwtClaims := domainToJWTClaims(services.JWTClaims{
		UserID:    userID,
		IssuedAt:  now,
		ExpiresAt: expiresAt,
	})

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwtClaims)

	tokenString, err := token.SignedString(s.config.SecretKey)
	if err != nil {
		log.Error(ctx, errSigningToken, zap.Error(err))
		return "", time.Time{}, fmt.Errorf("%s: %w: %w", errCtxGeneratingToken, services.ErrGeneratingJWTToken, err)
	}

	log.Debug(ctx, msgTokenGenerated, zap.Time("expiresAt", expiresAt))
	return tokenString, expiresAt, nil
}

// ValidateAccessToken проверяет JWT токен и возвращает ID пользователя.
func (s *ServiceJWT) ValidateAccessToken(ctx context.Context, tokenString string) (int64, error) {
	log := logger.Log(ctx).With(zap.String("method", methodValidateAccessToken))
	log.Debug(ctx, msgValidatingToken)

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("%w: %v", ErrInvalidAlgorithm, token.Header["alg"])
		}
		return s.config.SecretKey, nil
	}, jwt.WithExpirationRequired())

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			log.Debug(ctx, msgTokenExpired)
			return 0, fmt.Errorf("%s: %w", errCtxValidatingToken, services.ErrExpiredJWTToken)
		}
		log.Debug(ctx, errParsingToken, zap.Error(err))
		return 0, fmt.Errorf("%s: %w: %w", errCtxParsingToken, services.ErrInvalidJWTToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		log.Debug(ctx, msgInvalidToken)
		return 0, fmt.Errorf("%s: %w", errCtxValidatingToken, services.ErrInvalidJWTToken)
	}

	if claims.UserID <= 0 {
		log.Debug(ctx, msgEmptyUserID)
		return 0, fmt.Errorf("%s: %w: empty user_id", errCtxValidatingToken, services.ErrInvalidJWTToken)
	}

	log.Debug(ctx, msgTokenValidated, zap.Int64("userID", claims.UserID))
	return claims.UserID, nil
}
