package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"kartvizit.link/configs/configsdatabase"
	"kartvizit.link/configs/configslog"
	"kartvizit.link/models"
	"kartvizit.link/repositories"
	"kartvizit.link/utils"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserServiceError özel servis hataları
type UserServiceError string

func (e UserServiceError) Error() string { return string(e) }

const (
	ErrUserNotFound      UserServiceError = "kullanıcı bulunamadı"
	ErrUserInactive      UserServiceError = "kullanıcı hesabı aktif değil"
	ErrInvalidAPIKey     UserServiceError = "geçersiz API anahtarı"
	ErrUserInvalidInput  UserServiceError = "geçersiz kullanıcı verisi"
	ErrUserCreateFailed  UserServiceError = "kullanıcı oluşturulamadı"
	ErrAPIKeyIssueFailed UserServiceError = "API anahtarı üretilemedi"
)

// APIKeySecretLength anahtarın gizli kısmının uzunluğu.
const APIKeySecretLength = 32

// IUserService kullanıcı ve API anahtarı işlemleri.
type IUserService interface {
	CreateUser(ctx context.Context, name, email string, isSystem bool) (*models.User, error)
	IssueAPIKey(ctx context.Context, userID uint) (string, error)
	Authenticate(ctx context.Context, apiKey string) (*models.User, error)
}

type UserService struct {
	repo repositories.IUserRepository
	cost int
}

func NewUserService() IUserService {
	return NewUserServiceWithDB(configsdatabase.GetDB())
}

func NewUserServiceWithDB(db *gorm.DB) IUserService {
	return &UserService{repo: repositories.NewUserRepositoryWithDB(db), cost: bcrypt.DefaultCost}
}

func (s *UserService) CreateUser(ctx context.Context, name, email string, isSystem bool) (*models.User, error) {
	name, email = strings.TrimSpace(name), strings.ToLower(strings.TrimSpace(email))
	if name == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("%w: ad ve geçerli e-posta zorunludur", ErrUserInvalidInput)
	}
	user := &models.User{Name: name, Email: email, IsSystem: isSystem, Status: models.UserStatusActive}
	if err := s.repo.Create(ctx, user); err != nil {
		configslog.Log.Error("Kullanıcı oluşturulamadı", zap.String("email", email), zap.Error(err))
		return nil, ErrUserCreateFailed
	}
	return user, nil
}

// IssueAPIKey yeni bir "<userID>.<secret>" anahtarı üretir, sadece bcrypt özetini saklar.
// Düz anahtar yalnızca bu çağrıda döner; önceki anahtar geçersiz olur.
func (s *UserService) IssueAPIKey(ctx context.Context, userID uint) (string, error) {
	if _, err := s.repo.FindByID(ctx, userID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return "", ErrUserNotFound
		}
		return "", err
	}
	secret, err := utils.GenerateSecureRandomString(APIKeySecretLength)
	if err != nil {
		return "", ErrAPIKeyIssueFailed
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), s.cost)
	if err != nil {
		configslog.Log.Error("API anahtarı özeti üretilemedi", zap.Uint("user_id", userID), zap.Error(err))
		return "", ErrAPIKeyIssueFailed
	}
	if err := s.repo.UpdateAPIKeyHash(ctx, userID, string(hash)); err != nil {
		configslog.Log.Error("API anahtarı kaydedilemedi", zap.Uint("user_id", userID), zap.Error(err))
		return "", ErrAPIKeyIssueFailed
	}
	return fmt.Sprintf("%d.%s", userID, secret), nil
}

// Authenticate X-API-Key değerini doğrular ve kullanıcıyı döndürür.
func (s *UserService) Authenticate(ctx context.Context, apiKey string) (*models.User, error) {
	idPart, secret, ok := strings.Cut(strings.TrimSpace(apiKey), ".")
	if !ok || secret == "" {
		return nil, ErrInvalidAPIKey
	}
	id, err := strconv.ParseUint(idPart, 10, 64)
	if err != nil || id == 0 {
		return nil, ErrInvalidAPIKey
	}

	user, err := s.repo.FindByID(ctx, uint(id))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidAPIKey
		}
		return nil, err
	}
	if user.APIKeyHash == "" || bcrypt.CompareHashAndPassword([]byte(user.APIKeyHash), []byte(secret)) != nil {
		return nil, ErrInvalidAPIKey
	}
	if !user.IsActive() {
		return nil, ErrUserInactive
	}
	return user, nil
}

var _ IUserService = (*UserService)(nil)
