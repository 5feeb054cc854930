package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"smartCanteen/domain"
	"smartCanteen/pkg/logger"
	"smartCanteen/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/pobyzaarif/goshortcute"
)

// UserRepository contract interface
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, id uint) (domain.User, error)
	FindByEmail(ctx context.Context, email string) (domain.User, error)
	UpdateEmailVerification(ctx context.Context, id uint, isVerified bool) error
}

// NotificationRepository contract interface
type NotificationRepository interface {
	SendEmail(toName, toEmail, subject, message string) (err error)
}

// TokenRepository contract interface for redis-backed sessions
type TokenRepository interface {
	StoreToken(ctx context.Context, userID, token string, ttl time.Duration) error
	ValidateToken(ctx context.Context, token string) (string, error)
	DeleteToken(ctx context.Context, userID, token string) error
}

type UserService struct {
	userRepo                UserRepository
	validate                *validator.Validate
	notifRepo               NotificationRepository
	tokenRepo               TokenRepository
	appEmailVerificationKey string
	appDeploymentUrl        string
}

const (
	tokenTTL                 = 24 * time.Hour
	SubjectRegisterAccount   = "Activate Your Account!"
	EmailBodyRegisterAccount = `Hello %v, activate your account by opening the link below</br></br>%v`
)

const RoleCustomer = "customer"

func NewUserService(
	userRepo UserRepository,
	validate *validator.Validate,
	notifRepo NotificationRepository,
	tokenRepo TokenRepository,
	appEmailVerificationKey string,
	appDeploymentUrl string,
) *UserService {
	return &UserService{
		userRepo:                userRepo,
		validate:                validate,
		notifRepo:               notifRepo,
		tokenRepo:               tokenRepo,
		appEmailVerificationKey: appEmailVerificationKey,
		appDeploymentUrl:        appDeploymentUrl,
	}
}

func (s *UserService) Register(ctx context.Context, user *domain.User) (domain.User, error) {
	if err := s.validate.Var(user.Email, "required,email"); err != nil {
		logger.Error("Invalid email format", err)
		return domain.User{}, errors.New("invalid email format")
	}

	if err := s.validate.Var(user.Password, "required,min=6"); err != nil {
		logger.Error("Invalid user password", err)
		return domain.User{}, errors.New("password must be at least 6 characters")
	}

	existingUser, err := s.userRepo.FindByEmail(ctx, user.Email)
	if err == nil && existingUser.ID > 0 {
		logger.Error("Email already exists")
		return domain.User{}, errors.New("email already exists")
	}

	passwordHash, err := utils.HashPassword(user.Password)
	if err != nil {
		logger.Error("Failed to hash password", err)
		return domain.User{}, errors.New("failed to hash password")
	}

	newUser := domain.User{
		FullName: user.FullName,
		Email:    strings.ToLower(user.Email),
		Password: passwordHash,
		Role:     RoleCustomer,
		Area:     user.Area,
	}

	if err := s.userRepo.Create(ctx, &newUser); err != nil {
		logger.Error("Failed to create user", err)
		return domain.User{}, errors.New("failed to create user")
	}

	if err := s.sendVerificationEmail(newUser); err != nil {
		// registration already succeeded; the user can request a resend
		logger.Error("Failed to send verification email", err)
	}

	newUser.Password = ""

	return newUser, nil
}

func (s *UserService) sendVerificationEmail(user domain.User) error {
	verificationCode := fmt.Sprintf("%d|%s", user.ID, user.Email)

	verificationCodeEncrypt, err := goshortcute.AESCBCEncrypt([]byte(verificationCode), []byte(s.appEmailVerificationKey))
	if err != nil {
		return fmt.Errorf("failed to encrypt verification code: %w", err)
	}

	strEncode := goshortcute.StringtoBase64Encode(verificationCodeEncrypt)
	link := fmt.Sprintf("%s/api/v1/users/email-verification/%s", s.appDeploymentUrl, strEncode)

	return s.notifRepo.SendEmail(
		user.FullName,
		user.Email,
		SubjectRegisterAccount,
		fmt.Sprintf(EmailBodyRegisterAccount, user.FullName, link),
	)
}

func (s *UserService) VerifyEmail(ctx context.Context, verificationCodeEncrypt string) error {
	strDecode := goshortcute.StringtoBase64Decode(verificationCodeEncrypt)
	verificationCode, err := goshortcute.AESCBCDecrypt([]byte(strDecode), []byte(s.appEmailVerificationKey))
	if err != nil {
		logger.Error("Failed to decrypt verification code", err)
		return errors.New("invalid verification code")
	}

	parts := strings.SplitN(string(verificationCode), "|", 2)
	if len(parts) != 2 {
		return errors.New("invalid verification code")
	}

	user, err := s.userRepo.FindByEmail(ctx, parts[1])
	if err != nil {
		return errors.New("user not found")
	}

	return s.userRepo.UpdateEmailVerification(ctx, user.ID, true)
}

func (s *UserService) Login(ctx context.Context, email, password string) (string, domain.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, strings.ToLower(email))
	if err != nil {
		logger.Error("User not found", err)
		return "", domain.User{}, errors.New("invalid email or password")
	}

	if !utils.CheckPassword(user.Password, password) {
		return "", domain.User{}, errors.New("invalid email or password")
	}

	token, err := utils.GenerateJWT(user.ID, user.Role, tokenTTL)
	if err != nil {
		logger.Error("Failed to generate token", err)
		return "", domain.User{}, errors.New("failed to generate token")
	}

	if s.tokenRepo != nil {
		userID := fmt.Sprintf("%d", user.ID)
		if err := s.tokenRepo.StoreToken(ctx, userID, token, tokenTTL); err != nil {
			logger.Error("Failed to store session token", err)
			return "", domain.User{}, errors.New("failed to store session token")
		}
	}

	user.Password = ""

	return token, user, nil
}

func (s *UserService) Logout(ctx context.Context, userID uint, token string) error {
	if s.tokenRepo == nil {
		return nil
	}

	return s.tokenRepo.DeleteToken(ctx, fmt.Sprintf("%d", userID), token)
}

// ValidateTokenFromRedis is used by the auth middleware to reject tokens
// revoked by logout.
func (s *UserService) ValidateTokenFromRedis(ctx context.Context, token string) (string, error) {
	if s.tokenRepo == nil {
		return "", errors.New("token store is not configured")
	}

	return s.tokenRepo.ValidateToken(ctx, token)
}

func (s *UserService) GetUserByID(ctx context.Context, id uint) (domain.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return domain.User{}, err
	}

	user.Password = ""

	return user, nil
}
