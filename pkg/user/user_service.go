package user

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"regexp"
	"time"

	"github.com/amanjaiswal7236/chai-lelo/domain"
	"github.com/amanjaiswal7236/chai-lelo/entities"
	"github.com/amanjaiswal7236/chai-lelo/pkg/jwt"
	"github.com/amanjaiswal7236/chai-lelo/pkg/notify"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	phonePrefix = "+91"
	otpTTL      = 10 * time.Minute
)

var phonePattern = regexp.MustCompile(`^[0-9]{10}$`)

type (
	UserService interface {
		RequestOTP(ctx context.Context, req domain.RequestOTPRequest) error
		VerifyOTP(ctx context.Context, req domain.VerifyOTPRequest) (domain.VerifyOTPResponse, error)
		Me(ctx context.Context, userID string) (domain.UserResponse, error)
	}

	userService struct {
		userRepository UserRepository
		jwtService     jwt.JWTService
		otpSender      notify.OTPSender
	}
)

func NewUserService(userRepository UserRepository, jwtService jwt.JWTService, otpSender notify.OTPSender) UserService {
	return &userService{
		userRepository: userRepository,
		jwtService:     jwtService,
		otpSender:      otpSender,
	}
}

func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

func (s *userService) RequestOTP(ctx context.Context, req domain.RequestOTPRequest) error {
	if !phonePattern.MatchString(req.Phone) {
		return domain.ErrInvalidPhone
	}

	phone := phonePrefix + req.Phone

	code, err := generateOTP()
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	expiresAt := time.Now().Add(otpTTL)

	user, err := s.userRepository.GetByPhone(ctx, phone)
	switch {
	case err == nil:
		user.OTPHash = string(hash)
		user.OTPExpiresAt = &expiresAt
		if err := s.userRepository.Update(ctx, user); err != nil {
			return err
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		user = &entities.User{
			ID:           uuid.New(),
			Phone:        phone,
			Role:         entities.RoleUser,
			OTPHash:      string(hash),
			OTPExpiresAt: &expiresAt,
		}
		if err := s.userRepository.Create(ctx, user); err != nil {
			return err
		}
	default:
		return err
	}

	// Best-effort dispatch: a provider failure must not block signup.
	if err := s.otpSender.Send(phone, code); err != nil {
		log.Errorf("failed to send OTP to %s: %v", phone, err)
	}

	return nil
}

func (s *userService) VerifyOTP(ctx context.Context, req domain.VerifyOTPRequest) (domain.VerifyOTPResponse, error) {
	if !phonePattern.MatchString(req.Phone) {
		return domain.VerifyOTPResponse{}, domain.ErrInvalidPhone
	}

	phone := phonePrefix + req.Phone
	user, err := s.userRepository.GetByPhone(ctx, phone)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.VerifyOTPResponse{}, domain.ErrUserNotFound
		}
		return domain.VerifyOTPResponse{}, err
	}

	if user.OTPHash == "" {
		return domain.VerifyOTPResponse{}, domain.ErrInvalidOTP
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.OTPHash), []byte(req.OTP)); err != nil {
		return domain.VerifyOTPResponse{}, domain.ErrInvalidOTP
	}
	if user.OTPExpiresAt != nil && user.OTPExpiresAt.Before(time.Now()) {
		return domain.VerifyOTPResponse{}, domain.ErrOTPExpired
	}

	user.IsVerified = true
	user.OTPHash = ""
	user.OTPExpiresAt = nil
	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Location != "" {
		user.Location = req.Location
	}
	if err := s.userRepository.Update(ctx, user); err != nil {
		return domain.VerifyOTPResponse{}, err
	}

	token, err := s.jwtService.GenerateToken(user.ID.String(), user.Role)
	if err != nil {
		return domain.VerifyOTPResponse{}, err
	}

	return domain.VerifyOTPResponse{
		Token: token,
		User:  toUserResponse(user),
	}, nil
}

func (s *userService) Me(ctx context.Context, userID string) (domain.UserResponse, error) {
	user, err := s.userRepository.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.UserResponse{}, domain.ErrUserNotFound
		}
		return domain.UserResponse{}, err
	}
	return toUserResponse(user), nil
}

func toUserResponse(user *entities.User) domain.UserResponse {
	return domain.UserResponse{
		ID:       user.ID.String(),
		Phone:    user.Phone,
		Name:     user.Name,
		Location: user.Location,
		Role:     user.Role,
	}
}
