package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log"
	"math/big"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"campusmarket/internal/config"
	"campusmarket/internal/mail"
	"campusmarket/internal/models"
	"campusmarket/internal/repository"
)

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	College  string
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*models.User, string, error)
	VerifyEmail(ctx context.Context, email, otp string) error
	VerifyID(ctx context.Context, userID, idPhotoURL string) error
	Login(ctx context.Context, email, password string) (*models.User, string, error)
	IssueSession(ctx context.Context, userID string) (string, error)
	VerifyToken(tokenString string) (string, error)
}

type authService struct {
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
	otpRepo     repository.OTPRepository
	mailer      mail.Mailer
	cfg         *config.Config
}

func NewAuthService(userRepo repository.UserRepository, sessionRepo repository.SessionRepository,
	otpRepo repository.OTPRepository, mailer mail.Mailer, cfg *config.Config) AuthService {
	return &authService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		otpRepo:     otpRepo,
		mailer:      mailer,
		cfg:         cfg,
	}
}

// IsStudentEmail reports whether the address belongs to an academic or
// organizational domain (.edu, .org, including country forms like .edu.in).
func IsStudentEmail(email string) bool {
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return false
	}
	domain := strings.ToLower(email[at+1:])

	return strings.HasSuffix(domain, ".edu") ||
		strings.HasSuffix(domain, ".org") ||
		strings.Contains(domain, ".edu.")
}

// generateOTP returns a 6-digit numeric code from crypto/rand.
func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", fmt.Errorf("failed to generate code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

// Register creates an unverified account and issues an OTP for the email.
// The users.email unique constraint is what makes concurrent registrations
// safe: the losing request gets ErrEmailTaken from the insert itself.
// The OTP is returned to the caller only outside production.
func (s *authService) Register(ctx context.Context, input RegisterInput) (*models.User, string, error) {
	if !IsStudentEmail(input.Email) {
		return nil, "", ErrInvalidEmailDomain
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:         input.Name,
		Email:        strings.ToLower(input.Email),
		PasswordHash: string(hashedPassword),
		College:      input.College,
	}

	err = s.userRepo.CreateUser(ctx, user)
	if err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			return nil, "", ErrEmailTaken
		}
		return nil, "", fmt.Errorf("failed to create user: %w", err)
	}

	otp, err := generateOTP()
	if err != nil {
		s.rollbackRegistration(ctx, user.UserID)
		return nil, "", err
	}

	err = s.otpRepo.UpsertCode(ctx, user.Email, otp, time.Now().Add(s.cfg.OTPDuration))
	if err != nil {
		s.rollbackRegistration(ctx, user.UserID)
		return nil, "", fmt.Errorf("failed to store verification code: %w", err)
	}

	if err := s.mailer.SendOTP(ctx, user.Email, otp); err != nil {
		// The account exists and the code is stored; delivery failure should
		// not roll back registration. The user can retry from the verify step.
		log.Printf("Failed to send OTP email to %s: %v", user.Email, err)
	}

	if s.cfg.IsProduction() {
		otp = ""
	}

	return user, otp, nil
}

// rollbackRegistration removes a user created in a registration attempt that
// could not issue its OTP. Without a stored code the account can never pass
// verification, and the email stays blocked with a 409 on every retry.
func (s *authService) rollbackRegistration(ctx context.Context, userID string) {
	if err := s.userRepo.DeleteUser(ctx, userID); err != nil {
		log.Printf("Failed to roll back registration for %s: %v", userID, err)
	}
}

// VerifyEmail checks the submitted code against the most recently issued,
// unexpired one. Every failure returns the same ErrInvalidOTP so the
// response never reveals whether the email is registered.
func (s *authService) VerifyEmail(ctx context.Context, email, otp string) error {
	email = strings.ToLower(email)

	verification, err := s.otpRepo.GetCode(ctx, email)
	if err != nil {
		return ErrInvalidOTP
	}

	if verification.Code != otp || time.Now().After(verification.ExpiresAt) {
		return ErrInvalidOTP
	}

	if err := s.userRepo.MarkEmailVerified(ctx, email); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrInvalidOTP
		}
		return fmt.Errorf("failed to mark email verified: %w", err)
	}

	// Codes are single-use.
	if err := s.otpRepo.DeleteCode(ctx, email); err != nil {
		log.Printf("Failed to delete used OTP for %s: %v", email, err)
	}

	return nil
}

// VerifyID records the uploaded student-ID photo and moves the account to
// PENDING. Actual inspection happens out of band; the step is optional and
// skipping it never blocks the account.
func (s *authService) VerifyID(ctx context.Context, userID, idPhotoURL string) error {
	err := s.userRepo.SetIDPhoto(ctx, userID, idPhotoURL)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to save id photo: %w", err)
	}

	return nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := s.userRepo.GetUserByEmail(ctx, strings.ToLower(email))
	if err != nil {
		// Unknown email and wrong password are indistinguishable to the caller.
		return nil, "", ErrInvalidCredentials
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password))
	if err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.IssueSession(ctx, user.UserID)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

// IssueSession mints a signed bearer token and records the matching session
// row. The session row allows audit and invalidation independent of the
// token's own expiry. Presence is refreshed as a side effect.
func (s *authService) IssueSession(ctx context.Context, userID string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"userId": userID,
		"exp":    now.Add(s.cfg.TokenDuration).Unix(),
		"iat":    now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(s.cfg.JWTSecretKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	session := &models.Session{
		UserID:    userID,
		Token:     tokenString,
		ExpiresAt: now.Add(s.cfg.SessionDuration),
	}

	if err := s.sessionRepo.CreateSession(ctx, session); err != nil {
		return "", fmt.Errorf("failed to create session: %w", err)
	}

	if err := s.userRepo.UpdatePresence(ctx, userID, true); err != nil {
		log.Printf("Failed to update presence for %s: %v", userID, err)
	}

	return tokenString, nil
}

// VerifyToken resolves a bearer token to a user id. Any malformed, expired or
// mis-signed token yields ErrInvalidToken and nothing else.
func (s *authService) VerifyToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.JWTSecretKey), nil
	})

	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidToken
	}

	userID, ok := claims["userId"].(string)
	if !ok || userID == "" {
		return "", ErrInvalidToken
	}

	return userID, nil
}
