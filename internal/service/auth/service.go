package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"ls-tech-blogs/internal/config"
	"ls-tech-blogs/internal/domain"
	"ls-tech-blogs/internal/repository"
	"ls-tech-blogs/internal/service/email"
)

var (
	ErrInvalidCredentials = errors.New("invalid email, username or password")
	ErrEmailExists        = errors.New("email already registered")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrDomainNotAllowed   = errors.New("email domain is not allowed")
	ErrInvalidOTP         = errors.New("invalid or expired otp")
	ErrUserNotFound       = errors.New("user does not exist")
	ErrAlreadyVerified    = errors.New("email is already verified")
	ErrEmailNotVerified   = errors.New("email not verified")
	ErrAccountInactive    = errors.New("account is deactivated")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrTokenExpired       = errors.New("password reset token has expired")
)

const resetTokenTTL = time.Hour

type Service interface {
	Signup(ctx context.Context, input domain.SignupInput) (*domain.User, error)
	VerifyOTP(ctx context.Context, input domain.VerifyOTPInput) error
	ResendOTP(ctx context.Context, email string) error
	Login(ctx context.Context, input domain.LoginInput) (*domain.User, *domain.TokenPair, error)
	GoogleLogin(ctx context.Context, idToken string) (*domain.User, *domain.TokenPair, error)
	RefreshToken(ctx context.Context, refreshToken string) (*domain.TokenPair, error)
	ValidateAccessToken(token string) (*Claims, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	RequestPasswordReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
}

type Claims struct {
	UserID uuid.UUID `json:"user_id"`
	Email  string    `json:"email"`
	Role   string    `json:"role"`
	jwt.RegisteredClaims
}

type service struct {
	userRepo     repository.UserRepository
	sessionRepo  repository.SessionRepository
	otpStore     OTPStore
	google       GoogleVerifier
	emailService email.Service
	cfg          *config.Config
}

func NewService(
	userRepo repository.UserRepository,
	sessionRepo repository.SessionRepository,
	otpStore OTPStore,
	google GoogleVerifier,
	emailService email.Service,
	cfg *config.Config,
) Service {
	return &service{
		userRepo:     userRepo,
		sessionRepo:  sessionRepo,
		otpStore:     otpStore,
		google:       google,
		emailService: emailService,
		cfg:          cfg,
	}
}

func (s *service) domainAllowed(email string) bool {
	if len(s.cfg.AllowedEmailDomains) == 0 {
		return true
	}
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return false
	}
	host := strings.ToLower(email[at+1:])
	for _, allowed := range s.cfg.AllowedEmailDomains {
		if host == allowed {
			return true
		}
	}
	return false
}

func (s *service) Signup(ctx context.Context, input domain.SignupInput) (*domain.User, error) {
	emailAddr := strings.ToLower(strings.TrimSpace(input.Email))
	if !s.domainAllowed(emailAddr) {
		return nil, ErrDomainNotAllowed
	}

	exists, err := s.userRepo.ExistsByEmail(ctx, emailAddr)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailExists
	}

	exists, err = s.userRepo.ExistsByUsername(ctx, input.Username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrUsernameTaken
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	phone := input.Phone
	user := &domain.User{
		ID:           uuid.New(),
		Email:        emailAddr,
		Username:     input.Username,
		PasswordHash: string(hashedPassword),
		FirstName:    input.Name.First,
		LastName:     input.Name.Last,
		Phone:        &phone,
		AccountType:  domain.AccountTypeEmail,
		Role:         string(domain.RoleEmployee),
		IsActive:     false,
		IsVerified:   false,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailExists
		}
		return nil, err
	}

	// the user cannot proceed without the code, so delivery failure is surfaced
	if err := s.issueOTP(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to send verification code: %w", err)
	}

	return user, nil
}

func (s *service) issueOTP(ctx context.Context, user *domain.User) error {
	code, err := generateOTP()
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	if err := s.otpStore.Save(ctx, user.Email, string(hash), s.cfg.OTPExpiry); err != nil {
		return err
	}

	return s.emailService.SendOTP(ctx, user.Email, user.FullName(), code, s.cfg.OTPExpiry)
}

func (s *service) VerifyOTP(ctx context.Context, input domain.VerifyOTPInput) error {
	user, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}
	if user.IsVerified {
		return ErrAlreadyVerified
	}

	hash, err := s.otpStore.Get(ctx, user.Email)
	if errors.Is(err, ErrOTPNotFound) {
		return ErrInvalidOTP
	}
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(input.OTP)) != nil {
		return ErrInvalidOTP
	}

	if err := s.userRepo.MarkVerified(ctx, user.ID); err != nil {
		return err
	}
	if err := s.otpStore.Delete(ctx, user.Email); err != nil {
		logrus.WithError(err).WithField("user_id", user.ID).Warn("failed to delete used otp")
	}

	go func() {
		if err := s.emailService.SendWelcome(context.Background(), user.Email, user.FullName()); err != nil {
			logrus.WithError(err).WithField("user_id", user.ID).Error("failed to send welcome email")
		}
	}()

	return nil
}

func (s *service) ResendOTP(ctx context.Context, emailAddr string) error {
	user, err := s.userRepo.GetByEmail(ctx, emailAddr)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}
	if user.IsVerified {
		return ErrAlreadyVerified
	}

	return s.issueOTP(ctx, user)
}

func (s *service) findByHandle(ctx context.Context, handle string) (*domain.User, error) {
	handle = strings.TrimSpace(handle)
	if strings.Contains(handle, "@") {
		return s.userRepo.GetByEmail(ctx, handle)
	}
	return s.userRepo.GetByUsername(ctx, handle)
}

func (s *service) Login(ctx context.Context, input domain.LoginInput) (*domain.User, *domain.TokenPair, error) {
	user, err := s.findByHandle(ctx, input.Handle)
	if err != nil {
		return nil, nil, err
	}
	if user == nil || user.PasswordHash == "" {
		return nil, nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	if !user.IsVerified {
		return nil, nil, ErrEmailNotVerified
	}
	if !user.IsActive {
		return nil, nil, ErrAccountInactive
	}

	return s.completeLogin(ctx, user)
}

func (s *service) completeLogin(ctx context.Context, user *domain.User) (*domain.User, *domain.TokenPair, error) {
	tokens, session, err := s.issueTokens(user)
	if err != nil {
		return nil, nil, err
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, nil, err
	}

	if err := s.userRepo.TouchLastLogin(ctx, user.ID); err != nil {
		logrus.WithError(err).WithField("user_id", user.ID).Warn("failed to record last login")
	}

	return user, tokens, nil
}

func (s *service) GoogleLogin(ctx context.Context, idToken string) (*domain.User, *domain.TokenPair, error) {
	identity, err := s.google.Verify(idToken)
	if err != nil {
		return nil, nil, err
	}

	emailAddr := strings.ToLower(identity.Email)
	if !s.domainAllowed(emailAddr) {
		return nil, nil, ErrDomainNotAllowed
	}

	user, err := s.userRepo.GetByGoogleID(ctx, identity.Subject)
	if err != nil {
		return nil, nil, err
	}
	if user == nil {
		user, err = s.userRepo.GetByEmail(ctx, emailAddr)
		if err != nil {
			return nil, nil, err
		}
	}

	if user == nil {
		user, err = s.createGoogleUser(ctx, identity, emailAddr)
		if err != nil {
			return nil, nil, err
		}
		return s.completeLogin(ctx, user)
	}

	// verified but inactive means an admin switched the account off
	if user.IsVerified && !user.IsActive {
		return nil, nil, ErrAccountInactive
	}

	if user.GoogleID == nil || !user.IsVerified {
		subject := identity.Subject
		user.GoogleID = &subject
		user.IsVerified = true
		user.IsActive = true
		if err := s.userRepo.Update(ctx, user); err != nil {
			return nil, nil, err
		}
	}

	return s.completeLogin(ctx, user)
}

func (s *service) createGoogleUser(ctx context.Context, identity *GoogleIdentity, emailAddr string) (*domain.User, error) {
	username, err := s.availableUsername(ctx, emailAddr)
	if err != nil {
		return nil, err
	}

	first, last := splitName(identity.Name)
	if first == "" {
		first = username
	}

	subject := identity.Subject
	user := &domain.User{
		ID:          uuid.New(),
		Email:       emailAddr,
		Username:    username,
		FirstName:   first,
		LastName:    last,
		AccountType: domain.AccountTypeGoogle,
		GoogleID:    &subject,
		Role:        string(domain.RoleEmployee),
		IsActive:    true,
		IsVerified:  true,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailExists
		}
		return nil, err
	}
	return user, nil
}

// availableUsername derives a username from the mailbox name, suffixing on collision.
func (s *service) availableUsername(ctx context.Context, emailAddr string) (string, error) {
	base := emailAddr
	if at := strings.Index(base, "@"); at >= 0 {
		base = base[:at]
	}
	if len(base) > 20 {
		base = base[:20]
	}

	candidate := base
	for i := 0; i < 5; i++ {
		taken, err := s.userRepo.ExistsByUsername(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		candidate = base + strings.SplitN(uuid.NewString(), "-", 2)[0][:4]
	}
	return base + strings.ReplaceAll(uuid.NewString(), "-", "")[:8], nil
}

func splitName(full string) (string, string) {
	parts := strings.Fields(full)
	switch len(parts) {
	case 0:
		return "", ""
	case 1:
		return parts[0], ""
	default:
		return parts[0], strings.Join(parts[1:], " ")
	}
}

func (s *service) RefreshToken(ctx context.Context, refreshToken string) (*domain.TokenPair, error) {
	session, err := s.sessionRepo.GetByTokenHash(ctx, hashToken(refreshToken))
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrInvalidToken
	}

	user, err := s.userRepo.GetByID(ctx, session.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	if !user.IsActive {
		return nil, ErrAccountInactive
	}

	tokens, next, err := s.issueTokens(user)
	if err != nil {
		return nil, err
	}
	if err := s.sessionRepo.Rotate(ctx, session.ID, next); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	return tokens, nil
}

func (s *service) ValidateAccessToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

func (s *service) GetUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// issueTokens signs an access token and prepares the refresh session backing it; the caller persists the session.
func (s *service) issueTokens(user *domain.User) (*domain.TokenPair, *repository.Session, error) {
	now := time.Now()
	accessClaims := &Claims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.JWTAccessExpiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			Subject:   user.ID.String(),
		},
	}

	accessToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims).SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return nil, nil, err
	}

	refreshToken := uuid.New().String()
	session := &repository.Session{
		ID:        uuid.New(),
		UserID:    user.ID,
		TokenHash: hashToken(refreshToken),
		ExpiresAt: now.Add(s.cfg.JWTRefreshExpiry),
	}

	return &domain.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(s.cfg.JWTAccessExpiry.Seconds()),
	}, session, nil
}

func (s *service) RequestPasswordReset(ctx context.Context, emailAddr string) error {
	user, err := s.userRepo.GetByEmail(ctx, emailAddr)
	if err != nil {
		return err
	}
	if user == nil {
		return nil
	}

	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		return err
	}
	resetToken := hex.EncodeToString(tokenBytes)

	if err := s.userRepo.SetPasswordResetToken(ctx, user.ID, hashToken(resetToken), time.Now().Add(resetTokenTTL)); err != nil {
		return err
	}

	go func() {
		err := s.emailService.SendPasswordReset(context.Background(), user.Email, user.FullName(), resetToken)
		if err != nil {
			logrus.WithError(err).WithField("user_id", user.ID).Error("failed to send password reset email")
		}
	}()

	return nil
}

func (s *service) ResetPassword(ctx context.Context, token, newPassword string) error {
	user, err := s.userRepo.GetUserByResetToken(ctx, hashToken(token))
	if err != nil {
		return err
	}
	if user == nil {
		return ErrInvalidToken
	}

	if user.PasswordResetExpiresAt != nil && time.Now().After(*user.PasswordResetExpiresAt) {
		return ErrTokenExpired
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	if err := s.userRepo.UpdatePassword(ctx, user.ID, string(hashedPassword)); err != nil {
		return err
	}
	if err := s.userRepo.ClearPasswordResetToken(ctx, user.ID); err != nil {
		return err
	}

	// every refresh token issued before the reset stops working
	return s.sessionRepo.RevokeAllForUser(ctx, user.ID)
}

func hashToken(token string) string {
	hash := sha256.Sum256([]byte(token))
	return hex.EncodeToString(hash[:])
}
