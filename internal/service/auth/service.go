package auth

import (
	"context"
	"time"

	"carrental-service/internal/domain/user"
	xerrors "carrental-service/internal/pkg/errors"
	"carrental-service/internal/pkg/session"
	"carrental-service/internal/pkg/token"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type AuthService struct {
	userRepo    user.Repository
	tokens      *token.Manager
	sessions    *session.Manager
	rateLimiter *session.RateLimiter
	logger      *zap.Logger
}

func NewAuthService(
	userRepo user.Repository,
	tokens *token.Manager,
	sessions *session.Manager,
	rateLimiter *session.RateLimiter,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		tokens:      tokens,
		sessions:    sessions,
		rateLimiter: rateLimiter,
		logger:      logger,
	}
}

// Register creates a staff account. Admin-only, enforced at the route level.
func (s *AuthService) Register(ctx context.Context, req *user.RegisterUserRequest) (*user.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, xerrors.Wrap(err, "failed to hash password")
	}

	u := &user.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
		FullName:     req.FullName,
		Role:         req.Role,
		IsActive:     true,
	}
	if err := s.userRepo.Create(ctx, u); err != nil {
		return nil, err
	}

	s.logger.Info("staff account created",
		zap.Int64("user_id", u.ID),
		zap.String("username", u.Username),
		zap.String("role", u.Role),
	)
	return u, nil
}

// Login verifies credentials and issues a signed token backed by a redis
// session. Failed attempts are rate limited per ip+username.
func (s *AuthService) Login(ctx context.Context, req *user.LoginRequest, ip, userAgent string) (*user.LoginResponse, error) {
	allowed, remaining, err := s.rateLimiter.CheckLoginAttempt(ctx, ip, req.Username)
	if err != nil {
		s.logger.Error("rate limiter unavailable", zap.Error(err))
	} else if !allowed {
		s.logger.Warn("login rate limited",
			zap.String("username", req.Username),
			zap.String("ip", ip),
		)
		return nil, xerrors.ErrRateLimited
	}

	u, err := s.userRepo.FindByUsername(ctx, req.Username)
	if err != nil {
		if xerrors.Is(err, xerrors.ErrNotFound) {
			return nil, xerrors.ErrInvalidCredentials
		}
		return nil, err
	}
	if !u.IsActive {
		return nil, xerrors.ErrAccountDisabled
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)) != nil {
		s.logger.Warn("invalid password",
			zap.String("username", req.Username),
			zap.Int64("attempts_remaining", remaining),
		)
		return nil, xerrors.ErrInvalidCredentials
	}

	tokenString, jti, err := s.tokens.Generator.Generate(u.ID, u.Username, u.Role)
	if err != nil {
		return nil, xerrors.Wrap(err, "failed to issue token")
	}

	now := time.Now()
	if err := s.sessions.Create(ctx, &session.Session{
		JTI:            jti,
		UserID:         u.ID,
		Username:       u.Username,
		Role:           u.Role,
		IPAddress:      ip,
		UserAgent:      userAgent,
		LoginAt:        now,
		LastActivityAt: now,
		ExpiresAt:      now.Add(s.tokens.Generator.TTL),
	}); err != nil {
		return nil, xerrors.Wrap(err, "failed to create session")
	}

	if err := s.rateLimiter.ResetLoginAttempts(ctx, ip, req.Username); err != nil {
		s.logger.Warn("failed to reset login attempts", zap.Error(err))
	}

	s.logger.Info("user logged in",
		zap.Int64("user_id", u.ID),
		zap.String("username", u.Username),
		zap.String("ip", ip),
	)
	return &user.LoginResponse{Token: tokenString, User: u}, nil
}

// Logout revokes the session behind the presented token.
func (s *AuthService) Logout(ctx context.Context, userID int64, jti string) error {
	if err := s.sessions.Revoke(ctx, userID, jti); err != nil {
		return xerrors.Wrap(err, "failed to revoke session")
	}
	s.logger.Info("user logged out", zap.Int64("user_id", userID))
	return nil
}

func (s *AuthService) Me(ctx context.Context, userID int64) (*user.User, error) {
	return s.userRepo.FindByID(ctx, userID)
}

func (s *AuthService) ListUsers(ctx context.Context) ([]*user.User, error) {
	return s.userRepo.List(ctx)
}

// SetActive enables or disables a staff account. Disabling also revokes all
// live sessions so outstanding tokens stop working at once.
func (s *AuthService) SetActive(ctx context.Context, userID int64, active bool) error {
	if err := s.userRepo.SetActive(ctx, userID, active); err != nil {
		return err
	}
	if !active {
		if err := s.sessions.RevokeAll(ctx, userID); err != nil {
			s.logger.Error("failed to revoke sessions for disabled user",
				zap.Int64("user_id", userID), zap.Error(err))
		}
	}
	s.logger.Info("user active flag changed",
		zap.Int64("user_id", userID),
		zap.Bool("active", active),
	)
	return nil
}
