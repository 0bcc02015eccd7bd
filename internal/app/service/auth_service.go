package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jmlee/fantasy-shop-backend/config"
	"github.com/jmlee/fantasy-shop-backend/internal/app/model"
	"github.com/jmlee/fantasy-shop-backend/internal/app/repository"
	"github.com/jmlee/fantasy-shop-backend/pkg/logger"
	"github.com/jmlee/fantasy-shop-backend/pkg/oauth/firebase"
	"github.com/jmlee/fantasy-shop-backend/pkg/oauth/kakao"
	"github.com/jmlee/fantasy-shop-backend/pkg/util"
	"gorm.io/gorm"
)

var (
	ErrEmailAlreadyExists  = errors.New("email already exists")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrUserNotFound        = errors.New("user not found")
	ErrRefreshTokenInvalid = errors.New("refresh token invalid")
	ErrSocialLoginFailed   = errors.New("social login failed")
)

// KakaoAuthenticator is the slice of the Kakao client the auth service needs
type KakaoAuthenticator interface {
	ExchangeCode(ctx context.Context, code string) (*kakao.TokenResponse, error)
	FetchProfile(ctx context.Context, accessToken string) (*kakao.Profile, error)
}

// FirebaseVerifier is the slice of the Firebase client the auth service needs
type FirebaseVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*firebase.TokenInfo, error)
}

type AuthService interface {
	Register(ctx context.Context, email, password, nickname string) (*model.User, error)
	Login(ctx context.Context, email, password string) (*model.User, *util.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*util.TokenPair, error)
	Logout(ctx context.Context, userID uint, refreshToken string) error
	GetUserByID(id uint) (*model.User, error)
	KakaoLogin(ctx context.Context, code string) (*model.User, *util.TokenPair, error)
	FirebaseLogin(ctx context.Context, idToken string) (*model.User, *util.TokenPair, error)
}

type authService struct {
	userRepo   repository.UserRepository
	tokenStore repository.RefreshTokenStore
	kakao      KakaoAuthenticator
	firebase   FirebaseVerifier
	jwt        config.JWTConfig
}

func NewAuthService(
	userRepo repository.UserRepository,
	tokenStore repository.RefreshTokenStore,
	kakaoClient KakaoAuthenticator,
	firebaseClient FirebaseVerifier,
	jwtCfg config.JWTConfig,
) AuthService {
	return &authService{
		userRepo:   userRepo,
		tokenStore: tokenStore,
		kakao:      kakaoClient,
		firebase:   firebaseClient,
		jwt:        jwtCfg,
	}
}

func (s *authService) Register(ctx context.Context, email, password, nickname string) (*model.User, error) {
	logger.Info("Attempting user registration", map[string]interface{}{
		"email": email,
	})

	existingUser, err := s.userRepo.FindByEmail(email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		logger.Error("Failed to check existing user", err, map[string]interface{}{
			"email": email,
		})
		return nil, err
	}
	if existingUser != nil {
		logger.Warn("Registration failed: email already exists", map[string]interface{}{
			"email": email,
		})
		return nil, ErrEmailAlreadyExists
	}

	hashedPassword, err := util.HashPassword(password)
	if err != nil {
		logger.Error("Failed to hash password", err, map[string]interface{}{
			"email": email,
		})
		return nil, err
	}

	user := &model.User{
		Email:        email,
		PasswordHash: hashedPassword,
		Nickname:     nickname,
		Role:         model.RoleUser,
		Provider:     model.ProviderLocal,
	}

	if err := s.userRepo.Create(user); err != nil {
		logger.Error("Failed to create user in database", err, map[string]interface{}{
			"email": email,
		})
		return nil, err
	}

	logger.Info("User registered successfully", map[string]interface{}{
		"user_id": user.ID,
		"email":   email,
	})

	return user, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*model.User, *util.TokenPair, error) {
	logger.Info("Login attempt", map[string]interface{}{
		"email": email,
	})

	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Login failed: user not found", map[string]interface{}{
				"email": email,
			})
			return nil, nil, ErrInvalidCredentials
		}
		logger.Error("Failed to find user", err, map[string]interface{}{
			"email": email,
		})
		return nil, nil, err
	}

	if !util.VerifyPassword(user.PasswordHash, password) {
		logger.Warn("Login failed: invalid password", map[string]interface{}{
			"email":   email,
			"user_id": user.ID,
		})
		return nil, nil, ErrInvalidCredentials
	}

	tokens, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, nil, err
	}

	logger.Info("User logged in successfully", map[string]interface{}{
		"user_id": user.ID,
		"email":   email,
		"role":    user.Role,
	})

	return user, tokens, nil
}

// Refresh rotates a refresh token: the presented token must verify against
// the refresh secret AND still have a record in the side store. The old
// record is deleted before a new pair is issued, so each refresh token works
// exactly once. Every failure mode collapses to ErrRefreshTokenInvalid to
// avoid leaking which check rejected the token.
func (s *authService) Refresh(ctx context.Context, refreshToken string) (*util.TokenPair, error) {
	claims, err := util.ValidateRefreshToken(refreshToken, s.jwt.RefreshSecret)
	if err != nil {
		logger.Warn("Refresh rejected: token validation failed", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, ErrRefreshTokenInvalid
	}

	ok, err := s.tokenStore.Exists(ctx, claims.UserID, refreshToken)
	if err != nil {
		logger.Error("Failed to check refresh token record", err, map[string]interface{}{
			"user_id": claims.UserID,
		})
		return nil, ErrRefreshTokenInvalid
	}
	if !ok {
		logger.Warn("Refresh rejected: token not in store", map[string]interface{}{
			"user_id": claims.UserID,
		})
		return nil, ErrRefreshTokenInvalid
	}

	user, err := s.userRepo.FindByID(claims.UserID)
	if err != nil {
		logger.Warn("Refresh rejected: user lookup failed", map[string]interface{}{
			"user_id": claims.UserID,
		})
		return nil, ErrRefreshTokenInvalid
	}

	// Consume the old token before issuing the replacement. If issuance
	// fails afterwards the client must log in again, which fails closed.
	if err := s.tokenStore.Delete(ctx, claims.UserID, refreshToken); err != nil {
		logger.Error("Failed to consume refresh token", err, map[string]interface{}{
			"user_id": claims.UserID,
		})
		return nil, ErrRefreshTokenInvalid
	}

	tokens, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, ErrRefreshTokenInvalid
	}

	logger.Info("Refresh token rotated", map[string]interface{}{
		"user_id": user.ID,
	})
	return tokens, nil
}

// Logout revokes refresh tokens. With a token it ends that session only;
// without one it ends every session of the user. Revoking a token that is
// already gone is not an error.
func (s *authService) Logout(ctx context.Context, userID uint, refreshToken string) error {
	if refreshToken == "" {
		if err := s.tokenStore.DeleteAll(ctx, userID); err != nil {
			logger.Error("Failed to revoke refresh tokens", err, map[string]interface{}{
				"user_id": userID,
			})
			return err
		}
		logger.Info("User logged out of all sessions", map[string]interface{}{
			"user_id": userID,
		})
		return nil
	}

	if err := s.tokenStore.Delete(ctx, userID, refreshToken); err != nil {
		logger.Error("Failed to revoke refresh token", err, map[string]interface{}{
			"user_id": userID,
		})
		return err
	}

	logger.Info("User logged out", map[string]interface{}{
		"user_id": userID,
	})
	return nil
}

func (s *authService) GetUserByID(id uint) (*model.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("User not found", map[string]interface{}{
				"user_id": id,
			})
			return nil, ErrUserNotFound
		}
		logger.Error("Failed to fetch user", err, map[string]interface{}{
			"user_id": id,
		})
		return nil, err
	}
	return user, nil
}

func (s *authService) KakaoLogin(ctx context.Context, code string) (*model.User, *util.TokenPair, error) {
	if s.kakao == nil {
		logger.Warn("Kakao login attempted but provider is not configured")
		return nil, nil, ErrSocialLoginFailed
	}
	logger.Info("Kakao login attempt")

	token, err := s.kakao.ExchangeCode(ctx, code)
	if err != nil {
		logger.Warn("Kakao token exchange failed", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, nil, ErrSocialLoginFailed
	}

	profile, err := s.kakao.FetchProfile(ctx, token.AccessToken)
	if err != nil {
		logger.Warn("Kakao profile fetch failed", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, nil, ErrSocialLoginFailed
	}

	providerID := fmt.Sprintf("%d", profile.ID)
	nickname := profile.KakaoAccount.Profile.Nickname
	if nickname == "" {
		nickname = "kakao_user"
	}
	// Kakao may withhold the real email depending on consent; a synthetic
	// address keeps the unique-email invariant without colliding with
	// local accounts.
	email := fmt.Sprintf("kakao_%d@kakao.local", profile.ID)

	return s.socialLogin(ctx, model.ProviderKakao, providerID, email, nickname)
}

func (s *authService) FirebaseLogin(ctx context.Context, idToken string) (*model.User, *util.TokenPair, error) {
	if s.firebase == nil {
		logger.Warn("Firebase login attempted but provider is not configured")
		return nil, nil, ErrSocialLoginFailed
	}
	logger.Info("Firebase login attempt")

	info, err := s.firebase.VerifyIDToken(ctx, idToken)
	if err != nil {
		logger.Warn("Firebase token verification failed", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, nil, ErrSocialLoginFailed
	}

	nickname := info.Name
	if nickname == "" {
		nickname = "firebase_user"
	}
	email := info.Email
	if email == "" {
		email = fmt.Sprintf("firebase_%s@firebase.local", info.Subject)
	}

	return s.socialLogin(ctx, model.ProviderFirebase, info.Subject, email, nickname)
}

// socialLogin finds or creates the account bound to an external identity,
// then issues a token pair. Social accounts get a random bcrypt hash so
// password login can never succeed for them.
func (s *authService) socialLogin(ctx context.Context, provider model.AuthProvider, providerID, email, nickname string) (*model.User, *util.TokenPair, error) {
	user, err := s.userRepo.FindByProvider(provider, providerID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Error("Failed to look up social account", err, map[string]interface{}{
				"provider": provider,
			})
			return nil, nil, err
		}

		hash, err := util.DummyPasswordHash()
		if err != nil {
			return nil, nil, err
		}

		pid := providerID
		user = &model.User{
			Email:        email,
			PasswordHash: hash,
			Nickname:     nickname,
			Role:         model.RoleUser,
			Provider:     provider,
			ProviderID:   &pid,
		}
		if err := s.userRepo.Create(user); err != nil {
			logger.Error("Failed to create social account", err, map[string]interface{}{
				"provider": provider,
				"email":    email,
			})
			return nil, nil, err
		}

		logger.Info("Social account created", map[string]interface{}{
			"user_id":  user.ID,
			"provider": provider,
		})
	}

	tokens, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, nil, err
	}

	logger.Info("Social login succeeded", map[string]interface{}{
		"user_id":  user.ID,
		"provider": provider,
	})
	return user, tokens, nil
}

func (s *authService) issueTokens(ctx context.Context, user *model.User) (*util.TokenPair, error) {
	tokens, err := util.GenerateTokenPair(
		user.ID,
		string(user.Role),
		s.jwt.AccessSecret,
		s.jwt.RefreshSecret,
		s.jwt.AccessTokenExpiry,
		s.jwt.RefreshTokenExpiry,
	)
	if err != nil {
		logger.Error("Failed to generate tokens", err, map[string]interface{}{
			"user_id": user.ID,
		})
		return nil, err
	}

	if err := s.tokenStore.Save(ctx, user.ID, tokens.RefreshToken, s.jwt.RefreshTokenExpiry); err != nil {
		logger.Error("Failed to record refresh token", err, map[string]interface{}{
			"user_id": user.ID,
		})
		return nil, err
	}

	return tokens, nil
}
