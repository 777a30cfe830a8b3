package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/simsportal/sims-portal-backend/internal/data/repos"
	"github.com/simsportal/sims-portal-backend/internal/domain"
	"github.com/simsportal/sims-portal-backend/internal/platform/apperr"
	"github.com/simsportal/sims-portal-backend/internal/platform/ctxutil"
	"github.com/simsportal/sims-portal-backend/internal/platform/logger"
)

type JWTClaims struct {
	jwt.RegisteredClaims
}

type AuthService interface {
	// SetContextFromToken verifies tokenString and returns ctx carrying the
	// caller's RequestData.
	SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
	// IssueToken mints an access token for userID; used by operator tooling.
	IssueToken(userID uint, ttl time.Duration) (string, error)
}

type authService struct {
	log          *logger.Logger
	userRepo     repos.UserRepo
	jwtSecretKey []byte
	issuer       string
}

func NewAuthService(log *logger.Logger, userRepo repos.UserRepo, jwtSecretKey string, issuer string) AuthService {
	return &authService{
		log:          log.With("service", "AuthService"),
		userRepo:     userRepo,
		jwtSecretKey: []byte(jwtSecretKey),
		issuer:       issuer,
	}
}

func (as *authService) IssueToken(userID uint, ttl time.Duration) (string, error) {
	if userID == 0 {
		return "", fmt.Errorf("%w: user id required", apperr.ErrInvalidArgument)
	}
	if ttl <= 0 {
		ttl = time.Hour
	}
	now := time.Now()
	claims := JWTClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(userID), 10),
			Issuer:    as.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(as.jwtSecretKey)
}

func (as *authService) parse(tokenString string) (uint, error) {
	claims := &JWTClaims{}
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired()}
	if as.issuer != "" {
		opts = append(opts, jwt.WithIssuer(as.issuer))
	}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return as.jwtSecretKey, nil
	}, opts...)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", apperr.ErrUnauthorized, err)
	}
	if !token.Valid {
		return 0, fmt.Errorf("%w: invalid token", apperr.ErrUnauthorized)
	}
	id, err := strconv.ParseUint(strings.TrimSpace(claims.Subject), 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("%w: bad subject", apperr.ErrUnauthorized)
	}
	return uint(id), nil
}

func (as *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
	tokenString = strings.TrimSpace(tokenString)
	if tokenString == "" {
		return ctx, fmt.Errorf("%w: missing token", apperr.ErrUnauthorized)
	}
	userID, err := as.parse(tokenString)
	if err != nil {
		return ctx, err
	}
	users, err := as.userRepo.GetByIDs(ctx, nil, []uint{userID})
	if err != nil {
		return ctx, fmt.Errorf("load user: %w", err)
	}
	if len(users) == 0 {
		return ctx, fmt.Errorf("%w: unknown user", apperr.ErrUnauthorized)
	}
	user := users[0]
	if user.Status == domain.UserInactive {
		return ctx, fmt.Errorf("%w: inactive user", apperr.ErrUnauthorized)
	}
	return ctxutil.WithRequestData(ctx, &ctxutil.RequestData{
		TokenString: tokenString,
		UserID:      user.ID,
		IsAdmin:     user.IsAdmin,
	}), nil
}
