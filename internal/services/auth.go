package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	userrepo "github.com/prashantttzz/experimentlabs/internal/data/repos/user"
	types "github.com/prashantttzz/experimentlabs/internal/domain"
	"github.com/prashantttzz/experimentlabs/internal/pkg/ctxutil"
	"github.com/prashantttzz/experimentlabs/internal/pkg/dbctx"
	pkgerrors "github.com/prashantttzz/experimentlabs/internal/pkg/errors"
	"github.com/prashantttzz/experimentlabs/internal/platform/envutil"
	"github.com/prashantttzz/experimentlabs/internal/platform/logger"
)

type AuthService interface {
	Register(ctx context.Context, email, password, name string) (*types.User, string, error)
	Login(ctx context.Context, email, password string) (*types.User, string, error)
	GetMe(ctx context.Context) (*types.User, error)
	// SetContextFromToken validates the bearer token and attaches request
	// data to the returned context. Invalid tokens map to ErrUnauthorized.
	SetContextFromToken(ctx context.Context, token string) (context.Context, error)
	AccessTTL() time.Duration
}

type authService struct {
	log    *logger.Logger
	users  userrepo.Repo
	secret []byte
	ttl    time.Duration
}

func NewAuthService(log *logger.Logger, users userrepo.Repo) (AuthService, error) {
	secret := strings.TrimSpace(envutil.String("JWT_SECRET", ""))
	if secret == "" {
		return nil, fmt.Errorf("missing JWT_SECRET")
	}
	ttlHours := envutil.Int("JWT_TTL_HOURS", 168)
	return &authService{
		log:    log.With("service", "AuthService"),
		users:  users,
		secret: []byte(secret),
		ttl:    time.Duration(ttlHours) * time.Hour,
	}, nil
}

type accessClaims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

func (s *authService) AccessTTL() time.Duration { return s.ttl }

func (s *authService) Register(ctx context.Context, email, password, name string) (*types.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, "", fmt.Errorf("%w: valid email is required", pkgerrors.ErrValidation)
	}
	if len(password) < 8 {
		return nil, "", fmt.Errorf("%w: password must be at least 8 characters", pkgerrors.ErrValidation)
	}

	dbc := dbctx.New(ctx)
	existing, err := s.users.GetByEmails(dbc, []string{email})
	if err != nil {
		return nil, "", fmt.Errorf("check existing user: %w", err)
	}
	if len(existing) > 0 {
		return nil, "", fmt.Errorf("%w: email is already registered", pkgerrors.ErrValidation)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	u := &types.User{
		ID:       uuid.New(),
		Email:    email,
		Password: string(hash),
		Name:     strings.TrimSpace(name),
	}
	if _, err := s.users.Create(dbc, []*types.User{u}); err != nil {
		return nil, "", fmt.Errorf("create user: %w", err)
	}

	token, err := s.issueToken(u.ID)
	if err != nil {
		return nil, "", err
	}
	s.log.Info("user registered", "user_id", u.ID.String())
	return u, token, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*types.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, "", fmt.Errorf("%w: email and password are required", pkgerrors.ErrValidation)
	}

	found, err := s.users.GetByEmails(dbctx.New(ctx), []string{email})
	if err != nil {
		return nil, "", fmt.Errorf("lookup user: %w", err)
	}
	if len(found) == 0 {
		return nil, "", fmt.Errorf("%w: invalid credentials", pkgerrors.ErrUnauthorized)
	}
	u := found[0]
	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) != nil {
		return nil, "", fmt.Errorf("%w: invalid credentials", pkgerrors.ErrUnauthorized)
	}

	token, err := s.issueToken(u.ID)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

func (s *authService) GetMe(ctx context.Context) (*types.User, error) {
	rd := ctxutil.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, pkgerrors.ErrUnauthorized
	}
	found, err := s.users.GetByIDs(dbctx.New(ctx), []uuid.UUID{rd.UserID})
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if len(found) == 0 {
		return nil, pkgerrors.ErrUnauthorized
	}
	return found[0], nil
}

func (s *authService) SetContextFromToken(ctx context.Context, token string) (context.Context, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return ctx, pkgerrors.ErrUnauthorized
	}

	claims := &accessClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return ctx, pkgerrors.ErrUnauthorized
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil || userID == uuid.Nil {
		return ctx, pkgerrors.ErrUnauthorized
	}

	return ctxutil.WithRequestData(ctx, &ctxutil.RequestData{
		TokenString: token,
		UserID:      userID,
	}), nil
}

func (s *authService) issueToken(userID uuid.UUID) (string, error) {
	now := time.Now()
	claims := accessClaims{
		UserID: userID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return token, nil
}
