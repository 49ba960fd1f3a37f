package auth

import (
	"context"
	"errors"
	"os"
	"strings"
	"time"

	"github.com/Q-Sourcing/payrun-pro-staging-sub003/internal/access"
	autherrors "github.com/Q-Sourcing/payrun-pro-staging-sub003/internal/auth/errors"
	"github.com/Q-Sourcing/payrun-pro-staging-sub003/internal/grant"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	accessTokenTTL  = 15 * time.Minute
	refreshTokenTTL = 7 * 24 * time.Hour
)

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	Login(ctx context.Context, email, password string) (TokenPairResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (TokenPairResponse, error)
	GetMe(ctx context.Context, userID string) (AuthResponse, error)
	Register(ctx context.Context, req RegisterRequest) (AuthResponse, error)
}

type service struct {
	repo     Repository
	roleRepo grant.Repository
	logger   *zap.Logger
}

func NewService(repo Repository, roleRepo grant.Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	return &service{repo: repo, roleRepo: roleRepo, logger: l}
}

func (s *service) Login(ctx context.Context, email, password string) (TokenPairResponse, error) {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return TokenPairResponse{}, autherrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return TokenPairResponse{}, autherrors.ErrInvalidCredentials
	}

	if !user.Active {
		return TokenPairResponse{}, autherrors.ErrUserInactive
	}

	return s.issueTokens(ctx, user)
}

func (s *service) RefreshToken(ctx context.Context, refreshToken string) (TokenPairResponse, error) {
	token, err := jwt.Parse(refreshToken, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, autherrors.ErrInvalidToken
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		return TokenPairResponse{}, autherrors.ErrInvalidRefreshToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return TokenPairResponse{}, autherrors.ErrInvalidToken
	}

	userIDStr, ok := claims["user_id"].(string)
	if !ok {
		return TokenPairResponse{}, autherrors.ErrInvalidToken
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return TokenPairResponse{}, autherrors.ErrInvalidUserID
	}

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return TokenPairResponse{}, autherrors.ErrUserNotFound
	}

	if !user.Active {
		return TokenPairResponse{}, autherrors.ErrUserInactive
	}

	return s.issueTokens(ctx, user)
}

func (s *service) GetMe(ctx context.Context, userID string) (AuthResponse, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return AuthResponse{}, autherrors.ErrInvalidUserID
	}

	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return AuthResponse{}, autherrors.ErrUserNotFound
	}

	role, roleIDs, err := s.resolveRoles(ctx, user)
	if err != nil {
		return AuthResponse{}, err
	}

	return mapToAuthResponse(user, role, roleIDs), nil
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (AuthResponse, error) {
	orgID, err := uuid.Parse(req.OrganizationID)
	if err != nil {
		return AuthResponse{}, autherrors.ErrInvalidOrganizationID
	}

	var companyID *uuid.UUID
	if req.CompanyID != "" {
		id, err := uuid.Parse(req.CompanyID)
		if err != nil {
			return AuthResponse{}, autherrors.ErrInvalidCompanyID
		}
		companyID = &id
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return AuthResponse{}, err
	}

	user := &User{
		ID:             uuid.New(),
		OrganizationID: orgID,
		CompanyID:      companyID,
		Name:           req.Name,
		Email:          strings.ToLower(strings.TrimSpace(req.Email)),
		Password:       string(hashed),
		Active:         true,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return AuthResponse{}, mapCreateError(err)
	}

	s.logger.Info("user registered",
		zap.String("user_id", user.ID.String()),
		zap.String("organization_id", user.OrganizationID.String()),
	)

	// New users carry no role assignment yet; enforcement treats them as
	// plain employees until an admin assigns a role or an explicit grant.
	return mapToAuthResponse(user, access.RoleEmployee, nil), nil
}

func (s *service) issueTokens(ctx context.Context, user *User) (TokenPairResponse, error) {
	role, roleIDs, err := s.resolveRoles(ctx, user)
	if err != nil {
		return TokenPairResponse{}, err
	}

	accessToken, err := s.generateToken(user, role, roleIDs, accessTokenTTL)
	if err != nil {
		return TokenPairResponse{}, autherrors.ErrTokenGenerationFailed
	}
	refreshToken, err := s.generateToken(user, role, roleIDs, refreshTokenTTL)
	if err != nil {
		return TokenPairResponse{}, autherrors.ErrTokenGenerationFailed
	}

	return TokenPairResponse{
		User:         mapToAuthResponse(user, role, roleIDs),
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func (s *service) resolveRoles(ctx context.Context, user *User) (string, []string, error) {
	rows, err := s.roleRepo.GetUserRoles(ctx, user.OrganizationID.String(), user.ID.String())
	if err != nil {
		return "", nil, err
	}

	keys := make([]string, len(rows))
	ids := make([]string, len(rows))
	for i, row := range rows {
		keys[i] = row.Key
		ids[i] = row.ID
	}

	role := access.PrimaryRole(keys)
	if role == "" {
		role = access.RoleEmployee
	}
	return role, ids, nil
}

func (s *service) generateToken(user *User, role string, roleIDs []string, ttl time.Duration) (string, error) {
	companyID := ""
	if user.CompanyID != nil {
		companyID = user.CompanyID.String()
	}

	claims := jwt.MapClaims{
		"user_id":         user.ID.String(),
		"organization_id": user.OrganizationID.String(),
		"company_id":      companyID,
		"role":            role,
		"role_ids":        roleIDs,
		"exp":             time.Now().Add(ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}

func mapToAuthResponse(user *User, role string, roleIDs []string) AuthResponse {
	resp := AuthResponse{
		ID:             user.ID.String(),
		OrganizationID: user.OrganizationID.String(),
		Email:          user.Email,
		Name:           user.Name,
		Role:           role,
		RoleIDs:        roleIDs,
	}
	if user.CompanyID != nil {
		resp.CompanyID = user.CompanyID.String()
	}
	return resp
}

func mapCreateError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return autherrors.ErrEmailAlreadyRegistered
	}
	if strings.Contains(strings.ToLower(err.Error()), "duplicate key value") {
		return autherrors.ErrEmailAlreadyRegistered
	}
	return err
}
