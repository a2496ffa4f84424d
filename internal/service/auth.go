package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/forgo/gigbook/internal/identity"
	"github.com/forgo/gigbook/internal/logger"
	"github.com/forgo/gigbook/internal/model"
	"github.com/forgo/gigbook/internal/reconcile"
	"github.com/forgo/gigbook/internal/saga"
)

const (
	// Password constraints
	minPasswordLength = 8
	maxPasswordLength = 128
)

// IdentityProvider is the external account and session store
type IdentityProvider interface {
	CreateAccount(ctx context.Context, email, password string, meta identity.Metadata) (string, error)
	Authenticate(ctx context.Context, email, password string) (*identity.Session, error)
	DeleteAccount(ctx context.Context, id string) error
	VerifyToken(ctx context.Context, token string) (string, error)
	ListAccountsByEmail(ctx context.Context, email string) ([]*identity.Account, error)
	RefreshSession(ctx context.Context, refreshToken string) (*identity.Session, error)
	RevokeSessions(ctx context.Context, identityID string) error
}

// ReconciliationSink receives records left behind by a failed compensation
type ReconciliationSink interface {
	Publish(ctx context.Context, ev reconcile.Event) error
}

// AuthService handles sign-up, sign-in and sessions
type AuthService struct {
	identity   IdentityProvider
	profiles   ProfileRepository
	reconciler ReconciliationSink
	logger     *zap.Logger
}

// AuthServiceConfig holds configuration for the auth service
type AuthServiceConfig struct {
	Identity   IdentityProvider
	Profiles   ProfileRepository
	Reconciler ReconciliationSink
	Logger     *zap.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(cfg AuthServiceConfig) *AuthService {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &AuthService{
		identity:   cfg.Identity,
		profiles:   cfg.Profiles,
		reconciler: cfg.Reconciler,
		logger:     cfg.Logger.Named("auth"),
	}
}

// SignUpRequest represents a registration request
type SignUpRequest struct {
	Email       string         `json:"email"`
	Password    string         `json:"password"`
	DisplayName string         `json:"display_name"`
	UserType    model.UserType `json:"user_type"`
}

// SignInRequest represents a sign-in request
type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResult is returned by sign-up and sign-in
type AuthResult struct {
	Profile *model.Profile    `json:"profile"`
	Session *identity.Session `json:"session"`
}

// SignUp creates the identity record and the local profile. A profile write
// failure deletes the new identity again before the error is returned. A
// session failure after the profile exists is reported without compensation.
func (s *AuthService) SignUp(ctx context.Context, req SignUpRequest) (*AuthResult, error) {
	email := strings.TrimSpace(strings.ToLower(req.Email))
	if !isValidEmail(email) {
		return nil, ErrInvalidEmail
	}
	if err := validatePassword(req.Password); err != nil {
		return nil, err
	}
	displayName := strings.TrimSpace(req.DisplayName)
	if displayName == "" {
		return nil, ErrDisplayNameMissing
	}
	if !req.UserType.Valid() {
		return nil, ErrInvalidUserType
	}

	existing, err := s.identity.ListAccountsByEmail(ctx, email)
	if err != nil {
		return nil, internalError("look up email", err)
	}
	if len(existing) > 0 {
		return nil, ErrEmailAlreadyExists
	}

	var identityID string
	var profile *model.Profile

	sg := saga.New("signup", s.logger)
	sg.AddStep("create_account",
		func(ctx context.Context) error {
			id, err := s.identity.CreateAccount(ctx, email, req.Password, identity.Metadata{
				UserType:    string(req.UserType),
				DisplayName: displayName,
			})
			if err != nil {
				if errors.Is(err, identity.ErrEmailTaken) {
					return ErrEmailAlreadyExists
				}
				return internalError("create account", err)
			}
			identityID = id
			return nil
		},
		func(ctx context.Context) error {
			return s.identity.DeleteAccount(ctx, identityID)
		},
	)
	sg.AddStep("create_profile",
		func(ctx context.Context) error {
			p, err := model.NewDefaultProfile(identityID, req.UserType, displayName)
			if err != nil {
				return err
			}
			if err := s.profiles.Create(ctx, p); err != nil {
				return err
			}
			profile = p
			return nil
		},
		nil,
	)
	sg.OnCompensationFailure(s.reportOrphanedIdentity(&identityID))

	if err := sg.Execute(ctx); err != nil {
		return nil, err
	}

	session, err := s.identity.Authenticate(ctx, email, req.Password)
	if err != nil {
		s.logger.Error("session after sign-up failed",
			zap.String("identity_id", identityID),
			zap.Error(err),
		)
		return nil, internalError("establish session", err)
	}

	s.logger.Info("account registered",
		zap.String("identity_id", identityID),
		logger.Email("email", email),
		zap.String("user_type", string(req.UserType)),
	)
	return &AuthResult{Profile: profile, Session: session}, nil
}

// SignIn authenticates and returns the caller's profile, creating a default
// one when the identity has none yet
func (s *AuthService) SignIn(ctx context.Context, req SignInRequest) (*AuthResult, error) {
	session, err := s.identity.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, identity.ErrInvalidCredentials) || errors.Is(err, identity.ErrMissingCredentials) {
			return nil, ErrInvalidCredentials
		}
		return nil, internalError("authenticate", err)
	}

	profile, err := s.profiles.GetByID(ctx, session.IdentityID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		profile, err = s.provisionProfile(ctx, session)
		if err != nil {
			return nil, err
		}
	}

	return &AuthResult{Profile: profile, Session: session}, nil
}

// provisionProfile builds the same default profile sign-up would have created
func (s *AuthService) provisionProfile(ctx context.Context, session *identity.Session) (*model.Profile, error) {
	userType := model.UserType(session.Metadata.UserType)
	if !userType.Valid() {
		userType = model.UserTypeClient
	}
	displayName := strings.TrimSpace(session.Metadata.DisplayName)
	if displayName == "" {
		displayName = emailLocalPart(session.Email)
	}

	profile, err := model.NewDefaultProfile(session.IdentityID, userType, displayName)
	if err != nil {
		return nil, err
	}
	if err := s.profiles.Create(ctx, profile); err != nil {
		return nil, err
	}

	s.logger.Info("profile provisioned on sign-in", zap.String("identity_id", session.IdentityID))
	return profile, nil
}

// Refresh rotates a refresh token
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*identity.Session, error) {
	return s.identity.RefreshSession(ctx, refreshToken)
}

// SignOut revokes every session of the identity
func (s *AuthService) SignOut(ctx context.Context, identityID string) error {
	return s.identity.RevokeSessions(ctx, identityID)
}

// VerifyToken resolves an access token to an identity id
func (s *AuthService) VerifyToken(ctx context.Context, token string) (string, error) {
	return s.identity.VerifyToken(ctx, token)
}

// Me returns the profile of the acting identity
func (s *AuthService) Me(ctx context.Context, identityID string) (*model.Profile, error) {
	profile, err := s.profiles.GetByID(ctx, identityID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrProfileNotFound
	}
	return profile, nil
}

func (s *AuthService) reportOrphanedIdentity(identityID *string) func(context.Context, saga.CompensationFailure) {
	return func(ctx context.Context, f saga.CompensationFailure) {
		if s.reconciler == nil {
			return
		}
		ev := reconcile.Event{
			Kind:       reconcile.KindOrphanedIdentity,
			Saga:       f.Saga,
			Step:       f.Step,
			FailedStep: f.FailedStep,
			ResourceID: *identityID,
			Cause:      errString(f.Cause),
			Error:      errString(f.Err),
			OccurredAt: f.OccurredAt,
		}
		if err := s.reconciler.Publish(ctx, ev); err != nil {
			s.logger.Error("publish reconcile event failed",
				zap.String("identity_id", *identityID),
				zap.Error(err),
			)
		}
	}
}

// Helper functions

func validatePassword(password string) error {
	if password == "" {
		return ErrPasswordRequired
	}
	if len(password) < minPasswordLength {
		return ErrPasswordTooShort
	}
	if len(password) > maxPasswordLength {
		return ErrPasswordTooLong
	}
	return nil
}

func isValidEmail(email string) bool {
	if email == "" {
		return false
	}
	if len(email) > 254 {
		return false
	}
	atIndex := strings.Index(email, "@")
	if atIndex < 1 {
		return false
	}
	dotIndex := strings.LastIndex(email, ".")
	if dotIndex < atIndex+2 {
		return false
	}
	if dotIndex >= len(email)-1 {
		return false
	}
	return true
}

func emailLocalPart(email string) string {
	if at := strings.Index(email, "@"); at > 0 {
		return email[:at]
	}
	return "member"
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
