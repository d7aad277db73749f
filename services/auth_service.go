package services

import (
	"context"
	stderrors "errors"

	"hotel/dto"
	"hotel/errors"
	"hotel/models"
	"hotel/repository"
	"hotel/services/logger"
	"hotel/validator"
)

// AuthService registers and authenticates users.
type AuthService struct {
	users  repository.UserRepository
	hasher PasswordHasher
	tokens TokenIssuer
	log    logger.Logger
}

func NewAuthService(users repository.UserRepository, hasher PasswordHasher, tokens TokenIssuer, log logger.Logger) *AuthService {
	if log == nil {
		log = logger.NewNop()
	}
	return &AuthService{users: users, hasher: hasher, tokens: tokens, log: log}
}

// Register creates a user and returns a session for it. An empty role means
// CUSTOMER; creating an ADMIN needs an ADMIN caller.
func (s *AuthService) Register(ctx context.Context, input dto.RegisterInput) (*models.AuthPayload, error) {
	role := models.RoleCustomer
	if input.Role != "" {
		parsed, ok := models.ParseUserRole(input.Role)
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidRole, "unknown role "+input.Role)
		}
		role = parsed
	}
	if role == models.RoleAdmin {
		if _, err := RequireRole(ctx, models.RoleAdmin); err != nil {
			return nil, err
		}
	}
	if err := validator.Struct(input); err != nil {
		return nil, err
	}

	_, err := s.users.FindOne(ctx, repository.UserFilter{Email: input.Email})
	switch {
	case err == nil:
		return nil, errors.New(errors.ErrCodeEmailInUse, "email already registered")
	case !stderrors.Is(err, repository.ErrNotFound):
		return nil, errors.Wrap(errors.ErrCodeDatabase, "look up user", err)
	}

	user, err := s.createUser(ctx, input.Email, input.Password, input.FullName, role)
	if err != nil {
		return nil, err
	}
	s.log.Info("user registered", map[string]interface{}{"user_id": user.ID, "role": user.Role})
	return s.session(user)
}

// Login answers INVALID_CREDENTIALS for both an unknown email and a wrong
// password.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.AuthPayload, error) {
	input := dto.LoginInput{Email: email, Password: password}
	if err := validator.Struct(input); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidCredentials, "invalid credentials", err)
	}
	user, err := s.users.FindOne(ctx, repository.UserFilter{Email: input.Email})
	if stderrors.Is(err, repository.ErrNotFound) {
		return nil, errors.New(errors.ErrCodeInvalidCredentials, "invalid credentials")
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDatabase, "look up user", err)
	}
	if !s.hasher.Compare(user.Password, input.Password) {
		return nil, errors.New(errors.ErrCodeInvalidCredentials, "invalid credentials")
	}
	return s.session(user)
}

// SeedAdmin makes sure an admin with the given email exists. An existing user
// with that email is returned untouched and created is false.
func (s *AuthService) SeedAdmin(ctx context.Context, email, password, fullName string) (user *models.User, created bool, err error) {
	if err := validator.ValidateEmail(email); err != nil {
		return nil, false, err
	}
	if err := validator.ValidatePassword(password); err != nil {
		return nil, false, err
	}
	existing, err := s.users.FindOne(ctx, repository.UserFilter{Email: email})
	if err == nil {
		return existing, false, nil
	}
	if !stderrors.Is(err, repository.ErrNotFound) {
		return nil, false, errors.Wrap(errors.ErrCodeDatabase, "look up user", err)
	}
	var name *string
	if fullName != "" {
		name = &fullName
	}
	user, err = s.createUser(ctx, email, password, name, models.RoleAdmin)
	if err != nil {
		return nil, false, err
	}
	s.log.Info("admin seeded", map[string]interface{}{"user_id": user.ID})
	return user, true, nil
}

func (s *AuthService) ListUsers(ctx context.Context) ([]models.User, error) {
	if _, err := RequireRole(ctx, models.RoleAdmin); err != nil {
		return nil, err
	}
	users, err := s.users.FindMany(ctx, repository.UserFilter{})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDatabase, "list users", err)
	}
	return users, nil
}

// GetUser is open to the user itself and to admins.
func (s *AuthService) GetUser(ctx context.Context, id uint64) (*models.User, error) {
	if _, err := RequireOwnerOrAdmin(ctx, id); err != nil {
		return nil, err
	}
	user, err := s.users.FindOne(ctx, repository.UserFilter{ID: id})
	if stderrors.Is(err, repository.ErrNotFound) {
		return nil, errors.Wrap(errors.ErrCodeUserNotFound, "user not found", err)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDatabase, "look up user", err)
	}
	return user, nil
}

func (s *AuthService) createUser(ctx context.Context, email, password string, fullName *string, role models.UserRole) (*models.User, error) {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, "hash password", err)
	}
	user := &models.User{
		Email:    email,
		Password: hash,
		FullName: fullName,
		Role:     role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if stderrors.Is(err, repository.ErrDuplicate) {
			return nil, errors.Wrap(errors.ErrCodeEmailInUse, "email already registered", err)
		}
		return nil, errors.Wrap(errors.ErrCodeDatabase, "create user", err)
	}
	return user, nil
}

func (s *AuthService) session(user *models.User) (*models.AuthPayload, error) {
	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, "issue token", err)
	}
	return &models.AuthPayload{Token: token, User: user}, nil
}
