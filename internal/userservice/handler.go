package userservice

import (
	"context"
	"database/sql"
	"errors"

	"github.com/sushihentaime/inkwell/internal/common"
)

var (
	ErrAuthenticationFailure = errors.New("unauthorized access")
)

func NewUserService(db *sql.DB, mb common.MessageProducer) *UserService {
	return &UserService{
		m:  NewUserModel(db),
		t:  NewTokenModel(db),
		mb: mb,
	}
}

// CreateUser creates a new user account and publishes a user.created event carrying the activation token.
func (s *UserService) CreateUser(ctx context.Context, username, name, email, password string) (*User, error) {
	v := common.NewValidator()
	validateUsername(v, username)
	validateName(v, name)
	validateEmail(v, email)
	validatePassword(v, password)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	u := User{
		Username: username,
		Name:     name,
		Email:    email,
	}

	err := u.Password.set(password)
	if err != nil {
		return nil, err
	}

	err = s.m.insert(ctx, &u)
	if err != nil {
		return nil, err
	}

	token, err := s.t.createToken(ctx, u.ID, ActivationTokenTime, TokenScopeActivate)
	if err != nil {
		return nil, err
	}

	event := UserCreatedEvent{Email: u.Email, Username: u.Username, Token: token.Plain}
	err = common.PublishJSON(ctx, s.mb, event, common.UserCreatedKey, common.UserExchange)
	if err != nil {
		return nil, err
	}

	return &u, nil
}

// ActivateUser consumes the activation token and grants the post:write permission.
func (s *UserService) ActivateUser(ctx context.Context, token string) error {
	v := common.NewValidator()
	ValidateToken(v, token)
	if !v.Valid() {
		return v.ValidationError()
	}

	user, err := s.t.getUser(ctx, TokenScopeActivate, hashToken(token))
	if err != nil {
		return err
	}

	return common.WithTx(ctx, s.m.db, func(tx *sql.Tx) error {
		if err := s.m.activate(tx, ctx, user.ID, user.Version); err != nil {
			return err
		}

		if err := s.t.delete(tx, ctx, user.ID, TokenScopeActivate); err != nil {
			return err
		}

		return s.m.addPermissions(tx, ctx, user.ID, PermissionWritePost)
	})
}

// LoginUser checks the credentials and replaces any previous session with a fresh token pair.
func (s *UserService) LoginUser(ctx context.Context, username, password string) (*AuthToken, error) {
	v := common.NewValidator()
	v.Check(username != "", "username", "must be provided")
	v.Check(password != "", "password", "must be provided")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	user, err := s.m.getByUsername(ctx, username)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			return nil, ErrAuthenticationFailure
		default:
			return nil, err
		}
	}

	ok, err := user.Password.compare(password)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrAuthenticationFailure
	}

	var authToken *AuthToken
	err = common.WithTx(ctx, s.m.db, func(tx *sql.Tx) error {
		if err := s.t.deleteAuthTokens(tx, ctx, user.ID); err != nil {
			return err
		}

		authToken, err = s.t.createAuthToken(tx, ctx, user.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	return authToken, nil
}

func (s *UserService) GetUserByAccessToken(ctx context.Context, token string) (*User, error) {
	v := common.NewValidator()
	ValidateToken(v, token)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	return s.m.getByAccessToken(ctx, hashToken(token))
}

func (s *UserService) LogoutUser(ctx context.Context, userID int) error {
	v := common.NewValidator()
	common.CheckID(v, userID, "user_id")
	if !v.Valid() {
		return v.ValidationError()
	}

	return common.WithTx(ctx, s.m.db, func(tx *sql.Tx) error {
		return s.t.deleteAuthTokens(tx, ctx, userID)
	})
}

// GetUserByID returns the account of the current session user.
func (s *UserService) GetUserByID(ctx context.Context, id int) (*User, error) {
	v := common.NewValidator()
	common.CheckID(v, id, "id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	return s.m.getByID(ctx, id)
}

// GetProfile returns the public profile of username. viewerID is zero for anonymous viewers.
func (s *UserService) GetProfile(ctx context.Context, username string, viewerID int) (*Profile, error) {
	v := common.NewValidator()
	v.Check(username != "", "username", "must be provided")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	return s.m.getProfile(ctx, username, viewerID)
}

// UpdateAvatar persists an already uploaded avatar URL on the user record.
func (s *UserService) UpdateAvatar(ctx context.Context, userID int, imageURL string) error {
	v := common.NewValidator()
	common.CheckID(v, userID, "user_id")
	validateImageURL(v, imageURL)
	if !v.Valid() {
		return v.ValidationError()
	}

	return s.m.updateImage(ctx, userID, imageURL)
}
