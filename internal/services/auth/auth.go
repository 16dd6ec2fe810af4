package auth

import (
	"context"
	"crypto/rand"
	"errors"
	"log/slog"
	"math/big"
	"time"

	"reviewhub/proj/internal/domain/models"
	"reviewhub/proj/internal/storage"

	"github.com/golang-jwt/jwt/v5"
)

const (
	codeAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	codeLength   = 6

	usernameConstraint = "users_username_key"
	emailConstraint    = "users_email_key"
)

type UsersStorage interface {
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetActiveByID(ctx context.Context, id int64) (*models.User, error)
	Insert(ctx context.Context, u *models.User) (*models.User, error)
	SetConfirmationCode(ctx context.Context, id int64, code string) error
	Activate(ctx context.Context, id int64) error
}

type MailProvider interface {
	Send(recipient string, tmplName string, tmplData any) error
}

type TaskExecutor interface {
	Add(task func())
}

type AuthService struct {
	log          *slog.Logger
	storage      UsersStorage
	mailer       MailProvider
	taskExecutor TaskExecutor
	appSecret    string
	tokenTTL     time.Duration
}

func New(
	log *slog.Logger,
	storage UsersStorage,
	mailer MailProvider,
	taskExecutor TaskExecutor,
	appSecret string,
	tokenTTL time.Duration,
) *AuthService {
	return &AuthService{
		log:          log,
		storage:      storage,
		mailer:       mailer,
		taskExecutor: taskExecutor,
		appSecret:    appSecret,
		tokenTTL:     tokenTTL,
	}
}

func generateCode() (string, error) {
	code := make([]byte, codeLength)
	for i := range code {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(codeAlphabet))))
		if err != nil {
			return "", err
		}
		code[i] = codeAlphabet[n.Int64()]
	}
	return string(code), nil
}

// sendConfirmationCode is queued on the background pool; delivery failure
// is logged and never surfaces to the signup response.
func (a *AuthService) sendConfirmationCode(email, username, code string) {
	a.log.Info("sending confirmation code", "email", email)
	err := a.mailer.Send(
		email,
		"confirmation_code.html",
		map[string]any{
			"username":         username,
			"confirmationCode": code,
		})
	if err != nil {
		a.log.Error("Error sending confirmation code", "errMsg", err.Error())
	}
}

// Signup creates an inactive user (or reuses the exact username+email
// pair) and dispatches a fresh confirmation code. Regenerating on every
// attempt invalidates any previously issued code for the user.
func (a *AuthService) Signup(ctx context.Context, username, email string) (*models.User, error) {
	const op = "auth.AuthService.Signup"
	log := a.log.With("op", op, "username", username)

	if username == models.ReservedUsername {
		return nil, ErrReservedUsername
	}

	user, err := a.storage.GetByUsername(ctx, username)
	switch {
	case err == nil:
		if user.Email != email {
			log.Info("username taken by a different email pairing")
			return nil, ErrUsernameTaken
		}
		code, err := generateCode()
		if err != nil {
			return nil, err
		}
		if err := a.storage.SetConfirmationCode(ctx, user.ID, code); err != nil {
			log.Error(err.Error())
			return nil, err
		}
		user.ConfirmationCode = code
		a.taskExecutor.Add(func() { a.sendConfirmationCode(user.Email, user.Username, code) })
		return user, nil
	case !errors.Is(err, storage.ErrNotFound):
		log.Error(err.Error())
		return nil, err
	}

	if _, err := a.storage.GetByEmail(ctx, email); err == nil {
		log.Info("email taken by a different username pairing")
		return nil, ErrEmailTaken
	} else if !errors.Is(err, storage.ErrNotFound) {
		log.Error(err.Error())
		return nil, err
	}

	code, err := generateCode()
	if err != nil {
		return nil, err
	}
	user, err = a.storage.Insert(ctx, &models.User{
		Username:         username,
		Email:            email,
		Role:             models.RoleUser,
		ConfirmationCode: code,
	})
	if err != nil {
		// Concurrent signups can race past the pre-checks; the unique
		// constraints have the final say.
		var conflict *storage.ConflictError
		if errors.As(err, &conflict) {
			switch conflict.Constraint {
			case usernameConstraint:
				return nil, ErrUsernameTaken
			case emailConstraint:
				return nil, ErrEmailTaken
			}
		}
		log.Error(err.Error())
		return nil, err
	}
	a.taskExecutor.Add(func() { a.sendConfirmationCode(user.Email, user.Username, code) })
	return user, nil
}

// IssueToken exchanges a valid (username, code) pair for a bearer token.
// The code is single-use: activation clears it.
func (a *AuthService) IssueToken(ctx context.Context, username, code string) (string, error) {
	const op = "auth.AuthService.IssueToken"
	log := a.log.With("op", op, "username", username)

	user, err := a.storage.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("user not found")
			return "", ErrUserNotFound
		}
		log.Error(err.Error())
		return "", err
	}
	if user.ConfirmationCode == "" || user.ConfirmationCode != code {
		log.Info("confirmation code mismatch")
		return "", ErrInvalidConfirmationCode
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"uid":      user.ID,
		"username": user.Username,
		"iat":      now.Unix(),
		"exp":      now.Add(a.tokenTTL).Unix(),
	})
	signed, err := token.SignedString([]byte(a.appSecret))
	if err != nil {
		log.Error(err.Error())
		return "", err
	}
	if err := a.storage.Activate(ctx, user.ID); err != nil {
		log.Error(err.Error())
		return "", err
	}
	return signed, nil
}

// VerifyToken resolves a bearer token to its active user.
func (a *AuthService) VerifyToken(ctx context.Context, token string) (*models.User, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(a.appSecret), nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	uid, ok := claims["uid"].(float64)
	if !ok {
		return nil, ErrInvalidToken
	}
	user, err := a.storage.GetActiveByID(ctx, int64(uid))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	return user, nil
}
