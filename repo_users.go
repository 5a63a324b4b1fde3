package auth

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Users is the persistence surface this package owns. It doubles as
// the UserDirectory consumed by the Authenticator and AccessResolver.
type Users interface {
	repository.Repository[*User]
	UserDirectory

	Register(ctx context.Context, payload RegisterPayload) (*User, error)
	RegisterTx(ctx context.Context, tx bun.IDB, payload RegisterPayload) (*User, error)
}

// RegisterPayload carries the fields needed to create an account.
type RegisterPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	IsAdmin  bool   `json:"is_admin"`
}

// Validate enforces the registration rules before any hashing happens.
func (p RegisterPayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Email, validation.Required, validation.Length(6, 100), is.Email),
		validation.Field(&p.Password, validation.Required, validation.Length(8, 100)),
	)
}

type users struct {
	repository.Repository[*User]
	db *bun.DB
}

var (
	_ Users         = (*users)(nil)
	_ UserDirectory = (*users)(nil)
)

// NewUsersRepository wires a Users store on top of a migrated *bun.DB.
func NewUsersRepository(db *bun.DB) Users {
	repo := repository.NewRepository[*User](db, repository.ModelHandlers[*User]{
		NewRecord: func() *User { return &User{} },
		GetID: func(u *User) uuid.UUID {
			if u == nil {
				return uuid.Nil
			}
			return u.ID
		},
		SetID: func(u *User, id uuid.UUID) {
			if u != nil {
				u.ID = id
			}
		},
	})

	return &users{
		Repository: repo,
		db:         db,
	}
}

// FindByEmail looks up a user by their unique email, case-sensitive as
// stored. Not-found satisfies errors.IsNotFound.
func (a *users) FindByEmail(ctx context.Context, email string) (*User, error) {
	record := &User{}

	err := a.db.NewSelect().
		Model(record).
		Where("?TableAlias.email = ?", email).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, repository.NewRecordNotFound().
				WithMetadata(map[string]any{
					"email": email,
				})
		}
		return nil, err
	}

	return record, nil
}

func (a *users) Register(ctx context.Context, payload RegisterPayload) (*User, error) {
	return a.RegisterTx(ctx, a.db, payload)
}

func (a *users) RegisterTx(ctx context.Context, tx bun.IDB, payload RegisterPayload) (*User, error) {
	if err := payload.Validate(); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryAuth, "invalid registration payload").
			WithTextCode("INVALID_REGISTRATION")
	}

	hash, err := HashPassword(payload.Password)
	if err != nil {
		return nil, err
	}

	user := &User{
		Email:        payload.Email,
		PasswordHash: hash,
		IsAdmin:      payload.IsAdmin,
	}
	prepareUserDefaults(user)

	return a.Repository.CreateTx(ctx, tx, user)
}
