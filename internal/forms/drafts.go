package forms

import (
	"context"
	"errors"
	"strings"

	"github.com/spec-kit/creatorhub/internal/persistence"
)

// RegisterDraft is the part of the sign-up form kept between visits.
// Passwords are never part of it.
type RegisterDraft struct {
	Name      string `json:"name"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	IsCreator bool   `json:"isCreator"`
}

// Draft returns the persistable fields of f.
func (f RegisterForm) Draft() RegisterDraft {
	return RegisterDraft{Name: f.Name, Username: f.Username, Email: f.Email, IsCreator: f.IsCreator}
}

// Apply fills f from a saved draft, leaving the password fields alone.
func (d RegisterDraft) Apply(f *RegisterForm) {
	f.Name = d.Name
	f.Username = d.Username
	f.Email = d.Email
	f.IsCreator = d.IsCreator
}

// Drafts keeps unfinished form input in the client store.
type Drafts struct {
	store persistence.Store
}

func NewDrafts(store persistence.Store) *Drafts {
	return &Drafts{store: store}
}

// SaveRegister stores the draft of f.
func (d *Drafts) SaveRegister(ctx context.Context, f RegisterForm) error {
	return persistence.SaveJSON(ctx, d.store, persistence.KeyRegisterForm, f.Draft())
}

// Register returns the saved draft, reporting false when there is none.
func (d *Drafts) Register(ctx context.Context) (RegisterDraft, bool, error) {
	var draft RegisterDraft
	ok, err := persistence.LoadJSON(ctx, d.store, persistence.KeyRegisterForm, &draft)
	return draft, ok, err
}

// ClearRegister drops the draft after a successful sign-up.
func (d *Drafts) ClearRegister(ctx context.Context) error {
	return d.store.Delete(ctx, persistence.KeyRegisterForm)
}

// SaveLoginEmail remembers the email typed on the login form. Blank input
// is ignored.
func (d *Drafts) SaveLoginEmail(ctx context.Context, email string) error {
	if strings.TrimSpace(email) == "" {
		return nil
	}
	return d.store.Set(ctx, persistence.KeyLoginEmail, email)
}

// LoginEmail returns the remembered email, or "" when none is stored.
func (d *Drafts) LoginEmail(ctx context.Context) (string, error) {
	email, err := d.store.Get(ctx, persistence.KeyLoginEmail)
	if errors.Is(err, persistence.ErrNotFound) {
		return "", nil
	}
	return email, err
}
