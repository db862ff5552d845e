package pages

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/creatorhub/internal/forms"
	apperrors "github.com/spec-kit/creatorhub/pkg/util"
)

// LoginPage signs a user in and remembers the email typed last.
type LoginPage struct {
	deps Deps

	Form   forms.LoginForm
	Errors forms.Errors
}

// NewLoginPage builds the sign-in page.
func NewLoginPage(deps Deps) *LoginPage {
	return &LoginPage{deps: deps, Errors: forms.Errors{}}
}

// Open pre-fills the remembered email.
func (p *LoginPage) Open(ctx context.Context) error {
	email, err := p.deps.Drafts.LoginEmail(ctx)
	if err != nil {
		return err
	}
	p.Form.Email = email
	return nil
}

// SetEmail updates and remembers the email field.
func (p *LoginPage) SetEmail(ctx context.Context, email string) error {
	p.Form.Email = email
	p.Errors.Clear("email")
	p.Errors.Clear(forms.FieldGeneral)
	return p.deps.Drafts.SaveLoginEmail(ctx, email)
}

// SetPassword updates the password field.
func (p *LoginPage) SetPassword(password string) {
	p.Form.Password = password
	p.Errors.Clear("password")
	p.Errors.Clear(forms.FieldGeneral)
}

// Submit validates the form and signs in. Creators land on the dashboard,
// everyone else on explore.
func (p *LoginPage) Submit(ctx context.Context) (Result, error) {
	p.Errors = p.Form.Validate()
	if !p.Errors.Valid() {
		return Result{}, ErrInvalidForm
	}
	if err := p.deps.Session.Login(ctx, p.Form.Email, p.Form.Password); err != nil {
		p.Errors = forms.LoginErrors(err)
		return Result{}, err
	}
	return landing(p.deps.Session.CurrentUser()), nil
}

// RegisterPage creates an account. The form, minus passwords, survives
// reloads as a draft.
type RegisterPage struct {
	deps   Deps
	logger *zap.Logger

	Form   forms.RegisterForm
	Errors forms.Errors
}

// NewRegisterPage builds the sign-up page.
func NewRegisterPage(deps Deps) *RegisterPage {
	return &RegisterPage{deps: deps, logger: deps.logger("register"), Errors: forms.Errors{}}
}

// Open restores the saved draft, if any.
func (p *RegisterPage) Open(ctx context.Context) error {
	draft, ok, err := p.deps.Drafts.Register(ctx)
	if err != nil || !ok {
		return err
	}
	draft.Apply(&p.Form)
	return nil
}

// Update replaces the form, saves the draft and re-checks the password
// confirmation.
func (p *RegisterPage) Update(ctx context.Context, form forms.RegisterForm) error {
	for field, changed := range map[string]bool{
		"name":     form.Name != p.Form.Name,
		"username": form.Username != p.Form.Username,
		"email":    form.Email != p.Form.Email,
		"password": form.Password != p.Form.Password,
	} {
		if changed {
			p.Errors.Clear(field)
		}
	}
	p.Form = form
	if msg := form.ConfirmError(); msg != "" {
		p.Errors["confirmPassword"] = msg
	} else {
		p.Errors.Clear("confirmPassword")
	}
	return p.deps.Drafts.SaveRegister(ctx, form)
}

// Strength rates the password being typed.
func (p *RegisterPage) Strength() forms.Strength {
	return forms.PasswordStrength(p.Form.Password)
}

// Submit validates the form and registers. The draft is dropped once the
// account exists.
func (p *RegisterPage) Submit(ctx context.Context) (Result, error) {
	p.Errors = p.Form.Validate()
	if !p.Errors.Valid() {
		return Result{}, ErrInvalidForm
	}
	f := p.Form
	if err := p.deps.Session.Register(ctx, f.Username, f.Email, f.Password, f.IsCreator, f.Name); err != nil {
		p.Errors = forms.RegisterErrors(err)
		return Result{}, err
	}
	if err := p.deps.Drafts.ClearRegister(ctx); err != nil {
		p.logger.Warn("failed to drop register draft", zap.Error(err))
	}
	return landing(p.deps.Session.CurrentUser()), nil
}

// ForgotPasswordPage requests a reset link.
type ForgotPasswordPage struct {
	deps Deps

	Form      forms.ForgotPasswordForm
	Errors    forms.Errors
	Submitted bool
	Message   string
}

// NewForgotPasswordPage builds the password reset request page.
func NewForgotPasswordPage(deps Deps) *ForgotPasswordPage {
	return &ForgotPasswordPage{deps: deps, Errors: forms.Errors{}}
}

// Submit validates the email and asks for the link. The confirmation is
// shown whether or not the email is registered.
func (p *ForgotPasswordPage) Submit(ctx context.Context) error {
	p.Errors = p.Form.Validate()
	if !p.Errors.Valid() {
		return ErrInvalidForm
	}
	msg, err := p.deps.Session.ForgotPassword(ctx, p.Form.Email)
	if err != nil {
		p.Errors = forms.Errors{forms.FieldGeneral: apperrors.UserMessage(err, "Failed to send reset email. Please try again.")}
		return err
	}
	p.Submitted = true
	p.Message = msg
	return nil
}
