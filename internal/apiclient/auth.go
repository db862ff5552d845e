package apiclient

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/creatorhub/internal/api/dto"
)

// Login exchanges credentials for a token and the account.
func (c *Client) Login(ctx context.Context, email, password string) (*dto.AuthResponse, error) {
	var out dto.AuthResponse
	err := c.do(ctx, call{
		method:   fiber.MethodPost,
		endpoint: "/auth/login",
		path:     "/auth/login",
		body:     dto.LoginRequest{Email: email, Password: password},
		out:      &out,
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Register creates an account and returns its token.
func (c *Client) Register(ctx context.Context, req dto.RegisterRequest) (*dto.AuthResponse, error) {
	var out dto.AuthResponse
	err := c.do(ctx, call{
		method:   fiber.MethodPost,
		endpoint: "/auth/register",
		path:     "/auth/register",
		body:     req,
		out:      &out,
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ForgotPassword asks the backend to mail a reset link.
func (c *Client) ForgotPassword(ctx context.Context, email string) (*dto.StatusResponse, error) {
	var out dto.StatusResponse
	err := c.do(ctx, call{
		method:   fiber.MethodPost,
		endpoint: "/auth/forgotPassword",
		path:     "/auth/forgotPassword",
		body:     dto.ForgotPasswordRequest{Email: email},
		out:      &out,
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ResetPassword sets a new password using a mailed reset token.
func (c *Client) ResetPassword(ctx context.Context, token, password string) (*dto.StatusResponse, error) {
	var out dto.StatusResponse
	err := c.do(ctx, call{
		method:   fiber.MethodPost,
		endpoint: "/auth/resetPassword/:token",
		path:     "/auth/resetPassword" + pathID(token),
		body:     dto.ResetPasswordRequest{Password: password},
		out:      &out,
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}
