package client

import (
	"context"
	"encoding/json"
	"net/http"

	helpline "github.com/mudasir256/helplineapp"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// GoogleAuthRequest is the body of POST /api/auth/google.
type GoogleAuthRequest struct {
	Email        string `json:"email"`
	Name         string `json:"name"`
	ProfileImage string `json:"profile_image,omitempty"`
}

// authPayload covers every response shape the auth endpoints have shipped:
// a wrapped user, a bare user, or a data-wrapped user, with the token under
// token / accessToken depending on vintage.
type authPayload struct {
	User         *helpline.User  `json:"user"`
	Data         json.RawMessage `json:"data"`
	Token        string          `json:"token"`
	AccessToken  string          `json:"accessToken"`
	RefreshToken string          `json:"refreshToken"`

	// bare-user shape
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

func parseAuthResponse(body []byte, fallbackEmail string) (helpline.User, string, string, error) {
	var payload authPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return helpline.User{}, "", "", err
	}

	access := payload.AccessToken
	if access == "" {
		access = payload.Token
	}

	if payload.User != nil {
		u := *payload.User
		if u.Email == "" {
			u.Email = fallbackEmail
		}
		return u, access, payload.RefreshToken, nil
	}

	if payload.Email != "" || payload.ID != "" {
		u := helpline.User{ID: payload.ID, Email: payload.Email, Name: payload.Name, Picture: payload.Picture}
		if u.Email == "" {
			u.Email = fallbackEmail
		}
		return u, access, payload.RefreshToken, nil
	}

	if payload.Data != nil {
		var inner authPayload
		if err := json.Unmarshal(payload.Data, &inner); err == nil {
			u := helpline.User{ID: inner.ID, Email: inner.Email, Name: inner.Name, Picture: inner.Picture}
			if u.Email == "" {
				u.Email = fallbackEmail
			}
			if access == "" {
				access = inner.AccessToken
				if access == "" {
					access = inner.Token
				}
			}
			refresh := payload.RefreshToken
			if refresh == "" {
				refresh = inner.RefreshToken
			}
			if u.Email != "" || u.ID != "" {
				return u, access, refresh, nil
			}
		}
	}

	return helpline.User{}, "", "", &BackendError{StatusCode: http.StatusOK, Message: "unexpected auth response shape"}
}

func (c *Client) finishAuth(body []byte, fallbackEmail string) (helpline.User, error) {
	user, access, refresh, err := parseAuthResponse(body, fallbackEmail)
	if err != nil {
		return helpline.User{}, err
	}
	if user.Email == "" {
		return helpline.User{}, &BackendError{StatusCode: http.StatusOK, Message: "auth response carried no email"}
	}
	if err := c.storage.SetUser(user); err != nil {
		return helpline.User{}, err
	}
	if access != "" {
		if err := c.storage.SetTokens(access, refresh); err != nil {
			return helpline.User{}, err
		}
	}
	return user, nil
}

// Login authenticates with email/password and persists the session.
func (c *Client) Login(ctx context.Context, email, password string) (helpline.User, error) {
	if email == "" || password == "" {
		return helpline.User{}, &ValidationError{Reason: "email and password are required"}
	}
	body, err := c.do(ctx, http.MethodPost, "/api/auth/login", loginRequest{Email: email, Password: password})
	if err != nil {
		return helpline.User{}, err
	}
	return c.finishAuth(body, email)
}

// Signup registers a new email/password account.
func (c *Client) Signup(ctx context.Context, email, password, name string) (helpline.User, error) {
	if email == "" || password == "" {
		return helpline.User{}, &ValidationError{Reason: "email and password are required"}
	}
	body, err := c.do(ctx, http.MethodPost, "/api/users", signupRequest{Email: email, Password: password, Name: name})
	if err != nil {
		return helpline.User{}, err
	}
	return c.finishAuth(body, email)
}

// GoogleLogin exchanges a verified Google profile for a local session.
func (c *Client) GoogleLogin(ctx context.Context, req GoogleAuthRequest) (helpline.User, error) {
	if req.Email == "" {
		return helpline.User{}, &ValidationError{Reason: "google profile carried no email"}
	}
	body, err := c.do(ctx, http.MethodPost, "/api/auth/google", req)
	if err != nil {
		return helpline.User{}, err
	}
	return c.finishAuth(body, req.Email)
}

// Logout drops the local session. The backend keeps no session state for
// these endpoints, so this is purely local.
func (c *Client) Logout() error {
	return c.storage.ClearSession()
}
