package repository

import (
	"context"
	"net/http"

	appErrors "github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/aaravmahajanofficial/storefront/internal/utils"
)

type UserRepository interface {
	Me(ctx context.Context) (*models.User, error)
	LoginWithGoogle(ctx context.Context, credential string) error
	Logout(ctx context.Context) error
	UpdateProfile(ctx context.Context, req *models.UpdateProfileRequest) (string, error)
	SessionToken() string
}

type userRepository struct {
	client     *Client
	cookieName string
}

func NewUserRepo(client *Client, cookieName string) UserRepository {
	return &userRepository{client: client, cookieName: cookieName}
}

// Me returns nil without an error when the backend says nobody is logged in.
func (r *userRepository) Me(ctx context.Context) (*models.User, error) {
	upstreamCtx, cancel := utils.WithUpstreamTimeout(ctx)
	defer cancel()

	var resp models.MeResponse

	err := r.client.getJSON(upstreamCtx, "auth.me", "/auth/me", nil, &resp)
	if err != nil {
		if appErrors.HasCode(err, appErrors.ErrCodeUnauthorized) {
			return nil, nil
		}
		return nil, err
	}

	if resp.User == nil || resp.User.PublicID == "" {
		return nil, nil
	}

	return resp.User, nil
}

func (r *userRepository) LoginWithGoogle(ctx context.Context, credential string) error {
	upstreamCtx, cancel := utils.WithUpstreamTimeout(ctx)
	defer cancel()

	var resp models.Envelope

	if err := r.client.sendJSON(upstreamCtx, "auth.google", http.MethodPost, "/auth/google", models.GoogleLoginPayload{Token: credential}, &resp); err != nil {
		return err
	}

	return rejection(resp.Error, resp.Message)
}

func (r *userRepository) Logout(ctx context.Context) error {
	upstreamCtx, cancel := utils.WithUpstreamTimeout(ctx)
	defer cancel()

	return r.client.sendJSON(upstreamCtx, "auth.logout", http.MethodPost, "/auth/logout", nil, nil)
}

func (r *userRepository) UpdateProfile(ctx context.Context, req *models.UpdateProfileRequest) (string, error) {
	upstreamCtx, cancel := utils.WithUpstreamTimeout(ctx)
	defer cancel()

	fields := map[string]string{"name": req.Name}
	if req.Phone != "" {
		fields["phone"] = req.Phone
	}

	var files []filePart
	if len(req.Avatar) > 0 {
		files = append(files, filePart{field: "avatar", filename: orDefault(req.AvatarFilename, "avatar"), content: req.Avatar})
	}

	var resp models.Envelope

	if err := r.client.sendMultipart(upstreamCtx, "auth.profile", http.MethodPut, "/auth/me", fields, files, &resp); err != nil {
		return "", err
	}

	if err := rejection(resp.Error, resp.Message); err != nil {
		return "", err
	}

	return resp.Message, nil
}

// SessionToken is the raw session cookie, empty when there is none.
func (r *userRepository) SessionToken() string {
	return r.client.Cookie(r.cookieName)
}
