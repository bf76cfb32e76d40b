package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/desertthunder/evloca/internal/models"
	"github.com/desertthunder/evloca/internal/shared"
)

// ProfileUpdate is the editable subset of the signed-in profile.
type ProfileUpdate struct {
	Username    string
	Email       string
	Bio         string
	PhoneNumber string
	SocialLinks map[string]string
	Picture     string // path to a local image, optional
}

// Profile fetches the signed-in user's profile.
func (c *Client) Profile(ctx context.Context) (*models.Profile, error) {
	var p models.Profile
	if err := c.Do(ctx, http.MethodGet, "/profile", nil, &p); err != nil {
		return nil, err
	}
	if p.UserID == "" && p.Username == "" {
		return nil, fmt.Errorf("%w: empty profile", shared.ErrUnexpectedResponse)
	}
	return &p, nil
}

// UpdateProfile sends the edit as multipart and returns the refreshed profile.
func (c *Client) UpdateProfile(ctx context.Context, u ProfileUpdate) (*models.Profile, error) {
	checks := []shared.Check{}
	if u.Username != "" {
		checks = append(checks, shared.UsernameCheck(u.Username))
	}
	if u.Email != "" {
		checks = append(checks, shared.EmailCheck(u.Email))
	}
	if err := shared.ValidateInputs(checks...); err != nil {
		return nil, err
	}

	form := NewForm().
		SetIf("username", u.Username).
		SetIf("email", u.Email).
		SetIf("bio", u.Bio).
		SetIf("phone_number", u.PhoneNumber).
		AttachFile("profile_picture", u.Picture)
	if len(u.SocialLinks) > 0 {
		form.Set("social_links", models.SocialLinksJSON(u.SocialLinks))
	}

	if _, err := c.Request(ctx, http.MethodPut, "/profile", form); err != nil {
		return nil, err
	}
	return c.Profile(ctx)
}

// DeleteProfile removes the signed-in account.
func (c *Client) DeleteProfile(ctx context.Context) error {
	_, err := c.Request(ctx, http.MethodDelete, "/profile", nil)
	return err
}

// User fetches a public profile. A payload without is_following counts as not found.
func (c *Client) User(ctx context.Context, username string) (*models.UserProfile, error) {
	var u models.UserProfile
	if err := c.Do(ctx, http.MethodGet, "/user/"+url.PathEscape(username), nil, &u); err != nil {
		return nil, err
	}
	if u.IsFollowing == nil {
		return nil, fmt.Errorf("%w: user %s", shared.ErrNotFound, username)
	}
	return &u, nil
}

// ToggleFollow follows or unfollows userID and returns the new state.
func (c *Client) ToggleFollow(ctx context.Context, userID string) (bool, error) {
	var out models.FollowResponse
	if err := c.Do(ctx, http.MethodPost, "/follows/"+url.PathEscape(userID), nil, &out); err != nil {
		return false, err
	}
	if out.IsFollowing == nil {
		return false, fmt.Errorf("%w: follow response has no isFollowing", shared.ErrUnexpectedResponse)
	}
	return *out.IsFollowing, nil
}

func (c *Client) FollowSuggestions(ctx context.Context) ([]models.User, error) {
	return c.users(ctx, "/follow/suggestions")
}

func (c *Client) Followers(ctx context.Context) ([]models.User, error) {
	return c.users(ctx, "/followers")
}

func (c *Client) Following(ctx context.Context) ([]models.User, error) {
	return c.users(ctx, "/following")
}

func (c *Client) users(ctx context.Context, path string) ([]models.User, error) {
	var out []models.User
	if err := c.Do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Activities fetches the signed-in user's activity feed.
func (c *Client) Activities(ctx context.Context) ([]models.Activity, error) {
	var out []models.Activity
	if err := c.Do(ctx, http.MethodGet, "/activity", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// LogActivity records an action with the current time.
func (c *Client) LogActivity(ctx context.Context, action string) error {
	if !shared.NotEmpty(action) {
		return &shared.ValidationError{Messages: []string{"Please describe the activity."}}
	}
	body := map[string]string{
		"action":    action,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}
	_, err := c.Request(ctx, http.MethodPost, "/activity", body)
	return err
}
