package service

import (
	"context"
	"io"

	"github.com/go-playground/validator/v10"

	"github.com/kipidap/myngo-gateway/internal/model"
	"github.com/kipidap/myngo-gateway/internal/notify"
	"github.com/kipidap/myngo-gateway/internal/upstream"
)

// Profile manages the signed-in user's own profile: fetching it,
// partial updates, notification preferences and the avatar upload.
type Profile struct {
	state
	api      *upstream.Client
	notify   notify.Notifier
	validate *validator.Validate

	profile *model.Profile
}

func NewProfile(api *upstream.Client, n notify.Notifier) *Profile {
	return &Profile{api: api, notify: n, validate: newFormValidator()}
}

// Current returns the cached profile, nil before the first fetch.
func (p *Profile) Current() *model.Profile {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.profile
}

// Fetch loads the profile from the upstream.
func (p *Profile) Fetch(ctx context.Context, s *model.Session) (*model.Profile, error) {
	p.beginLoad()
	defer p.endLoad()

	var resp struct {
		Data struct {
			User model.Profile `json:"user"`
		} `json:"data"`
	}
	if err := p.api.Get(ctx, s.ID, "/profile", &resp); err != nil {
		msg := upstream.ErrorMessage(err, "Failed to fetch profile")
		p.setErr(msg)
		p.notify.Error(ctx, s, "profile", msg)
		return nil, err
	}

	p.mu.Lock()
	p.profile = &resp.Data.User
	p.mu.Unlock()
	return &resp.Data.User, nil
}

// Update sends a partial profile update. Only set pointer fields
// travel; the upstream merges them and returns the full profile,
// which replaces the cache.
func (p *Profile) Update(ctx context.Context, s *model.Session, upd model.ProfileUpdate) (*model.Profile, error) {
	if err := p.validate.Struct(upd); err != nil {
		verr := &ValidationError{Field: "profile", Message: "Invalid profile values"}
		p.setErr(verr.Message)
		p.notify.Error(ctx, s, "profile", verr.Message)
		return nil, verr
	}

	p.beginSubmit()
	defer p.endSubmit()

	var resp struct {
		Data struct {
			User model.Profile `json:"user"`
		} `json:"data"`
	}
	if err := p.api.Put(ctx, s.ID, "/profile", upd, &resp); err != nil {
		msg := upstream.ErrorMessage(err, "Failed to update profile")
		p.setErr(msg)
		p.notify.Error(ctx, s, "profile", msg)
		return nil, err
	}

	p.mu.Lock()
	p.profile = &resp.Data.User
	p.mu.Unlock()

	p.notify.Success(ctx, s, "profile", "Profile updated successfully")
	return &resp.Data.User, nil
}

// UpdateNotificationPrefs toggles the notification channels.
func (p *Profile) UpdateNotificationPrefs(ctx context.Context, s *model.Session, prefs model.NotificationPrefs) error {
	p.beginSubmit()
	defer p.endSubmit()

	if err := p.api.Put(ctx, s.ID, "/profile/notifications", prefs, nil); err != nil {
		msg := upstream.ErrorMessage(err, "Failed to update notification settings")
		p.setErr(msg)
		p.notify.Error(ctx, s, "profile", msg)
		return err
	}

	p.mu.Lock()
	if p.profile != nil {
		p.profile.EmailNotifications = prefs.EmailNotifications
		p.profile.SMSNotifications = prefs.SMSNotifications
	}
	p.mu.Unlock()

	p.notify.Success(ctx, s, "profile", "Notification settings updated")
	return nil
}

// UploadAvatar forwards a multipart body to the avatar endpoint.
// The upload is never retried; callers re-submit the form instead.
func (p *Profile) UploadAvatar(ctx context.Context, s *model.Session, contentType string, body io.Reader) (string, error) {
	p.beginSubmit()
	defer p.endSubmit()

	var resp struct {
		Data struct {
			Avatar string `json:"avatar"`
		} `json:"data"`
	}
	if err := p.api.PostMultipart(ctx, s.ID, "/profile/avatar", contentType, body, &resp); err != nil {
		msg := upstream.ErrorMessage(err, "Failed to upload avatar")
		p.setErr(msg)
		p.notify.Error(ctx, s, "profile", msg)
		return "", err
	}

	p.mu.Lock()
	if p.profile != nil {
		p.profile.Avatar = resp.Data.Avatar
	}
	p.mu.Unlock()

	p.notify.Success(ctx, s, "profile", "Avatar updated successfully")
	return resp.Data.Avatar, nil
}

// Reset drops the cache and flags.
func (p *Profile) Reset() {
	p.reset()
	p.mu.Lock()
	p.profile = nil
	p.mu.Unlock()
}
