package service

import (
	"context"
	"net/url"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/kipidap/myngo-gateway/internal/model"
	"github.com/kipidap/myngo-gateway/internal/notify"
	"github.com/kipidap/myngo-gateway/internal/upstream"
)

var (
	ssmPattern    = regexp.MustCompile(`^\d{12}$`)
	msisdnPattern = regexp.MustCompile(`^(\+?60|0)[0-9]{8,12}$`)
	webURLPattern = regexp.MustCompile(`^https?://.+\..+`)
	cleanup       = strings.NewReplacer("-", "", " ", "")
)

// newFormValidator builds the validator shared by the form-backed
// services. Dashes and spaces in SSM and phone numbers are user
// formatting, stripped before matching.
func newFormValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("ssm", func(fl validator.FieldLevel) bool {
		return ssmPattern.MatchString(cleanup.Replace(fl.Field().String()))
	})
	_ = v.RegisterValidation("msisdn", func(fl validator.FieldLevel) bool {
		return msisdnPattern.MatchString(cleanup.Replace(fl.Field().String()))
	})
	_ = v.RegisterValidation("weburl", func(fl validator.FieldLevel) bool {
		return webURLPattern.MatchString(fl.Field().String())
	})
	return v
}

// businessFormMessages maps a failed field and tag to the message
// shown to the user. Only the first violation is reported.
var businessFormMessages = map[string]string{
	"Name/required":                     "Company name is required",
	"SSM/required":                      "SSM number is required",
	"SSM/ssm":                           "Invalid SSM number format (12 digits required)",
	"Address/required":                  "Business address is required",
	"Phone/required":                    "Phone number is required",
	"Phone/msisdn":                      "Invalid phone number format",
	"Type/required":                     "Business type is required",
	"Sector/required":                   "Business sector is required",
	"Category/required":                 "Business category is required",
	"MOFRegistrationNumber/required_if": "MOF Registration Number is required when MOF Registration is selected",
	"URL/weburl":                        "Invalid URL format",
}

// Businesses manages a member's registered businesses: the cached
// list, the registration form validation and the CRUD calls.
type Businesses struct {
	state
	api      *upstream.Client
	notify   notify.Notifier
	validate *validator.Validate

	businesses []model.Business
	pagination model.Pagination
}

func NewBusinesses(api *upstream.Client, n notify.Notifier) *Businesses {
	return &Businesses{
		api:        api,
		notify:     n,
		validate:   newFormValidator(),
		pagination: model.DefaultPagination(),
	}
}

// List returns the cached businesses.
func (b *Businesses) List() ([]model.Business, model.Pagination) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.businesses, b.pagination
}

// checkForm runs the registration rules and returns the first
// violation, or nil when the form is clean.
func (b *Businesses) checkForm(form model.BusinessForm) *ValidationError {
	err := b.validate.Struct(form)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok || len(verrs) == 0 {
		return &ValidationError{Field: "form", Message: "Invalid form submission"}
	}
	first := verrs[0]
	msg, ok := businessFormMessages[first.StructField()+"/"+first.Tag()]
	if !ok {
		msg = "Invalid value for " + first.StructField()
	}
	return &ValidationError{Field: first.StructField(), Message: msg}
}

// Fetch loads the business list, discarding superseded responses.
func (b *Businesses) Fetch(ctx context.Context, s *model.Session) ([]model.Business, error) {
	seq := b.beginLoad()
	defer b.endLoad()

	var resp struct {
		Data model.BusinessList `json:"data"`
	}
	if err := b.api.Get(ctx, s.ID, "/businesses", &resp); err != nil {
		msg := upstream.ErrorMessage(err, "Failed to fetch businesses")
		b.setErr(msg)
		b.notify.Error(ctx, s, "businesses", msg)
		return nil, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.latest(seq) {
		return resp.Data.Businesses, nil
	}
	b.businesses = resp.Data.Businesses
	b.pagination = resp.Data.Pagination
	return b.businesses, nil
}

// FetchOne loads one business and refreshes only its slot in the
// cached list, when present.
func (b *Businesses) FetchOne(ctx context.Context, s *model.Session, id string) (*model.Business, error) {
	b.beginLoad()
	defer b.endLoad()

	var resp struct {
		Data struct {
			Business model.Business `json:"business"`
		} `json:"data"`
	}
	if err := b.api.Get(ctx, s.ID, "/businesses/"+url.PathEscape(id), &resp); err != nil {
		msg := upstream.ErrorMessage(err, "Failed to fetch business details")
		b.setErr(msg)
		b.notify.Error(ctx, s, "businesses", msg)
		return nil, err
	}

	b.mu.Lock()
	for i := range b.businesses {
		if b.businesses[i].ID == resp.Data.Business.ID {
			b.businesses[i] = resp.Data.Business
			break
		}
	}
	b.mu.Unlock()
	return &resp.Data.Business, nil
}

// Create validates and registers a new business. Validation runs
// before any network call and reports the first violation only; on
// success the created record is appended to the cache.
func (b *Businesses) Create(ctx context.Context, s *model.Session, form model.BusinessForm) (*model.Business, error) {
	if verr := b.checkForm(form); verr != nil {
		b.setErr(verr.Message)
		b.notify.Error(ctx, s, "businesses", verr.Message)
		return nil, verr
	}

	b.beginSubmit()
	defer b.endSubmit()

	var resp struct {
		Data struct {
			Business model.Business `json:"business"`
		} `json:"data"`
	}
	if err := b.api.Post(ctx, s.ID, "/businesses", form, &resp); err != nil {
		msg := upstream.ErrorMessage(err, "Failed to register business")
		b.setErr(msg)
		b.notify.Error(ctx, s, "businesses", msg)
		return nil, err
	}

	b.mu.Lock()
	b.businesses = append(b.businesses, resp.Data.Business)
	b.pagination.Total++
	b.mu.Unlock()

	b.notify.Success(ctx, s, "businesses", "Business registered successfully")
	return &resp.Data.Business, nil
}

// Update validates and saves changes to an existing business,
// patching the cached slot in place on success.
func (b *Businesses) Update(ctx context.Context, s *model.Session, id string, form model.BusinessForm) (*model.Business, error) {
	if verr := b.checkForm(form); verr != nil {
		b.setErr(verr.Message)
		b.notify.Error(ctx, s, "businesses", verr.Message)
		return nil, verr
	}

	b.beginSubmit()
	defer b.endSubmit()

	var resp struct {
		Data struct {
			Business model.Business `json:"business"`
		} `json:"data"`
	}
	if err := b.api.Put(ctx, s.ID, "/businesses/"+url.PathEscape(id), form, &resp); err != nil {
		msg := upstream.ErrorMessage(err, "Failed to update business")
		b.setErr(msg)
		b.notify.Error(ctx, s, "businesses", msg)
		return nil, err
	}

	b.mu.Lock()
	for i := range b.businesses {
		if b.businesses[i].ID == id {
			b.businesses[i] = resp.Data.Business
			break
		}
	}
	b.mu.Unlock()

	b.notify.Success(ctx, s, "businesses", "Business updated successfully")
	return &resp.Data.Business, nil
}

// Delete removes a business and drops it from the cache.
func (b *Businesses) Delete(ctx context.Context, s *model.Session, id string) error {
	b.beginSubmit()
	defer b.endSubmit()

	if err := b.api.Delete(ctx, s.ID, "/businesses/"+url.PathEscape(id), nil); err != nil {
		msg := upstream.ErrorMessage(err, "Failed to delete business")
		b.setErr(msg)
		b.notify.Error(ctx, s, "businesses", msg)
		return err
	}

	b.mu.Lock()
	for i := range b.businesses {
		if b.businesses[i].ID == id {
			b.businesses = append(b.businesses[:i], b.businesses[i+1:]...)
			if b.pagination.Total > 0 {
				b.pagination.Total--
			}
			break
		}
	}
	b.mu.Unlock()

	b.notify.Success(ctx, s, "businesses", "Business deleted successfully")
	return nil
}

// Reset drops the cache and flags.
func (b *Businesses) Reset() {
	b.reset()
	b.mu.Lock()
	b.businesses = nil
	b.pagination = model.DefaultPagination()
	b.mu.Unlock()
}
