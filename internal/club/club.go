package club

import (
	"context"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
)

var (
	// ErrNotFound is returned when no club matches a key.
	ErrNotFound = errors.New("club not found")
	// ErrInvalid marks a club that failed validation.
	ErrInvalid = errors.New("invalid club")
)

// Club is a followed club.
type Club struct {
	Name     string `json:"name" db:"name" validate:"required,max=200"`
	URL      string `json:"url,omitempty" db:"url" validate:"omitempty,url,startswith=http"`
	League   string `json:"league,omitempty" db:"league" validate:"max=200"`
	LogoURL  string `json:"logo_url,omitempty" db:"logo_url" validate:"omitempty,url,startswith=http"`
	SourceID *int   `json:"source_id,omitempty" db:"source_id" validate:"omitempty,gt=0"`
}

// Store persists followed clubs.
type Store interface {
	// List returns clubs in insertion order.
	List(ctx context.Context) ([]Club, error)
	// Add stores c unless a club with the same name or URL exists, in which case
	// the existing entry is returned unmodified with created=false.
	Add(ctx context.Context, c Club) (stored Club, created bool, err error)
	// Refresh overwrites URL, league and logo of the club matching c with the
	// non-empty values from c.
	Refresh(ctx context.Context, c Club) (Club, error)
	// Remove deletes the club whose name or URL equals key.
	Remove(ctx context.Context, key string) error
	// Get returns the club whose name or URL equals key.
	Get(ctx context.Context, key string) (Club, error)
}

var validate = validator.New()

// Normalize trims whitespace from every text field.
func (c Club) Normalize() Club {
	c.Name = strings.TrimSpace(c.Name)
	c.URL = strings.TrimSpace(c.URL)
	c.League = strings.TrimSpace(c.League)
	c.LogoURL = strings.TrimSpace(c.LogoURL)
	return c
}

// Validate checks the club's fields.
func (c Club) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return errors.Wrapf(ErrInvalid, "%s failed %q", verrs[0].Field(), verrs[0].Tag())
		}
		return errors.Wrap(ErrInvalid, err.Error())
	}
	return nil
}

// Matches reports whether key is the club's name or its non-empty URL.
func (c Club) Matches(key string) bool {
	key = strings.TrimSpace(key)
	if key == "" {
		return false
	}
	return c.Name == key || (c.URL != "" && c.URL == key)
}

// SameAs reports whether two clubs share a name or a non-empty URL.
func (c Club) SameAs(other Club) bool {
	return c.Name == other.Name || (c.URL != "" && c.URL == other.URL)
}

// WithRefresh returns c with URL, league and logo replaced by the non-empty
// values from update. Name and source id are kept unless c has no source id.
func (c Club) WithRefresh(update Club) Club {
	if update.URL != "" {
		c.URL = update.URL
	}
	if update.League != "" {
		c.League = update.League
	}
	if update.LogoURL != "" {
		c.LogoURL = update.LogoURL
	}
	if c.SourceID == nil && update.SourceID != nil {
		id := *update.SourceID
		c.SourceID = &id
	}
	return c
}
