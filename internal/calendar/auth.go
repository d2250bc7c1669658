package calendar

import (
	"context"
	"net/http"
	"sync"

	"github.com/bytedance/sonic"
	"github.com/cockroachdb/errors"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/pfrederiksen/club-fixtures/internal/crypto"
	"github.com/pfrederiksen/club-fixtures/internal/logger"
)

// Scopes requested from Google: write events, read calendars.
var Scopes = []string{
	"https://www.googleapis.com/auth/calendar.events",
	"https://www.googleapis.com/auth/calendar.readonly",
}

const oauthState = "club-fixtures"

// ErrNeedsConsent means no stored credential exists and the user must visit a
// consent URL. Errors carrying the URL are *ConsentRequiredError.
var ErrNeedsConsent = errors.New("calendar authorization required")

// ConsentRequiredError carries the URL the user must open to grant access.
type ConsentRequiredError struct {
	RedirectURL string
}

func (e *ConsentRequiredError) Error() string {
	return "calendar authorization required: visit " + e.RedirectURL
}

func (e *ConsentRequiredError) Is(target error) bool {
	return target == ErrNeedsConsent
}

// Authorization is either an authorized client or a consent URL, never both.
type Authorization struct {
	Client      *http.Client
	RedirectURL string
}

// NeedsConsent reports whether the user must grant access first.
func (a Authorization) NeedsConsent() bool {
	return a.Client == nil
}

// TokenStore persists one OAuth token. Load returns nil, nil when none is stored.
type TokenStore interface {
	Load() (*oauth2.Token, error)
	Save(tok *oauth2.Token) error
}

// Authorizer runs the OAuth2 consent flow for Google Calendar.
type Authorizer struct {
	config *oauth2.Config
	tokens TokenStore
}

// NewAuthorizer builds an Authorizer from a Google client secrets JSON document.
func NewAuthorizer(credentialsJSON []byte, redirectURL string, tokens TokenStore) (*Authorizer, error) {
	cfg, err := google.ConfigFromJSON(credentialsJSON, Scopes...)
	if err != nil {
		return nil, errors.Wrap(err, "reading client credentials")
	}
	if redirectURL != "" {
		cfg.RedirectURL = redirectURL
	}
	return NewAuthorizerWithConfig(cfg, tokens), nil
}

// NewAuthorizerWithConfig uses an explicit OAuth2 config.
func NewAuthorizerWithConfig(cfg *oauth2.Config, tokens TokenStore) *Authorizer {
	return &Authorizer{config: cfg, tokens: tokens}
}

// ConsentURL is the page that grants offline calendar access.
func (a *Authorizer) ConsentURL() string {
	return a.config.AuthCodeURL(oauthState,
		oauth2.AccessTypeOffline,
		oauth2.ApprovalForce,
		oauth2.SetAuthURLParam("include_granted_scopes", "true"),
	)
}

// Credentials returns an authorized client when a token is stored, and the
// consent URL otherwise. Refreshed tokens are written back to the store.
func (a *Authorizer) Credentials(ctx context.Context) (Authorization, error) {
	tok, err := a.tokens.Load()
	if err != nil {
		return Authorization{}, err
	}
	if tok == nil {
		return Authorization{RedirectURL: a.ConsentURL()}, nil
	}

	src := &savingTokenSource{
		base:  a.config.TokenSource(ctx, tok),
		store: a.tokens,
		last:  tok.AccessToken,
	}
	return Authorization{Client: oauth2.NewClient(ctx, oauth2.ReuseTokenSource(tok, src))}, nil
}

// Exchange trades an authorization code for a token and stores it.
func (a *Authorizer) Exchange(ctx context.Context, code string) error {
	tok, err := a.config.Exchange(ctx, code)
	if err != nil {
		return errors.Wrap(err, "exchanging authorization code")
	}
	if err := a.tokens.Save(tok); err != nil {
		return err
	}
	logger.Info("calendar authorization stored", nil)
	return nil
}

type savingTokenSource struct {
	base  oauth2.TokenSource
	store TokenStore

	mu   sync.Mutex
	last string
}

func (s *savingTokenSource) Token() (*oauth2.Token, error) {
	tok, err := s.base.Token()
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if tok.AccessToken != s.last {
		if err := s.store.Save(tok); err != nil {
			logger.Warn("could not persist refreshed token", logger.Fields{"error": err.Error()})
		}
		s.last = tok.AccessToken
	}
	return tok, nil
}

// FileStore is the slice of storage.Storage the token store needs.
type FileStore interface {
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte) error
}

// TokenFile is the sealed token's file name in the data directory.
const TokenFile = "calendar-token.sealed"

// SealedTokenStore keeps the token encrypted in a data-directory file.
type SealedTokenStore struct {
	files  FileStore
	sealer *crypto.Sealer
}

func NewSealedTokenStore(files FileStore, sealer *crypto.Sealer) *SealedTokenStore {
	return &SealedTokenStore{files: files, sealer: sealer}
}

func (s *SealedTokenStore) Load() (*oauth2.Token, error) {
	data, err := s.files.ReadFile(TokenFile)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, nil
	}

	plain, err := s.sealer.Open(string(data))
	if err != nil {
		return nil, errors.Wrap(err, "opening stored token")
	}

	var tok oauth2.Token
	if err := sonic.Unmarshal(plain, &tok); err != nil {
		return nil, errors.Wrap(err, "decoding stored token")
	}
	return &tok, nil
}

func (s *SealedTokenStore) Save(tok *oauth2.Token) error {
	plain, err := sonic.Marshal(tok)
	if err != nil {
		return errors.Wrap(err, "encoding token")
	}
	sealed, err := s.sealer.Seal(plain)
	if err != nil {
		return err
	}
	return s.files.WriteFile(TokenFile, []byte(sealed))
}
