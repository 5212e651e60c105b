package googlecal

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
	oauth2v2 "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"
)

// Scopes requested on the consent screen. calendar.events is the narrowest
// scope that allows both listing and inserting events.
var Scopes = []string{
	"openid",
	"email",
	"profile",
	calendar.CalendarEventsScope,
}

// SyncWindow is the [TimeMin, TimeMax] range queried against the provider.
type SyncWindow struct {
	TimeMin time.Time
	TimeMax time.Time
}

// Service holds the OAuth application credentials. One instance is shared
// by all requests; per-user state lives in the Client it produces.
type Service struct {
	clientID     string
	clientSecret string
	redirectURI  string
}

func NewService(clientID, clientSecret, redirectURI string) *Service {
	return &Service{
		clientID:     clientID,
		clientSecret: clientSecret,
		redirectURI:  redirectURI,
	}
}

func (s *Service) oauthConfig() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     s.clientID,
		ClientSecret: s.clientSecret,
		RedirectURL:  s.redirectURI,
		Endpoint:     google.Endpoint,
		Scopes:       Scopes,
	}
}

// AuthCodeURL builds the consent-screen URL. Offline access plus forced
// consent so a refresh token is issued on every login.
func (s *Service) AuthCodeURL(state string) string {
	return s.oauthConfig().AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.ApprovalForce)
}

// Exchange trades an authorization code for tokens.
func (s *Service) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	token, err := s.oauthConfig().Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("exchange authorization code: %w", err)
	}
	return token, nil
}

// UserInfo is the subset of the Google profile this app stores.
type UserInfo struct {
	ID      string
	Email   string
	Name    string
	Picture string
}

// FetchUserInfo loads the signed-in user's profile with the freshly
// exchanged token.
func (s *Service) FetchUserInfo(ctx context.Context, token *oauth2.Token) (*UserInfo, error) {
	ts := s.oauthConfig().TokenSource(ctx, token)
	svc, err := oauth2v2.NewService(ctx, option.WithTokenSource(ts))
	if err != nil {
		return nil, fmt.Errorf("create userinfo service: %w", err)
	}
	info, err := svc.Userinfo.Get().Do()
	if err != nil {
		return nil, fmt.Errorf("fetch userinfo: %w", err)
	}
	return &UserInfo{
		ID:      info.Id,
		Email:   info.Email,
		Name:    info.Name,
		Picture: info.Picture,
	}, nil
}

// recordingTokenSource wraps the refreshing token source and records any
// rotated token so the caller can persist it after the provider call
// completes. The write happens in the caller, not here.
type recordingTokenSource struct {
	src oauth2.TokenSource

	mu      sync.Mutex
	current *oauth2.Token
	pending *oauth2.Token
}

func (r *recordingTokenSource) Token() (*oauth2.Token, error) {
	t, err := r.src.Token()
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	if r.current == nil || r.current.AccessToken != t.AccessToken {
		r.current = t
		r.pending = t
	}
	r.mu.Unlock()
	return t, nil
}

func (r *recordingTokenSource) consume() *oauth2.Token {
	r.mu.Lock()
	defer r.mu.Unlock()
	t := r.pending
	r.pending = nil
	return t
}

// Client is an authorized Calendar API handle for one user.
type Client struct {
	svc *calendar.Service
	src *recordingTokenSource
}

// Authorize builds a Client pre-loaded with the user's cached tokens. The
// underlying token source refreshes silently on expiry; refreshed tokens
// are held in the pending slot until PendingTokenUpdate drains it.
func (s *Service) Authorize(ctx context.Context, accessToken, refreshToken string, expiry time.Time) (*Client, error) {
	token := &oauth2.Token{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		Expiry:       expiry,
	}

	src := &recordingTokenSource{
		src:     s.oauthConfig().TokenSource(ctx, token),
		current: token,
	}

	svc, err := calendar.NewService(ctx, option.WithTokenSource(src))
	if err != nil {
		return nil, fmt.Errorf("create calendar service: %w", err)
	}

	return &Client{svc: svc, src: src}, nil
}

// PendingTokenUpdate returns the most recently rotated token, or nil if no
// rotation happened since the last call. The slot is cleared on read.
func (c *Client) PendingTokenUpdate() *oauth2.Token {
	return c.src.consume()
}

// ListEvents fetches every event in the window from the primary calendar,
// following pagination to exhaustion. singleEvents + orderBy give a stable
// start-time ordering across pages.
func (c *Client) ListEvents(ctx context.Context, window SyncWindow) ([]*calendar.Event, error) {
	var events []*calendar.Event
	pageToken := ""

	for {
		call := c.svc.Events.List("primary").
			TimeMin(window.TimeMin.Format(time.RFC3339)).
			TimeMax(window.TimeMax.Format(time.RFC3339)).
			SingleEvents(true).
			OrderBy("startTime").
			Context(ctx)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		resp, err := call.Do()
		if err != nil {
			return nil, fmt.Errorf("list events: %w", err)
		}

		events = append(events, resp.Items...)
		pageToken = resp.NextPageToken
		if pageToken == "" {
			break
		}
	}

	return events, nil
}

// InsertEvent creates an event on the primary calendar and returns the
// provider's copy, including its assigned ID.
func (c *Client) InsertEvent(ctx context.Context, summary string, start, end time.Time) (*calendar.Event, error) {
	event := &calendar.Event{
		Summary: summary,
		Start:   &calendar.EventDateTime{DateTime: start.Format(time.RFC3339)},
		End:     &calendar.EventDateTime{DateTime: end.Format(time.RFC3339)},
	}

	created, err := c.svc.Events.Insert("primary", event).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("insert event: %w", err)
	}
	return created, nil
}
