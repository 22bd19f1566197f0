// Package session keeps the per-browser admin-mode flag in Valkey. A
// browser is identified by a random id in an HttpOnly cookie; the flag
// survives navigation and expires with the session TTL. Admin mode only
// changes which controls the UI shows, so the session is never an
// authorization input.
package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// CookieName is the name of the session cookie sent to the browser.
	CookieName = "sr_session"

	// DefaultTTL is how long an untouched session lives in Valkey.
	DefaultTTL = 12 * time.Hour

	keyPrefix = "session:"
	idLength  = 32
)

var errCorrupt = errors.New("corrupt session payload")

// Data is the session payload stored in Valkey.
type Data struct {
	AdminMode bool      `json:"admin_mode"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Store reads and writes sessions in Valkey.
type Store struct {
	client *redis.Client
	ttl    time.Duration
	secure bool
}

// NewStore returns a Store on client. secure sets the cookie's Secure
// attribute.
func NewStore(client *redis.Client, secure bool) *Store {
	return &Store{client: client, ttl: DefaultTTL, secure: secure}
}

// Get returns the browser's session, or nil when it has no cookie or the
// session has expired.
func (s *Store) Get(ctx context.Context, r *http.Request) (*Data, error) {
	id := cookieID(r)
	if id == "" {
		return nil, nil
	}
	return s.load(ctx, id)
}

// SetAdminMode stores the flag for the browser. A browser without a live
// session gets a new one; an existing session is updated in place. Either
// way the TTL and the cookie's MaxAge restart together. A stored payload
// that no longer decodes is replaced like an expired one.
func (s *Store) SetAdminMode(ctx context.Context, w http.ResponseWriter, r *http.Request, on bool) error {
	now := time.Now()

	id := cookieID(r)
	var data *Data
	if id != "" {
		var err error
		data, err = s.load(ctx, id)
		if errors.Is(err, errCorrupt) {
			data = nil
		} else if err != nil {
			return err
		}
	}

	if data == nil {
		var err error
		if id, err = newID(); err != nil {
			return fmt.Errorf("create session id: %w", err)
		}
		data = &Data{CreatedAt: now}
	}
	data.AdminMode = on
	data.UpdatedAt = now

	if err := s.save(ctx, id, data); err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(s.ttl.Seconds()),
	})
	return nil
}

func (s *Store) load(ctx context.Context, id string) (*Data, error) {
	payload, err := s.client.Get(ctx, keyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	var data Data
	if err := json.Unmarshal(payload, &data); err != nil {
		return nil, fmt.Errorf("decode session: %w: %v", errCorrupt, err)
	}
	return &data, nil
}

func (s *Store) save(ctx context.Context, id string, data *Data) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := s.client.Set(ctx, keyPrefix+id, payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func cookieID(r *http.Request) string {
	c, err := r.Cookie(CookieName)
	if err != nil {
		return ""
	}
	return c.Value
}

func newID() (string, error) {
	b := make([]byte, idLength)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
