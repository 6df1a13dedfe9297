package auth

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Config controls token signing and the auth cookie.
type Config struct {
	Secret      string
	ExpiresDays int
	CookieName  string
	Secure      bool // production: Secure + SameSite=None cookies
}

// Identity is what a valid token asserts.
type Identity struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// Tokens signs and verifies HS256 JWTs.
type Tokens struct {
	cfg Config
	now func() time.Time
}

// NewTokens returns a signer/verifier. Missing values get dev defaults.
func NewTokens(cfg Config) *Tokens {
	if cfg.Secret == "" {
		cfg.Secret = "dev_secret_change_me"
	}
	if cfg.ExpiresDays <= 0 {
		cfg.ExpiresDays = 14
	}
	if cfg.CookieName == "" {
		cfg.CookieName = "pairs_token"
	}
	return &Tokens{cfg: cfg, now: time.Now}
}

// Sign creates a token with id/username claims and the configured expiry.
func (t *Tokens) Sign(id, username string) (string, time.Time, error) {
	now := t.now()
	exp := now.Add(time.Duration(t.cfg.ExpiresDays) * 24 * time.Hour)
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":       id,
		"username": username,
		"exp":      exp.Unix(),
		"iat":      now.Unix(),
	})
	ss, err := tok.SignedString([]byte(t.cfg.Secret))
	return ss, exp, err
}

// Parse verifies a token and returns the identity it carries.
func (t *Tokens) Parse(s string) (Identity, error) {
	claims := jwt.MapClaims{}
	tok, err := jwt.ParseWithClaims(s, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(t.cfg.Secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(t.now))
	if err != nil || !tok.Valid {
		return Identity{}, errors.New("invalid token")
	}
	id, _ := claims["id"].(string)
	username, _ := claims["username"].(string)
	if id == "" || username == "" {
		return Identity{}, errors.New("invalid token")
	}
	return Identity{ID: id, Username: username}, nil
}

// SetCookie writes the auth token cookie with appropriate security attributes.
func (t *Tokens) SetCookie(w http.ResponseWriter, token string, exp time.Time) {
	c := t.cookie()
	c.Value = token
	c.Expires = exp
	http.SetCookie(w, c)
}

// ClearCookie deletes the auth token cookie.
func (t *Tokens) ClearCookie(w http.ResponseWriter) {
	c := t.cookie()
	c.MaxAge = -1
	http.SetCookie(w, c)
}

func (t *Tokens) cookie() *http.Cookie {
	sameSite := http.SameSiteLaxMode
	if t.cfg.Secure {
		sameSite = http.SameSiteNoneMode // required for third-party contexts when Secure
	}
	return &http.Cookie{
		Name:     t.cfg.CookieName,
		Path:     "/",
		HttpOnly: true,
		Secure:   t.cfg.Secure,
		SameSite: sameSite,
	}
}

// FromRequest extracts a bearer token from the Authorization header or auth cookie.
func (t *Tokens) FromRequest(r *http.Request) string {
	if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	if c, err := r.Cookie(t.cfg.CookieName); err == nil {
		return c.Value
	}
	return ""
}
