// Package flash carries one-shot user messages from the request that
// produced them to the next rendered page.  Messages travel in a cookie
// signed as an HS256 JWT so a client cannot forge them.
package flash

import (
	"errors"
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// Category values understood by the templates.
const (
	Info  = "info"
	Error = "error"
)

// CookieName is the cookie holding pending messages.
const CookieName = "fyyur_flash"

// pendingKey stores messages added during the current request.
const pendingKey = "flash.pending"

// maxTextLen caps each message so the signed cookie stays well under the
// 4 KB browsers accept.
const maxTextLen = 256

// Message is one flash banner.
type Message struct {
	Category string `json:"c"`
	Text     string `json:"t"`
}

type claims struct {
	Messages []Message `json:"msgs"`
	jwt.RegisteredClaims
}

// Store signs and verifies flash cookies.
type Store struct {
	secret []byte
	ttl    time.Duration
}

// NewStore returns a Store signing with secret.  Messages not read within
// ttl are dropped.
func NewStore(secret string, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &Store{secret: []byte(secret), ttl: ttl}
}

// Add queues a message for the next page.  Several calls in one request
// accumulate into the same cookie.
func (s *Store) Add(c echo.Context, category, text string) {
	pending, _ := c.Get(pendingKey).([]Message)
	pending = append(pending, Message{Category: category, Text: truncate(text, maxTextLen)})
	c.Set(pendingKey, pending)

	raw, err := s.sign(pending)
	if err != nil {
		c.Logger().Errorf("flash: sign: %v", err)
		return
	}
	dropSetCookie(c.Response().Header(), CookieName)
	c.SetCookie(&http.Cookie{
		Name:     CookieName,
		Value:    raw,
		Path:     "/",
		MaxAge:   int(s.ttl / time.Second),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// truncate cuts s to at most n bytes on a rune boundary, marking the cut
// with an ellipsis.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	const ellipsis = "…"
	cut := n - len(ellipsis)
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + ellipsis
}

// Pop returns the messages carried by the request cookie and clears it.
// A missing, expired or tampered cookie yields no messages.
func (s *Store) Pop(c echo.Context) []Message {
	ck, err := c.Cookie(CookieName)
	if err != nil || ck.Value == "" {
		return nil
	}
	c.SetCookie(&http.Cookie{Name: CookieName, Value: "", Path: "/", MaxAge: -1, HttpOnly: true})
	msgs, err := s.Verify(ck.Value)
	if err != nil {
		c.Logger().Debugf("flash: dropping cookie: %v", err)
		return nil
	}
	return msgs
}

// Verify decodes a cookie value produced by Add.
func (s *Store) Verify(raw string) ([]Message, error) {
	var cl claims
	tok, err := jwt.ParseWithClaims(raw, &cl, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !tok.Valid {
		return nil, errors.New("invalid flash token")
	}
	return cl.Messages, nil
}

func (s *Store) sign(msgs []Message) (string, error) {
	now := time.Now().UTC()
	cl := claims{
		Messages: msgs,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, cl).SignedString(s.secret)
}

// dropSetCookie removes earlier Set-Cookie lines for name so only the
// latest flash cookie reaches the client.
func dropSetCookie(h http.Header, name string) {
	lines := h.Values(echo.HeaderSetCookie)
	if len(lines) == 0 {
		return
	}
	h.Del(echo.HeaderSetCookie)
	prefix := name + "="
	for _, l := range lines {
		if len(l) >= len(prefix) && l[:len(prefix)] == prefix {
			continue
		}
		h.Add(echo.HeaderSetCookie, l)
	}
}
