// Package flash carries a one-shot notification across exactly one request
// boundary. The value lives in a client-held cookie, not in server memory, so
// the channel is scoped to the client that triggered the write. The app is
// expected to run the cookies through the encryptcookie middleware so the
// client only ever holds an opaque token.
package flash

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
)

const (
	cookieSuccess = "flashSuccess"
	cookieError   = "flashError"
)

type Kind string

const (
	Success Kind = "success"
	Error   Kind = "error"
)

// Notice is a single pending notification. A client holds at most one: a
// second Set before the next Take overwrites the first.
type Notice struct {
	Kind    Kind
	Message string
}

func Successf(format string, args ...any) *Notice {
	return &Notice{Kind: Success, Message: fmt.Sprintf(format, args...)}
}

func Errorf(format string, args ...any) *Notice {
	return &Notice{Kind: Error, Message: fmt.Sprintf(format, args...)}
}

// AlertClass maps the notice kind onto the banner stylesheet class.
func (n *Notice) AlertClass() string {
	if n.Kind == Error {
		return "alert-danger"
	}
	return "alert-success"
}

// Set stores the notice for the requesting client, replacing any unread
// notice of either kind.
func Set(c *fiber.Ctx, n *Notice) {
	write, clear := cookieSuccess, cookieError
	if n.Kind == Error {
		write, clear = cookieError, cookieSuccess
	}

	c.Cookie(&fiber.Cookie{
		Name:     write,
		Value:    n.Message,
		Path:     "/",
		HTTPOnly: true,
	})
	if c.Cookies(clear) != "" {
		expire(c, clear)
	}
}

// Take returns the pending notice, or nil, and clears both cookies whether or
// not anything was pending. The clear rides on the same response, so from the
// client's point of view read-and-clear is one operation.
func Take(c *fiber.Ctx) *Notice {
	var n *Notice
	if v := c.Cookies(cookieSuccess); v != "" {
		n = &Notice{Kind: Success, Message: v}
	} else if v := c.Cookies(cookieError); v != "" {
		n = &Notice{Kind: Error, Message: v}
	}

	// Both kinds are cleared even when only one was readable, so a stale
	// notice of the other kind cannot surface on a later read.
	for _, name := range []string{cookieSuccess, cookieError} {
		if c.Cookies(name) != "" {
			expire(c, name)
		}
	}
	return n
}

func expire(c *fiber.Ctx, name string) {
	c.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
	})
}
