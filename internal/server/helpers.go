package server

import (
	"quill/internal/middleware"
	"quill/internal/models"
	"quill/internal/session"

	"github.com/gofiber/fiber/v2"
)

const (
	localSession  = "session"
	localUsername = "username"
)

// SessionMiddleware loads the caller's session before the handler runs and
// saves it afterwards, so handlers only mutate it.
func (s *Server) SessionMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := s.sessions.Load(c)
		if err != nil {
			return err
		}
		c.Locals(localSession, sess)
		if username, ok := sess.Username(); ok {
			c.Locals(localUsername, username)
			c.SetUserContext(middleware.WithUsername(c.UserContext(), username))
		}

		err = c.Next()

		// Refresh the username for the error page and tracing after login/logout.
		if username, ok := sess.Username(); ok {
			c.Locals(localUsername, username)
		} else {
			c.Locals(localUsername, nil)
		}
		c.Locals(localSession, nil)

		if saveErr := sess.Save(); saveErr != nil && err == nil {
			err = saveErr
		}
		return err
	}
}

// currentSession returns the request's session. SessionMiddleware guarantees it.
func currentSession(c *fiber.Ctx) *session.Session {
	sess, _ := c.Locals(localSession).(*session.Session)
	return sess
}

// render draws a page with the shared layout data: queued flashes and the
// signed-in username.
func (s *Server) render(c *fiber.Ctx, name string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	if sess := currentSession(c); sess != nil {
		data["Flashes"] = sess.Flashes()
		if username, ok := sess.Username(); ok {
			data["Username"] = username
		}
	}
	return c.Render(name, data)
}

// flashRedirect queues msg and redirects to location.
func flashRedirect(c *fiber.Ctx, msg, location string) error {
	if sess := currentSession(c); sess != nil && msg != "" {
		sess.AddFlash(msg)
	}
	return c.Redirect(location, fiber.StatusFound)
}

// flash queues msg for the next render.
func flash(c *fiber.Ctx, msg string) {
	if sess := currentSession(c); sess != nil {
		sess.AddFlash(msg)
	}
}

// userFacing reports whether err carries a message meant for the form's user.
func userFacing(err error) bool {
	for _, code := range []string{
		models.CodeValidation,
		models.CodeUsernameTaken,
		models.CodeUserNotFound,
		models.CodeInvalidCredentials,
	} {
		if models.HasCode(err, code) {
			return true
		}
	}
	return false
}

// parseID reads a positive integer route parameter. Anything else is a 404,
// matching a route that only accepts integers.
func parseID(c *fiber.Ctx, param string) (int, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id < 0 {
		return 0, fiber.ErrNotFound
	}
	return id, nil
}
