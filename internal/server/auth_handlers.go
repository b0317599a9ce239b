package server

import (
	"quill/internal/models"
	"quill/internal/service"

	"github.com/gofiber/fiber/v2"
)

type loginForm struct {
	Username string `form:"username"`
	Password string `form:"password"`
}

type signupForm struct {
	Username        string `form:"username"`
	Password        string `form:"password"`
	PasswordConfirm string `form:"password_confirm"`
	Email           string `form:"email"`
}

// Index shows the home page to signed-in users and sends everyone else to log in.
func (s *Server) Index(c *fiber.Ctx) error {
	if _, ok := currentSession(c).Username(); !ok {
		return c.Redirect("/login/", fiber.StatusFound)
	}
	return s.render(c, "index", nil)
}

func (s *Server) LoginPage(c *fiber.Ctx) error {
	return s.render(c, "login", nil)
}

// Login handles the login form. Failures re-render the form with a flash.
func (s *Server) Login(c *fiber.Ctx) error {
	var form loginForm
	if err := c.BodyParser(&form); err != nil {
		return fiber.ErrBadRequest
	}

	err := s.authService.Login(c.UserContext(), currentSession(c), service.LoginInput{
		Username: form.Username,
		Password: form.Password,
	})
	if err != nil {
		if !userFacing(err) {
			return err
		}
		flash(c, models.UserMessage(err))
		return s.render(c, "login", fiber.Map{"Form": form})
	}
	return c.Redirect("/index/", fiber.StatusFound)
}

func (s *Server) SignupPage(c *fiber.Ctx) error {
	return s.render(c, "signup", nil)
}

// Signup handles the signup form and signs the new user in.
func (s *Server) Signup(c *fiber.Ctx) error {
	var form signupForm
	if err := c.BodyParser(&form); err != nil {
		return fiber.ErrBadRequest
	}

	err := s.authService.Signup(c.UserContext(), currentSession(c), service.SignupInput{
		Username:        form.Username,
		Password:        form.Password,
		PasswordConfirm: form.PasswordConfirm,
		Email:           form.Email,
	})
	if err != nil {
		if !userFacing(err) {
			return err
		}
		flash(c, models.UserMessage(err))
		return s.render(c, "signup", fiber.Map{"Form": form})
	}
	return c.Redirect("/index/", fiber.StatusFound)
}

func (s *Server) Logout(c *fiber.Ctx) error {
	s.authService.Logout(c.UserContext(), currentSession(c))
	return c.Redirect("/login/", fiber.StatusFound)
}
