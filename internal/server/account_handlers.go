package server

import (
	"quill/internal/models"
	"quill/internal/service"

	"github.com/gofiber/fiber/v2"
)

type accountForm struct {
	Password        string `form:"password"`
	PasswordConfirm string `form:"password_confirm"`
	Email           string `form:"email"`
}

// signedOut sends an unauthenticated caller home with the signed-out flash.
// It returns handled=false for any other error.
func signedOut(c *fiber.Ctx, err error) (bool, error) {
	if !models.HasCode(err, models.CodeUnauthenticated) {
		return false, nil
	}
	return true, flashRedirect(c, models.UserMessage(err), "/index/")
}

func (s *Server) Account(c *fiber.Ctx) error {
	user, err := s.accountService.View(c.UserContext(), currentSession(c))
	if err != nil {
		if handled, rerr := signedOut(c, err); handled {
			return rerr
		}
		return err
	}
	return s.render(c, "account", fiber.Map{"User": user})
}

func (s *Server) UserEditPage(c *fiber.Ctx) error {
	user, err := s.accountService.View(c.UserContext(), currentSession(c))
	if err != nil {
		if handled, rerr := signedOut(c, err); handled {
			return rerr
		}
		return err
	}
	return s.render(c, "user_edit", fiber.Map{"Email": user.Email})
}

// UserEdit changes the signed-in user's password and email.
func (s *Server) UserEdit(c *fiber.Ctx) error {
	var form accountForm
	if err := c.BodyParser(&form); err != nil {
		return fiber.ErrBadRequest
	}

	err := s.accountService.Edit(c.UserContext(), currentSession(c), service.EditAccountInput{
		Password:        form.Password,
		PasswordConfirm: form.PasswordConfirm,
		Email:           form.Email,
	})
	if err != nil {
		if handled, rerr := signedOut(c, err); handled {
			return rerr
		}
		if !userFacing(err) {
			return err
		}
		flash(c, models.UserMessage(err))
		return s.render(c, "user_edit", fiber.Map{"Email": form.Email})
	}
	return c.Redirect("/account/", fiber.StatusFound)
}

func (s *Server) UserDelete(c *fiber.Ctx) error {
	err := s.accountService.Delete(c.UserContext(), currentSession(c))
	if err != nil {
		if handled, rerr := signedOut(c, err); handled {
			return rerr
		}
		return err
	}
	return c.Redirect("/index/", fiber.StatusFound)
}
