package server

import (
	"strconv"
	"strings"

	"quill/internal/models"
	"quill/internal/service"

	"github.com/gofiber/fiber/v2"
)

func (s *Server) About(c *fiber.Ctx) error {
	return s.render(c, "about", nil)
}

func (s *Server) Comments(c *fiber.Ctx) error {
	return s.render(c, "comments", fiber.Map{"Comments": s.catalogService.ListComments(c.UserContext())})
}

func (s *Server) Messages(c *fiber.Ctx) error {
	return s.render(c, "messages", fiber.Map{"Messages": s.catalogService.ListMessages(c.UserContext())})
}

func (s *Server) Message(c *fiber.Ctx) error {
	idx, err := parseID(c, "idx")
	if err != nil {
		return err
	}
	msg, err := s.catalogService.GetMessage(c.UserContext(), idx)
	if err != nil {
		return err
	}
	return s.render(c, "message", fiber.Map{"Message": msg})
}

func (s *Server) CreateMessagePage(c *fiber.Ctx) error {
	return s.render(c, "create", nil)
}

func (s *Server) CreateMessage(c *fiber.Ctx) error {
	var form postForm
	if err := c.BodyParser(&form); err != nil {
		return fiber.ErrBadRequest
	}

	err := s.catalogService.CreateMessage(c.UserContext(), service.CreateMessageInput{
		Title:   form.Title,
		Content: form.Content,
	})
	if err != nil {
		if !userFacing(err) {
			return err
		}
		flash(c, models.UserMessage(err))
		return s.render(c, "create", fiber.Map{"Form": form})
	}
	return c.Redirect("/messages/", fiber.StatusFound)
}

func (s *Server) Courses(c *fiber.Ctx) error {
	return s.render(c, "courses", fiber.Map{"Courses": s.catalogService.ListCourses(c.UserContext())})
}

func (s *Server) CreateCoursePage(c *fiber.Ctx) error {
	return s.render(c, "create_course", fiber.Map{"Levels": models.CourseLevels})
}

// CreateCourse reads the course form by hand: price must be a whole number
// and the availability checkbox is absent when unchecked.
func (s *Server) CreateCourse(c *fiber.Ctx) error {
	in := service.CreateCourseInput{
		Title:       c.FormValue("title"),
		Description: c.FormValue("description"),
		Level:       c.FormValue("level"),
	}
	switch strings.ToLower(c.FormValue("available")) {
	case "true", "on", "y", "yes", "1":
		in.Available = true
	}
	rerender := func(msg string) error {
		flash(c, msg)
		return s.render(c, "create_course", fiber.Map{"Form": in, "Levels": models.CourseLevels})
	}

	price, err := strconv.Atoi(strings.TrimSpace(c.FormValue("price")))
	if err != nil {
		return rerender("Price must be a whole number!")
	}
	in.Price = price

	if err := s.catalogService.CreateCourse(c.UserContext(), in); err != nil {
		if !userFacing(err) {
			return err
		}
		return rerender(models.UserMessage(err))
	}
	return c.Redirect("/courses/", fiber.StatusFound)
}
