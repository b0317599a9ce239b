package server

import (
	"quill/internal/models"
	"quill/internal/service"

	"github.com/gofiber/fiber/v2"
)

type postForm struct {
	Title   string `form:"title"`
	Content string `form:"content"`
}

func (s *Server) Posts(c *fiber.Ctx) error {
	posts, err := s.postService.ListPosts(c.UserContext())
	if err != nil {
		return err
	}
	return s.render(c, "posts", fiber.Map{"Posts": posts})
}

func (s *Server) CreatePostPage(c *fiber.Ctx) error {
	return s.render(c, "create_post", nil)
}

func (s *Server) CreatePost(c *fiber.Ctx) error {
	var form postForm
	if err := c.BodyParser(&form); err != nil {
		return fiber.ErrBadRequest
	}

	_, err := s.postService.CreatePost(c.UserContext(), service.CreatePostInput{
		Title:   form.Title,
		Content: form.Content,
	})
	if err != nil {
		if !userFacing(err) {
			return err
		}
		flash(c, models.UserMessage(err))
		return s.render(c, "create_post", fiber.Map{"Form": form})
	}
	return c.Redirect("/posts/", fiber.StatusFound)
}

func (s *Server) EditPostPage(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	post, err := s.postService.GetPost(c.UserContext(), uint(id))
	if err != nil {
		return err
	}
	return s.render(c, "post_edit", fiber.Map{"Post": post})
}

// EditPost saves an edit. An invalid submission re-renders the form with the stored post.
func (s *Server) EditPost(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var form postForm
	if err := c.BodyParser(&form); err != nil {
		return fiber.ErrBadRequest
	}

	post, err := s.postService.UpdatePost(c.UserContext(), service.UpdatePostInput{
		PostID:  uint(id),
		Title:   form.Title,
		Content: form.Content,
	})
	if err != nil {
		if !userFacing(err) {
			return err
		}
		flash(c, models.UserMessage(err))
		return s.render(c, "post_edit", fiber.Map{"Post": post})
	}
	return c.Redirect("/posts/", fiber.StatusFound)
}

func (s *Server) DeletePost(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	msg, err := s.postService.DeletePost(c.UserContext(), uint(id))
	if err != nil {
		return err
	}
	return flashRedirect(c, msg, "/posts/")
}
