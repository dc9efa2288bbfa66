package server

import (
	"strings"

	"warbler/internal/models"
	"warbler/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ListUsers handles GET /users?q=...
// @Summary List or search users
// @Description List users, optionally filtered by a username substring
// @Tags users
// @Produce json
// @Param q query string false "Username substring"
// @Success 200 {array} models.User
// @Router /users [get]
func (s *Server) ListUsers(c *fiber.Ctx) error {
	q := strings.TrimSpace(c.Query("q"))
	page := parsePagination(c, 50)

	users, err := s.userService.Search(c.UserContext(), q, page.Limit, page.Offset)
	if err != nil {
		return models.RespondWithDomainError(c, err)
	}
	return c.JSON(users)
}

// GetUserProfile handles GET /users/:id
// @Summary User profile
// @Description A user together with their 100 most recent warbles, like
// @Description details computed for the requesting viewer
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} models.User
// @Failure 404 {object} models.ErrorResponse
// @Router /users/{id} [get]
func (s *Server) GetUserProfile(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	user, err := s.userService.GetByID(c.UserContext(), id)
	if err != nil {
		return models.RespondWithDomainError(c, err)
	}

	warbles, err := s.warbleService.RecentByUser(c.UserContext(), id, currentUserID(c))
	if err != nil {
		return models.RespondWithDomainError(c, err)
	}

	user.Warbles = make([]models.Warble, len(warbles))
	for i, w := range warbles {
		user.Warbles[i] = *w
	}
	return c.JSON(user)
}

// GetFollowing handles GET /users/:id/following
// @Summary Users a user follows
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {array} models.User
// @Router /users/{id}/following [get]
func (s *Server) GetFollowing(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	users, err := s.followService.Following(c.UserContext(), id)
	if err != nil {
		return models.RespondWithDomainError(c, err)
	}
	return c.JSON(users)
}

// GetFollowers handles GET /users/:id/followers
// @Summary Users following a user
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {array} models.User
// @Router /users/{id}/followers [get]
func (s *Server) GetFollowers(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	users, err := s.followService.Followers(c.UserContext(), id)
	if err != nil {
		return models.RespondWithDomainError(c, err)
	}
	return c.JSON(users)
}

// GetLikedWarbles handles GET /users/:id/likes and /users/:id/liked_warbles
// @Summary Warbles a user has liked
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {array} models.Warble
// @Router /users/{id}/likes [get]
func (s *Server) GetLikedWarbles(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	warbles, err := s.likeService.LikedBy(c.UserContext(), id)
	if err != nil {
		return models.RespondWithDomainError(c, err)
	}
	return c.JSON(warbles)
}

// FollowUser handles POST /users/follow/:id
// @Summary Follow a user
// @Tags users
// @Produce json
// @Param id path int true "User ID to follow"
// @Success 200 {object} object{following=bool}
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /users/follow/{id} [post]
func (s *Server) FollowUser(c *fiber.Ctx) error {
	targetID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.followService.Follow(c.UserContext(), currentUserID(c), targetID); err != nil {
		return models.RespondWithDomainError(c, err)
	}
	return c.JSON(fiber.Map{"following": true})
}

// StopFollowing handles POST /users/stop-following/:id
// @Summary Unfollow a user
// @Tags users
// @Produce json
// @Param id path int true "User ID to unfollow"
// @Success 200 {object} object{following=bool}
// @Failure 404 {object} models.ErrorResponse
// @Router /users/stop-following/{id} [post]
func (s *Server) StopFollowing(c *fiber.Ctx) error {
	targetID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.followService.Unfollow(c.UserContext(), currentUserID(c), targetID); err != nil {
		return models.RespondWithDomainError(c, err)
	}
	return c.JSON(fiber.Map{"following": false})
}

// GetMyProfile handles GET /users/profile
// @Summary Current user's profile
// @Tags users
// @Produce json
// @Success 200 {object} models.User
// @Router /users/profile [get]
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	user, err := s.userService.GetByID(c.UserContext(), currentUserID(c))
	if err != nil {
		return models.RespondWithDomainError(c, err)
	}
	return c.JSON(user)
}

// UpdateMyProfile handles POST /users/profile
// @Summary Edit profile
// @Description Update profile fields; requires the current password
// @Tags users
// @Accept json
// @Produce json
// @Param request body object{username=string,email=string,image_url=string,header_image_url=string,bio=string,location=string,password=string} true "Profile fields plus current password"
// @Success 200 {object} models.User
// @Failure 401 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /users/profile [post]
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	var req struct {
		Username       string `json:"username"`
		Email          string `json:"email"`
		ImageURL       string `json:"image_url"`
		HeaderImageURL string `json:"header_image_url"`
		Bio            string `json:"bio"`
		Location       string `json:"location"`
		Password       string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.authService.EditProfile(c.UserContext(), service.EditProfileInput{
		UserID:         currentUserID(c),
		Username:       req.Username,
		Email:          req.Email,
		ImageURL:       req.ImageURL,
		HeaderImageURL: req.HeaderImageURL,
		Bio:            req.Bio,
		Location:       req.Location,
		Password:       req.Password,
	})
	if err != nil {
		return models.RespondWithDomainError(c, err)
	}
	return c.JSON(user)
}

// ChangePassword handles POST /users/profile/password
// @Summary Change password
// @Tags users
// @Accept json
// @Produce json
// @Param request body object{current_password=string,new_password=string,new_password_confirm=string} true "Password change request"
// @Success 200 {object} object{message=string}
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /users/profile/password [post]
func (s *Server) ChangePassword(c *fiber.Ctx) error {
	var req struct {
		CurrentPassword    string `json:"current_password"`
		NewPassword        string `json:"new_password"`
		NewPasswordConfirm string `json:"new_password_confirm"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	err := s.authService.ChangePassword(c.UserContext(), currentUserID(c),
		req.CurrentPassword, req.NewPassword, req.NewPasswordConfirm)
	if err != nil {
		return models.RespondWithDomainError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Password updated"})
}

// DeleteAccount handles POST /users/delete
// @Summary Delete account
// @Description Remove the account, its warbles, likes and follow edges, and revoke all sessions
// @Tags users
// @Produce json
// @Success 200 {object} object{message=string}
// @Router /users/delete [post]
func (s *Server) DeleteAccount(c *fiber.Ctx) error {
	if err := s.authService.DeleteAccount(c.UserContext(), currentUserID(c)); err != nil {
		return models.RespondWithDomainError(c, err)
	}
	s.clearSessionCookie(c)

	return c.JSON(fiber.Map{"message": "Account deleted"})
}

// ToggleLike handles POST /users/add_like/:message_id
// @Summary Toggle a like
// @Description Like a warble, or unlike it if already liked
// @Tags users
// @Produce json
// @Param message_id path int true "Warble ID"
// @Success 200 {object} object{liked=bool}
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /users/add_like/{message_id} [post]
func (s *Server) ToggleLike(c *fiber.Ctx) error {
	warbleID, err := s.parseID(c, "message_id")
	if err != nil {
		return nil
	}

	liked, err := s.likeService.Toggle(c.UserContext(), currentUserID(c), warbleID)
	if err != nil {
		return models.RespondWithDomainError(c, err)
	}
	return c.JSON(fiber.Map{"liked": liked})
}
