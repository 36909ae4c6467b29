package handlers

import (
	"kahera/internal/models"
	"kahera/internal/repositories"
	"kahera/internal/utils"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

type UserHandler struct {
	userRepo repositories.UserRepository
}

func NewUserHandler(userRepo repositories.UserRepository) *UserHandler {
	return &UserHandler{userRepo: userRepo}
}

func validRole(role string) bool {
	return role == models.RoleAdmin || role == models.RoleStaff || role == models.RoleViewer
}

func (h *UserHandler) List(c *fiber.Ctx) error {
	users, err := h.userRepo.List()
	if err != nil {
		return utils.InternalError(c, "failed to list users")
	}
	return utils.Success(c, fiber.Map{"users": users})
}

func (h *UserHandler) Create(c *fiber.Ctx) error {
	var input struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
		Role     string `json:"role"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "invalid request format")
	}
	if input.Name == "" || input.Email == "" {
		return utils.BadRequest(c, "name and email are required")
	}
	if len(input.Password) < 8 {
		return utils.BadRequest(c, "password must be at least 8 characters")
	}
	if !validRole(input.Role) {
		return utils.BadRequest(c, "role must be admin, staff or viewer")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return utils.InternalError(c, "failed to hash password")
	}

	user := &models.User{
		Name:     input.Name,
		Email:    input.Email,
		Password: string(hashed),
		Role:     input.Role,
	}
	if err := h.userRepo.Create(user); err != nil {
		if err == repositories.ErrDuplicateEmail {
			return utils.Conflict(c, "email already registered")
		}
		return utils.InternalError(c, "failed to create user")
	}
	return utils.Created(c, fiber.Map{"user": user})
}

func (h *UserHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return utils.BadRequest(c, "invalid user id")
	}

	var input struct {
		Name string `json:"name"`
		Role string `json:"role"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "invalid request format")
	}
	if input.Name == "" || !validRole(input.Role) {
		return utils.BadRequest(c, "name and a valid role are required")
	}

	user, err := h.userRepo.GetByID(uint(id))
	if err != nil {
		if err == repositories.ErrUserNotFound {
			return utils.NotFound(c, "user not found")
		}
		return utils.InternalError(c, "failed to get user")
	}

	user.Name = input.Name
	user.Role = input.Role
	if err := h.userRepo.Update(user); err != nil {
		return utils.InternalError(c, "failed to update user")
	}
	return utils.Success(c, fiber.Map{"user": user})
}

func (h *UserHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return utils.BadRequest(c, "invalid user id")
	}

	claims, err := utils.GetUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}
	if claims.UserID == uint(id) {
		return utils.BadRequest(c, "cannot delete your own account")
	}

	switch err := h.userRepo.Delete(uint(id)); err {
	case nil:
		return utils.Success(c, fiber.Map{"message": "user deleted"})
	case repositories.ErrUserNotFound:
		return utils.NotFound(c, "user not found")
	default:
		return utils.InternalError(c, "failed to delete user")
	}
}
