package user

import (
	"context"

	"github.com/amirasaad/minibank/pkg/domain/user"
	"github.com/amirasaad/minibank/webapi/common"
	"github.com/gofiber/fiber/v2"
)

// Service is the user behaviour the handlers need.
type Service interface {
	CreateUser(ctx context.Context, login, email string) (*user.User, error)
	GetUser(ctx context.Context, id string) (*user.User, error)
	ListUsers(ctx context.Context) ([]*user.User, error)
	UpdateUser(ctx context.Context, id, login, email string) (*user.User, error)
	DeleteUser(ctx context.Context, id string) error
}

func Routes(r fiber.Router, svc Service) {
	g := r.Group("/users")
	g.Post("/", CreateUser(svc))
	g.Get("/", ListUsers(svc))
	g.Get("/:id", GetUser(svc))
	g.Put("/:id", UpdateUser(svc))
	g.Delete("/:id", DeleteUser(svc))
}

// CreateUser creates a new user.
// @Summary Create a new user
// @Tags users
// @Accept json
// @Produce json
// @Param request body UserInput true "User data"
// @Success 201 {object} common.Response{data=user.User}
// @Failure 400 {object} common.ProblemDetails
// @Failure 500 {object} common.ProblemDetails
// @Router /users [post]
func CreateUser(svc Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[UserInput](c)
		if input == nil {
			return err
		}
		u, err := svc.CreateUser(c.Context(), input.Login, input.Email)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't create user", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Created user", u)
	}
}

// GetUser returns a Fiber handler for retrieving a user by ID.
// @Summary Get user by ID
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} common.Response{data=user.User}
// @Failure 404 {object} common.ProblemDetails
// @Router /users/{id} [get]
func GetUser(svc Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		u, err := svc.GetUser(c.Context(), c.Params("id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to get user", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "User found", u)
	}
}

// ListUsers returns every user.
// @Summary List users
// @Tags users
// @Produce json
// @Success 200 {object} common.Response{data=[]user.User}
// @Router /users [get]
func ListUsers(svc Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		users, err := svc.ListUsers(c.Context())
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to list users", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Users fetched", users)
	}
}

// UpdateUser updates user information.
// @Summary Update user
// @Tags users
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param request body UserInput true "User data"
// @Success 200 {object} common.Response{data=user.User}
// @Failure 400 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /users/{id} [put]
func UpdateUser(svc Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[UserInput](c)
		if input == nil {
			return err
		}
		u, err := svc.UpdateUser(c.Context(), c.Params("id"), input.Login, input.Email)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to update user", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "User updated successfully", u)
	}
}

// DeleteUser deletes a user without accounts.
// @Summary Delete user
// @Tags users
// @Param id path string true "User ID"
// @Success 204
// @Failure 400 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /users/{id} [delete]
func DeleteUser(svc Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := svc.DeleteUser(c.Context(), c.Params("id")); err != nil {
			return common.ProblemDetailsJSON(c, "Failed to delete user", err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
