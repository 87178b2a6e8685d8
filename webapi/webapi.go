// Package webapi exposes the minibank services over HTTP.
// It is organized into sub-packages per resource:
// - account: accounts, commission and transfers
// - user: user management
// - currency: supported currencies and conversion
package webapi

import (
	"errors"
	"strings"
	"time"

	"github.com/amirasaad/minibank/pkg/app"
	"github.com/amirasaad/minibank/pkg/config"
	accountweb "github.com/amirasaad/minibank/webapi/account"
	"github.com/amirasaad/minibank/webapi/common"
	currencyweb "github.com/amirasaad/minibank/webapi/currency"
	userweb "github.com/amirasaad/minibank/webapi/user"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
)

// BasePath prefixes every API route.
const BasePath = "/api/v1/minibank"

// SetupApp Initialize Fiber with custom configuration
func SetupApp(app *app.App) *fiber.App {
	fiberApp := fiber.New(fiber.Config{
		AppName: "minibank",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			var fe *fiber.Error
			if errors.As(err, &fe) {
				return common.ProblemDetailsJSON(c, fe.Message, err, fe.Code)
			}
			return common.ProblemDetailsJSON(c, "Internal Server Error", err)
		},
	})
	fiberApp.Get("/swagger/*", swagger.New(swagger.Config{
		TryItOutEnabled: true,
	}))

	limits := config.RateLimit{MaxRequests: 100, Window: time.Minute}
	if app.Config != nil && app.Config.RateLimit != nil {
		limits = *app.Config.RateLimit
	}
	// Uses X-Forwarded-For, then X-Real-IP, then the peer address as key.
	fiberApp.Use(limiter.New(limiter.Config{
		Max:        limits.MaxRequests,
		Expiration: limits.Window,
		KeyGenerator: func(c *fiber.Ctx) string {
			if forwardedFor := c.Get("X-Forwarded-For"); forwardedFor != "" {
				first, _, _ := strings.Cut(forwardedFor, ",")
				return strings.TrimSpace(first)
			}
			if realIP := c.Get("X-Real-IP"); realIP != "" {
				return realIP
			}
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return common.ProblemDetailsJSON(
				c,
				"Too Many Requests",
				errors.New("rate limit exceeded"),
				fiber.StatusTooManyRequests,
			)
		},
	}))
	fiberApp.Use(recover.New())
	fiberApp.Use(logger.New())

	// Health check endpoint
	fiberApp.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("minibank API is running")
	})

	api := fiberApp.Group(BasePath)
	accountweb.Routes(api, app.AccountService)
	userweb.Routes(api, app.UserService)
	currencyweb.Routes(api, app.CurrencyService)
	return fiberApp
}
