package account

import (
	"context"

	"github.com/amirasaad/minibank/pkg/currency"
	"github.com/amirasaad/minibank/pkg/domain/account"
	"github.com/amirasaad/minibank/pkg/domain/transfer"
	"github.com/amirasaad/minibank/webapi/common"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// Service is the account behaviour the handlers need.
type Service interface {
	CreateAccount(ctx context.Context, userID string, code currency.Code, startBalance decimal.Decimal) (*account.Account, error)
	GetAccount(ctx context.Context, id string) (*account.Account, error)
	ListAccounts(ctx context.Context) ([]*account.Account, error)
	CloseAccount(ctx context.Context, id string) (bool, error)
	CalculateCommission(ctx context.Context, req transfer.Request) (decimal.Decimal, error)
	TransferMoney(ctx context.Context, req transfer.Request) (bool, error)
}

// Routes registers the account endpoints on r.
func Routes(r fiber.Router, svc Service) {
	g := r.Group("/accounts")
	g.Post("/commission", CalculateCommission(svc))
	g.Post("/transfer", TransferMoney(svc))
	g.Post("/", CreateAccount(svc))
	g.Get("/", ListAccounts(svc))
	g.Get("/:id", GetAccount(svc))
	g.Put("/:id/close", CloseAccount(svc))
}

// CreateAccount opens an account for an existing user.
// @Summary Open an account
// @Description Opens an active account in the given currency with a non-negative starting balance
// @Tags accounts
// @Accept json
// @Produce json
// @Param request body CreateAccountRequest true "Account data"
// @Success 201 {object} common.Response{data=AccountDTO}
// @Failure 400 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Failure 500 {object} common.ProblemDetails
// @Router /accounts [post]
func CreateAccount(svc Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[CreateAccountRequest](c)
		if input == nil {
			return err
		}
		code, err := currency.Parse(input.Currency)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid currency", err)
		}
		a, err := svc.CreateAccount(c.Context(), input.UserID, code, input.Balance)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to create account", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Account created", ToAccountDTO(a))
	}
}

// GetAccount returns one account.
// @Summary Get account
// @Tags accounts
// @Produce json
// @Param id path string true "Account ID"
// @Success 200 {object} common.Response{data=AccountDTO}
// @Failure 404 {object} common.ProblemDetails
// @Router /accounts/{id} [get]
func GetAccount(svc Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		a, err := svc.GetAccount(c.Context(), c.Params("id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to get account", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Account found", ToAccountDTO(a))
	}
}

// ListAccounts returns every account.
// @Summary List accounts
// @Tags accounts
// @Produce json
// @Success 200 {object} common.Response{data=[]AccountDTO}
// @Failure 500 {object} common.ProblemDetails
// @Router /accounts [get]
func ListAccounts(svc Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		accounts, err := svc.ListAccounts(c.Context())
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to list accounts", err)
		}
		dtos := make([]*AccountDTO, 0, len(accounts))
		for _, a := range accounts {
			dtos = append(dtos, ToAccountDTO(a))
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Accounts fetched", dtos)
	}
}

// CloseAccount closes an empty account.
// @Summary Close account
// @Description Closes an active account whose balance is zero
// @Tags accounts
// @Produce json
// @Param id path string true "Account ID"
// @Success 200 {object} common.Response{data=CloseResponse}
// @Failure 400 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /accounts/{id}/close [put]
func CloseAccount(svc Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		closed, err := svc.CloseAccount(c.Context(), c.Params("id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to close account", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Account closed", CloseResponse{Closed: closed})
	}
}

// CalculateCommission prices a transfer without performing it.
// @Summary Calculate transfer commission
// @Tags accounts
// @Accept json
// @Produce json
// @Param request body TransferRequest true "Transfer data"
// @Success 200 {object} common.Response{data=CommissionResponse}
// @Failure 400 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /accounts/commission [post]
func CalculateCommission(svc Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[TransferRequest](c)
		if input == nil {
			return err
		}
		commission, err := svc.CalculateCommission(c.Context(), input.toDomain())
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to calculate commission", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Commission calculated", CommissionResponse{Commission: commission})
	}
}

// TransferMoney moves money between two accounts.
// @Summary Transfer money
// @Description Debits the amount from the source and credits the destination with the converted amount net of commission
// @Tags accounts
// @Accept json
// @Produce json
// @Param request body TransferRequest true "Transfer data"
// @Success 200 {object} common.Response{data=TransferResponse}
// @Failure 400 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Failure 502 {object} common.ProblemDetails
// @Router /accounts/transfer [post]
func TransferMoney(svc Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[TransferRequest](c)
		if input == nil {
			return err
		}
		ok, err := svc.TransferMoney(c.Context(), input.toDomain())
		if err != nil {
			return common.ProblemDetailsJSON(c, "Transfer failed", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Transfer completed", TransferResponse{Transferred: ok})
	}
}
