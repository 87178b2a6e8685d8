package currency

import (
	"fmt"

	"github.com/amirasaad/minibank/pkg/currency"
	"github.com/amirasaad/minibank/webapi/common"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// Routes registers HTTP routes for currency-related operations.
func Routes(r fiber.Router, converter currency.Converter) {
	g := r.Group("/currencies")
	g.Get("/", ListSupportedCurrencies())
	g.Get("/convert", Convert(converter))
}

// ListSupportedCurrencies returns all supported currency codes
// @Summary List supported currencies
// @Tags currencies
// @Produce json
// @Success 200 {object} common.Response{data=[]string}
// @Router /currencies [get]
func ListSupportedCurrencies() fiber.Handler {
	codes := make([]string, 0, len(currency.All()))
	for _, c := range currency.All() {
		codes = append(codes, c.String())
	}
	return func(c *fiber.Ctx) error {
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Supported currencies fetched successfully", codes)
	}
}

// Convert converts an amount between two supported currencies at the
// current rates.
// @Summary Convert an amount
// @Tags currencies
// @Produce json
// @Param amount query string true "Amount to convert"
// @Param from query string true "Source currency" Enums(RUB, USD, EUR)
// @Param to query string true "Target currency" Enums(RUB, USD, EUR)
// @Success 200 {object} common.Response{data=ConversionResponse}
// @Failure 400 {object} common.ProblemDetails
// @Failure 502 {object} common.ProblemDetails
// @Router /currencies/convert [get]
func Convert(converter currency.Converter) fiber.Handler {
	return func(c *fiber.Ctx) error {
		amount, err := decimal.NewFromString(c.Query("amount"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid amount", fmt.Errorf("amount: %w", err), fiber.StatusBadRequest)
		}
		from, err := currency.Parse(c.Query("from"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid source currency", err)
		}
		to, err := currency.Parse(c.Query("to"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid target currency", err)
		}

		converted, err := converter.Convert(c.Context(), amount, from, to)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Conversion failed", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Converted", ConversionResponse{
			Amount:    amount,
			From:      from.String(),
			To:        to.String(),
			Converted: converted,
		})
	}
}
