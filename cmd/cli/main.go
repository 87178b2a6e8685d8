package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/amirasaad/minibank/infra/initializer"
	"github.com/amirasaad/minibank/pkg/app"
	"github.com/amirasaad/minibank/pkg/config"
	"github.com/amirasaad/minibank/pkg/currency"
	"github.com/amirasaad/minibank/pkg/domain/transfer"
	"github.com/shopspring/decimal"
)

const usage = `Usage: cli <command> <amount> <from> <to>
Commands:
  commission <amount> <from_account_id> <to_account_id>
  transfer   <amount> <from_account_id> <to_account_id>
  convert    <amount> <from_currency> <to_currency>`

var errUsage = errors.New(usage)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if len(os.Args) != 5 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}
	cfg, err := config.Load(".env")
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed to load configuration:", err)
		os.Exit(1)
	}
	deps, err := initializer.InitializeDependencies(ctx, cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed to initialize dependencies:", err)
		os.Exit(1)
	}
	if err := run(ctx, app.New(deps, cfg), os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, a *app.App, args []string, out io.Writer) error {
	if len(args) != 4 {
		return errUsage
	}
	amount, err := decimal.NewFromString(args[1])
	if err != nil {
		return fmt.Errorf("invalid amount %q: %w", args[1], err)
	}

	switch args[0] {
	case "commission":
		req := transfer.Request{Amount: amount, FromAccountID: args[2], ToAccountID: args[3]}
		commission, err := a.AccountService.CalculateCommission(ctx, req)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(out, "Commission: %s\n", commission.StringFixed(2))
		return err
	case "transfer":
		req := transfer.Request{Amount: amount, FromAccountID: args[2], ToAccountID: args[3]}
		if _, err := a.AccountService.TransferMoney(ctx, req); err != nil {
			return err
		}
		_, err = fmt.Fprintf(out, "Transferred %s from %s to %s\n", amount, args[2], args[3])
		return err
	case "convert":
		from, err := currency.Parse(args[2])
		if err != nil {
			return err
		}
		to, err := currency.Parse(args[3])
		if err != nil {
			return err
		}
		converted, err := a.CurrencyService.Convert(ctx, amount, from, to)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(out, "%s %s = %s %s\n", amount, from, converted.StringFixed(2), to)
		return err
	default:
		return errUsage
	}
}
