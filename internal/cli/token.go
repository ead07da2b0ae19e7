package cli

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/trebuchet-org/tokendeploy/internal/app"
	"github.com/trebuchet-org/tokendeploy/internal/cli/render"
	"github.com/trebuchet-org/tokendeploy/internal/domain/models"
	"github.com/trebuchet-org/tokendeploy/internal/usecase"
)

// tokenFlags are shared by all token subcommands
type tokenFlags struct {
	contract string
	address  string
	signer   string
}

func (f *tokenFlags) target() usecase.TokenTarget {
	return usecase.TokenTarget{ContractName: f.contract, Address: f.address}
}

// NewTokenCmd creates the token command group
func NewTokenCmd() *cobra.Command {
	flags := &tokenFlags{}

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Read and transact with the deployed ERC-20 token",
		Long: `Read and transact with the deployed ERC-20 token.

The token address comes from the ledger of the selected network unless
--address is given. Accounts may be hex addresses or named accounts from
the active namespace (e.g. deployer).`,
	}
	cmd.PersistentFlags().StringVar(&flags.contract, "contract", usecase.DefaultTokenContract, "Ledger entry of the token")
	cmd.PersistentFlags().StringVar(&flags.address, "address", "", "Token address (overrides the ledger)")
	cmd.PersistentFlags().StringVar(&flags.signer, "signer", usecase.DefaultSignerRole, "Named account that signs transactions")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "info",
			Short: "Show name, symbol, decimals and total supply",
			Args:  cobra.NoArgs,
			RunE: runTokenCmd(func(ctx context.Context, a *app.App, r *render.TokenRenderer, args []string) error {
				info, err := a.TokenOperations.Info(ctx, flags.target())
				if err != nil {
					return err
				}
				return r.RenderInfo(info)
			}),
		},
		&cobra.Command{
			Use:   "balance <account>",
			Short: "Show the token balance of an account",
			Args:  cobra.ExactArgs(1),
			RunE: runTokenCmd(func(ctx context.Context, a *app.App, r *render.TokenRenderer, args []string) error {
				balance, err := a.TokenOperations.BalanceOf(ctx, flags.target(), args[0])
				if err != nil {
					return err
				}
				return r.RenderAmount("balance", balance)
			}),
		},
		&cobra.Command{
			Use:   "allowance <owner> <spender>",
			Short: "Show how much spender may transfer for owner",
			Args:  cobra.ExactArgs(2),
			RunE: runTokenCmd(func(ctx context.Context, a *app.App, r *render.TokenRenderer, args []string) error {
				allowance, err := a.TokenOperations.Allowance(ctx, flags.target(), args[0], args[1])
				if err != nil {
					return err
				}
				return r.RenderAmount("allowance", allowance)
			}),
		},
		newTokenTxCmd("mint <to> <amount>", "Mint tokens to an account", 2, flags,
			func(args []string, p *usecase.TokenTransferParams) { p.To, p.Amount = args[0], args[1] },
			(*usecase.TokenOperations).Mint),
		newTokenTxCmd("transfer <to> <amount>", "Transfer tokens from the signer", 2, flags,
			func(args []string, p *usecase.TokenTransferParams) { p.To, p.Amount = args[0], args[1] },
			(*usecase.TokenOperations).Transfer),
		newTokenTxCmd("approve <spender> <amount>", "Approve a spender", 2, flags,
			func(args []string, p *usecase.TokenTransferParams) { p.To, p.Amount = args[0], args[1] },
			(*usecase.TokenOperations).Approve),
		newTokenTxCmd("transfer-from <from> <to> <amount>", "Transfer tokens using the signer's allowance", 3, flags,
			func(args []string, p *usecase.TokenTransferParams) { p.From, p.To, p.Amount = args[0], args[1], args[2] },
			(*usecase.TokenOperations).TransferFrom),
		newTokenTxCmd("burn <amount>", "Burn tokens held by the signer", 1, flags,
			func(args []string, p *usecase.TokenTransferParams) { p.Amount = args[0] },
			(*usecase.TokenOperations).Burn),
	)

	return cmd
}

type tokenTxFunc func(*usecase.TokenOperations, context.Context, usecase.TokenTransferParams) (*models.TxResult, error)

func newTokenTxCmd(use, short string, nargs int, flags *tokenFlags, bind func([]string, *usecase.TokenTransferParams), run tokenTxFunc) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(nargs),
		RunE: runTokenCmd(func(ctx context.Context, a *app.App, r *render.TokenRenderer, args []string) error {
			params := usecase.TokenTransferParams{Token: flags.target(), Signer: flags.signer}
			bind(args, &params)

			result, err := run(a.TokenOperations, ctx, params)
			if err != nil {
				return err
			}
			return r.RenderTx(result)
		}),
	}
}

func runTokenCmd(fn func(ctx context.Context, a *app.App, r *render.TokenRenderer, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := getApp(cmd)
		if err != nil {
			return err
		}
		if err := requireNetwork(a); err != nil {
			return err
		}

		ctx := cmd.Context()
		if a.Config.Timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, a.Config.Timeout)
			defer cancel()
		}
		return fn(ctx, a, render.NewTokenRenderer(cmd.OutOrStdout(), a.Config.JSON), args)
	}
}
