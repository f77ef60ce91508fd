package cli

import (
	"fmt"
	"strconv"

	"cosmossdk.io/math"
	"github.com/spf13/cobra"

	"github.com/cosmos/cosmos-sdk/client"
	"github.com/cosmos/cosmos-sdk/client/flags"
	"github.com/cosmos/cosmos-sdk/client/tx"

	"github.com/vortex-finance/vortex/x/amm/types"
)

const (
	flagFeeBps        = "fee-bps"
	flagCurve         = "curve"
	flagAmplification = "amplification"
	flagMinShares     = "min-shares"
	flagMinAmountA    = "min-amount-a"
	flagMinAmountB    = "min-amount-b"
	flagDeadline      = "deadline"
)

// GetTxCmd returns the transaction commands for the amm module
func GetTxCmd() *cobra.Command {
	ammTxCmd := &cobra.Command{
		Use:                        types.ModuleName,
		Short:                      "AMM transaction subcommands",
		DisableFlagParsing:         true,
		SuggestionsMinimumDistance: 2,
		RunE:                       client.ValidateCmd,
	}

	ammTxCmd.AddCommand(
		CmdCreatePool(),
		CmdAddLiquidity(),
		CmdRemoveLiquidity(),
		CmdSwap(),
		CmdClaimFees(),
		CmdCompoundFees(),
	)

	return ammTxCmd
}

// CmdCreatePool returns a CLI command handler for creating a liquidity pool
func CmdCreatePool() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create-pool [token-a] [amount-a] [token-b] [amount-b]",
		Short: "Create a new liquidity pool",
		Long: `Create a new liquidity pool with an initial deposit of both tokens.

Example:
  $ vortexd tx amm create-pool uvtx 1000000 uusdc 2000000 --fee-bps 30 --from mykey
  $ vortexd tx amm create-pool uusdc 1000000 uusdt 1000000 --fee-bps 5 --curve stable --amplification 100 --from mykey`,
		Args: cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			tokenA := args[0]
			tokenB := args[2]
			if tokenA == tokenB {
				return fmt.Errorf("tokens must be different")
			}

			amountA, ok := math.NewIntFromString(args[1])
			if !ok {
				return fmt.Errorf("invalid amount-a: %s (must be integer)", args[1])
			}
			amountB, ok := math.NewIntFromString(args[3])
			if !ok {
				return fmt.Errorf("invalid amount-b: %s (must be integer)", args[3])
			}

			feeBps, err := cmd.Flags().GetUint32(flagFeeBps)
			if err != nil {
				return err
			}
			curveName, err := cmd.Flags().GetString(flagCurve)
			if err != nil {
				return err
			}
			amplification, err := cmd.Flags().GetUint64(flagAmplification)
			if err != nil {
				return err
			}

			var curve types.CurveType
			switch curveName {
			case "constant-product", "":
				curve = types.CurveConstantProduct
			case "stable":
				curve = types.CurveStable
			default:
				return fmt.Errorf("unknown curve %q (use constant-product or stable)", curveName)
			}

			msg := types.NewMsgCreatePool(
				clientCtx.GetFromAddress().String(),
				tokenA, tokenB, amountA, amountB,
				feeBps, curve, amplification,
			)
			if err := msg.ValidateBasic(); err != nil {
				return err
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	cmd.Flags().Uint32(flagFeeBps, 30, "Pool fee tier in basis points")
	cmd.Flags().String(flagCurve, "constant-product", "Pricing curve: constant-product or stable")
	cmd.Flags().Uint64(flagAmplification, 0, "Amplification coefficient (stable pools only)")
	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdAddLiquidity returns a CLI command handler for adding liquidity to a pool
func CmdAddLiquidity() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add-liquidity [pool-id] [amount-a] [amount-b]",
		Short: "Add liquidity to an existing pool",
		Long: `Add liquidity to an existing pool by depositing both tokens proportionally.

Amounts beyond the pool ratio are clipped; deposits far from the ratio are rejected.

Example:
  $ vortexd tx amm add-liquidity 1 1000000 2000000 --min-shares 900000 --from mykey`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			poolID, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid pool ID: %w", err)
			}
			amountA, ok := math.NewIntFromString(args[1])
			if !ok {
				return fmt.Errorf("invalid amount-a: %s (must be integer)", args[1])
			}
			amountB, ok := math.NewIntFromString(args[2])
			if !ok {
				return fmt.Errorf("invalid amount-b: %s (must be integer)", args[2])
			}

			minSharesStr, err := cmd.Flags().GetString(flagMinShares)
			if err != nil {
				return err
			}
			minShares, ok := math.NewIntFromString(minSharesStr)
			if !ok {
				return fmt.Errorf("invalid min-shares: %s (must be integer)", minSharesStr)
			}

			msg := types.NewMsgAddLiquidity(
				clientCtx.GetFromAddress().String(),
				poolID, amountA, amountB, minShares,
			)
			if err := msg.ValidateBasic(); err != nil {
				return err
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	cmd.Flags().String(flagMinShares, "0", "Minimum shares to accept")
	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdRemoveLiquidity returns a CLI command handler for removing liquidity
func CmdRemoveLiquidity() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove-liquidity [pool-id] [shares]",
		Short: "Burn shares for a proportional withdrawal",
		Long: `Burn LP shares for a proportional withdrawal of both pool tokens.
Closing the position entirely also pays out all settled fees.

Example:
  $ vortexd tx amm remove-liquidity 1 500000 --min-amount-a 400000 --min-amount-b 800000 --from mykey`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			poolID, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid pool ID: %w", err)
			}
			shares, ok := math.NewIntFromString(args[1])
			if !ok {
				return fmt.Errorf("invalid shares: %s (must be integer)", args[1])
			}

			minAStr, err := cmd.Flags().GetString(flagMinAmountA)
			if err != nil {
				return err
			}
			minA, ok := math.NewIntFromString(minAStr)
			if !ok {
				return fmt.Errorf("invalid min-amount-a: %s (must be integer)", minAStr)
			}
			minBStr, err := cmd.Flags().GetString(flagMinAmountB)
			if err != nil {
				return err
			}
			minB, ok := math.NewIntFromString(minBStr)
			if !ok {
				return fmt.Errorf("invalid min-amount-b: %s (must be integer)", minBStr)
			}

			msg := types.NewMsgRemoveLiquidity(
				clientCtx.GetFromAddress().String(),
				poolID, shares, minA, minB,
			)
			if err := msg.ValidateBasic(); err != nil {
				return err
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	cmd.Flags().String(flagMinAmountA, "0", "Minimum amount of token A to accept")
	cmd.Flags().String(flagMinAmountB, "0", "Minimum amount of token B to accept")
	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdSwap returns a CLI command handler for executing a swap
func CmdSwap() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "swap [pool-id] [token-in] [amount-in] [token-out] [min-amount-out]",
		Short: "Swap an exact input amount for the other pool token",
		Long: `Swap an exact amount of one pool token for the other, subject to a
minimum output and an optional unix-timestamp deadline.

Example:
  $ vortexd tx amm swap 1 uvtx 1000000 uusdc 1990000 --from mykey
  $ vortexd tx amm swap 1 uvtx 1000000 uusdc 1990000 --deadline 1735689600 --from mykey`,
		Args: cobra.ExactArgs(5),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			poolID, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid pool ID: %w", err)
			}
			amountIn, ok := math.NewIntFromString(args[2])
			if !ok {
				return fmt.Errorf("invalid amount-in: %s (must be integer)", args[2])
			}
			minOut, ok := math.NewIntFromString(args[4])
			if !ok {
				return fmt.Errorf("invalid min-amount-out: %s (must be integer)", args[4])
			}

			deadline, err := cmd.Flags().GetInt64(flagDeadline)
			if err != nil {
				return err
			}

			msg := types.NewMsgSwap(
				clientCtx.GetFromAddress().String(),
				poolID, args[1], args[3], amountIn, minOut, deadline,
			)
			if err := msg.ValidateBasic(); err != nil {
				return err
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	cmd.Flags().Int64(flagDeadline, 0, "Unix timestamp after which the swap fails (0 = no deadline)")
	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdClaimFees returns a CLI command handler for claiming accrued fees
func CmdClaimFees() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "claim-fees [pool-id]",
		Short: "Claim accrued LP fees from a pool",
		Long: `Settle and pay out the swap fees accrued by your position in a pool.

Example:
  $ vortexd tx amm claim-fees 1 --from mykey`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			poolID, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid pool ID: %w", err)
			}

			msg := types.NewMsgClaimFees(clientCtx.GetFromAddress().String(), poolID)
			if err := msg.ValidateBasic(); err != nil {
				return err
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdCompoundFees returns a CLI command handler for compounding accrued fees
func CmdCompoundFees() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compound-fees [pool-id]",
		Short: "Reinvest accrued LP fees as additional liquidity",
		Long: `Settle your position's accrued fees and reinvest as much as fits the
pool's current ratio; the remainder stays claimable.

Example:
  $ vortexd tx amm compound-fees 1 --from mykey`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			poolID, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid pool ID: %w", err)
			}

			msg := types.NewMsgCompoundFees(clientCtx.GetFromAddress().String(), poolID)
			if err := msg.ValidateBasic(); err != nil {
				return err
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}
