package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"cosmossdk.io/math"
	"github.com/spf13/cobra"

	"github.com/cosmos/cosmos-sdk/client"
	"github.com/cosmos/cosmos-sdk/client/flags"

	"github.com/vortex-finance/vortex/x/amm/types"
)

// GetQueryCmd returns the cli query commands for the amm module
func GetQueryCmd() *cobra.Command {
	ammQueryCmd := &cobra.Command{
		Use:                        types.ModuleName,
		Short:                      "Querying commands for the amm module",
		DisableFlagParsing:         true,
		SuggestionsMinimumDistance: 2,
		RunE:                       client.ValidateCmd,
	}

	ammQueryCmd.AddCommand(
		GetCmdQueryParams(),
		GetCmdQueryPool(),
		GetCmdQueryPools(),
		GetCmdQueryPoolByTokens(),
		GetCmdQueryPosition(),
		GetCmdQuerySimulateSwap(),
		GetCmdQuerySpotPrice(),
	)

	return ammQueryCmd
}

// printJSON renders a query response as indented JSON. Responses are
// hand-written structs, so plain JSON is the output codec.
func printJSON(clientCtx client.Context, v interface{}) error {
	bz, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return clientCtx.PrintString(string(bz) + "\n")
}

// GetCmdQueryParams returns the command to query module parameters
func GetCmdQueryParams() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "params",
		Short: "Query the current amm module parameters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientQueryContext(cmd)
			if err != nil {
				return err
			}

			queryClient := types.NewQueryClient(clientCtx)
			res, err := queryClient.Params(context.Background(), &types.QueryParamsRequest{})
			if err != nil {
				return err
			}
			return printJSON(clientCtx, res)
		},
	}

	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}

// GetCmdQueryPool returns the command to query a pool by ID
func GetCmdQueryPool() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pool [pool-id]",
		Short: "Query a liquidity pool by ID",
		Long: `Query detailed information about a liquidity pool by its ID.

Example:
  $ vortexd query amm pool 1`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientQueryContext(cmd)
			if err != nil {
				return err
			}

			poolID, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid pool ID: %w", err)
			}

			queryClient := types.NewQueryClient(clientCtx)
			res, err := queryClient.Pool(context.Background(), &types.QueryPoolRequest{PoolId: poolID})
			if err != nil {
				return err
			}
			return printJSON(clientCtx, res)
		},
	}

	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}

// GetCmdQueryPools returns the command to list pools
func GetCmdQueryPools() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pools",
		Short: "List all liquidity pools",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientQueryContext(cmd)
			if err != nil {
				return err
			}

			pageReq, err := client.ReadPageRequest(cmd.Flags())
			if err != nil {
				return err
			}

			queryClient := types.NewQueryClient(clientCtx)
			res, err := queryClient.Pools(context.Background(), &types.QueryPoolsRequest{Pagination: pageReq})
			if err != nil {
				return err
			}
			return printJSON(clientCtx, res)
		},
	}

	flags.AddQueryFlagsToCmd(cmd)
	flags.AddPaginationFlagsToCmd(cmd, "pools")
	return cmd
}

// GetCmdQueryPoolByTokens returns the command to query a pool by pair and tier
func GetCmdQueryPoolByTokens() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pool-by-tokens [token-a] [token-b] [fee-bps]",
		Short: "Query a pool by token pair and fee tier",
		Long: `Query a pool by its token pair and fee tier. Token order does not matter.

Example:
  $ vortexd query amm pool-by-tokens uvtx uusdc 30`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientQueryContext(cmd)
			if err != nil {
				return err
			}

			feeBps, err := strconv.ParseUint(args[2], 10, 32)
			if err != nil {
				return fmt.Errorf("invalid fee-bps: %w", err)
			}

			queryClient := types.NewQueryClient(clientCtx)
			res, err := queryClient.PoolByTokens(context.Background(), &types.QueryPoolByTokensRequest{
				TokenA: args[0],
				TokenB: args[1],
				FeeBps: uint32(feeBps),
			})
			if err != nil {
				return err
			}
			return printJSON(clientCtx, res)
		},
	}

	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}

// GetCmdQueryPosition returns the command to query a provider's position
func GetCmdQueryPosition() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "position [pool-id] [owner]",
		Short: "Query a liquidity position with its pending fees",
		Long: `Query a provider's position in a pool, including fees that would be
claimable right now and the position's share of the pool.

Example:
  $ vortexd query amm position 1 vortex1...`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientQueryContext(cmd)
			if err != nil {
				return err
			}

			poolID, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid pool ID: %w", err)
			}

			queryClient := types.NewQueryClient(clientCtx)
			res, err := queryClient.Position(context.Background(), &types.QueryPositionRequest{
				PoolId: poolID,
				Owner:  args[1],
			})
			if err != nil {
				return err
			}
			return printJSON(clientCtx, res)
		},
	}

	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}

// GetCmdQuerySimulateSwap returns the command to quote a swap
func GetCmdQuerySimulateSwap() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "simulate-swap [pool-id] [token-in] [amount-in]",
		Short: "Quote a swap without executing it",
		Long: `Quote the output, fee and price impact of a swap against current
reserves without touching state.

Example:
  $ vortexd query amm simulate-swap 1 uvtx 1000000`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientQueryContext(cmd)
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

			queryClient := types.NewQueryClient(clientCtx)
			res, err := queryClient.SimulateSwap(context.Background(), &types.QuerySimulateSwapRequest{
				PoolId:   poolID,
				TokenIn:  args[1],
				AmountIn: amountIn,
			})
			if err != nil {
				return err
			}
			return printJSON(clientCtx, res)
		},
	}

	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}

// GetCmdQuerySpotPrice returns the command to query a pool's spot price
func GetCmdQuerySpotPrice() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "spot-price [pool-id] [base-token]",
		Short: "Query the instantaneous pool price of a token",
		Long: `Query the current price of base-token in units of the other pool token.

Example:
  $ vortexd query amm spot-price 1 uvtx`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientQueryContext(cmd)
			if err != nil {
				return err
			}

			poolID, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid pool ID: %w", err)
			}

			queryClient := types.NewQueryClient(clientCtx)
			res, err := queryClient.SpotPrice(context.Background(), &types.QuerySpotPriceRequest{
				PoolId:    poolID,
				BaseToken: args[1],
			})
			if err != nil {
				return err
			}
			return printJSON(clientCtx, res)
		},
	}

	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}
