package keeper

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// AMMMetrics holds all Prometheus metrics for the amm module
type AMMMetrics struct {
	// Swap metrics
	SwapsTotal        *prometheus.CounterVec
	SwapVolume        *prometheus.CounterVec
	SwapFeesCollected *prometheus.CounterVec
	SwapPriceImpact   prometheus.Histogram

	// Liquidity metrics
	LiquidityAdded   *prometheus.CounterVec
	LiquidityRemoved *prometheus.CounterVec
	PoolReserves     *prometheus.GaugeVec
	ShareSupply      *prometheus.GaugeVec

	// Pool metrics
	PoolsTotal       prometheus.Gauge
	PoolCreationRate prometheus.Counter

	// Fee accumulator metrics
	FeesClaimed    *prometheus.CounterVec
	FeesCompounded *prometheus.CounterVec

	// Stable curve metrics
	StableSolverIterations prometheus.Histogram
	StableSolverFailures   prometheus.Counter
}

var (
	ammMetricsOnce sync.Once
	ammMetrics     *AMMMetrics
)

// NewAMMMetrics creates and registers amm metrics (singleton pattern)
func NewAMMMetrics() *AMMMetrics {
	ammMetricsOnce.Do(func() {
		ammMetrics = &AMMMetrics{
			SwapsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "vortex",
					Subsystem: "amm",
					Name:      "swaps_total",
					Help:      "Total number of swaps executed",
				},
				[]string{"pool_id", "token_in", "token_out", "status"},
			),
			SwapVolume: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "vortex",
					Subsystem: "amm",
					Name:      "swap_volume_total",
					Help:      "Total swap volume in base units",
				},
				[]string{"pool_id", "denom"},
			),
			SwapFeesCollected: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "vortex",
					Subsystem: "amm",
					Name:      "swap_fees_collected_total",
					Help:      "Total swap fees collected in base units",
				},
				[]string{"pool_id", "denom", "destination"},
			),
			SwapPriceImpact: promauto.NewHistogram(
				prometheus.HistogramOpts{
					Namespace: "vortex",
					Subsystem: "amm",
					Name:      "swap_price_impact_bps",
					Help:      "Observed swap price impact in basis points",
					Buckets:   []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000},
				},
			),
			LiquidityAdded: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "vortex",
					Subsystem: "amm",
					Name:      "liquidity_added_total",
					Help:      "Total liquidity deposited in base units",
				},
				[]string{"pool_id", "denom"},
			),
			LiquidityRemoved: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "vortex",
					Subsystem: "amm",
					Name:      "liquidity_removed_total",
					Help:      "Total liquidity withdrawn in base units",
				},
				[]string{"pool_id", "denom"},
			),
			PoolReserves: promauto.NewGaugeVec(
				prometheus.GaugeOpts{
					Namespace: "vortex",
					Subsystem: "amm",
					Name:      "pool_reserves",
					Help:      "Current pool reserves in base units",
				},
				[]string{"pool_id", "denom"},
			),
			ShareSupply: promauto.NewGaugeVec(
				prometheus.GaugeOpts{
					Namespace: "vortex",
					Subsystem: "amm",
					Name:      "share_supply",
					Help:      "Outstanding LP shares per pool",
				},
				[]string{"pool_id"},
			),
			PoolsTotal: promauto.NewGauge(
				prometheus.GaugeOpts{
					Namespace: "vortex",
					Subsystem: "amm",
					Name:      "pools_total",
					Help:      "Number of pools in state",
				},
			),
			PoolCreationRate: promauto.NewCounter(
				prometheus.CounterOpts{
					Namespace: "vortex",
					Subsystem: "amm",
					Name:      "pool_creations_total",
					Help:      "Total number of pools created",
				},
			),
			FeesClaimed: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "vortex",
					Subsystem: "amm",
					Name:      "fees_claimed_total",
					Help:      "Total LP fees claimed in base units",
				},
				[]string{"pool_id", "denom"},
			),
			FeesCompounded: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "vortex",
					Subsystem: "amm",
					Name:      "fees_compounded_total",
					Help:      "Total LP fees reinvested in base units",
				},
				[]string{"pool_id", "denom"},
			),
			StableSolverIterations: promauto.NewHistogram(
				prometheus.HistogramOpts{
					Namespace: "vortex",
					Subsystem: "amm",
					Name:      "stable_solver_iterations",
					Help:      "Newton iterations needed for stable invariant convergence",
					Buckets:   []float64{1, 2, 4, 8, 16, 32, 64, 128, 255},
				},
			),
			StableSolverFailures: promauto.NewCounter(
				prometheus.CounterOpts{
					Namespace: "vortex",
					Subsystem: "amm",
					Name:      "stable_solver_failures_total",
					Help:      "Stable invariant solver convergence failures",
				},
			),
		}
	})
	return ammMetrics
}
