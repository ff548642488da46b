package metrics_test

import (
	"strings"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/prometheus/client_golang/prometheus"
	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/lombard-finance/lbtc-core/metrics"
	"github.com/lombard-finance/lbtc-core/types"
)

func TestLBTCMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	clk := clock.NewMock()
	m := metrics.NewLBTCMetrics(reg, clk)

	types.Events{
		types.MintProofConsumed{Amount: 997, Fee: 3},
		types.SignaturesAdded{Added: 4},
		types.UnstakeRequest{Amount: 990},
		types.WithdrawalValidated{},
		types.WithdrawalNotValidated{},
		types.WithdrawalNotValidated{},
		types.ValidatorSetUpdated{Epoch: 3, Validators: make([]types.ValidatorPubKey, 5)},
	}.PublishTo(m)
	m.RecordFailure("redeem", types.ErrBelowDustLimit)
	m.RecordFailure("redeem", types.ErrPaused)

	clk.Add(90 * time.Second)
	m.UpdateProgramMetrics(&types.ProgramConfig{
		Paused:         true,
		UnstakeCounter: 1,
		ValidatorSet:   types.ValidatorSet{Epoch: 3, Validators: make([]types.ValidatorPubKey, 5)},
	})

	expected := `
# HELP bascule_withdrawals_total Total number of withdrawals accepted by bascule, by outcome
# TYPE bascule_withdrawals_total counter
bascule_withdrawals_total{outcome="not_validated"} 2
bascule_withdrawals_total{outcome="validated"} 1
# HELP lbtc_rejected_operations_total Total number of rejected operations, by operation and error category
# TYPE lbtc_rejected_operations_total counter
lbtc_rejected_operations_total{category="StateError",op="redeem"} 1
lbtc_rejected_operations_total{category="ValidationError",op="redeem"} 1
# HELP lbtc_seconds_since_last_operation Seconds since the last committed operation, by kind
# TYPE lbtc_seconds_since_last_operation gauge
lbtc_seconds_since_last_operation{kind="mint"} 90
lbtc_seconds_since_last_operation{kind="redeem"} 90
`
	err := promtestutil.GatherAndCompare(reg, strings.NewReader(expected),
		"bascule_withdrawals_total",
		"lbtc_rejected_operations_total",
		"lbtc_seconds_since_last_operation",
	)
	require.NoError(t, err)

	count, err := promtestutil.GatherAndCount(reg, "lbtc_minted_sats_total", "lbtc_validator_set_epoch", "lbtc_program_paused")
	require.NoError(t, err)
	require.Equal(t, 3, count)
}

func TestConfigAddress(t *testing.T) {
	cfg := metrics.DefaultLBTCConfig()
	addr, err := cfg.Address()
	require.NoError(t, err)
	require.Equal(t, "127.0.0.1:2112", addr)

	cfg.Host = "not-an-ip"
	_, err = cfg.Address()
	require.Error(t, err)
}
