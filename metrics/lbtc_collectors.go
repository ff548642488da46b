package metrics

import (
	"github.com/benbjohnson/clock"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/lombard-finance/lbtc-core/types"
)

const (
	kindMint   = "mint"
	kindRedeem = "redeem"
)

// LBTCMetrics turns committed program and bascule events into Prometheus
// series. It is an event sink and records rejected operations.
type LBTCMetrics struct {
	mintsTotal          prometheus.Counter
	mintedSatsTotal     prometheus.Counter
	mintFeesTotal       prometheus.Counter
	signaturesAdded     prometheus.Counter
	redeemsTotal        prometheus.Counter
	redeemedSatsTotal   prometheus.Counter
	depositsReported    prometheus.Counter
	withdrawals         *prometheus.CounterVec
	rejectedOperations  *prometheus.CounterVec
	validatorSetEpoch   prometheus.Gauge
	validatorSetSize    prometheus.Gauge
	programPaused       prometheus.Gauge
	unstakeCounter      prometheus.Gauge
	secondsSinceLastOps *prometheus.GaugeVec

	timeKeeper *TimeKeeper
}

func NewLBTCMetrics(reg prometheus.Registerer, clk clock.Clock) *LBTCMetrics {
	m := &LBTCMetrics{
		mintsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "lbtc_mints_total",
			Help: "Total number of consumed mint payloads",
		}),
		mintedSatsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "lbtc_minted_sats_total",
			Help: "Total amount minted to recipients from mint payloads",
		}),
		mintFeesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "lbtc_mint_fees_sats_total",
			Help: "Total mint fees paid to the treasury",
		}),
		signaturesAdded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "lbtc_signatures_added_total",
			Help: "Total number of validator signatures accepted",
		}),
		redeemsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "lbtc_redeems_total",
			Help: "Total number of queued unstakes",
		}),
		redeemedSatsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "lbtc_redeemed_sats_total",
			Help: "Total amount queued for unstaking",
		}),
		depositsReported: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bascule_deposits_reported_total",
			Help: "Total number of deposits reported to bascule",
		}),
		withdrawals: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bascule_withdrawals_total",
			Help: "Total number of withdrawals accepted by bascule, by outcome",
		}, []string{"outcome"}),
		rejectedOperations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "lbtc_rejected_operations_total",
			Help: "Total number of rejected operations, by operation and error category",
		}, []string{"op", "category"}),
		validatorSetEpoch: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "lbtc_validator_set_epoch",
			Help: "Epoch of the active validator set",
		}),
		validatorSetSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "lbtc_validator_set_size",
			Help: "Number of validators in the active set",
		}),
		programPaused: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "lbtc_program_paused",
			Help: "Whether the program is paused",
		}),
		unstakeCounter: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "lbtc_unstake_counter",
			Help: "Index of the next unstake entry",
		}),
		secondsSinceLastOps: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "lbtc_seconds_since_last_operation",
			Help: "Seconds since the last committed operation, by kind",
		}, []string{"kind"}),
		timeKeeper: NewTimeKeeper(clk),
	}

	reg.MustRegister(
		m.mintsTotal,
		m.mintedSatsTotal,
		m.mintFeesTotal,
		m.signaturesAdded,
		m.redeemsTotal,
		m.redeemedSatsTotal,
		m.depositsReported,
		m.withdrawals,
		m.rejectedOperations,
		m.validatorSetEpoch,
		m.validatorSetSize,
		m.programPaused,
		m.unstakeCounter,
		m.secondsSinceLastOps,
	)

	return m
}

// Publish implements types.EventSink.
func (m *LBTCMetrics) Publish(ev types.Event) {
	switch e := ev.(type) {
	case types.MintProofConsumed:
		m.mintsTotal.Inc()
		m.mintedSatsTotal.Add(float64(e.Amount))
		m.mintFeesTotal.Add(float64(e.Fee))
		m.timeKeeper.Record(kindMint)
	case types.SignaturesAdded:
		m.signaturesAdded.Add(float64(e.Added))
	case types.UnstakeRequest:
		m.redeemsTotal.Inc()
		m.redeemedSatsTotal.Add(float64(e.Amount))
		m.timeKeeper.Record(kindRedeem)
	case types.ValidatorSetUpdated:
		m.validatorSetEpoch.Set(float64(e.Epoch))
		m.validatorSetSize.Set(float64(len(e.Validators)))
	case types.PauseEnabled:
		m.programPaused.Set(boolToFloat(e.Enabled))
	case types.DepositReported:
		m.depositsReported.Inc()
	case types.WithdrawalValidated:
		m.withdrawals.WithLabelValues("validated").Inc()
	case types.WithdrawalNotValidated:
		m.withdrawals.WithLabelValues("not_validated").Inc()
	}
}

// RecordFailure counts an operation rejected with err.
func (m *LBTCMetrics) RecordFailure(op string, err error) {
	m.rejectedOperations.WithLabelValues(op, types.CategoryOf(err).String()).Inc()
}

// UpdateProgramMetrics refreshes the gauges derived from the persisted config.
func (m *LBTCMetrics) UpdateProgramMetrics(cfg *types.ProgramConfig) {
	m.validatorSetEpoch.Set(float64(cfg.ValidatorSet.Epoch))
	m.validatorSetSize.Set(float64(cfg.ValidatorSet.Size()))
	m.programPaused.Set(boolToFloat(cfg.Paused))
	m.unstakeCounter.Set(float64(cfg.UnstakeCounter))

	for _, kind := range []string{kindMint, kindRedeem} {
		if secs, ok := m.timeKeeper.SecondsSince(kind); ok {
			m.secondsSinceLastOps.WithLabelValues(kind).Set(secs)
		}
	}
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
