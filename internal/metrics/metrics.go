package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	labelPrize = "prize"
	labelOp    = "op"
)

// Metric names: prize_wheel_<name>.

var (
	spinsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "prize_wheel_spins_total",
		Help: "Finished spins by awarded prize",
	}, []string{labelPrize})

	storeErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "prize_wheel_store_errors_total",
		Help: "Failed prize store calls by operation",
	}, []string{labelOp})

	spinning = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "prize_wheel_spinning",
		Help: "1 while a spin animation is running",
	})

	prizeStock = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "prize_wheel_prize_stock",
		Help: "Last known quantity per prize",
	}, []string{labelPrize})
)

func SpinFinished(prize string) {
	spinsTotal.With(prometheus.Labels{labelPrize: prize}).Inc()
}

func StoreError(op string) {
	storeErrors.With(prometheus.Labels{labelOp: op}).Inc()
}

func SetSpinning(on bool) {
	if on {
		spinning.Set(1)
		return
	}
	spinning.Set(0)
}

func SetStock(prize string, quantity int) {
	prizeStock.With(prometheus.Labels{labelPrize: prize}).Set(float64(quantity))
}
