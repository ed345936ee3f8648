package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Toggle results.
const (
	ResultChanged = "changed"
	ResultNoop    = "noop"
)

// RelationToggles counts follow/favorite toggles by outcome. A "noop" is a
// toggle that found the relation already in the requested state.
var RelationToggles = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "microposts_relation_toggles_total",
		Help: "Total number of follow/favorite toggles by relation, action and result",
	},
	[]string{"relation", "action", "result"},
)

func init() {
	prometheus.MustRegister(RelationToggles)
}

// ObserveToggle records one toggle of relation ("follow", "favorite") with
// action ("add", "remove").
func ObserveToggle(relation, action string, changed bool) {
	result := ResultNoop
	if changed {
		result = ResultChanged
	}
	RelationToggles.WithLabelValues(relation, action, result).Inc()
}

// Handler serves the default Prometheus registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
