package metrics

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	OrdersCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "shop_orders_created_total",
		Help: "Nombre de commandes créées",
	})

	OrderTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "shop_order_transitions_total",
		Help: "Transitions de statut de commande",
	}, []string{"status"})

	OrdersDeleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "shop_orders_deleted_total",
		Help: "Commandes supprimées avant confirmation",
	})
)

// Handler expose /metrics au format Prometheus
func Handler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
