package obs

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	domainOnce sync.Once

	// CartOpsTotal counts cart mutations by operation.
	CartOpsTotal *prometheus.CounterVec
	// ScreenViewsTotal counts navigation transitions by target screen.
	ScreenViewsTotal *prometheus.CounterVec
	// QuoteSubmissionsTotal counts submitted quote requests.
	QuoteSubmissionsTotal prometheus.Counter
	// ApplicationsTotal counts received business-account applications.
	ApplicationsTotal prometheus.Counter
	// NotificationsShownTotal counts toast notifications shown.
	NotificationsShownTotal prometheus.Counter
	// ProductLookupsTotal counts product lookups by result.
	ProductLookupsTotal *prometheus.CounterVec
)

// MustRegisterDomainMetrics initialises and registers domain-specific Prometheus collectors.
func MustRegisterDomainMetrics(namespace string, reg prometheus.Registerer) {
	domainOnce.Do(func() {
		if reg == nil {
			reg = prometheus.DefaultRegisterer
		}
		CartOpsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cart_ops_total",
			Help:      "Count of cart mutations by operation.",
		}, []string{"op"})
		ScreenViewsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "screen_views_total",
			Help:      "Count of navigation transitions by target screen.",
		}, []string{"screen"})
		QuoteSubmissionsTotal = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "quote_submissions_total",
			Help:      "Total number of submitted quote requests.",
		})
		ApplicationsTotal = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "business_applications_total",
			Help:      "Total number of received business-account applications.",
		})
		NotificationsShownTotal = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_shown_total",
			Help:      "Total number of toast notifications shown.",
		})
		ProductLookupsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "product_lookups_total",
			Help:      "Count of product lookups by result.",
		}, []string{"result"})

		mustRegisterCollector(reg, CartOpsTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.CounterVec); ok {
				CartOpsTotal = v
			}
		})
		mustRegisterCollector(reg, ScreenViewsTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.CounterVec); ok {
				ScreenViewsTotal = v
			}
		})
		mustRegisterCollector(reg, QuoteSubmissionsTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(prometheus.Counter); ok {
				QuoteSubmissionsTotal = v
			}
		})
		mustRegisterCollector(reg, ApplicationsTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(prometheus.Counter); ok {
				ApplicationsTotal = v
			}
		})
		mustRegisterCollector(reg, NotificationsShownTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(prometheus.Counter); ok {
				NotificationsShownTotal = v
			}
		})
		mustRegisterCollector(reg, ProductLookupsTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.CounterVec); ok {
				ProductLookupsTotal = v
			}
		})
	})
}

// ObserveScreenView increments the screen view counter if metrics are registered.
func ObserveScreenView(screen string) {
	if ScreenViewsTotal != nil {
		ScreenViewsTotal.WithLabelValues(screen).Inc()
	}
}

// ObserveProductLookup increments the product lookup counter if metrics are registered.
func ObserveProductLookup(result string) {
	if ProductLookupsTotal != nil {
		ProductLookupsTotal.WithLabelValues(result).Inc()
	}
}

// ObserveNotificationShown increments the notification counter if metrics are registered.
func ObserveNotificationShown() {
	if NotificationsShownTotal != nil {
		NotificationsShownTotal.Inc()
	}
}

func mustRegisterCollector(reg prometheus.Registerer, collector prometheus.Collector, replace func(prometheus.Collector)) {
	if err := reg.Register(collector); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			replace(are.ExistingCollector)
			return
		}
		panic(err)
	}
}
