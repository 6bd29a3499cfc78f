package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := LoadForTests(map[string]string{
		"APP_ENV":                         "",
		"PORT":                            "",
		"PRICING_CONTRACTOR_DISCOUNT":     "",
		"PRICING_TAX_RATE":                "",
		"PRICING_DELIVERY_FEE":            "",
		"PRICING_FREE_DELIVERY_THRESHOLD": "",
		"NOTIFICATION_TTL":                "",
		"CART_TTL":                        "",
	})
	require.NoError(t, err)

	require.Equal(t, "development", cfg.AppEnv)
	require.Equal(t, ":8080", cfg.HTTPAddr())
	require.InDelta(t, 0.15, cfg.ContractorDiscountRate, 1e-9)
	require.InDelta(t, 0.0825, cfg.TaxRate, 1e-9)
	require.InDelta(t, 75.0, cfg.DeliveryFee, 1e-9)
	require.InDelta(t, 500.0, cfg.FreeDeliveryThreshold, 1e-9)
	require.Equal(t, 4*time.Second, cfg.NotificationTTL)
	require.Equal(t, 24*time.Hour, cfg.CartTTL)
	require.True(t, cfg.IsDevelopment())
}

func TestLoadOverrides(t *testing.T) {
	cfg, err := LoadForTests(map[string]string{
		"APP_ENV":                     "production",
		"PORT":                        "9090",
		"PRICING_CONTRACTOR_DISCOUNT": "0.2",
		"NOTIFICATION_TTL":            "10s",
		"CORS_ALLOWED_ORIGINS":        "https://a.example, https://b.example",
	})
	require.NoError(t, err)

	require.Equal(t, ":9090", cfg.HTTPAddr())
	require.False(t, cfg.IsDevelopment())
	require.InDelta(t, 0.2, cfg.ContractorDiscountRate, 1e-9)
	require.Equal(t, 10*time.Second, cfg.NotificationTTL)
	require.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
}

func TestLoadRejectsInvalidDiscount(t *testing.T) {
	_, err := LoadForTests(map[string]string{
		"PRICING_CONTRACTOR_DISCOUNT": "1.5",
	})
	require.Error(t, err)
}

func TestInvalidDurationFallsBack(t *testing.T) {
	cfg, err := LoadForTests(map[string]string{
		"PRICING_CONTRACTOR_DISCOUNT": "",
		"NOTIFICATION_TTL":            "soon",
	})
	require.NoError(t, err)
	require.Equal(t, 4*time.Second, cfg.NotificationTTL)
}
