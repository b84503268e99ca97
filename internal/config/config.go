package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/Simplici0/orderdesk/internal/catalog"
)

const (
	defaultEnv      = "development"
	defaultPort     = "8080"
	defaultCurrency = "₹"
)

// Config holds application configuration.
type Config struct {
	Env                string
	Port               string
	Log                LogConfig
	StrictGarmentTypes bool
	CurrencySymbol     string
	AddOns             AddOnPrices
}

// LogConfig selects the zap preset and level.
type LogConfig struct {
	Level  string
	Format string
}

// AddOnPrices overrides default option prices, keyed by option key.
type AddOnPrices struct {
	Printing  map[string]string
	Collar    map[string]string
	TrackPant map[string]string
}

// IsDev reports whether the server runs in development mode.
func (c Config) IsDev() bool {
	return c.Env == "" || c.Env == defaultEnv
}

// Load reads .env, then orderdesk.yaml from ./ or ./configs, then
// ORDERDESK_* environment variables.
func Load() (Config, error) {
	return load(".env", ".", "./configs")
}

func load(dotenvPath string, searchPaths ...string) (Config, error) {
	// Best-effort: production should use real env injection.
	if err := loadDotEnv(dotenvPath); err != nil {
		return Config{}, err
	}

	v := viper.New()
	v.SetConfigName("orderdesk")
	v.SetConfigType("yaml")
	for _, p := range searchPaths {
		v.AddConfigPath(p)
	}

	v.SetEnvPrefix("ORDERDESK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("port", "ORDERDESK_PORT", "PORT"); err != nil {
		return Config{}, fmt.Errorf("bind port env: %w", err)
	}

	v.SetDefault("env", defaultEnv)
	v.SetDefault("port", defaultPort)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("strict_garment_types", false)
	v.SetDefault("currency_symbol", defaultCurrency)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	return Config{
		Env:  v.GetString("env"),
		Port: v.GetString("port"),
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
		},
		StrictGarmentTypes: v.GetBool("strict_garment_types"),
		CurrencySymbol:     v.GetString("currency_symbol"),
		AddOns: AddOnPrices{
			Printing:  v.GetStringMapString("addons.printing"),
			Collar:    v.GetStringMapString("addons.collar"),
			TrackPant: v.GetStringMapString("addons.track_pant"),
		},
	}, nil
}

// Definitions returns the default catalog with configured prices applied.
// Override keys that match no option are returned as "group.key".
func (c Config) Definitions() (catalog.Definitions, []string) {
	defs := catalog.DefaultDefinitions()
	var unknown []string

	overrides := []struct {
		group  catalog.Group
		prices map[string]string
	}{
		{catalog.Printing, c.AddOns.Printing},
		{catalog.Collar, c.AddOns.Collar},
		{catalog.TrackPant, c.AddOns.TrackPant},
	}
	for _, o := range overrides {
		if len(o.prices) == 0 {
			continue
		}
		var missing []string
		defs, missing = defs.WithPrices(o.group, o.prices)
		for _, key := range missing {
			unknown = append(unknown, o.group.String()+"."+key)
		}
	}
	return defs, unknown
}
