package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

const FileName = "fakeshop.config.json"

type Config struct {
	Database  Database  `json:"database" mapstructure:"database"`
	Log       Log       `json:"log" mapstructure:"log"`
	Generator Generator `json:"generator" mapstructure:"generator"`
	Products  Products  `json:"products" mapstructure:"products"`
	Export    Export    `json:"export" mapstructure:"export"`
	API       API       `json:"api" mapstructure:"api"`
}

type Database struct {
	Provider string `json:"provider" mapstructure:"provider"`
	URLEnv   string `json:"url_env" mapstructure:"url_env"`
	// Driver selects the postgres driver: "pgx" or "pq".
	Driver string `json:"driver,omitempty" mapstructure:"driver"`
}

type Log struct {
	Mode  string `json:"mode" mapstructure:"mode"`
	Level string `json:"level" mapstructure:"level"`
}

type Generator struct {
	Seed                  int64    `json:"seed,omitempty" mapstructure:"seed"`
	Locales               []string `json:"locales" mapstructure:"locales"`
	MaxItemsPerOrder      int      `json:"max_items_per_order" mapstructure:"max_items_per_order"`
	OrdersMin             int      `json:"orders_min" mapstructure:"orders_min"`
	OrdersMax             int      `json:"orders_max" mapstructure:"orders_max"`
	ReturningUserRatioMax float64  `json:"returning_user_ratio_max" mapstructure:"returning_user_ratio_max"`
	PopularityMultiplier  float64  `json:"popularity_multiplier" mapstructure:"popularity_multiplier"`
	BasketScaling         float64  `json:"basket_scaling" mapstructure:"basket_scaling"`
	// Profile is an optional YAML run profile, see LoadProfile.
	Profile string `json:"profile,omitempty" mapstructure:"profile"`
}

type Products struct {
	LabelPrefixes  []string `json:"label_prefixes" mapstructure:"label_prefixes"`
	PreorderWeeks  int      `json:"preorder_weeks" mapstructure:"preorder_weeks"`
	Pricing        []string `json:"pricing" mapstructure:"pricing"`
	ItemsMin       int      `json:"items_min" mapstructure:"items_min"`
	ItemsMax       int      `json:"items_max" mapstructure:"items_max"`
	ReleaseWeekday string   `json:"release_weekday" mapstructure:"release_weekday"`
}

type Export struct {
	Local        bool   `json:"local" mapstructure:"local"`
	LocalDir     string `json:"local_dir" mapstructure:"local_dir"`
	CloudStorage bool   `json:"cloud_storage" mapstructure:"cloud_storage"`
	Bucket       string `json:"bucket,omitempty" mapstructure:"bucket"`
	// EmulatorHost points the storage client at a local emulator.
	EmulatorHost string `json:"emulator_host,omitempty" mapstructure:"emulator_host"`
	Kafka        Kafka  `json:"kafka" mapstructure:"kafka"`
	MessyData    bool   `json:"messy_data" mapstructure:"messy_data"`
}

type Kafka struct {
	Brokers string `json:"brokers,omitempty" mapstructure:"brokers"`
	Topic   string `json:"topic,omitempty" mapstructure:"topic"`
}

type API struct {
	Port        int           `json:"port" mapstructure:"port"`
	RedisURLEnv string        `json:"redis_url_env" mapstructure:"redis_url_env"`
	CacheTTL    time.Duration `json:"cache_ttl" mapstructure:"cache_ttl"`
}

var (
	DefaultLocales  = []string{"en_GB", "en_US", "fr_FR", "en_CA", "de_DE", "es_ES", "it_IT", "nl_NL"}
	DefaultPrefixes = []string{"LCR", "SUMO", "STDR", "KALA", "GAS", "PIL"}
	DefaultPricing  = []string{"18.00", "19.00", "20.00", "21.00"}
)

func Load() (*Config, error) {
	var cfg Config

	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.Database.Provider == "" {
		cfg.Database.Provider = "postgresql"
	}
	if cfg.Database.URLEnv == "" {
		cfg.Database.URLEnv = "DATABASE_URL"
	}
	if cfg.Log.Mode == "" {
		cfg.Log.Mode = "dev"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}

	g := &cfg.Generator
	if len(g.Locales) == 0 {
		g.Locales = append([]string(nil), DefaultLocales...)
	}
	if g.MaxItemsPerOrder == 0 {
		g.MaxItemsPerOrder = 7
	}
	if g.OrdersMin == 0 {
		g.OrdersMin = 3
	}
	if g.OrdersMax == 0 {
		g.OrdersMax = 300
	}
	if g.ReturningUserRatioMax == 0 {
		g.ReturningUserRatioMax = 0.1
	}
	if g.PopularityMultiplier == 0 {
		g.PopularityMultiplier = 1.5
	}
	if g.BasketScaling == 0 {
		g.BasketScaling = 0.6
	}

	p := &cfg.Products
	if len(p.LabelPrefixes) == 0 {
		p.LabelPrefixes = append([]string(nil), DefaultPrefixes...)
	}
	if len(p.Pricing) == 0 {
		p.Pricing = append([]string(nil), DefaultPricing...)
	}
	if p.ItemsMin == 0 {
		p.ItemsMin = 1
	}
	if p.ItemsMax == 0 {
		p.ItemsMax = 6
	}
	if p.ReleaseWeekday == "" {
		p.ReleaseWeekday = "wednesday"
	}

	if !viper.IsSet("export.local") {
		cfg.Export.Local = true
	}
	if cfg.Export.LocalDir == "" {
		cfg.Export.LocalDir = "reports"
	}
	if cfg.Export.Bucket == "" {
		cfg.Export.Bucket = os.Getenv("STORAGE_BUCKET_NAME")
	}

	if cfg.API.Port == 0 {
		cfg.API.Port = 8080
	}
	if cfg.API.RedisURLEnv == "" {
		cfg.API.RedisURLEnv = "REDIS_URL"
	}
	if cfg.API.CacheTTL == 0 {
		cfg.API.CacheTTL = time.Minute
	}

	return &cfg, nil
}

func (c *Config) GetDatabaseURL() (string, error) {
	dbURL := os.Getenv(c.Database.URLEnv)
	if dbURL == "" {
		return "", fmt.Errorf("database URL not found in environment variable %s", c.Database.URLEnv)
	}
	return dbURL, nil
}

// GetRedisURL returns "" when response caching is disabled.
func (c *Config) GetRedisURL() string {
	return os.Getenv(c.API.RedisURLEnv)
}

func (c *Config) Validate() error {
	supportedProviders := []string{"postgresql", "postgres", "mysql", "sqlite", "sqlite3"}
	supported := false
	for _, provider := range supportedProviders {
		if c.Database.Provider == provider {
			supported = true
			break
		}
	}
	if !supported {
		return fmt.Errorf("unsupported database provider: %s. Supported providers: %v", c.Database.Provider, supportedProviders)
	}

	switch c.Database.Driver {
	case "", "pgx", "pq", "postgres":
	default:
		return fmt.Errorf("unsupported database driver: %s", c.Database.Driver)
	}

	g := c.Generator
	for name, v := range map[string]int{
		"generator.max_items_per_order": g.MaxItemsPerOrder,
		"generator.orders_min":          g.OrdersMin,
		"generator.orders_max":          g.OrdersMax,
		"products.items_max":            c.Products.ItemsMax,
	} {
		if v <= 0 {
			return fmt.Errorf("%s must be greater than zero, got %d", name, v)
		}
	}
	if g.OrdersMin > g.OrdersMax {
		return fmt.Errorf("generator.orders_min (%d) is greater than generator.orders_max (%d)", g.OrdersMin, g.OrdersMax)
	}
	if c.Products.ItemsMin < 0 || c.Products.ItemsMin > c.Products.ItemsMax {
		return fmt.Errorf("invalid products.items range [%d, %d]", c.Products.ItemsMin, c.Products.ItemsMax)
	}
	if c.Products.PreorderWeeks < 0 {
		return fmt.Errorf("products.preorder_weeks cannot be negative")
	}
	if g.ReturningUserRatioMax < 0 || g.ReturningUserRatioMax > 1 {
		return fmt.Errorf("generator.returning_user_ratio_max must be within [0, 1], got %v", g.ReturningUserRatioMax)
	}

	if _, err := c.PricingDecimals(); err != nil {
		return err
	}
	if _, err := c.ReleaseWeekday(); err != nil {
		return err
	}

	if c.Export.Local && c.Export.LocalDir == "" {
		return fmt.Errorf("export.local_dir cannot be empty")
	}
	if c.Export.CloudStorage && c.Export.Bucket == "" {
		return fmt.Errorf("export.bucket is required when cloud_storage is enabled")
	}
	if c.Export.Kafka.Brokers != "" && c.Export.Kafka.Topic == "" {
		return fmt.Errorf("export.kafka.topic is required when brokers are set")
	}

	return nil
}

func (c *Config) PricingDecimals() ([]decimal.Decimal, error) {
	if len(c.Products.Pricing) == 0 {
		return nil, fmt.Errorf("products.pricing cannot be empty")
	}
	out := make([]decimal.Decimal, 0, len(c.Products.Pricing))
	for _, raw := range c.Products.Pricing {
		d, err := decimal.NewFromString(strings.TrimSpace(raw))
		if err != nil {
			return nil, fmt.Errorf("invalid price %q in products.pricing: %w", raw, err)
		}
		if !d.IsPositive() {
			return nil, fmt.Errorf("products.pricing must hold positive prices, got %s", raw)
		}
		out = append(out, d)
	}
	return out, nil
}

var weekdays = map[string]time.Weekday{
	"sunday": time.Sunday, "monday": time.Monday, "tuesday": time.Tuesday,
	"wednesday": time.Wednesday, "thursday": time.Thursday, "friday": time.Friday,
	"saturday": time.Saturday,
}

func (c *Config) ReleaseWeekday() (time.Weekday, error) {
	d, ok := weekdays[strings.ToLower(strings.TrimSpace(c.Products.ReleaseWeekday))]
	if !ok {
		return 0, fmt.Errorf("invalid products.release_weekday: %q", c.Products.ReleaseWeekday)
	}
	return d, nil
}

// StoreProvider maps the provider to the store name; dry runs use memory.
func (c *Config) StoreProvider(dryRun bool) string {
	if dryRun {
		return "memory"
	}
	return c.Database.Provider
}
