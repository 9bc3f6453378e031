// Package config loads the run configuration for the order history
// generator from an optional YAML file plus environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// DateLayout is the layout for every date in the file.
const DateLayout = "2006-01-02"

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// Location is the store's local time zone (UTC+8, no DST).
var Location = time.FixedZone("PHT", 8*60*60)

// Config is the full run configuration.
type Config struct {
	Run         RunConfig         `yaml:"run" jsonschema_description:"Simulated date range and randomness"`
	Customers   CustomerConfig    `yaml:"customers" jsonschema_description:"Customer pool size, cohorts and segments"`
	Persistence PersistenceConfig `yaml:"persistence" jsonschema_description:"Batch writing and cleanup"`
	Data        DataConfig        `yaml:"data" jsonschema_description:"Optional geographic data files"`
}

type RunConfig struct {
	StartDate   string `yaml:"start_date" jsonschema_description:"First simulated day, YYYY-MM-DD"`
	EndDate     string `yaml:"end_date" jsonschema_description:"Last simulated day, YYYY-MM-DD"`
	RecoveryEnd string `yaml:"recovery_end" jsonschema_description:"Demand is dampened before this date, YYYY-MM-DD"`
	Seed        int64  `yaml:"seed" jsonschema_description:"Random seed; 0 derives one from the clock"`
}

// TargetRange is an inclusive range for one year's new-customer target.
type TargetRange struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

type CustomerConfig struct {
	Role                string        `yaml:"role" jsonschema_description:"Role marker identifying customer accounts"`
	EmailDomain         string        `yaml:"email_domain" jsonschema_description:"Domain for generated customer emails"`
	LoyalShare          float64       `yaml:"loyal_share" jsonschema_description:"Fraction of the pool in the loyal segment"`
	EngagedShare        float64       `yaml:"engaged_share" jsonschema_description:"Fraction of the pool in the engaged segment"`
	YearlyTargets       []TargetRange `yaml:"yearly_targets" jsonschema_description:"New-customer target per simulated year"`
	CreationDelay       time.Duration `yaml:"creation_delay" jsonschema:"type=string" jsonschema_description:"Pause between account creations, e.g. 50ms"`
	MaxCreationFailures int           `yaml:"max_creation_failures" jsonschema_description:"Consecutive creation failures before the run aborts"`
}

type PersistenceConfig struct {
	BatchSize      int           `yaml:"batch_size" jsonschema_description:"Orders per insert batch"`
	CleanupDelay   time.Duration `yaml:"cleanup_delay" jsonschema:"type=string" jsonschema_description:"Pause between orphan customer deletions"`
	CleanupOrphans bool          `yaml:"cleanup_orphans" jsonschema_description:"Delete created customers that end with zero orders"`
}

type DataConfig struct {
	BarangayDataset   string   `yaml:"barangay_dataset" jsonschema_description:"PSGC provinces/cities/barangays JSON"`
	BarangayCentroids []string `yaml:"barangay_centroids" jsonschema_description:"Centroid CSV candidates, first existing wins"`
}

// Default is the four-year run from 2022-01-01 to 2025-10-31.
func Default() *Config {
	return &Config{
		Run: RunConfig{
			StartDate:   "2022-01-01",
			EndDate:     "2025-10-31",
			RecoveryEnd: "2022-07-01",
		},
		Customers: CustomerConfig{
			Role:         "customer",
			EmailDomain:  "mail.yohanns.com",
			LoyalShare:   0.12,
			EngagedShare: 0.38,
			YearlyTargets: []TargetRange{
				{Min: 703, Max: 840},
				{Min: 1005, Max: 1260},
				{Min: 1408, Max: 1760},
				{Min: 680, Max: 960},
			},
			CreationDelay:       50 * time.Millisecond,
			MaxCreationFailures: 25,
		},
		Persistence: PersistenceConfig{
			BatchSize:      100,
			CleanupDelay:   50 * time.Millisecond,
			CleanupOrphans: true,
		},
		Data: DataConfig{
			BarangayDataset: "data/barangays-calabarzon-oriental-mindoro.json",
			BarangayCentroids: []string{
				"data/barangay-centroids-all.csv",
				"data/barangay-centroids.csv",
			},
		},
	}
}

// Load reads path over the defaults. An empty path returns the defaults.
// SEED_RANDOM_SEED overrides run.seed.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config: %w", err)
		}
	}

	if v := os.Getenv("SEED_RANDOM_SEED"); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: SEED_RANDOM_SEED %q is not an integer", ErrInvalidConfig, v)
		}
		cfg.Run.Seed = seed
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks ranges and date ordering.
func (c *Config) Validate() error {
	start, err := c.StartDate()
	if err != nil {
		return err
	}
	end, err := c.EndDate()
	if err != nil {
		return err
	}
	if end.Before(start) {
		return fmt.Errorf("%w: end_date %s is before start_date %s", ErrInvalidConfig, c.Run.EndDate, c.Run.StartDate)
	}
	if _, err := c.RecoveryEnd(); err != nil {
		return err
	}

	cc := c.Customers
	if cc.Role == "" {
		return fmt.Errorf("%w: customers.role is required", ErrInvalidConfig)
	}
	if cc.EmailDomain == "" {
		return fmt.Errorf("%w: customers.email_domain is required", ErrInvalidConfig)
	}
	if cc.LoyalShare < 0 || cc.EngagedShare < 0 || cc.LoyalShare+cc.EngagedShare > 1 {
		return fmt.Errorf("%w: segment shares must be non-negative and sum to at most 1", ErrInvalidConfig)
	}
	if len(cc.YearlyTargets) == 0 {
		return fmt.Errorf("%w: customers.yearly_targets needs at least one year", ErrInvalidConfig)
	}
	for i, t := range cc.YearlyTargets {
		if t.Min < 0 || t.Max < t.Min {
			return fmt.Errorf("%w: yearly_targets[%d] has min %d, max %d", ErrInvalidConfig, i, t.Min, t.Max)
		}
	}
	if cc.MaxCreationFailures <= 0 {
		return fmt.Errorf("%w: customers.max_creation_failures must be positive", ErrInvalidConfig)
	}
	if c.Persistence.BatchSize <= 0 {
		return fmt.Errorf("%w: persistence.batch_size must be positive", ErrInvalidConfig)
	}
	return nil
}

func parseDate(field, v string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, v, Location)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s %q: %v", ErrInvalidConfig, field, v, err)
	}
	return t, nil
}

// StartDate is midnight local time on the first simulated day.
func (c *Config) StartDate() (time.Time, error) { return parseDate("run.start_date", c.Run.StartDate) }

// EndDate is midnight local time on the last simulated day.
func (c *Config) EndDate() (time.Time, error) { return parseDate("run.end_date", c.Run.EndDate) }

// RecoveryEnd is the cutoff for the demand dampening ramp.
func (c *Config) RecoveryEnd() (time.Time, error) {
	return parseDate("run.recovery_end", c.Run.RecoveryEnd)
}
