package config

import (
	"log"
	"strings"

	"github.com/spf13/viper"

	"github.com/SmileyChris/worshipwise-sub003/internal/engine"
)

type Config struct {
	Server struct {
		Port              string `mapstructure:"port"`
		MetricsPort       string `mapstructure:"metrics_port"`
		LogLevel          string `mapstructure:"log_level"`
		DefaultChurchID   uint   `mapstructure:"default_church_id"`
		DefaultHemisphere string `mapstructure:"default_hemisphere"`
		SeedDemoData      bool   `mapstructure:"seed_demo_data"`
	} `mapstructure:"server"`
	Database struct {
		Host     string `mapstructure:"host"`
		Port     string `mapstructure:"port"`
		User     string `mapstructure:"user"`
		Password string `mapstructure:"password"`
		Name     string `mapstructure:"name"`
	} `mapstructure:"database"`
	Engine engine.Config `mapstructure:"engine"`
}

func Load() *Config {
	viper.SetEnvPrefix("WORSHIP")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Register keys
	viper.BindEnv("server.port")
	viper.BindEnv("server.metrics_port")
	viper.BindEnv("server.log_level")
	viper.BindEnv("server.default_church_id")
	viper.BindEnv("server.default_hemisphere")
	viper.BindEnv("server.seed_demo_data")

	// Register Database keys
	viper.BindEnv("database.host")
	viper.BindEnv("database.port")
	viper.BindEnv("database.user")
	viper.BindEnv("database.password")
	viper.BindEnv("database.name")

	// Server Defaults
	viper.SetDefault("server.port", ":8081")
	viper.SetDefault("server.metrics_port", ":9091")
	viper.SetDefault("server.log_level", "info")
	viper.SetDefault("server.default_church_id", 1)
	viper.SetDefault("server.default_hemisphere", "northern")
	viper.SetDefault("server.seed_demo_data", false)

	// Engine Defaults (every analytics threshold is tunable per deployment)
	def := engine.DefaultConfig()
	viper.SetDefault("engine.min_days_between_use", def.MinDaysBetweenUse)
	viper.SetDefault("engine.caution_threshold_days", def.CautionThresholdDays)
	viper.SetDefault("engine.new_song_boost", def.NewSongBoost)
	viper.SetDefault("engine.max_uses_per_quarter", def.MaxUsesPerQuarter)
	viper.SetDefault("engine.ideal_tempo_ratio.fast", def.IdealTempoRatio.Fast)
	viper.SetDefault("engine.ideal_tempo_ratio.medium", def.IdealTempoRatio.Medium)
	viper.SetDefault("engine.ideal_tempo_ratio.slow", def.IdealTempoRatio.Slow)
	viper.SetDefault("engine.tempo_medium_min_bpm", def.TempoMediumMinBPM)
	viper.SetDefault("engine.tempo_medium_max_bpm", def.TempoMediumMaxBPM)
	viper.SetDefault("engine.tempo_jump_threshold_bpm", def.TempoJumpThresholdBPM)
	viper.SetDefault("engine.balance_tolerance_pct", def.BalanceTolerancePct)
	viper.SetDefault("engine.min_seasonal_records", def.MinSeasonalRecords)
	viper.SetDefault("engine.exclude_recent_days", def.ExcludeRecentDays)
	viper.SetDefault("engine.result_limit", def.ResultLimit)
	viper.SetDefault("engine.familiar_use_count", def.FamiliarUseCount)
	viper.SetDefault("engine.optimal_score_low", def.OptimalScoreLow)
	viper.SetDefault("engine.optimal_score_high", def.OptimalScoreHigh)
	viper.SetDefault("engine.rotation_health_weights.recency", def.RotationHealthWeights.Recency)
	viper.SetDefault("engine.rotation_health_weights.key_diversity", def.RotationHealthWeights.KeyDiversity)
	viper.SetDefault("engine.rotation_health_weights.tempo_diversity", def.RotationHealthWeights.TempoDiversity)

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("../")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Printf("Warning: Config error: %s", err)
		} else {
			log.Println("Info: config.yaml not found, using Environment Variables only.")
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		log.Fatalf("Unable to decode config: %v", err)
	}

	// Bad analytics thresholds are programmer/deployment errors;
	// refuse to start rather than produce silently-wrong scores.
	if err := cfg.Engine.Validate(); err != nil {
		log.Fatalf("Critical: %v", err)
	}

	return &cfg
}

// Hemisphere maps the configured default onto the engine type.
func (c *Config) Hemisphere() engine.Hemisphere {
	if strings.EqualFold(c.Server.DefaultHemisphere, "southern") {
		return engine.HemisphereSouth
	}
	return engine.HemisphereNorth
}
