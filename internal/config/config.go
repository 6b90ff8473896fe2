// Package config provides configuration types and defaults for sprintplan.
package config

// Config holds all configuration for sprintplan.
type Config struct {
	Planner     PlannerConfig     `yaml:"planner" mapstructure:"planner"`
	Scheduler   SchedulerConfig   `yaml:"scheduler" mapstructure:"scheduler"`
	Report      ReportConfig      `yaml:"report" mapstructure:"report"`
	LogRotation LogRotationConfig `yaml:"log_rotation" mapstructure:"log_rotation"`
}

// PlannerConfig holds priority-ordering settings.
type PlannerConfig struct {
	Memoize bool `yaml:"memoize" mapstructure:"memoize"` // cache closure aggregates per ticket
}

// SchedulerConfig holds simulation settings.
type SchedulerConfig struct {
	// MaxIterations is a safety budget for the simulation loop; the
	// no-progress check normally fires long before it is reached.
	MaxIterations int `yaml:"max_iterations" mapstructure:"max_iterations"`
}

// ReportConfig holds schedule output settings.
type ReportConfig struct {
	Marker string `yaml:"marker" mapstructure:"marker"` // occupancy cell marker
	Format string `yaml:"format" mapstructure:"format"` // "table" or "csv"
}

// LogRotationConfig holds settings for log file rotation (lumberjack-based,
// used when logging to a file).
type LogRotationConfig struct {
	MaxSizeMB  int  `yaml:"max_size_mb" mapstructure:"max_size_mb"`
	MaxBackups int  `yaml:"max_backups" mapstructure:"max_backups"`
	MaxAgeDays int  `yaml:"max_age_days" mapstructure:"max_age_days"`
	Compress   bool `yaml:"compress" mapstructure:"compress"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Planner: PlannerConfig{
			Memoize: true,
		},
		Scheduler: SchedulerConfig{
			MaxIterations: 1_000_000,
		},
		Report: ReportConfig{
			Marker: "X",
			Format: "table",
		},
		LogRotation: LogRotationConfig{
			MaxSizeMB:  100,
			MaxBackups: 3,
			MaxAgeDays: 7,
			Compress:   true,
		},
	}
}
