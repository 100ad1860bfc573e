package config

// ResourceLimiterConfig defines thresholds for the resource monitor that
// guards parallel clip extraction
type ResourceLimiterConfig struct {
	Enabled              bool    `json:"enabled" yaml:"enabled"`
	MaxMemoryMB          int64   `json:"max_memory_mb,omitempty" yaml:"max_memory_mb,omitempty"`
	SystemMemThreshold   float64 `json:"system_mem_threshold,omitempty" yaml:"system_mem_threshold,omitempty"`
	CPUThreshold         float64 `json:"cpu_threshold,omitempty" yaml:"cpu_threshold,omitempty"`
	CheckIntervalSeconds int     `json:"check_interval_seconds,omitempty" yaml:"check_interval_seconds,omitempty"`
}

// NewDefaultResourceLimiterConfig creates default resource limiter configuration
func NewDefaultResourceLimiterConfig() ResourceLimiterConfig {
	return ResourceLimiterConfig{
		Enabled:              true,
		MaxMemoryMB:          2048,
		SystemMemThreshold:   0.9,
		CPUThreshold:         0.9,
		CheckIntervalSeconds: 30,
	}
}
