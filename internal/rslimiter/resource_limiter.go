package rslimiter

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/aleister1102/uidiff/internal/config"
	"github.com/rs/zerolog"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// ResourceLimiter watches memory and CPU while clip extraction workers run.
// It throttles the worker pool under pressure and can trigger a graceful
// shutdown when hard limits are exceeded.
type ResourceLimiter struct {
	config           config.ResourceLimiterConfig
	checkInterval    time.Duration
	logger           zerolog.Logger
	ctx              context.Context
	cancel           context.CancelFunc
	wg               sync.WaitGroup
	isRunning        bool
	mu               sync.RWMutex
	shutdownCallback func()
}

// NewResourceLimiter creates a new resource limiter
func NewResourceLimiter(cfg config.ResourceLimiterConfig, logger zerolog.Logger) *ResourceLimiter {
	ctx, cancel := context.WithCancel(context.Background())

	// Apply default values for any zero-value fields in the config
	if cfg.CheckIntervalSeconds <= 0 {
		cfg.CheckIntervalSeconds = 30
	}
	if cfg.MaxMemoryMB <= 0 {
		cfg.MaxMemoryMB = 2048
	}
	if cfg.SystemMemThreshold == 0 {
		cfg.SystemMemThreshold = 0.9
	}
	if cfg.CPUThreshold == 0 {
		cfg.CPUThreshold = 0.9
	}

	return &ResourceLimiter{
		config:        cfg,
		checkInterval: time.Duration(cfg.CheckIntervalSeconds) * time.Second,
		logger:        logger.With().Str("component", "ResourceLimiter").Logger(),
		ctx:           ctx,
		cancel:        cancel,
	}
}

// SetShutdownCallback sets the callback function for graceful shutdown
func (rl *ResourceLimiter) SetShutdownCallback(callback func()) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	rl.shutdownCallback = callback
}

// Start begins monitoring resource usage
func (rl *ResourceLimiter) Start() {
	rl.mu.Lock()
	if rl.isRunning {
		rl.mu.Unlock()
		return
	}
	rl.isRunning = true
	rl.mu.Unlock()

	rl.wg.Add(1)
	go rl.monitorResources()

	rl.logger.Info().
		Int64("max_memory_mb", rl.config.MaxMemoryMB).
		Dur("check_interval", rl.checkInterval).
		Float64("system_mem_threshold", rl.config.SystemMemThreshold).
		Float64("cpu_threshold", rl.config.CPUThreshold).
		Msg("Resource limiter started")
}

// Stop stops the resource monitor
func (rl *ResourceLimiter) Stop() {
	rl.mu.Lock()
	if !rl.isRunning {
		rl.mu.Unlock()
		return
	}
	rl.isRunning = false
	rl.mu.Unlock()

	rl.cancel()
	rl.wg.Wait()
	rl.logger.Info().Msg("Resource limiter stopped")
}

// AdjustWorkerCount returns the number of extraction workers to actually run.
// Under memory or CPU pressure the requested count is halved, never below one.
func (rl *ResourceLimiter) AdjustWorkerCount(requested int) int {
	if requested <= 1 || !rl.config.Enabled {
		if requested < 1 {
			return 1
		}
		return requested
	}

	memExceeded, _ := rl.CheckSystemMemoryLimit()
	cpuExceeded, _ := rl.CheckCPULimit()
	if memExceeded || cpuExceeded {
		adjusted := requested / 2
		if adjusted < 1 {
			adjusted = 1
		}
		rl.logger.Warn().
			Int("requested", requested).
			Int("adjusted", adjusted).
			Msg("Reducing extraction workers due to resource pressure")
		return adjusted
	}

	return requested
}

// CheckMemoryLimit checks if current memory usage exceeds limit
func (rl *ResourceLimiter) CheckMemoryLimit() error {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	currentMB := int64(m.Alloc / 1024 / 1024)

	if currentMB > rl.config.MaxMemoryMB {
		return fmt.Errorf("memory limit exceeded: current %dMB > limit %dMB", currentMB, rl.config.MaxMemoryMB)
	}

	return nil
}

// CheckSystemMemoryLimit checks if system memory usage exceeds threshold
func (rl *ResourceLimiter) CheckSystemMemoryLimit() (bool, error) {
	vmStat, err := mem.VirtualMemory()
	if err != nil {
		return false, fmt.Errorf("failed to get system memory stats: %w", err)
	}

	usedPercent := vmStat.UsedPercent / 100.0

	if usedPercent > rl.config.SystemMemThreshold {
		rl.logger.Warn().
			Float64("used_percent", usedPercent*100).
			Float64("threshold_percent", rl.config.SystemMemThreshold*100).
			Uint64("used_mb", vmStat.Used/1024/1024).
			Uint64("total_mb", vmStat.Total/1024/1024).
			Msg("System memory usage exceeded threshold")
		return true, nil
	}

	return false, nil
}

// CheckCPULimit checks if CPU usage exceeds threshold
func (rl *ResourceLimiter) CheckCPULimit() (bool, error) {
	cpuPercents, err := cpu.Percent(time.Second, false)
	if err != nil {
		return false, fmt.Errorf("failed to get CPU usage: %w", err)
	}

	if len(cpuPercents) == 0 {
		return false, fmt.Errorf("no CPU usage data available")
	}

	cpuUsage := cpuPercents[0] / 100.0

	if cpuUsage > rl.config.CPUThreshold {
		rl.logger.Warn().
			Float64("cpu_usage_percent", cpuUsage*100).
			Float64("threshold_percent", rl.config.CPUThreshold*100).
			Msg("CPU usage exceeded threshold")
		return true, nil
	}

	return false, nil
}

// monitorResources runs the resource monitoring loop
func (rl *ResourceLimiter) monitorResources() {
	defer rl.wg.Done()

	ticker := time.NewTicker(rl.checkInterval)
	defer ticker.Stop()

	for {
		select {
		case <-rl.ctx.Done():
			return
		case <-ticker.C:
			rl.checkAndLogResourceUsage()
		}
	}
}

// checkAndLogResourceUsage checks current resource usage and logs warnings/errors
func (rl *ResourceLimiter) checkAndLogResourceUsage() {
	usage := GetResourceUsage()

	if err := rl.CheckMemoryLimit(); err != nil {
		rl.logger.Error().
			Err(err).
			Int64("alloc_mb", usage.AllocMB).
			Float64("system_mem_percent", usage.SystemMemUsedPercent).
			Msg("Memory limit exceeded, triggering graceful shutdown")
		rl.triggerGracefulShutdown()
		return
	}

	rl.logger.Debug().
		Int64("alloc_mb", usage.AllocMB).
		Int64("sys_mb", usage.SysMB).
		Int("goroutines", usage.Goroutines).
		Int64("gc_count", usage.GCCount).
		Float64("system_mem_percent", usage.SystemMemUsedPercent).
		Float64("cpu_percent", usage.CPUUsagePercent).
		Msg("Current resource usage")
}

// triggerGracefulShutdown calls the shutdown callback if set
func (rl *ResourceLimiter) triggerGracefulShutdown() {
	rl.mu.RLock()
	callback := rl.shutdownCallback
	rl.mu.RUnlock()

	if callback != nil {
		rl.logger.Info().Msg("Calling shutdown callback due to resource limits")
		callback()
	} else {
		rl.logger.Warn().Msg("No shutdown callback set, cannot trigger graceful shutdown")
	}
}
