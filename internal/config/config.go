package config

import (
	"delivery-dispatch-service/internal/domain"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Get returns the environment value for key, or fallback when unset or blank.
func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func GetInt(key string, fallback int) int {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func GetFloat(key string, fallback float64) float64 {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

// Dispatch holds the fleet and intake settings for a scheduling run.
type Dispatch struct {
	Trucks           int     `yaml:"trucks"`
	Capacity         int     `yaml:"capacity"`
	SpeedMPH         float64 `yaml:"speed_mph"`
	StartOfDay       string  `yaml:"start_of_day"`
	Hub              string  `yaml:"hub"`
	CorrectionTime   string  `yaml:"correction_time"`
	CorrectedAddress string  `yaml:"corrected_address"`
}

func DefaultDispatch() Dispatch {
	return Dispatch{
		Trucks:           2,
		Capacity:         domain.DefaultTruckCapacity,
		SpeedMPH:         domain.DefaultSpeedMPH,
		StartOfDay:       "8:00 am",
		Hub:              domain.HubAddress,
		CorrectionTime:   "10:20 am",
		CorrectedAddress: domain.DefaultCorrectedAddress,
	}
}

// LoadDispatch reads settings from a YAML file over the defaults, then applies
// DISPATCH_* environment overrides. An empty path skips the file.
func LoadDispatch(path string) (Dispatch, error) {
	cfg := DefaultDispatch()

	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return Dispatch{}, fmt.Errorf("load dispatch config: read %q: %w", path, err)
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return Dispatch{}, fmt.Errorf("load dispatch config: parse %q: %w", path, err)
		}
	}

	cfg.Trucks = GetInt("DISPATCH_TRUCKS", cfg.Trucks)
	cfg.Capacity = GetInt("DISPATCH_CAPACITY", cfg.Capacity)
	cfg.SpeedMPH = GetFloat("DISPATCH_SPEED_MPH", cfg.SpeedMPH)
	cfg.StartOfDay = Get("DISPATCH_START_OF_DAY", cfg.StartOfDay)
	cfg.Hub = Get("DISPATCH_HUB", cfg.Hub)
	cfg.CorrectionTime = Get("DISPATCH_CORRECTION_TIME", cfg.CorrectionTime)
	cfg.CorrectedAddress = Get("DISPATCH_CORRECTED_ADDRESS", cfg.CorrectedAddress)

	if err := cfg.Validate(); err != nil {
		return Dispatch{}, fmt.Errorf("load dispatch config: %w", err)
	}
	return cfg, nil
}

func (c Dispatch) Validate() error {
	if c.Trucks <= 0 {
		return fmt.Errorf("trucks must be positive, got %d", c.Trucks)
	}
	if c.Capacity <= 0 {
		return fmt.Errorf("capacity must be positive, got %d", c.Capacity)
	}
	if c.SpeedMPH <= 0 {
		return fmt.Errorf("speed_mph must be positive, got %v", c.SpeedMPH)
	}
	if strings.TrimSpace(c.Hub) == "" {
		return errors.New("hub must not be empty")
	}
	if strings.TrimSpace(c.CorrectedAddress) == "" {
		return errors.New("corrected_address must not be empty")
	}
	if _, err := domain.ParseClock(c.StartOfDay); err != nil {
		return fmt.Errorf("start_of_day: %w", err)
	}
	if _, err := domain.ParseClock(c.CorrectionTime); err != nil {
		return fmt.Errorf("correction_time: %w", err)
	}
	return nil
}

// TruckSpec converts the settings into the per-truck characteristics.
func (c Dispatch) TruckSpec() (domain.TruckSpec, error) {
	start, err := domain.ParseClock(c.StartOfDay)
	if err != nil {
		return domain.TruckSpec{}, fmt.Errorf("truck spec: start_of_day: %w", err)
	}
	return domain.TruckSpec{
		Capacity:   c.Capacity,
		SpeedMPH:   c.SpeedMPH,
		StartOfDay: start,
		Hub:        domain.LocationOf(c.Hub),
	}, nil
}

// Intake converts the settings into the rules applied to package records.
func (c Dispatch) Intake() (domain.Intake, error) {
	start, err := domain.ParseClock(c.StartOfDay)
	if err != nil {
		return domain.Intake{}, fmt.Errorf("intake: start_of_day: %w", err)
	}
	correction, err := domain.ParseClock(c.CorrectionTime)
	if err != nil {
		return domain.Intake{}, fmt.Errorf("intake: correction_time: %w", err)
	}
	return domain.Intake{
		StartOfDay:       start,
		CorrectionTime:   correction,
		CorrectedAddress: c.CorrectedAddress,
	}, nil
}
