package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/frudas24/cursorclip/internal/confine"
	"github.com/frudas24/cursorclip/internal/geometry"
	"github.com/frudas24/cursorclip/internal/visibility"
	"gopkg.in/yaml.v3"
)

// Tuning holds the classification thresholds.
type Tuning struct {
	Geometry        geometry.Thresholds
	RegionTolerance int
	Visibility      visibility.Options
}

// DefaultTuning returns the built-in thresholds.
func DefaultTuning() Tuning {
	return Tuning{
		Geometry:        geometry.DefaultThresholds(),
		RegionTolerance: confine.DefaultRegionTolerance,
		Visibility:      visibility.DefaultOptions(),
	}
}

// tuningFile is the on-disk shape; absent keys keep their defaults.
type tuningFile struct {
	EdgeTolerance      *int     `yaml:"edgeTolerance"`
	AreaCoverage       *float64 `yaml:"areaCoverage"`
	ClientSlop         *int     `yaml:"clientSlop"`
	ClientRetries      *int     `yaml:"clientRetries"`
	ClientRetryDelayMs *int     `yaml:"clientRetryDelayMs"`
	RegionTolerance    *int     `yaml:"regionTolerance"`
	SampleGrid         *int     `yaml:"sampleGrid"`
	SampleCoverage     *float64 `yaml:"sampleCoverage"`
}

// LoadTuning reads threshold overrides from path. A missing file yields the
// defaults. Out-of-range fields are rejected one by one with a warning.
func LoadTuning(path string) (Tuning, error) {
	t := DefaultTuning()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return t, nil
		}
		return t, fmt.Errorf("read tuning: %w", err)
	}
	var f tuningFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return t, fmt.Errorf("parse tuning %s: %w", path, err)
	}

	setInt(&t.Geometry.EdgeTolerance, f.EdgeTolerance, "edgeTolerance", 0, 200)
	setFloat(&t.Geometry.AreaCoverage, f.AreaCoverage, "areaCoverage")
	setInt(&t.Geometry.ClientSlop, f.ClientSlop, "clientSlop", 0, 200)
	setInt(&t.Geometry.ClientRetries, f.ClientRetries, "clientRetries", 1, 10)
	if f.ClientRetryDelayMs != nil {
		ms := int(t.Geometry.ClientRetryDelay / time.Millisecond)
		setInt(&ms, f.ClientRetryDelayMs, "clientRetryDelayMs", 0, 50)
		t.Geometry.ClientRetryDelay = time.Duration(ms) * time.Millisecond
	}
	setInt(&t.RegionTolerance, f.RegionTolerance, "regionTolerance", 0, 50)
	setInt(&t.Visibility.Grid, f.SampleGrid, "sampleGrid", 1, 20)
	setFloat(&t.Visibility.Coverage, f.SampleCoverage, "sampleCoverage")
	return t, nil
}

// setInt applies v to dst when present and within [lo, hi].
func setInt(dst *int, v *int, name string, lo, hi int) {
	if v == nil {
		return
	}
	if *v < lo || *v > hi {
		log.Printf("config: tuning %s=%d out of range [%d,%d], using %d", name, *v, lo, hi, *dst)
		return
	}
	*dst = *v
}

// setFloat applies a fraction in (0, 1] when present.
func setFloat(dst *float64, v *float64, name string) {
	if v == nil {
		return
	}
	if *v <= 0 || *v > 1 {
		log.Printf("config: tuning %s=%g out of range (0,1], using %g", name, *v, *dst)
		return
	}
	*dst = *v
}
