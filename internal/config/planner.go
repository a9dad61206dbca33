package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/banshee-data/zhop/internal/units"
)

// DefaultConfigPath is the path to the canonical planner defaults file.
const DefaultConfigPath = "config/planner.defaults.json"

// PlannerConfig is the root configuration of the travel planner: machine
// limits shared by every extruder plus the per-extruder lift settings.
// Feedrates are in FeedrateUnits (mm/s by default), accelerations in mm/s²,
// jerk in mm/s, lengths in mm, angles in degrees.
type PlannerConfig struct {
	GCodeFlavor   *string `json:"gcode_flavor,omitempty"`
	FeedrateUnits *string `json:"feedrate_units,omitempty"`

	// Machine limits
	MaxFeedrateX          *float64 `json:"machine_max_feedrate_x,omitempty"`
	MaxFeedrateY          *float64 `json:"machine_max_feedrate_y,omitempty"`
	MaxFeedrateZ          *float64 `json:"machine_max_feedrate_z,omitempty"`
	MaxAccelerationTravel *float64 `json:"machine_max_acceleration_travel,omitempty"`
	MaxAccelerationZ      *float64 `json:"machine_max_acceleration_z,omitempty"`
	MaxJerkZ              *float64 `json:"machine_max_jerk_z,omitempty"`

	// Resampling and scheduling
	MinPointSpacing *float64 `json:"min_point_spacing,omitempty"`
	Workers         *int     `json:"workers,omitempty"`

	Extruders []ExtruderConfig `json:"extruders,omitempty"`
}

// ExtruderConfig holds the lift settings of one extruder.
type ExtruderConfig struct {
	RetractLift        *float64 `json:"retract_lift,omitempty"`
	RetractLiftAbove   *float64 `json:"retract_lift_above,omitempty"`
	RetractLiftBelow   *float64 `json:"retract_lift_below,omitempty"` // 0 = no upper bound
	TravelRampingLift  *bool    `json:"travel_ramping_lift,omitempty"`
	TravelMaxLift      *float64 `json:"travel_max_lift,omitempty"`
	TravelSlope        *float64 `json:"travel_slope,omitempty"`
	LiftBeforeObstacle *bool    `json:"travel_lift_before_obstacle,omitempty"`
}

// Kinematics are the machine limits the lift smoothing is sized from.
// Feedrates are always in mm/s.
type Kinematics struct {
	Flavor                GCodeFlavor
	MaxFeedrateX          float64
	MaxFeedrateY          float64
	MaxFeedrateZ          float64
	MaxAccelerationTravel float64
	MaxAccelerationZ      float64
	MaxJerkZ              float64
}

// Helper functions to create pointers
func ptrFloat64(v float64) *float64 { return &v }
func ptrBool(v bool) *bool          { return &v }
func ptrString(v string) *string    { return &v }
func ptrInt(v int) *int             { return &v }

// EmptyPlannerConfig returns a PlannerConfig with all fields set to nil.
func EmptyPlannerConfig() *PlannerConfig {
	return &PlannerConfig{}
}

// DefaultPlannerConfig returns a config with every field set to its
// default, with a single extruder.
func DefaultPlannerConfig() *PlannerConfig {
	empty := EmptyPlannerConfig()
	ext := &ExtruderConfig{}
	return &PlannerConfig{
		GCodeFlavor:           ptrString(string(empty.GetGCodeFlavor())),
		FeedrateUnits:         ptrString(empty.GetFeedrateUnits()),
		MaxFeedrateX:          ptrFloat64(empty.GetMaxFeedrateX()),
		MaxFeedrateY:          ptrFloat64(empty.GetMaxFeedrateY()),
		MaxFeedrateZ:          ptrFloat64(empty.GetMaxFeedrateZ()),
		MaxAccelerationTravel: ptrFloat64(empty.GetMaxAccelerationTravel()),
		MaxAccelerationZ:      ptrFloat64(empty.GetMaxAccelerationZ()),
		MaxJerkZ:              ptrFloat64(empty.GetMaxJerkZ()),
		MinPointSpacing:       ptrFloat64(empty.GetMinPointSpacing()),
		Workers:               ptrInt(empty.GetWorkers()),
		Extruders: []ExtruderConfig{{
			RetractLift:        ptrFloat64(ext.GetRetractLift()),
			RetractLiftAbove:   ptrFloat64(ext.GetRetractLiftAbove()),
			RetractLiftBelow:   ptrFloat64(ext.GetRetractLiftBelow()),
			TravelRampingLift:  ptrBool(ext.GetTravelRampingLift()),
			TravelMaxLift:      ptrFloat64(ext.GetTravelMaxLift()),
			TravelSlope:        ptrFloat64(ext.GetTravelSlope()),
			LiftBeforeObstacle: ptrBool(ext.GetLiftBeforeObstacle()),
		}},
	}
}

// LoadPlannerConfig loads a PlannerConfig from a JSON file.
// The file must have a .json extension and be under 1MB. Fields omitted
// from the file fall back to their defaults through the Get* methods.
func LoadPlannerConfig(path string) (*PlannerConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := EmptyPlannerConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// MustLoadDefaultConfig loads the canonical defaults from DefaultConfigPath,
// searching the current directory and its parents. Panics if the file
// cannot be loaded; intended for test setup.
func MustLoadDefaultConfig() *PlannerConfig {
	candidates := []string{
		DefaultConfigPath,
		"../../" + DefaultConfigPath,       // from internal/config/
		"../../../" + DefaultConfigPath,    // from cmd/travelplan/
		"../../../../" + DefaultConfigPath, // deeper packages
	}
	for _, path := range candidates {
		if cfg, err := LoadPlannerConfig(path); err == nil {
			return cfg
		}
	}
	panic("cannot find " + DefaultConfigPath + " - run tests from repository root")
}

// Validate checks that the configuration values are valid.
func (c *PlannerConfig) Validate() error {
	if c.GCodeFlavor != nil {
		if _, err := ParseFlavor(*c.GCodeFlavor); err != nil {
			return err
		}
	}
	if c.FeedrateUnits != nil && !units.IsValid(*c.FeedrateUnits) {
		return fmt.Errorf("feedrate_units must be one of %s, got %q", units.GetValidUnitsString(), *c.FeedrateUnits)
	}

	positive := []struct {
		name string
		v    *float64
	}{
		{"machine_max_feedrate_x", c.MaxFeedrateX},
		{"machine_max_feedrate_y", c.MaxFeedrateY},
		{"machine_max_feedrate_z", c.MaxFeedrateZ},
		{"machine_max_acceleration_travel", c.MaxAccelerationTravel},
		{"machine_max_acceleration_z", c.MaxAccelerationZ},
		{"machine_max_jerk_z", c.MaxJerkZ},
	}
	for _, p := range positive {
		if p.v != nil && *p.v <= 0 {
			return fmt.Errorf("%s must be positive, got %f", p.name, *p.v)
		}
	}

	if c.MinPointSpacing != nil && *c.MinPointSpacing < 0 {
		return fmt.Errorf("min_point_spacing must be non-negative, got %f", *c.MinPointSpacing)
	}
	if c.Workers != nil && *c.Workers < 0 {
		return fmt.Errorf("workers must be non-negative, got %d", *c.Workers)
	}

	for i := range c.Extruders {
		if err := c.Extruders[i].Validate(); err != nil {
			return fmt.Errorf("extruder %d: %w", i, err)
		}
	}
	return nil
}

// Validate checks one extruder's lift settings.
func (e *ExtruderConfig) Validate() error {
	nonNegative := []struct {
		name string
		v    *float64
	}{
		{"retract_lift", e.RetractLift},
		{"retract_lift_above", e.RetractLiftAbove},
		{"retract_lift_below", e.RetractLiftBelow},
		{"travel_max_lift", e.TravelMaxLift},
	}
	for _, p := range nonNegative {
		if p.v != nil && *p.v < 0 {
			return fmt.Errorf("%s must be non-negative, got %f", p.name, *p.v)
		}
	}

	if e.TravelSlope != nil && (*e.TravelSlope < 0 || *e.TravelSlope > 90) {
		return fmt.Errorf("travel_slope must be between 0 and 90 degrees, got %f", *e.TravelSlope)
	}
	if e.RetractLiftBelow != nil && *e.RetractLiftBelow > 0 &&
		*e.RetractLiftBelow < e.GetRetractLiftAbove() {
		return fmt.Errorf("retract_lift_below (%f) is below retract_lift_above (%f)",
			*e.RetractLiftBelow, e.GetRetractLiftAbove())
	}
	return nil
}

// Extruder returns the settings of extruder idx. Extruders missing from
// the file use the defaults.
func (c *PlannerConfig) Extruder(idx int) *ExtruderConfig {
	if idx < 0 || idx >= len(c.Extruders) {
		return &ExtruderConfig{}
	}
	return &c.Extruders[idx]
}

// Kinematics returns the machine limits with defaults applied.
func (c *PlannerConfig) Kinematics() Kinematics {
	fu := c.GetFeedrateUnits()
	return Kinematics{
		Flavor:                c.GetGCodeFlavor(),
		MaxFeedrateX:          units.ToMMPerSec(c.GetMaxFeedrateX(), fu),
		MaxFeedrateY:          units.ToMMPerSec(c.GetMaxFeedrateY(), fu),
		MaxFeedrateZ:          units.ToMMPerSec(c.GetMaxFeedrateZ(), fu),
		MaxAccelerationTravel: c.GetMaxAccelerationTravel(),
		MaxAccelerationZ:      c.GetMaxAccelerationZ(),
		MaxJerkZ:              c.GetMaxJerkZ(),
	}
}

// GetFeedrateUnits returns the feedrate_units value or mm/s.
func (c *PlannerConfig) GetFeedrateUnits() string {
	if c.FeedrateUnits == nil {
		return units.MMPerSec
	}
	return *c.FeedrateUnits
}

// GetGCodeFlavor returns the gcode_flavor value or the default. An
// unparseable value falls back to FlavorMarlinLegacy, which disables lift
// smoothing; Validate reports it as an error.
func (c *PlannerConfig) GetGCodeFlavor() GCodeFlavor {
	if c.GCodeFlavor == nil {
		return FlavorMarlin2
	}
	f, err := ParseFlavor(*c.GCodeFlavor)
	if err != nil {
		return FlavorMarlinLegacy
	}
	return f
}

// GetMaxFeedrateX returns the machine_max_feedrate_x value or the default.
func (c *PlannerConfig) GetMaxFeedrateX() float64 {
	if c.MaxFeedrateX == nil {
		return 200
	}
	return *c.MaxFeedrateX
}

// GetMaxFeedrateY returns the machine_max_feedrate_y value or the default.
func (c *PlannerConfig) GetMaxFeedrateY() float64 {
	if c.MaxFeedrateY == nil {
		return 200
	}
	return *c.MaxFeedrateY
}

// GetMaxFeedrateZ returns the machine_max_feedrate_z value or the default.
func (c *PlannerConfig) GetMaxFeedrateZ() float64 {
	if c.MaxFeedrateZ == nil {
		return 12
	}
	return *c.MaxFeedrateZ
}

// GetMaxAccelerationTravel returns the machine_max_acceleration_travel value or the default.
func (c *PlannerConfig) GetMaxAccelerationTravel() float64 {
	if c.MaxAccelerationTravel == nil {
		return 1250
	}
	return *c.MaxAccelerationTravel
}

// GetMaxAccelerationZ returns the machine_max_acceleration_z value or the default.
func (c *PlannerConfig) GetMaxAccelerationZ() float64 {
	if c.MaxAccelerationZ == nil {
		return 200
	}
	return *c.MaxAccelerationZ
}

// GetMaxJerkZ returns the machine_max_jerk_z value or the default.
func (c *PlannerConfig) GetMaxJerkZ() float64 {
	if c.MaxJerkZ == nil {
		return 2
	}
	return *c.MaxJerkZ
}

// GetMinPointSpacing returns the min_point_spacing value or the default.
func (c *PlannerConfig) GetMinPointSpacing() float64 {
	if c.MinPointSpacing == nil {
		return 0.01
	}
	return *c.MinPointSpacing
}

// GetWorkers returns the workers value or the default. Zero means one
// worker per CPU.
func (c *PlannerConfig) GetWorkers() int {
	if c.Workers == nil || *c.Workers == 0 {
		return runtime.GOMAXPROCS(0)
	}
	return *c.Workers
}

// GetRetractLift returns the retract_lift value or the default.
func (e *ExtruderConfig) GetRetractLift() float64 {
	if e.RetractLift == nil {
		return 0.2
	}
	return *e.RetractLift
}

// GetRetractLiftAbove returns the retract_lift_above value or the default.
func (e *ExtruderConfig) GetRetractLiftAbove() float64 {
	if e.RetractLiftAbove == nil {
		return 0
	}
	return *e.RetractLiftAbove
}

// GetRetractLiftBelow returns the retract_lift_below value or the default.
func (e *ExtruderConfig) GetRetractLiftBelow() float64 {
	if e.RetractLiftBelow == nil {
		return 0
	}
	return *e.RetractLiftBelow
}

// GetTravelRampingLift returns the travel_ramping_lift value or the default.
func (e *ExtruderConfig) GetTravelRampingLift() bool {
	if e.TravelRampingLift == nil {
		return true
	}
	return *e.TravelRampingLift
}

// GetTravelMaxLift returns the travel_max_lift value or the default.
func (e *ExtruderConfig) GetTravelMaxLift() float64 {
	if e.TravelMaxLift == nil {
		return 0.6
	}
	return *e.TravelMaxLift
}

// GetTravelSlope returns the travel_slope value in degrees or the default.
func (e *ExtruderConfig) GetTravelSlope() float64 {
	if e.TravelSlope == nil {
		return 15
	}
	return *e.TravelSlope
}

// GetLiftBeforeObstacle returns the travel_lift_before_obstacle value or the default.
func (e *ExtruderConfig) GetLiftBeforeObstacle() bool {
	if e.LiftBeforeObstacle == nil {
		return true
	}
	return *e.LiftBeforeObstacle
}

// LiftAllowed reports whether lifting is enabled at print height z:
// above retract_lift_above and, when retract_lift_below is set, at or
// below it.
func (e *ExtruderConfig) LiftAllowed(z float64) bool {
	if z < e.GetRetractLiftAbove() {
		return false
	}
	if below := e.GetRetractLiftBelow(); below > 0 && z > below {
		return false
	}
	return true
}
