package domain

import (
	"fmt"
	"time"
)

// Stage is the lifecycle phase of a plot's current planting
type Stage string

const (
	StageEmpty   Stage = "empty"
	StagePlanted Stage = "planted"
	StageGrowing Stage = "growing"
	StageReady   Stage = "ready"
)

// stageOrder is the lifecycle order used for "earlier than" comparisons
var stageOrder = map[Stage]int{
	StageEmpty:   0,
	StagePlanted: 1,
	StageGrowing: 2,
	StageReady:   3,
}

// Valid reports whether s is one of the four lifecycle stages
func (s Stage) Valid() bool {
	_, ok := stageOrder[s]
	return ok
}

// Ordinal returns the position of the stage in the lifecycle, or -1 if unknown
func (s Stage) Ordinal() int {
	if o, ok := stageOrder[s]; ok {
		return o
	}
	return -1
}

// Before reports whether s comes strictly earlier in the lifecycle than other
func (s Stage) Before(other Stage) bool {
	return s.Ordinal() < other.Ordinal()
}

// Next returns the time-driven successor of s.
// Only planted and growing have one; the other stages change through user actions.
func (s Stage) Next() (Stage, bool) {
	switch s {
	case StagePlanted:
		return StageGrowing, true
	case StageGrowing:
		return StageReady, true
	default:
		return "", false
	}
}

// IsTimeDriven reports whether s can be reached by the growth scheduler
func (s Stage) IsTimeDriven() bool {
	return s == StageGrowing || s == StageReady
}

// ParseStage converts a raw string into a Stage
func ParseStage(raw string) (Stage, error) {
	s := Stage(raw)
	if !s.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidStage, raw)
	}
	return s, nil
}

// CropType identifies a crop in the catalog
type CropType string

// Farm is the aggregate owning a grid of plots and the harvest counters
type Farm struct {
	ID                  int64     `json:"id"`
	Name                string    `json:"name"`
	CoinBalance         int       `json:"coin_balance"`
	VirtualHarvestTotal int       `json:"virtual_harvest_total"`
	TotalDelivered      int       `json:"total_delivered"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// Plot is one cell of a farm's planting grid
type Plot struct {
	ID        int64      `json:"id"`
	FarmID    int64      `json:"farm_id"`
	Position  int        `json:"position"`
	Crop      *CropType  `json:"crop"`
	Stage     Stage      `json:"stage"`
	PlantedAt *time.Time `json:"planted_at"`
}

// IsEmpty reports whether the plot holds no crop
func (p Plot) IsEmpty() bool {
	return p.Stage == StageEmpty
}

// FarmView is a farm together with its full grid
type FarmView struct {
	Farm  Farm   `json:"farm"`
	Plots []Plot `json:"plots"`
}

// FarmOptions are the named tuning constants of the farming rules
type FarmOptions struct {
	GridSize           int
	PlantCost          int
	VirtualToRealRatio int
	InitialCoins       int
	FarmName           string
}

// PlotCount is the number of plots in a farm grid
func (o FarmOptions) PlotCount() int {
	return o.GridSize * o.GridSize
}

// DefaultFarmOptions returns the stock game constants
func DefaultFarmOptions() FarmOptions {
	return FarmOptions{
		GridSize:           DefaultGridSize,
		PlantCost:          DefaultPlantCost,
		VirtualToRealRatio: DefaultVirtualToRealRatio,
		InitialCoins:       DefaultInitialCoins,
		FarmName:           DefaultFarmName,
	}
}

// PlantResult is returned after a successful planting
type PlantResult struct {
	Plot           Plot `json:"plot"`
	NewCoinBalance int  `json:"new_coin_balance"`
}
