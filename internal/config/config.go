package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/caarlos0/env/v11"

	"klondike/internal/domain"
)

// TableConfig holds the table geometry and match settings. Every field can
// be overridden from the environment.
type TableConfig struct {
	CardWidth      int `json:"card_width" env:"KLONDIKE_CARD_WIDTH"`
	CardHeight     int `json:"card_height" env:"KLONDIKE_CARD_HEIGHT"`
	Padding        int `json:"padding" env:"KLONDIKE_PADDING"`
	StackedXStride int `json:"stacked_x_stride" env:"KLONDIKE_STACKED_X_STRIDE"`
	StackedYStride int `json:"stacked_y_stride" env:"KLONDIKE_STACKED_Y_STRIDE"`
	PileGapX       int `json:"pile_gap_x" env:"KLONDIKE_PILE_GAP_X"`
	PileGapY       int `json:"pile_gap_y" env:"KLONDIKE_PILE_GAP_Y"`
	TickRate       int `json:"tick_rate" env:"KLONDIKE_TICK_RATE"`
	// DealSeed fixes the shuffle for reproducible tables. Zero seeds from the clock.
	DealSeed int64 `json:"deal_seed" env:"KLONDIKE_DEAL_SEED"`
}

var (
	cfg      *TableConfig
	loadOnce sync.Once
	loadErr  error
)

// Default returns the classic table configuration.
func Default() TableConfig {
	l := domain.DefaultLayout()
	return TableConfig{
		CardWidth:      l.CardWidth,
		CardHeight:     l.CardHeight,
		Padding:        l.Padding,
		StackedXStride: l.StackedXStride,
		StackedYStride: l.StackedYStride,
		PileGapX:       l.PileGapX,
		PileGapY:       l.PileGapY,
		TickRate:       10,
	}
}

// LoadTableConfig loads the table configuration from the given path. Fields
// missing from the file keep their default values.
func LoadTableConfig(path string) error {
	loadOnce.Do(func() {
		data, err := os.ReadFile(path)
		if err != nil {
			loadErr = fmt.Errorf("failed to read table config: %w", err)
			return
		}

		c := Default()
		if err := json.Unmarshal(data, &c); err != nil {
			loadErr = fmt.Errorf("failed to unmarshal table config: %w", err)
			return
		}
		if err := c.Validate(); err != nil {
			loadErr = err
			return
		}
		cfg = &c
	})
	return loadErr
}

// GetTableConfig returns the global table configuration, or nil when none was
// loaded.
func GetTableConfig() *TableConfig {
	return cfg
}

// ApplyEnv overrides fields of c from environ, a key/value map such as the
// Nakama runtime environment.
func ApplyEnv(c *TableConfig, environ map[string]string) error {
	if err := env.ParseWithOptions(c, env.Options{Environment: environ}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return c.Validate()
}

// Validate rejects geometry that cannot lay out a table.
func (c TableConfig) Validate() error {
	var errs []error
	positive := map[string]int{
		"card_width":       c.CardWidth,
		"card_height":      c.CardHeight,
		"stacked_x_stride": c.StackedXStride,
		"stacked_y_stride": c.StackedYStride,
		"tick_rate":        c.TickRate,
	}
	for name, v := range positive {
		if v <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %d", name, v))
		}
	}
	nonNegative := map[string]int{
		"padding":    c.Padding,
		"pile_gap_x": c.PileGapX,
		"pile_gap_y": c.PileGapY,
	}
	for name, v := range nonNegative {
		if v < 0 {
			errs = append(errs, fmt.Errorf("%s must not be negative, got %d", name, v))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid table config: %w", err)
	}
	return nil
}

// Layout converts the geometry fields to a domain.Layout.
func (c TableConfig) Layout() domain.Layout {
	return domain.Layout{
		CardWidth:      c.CardWidth,
		CardHeight:     c.CardHeight,
		Padding:        c.Padding,
		StackedXStride: c.StackedXStride,
		StackedYStride: c.StackedYStride,
		PileGapX:       c.PileGapX,
		PileGapY:       c.PileGapY,
	}
}
