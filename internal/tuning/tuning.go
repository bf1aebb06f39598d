package tuning

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Timing carries the simulated-time cost table and lifecycle parameters for
// one field. All durations are logical time units.
type Timing struct {
	ObjectEncodeCost      int64 `yaml:"object_encode_cost"`
	EmptySquareEncodeCost int64 `yaml:"empty_square_encode_cost"`
	FieldAccessCost       int64 `yaml:"field_access_cost"`
	AccessCost            int64 `yaml:"access_cost"`
	MoveCost              int64 `yaml:"move_cost"`

	RecognisedLifespan   int64 `yaml:"recognised_lifespan"`
	UnrecognisedLifespan int64 `yaml:"unrecognised_lifespan"`

	FixationBudget int `yaml:"fixation_budget"`

	EncodeCreator bool `yaml:"encode_creator"`
	EncodeGhosts  bool `yaml:"encode_ghosts"`
}

func Load(path string) (Timing, error) {
	var t Timing
	raw, err := os.ReadFile(path)
	if err != nil {
		return t, err
	}
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return t, fmt.Errorf("timing.yaml: %w", err)
	}
	return t, nil
}

// Validate rejects cost tables the clock arithmetic cannot accept.
func (t Timing) Validate() error {
	check := func(name string, v int64) error {
		if v < 0 {
			return fmt.Errorf("timing: %s must be >= 0, got %d", name, v)
		}
		return nil
	}
	if err := check("object_encode_cost", t.ObjectEncodeCost); err != nil {
		return err
	}
	if err := check("empty_square_encode_cost", t.EmptySquareEncodeCost); err != nil {
		return err
	}
	if err := check("field_access_cost", t.FieldAccessCost); err != nil {
		return err
	}
	if err := check("access_cost", t.AccessCost); err != nil {
		return err
	}
	if err := check("move_cost", t.MoveCost); err != nil {
		return err
	}
	if t.RecognisedLifespan <= 0 {
		return fmt.Errorf("timing: recognised_lifespan must be > 0, got %d", t.RecognisedLifespan)
	}
	if t.UnrecognisedLifespan <= 0 {
		return fmt.Errorf("timing: unrecognised_lifespan must be > 0, got %d", t.UnrecognisedLifespan)
	}
	if t.FixationBudget < 0 {
		return fmt.Errorf("timing: fixation_budget must be >= 0, got %d", t.FixationBudget)
	}
	return nil
}
