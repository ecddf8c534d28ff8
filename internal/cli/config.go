package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/tandemloop/recall"
)

// fileConfig is the YAML shape of the settings file. Absent fields keep
// the library defaults.
type fileConfig struct {
	DesiredRetention float64 `yaml:"desired_retention"`
	MaxReviewsPerDay int     `yaml:"max_reviews_per_day"`
	NewCardsPerDay   int     `yaml:"new_cards_per_day"`
	Timezone         string  `yaml:"timezone"`
}

func getConfigPath() string {
	if configPath != "" {
		return configPath
	}
	if env := os.Getenv("RECALL_CONFIG"); env != "" {
		return env
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".recall", "config.yaml")
}

// loadSettings merges the optional YAML settings file over the defaults.
// A missing file is not an error; a malformed one is. Note that an
// out-of-range desired_retention is clamped by NewSettings, and the
// effective value is what every command reports and uses.
func loadSettings() (recall.Settings, error) {
	defaults := recall.DefaultSettings()

	data, err := os.ReadFile(getConfigPath())
	if errors.Is(err, fs.ErrNotExist) {
		return defaults, nil
	}
	if err != nil {
		return recall.Settings{}, fmt.Errorf("read config: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return recall.Settings{}, fmt.Errorf("parse config: %w", err)
	}

	retention := defaults.DesiredRetention
	if fc.DesiredRetention != 0 {
		retention = fc.DesiredRetention
	}
	maxReviews := defaults.MaxReviewsPerDay
	if fc.MaxReviewsPerDay != 0 {
		maxReviews = fc.MaxReviewsPerDay
	}
	newCards := defaults.NewCardsPerDay
	if fc.NewCardsPerDay != 0 {
		newCards = fc.NewCardsPerDay
	}
	loc := defaults.Location
	if fc.Timezone != "" {
		loc, err = time.LoadLocation(fc.Timezone)
		if err != nil {
			return recall.Settings{}, fmt.Errorf("load timezone %q: %w", fc.Timezone, err)
		}
	}

	return recall.NewSettings(retention, maxReviews, newCards, loc), nil
}
