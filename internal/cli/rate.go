package cli

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/tandemloop/recall"
)

func init() {
	cmd := &cobra.Command{
		Use:   "rate <vocabulary-id> <again|hard|good|easy>",
		Short: "Record a recall rating and reschedule the card",
		Args:  cobra.ExactArgs(2),
		Run:   runRate,
	}
	RootCmd.AddCommand(cmd)
}

var ratingByArg = map[string]recall.Rating{
	"again": recall.Again,
	"hard":  recall.Hard,
	"good":  recall.Good,
	"easy":  recall.Easy,
}

func runRate(cmd *cobra.Command, args []string) {
	rating, ok := ratingByArg[strings.ToLower(args[1])]
	if !ok {
		exitErr("parse rating", fmt.Errorf("%w: %q", recall.ErrInvalidRating, args[1]))
	}

	settings, err := loadSettings()
	if err != nil {
		exitErr("load settings", err)
	}
	sched, err := recall.NewScheduler(recall.SchedulerConfig{Settings: settings})
	if err != nil {
		exitErr("init scheduler", err)
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	ctx := cmd.Context()
	state, err := s.GetState(ctx, args[0])
	if err != nil {
		exitErr("load state", err)
	}

	now := time.Now()
	next, err := sched.Schedule(&state, rating, now)
	if err != nil {
		exitErr("schedule", err)
	}
	if err := s.SaveStates(ctx, next); err != nil {
		exitErr("save state", err)
	}

	log.Info("rated card",
		"vocabulary_id", next.VocabularyID,
		"rating", rating.String(),
		"stability", next.Stability,
		"interval_days", next.CurrentIntervalDays,
		"next_review", next.NextReviewDate.Format(time.RFC3339))

	b, _ := json.MarshalIndent(next, "", "  ")
	fmt.Println(string(b))
}
