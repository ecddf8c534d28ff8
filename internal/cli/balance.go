package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tandemloop/recall"
)

func init() {
	cmd := &cobra.Command{
		Use:   "balance",
		Short: "Redistribute overloaded review days (writes schedules back)",
		Run:   runBalance,
	}
	RootCmd.AddCommand(cmd)
}

func runBalance(cmd *cobra.Command, args []string) {
	settings, err := loadSettings()
	if err != nil {
		exitErr("load settings", err)
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	ctx := cmd.Context()
	states, err := s.ListStates(ctx)
	if err != nil {
		exitErr("list states", err)
	}

	balanced := recall.BalanceLoad(states, settings.MaxReviewsPerDay, settings.Location)

	moved := 0
	byID := make(map[string]recall.ReviewState, len(states))
	for _, st := range states {
		byID[st.VocabularyID] = st
	}
	for _, st := range balanced {
		if prev, ok := byID[st.VocabularyID]; ok && !prev.NextReviewDate.Equal(st.NextReviewDate) {
			moved++
		}
	}

	if err := s.SaveStates(ctx, balanced...); err != nil {
		exitErr("save states", err)
	}
	log.Info("balanced review load", "states", len(balanced), "moved", moved, "max_per_day", settings.MaxReviewsPerDay)
	fmt.Printf("balanced %d states, moved %d\n", len(balanced), moved)
}
