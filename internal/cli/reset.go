package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/tandemloop/recall"
)

func init() {
	cmd := &cobra.Command{
		Use:   "reset <vocabulary-id>",
		Short: "Wind a card back to an unrated baseline, keeping its history",
		Args:  cobra.ExactArgs(1),
		Run:   runReset,
	}
	RootCmd.AddCommand(cmd)
}

func runReset(cmd *cobra.Command, args []string) {
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

	reset := recall.Reset(state, time.Now())
	if err := s.SaveStates(ctx, reset); err != nil {
		exitErr("save state", err)
	}

	log.Info("reset card", "vocabulary_id", reset.VocabularyID)
	fmt.Printf("reset %s, due immediately\n", reset.VocabularyID)
}
