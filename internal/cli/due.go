package cli

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/tandemloop/recall"
)

func init() {
	cmd := &cobra.Command{
		Use:   "due",
		Short: "List cards due today, ordered and capped per settings",
		Run:   runDue,
	}

	cmd.Flags().StringP("order", "o", "fragility", "Queue order: fragility or recency")
	cmd.Flags().Bool("ids-only", false, "Only output vocabulary IDs")

	RootCmd.AddCommand(cmd)
}

func runDue(cmd *cobra.Command, args []string) {
	orderStr, _ := cmd.Flags().GetString("order")
	idsOnly, _ := cmd.Flags().GetBool("ids-only")

	mode, err := recall.ParseSortMode(orderStr)
	if err != nil {
		exitErr("parse order", err)
	}
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
	vocab, err := s.ListVocabulary(ctx)
	if err != nil {
		exitErr("list vocabulary", err)
	}
	states, err := s.ListStates(ctx)
	if err != nil {
		exitErr("list states", err)
	}

	queue := recall.BuildDueQueue(states, vocab, settings, time.Now(), mode)
	log.Debug("built due queue", "due", len(queue), "order", mode.String(), "pool", len(states))

	if idsOnly {
		for _, st := range queue {
			fmt.Println(st.VocabularyID)
		}
		return
	}
	b, _ := json.MarshalIndent(queue, "", "  ")
	fmt.Println(string(b))
}
