package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/tandemloop/recall"
)

func init() {
	cmd := &cobra.Command{
		Use:   "admit",
		Short: "Admit unseen vocabulary into the review pool (capped by new_cards_per_day)",
		Run:   runAdmit,
	}
	RootCmd.AddCommand(cmd)
}

func runAdmit(cmd *cobra.Command, args []string) {
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
	pool, err := s.ListVocabulary(ctx)
	if err != nil {
		exitErr("list vocabulary", err)
	}
	existing, err := s.ListStates(ctx)
	if err != nil {
		exitErr("list states", err)
	}

	admitted := recall.AdmitNewCards(pool, existing, settings, time.Now())
	if len(admitted) == 0 {
		fmt.Println("nothing to admit")
		return
	}
	if err := s.SaveStates(ctx, admitted...); err != nil {
		exitErr("save states", err)
	}

	log.Info("admitted new cards", "count", len(admitted), "cap", settings.NewCardsPerDay)
	for _, st := range admitted {
		fmt.Println(st.VocabularyID)
	}
}
