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
		Use:   "stats",
		Short: "Show upcoming review load and pool retrievability",
		Run:   runStats,
	}

	cmd.Flags().Int("days", 14, "Forecast horizon in days")

	RootCmd.AddCommand(cmd)
}

func runStats(cmd *cobra.Command, args []string) {
	days, _ := cmd.Flags().GetInt("days")

	settings, err := loadSettings()
	if err != nil {
		exitErr("load settings", err)
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	states, err := s.ListStates(cmd.Context())
	if err != nil {
		exitErr("list states", err)
	}

	forecast := recall.ForecastLoad(states, settings, time.Now(), days)
	log.Debug("forecast built", "states", len(states), "rated", forecast.Rated, "horizon_days", days)

	b, _ := json.MarshalIndent(forecast, "", "  ")
	fmt.Println(string(b))
}
