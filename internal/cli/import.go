package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/tandemloop/recall"
)

func init() {
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import vocabulary from a tab-separated file (front<TAB>back per line)",
		Args:  cobra.ExactArgs(1),
		Run:   runImport,
	}

	cmd.Flags().String("chat", "", "Chat ID the vocabulary came from (default: a fresh UUID)")

	RootCmd.AddCommand(cmd)
}

func runImport(cmd *cobra.Command, args []string) {
	chatID, _ := cmd.Flags().GetString("chat")
	if chatID == "" {
		chatID = uuid.NewString()
	}

	f, err := os.Open(args[0])
	if err != nil {
		exitErr("open input", err)
	}
	defer f.Close()

	now := time.Now()
	var items []recall.VocabularyItem
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		front, back, ok := strings.Cut(line, "\t")
		if !ok {
			log.Warn("skipping malformed line", "line", lineNo)
			continue
		}
		items = append(items, recall.VocabularyItem{
			ID:        uuid.NewString(),
			Front:     strings.TrimSpace(front),
			Back:      strings.TrimSpace(back),
			ChatRefs:  []string{chatID},
			CreatedAt: now,
		})
	}
	if err := scanner.Err(); err != nil {
		exitErr("read input", err)
	}
	if len(items) == 0 {
		exitErr("import", fmt.Errorf("no vocabulary found in %s", args[0]))
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	if err := s.PutVocabulary(cmd.Context(), items...); err != nil {
		exitErr("import", err)
	}
	log.Info("imported vocabulary", "count", len(items), "chat_id", chatID)
	fmt.Printf("imported %d items\n", len(items))
}
