package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/contextmem/contextmem/internal/summary"
)

func init() {
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print a ranked context digest for the current project",
		Run:   runSummary,
	}

	cmd.Flags().IntP("max", "m", 10, "Maximum memories in the digest")
	cmd.Flags().Bool("recent", true, "Bias ordering toward recent memories")
	cmd.Flags().String("focus", "", "Comma-separated focus tags")

	RootCmd.AddCommand(cmd)
}

func runSummary(cmd *cobra.Command, args []string) {
	max, _ := cmd.Flags().GetInt("max")
	recent, _ := cmd.Flags().GetBool("recent")
	focus, _ := cmd.Flags().GetString("focus")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	digest, err := summary.New(s).Summarize(cmd.Context(), summary.Params{
		ProjectID:     getProjectID(),
		MaxMemories:   max,
		IncludeRecent: recent,
		FocusAreas:    splitTags(focus),
	})
	if err != nil {
		exitErr("summary", err)
	}

	fmt.Println(digest.Text)
}
