package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/contextmem/contextmem/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "fetch [query]",
		Short: "Fetch memories matching filters",
		Long:  "Fetch memories for the current project. All supplied filters apply together; the optional query matches content as a case-insensitive substring.",
		Run:   runFetch,
	}

	cmd.Flags().StringP("type", "t", "", "Filter by memory type")
	cmd.Flags().String("tags", "", "Comma-separated tags; all must match")
	cmd.Flags().IntP("limit", "l", 0, "Maximum results (default 20)")
	cmd.Flags().String("agent", "", "Agent id to attribute the query to")

	RootCmd.AddCommand(cmd)
}

func runFetch(cmd *cobra.Command, args []string) {
	memType, _ := cmd.Flags().GetString("type")
	tagsStr, _ := cmd.Flags().GetString("tags")
	limit, _ := cmd.Flags().GetInt("limit")
	agentID, _ := cmd.Flags().GetString("agent")

	var query string
	if len(args) > 0 {
		query = args[0]
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	records, err := s.Query(cmd.Context(), store.QueryParams{
		ProjectID:  getProjectID(),
		Text:       query,
		Tags:       splitTags(tagsStr),
		MemoryType: memType,
		Limit:      limit,
		AgentID:    agentID,
	})
	if err != nil {
		exitErr("fetch", err)
	}

	if records == nil {
		fmt.Println("[]")
		return
	}
	b, _ := json.MarshalIndent(records, "", "  ")
	fmt.Println(string(b))
}
