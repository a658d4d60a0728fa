package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/contextmem/contextmem/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "push [content]",
		Short: "Store a memory",
		Long:  "Store a memory. Content can be a positional arg or piped via stdin.",
		Run:   runPush,
	}

	cmd.Flags().StringP("type", "t", "fact", "Memory type: fact, preference, task, other")
	cmd.Flags().String("priority", "medium", "Priority: low, medium, high")
	cmd.Flags().String("tags", "", "Comma-separated tags")
	cmd.Flags().String("agent", "", "Agent id to attribute the push to")

	RootCmd.AddCommand(cmd)
}

func runPush(cmd *cobra.Command, args []string) {
	memType, _ := cmd.Flags().GetString("type")
	priority, _ := cmd.Flags().GetString("priority")
	tagsStr, _ := cmd.Flags().GetString("tags")
	agentID, _ := cmd.Flags().GetString("agent")

	var content string
	if len(args) > 0 {
		content = strings.Join(args, " ")
	} else {
		stat, _ := os.Stdin.Stat()
		if (stat.Mode() & os.ModeCharDevice) == 0 {
			b, err := io.ReadAll(os.Stdin)
			if err != nil {
				exitErr("read stdin", err)
			}
			content = string(b)
		}
	}

	if strings.TrimSpace(content) == "" {
		exitErr("push", fmt.Errorf("content is required (positional arg or stdin)"))
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	rec, err := s.Push(cmd.Context(), store.PushParams{
		ProjectID:  getProjectID(),
		Content:    strings.TrimSpace(content),
		MemoryType: memType,
		Priority:   priority,
		Tags:       splitTags(tagsStr),
		AgentID:    agentID,
	})
	if err != nil {
		exitErr("push", err)
	}

	b, _ := json.Marshal(rec)
	fmt.Println(string(b))
}

func splitTags(s string) []string {
	if s == "" {
		return nil
	}
	var tags []string
	for _, t := range strings.Split(s, ",") {
		t = strings.TrimSpace(t)
		if t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
