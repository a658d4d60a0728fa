package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/contextmem/contextmem/internal/prompt"
	"github.com/contextmem/contextmem/internal/summary"
)

func init() {
	cmd := &cobra.Command{
		Use:   "craft [user message]",
		Short: "Craft an AI prompt from the project's context",
		Run:   runCraft,
	}

	cmd.Flags().StringP("type", "t", "general", "Prompt type: continuation, task_focused, problem_solving, debugging, explanation, code_review, general")
	cmd.Flags().String("focus", "", "Comma-separated focus tags")

	RootCmd.AddCommand(cmd)
}

func runCraft(cmd *cobra.Command, args []string) {
	promptType, _ := cmd.Flags().GetString("type")
	focus, _ := cmd.Flags().GetString("focus")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	crafted, err := prompt.New(summary.New(s), 10).Craft(cmd.Context(), prompt.Params{
		ProjectID:   getProjectID(),
		UserMessage: strings.Join(args, " "),
		PromptType:  promptType,
		FocusAreas:  splitTags(focus),
	})
	if err != nil {
		exitErr("craft", err)
	}

	fmt.Println(crafted)
}
