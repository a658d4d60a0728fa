package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "purge",
		Short: "Delete all memories and agents for a project",
		Long:  "Hard-delete every memory and agent for the current project. This is the administrative escape hatch; the server exposes no delete tool.",
		Run:   runPurge,
	}
	cmd.Flags().Bool("yes", false, "Skip the confirmation prompt")

	RootCmd.AddCommand(cmd)
}

func runPurge(cmd *cobra.Command, args []string) {
	yes, _ := cmd.Flags().GetBool("yes")
	projectID := getProjectID()

	if !yes {
		fmt.Fprintf(os.Stderr, "purge all data for project %q? [y/N] ", projectID)
		reader := bufio.NewReader(os.Stdin)
		answer, _ := reader.ReadString('\n')
		if strings.ToLower(strings.TrimSpace(answer)) != "y" {
			fmt.Fprintln(os.Stderr, "aborted")
			return
		}
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	n, err := s.Purge(cmd.Context(), projectID)
	if err != nil {
		exitErr("purge", err)
	}

	fmt.Printf(`{"ok":true,"project":%q,"purged":%d}`+"\n", projectID, n)
}
