package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/contextmem/contextmem/internal/store"
)

func init() {
	agentCmd := &cobra.Command{
		Use:   "agent",
		Short: "Manage registered agents",
	}

	registerCmd := &cobra.Command{
		Use:   "register [name]",
		Short: "Register an agent for the current project",
		Long:  "Register an agent. Registering the same name twice returns the existing agent.",
		Args:  cobra.ExactArgs(1),
		Run:   runAgentRegister,
	}
	registerCmd.Flags().StringP("type", "t", "cli", "Agent type")

	statsCmd := &cobra.Command{
		Use:   "stats [agent-id]",
		Short: "Show usage counters for an agent",
		Args:  cobra.ExactArgs(1),
		Run:   runAgentStats,
	}

	agentCmd.AddCommand(registerCmd, statsCmd)
	RootCmd.AddCommand(agentCmd)
}

func runAgentRegister(cmd *cobra.Command, args []string) {
	agentType, _ := cmd.Flags().GetString("type")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	agent, err := s.RegisterAgent(cmd.Context(), store.RegisterParams{
		Name:      args[0],
		AgentType: agentType,
		ProjectID: getProjectID(),
	})
	if err != nil {
		exitErr("register", err)
	}

	b, _ := json.Marshal(agent)
	fmt.Println(string(b))
}

func runAgentStats(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	st, err := s.AgentStats(cmd.Context(), args[0], getProjectID())
	if err != nil {
		exitErr("stats", err)
	}

	b, _ := json.MarshalIndent(st, "", "  ")
	fmt.Println(string(b))
}
