package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aaronsb/think-strategies/internal/storage"
)

func init() {
	sessionsCmd := &cobra.Command{
		Use:   "sessions",
		Short: "Inspect stored thinking sessions",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List stored sessions",
		Run:   runSessionsList,
	}
	listCmd.Flags().String("strategy", "", "Filter by strategy")
	listCmd.Flags().Bool("completed", false, "Only completed sessions")
	listCmd.Flags().Bool("active", false, "Only unfinished sessions")
	listCmd.Flags().IntP("limit", "l", 20, "Max results")

	showCmd := &cobra.Command{
		Use:   "show <session-id>",
		Short: "Show a full session including its thought history",
		Args:  cobra.ExactArgs(1),
		Run:   runSessionsShow,
	}

	sessionsCmd.AddCommand(listCmd, showCmd)
	RootCmd.AddCommand(sessionsCmd)
}

func runSessionsList(cmd *cobra.Command, args []string) {
	strategy, _ := cmd.Flags().GetString("strategy")
	completedOnly, _ := cmd.Flags().GetBool("completed")
	activeOnly, _ := cmd.Flags().GetBool("active")
	limit, _ := cmd.Flags().GetInt("limit")

	var completed *bool
	if completedOnly {
		v := true
		completed = &v
	} else if activeOnly {
		v := false
		completed = &v
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	summaries, err := s.ListSessions(cmd.Context(), storage.ListParams{
		Strategy:  strategy,
		Completed: completed,
		Limit:     limit,
	})
	if err != nil {
		exitErr("list sessions", err)
	}

	b, _ := json.MarshalIndent(summaries, "", "  ")
	fmt.Println(string(b))
}

func runSessionsShow(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	sess, err := s.LoadSession(cmd.Context(), args[0])
	if err != nil {
		exitErr("load session", err)
	}

	b, _ := json.MarshalIndent(sess, "", "  ")
	fmt.Println(string(b))
}
