package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "import <directory>",
		Short: "Import legacy JSON session directories into the database",
		Long: "Imports sessions stored in the legacy per-directory JSON layout " +
			"(one directory per session containing session.json) into the SQLite database.",
		Args: cobra.ExactArgs(1),
		Run:  runImport,
	}
	RootCmd.AddCommand(cmd)
}

func runImport(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	stats, err := s.ImportAll(cmd.Context(), args[0])
	if err != nil {
		exitErr("import", err)
	}

	b, _ := json.MarshalIndent(stats, "", "  ")
	fmt.Println(string(b))
}
