package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "enhance <session-id>",
		Short: "Attach purpose and quality metadata to a stored session",
		Long: "Attaches a free-text purpose and a quality rating to a stored session. " +
			"With --auto the rating is derived from the session's own metrics " +
			"(thought count, branches, revisions, completion).",
		Args: cobra.ExactArgs(1),
		Run:  runEnhance,
	}
	cmd.Flags().String("purpose", "", "Free-text session purpose")
	cmd.Flags().String("quality", "", "Quality rating as JSON, e.g. '{\"depth\": 4, \"clarity\": 5}'")
	cmd.Flags().Bool("auto", false, "Derive the quality rating from session metrics")
	RootCmd.AddCommand(cmd)
}

func runEnhance(cmd *cobra.Command, args []string) {
	purpose, _ := cmd.Flags().GetString("purpose")
	qualityJSON, _ := cmd.Flags().GetString("quality")
	auto, _ := cmd.Flags().GetBool("auto")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	id := args[0]
	var quality map[string]int

	if qualityJSON != "" {
		if err := json.Unmarshal([]byte(qualityJSON), &quality); err != nil {
			exitErr("parse quality rating", err)
		}
	}

	if auto {
		m, err := s.SessionMetrics(cmd.Context(), id)
		if err != nil {
			exitErr("compute session metrics", err)
		}
		quality = autoQuality(m.ThoughtCount, m.BranchCount, m.RevisionCount, m.Completed)
	}

	if purpose == "" && quality == nil {
		exitErr("enhance", fmt.Errorf("nothing to set: provide --purpose, --quality or --auto"))
	}

	if err := s.SetEnhancements(cmd.Context(), id, purpose, quality); err != nil {
		exitErr("set enhancements", err)
	}

	sess, err := s.LoadSession(cmd.Context(), id)
	if err != nil {
		exitErr("load session", err)
	}
	b, _ := json.MarshalIndent(map[string]any{
		"id":             sess.ID,
		"sessionPurpose": sess.Purpose,
		"qualityRating":  sess.Quality,
	}, "", "  ")
	fmt.Println(string(b))
}

// autoQuality maps session metrics onto 1-5 scores. Rough heuristics:
// depth rewards longer sessions, exploration rewards branching and
// revision, completion is binary.
func autoQuality(thoughts, branches, revisions int, completed bool) map[string]int {
	clamp := func(v int) int {
		if v < 1 {
			return 1
		}
		if v > 5 {
			return 5
		}
		return v
	}
	q := map[string]int{
		"depth":       clamp(thoughts / 3),
		"exploration": clamp(1 + branches + revisions),
	}
	if completed {
		q["completion"] = 5
	} else {
		q["completion"] = 1
	}
	return q
}
