package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"codolio/internal/domain/models"
)

var treeOffline bool

var treeCmd = &cobra.Command{
	Use:   "tree",
	Short: "Print the topic tree with progress marks",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		if !treeOffline {
			if err := store.Sync(cmd.Context()); err != nil {
				fmt.Fprintf(os.Stderr, "warning: sync failed, showing last snapshot: %v\n", err)
			}
		}

		topics := store.Topics()
		if len(topics) == 0 {
			fmt.Println("no topics (run `codolioctl sync` or seed the server)")
			return nil
		}

		for _, topic := range topics {
			fmt.Printf("%s  (%s)\n", topic.Title, topic.Status)
			for _, q := range topic.Questions {
				printQuestion("  ", q)
			}
			for _, sub := range topic.SubTopics {
				fmt.Printf("  %s\n", sub.Title)
				for _, q := range sub.Questions {
					printQuestion("    ", q)
				}
			}
		}
		return nil
	},
}

func printQuestion(indent string, q models.TreeQuestion) {
	mark := " "
	if q.IsSolved {
		mark = "x"
	}
	star := ""
	if q.IsStarred {
		star = " *"
	}
	fmt.Printf("%s[%s] %s (%s)%s\n", indent, mark, q.Title, q.QuestionID.Difficulty, star)
}

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Replace the local snapshot with the server's tree",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.Sync(cmd.Context()); err != nil {
			return err
		}
		fmt.Printf("synced %d topics\n", len(store.Topics()))
		return nil
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show aggregate progress",
	RunE: func(cmd *cobra.Command, args []string) error {
		stats, err := apiClient().Stats(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Printf("topics:    %d\n", stats.Topics)
		fmt.Printf("questions: %d\n", stats.Questions)
		fmt.Printf("solved:    %d\n", stats.Solved)
		fmt.Printf("progress:  %d%%\n", stats.Progress)
		return nil
	},
}

var resetProgressCmd = &cobra.Command{
	Use:   "reset-progress",
	Short: "Clear every solved flag, keeping the tree",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.ResetProgress(cmd.Context()); err != nil {
			return err
		}
		fmt.Println("progress reset")
		return nil
	},
}

var fullResetYes bool

var fullResetCmd = &cobra.Command{
	Use:   "full-reset",
	Short: "Wipe the server store and reseed it from its question sheet",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !fullResetYes && !confirm("This deletes all topics, sub-topics and questions, then reseeds. Continue? [y/N] ") {
			fmt.Println("aborted")
			return nil
		}

		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.FullReset(cmd.Context()); err != nil {
			return err
		}
		fmt.Printf("reseeded, %d topics\n", len(store.Topics()))
		return nil
	},
}

var wipeYes bool

var wipeCmd = &cobra.Command{
	Use:   "wipe",
	Short: "Delete every server-side record without reseeding",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !wipeYes && !confirm("This deletes everything on the server and does NOT reseed. Continue? [y/N] ") {
			fmt.Println("aborted")
			return nil
		}

		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.FullWipe(cmd.Context()); err != nil {
			return err
		}
		fmt.Println("wiped")
		return nil
	},
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check whether the server is reachable",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := apiClient().Health(cmd.Context()); err != nil {
			return err
		}
		fmt.Println("ok")
		return nil
	},
}

func confirm(prompt string) bool {
	fmt.Print(prompt)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

func init() {
	treeCmd.Flags().BoolVar(&treeOffline, "offline", false, "Skip syncing, show the last snapshot")
	fullResetCmd.Flags().BoolVarP(&fullResetYes, "yes", "y", false, "Skip the confirmation prompt")
	wipeCmd.Flags().BoolVarP(&wipeYes, "yes", "y", false, "Skip the confirmation prompt")

	rootCmd.AddCommand(treeCmd, syncCmd, statsCmd, resetProgressCmd, fullResetCmd, wipeCmd, healthCmd)
}
