package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var cfgFile string

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "gameposts",
		Short: "Find Reddit discussion about a video game, ranked by relevance",
	}

	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./config.yaml)")

	root.AddCommand(searchCmd())
	root.AddCommand(gamesCmd())
	root.AddCommand(commentCmd())
	root.AddCommand(serveCmd())

	return root
}

func searchCmd() *cobra.Command {
	var (
		platform   string
		exact      bool
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "search <game title>",
		Short: "Search Reddit for posts about a game",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(args, platform, exact, jsonOutput)
		},
	}

	cmd.Flags().StringVar(&platform, "platform", "", "platform to narrow the search (e.g., snes, playstation 2)")
	cmd.Flags().BoolVar(&exact, "exact", false, "match the title as an exact phrase")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "output as JSON")
	return cmd
}

func gamesCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "games <query>",
		Short: "Look up matching games in the game database",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGames(args, jsonOutput)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "output as JSON")
	return cmd
}

func commentCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "comment <post-id> <text>",
		Short: "Post a comment on a Reddit post from your own account",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runComment(args[0], args[1:])
		},
	}
}

func serveCmd() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(port)
		},
	}

	cmd.Flags().IntVar(&port, "port", 0, "server port (default: from config)")
	return cmd
}
