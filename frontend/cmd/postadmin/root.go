package main

import (
	"github.com/spf13/cobra"
)

var configFolder string

var rootCmd = &cobra.Command{
	Use:   "postadmin",
	Short: "Admin console for the posts API",
	Long: `postadmin lists, edits and deletes posts held by a remote posts API.

Run "postadmin serve" for the web page or "postadmin tui" for the terminal.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFolder, "config_folder", "frontend/config", "path to folder with configs")
}
