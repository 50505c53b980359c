package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var defaultConfig = map[string]any{
	"hierarchy": map[string]any{
		"autoCompleteParent": true,
		"autoCompleteMode":   "auto",
		"maxSiblings":        20,
		"maxDepth":           3,
	},
	"duplicate": map[string]any{"windowSeconds": 60},
	"lock":      map[string]any{"timeoutSeconds": 5},
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Scaffold .cleo/ in the current directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := appCtx.Layout.EnsureDirs(); err != nil {
			return err
		}
		configPath := appCtx.Layout.ConfigFile
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			raw, err := json.MarshalIndent(defaultConfig, "", "  ")
			if err != nil {
				return err
			}
			if err := os.WriteFile(configPath, raw, 0o644); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "initialized .cleo/ with config.json\n")
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), ".cleo/ already initialized\n")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
