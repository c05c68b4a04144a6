// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version of triz-copilot",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("triz-copilot %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
