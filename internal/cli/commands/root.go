/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package commands

import (
	"fmt"
	"runtime"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	// Version information - set at build time
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// NewRootCommand creates the root command
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "formlist",
		Short: "Replay and inspect dynamic list field operations",
		Long: color.CyanString(`formlist - dynamic list field controller

Replays add/insert/remove/move scripts against an in-memory form store and
prints the (path, key) descriptors produced on every render pass.`),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(NewVersionCommand())
	rootCmd.AddCommand(NewReplayCommand())

	return rootCmd
}

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			title := color.New(color.FgCyan, color.Bold)

			title.Fprint(out, "formlist version: ")
			fmt.Fprintln(out, Version)
			title.Fprint(out, "Git commit: ")
			fmt.Fprintln(out, GitCommit)
			title.Fprint(out, "Build date: ")
			fmt.Fprintln(out, BuildDate)
			title.Fprint(out, "Go version: ")
			fmt.Fprintln(out, runtime.Version())
		},
	}
}
