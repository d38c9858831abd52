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
	"io"
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"dirpx.dev/formlist"
	"dirpx.dev/formlist/config"
	"dirpx.dev/formlist/internal/script"
	"dirpx.dev/formlist/store"
)

// NewReplayCommand creates the replay command
func NewReplayCommand() *cobra.Command {
	var (
		cfgPath string
		dump    bool
	)
	cmd := &cobra.Command{
		Use:   "replay <script.yaml>",
		Short: "Replay a list operation script",
		Long: `Replay a YAML script of list operations (add, insert, remove, move,
set, resolve) against an in-memory store and print every render pass.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(cmd.OutOrStdout(), args[0], cfgPath, dump)
		},
	}
	cmd.Flags().StringVarP(&cfgPath, "config", "c", "", "config file (default ./formlist.yaml)")
	cmd.Flags().BoolVar(&dump, "dump", false, "dump the final form tree")
	return cmd
}

func runReplay(out io.Writer, scriptPath, cfgPath string, dump bool) error {
	file, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	logger, err := config.NewLogger(file.Log)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	data, err := os.ReadFile(scriptPath)
	if err != nil {
		return fmt.Errorf("failed to read script: %w", err)
	}
	sc, err := script.Parse(data)
	if err != nil {
		return err
	}

	field := sc.Field
	if field == "" {
		field = file.Field
	}
	tree, err := sc.Tree(field)
	if err != nil {
		return err
	}

	mem := store.NewMemory(tree, store.WithLogger(logger))
	opts := append(file.Options(), config.WithLogger(logger))
	if len(sc.Rules) > 0 {
		opts = append(opts, config.WithRules(sc.Rules...))
	}
	l, err := formlist.New(mem, field, opts...)
	if err != nil {
		return err
	}

	logger.Debug("replaying script",
		zap.String("script", scriptPath),
		zap.String("field", field),
		zap.Int("steps", len(sc.Steps)))

	if err := l.Mount(script.RenderTo(out)); err != nil {
		return err
	}
	defer func() { _ = l.Unmount() }()

	if err := sc.Run(l, mem, out); err != nil {
		return err
	}

	if dump {
		fmt.Fprint(out, spew.Sdump(mem.Snapshot()))
	}
	return nil
}
