// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/segrep/pkg/config"
	"github.com/walteh/segrep/pkg/log"
	"gitlab.com/tozd/go/errors"
)

// rootOpts holds the flags shared by every command
type rootOpts struct {
	configFile string
	debug      bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOpts{}

	cmd := &cobra.Command{
		Use:   "segrep",
		Short: "Apply ordered find and replace rules to files",
		Long: `segrep splits files around literal or pattern matches and swaps every
match for the expansion of a rule template. Rules are applied in file order and
never rescan text an earlier rule produced.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := zerolog.WarnLevel
			if opts.debug {
				level = zerolog.DebugLevel
			}
			base := zerolog.Ctx(cmd.Context())
			if base.GetLevel() == zerolog.Disabled {
				l := zerolog.New(zerolog.NewConsoleWriter(func(w *zerolog.ConsoleWriter) { w.Out = cmd.ErrOrStderr() })).With().Timestamp().Logger()
				base = &l
			}
			zlog := base.Level(level)

			ctx := zlog.WithContext(cmd.Context())
			ctx = log.NewContext(ctx, log.NewWithZerolog(cmd.ErrOrStderr(), zlog))
			cmd.SetContext(ctx)
			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.configFile, "config", "c", ".segrep.hcl", "rules file path (.hcl, .yaml, .yml or .json)")
	cmd.PersistentFlags().BoolVarP(&opts.debug, "debug", "d", false, "enable debug logging")

	cmd.AddCommand(
		newApplyCmd(opts),
		newCheckCmd(opts),
		newVersionCmd(),
	)

	return cmd
}

// loadConfig loads and validates the rules file named by --config
func (o *rootOpts) loadConfig(ctx context.Context) (*config.Config, error) {
	cfg, err := config.Load(ctx, o.configFile)
	if err != nil {
		return nil, errors.Errorf("loading config: %w", err)
	}
	return cfg, nil
}
