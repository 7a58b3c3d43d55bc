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
	"strings"

	"github.com/spf13/cobra"
	"github.com/walteh/segrep/pkg/log"
	"gitlab.com/tozd/go/errors"
)

func newCheckCmd(root *rootOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Load and validate the rules file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := log.FromContext(ctx)

			cfg, err := root.loadConfig(ctx)
			if err != nil {
				return errors.Errorf("checking rules: %w", err)
			}

			logger.Header("checking " + root.configFile)
			for i, r := range cfg.Rules {
				files := "all files"
				if len(r.Files) > 0 {
					files = strings.Join(r.Files, ", ")
				}
				logger.Infof("%d %s: %s %q -> %q (%s)", i, r.Name, r.Kind(), r.Expr(), *r.Replace, files)
			}
			logger.Successf("%s is valid (%d rules, engine %s)", root.configFile, len(cfg.Rules), cfg.EngineName())
			return nil
		},
	}
}
