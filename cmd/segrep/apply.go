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
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/segrep/pkg/config"
	"github.com/walteh/segrep/pkg/log"
	"github.com/walteh/segrep/pkg/needle"
	"github.com/walteh/segrep/pkg/remote"
	"github.com/walteh/segrep/pkg/replace"
	"github.com/walteh/segrep/pkg/text"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"
)

type applyOpts struct {
	*rootOpts
	format string
	write  bool
	remote string
	engine string
	jobs   int
}

func newApplyCmd(root *rootOpts) *cobra.Command {
	o := &applyOpts{rootOpts: root}

	cmd := &cobra.Command{
		Use:   "apply [paths...]",
		Short: "Apply the rules to files",
		Long: `Apply runs every rule whose files globs match a document, in rules file order.
Paths may be files, directories or doublestar globs. With --remote they are
matched against the repository tree instead of the local filesystem.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := zerolog.Ctx(cmd.Context()).With().Str("command", "apply").Logger().WithContext(cmd.Context())
			if err := o.run(ctx, cmd.OutOrStdout(), args); err != nil {
				return errors.Errorf("applying rules: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&o.format, "format", "f", string(text.FormatText), "output format: text, json or diff")
	cmd.Flags().BoolVarP(&o.write, "write", "w", false, "rewrite modified local files in place")
	cmd.Flags().StringVarP(&o.remote, "remote", "r", "", "read documents from a repository, e.g. github.com/org/repo@ref")
	cmd.Flags().StringVarP(&o.engine, "engine", "e", "", "pattern engine override: "+strings.Join(needle.EngineNames(), ", "))
	cmd.Flags().IntVarP(&o.jobs, "jobs", "j", 4, "documents processed concurrently")

	return cmd
}

// document is one processed haystack
type document struct {
	op     log.DocumentOperation
	result *text.ReplacementResult[config.Replacement]
}

func (o *applyOpts) run(ctx context.Context, out io.Writer, args []string) error {
	logger := log.FromContext(ctx)

	format, err := text.ParseFormat(o.format)
	if err != nil {
		return err
	}
	if o.jobs < 1 {
		return errors.Errorf("--jobs must be at least 1, got %d", o.jobs)
	}
	if o.write && o.remote != "" {
		return errors.Errorf("--write is not supported with --remote")
	}
	if o.write && format != text.FormatText {
		return errors.Errorf("--write is only supported with the text format")
	}

	cfg, err := o.loadConfig(ctx)
	if err != nil {
		return err
	}

	engineName := cfg.Engine
	if o.engine != "" {
		engineName = o.engine
	}
	engine, err := needle.ParseEngine(engineName)
	if err != nil {
		return err
	}

	var src remote.Source = remote.NewLocal()
	if o.remote != "" {
		src, err = remote.Open(ctx, o.remote)
		if err != nil {
			return errors.Errorf("opening remote: %w", err)
		}
	}

	paths, err := src.List(ctx, args)
	if err != nil {
		return errors.Errorf("listing documents: %w", err)
	}

	logger.StartRunOperation(ctx, log.RunOperation{
		Config: o.configFile,
		Engine: engine.Name(),
		Rules:  len(cfg.Rules),
		Remote: o.remote,
	})

	docs := make([]document, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.jobs)
	for i, path := range paths {
		g.Go(func() error {
			docs[i] = o.process(gctx, src, cfg, engine, path)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return errors.Errorf("processing documents: %w", err)
	}

	failed := 0
	for _, d := range docs {
		logger.LogDocumentOperation(ctx, d.op)
		if d.op.Err != nil {
			failed++
			logger.Errorf("%s: %v", d.op.Path, d.op.Err)
		}
	}
	for _, name := range unusedRules(cfg, src, paths) {
		logger.Warningf("rule %q applies to none of the %d documents", name, len(paths))
	}
	ops := logger.EndRunOperation(ctx)

	if err := o.render(out, format, src.Name(), docs); err != nil {
		return err
	}

	if len(ops) == 0 {
		logger.Warning("no documents matched")
		return nil
	}

	logger.LogNewline()
	if err := logger.Summary(ops); err != nil {
		return err
	}

	if failed > 0 {
		return errors.Errorf("%d of %d documents failed", failed, len(docs))
	}

	total := 0
	for _, op := range ops {
		total += op.Replacements
	}
	logger.Successf("%d replacements across %d documents", total, len(ops))
	return nil
}

// process runs the document's pipeline. Failures are recorded on the operation.
func (o *applyOpts) process(ctx context.Context, src remote.Source, cfg *config.Config, engine needle.Engine, path string) document {
	d := document{op: log.DocumentOperation{Path: path, Source: src.Name()}}
	fail := func(err error) document {
		d.op.Status = "error"
		d.op.Err = err
		return d
	}

	pipeline, err := cfg.Pipeline(rulePath(path, src), engine)
	if err != nil {
		return fail(err)
	}
	d.op.Rules = len(pipeline)
	if len(pipeline) == 0 {
		d.op.Status = "no rules"
		d.op.IsSkipped = true
		return d
	}

	rc, err := src.Open(ctx, path)
	if err != nil {
		return fail(err)
	}
	defer rc.Close()

	result, err := text.Apply(ctx, rc, pipeline, replace.WithEngine(engine))
	if err != nil {
		return fail(err)
	}
	d.result = result
	d.op.Replacements = result.ReplacementCount
	d.op.IsModified = result.WasModified

	switch {
	case !result.WasModified:
		d.op.Status = "unchanged"
	case o.write:
		if err := writeFile(path, result.ModifiedContent); err != nil {
			return fail(err)
		}
		d.op.Status = "written"
		d.op.IsWritten = true
	default:
		d.op.Status = "modified"
	}

	return d
}

// render prints processed documents in the requested format
func (o *applyOpts) render(out io.Writer, format text.Format, source string, docs []document) error {
	switch format {
	case text.FormatJSON:
		var jdocs []text.Document[config.Replacement]
		for _, d := range docs {
			if d.result != nil {
				jdocs = append(jdocs, text.NewDocument(d.op.Path, source, d.result))
			}
		}
		data, err := text.JSON(jdocs...)
		if err != nil {
			return err
		}
		_, err = out.Write(data)
		return err

	case text.FormatDiff:
		for _, d := range docs {
			if d.result == nil || !d.result.WasModified {
				continue
			}
			if _, err := io.WriteString(out, text.Diff(d.op.Path, string(d.result.OriginalContent), string(d.result.ModifiedContent))); err != nil {
				return err
			}
		}
		return nil

	default:
		if o.write {
			return nil
		}
		var printed []document
		for _, d := range docs {
			if d.result != nil {
				printed = append(printed, d)
			}
		}
		for _, d := range printed {
			if len(printed) > 1 {
				fmt.Fprintf(out, "==> %s <==\n", d.op.Path)
			}
			if _, err := out.Write(d.result.ModifiedContent); err != nil {
				return err
			}
		}
		return nil
	}
}

// unusedRules names the rules whose files globs match none of paths
func unusedRules(cfg *config.Config, src remote.Source, paths []string) []string {
	if len(paths) == 0 {
		return nil
	}
	var unused []string
	for _, r := range cfg.Rules {
		used := false
		for _, p := range paths {
			if r.Applies(rulePath(p, src)) {
				used = true
				break
			}
		}
		if !used {
			unused = append(unused, r.Name)
		}
	}
	return unused
}

// rulePath is the path rule globs are matched against: relative to the
// working directory for local files, the repository path otherwise
func rulePath(path string, src remote.Source) string {
	if _, ok := src.(*remote.Local); !ok {
		return path
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	wd, err := os.Getwd()
	if err != nil {
		return path
	}
	rel, err := filepath.Rel(wd, abs)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}

func writeFile(path string, content []byte) error {
	info, err := os.Stat(path)
	if err != nil {
		return errors.Errorf("reading %s: %w", path, err)
	}
	if err := os.WriteFile(path, content, info.Mode().Perm()); err != nil {
		return errors.Errorf("writing %s: %w", path, err)
	}
	return nil
}
