// Copyright 2025 Poiesic Systems
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
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/poiesic/sumry"
	"github.com/poiesic/sumry/ai"
	"github.com/poiesic/sumry/server"
	"github.com/poiesic/sumry/summarize"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"
)

// buildService creates a Service from the shared service flags.
func buildService(c *cli.Context) (*sumry.Service, error) {
	aiConfig := ai.NewConfig(
		ai.WithHost(c.String("host")),
		ai.WithModel(c.String("model")),
		ai.WithAPIKey(c.String("api-key")),
		ai.WithTimeouts(
			c.Duration("connect-timeout"),
			c.Duration("read-timeout"),
			c.Duration("write-timeout"),
			c.Duration("pool-timeout"),
		),
	)
	if err := aiConfig.Validate(); err != nil {
		return nil, fmt.Errorf("invalid AI configuration: %w", err)
	}

	sumConfig := summarize.NewConfig(
		summarize.WithModel(aiConfig.Model),
		summarize.WithChunking(c.Int("chunk-size"), c.Int("chunk-overlap")),
		summarize.WithRetry(c.Int("max-retries"), c.Duration("backoff-base")),
		summarize.WithConcurrency(c.Int("concurrency")),
	)
	if err := sumConfig.Validate(); err != nil {
		return nil, fmt.Errorf("invalid summarizer configuration: %w", err)
	}

	opts := []sumry.ServiceOption{
		sumry.WithBackend(c.String("backend")),
		sumry.WithAIConfig(aiConfig),
		sumry.WithSummarizeConfig(sumConfig),
	}
	if dir := c.String("cache-dir"); dir != "" {
		opts = append(opts, sumry.WithCacheDir(dir))
	}

	svc, err := sumry.NewService(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create service: %w", err)
	}
	return svc, nil
}

func isURL(target string) bool {
	return strings.HasPrefix(target, "http://") || strings.HasPrefix(target, "https://")
}

func summarizeCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("expected exactly one <url|path> argument")
	}
	target := c.Args().First()

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	svc, err := buildService(c)
	if err != nil {
		return err
	}
	defer svc.Close()

	var runOpts []sumry.RunOption
	if !c.Bool("quiet") {
		runOpts = append(runOpts, sumry.WithMonitor(summarize.NewProgressMonitor(os.Stderr)))
	}
	if c.Bool("no-cache") {
		runOpts = append(runOpts, sumry.WithoutCache())
	}

	fmt.Fprintf(os.Stderr, "Source: %s\n", target)
	fmt.Fprintf(os.Stderr, "Model: %s (%s)\n", svc.Model(), c.String("backend"))
	fmt.Fprintln(os.Stderr)

	var result *sumry.Result
	if isURL(target) {
		result, err = svc.SummarizeURL(ctx, target, runOpts...)
	} else {
		result, err = svc.SummarizeFile(ctx, target, runOpts...)
	}
	if err != nil {
		return fmt.Errorf("summarization failed: %w", err)
	}
	if result.Cached {
		fmt.Fprintln(os.Stderr, "Using cached summary")
	}

	if err := writeSummary(c.String("output"), os.Stdout, result.Report.Text); err != nil {
		return err
	}

	if !result.Report.Complete() {
		return fmt.Errorf("summarization incomplete: %s", result.Report.Status)
	}
	return nil
}

// writeSummary writes text to the file at path, or to stdout when path is empty.
func writeSummary(path string, stdout io.Writer, text string) error {
	if path == "" {
		_, err := fmt.Fprintln(stdout, text)
		return err
	}
	if err := os.WriteFile(path, []byte(text+"\n"), 0o644); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}
	fmt.Fprintf(os.Stderr, "Summary written to %s\n", path)
	return nil
}

func serveCommand(c *cli.Context) error {
	svc, err := buildService(c)
	if err != nil {
		return err
	}
	defer svc.Close()

	var opts []server.Option
	opts = append(opts, server.WithAddr(c.String("addr")))
	if origins := c.StringSlice("allowed-origin"); len(origins) > 0 {
		opts = append(opts, server.WithAllowedOrigins(origins...))
	}

	srv, err := server.New(svc, opts...)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(srv.Start)
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), c.Duration("shutdown-timeout"))
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

func recentCommand(c *cli.Context) error {
	svc, err := sumry.NewService(sumry.WithCacheDir(c.String("cache-dir")))
	if err != nil {
		return fmt.Errorf("failed to open cache: %w", err)
	}
	defer svc.Close()

	records, err := svc.RecentSummaries(c.Context, c.Int("limit"))
	if err != nil {
		return fmt.Errorf("failed to list summaries: %w", err)
	}
	if len(records) == 0 {
		fmt.Fprintln(os.Stderr, "No cached summaries")
		return nil
	}

	if c.Bool("full") {
		for _, rec := range records {
			fmt.Fprintf(os.Stdout, "## %s\n\n%s | %s | %d chunks (%d failed)\n\n%s\n\n",
				rec.Source, rec.CreatedAt.Local().Format("2006-01-02 15:04"), rec.Model, rec.Chunks, rec.Failed, rec.Summary)
		}
		return nil
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "CREATED\tMODEL\tCHUNKS\tSOURCE")
	for _, rec := range records {
		fmt.Fprintf(tw, "%s\t%s\t%d/%d\t%s\n",
			rec.CreatedAt.Local().Format("2006-01-02 15:04"), rec.Model, rec.Chunks-rec.Failed, rec.Chunks, rec.Source)
	}
	return tw.Flush()
}
