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
	"errors"
	"fmt"
	"io/fs"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/poiesic/sumry"
	"github.com/poiesic/sumry/ai"
	"github.com/poiesic/sumry/server"
	"github.com/poiesic/sumry/summarize"
	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "sumry",
		Usage: "Technical summaries of long documents using a local LLM",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
				EnvVars: []string{"SUMRY_LOG_LEVEL"},
			},
			&cli.StringFlag{
				Name:  "env-file",
				Usage: "Load environment variables from this file",
				Value: ".env",
			},
		},
		Before: before,
		Commands: []*cli.Command{
			{
				Name:      "summarize",
				Usage:     "Summarize a PDF URL or a local PDF/text file",
				ArgsUsage: "<url|path>",
				Action:    summarizeCommand,
				Flags: append(serviceFlags(),
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Write the summary to this markdown file instead of stdout",
					},
					&cli.BoolFlag{
						Name:  "no-cache",
						Usage: "Ignore cached summaries",
					},
					&cli.BoolFlag{
						Name:  "quiet",
						Usage: "Do not report progress on stderr",
					},
				),
			},
			{
				Name:   "serve",
				Usage:  "Run the HTTP summarization server",
				Action: serveCommand,
				Flags: append(serviceFlags(),
					&cli.StringFlag{
						Name:    "addr",
						Usage:   "Listen address",
						Value:   server.DefaultAddr,
						EnvVars: []string{"SUMRY_ADDR"},
					},
					&cli.StringSliceFlag{
						Name:    "allowed-origin",
						Usage:   "CORS allowed origin (repeatable)",
						EnvVars: []string{"SUMRY_ALLOWED_ORIGINS"},
					},
					&cli.DurationFlag{
						Name:  "shutdown-timeout",
						Usage: "Grace period for in-flight requests on shutdown",
						Value: 30 * time.Second,
					},
				),
			},
			{
				Name:   "recent",
				Usage:  "List recently cached summaries",
				Action: recentCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "cache-dir",
						Usage:    "Path to the summary cache directory",
						EnvVars:  []string{"SUMRY_CACHE_DIR"},
						Required: true,
					},
					&cli.IntFlag{
						Name:    "limit",
						Aliases: []string{"n"},
						Usage:   "Number of summaries to list",
						Value:   10,
					},
					&cli.BoolFlag{
						Name:  "full",
						Usage: "Print the full summary text",
					},
				},
			},
		},
	}
}

// serviceFlags returns the flags shared by every command that summarizes.
func serviceFlags() []cli.Flag {
	aiDefaults := ai.DefaultConfig()
	sumDefaults := summarize.DefaultConfig()

	return []cli.Flag{
		&cli.StringFlag{
			Name:    "backend",
			Usage:   "Generation backend (ollama, openai)",
			Value:   sumry.BackendOllama,
			EnvVars: []string{"SUMRY_BACKEND"},
		},
		&cli.StringFlag{
			Name:    "host",
			Usage:   "Generation service host URL",
			Value:   aiDefaults.Host,
			EnvVars: []string{"SUMRY_HOST"},
		},
		&cli.StringFlag{
			Name:    "model",
			Aliases: []string{"m"},
			Usage:   "Model name",
			Value:   aiDefaults.Model,
			EnvVars: []string{"SUMRY_MODEL"},
		},
		&cli.StringFlag{
			Name:    "api-key",
			Usage:   "API key for OpenAI-compatible backends",
			EnvVars: []string{"SUMRY_API_KEY"},
		},
		&cli.IntFlag{
			Name:    "chunk-size",
			Usage:   "Maximum chunk length in characters",
			Value:   sumDefaults.ChunkSize,
			EnvVars: []string{"SUMRY_CHUNK_SIZE"},
		},
		&cli.IntFlag{
			Name:    "chunk-overlap",
			Usage:   "Characters shared between consecutive chunks",
			Value:   sumDefaults.ChunkOverlap,
			EnvVars: []string{"SUMRY_CHUNK_OVERLAP"},
		},
		&cli.IntFlag{
			Name:    "max-retries",
			Usage:   "Retries after the first attempt of each generation call",
			Value:   sumDefaults.MaxRetries,
			EnvVars: []string{"SUMRY_MAX_RETRIES"},
		},
		&cli.DurationFlag{
			Name:    "backoff-base",
			Usage:   "Base delay for exponential backoff",
			Value:   sumDefaults.BackoffBase,
			EnvVars: []string{"SUMRY_BACKOFF_BASE"},
		},
		&cli.IntFlag{
			Name:    "concurrency",
			Usage:   "Maximum chunks summarized at once (0 for unbounded)",
			Value:   sumDefaults.Concurrency,
			EnvVars: []string{"SUMRY_CONCURRENCY"},
		},
		&cli.DurationFlag{
			Name:    "connect-timeout",
			Usage:   "Connection timeout for the generation service",
			Value:   aiDefaults.ConnectTimeout,
			EnvVars: []string{"SUMRY_CONNECT_TIMEOUT"},
		},
		&cli.DurationFlag{
			Name:    "read-timeout",
			Usage:   "Response timeout for the generation service",
			Value:   aiDefaults.ReadTimeout,
			EnvVars: []string{"SUMRY_READ_TIMEOUT"},
		},
		&cli.DurationFlag{
			Name:    "write-timeout",
			Usage:   "Request write timeout for the generation service",
			Value:   aiDefaults.WriteTimeout,
			EnvVars: []string{"SUMRY_WRITE_TIMEOUT"},
		},
		&cli.DurationFlag{
			Name:    "pool-timeout",
			Usage:   "Idle connection timeout for the generation service",
			Value:   aiDefaults.PoolTimeout,
			EnvVars: []string{"SUMRY_POOL_TIMEOUT"},
		},
		&cli.StringFlag{
			Name:    "cache-dir",
			Usage:   "Cache summaries in this directory",
			EnvVars: []string{"SUMRY_CACHE_DIR"},
		},
	}
}

func before(c *cli.Context) error {
	if err := loadEnvFile(c); err != nil {
		return err
	}
	return setupLogger(c)
}

// loadEnvFile loads the env file. A missing default file is not an error.
func loadEnvFile(c *cli.Context) error {
	path := c.String("env-file")
	if path == "" {
		return nil
	}
	err := godotenv.Load(path)
	if err != nil && errors.Is(err, fs.ErrNotExist) && !c.IsSet("env-file") {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load env file %s: %w", path, err)
	}
	return nil
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	// Map string to slog.Level
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	// Configure slog with the specified level
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
