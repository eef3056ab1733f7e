package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"github.com/epy0n0ff/trigger-guard/internal/config"
	"github.com/epy0n0ff/trigger-guard/internal/gate"
	"github.com/epy0n0ff/trigger-guard/internal/github"
)

var version = "dev"

type cli struct {
	EnvFile string           `help:"Load environment variables from a dotenv file before reading configuration" type:"existingfile" short:"e"`
	Debug   bool             `help:"Enable debug logging (same as INPUT_DEBUG=true)" short:"d"`
	Version kong.VersionFlag `help:"Show version"`
}

func main() {
	var c cli
	kong.Parse(&c,
		kong.UsageOnError(),
		kong.Name("trigger-guard"),
		kong.Description("trigger-guard verifies that a workflow was triggered by a human with write access"),
		kong.Vars{"version": version},
	)

	if err := c.run(context.Background()); err != nil {
		log.Fatalf("::error::%v", err)
	}
}

func (c *cli) run(ctx context.Context) error {
	if c.EnvFile != "" {
		if err := godotenv.Load(c.EnvFile); err != nil {
			return fmt.Errorf("failed to load env file %s: %w", c.EnvFile, err)
		}
	}

	// Validate we're running in GitHub Actions environment
	if os.Getenv("GITHUB_ACTIONS") != "true" {
		log.Println("Warning: Not running in GitHub Actions environment")
		log.Println("This action is designed to run as a GitHub Action")
	}

	// Parse configuration from environment
	cfg, err := config.ParseFromEnv()
	if err != nil {
		return fmt.Errorf("failed to parse configuration: %w", err)
	}
	if c.Debug {
		cfg.Debug = true
	}

	if cfg.Debug {
		log.Println("Debug mode enabled")
		log.Printf("Configuration: Actor=%s, Repo=%s, AllowedActors=%v, Host=%s",
			cfg.Actor, cfg.Repository.FullName, cfg.AllowedActors, cfg.GHHost)
		if len(cfg.AdditionalPermissions) > 0 {
			log.Printf("Additional permissions: %v", cfg.AdditionalPermissions)
		}
		if len(cfg.AllowedTools) > 0 || len(cfg.DisallowedTools) > 0 {
			log.Printf("Tools: allowed=%v, disallowed=%v", cfg.AllowedTools, cfg.DisallowedTools)
		}
	}

	// Create GitHub API client
	client, err := github.NewClient(cfg.GitHubToken, cfg.GHHost)
	if err != nil {
		return fmt.Errorf("failed to create GitHub client: %w", err)
	}

	decision, err := gate.Run(ctx, client, cfg)
	if decision != nil {
		if outErr := outputResult(decision); outErr != nil {
			log.Printf("::warning::Failed to write outputs: %v", outErr)
		}
	}
	return err
}

// outputResult writes the action outputs, to $GITHUB_OUTPUT when available
func outputResult(d *gate.Decision) error {
	outputs := [][2]string{
		{"allowed", strconv.FormatBool(d.Allowed)},
		{"actor", d.Actor},
		{"repository", d.Repository.FullName},
		{"reason", d.Reason},
	}

	var w io.Writer = os.Stdout
	format := "::set-output name=%s::%s\n"
	if path := os.Getenv("GITHUB_OUTPUT"); path != "" {
		f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("failed to open GITHUB_OUTPUT: %w", err)
		}
		defer f.Close()
		w = f
		format = "%s=%s\n"
	}

	if err := writeOutputs(w, format, outputs); err != nil {
		return err
	}

	// Also output JSON for debugging
	jsonOutput, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output as JSON: %w", err)
	}
	fmt.Printf("\nResult:\n%s\n", string(jsonOutput))
	return nil
}

func writeOutputs(w io.Writer, format string, outputs [][2]string) error {
	for _, kv := range outputs {
		if _, err := fmt.Fprintf(w, format, kv[0], kv[1]); err != nil {
			return err
		}
	}
	return nil
}
