// murf-agent: voice-agent dialogue core as an MCP server.
//
// Serves one conversational agent over MCP stdio: the driving LLM
// runtime calls the agent's tools to fill in the task record, switch
// personas and topics, and finalize the result. One process serves one
// conversation.
//
// Usage:
//
//	murf-agent serve [agent]   # Start the MCP server (default agent: barista)
//	murf-agent agents          # List the available agents
//	murf-agent seed            # Seed the fraud-case database with sample data
//	murf-agent update          # Update to the latest version
package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/Xzone2486/Murf/internal/agents"
	"github.com/Xzone2486/Murf/internal/cases"
	murfserver "github.com/Xzone2486/Murf/internal/server"
	"github.com/Xzone2486/Murf/internal/updater"
	"github.com/mark3labs/mcp-go/server"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "serve":
		agent := "barista"
		if len(os.Args) > 2 {
			agent = os.Args[2]
		}
		if err := run(agent); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "agents":
		if err := listAgents(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "seed":
		if err := runSeed(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "update":
		runUpdate()
	case "--help", "-h", "help":
		printUsage()
		os.Exit(0)
	case "--version", "-v", "version":
		fmt.Printf("murf-agent v%s\n", murfserver.Version)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func run(agent string) error {
	s, cleanup, err := murfserver.New(agent)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}
	defer cleanup()

	// Background version check — prints to stderr so it doesn't
	// interfere with MCP's stdio transport on stdout.
	go checkForUpdates()

	// Graceful shutdown on interrupt.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		cleanup()
		os.Exit(0)
	}()

	return server.ServeStdio(s)
}

// listAgents prints every built-in and user-defined agent.
func listAgents() error {
	cfg := murfserver.DefaultConfig()
	all, err := agents.All(filepath.Join(cfg.DataDir, "agents"))
	if err != nil {
		return err
	}
	for _, a := range all {
		fmt.Printf("%-12s %s\n", a.Name, a.Label)
	}
	return nil
}

// runSeed creates the sample fraud case so the verification agent has
// something to look up.
func runSeed() error {
	store, err := cases.New(cases.Config{DataDir: murfserver.DefaultConfig().DataDir})
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	if err := store.Seed(); err != nil {
		return err
	}
	fmt.Fprintln(os.Stderr, "Fraud-case database seeded.")
	return nil
}

// checkForUpdates runs a best-effort version check in the background;
// network failures are silently ignored.
func checkForUpdates() {
	result := updater.CheckVersion(murfserver.Version)
	if result.UpdateAvailable {
		fmt.Fprintf(os.Stderr,
			"\n  Update available: v%s -> v%s\n"+
				"  Run: murf-agent update\n"+
				"  Release: %s\n\n",
			result.CurrentVersion, result.LatestVersion, result.ReleaseURL,
		)
	}
}

// runUpdate performs a self-update to the latest release.
func runUpdate() {
	fmt.Fprintln(os.Stderr, "Checking for updates...")

	result := updater.CheckVersion(murfserver.Version)
	if !result.UpdateAvailable {
		fmt.Fprintf(os.Stderr, "Already at the latest version (v%s)\n", result.CurrentVersion)
		return
	}

	fmt.Fprintf(os.Stderr, "Downloading v%s...\n", result.LatestVersion)
	if err := updater.SelfUpdate(murfserver.Version); err != nil {
		fmt.Fprintf(os.Stderr, "Update failed: %v\n", err)
		fmt.Fprintf(os.Stderr, "You can download manually from:\n  %s\n", result.ReleaseURL)
		os.Exit(1)
	}

	fmt.Fprintf(os.Stderr, "Updated to v%s. Restart murf-agent to use the new version.\n", result.LatestVersion)
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `murf-agent v%s — voice-agent dialogue core (MCP server)

Usage:
  murf-agent serve [agent]   Start the MCP server for an agent (default: barista)
  murf-agent agents          List the available agents
  murf-agent seed            Seed the fraud-case database with sample data
  murf-agent update          Update to the latest version

Configuration:
  Add to your MCP client's config:

  {
    "mcpServers": {
      "murf-barista": {
        "command": "murf-agent",
        "args": ["serve", "barista"]
      }
    }
  }

Data (records, case database, user agents) lives under ~/.murf-agent.
User-defined agents are YAML files in ~/.murf-agent/agents/.

Learn more: https://github.com/Xzone2486/Murf
`, murfserver.Version)
}
