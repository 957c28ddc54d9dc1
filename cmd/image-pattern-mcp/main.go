package main

import (
	"fmt"
	"log"
	"os"

	"github.com/ironsheep/image-pattern-mcp/internal/config"
	"github.com/ironsheep/image-pattern-mcp/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("image-pattern-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			fmt.Println("image-pattern-mcp - MCP server for image color-pattern fingerprints")
			fmt.Println()
			fmt.Println("Usage: image-pattern-mcp [options]")
			fmt.Println()
			fmt.Println("Options:")
			fmt.Println("  --version, -v    Print version information")
			fmt.Println("  --help, -h       Print this help message")
			fmt.Println()
			fmt.Println("Environment variables:")
			fmt.Printf("  %s=cielab|rgb|hsv    Color space for patterns (default cielab)\n", config.EnvSpace)
			fmt.Printf("  %s=N                  Grid size N×N (default 12)\n", config.EnvSize)
			fmt.Printf("  %s=true            Snap cells to the web color palette\n", config.EnvPalette)
			fmt.Printf("  %s=R                  Gaussian blur radius before sampling (default 0)\n", config.EnvBlur)
			fmt.Printf("  %s=1-100           JPEG quality for rendered patterns (default 100)\n", config.EnvQuality)
			fmt.Printf("  %s=debug              Enable debug logging\n", config.EnvLogLevel)
			fmt.Println()
			fmt.Println("This server communicates via MCP protocol over stdin/stdout.")
			fmt.Println("Configure it in your MCP client (e.g., Claude Desktop).")
			return
		}
	}

	// Configure logging to stderr (stdout is for MCP protocol)
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	cfg, err := config.FromEnv(os.LookupEnv)
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}
	if cfg.Debug() {
		log.Printf("Image Pattern MCP Server v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
		log.Printf("Configuration: %s", cfg)
	}

	server.Version = Version
	srv, err := server.New(cfg)
	if err != nil {
		log.Fatalf("Server setup failed: %v", err)
	}
	if err := srv.Run(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
