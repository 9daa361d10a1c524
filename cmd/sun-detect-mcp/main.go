package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/ironsheep/sun-detect-mcp/internal/config"
	"github.com/ironsheep/sun-detect-mcp/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

const shutdownTimeout = 10 * time.Second

func main() {
	httpMode := false

	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("sun-detect-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			printHelp()
			return
		case "--http", "http":
			httpMode = true
		default:
			fmt.Fprintf(os.Stderr, "unknown option %q (see --help)\n", os.Args[1])
			os.Exit(2)
		}
	}

	// Configure logging to stderr (stdout is for MCP protocol)
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	// A missing .env is normal; the environment alone is enough
	_ = godotenv.Load()
	cfg := config.Load()

	if cfg.Debug() {
		log.Printf("Sun Detect MCP Server v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
	}

	srv, err := server.New(cfg)
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	if httpMode {
		runHTTP(srv, cfg.HTTPAddr)
		return
	}

	if err := srv.Run(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

// runHTTP serves the HTTP API until SIGINT or SIGTERM.
func runHTTP(srv *server.Server, addr string) {
	app := srv.HTTPApp()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		log.Printf("HTTP server listening on %s", addr)
		errCh <- app.Listen(addr)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			log.Fatalf("HTTP server error: %v", err)
		}
	case <-ctx.Done():
		log.Printf("Shutting down HTTP server")
		if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
			log.Printf("Shutdown error: %v", err)
		}
	}
}

func printHelp() {
	fmt.Println("sun-detect-mcp - find the sun in sky images")
	fmt.Println()
	fmt.Println("Usage: sun-detect-mcp [options]")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --http           Serve the HTTP API instead of MCP over stdio")
	fmt.Println("  --version, -v    Print version information")
	fmt.Println("  --help, -h       Print this help message")
	fmt.Println()
	fmt.Println("Environment variables (also read from ./.env):")
	fmt.Println("  SUN_DETECT_LOG_LEVEL=debug          Enable debug logging")
	fmt.Println("  SUN_DETECT_HTTP_ADDR=:5000          HTTP listen address")
	fmt.Println("  SUN_DETECT_JPEG_QUALITY=90          Quality of annotated JPEG output")
	fmt.Println("  SUN_DETECT_BODY_LIMIT_MB=20         Largest accepted request")
	fmt.Println("  SUN_DETECT_READ_TIMEOUT_SEC=30      HTTP read timeout")
	fmt.Println("  SUN_DETECT_WRITE_TIMEOUT_SEC=30     HTTP write timeout")
	fmt.Println("  SUN_DETECT_CACHE_SIZE=16            Images kept for path-based tools")
	fmt.Println("  SUN_DETECT_BOX_COLOR=#FFFF00        Bounding box color")
	fmt.Println("  SUN_DETECT_MARKER_COLOR=#FF0000     Center marker color")
	fmt.Println("  SUN_DETECT_LABEL=\"Sun Detected\"     Text drawn above the box")
	fmt.Println()
	fmt.Println("Without --http the server speaks MCP over stdin/stdout.")
	fmt.Println("Configure it in your MCP client (e.g., Claude Desktop).")
}
