package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ironsheep/usv-vision/internal/client"
	"github.com/ironsheep/usv-vision/internal/command"
	"github.com/ironsheep/usv-vision/internal/config"
	"github.com/ironsheep/usv-vision/internal/logging"
)

const rule = "======================================================================"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "usv-client: load config: %v\n", err)
		os.Exit(1)
	}

	serverURL := flag.String("server", cfg.ServerURL, "base URL of the usv-vision server")
	imagePath := flag.String("image", "./model_architecture.png", "image file to analyse")
	timeout := flag.Duration("timeout", cfg.ClientTimeout, "per-request timeout")
	flag.Parse()

	log, err := logging.New(cfg.LogLevel, "console")
	if err != nil {
		fmt.Fprintf(os.Stderr, "usv-client: init logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if _, err := os.Stat(*imagePath); err != nil {
		fmt.Println(rule)
		fmt.Println("Aborting: the image path does not exist.")
		fmt.Printf("   path: '%s'\n", *imagePath)
		fmt.Println()
		fmt.Println("   Pass -image with the path of an image file that exists")
		fmt.Println("   on this machine.")
		fmt.Println(rule)
		os.Exit(1)
	}

	// The server resolves paths from its own working directory.
	path, err := filepath.Abs(*imagePath)
	if err != nil {
		log.Fatal("resolve image path", zap.Error(err))
	}

	c := client.New(*serverURL, *timeout, log)
	ctx := context.Background()
	base := strings.TrimRight(*serverURL, "/")

	fmt.Println("--- thermal count (THERMAL_USV_COUNT) ---")
	call(ctx, os.Stdout, c, base, client.ThermalCountPath, command.NewCommand(command.ThermalUSVCount, path))
	fmt.Println()
	fmt.Println(rule)
	fmt.Println()

	fmt.Println("--- visible identify (VISIBLE_USV_IDENTIFY) ---")
	call(ctx, os.Stdout, c, base, client.VisibleIdentifyPath, command.NewCommand(command.VisibleUSVIdentify, path))
}

type sender interface {
	Send(ctx context.Context, path string, cmd command.Command) (*client.Reply, error)
}

// call prints cmd, sends it to route and prints whatever came back.
func call(ctx context.Context, w io.Writer, c sender, base, route string, cmd command.Command) {
	fmt.Fprintf(w, ">> sending request to %s%s\n", base, route)
	body, err := json.Marshal(cmd)
	if err != nil {
		fmt.Fprintf(w, "encode request: %v\n", err)
		return
	}
	fmt.Fprintln(w, "Request Body:")
	fmt.Fprintln(w, indent(body))

	start := time.Now()
	reply, err := c.Send(ctx, route, cmd)
	if reply != nil {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "<< response received")
		fmt.Fprintf(w, "HTTP Status Code: %d\n", reply.StatusCode)
		fmt.Fprintln(w, "Response Body:")
		fmt.Fprintln(w, indent(reply.Body))
	}
	if err != nil {
		fmt.Fprintf(w, "\nrequest error: %v\n", err)
		return
	}
	fmt.Fprintf(w, "\n%s (%s)\n", reply.Summary(), time.Since(start).Round(time.Millisecond))
}

// indent pretty-prints raw JSON, falling back to the raw text.
func indent(raw []byte) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return string(raw)
	}
	return buf.String()
}
