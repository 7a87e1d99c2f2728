package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"stayscraper/internal/app"
	"stayscraper/internal/config"
	"stayscraper/internal/formatter"
	"stayscraper/internal/pipeline"
	"stayscraper/internal/scraper"

	"github.com/spf13/cobra"
)

var version = "dev"

var (
	envFile      string
	outputFormat string
	outputFile   string
	timeout      time.Duration
	site         string
	step         int
	all          bool
	showUI       bool
	proxyURL     string
)

func main() {
	var rootCmd = &cobra.Command{
		Use:     "stayscraper",
		Short:   "Airbnb listing scraper with a headless browser",
		Version: version,
		Long: `stayscraper renders Airbnb listing pages in a headless browser and extracts
their data in four steps: basic info, price and capacity, amenities and photos.
It runs as an HTTP API or as a one-shot command.`,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&envFile, "env", "", "Path to a .env file (defaults to ./.env when present)")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE:  serve,
	}

	scrapeCmd := &cobra.Command{
		Use:   "scrape [URL]",
		Short: "Scrape one listing and print the result",
		Example: `  # Basic info of a listing
  stayscraper scrape "https://www.airbnb.com.br/rooms/12345"

  # Photos as JSON
  stayscraper scrape --step 4 -f json "https://www.airbnb.com.br/rooms/12345"

  # Every step merged, written as markdown
  stayscraper scrape --all -o listing.md "https://www.airbnb.com.br/rooms/12345"`,
		Args: cobra.ExactArgs(1),
		RunE: scrape,
	}
	scrapeCmd.Flags().IntVar(&step, "step", 1, "Extraction step (1 basic info, 2 price and capacity, 3 amenities, 4 photos)")
	scrapeCmd.Flags().BoolVar(&all, "all", false, "Run every step and merge the results")
	scrapeCmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "Output format (html, text, markdown, json, csv)")
	scrapeCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file path (format inferred from extension if -f not specified)")
	scrapeCmd.Flags().DurationVarP(&timeout, "timeout", "t", 0, "Overall timeout (0 uses the configured retry budget)")
	scrapeCmd.Flags().StringVar(&site, "site", "airbnb", "Site-specific scraper")
	scrapeCmd.Flags().BoolVar(&showUI, "showui", false, "Show browser UI (disable headless mode)")
	scrapeCmd.Flags().StringVarP(&proxyURL, "proxy", "p", "", "Proxy URL (e.g. http://127.0.0.1:7890), defaults to PROXY_URL")

	rootCmd.AddCommand(serveCmd, scrapeCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig() (*config.AppConfig, error) {
	if envFile != "" {
		return config.Load(envFile)
	}
	return config.Load()
}

func serve(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	a, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return a.Serve(ctx)
}

func scrape(cmd *cobra.Command, args []string) error {
	target := args[0]

	// If output file is specified but format is not, infer format from file extension
	if outputFile != "" && !cmd.Flags().Changed("format") {
		if inferred := formatter.InferFromExtension(outputFile); inferred != "" {
			outputFormat = inferred
		}
	}
	if !formatter.Valid(outputFormat) {
		return fmt.Errorf("invalid output format: %s", outputFormat)
	}

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if showUI {
		cfg.Browser.Headless = false
	}
	if proxyURL != "" {
		cfg.Browser.ProxyURL = proxyURL
	}

	a, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer a.Close()
	scraper.Register(pipeline.NewScraper(a.Orchestrator()))

	s, ok := scraper.Get(site)
	if !ok {
		return fmt.Errorf("unknown site: %s (available: %v)", site, scraper.Names())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	content, scrapeErr := s.Scrape(ctx, target, scraper.Options{Step: step, All: all, Timeout: timeout})
	if content == nil {
		return fmt.Errorf("failed to scrape: %w", scrapeErr)
	}

	outputContent, err := formatter.Format(content, outputFormat)
	if err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}

	if outputFile != "" {
		if err := os.WriteFile(outputFile, []byte(outputContent), 0644); err != nil {
			return fmt.Errorf("failed to write to file: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Output written to: %s\n", outputFile)
	} else {
		fmt.Println(outputContent)
	}

	if scrapeErr != nil {
		return fmt.Errorf("failed to scrape: %w", scrapeErr)
	}
	return nil
}
