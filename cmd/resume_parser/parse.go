package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-parser/internal/config"
	"github.com/jonathan/resume-parser/internal/inference"
	"github.com/jonathan/resume-parser/internal/ledger"
	"github.com/jonathan/resume-parser/internal/llm"
	"github.com/jonathan/resume-parser/internal/pipeline"
)

var parseCommand = &cobra.Command{
	Use:   "parse",
	Short: "Parse every resume in a directory into the CSV ledger",
	Long: `Scans the resume directory for supported files, extracts text, runs structured
extraction against Gemini, validates the result, and appends one row per resume
to the CSV ledger. Files already present in the ledger are skipped.

Configuration can be loaded from a JSON file using --config. Command-line arguments override config file values.`,
	RunE: runParseCmd,
}

var (
	parseConfigPath string
	parseResumeDir  string
	parseOutputCSV  string
	parseAPIKey     string
	parseModel      string
	parseVerbose    bool
)

func init() {
	// Config file flag (processed first)
	parseCommand.Flags().StringVar(&parseConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")

	parseCommand.Flags().StringVarP(&parseResumeDir, "resumes", "r", "", "Directory containing resume files")
	parseCommand.Flags().StringVarP(&parseOutputCSV, "output", "o", "", "Path of the CSV ledger")
	parseCommand.Flags().StringVarP(&parseModel, "model", "m", "", "Gemini model name override")
	parseCommand.Flags().BoolVarP(&parseVerbose, "verbose", "v", false, "Print detailed record summaries")

	// API key can be passed as a flag, or read from env var GEMINI_API_KEY
	parseCommand.Flags().StringVar(&parseAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")

	rootCmd.AddCommand(parseCommand)
}

func runParseCmd(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	// Step 1: Load config file if provided
	var cfg config.Config
	if parseConfigPath != "" {
		loadedCfg, err := config.LoadConfig(parseConfigPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = *loadedCfg
		if parseVerbose {
			_, _ = fmt.Fprintf(os.Stdout, "Loaded config from: %s\n", parseConfigPath)
		}
	}

	// Step 2: Apply CLI overrides (command-line args take priority)
	// Only override if the flag was explicitly set
	if cmd.Flags().Changed("resumes") {
		cfg.ResumeDir = parseResumeDir
	}
	if cmd.Flags().Changed("output") {
		cfg.OutputCSV = parseOutputCSV
	}
	if cmd.Flags().Changed("api-key") {
		cfg.APIKey = parseAPIKey
	}
	if cmd.Flags().Changed("model") {
		cfg.Model = parseModel
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = parseVerbose
	}

	// Step 3: Apply defaults for unset values
	cfg = cfg.MergeWithDefaults(config.Config{
		ResumeDir: "resumes",
		OutputCSV: "resume_details.csv",
	})

	// Step 4: API Key handling
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if cfg.APIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable or --api-key flag is required")
	}

	// Step 5: Validate after merging so missing directories are caught up front
	if err := cfg.Validate(); err != nil {
		return err
	}

	llmCfg := llm.DefaultConfig()
	if cfg.Model != "" {
		llmCfg = llmCfg.WithModel(llm.TierLite, cfg.Model)
	}

	client, err := llm.NewClient(ctx, llmCfg, cfg.APIKey)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer func() { _ = client.Close() }()

	summary, err := pipeline.RunBatch(ctx, pipeline.Options{
		ResumeDir: cfg.ResumeDir,
		Inference: inference.NewService(client),
		Store:     ledger.New(cfg.OutputCSV),
		Verbose:   cfg.Verbose,
	})
	if err != nil {
		return err
	}

	if failed := summary.Failures(); len(failed) > 0 {
		return fmt.Errorf("%d of %d file(s) failed", len(failed), len(summary.Outcomes))
	}
	return nil
}
