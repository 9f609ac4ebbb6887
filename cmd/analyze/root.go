package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"alfredoptarigan/resume-analyzer/internal/bootstrap"
	"alfredoptarigan/resume-analyzer/internal/config"
	"alfredoptarigan/resume-analyzer/internal/logger"
	"alfredoptarigan/resume-analyzer/internal/models"
	"alfredoptarigan/resume-analyzer/internal/services"
)

const app = "analyze"

type options struct {
	resumePath string
	jobPath    string
	jobText    string
	format     string
	outPath    string
	debug      bool
	jsonLog    bool
}

var opts options

var rootCmd = &cobra.Command{
	Use:   app + " --resume resume.pdf (--job job.txt | --job-text TEXT)",
	Short: "analyze scores a résumé against a job description",
	Long: `analyze extracts the name, contact, education, experience and skills from a résumé
and scores how well it fits a job description. Configuration is read from the
environment and an optional .env file, the same as the API server.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return run(cmd.Context(), cmd.OutOrStdout(), opts)
	},
}

func init() {
	rootCmd.Flags().StringVarP(&opts.resumePath, "resume", "r", "", "path to the résumé (PDF, DOCX or TXT)")
	rootCmd.Flags().StringVarP(&opts.jobPath, "job", "j", "", "path to a file holding the job description")
	rootCmd.Flags().StringVar(&opts.jobText, "job-text", "", "job description text")
	rootCmd.Flags().StringVarP(&opts.format, "format", "f", "json", "output format: json or csv")
	rootCmd.Flags().StringVarP(&opts.outPath, "out", "o", "", "write output to this file instead of stdout")
	rootCmd.MarkFlagsMutuallyExclusive("job", "job-text")
	_ = rootCmd.MarkFlagRequired("resume")

	rootCmd.PersistentFlags().BoolVarP(&opts.debug, "debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolVar(&opts.jsonLog, "json", false, "json format for logging")
}

func run(ctx context.Context, stdout io.Writer, o options) error {
	format := strings.ToLower(o.format)
	if format != "json" && format != "csv" {
		return fmt.Errorf("unknown format %q, expected json or csv", o.format)
	}

	jobDescription, err := readJobDescription(o)
	if err != nil {
		return err
	}

	cfg := config.Load()
	zl, err := logger.New(logger.Options{
		Service: app,
		JSON:    o.jsonLog || cfg.Log.JSON,
		Debug:   o.debug || cfg.Log.Debug,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer zl.Sync()

	data, err := os.ReadFile(o.resumePath)
	if err != nil {
		return fmt.Errorf("failed to read resume: %w", err)
	}

	analyzer, err := bootstrap.NewAnalyzer(ctx, cfg, zl)
	if err != nil {
		return err
	}

	result, err := analyzer.Analyze(ctx, services.Document{
		Filename: filepath.Base(o.resumePath),
		Data:     data,
	}, jobDescription)
	if err != nil {
		if errors.Is(err, services.ErrEmptyInput) {
			return fmt.Errorf("%w: provide a résumé and a job description", err)
		}
		return err
	}

	out, err := render(result, format)
	if err != nil {
		return err
	}

	if o.outPath == "" {
		_, err = stdout.Write(out)
		return err
	}

	if err := os.WriteFile(o.outPath, out, 0o644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	zl.Info("analysis written", zap.String("path", o.outPath), zap.String("format", format))
	return nil
}

func readJobDescription(o options) (string, error) {
	if o.jobPath == "" {
		return o.jobText, nil
	}

	data, err := os.ReadFile(o.jobPath)
	if err != nil {
		return "", fmt.Errorf("failed to read job description: %w", err)
	}
	return string(data), nil
}

func render(result *models.AnalysisResult, format string) ([]byte, error) {
	if format == "csv" {
		return services.ExportCSV(result)
	}

	out, err := json.MarshalIndent(models.AnalysisResponse{
		ID:              result.ID.String(),
		Profile:         result.Profile,
		MatchedSkills:   result.MatchedSkills,
		Match:           result.Match,
		JobMatchScore:   services.FormatPercent(result.Match.Similarity),
		OverallFitScore: services.FormatPercent(result.Match.FitScore),
	}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode result: %w", err)
	}
	return append(out, '\n'), nil
}
