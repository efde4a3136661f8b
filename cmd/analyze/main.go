package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spacesedan/lyricflow/config"
	"github.com/spacesedan/lyricflow/internal/app"
	"github.com/spacesedan/lyricflow/internal/ingest"
	"github.com/spacesedan/lyricflow/internal/logging"
	"github.com/spacesedan/lyricflow/internal/models"
	"github.com/spacesedan/lyricflow/internal/sentiment"
)

func main() {
	filePath := flag.String("file", "", "lyric file to analyze (.txt, .csv, .md); reads stdin when empty")
	asJSON := flag.Bool("json", false, "print the report as JSON")
	timeout := flag.Duration("timeout", 2*time.Minute, "overall analysis timeout")
	flag.Parse()

	config.LoadEnv(config.AppEnv())
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logging.InitLogger(cfg.LogLevel)

	text, err := readInput(*filePath)
	if err != nil {
		slog.Error("[Analyze] Failed to read input", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if strings.TrimSpace(text) == "" {
		fmt.Fprintln(os.Stderr, "Please write something to analyze.")
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	pipeline, err := app.Build(ctx, cfg, false)
	if err != nil {
		slog.Error("[Analyze] Failed to build analysis pipeline", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pipeline.Close()

	report, err := pipeline.Analyzer.Report(ctx, text)
	if err != nil {
		slog.Error("[Analyze] Analysis failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			slog.Error("[Analyze] Failed to encode report", slog.String("error", err.Error()))
			os.Exit(1)
		}
		return
	}
	printReport(os.Stdout, report)
}

func readInput(path string) (string, error) {
	if path == "" {
		data, err := io.ReadAll(io.LimitReader(os.Stdin, ingest.MAX_UPLOAD_BYTES+1))
		if err != nil {
			return "", err
		}
		return ingest.DecodeUpload("stdin.txt", data)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return ingest.DecodeUpload(filepath.Base(path), data)
}

func printReport(w io.Writer, report models.AnalysisReport) {
	band := sentiment.ClassifyPolarity(report.SentimentPolarity)
	fmt.Fprintf(w, "Sentiment:    %s %.2f (%s)\n", sentiment.BandEmoji(band), report.SentimentPolarity, sentiment.PolarityCaption(band))
	fmt.Fprintf(w, "Subjectivity: %.2f (%s)\n", report.Subjectivity, sentiment.SubjectivityCaption(report.Subjectivity))
	if report.TranslationFallback {
		fmt.Fprintln(w, "Translation unavailable, analyzed the original text.")
	}

	fmt.Fprintln(w, "\nTop words:")
	for _, wf := range report.TopWords(10) {
		fmt.Fprintf(w, "  %-20s %d\n", wf.Word, wf.Count)
	}

	fmt.Fprintln(w, "\nSentences:")
	for _, ss := range report.SentenceSentiments {
		fmt.Fprintf(w, "  %d. %s %s (%.2f)\n", ss.Index, sentiment.BandEmoji(ss.Band), ss.Text, ss.Polarity)
	}
}
