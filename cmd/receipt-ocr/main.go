package main

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"
	"github.com/zombor/receipt-ocr/internal/receipt"
	"github.com/zombor/receipt-ocr/internal/scanning"
)

//go:embed VERSION.txt
var versionFile string

var version = strings.TrimSpace(versionFile)

func main() {
	// Check for version flag before parsing other flags
	for _, arg := range os.Args[1:] {
		if arg == "--version" || arg == "-version" || arg == "-v" {
			fmt.Println(version)
			os.Exit(0)
		}
	}

	fs := ff.NewFlagSet("receipt-ocr")
	var (
		input       = fs.StringLong("input", "", "Process a single PDF or image and exit")
		output      = fs.StringLong("output", "ocr-transcript.txt", "Transcript file written by --input")
		port        = fs.IntLong("port", 8080, "HTTP server port")
		dbPath      = fs.StringLong("db", "receipt-ocr.db", "Database file path")
		storagePath = fs.StringLong("storage", "./documents", "Storage directory path")
		ocrType     = fs.StringLong("ocr", "tesseract", "OCR engine: 'tesseract', 'gemini' or 'ollama'")
		lang        = fs.StringLong("lang", "eng", "Tesseract languages, '+' separated (e.g. eng+fra)")
		dpi         = fs.IntLong("dpi", scanning.DefaultDPI, "Resolution PDF pages are rendered at")
		textLayer   = fs.BoolLong("text-layer", "Use the embedded text of digital PDFs instead of OCR when available")
		geminiKey   = fs.StringLong("gemini-key", "", "Google Gemini API key (or set GEMINI_API_KEY env var)")
		geminiModel = fs.StringLong("gemini-model", "gemini-2.5-pro", "Google Gemini model name")
		ollamaURL   = fs.StringLong("ollama-url", "http://localhost:11434", "Ollama API base URL")
		ollamaModel = fs.StringLong("ollama-model", "llava", "Ollama vision model name (e.g., llava, qwen2-vl)")
		authUser    = fs.StringLong("auth-user", "", "Basic auth username (optional)")
		authPass    = fs.StringLong("auth-pass", "", "Basic auth password (optional)")
		showVersion = fs.BoolLong("version", "Show version information")
	)

	if err := ff.Parse(fs, os.Args[1:],
		ff.WithEnvVarPrefix("RECEIPT_OCR"),
	); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", ffhelp.Flags(fs))
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	if *showVersion {
		fmt.Println(version)
		os.Exit(0)
	}

	scanner, err := newScanner(*ocrType, scannerOptions{
		languages:   strings.Split(*lang, "+"),
		dpi:         float64(*dpi),
		geminiKey:   *geminiKey,
		geminiModel: *geminiModel,
		ollamaURL:   *ollamaURL,
		ollamaModel: *ollamaModel,
	})
	if err != nil {
		slog.Error("Failed to initialize OCR engine", "ocr", *ocrType, "error", err)
		os.Exit(1)
	}
	if *textLayer {
		scanner = scanning.NewTextLayer(scanner)
	}
	defer scanner.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *input != "" {
		if err := processFile(ctx, os.Stdout, scanner, *input, *output); err != nil {
			slog.Error("Failed to process file", "input", *input, "error", err)
			os.Exit(1)
		}
		return
	}

	if err := serve(ctx, scanner, *dbPath, *storagePath, *port, receipt.BasicAuth{
		Username: *authUser,
		Password: *authPass,
	}); err != nil {
		slog.Error("Server error", "error", err)
		os.Exit(1)
	}
}

type scannerOptions struct {
	languages   []string
	dpi         float64
	geminiKey   string
	geminiModel string
	ollamaURL   string
	ollamaModel string
}

func newScanner(kind string, opts scannerOptions) (scanning.Scanner, error) {
	switch kind {
	case "tesseract":
		slog.Info("Initializing Tesseract scanner...", "languages", opts.languages, "dpi", opts.dpi)
		return scanning.NewTesseract(opts.languages, opts.dpi)
	case "gemini":
		apiKey := opts.geminiKey
		if apiKey == "" {
			apiKey = os.Getenv("GEMINI_API_KEY")
		}
		if apiKey == "" {
			return nil, errors.New("gemini API key is required: set --gemini-key or GEMINI_API_KEY")
		}
		slog.Info("Initializing Gemini scanner...", "model", opts.geminiModel)
		return scanning.NewGemini(apiKey, opts.geminiModel, opts.dpi)
	case "ollama":
		slog.Info("Initializing Ollama scanner...", "url", opts.ollamaURL, "model", opts.ollamaModel)
		return scanning.NewOllama(opts.ollamaURL, opts.ollamaModel, opts.dpi)
	}
	return nil, fmt.Errorf("invalid OCR engine %q: valid values are tesseract, gemini or ollama", kind)
}

// processFile runs one document through OCR and extraction, prints every page
// and writes the transcript
func processFile(ctx context.Context, w io.Writer, scanner scanning.Scanner, input, output string) error {
	data, err := os.ReadFile(input)
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	slog.Info("Processing file", "input", input)
	pages, err := receipt.Analyze(ctx, scanner, data, receipt.DetectContentType(input, ""))
	if err != nil {
		return err
	}
	slog.Info("Document scanned", "pages", len(pages))

	for _, page := range pages {
		if err := receipt.WriteSummary(w, page); err != nil {
			return fmt.Errorf("writing summary: %w", err)
		}
	}

	if err := os.WriteFile(output, []byte(receipt.BuildTranscript(pages)), 0644); err != nil {
		return fmt.Errorf("writing transcript: %w", err)
	}
	slog.Info("Transcript saved", "output", output)
	return nil
}

func serve(ctx context.Context, scanner scanning.Scanner, dbPath, storagePath string, port int, auth receipt.BasicAuth) error {
	slog.Info("Initializing database...")
	db, err := receipt.NewBoltDB(dbPath)
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	defer db.Close()

	slog.Info("Initializing storage...")
	store, err := receipt.NewLocalStorage(storagePath)
	if err != nil {
		return fmt.Errorf("initializing storage: %w", err)
	}

	service := receipt.NewService(db, scanner, store)
	server := receipt.NewServer(service, auth)

	addr := fmt.Sprintf(":%d", port)
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start(addr)
	}()

	slog.Info("Server started", "address", fmt.Sprintf("http://localhost%s", addr))
	if auth.Username != "" || auth.Password != "" {
		slog.Info("Basic auth enabled", "user", auth.Username)
	}

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		slog.Info("Shutting down...")
		return nil
	}
}
