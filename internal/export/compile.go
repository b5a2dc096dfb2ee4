package export

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/jonathan/resume-wizard/internal/document"
)

// CompilationTimeout is the maximum time to wait for LaTeX compilation
const CompilationTimeout = 30 * time.Second

// CompileLaTeX writes tex into workDir and compiles it with pdflatex, returning the PDF path.
// An empty workDir compiles in a fresh temporary directory.
func CompileLaTeX(ctx context.Context, tex, workDir string) (pdfPath string, logOutput string, err error) {
	if _, err := exec.LookPath("pdflatex"); err != nil {
		return "", "", &CompilationError{
			Message: "pdflatex not found in PATH. Please install a LaTeX distribution (e.g., TeX Live, MiKTeX)",
			Cause:   err,
		}
	}

	if workDir == "" {
		workDir, err = os.MkdirTemp("", "latex-compile-*")
		if err != nil {
			return "", "", &CompilationError{Message: "failed to create temporary working directory", Cause: err}
		}
	} else if err := os.MkdirAll(workDir, 0755); err != nil {
		return "", "", &CompilationError{Message: fmt.Sprintf("failed to create working directory: %s", workDir), Cause: err}
	}

	texPath := filepath.Join(workDir, "resume.tex")
	if err := os.WriteFile(texPath, []byte(tex), 0644); err != nil {
		return "", "", &CompilationError{Message: fmt.Sprintf("failed to write LaTeX file to working directory: %s", workDir), Cause: err}
	}

	ctx, cancel := context.WithTimeout(ctx, CompilationTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "pdflatex", "-interaction=nonstopmode", "-halt-on-error", "-output-directory", workDir, texPath)
	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	runErr := cmd.Run()
	logOutput = stdout.String() + stderr.String()

	pdfPath = filepath.Join(workDir, "resume.pdf")
	if _, err := os.Stat(pdfPath); os.IsNotExist(err) {
		return "", logOutput, &CompilationError{
			Message:   "LaTeX compilation failed: PDF was not generated",
			LogOutput: logOutput,
			Cause:     runErr,
		}
	}
	if runErr != nil {
		return "", logOutput, &CompilationError{
			Message:   "LaTeX compilation completed with errors",
			LogOutput: logOutput,
			Cause:     runErr,
		}
	}
	return pdfPath, logOutput, nil
}

// CountPDFPages counts pages with pdfinfo, falling back to ghostscript
func CountPDFPages(ctx context.Context, pdfPath string) (int, error) {
	if count, err := countPagesWithPdfinfo(ctx, pdfPath); err == nil {
		return count, nil
	}
	if count, err := countPagesWithGhostscript(ctx, pdfPath); err == nil {
		return count, nil
	}
	return 0, fmt.Errorf("failed to count PDF pages: neither pdfinfo nor ghostscript available")
}

func countPagesWithPdfinfo(ctx context.Context, pdfPath string) (int, error) {
	output, err := exec.CommandContext(ctx, "pdfinfo", pdfPath).Output()
	if err != nil {
		return 0, fmt.Errorf("pdfinfo command failed: %w", err)
	}
	return parsePdfinfoPages(string(output))
}

func parsePdfinfoPages(output string) (int, error) {
	for _, line := range strings.Split(output, "\n") {
		if !strings.HasPrefix(line, "Pages:") {
			continue
		}
		if parts := strings.Fields(line); len(parts) >= 2 {
			if count, err := strconv.Atoi(parts[1]); err == nil {
				return count, nil
			}
		}
	}
	return 0, fmt.Errorf("could not parse page count from pdfinfo output")
}

func countPagesWithGhostscript(ctx context.Context, pdfPath string) (int, error) {
	script := fmt.Sprintf("(%s) (r) file runpdfbegin pdfpagecount = quit", pdfPath)
	output, err := exec.CommandContext(ctx, "gs", "-q", "-dNODISPLAY", "-dNOSAFER", "-c", script).Output()
	if err != nil {
		return 0, fmt.Errorf("ghostscript command failed: %w", err)
	}
	out := strings.TrimSpace(string(output))
	count, err := strconv.Atoi(out)
	if err != nil {
		return 0, fmt.Errorf("could not parse page count from ghostscript output: %s", out)
	}
	return count, nil
}

// countPages writes data to a temp file and counts its pages. Zero means unknown.
func countPages(ctx context.Context, data []byte, logger *log.Logger) int {
	f, err := os.CreateTemp("", "resume-*.pdf")
	if err != nil {
		return 0
	}
	defer os.Remove(f.Name())
	if _, err := f.Write(data); err != nil {
		f.Close()
		return 0
	}
	if err := f.Close(); err != nil {
		return 0
	}

	pages, err := CountPDFPages(ctx, f.Name())
	if err != nil {
		logger.Printf("[export] page count unavailable: %v", err)
		return 0
	}
	if pages > 1 {
		logger.Printf("[export] resume runs to %d pages", pages)
	}
	return pages
}

// PDFSerializer renders LaTeX and compiles it with pdflatex
type PDFSerializer struct {
	TemplatePath string
	// WorkDir keeps the compilation directory when set; otherwise a temp dir is used and removed
	WorkDir string
	Logger  *log.Logger
}

// Format implements Serializer
func (s PDFSerializer) Format() Format { return FormatPDF }

// Serialize implements Serializer
func (s PDFSerializer) Serialize(ctx context.Context, doc document.Document) ([]byte, int, error) {
	logger := s.Logger
	if logger == nil {
		logger = log.Default()
	}

	tex, err := RenderLaTeX(doc, s.TemplatePath)
	if err != nil {
		return nil, 0, err
	}

	workDir := s.WorkDir
	if workDir == "" {
		workDir, err = os.MkdirTemp("", "latex-compile-*")
		if err != nil {
			return nil, 0, &RenderError{Format: FormatPDF, Message: "failed to create working directory", Cause: err}
		}
		defer os.RemoveAll(workDir)
	}

	pdfPath, _, err := CompileLaTeX(ctx, tex, workDir)
	if err != nil {
		return nil, 0, err
	}
	data, err := os.ReadFile(pdfPath)
	if err != nil {
		return nil, 0, &RenderError{Format: FormatPDF, Message: "failed to read compiled PDF", Cause: err}
	}
	return data, countPages(ctx, data, logger), nil
}
