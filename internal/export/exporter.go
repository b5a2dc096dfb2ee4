package export

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/jonathan/resume-wizard/internal/document"
	"github.com/jonathan/resume-wizard/internal/types"
)

// Format names an export serializer
type Format string

// Export formats
const (
	FormatTeX       Format = "tex"
	FormatPDF       Format = "pdf"
	FormatChromePDF Format = "chrome-pdf"
)

// Extension returns the file extension for the format
func (f Format) Extension() string {
	if f == FormatTeX {
		return "tex"
	}
	return "pdf"
}

// ContentType returns the MIME type of the format's artifact
func (f Format) ContentType() string {
	if f == FormatTeX {
		return "application/x-tex"
	}
	return "application/pdf"
}

// ParseFormat validates a format name
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatTeX, FormatPDF, FormatChromePDF:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// Serializer turns a resolved document into file bytes. pages is zero when unknown.
type Serializer interface {
	Format() Format
	Serialize(ctx context.Context, doc document.Document) (data []byte, pages int, err error)
}

// Artifact is a finished export ready for download
type Artifact struct {
	FileName    string
	ContentType string
	Data        []byte
	Pages       int
}

// Save writes the artifact into dir under its file name and returns the path
func (a *Artifact) Save(dir string) (string, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	path := filepath.Join(dir, a.FileName)
	if err := os.WriteFile(path, a.Data, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}

// Phase is the exporter's state
type Phase string

// Exporter phases
const (
	PhaseIdle       Phase = "idle"
	PhaseGenerating Phase = "generating"
)

// Status is a point-in-time view of the exporter. After a finished export exactly one of
// Artifact and Err is set.
type Status struct {
	Phase    Phase
	Format   Format
	Artifact *Artifact
	Err      error
}

// Options configures the built-in serializers
type Options struct {
	TemplatePath string
	WorkDir      string
	Logger       *log.Logger
}

// Exporter runs one export at a time: Idle, then Generating, then Idle holding either the
// artifact or the error. Failed exports keep no partial artifact. Nothing is retried.
type Exporter struct {
	mu          sync.Mutex
	status      Status
	serializers map[Format]Serializer
	logger      *log.Logger
}

// NewExporter returns an Exporter with the tex, pdf and chrome-pdf serializers
func NewExporter(opts Options) *Exporter {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	return NewExporterWith(logger,
		TeXSerializer{TemplatePath: opts.TemplatePath},
		PDFSerializer{TemplatePath: opts.TemplatePath, WorkDir: opts.WorkDir, Logger: logger},
		ChromeSerializer{Logger: logger},
	)
}

// NewExporterWith returns an Exporter with exactly the given serializers
func NewExporterWith(logger *log.Logger, serializers ...Serializer) *Exporter {
	if logger == nil {
		logger = log.Default()
	}
	e := &Exporter{
		status:      Status{Phase: PhaseIdle},
		serializers: make(map[Format]Serializer, len(serializers)),
		logger:      logger,
	}
	for _, s := range serializers {
		e.serializers[s.Format()] = s
	}
	return e
}

// Status returns the current state
func (e *Exporter) Status() Status {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.status
}

// Export renders data in the given format. The guard runs first and a non-exportable resume
// returns ErrNotExportable without changing state.
func (e *Exporter) Export(ctx context.Context, data types.ResumeData, format Format) (*Artifact, error) {
	if err := Guard(data.PersonalInfo); err != nil {
		return nil, err
	}
	serializer, ok := e.serializers[format]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	e.mu.Lock()
	if e.status.Phase == PhaseGenerating {
		e.mu.Unlock()
		return nil, ErrExportInProgress
	}
	e.status = Status{Phase: PhaseGenerating, Format: format}
	e.mu.Unlock()

	artifact, err := e.run(ctx, serializer, data)

	e.mu.Lock()
	e.status = Status{Phase: PhaseIdle, Format: format, Artifact: artifact, Err: err}
	e.mu.Unlock()

	if err != nil {
		e.logger.Printf("[export] %s export failed: %v", format, err)
		return nil, err
	}
	return artifact, nil
}

func (e *Exporter) run(ctx context.Context, serializer Serializer, data types.ResumeData) (*Artifact, error) {
	format := serializer.Format()
	out, pages, err := serializer.Serialize(ctx, document.Resolve(data))
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, &RenderError{Format: format, Message: "serializer produced no output"}
	}
	return &Artifact{
		FileName:    FileName(data.PersonalInfo, format.Extension()),
		ContentType: format.ContentType(),
		Data:        out,
		Pages:       pages,
	}, nil
}
