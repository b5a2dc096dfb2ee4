package export

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"io"
	"log"
	"strings"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/jonathan/resume-wizard/internal/document"
)

//go:embed templates/resume.html.tmpl
var htmlFS embed.FS

var exportHTML = template.Must(template.New("resume.html.tmpl").
	Funcs(template.FuncMap{"upper": strings.ToUpper}).
	ParseFS(htmlFS, "templates/resume.html.tmpl"))

// A4 in inches
const (
	a4Width  = 8.27
	a4Height = 11.69
)

// DefaultChromeTimeout bounds one headless Chrome print
const DefaultChromeTimeout = 30 * time.Second

type htmlDocument struct {
	document.Document
	Separator string
}

// WriteExportHTML renders the fixed-page HTML layout that Chrome prints
func WriteExportHTML(w io.Writer, doc document.Document) error {
	if err := exportHTML.Execute(w, htmlDocument{Document: doc, Separator: document.ContactSeparator}); err != nil {
		return &TemplateError{Message: "failed to execute export HTML template", Cause: err}
	}
	return nil
}

// ChromeSerializer prints the export HTML layout to an A4 PDF in headless Chrome.
// Requires Chrome/Chromium to be installed on the system.
type ChromeSerializer struct {
	Timeout time.Duration
	Logger  *log.Logger
}

// Format implements Serializer
func (s ChromeSerializer) Format() Format { return FormatChromePDF }

// Serialize implements Serializer
func (s ChromeSerializer) Serialize(ctx context.Context, doc document.Document) ([]byte, int, error) {
	logger := s.Logger
	if logger == nil {
		logger = log.Default()
	}
	timeout := s.Timeout
	if timeout <= 0 {
		timeout = DefaultChromeTimeout
	}

	var html bytes.Buffer
	if err := WriteExportHTML(&html, doc); err != nil {
		return nil, 0, err
	}

	pdf, err := printPDF(ctx, html.String(), timeout)
	if err != nil {
		return nil, 0, &RenderError{Format: FormatChromePDF, Message: "headless Chrome print failed", Cause: err}
	}
	return pdf, countPages(ctx, pdf, logger), nil
}

func printPDF(ctx context.Context, html string, timeout time.Duration) ([]byte, error) {
	allocCtx, cancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
		)...,
	)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, timeout)
	defer cancel()

	var pdf []byte
	err := chromedp.Run(browserCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return fmt.Errorf("failed to get frame tree: %w", err)
			}
			return page.SetDocumentContent(tree.Frame.ID, html).Do(ctx)
		}),
		chromedp.WaitReady("body"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			data, _, err := page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(a4Width).
				WithPaperHeight(a4Height).
				WithMarginTop(0).
				WithMarginBottom(0).
				WithMarginLeft(0).
				WithMarginRight(0).
				WithPreferCSSPageSize(true).
				Do(ctx)
			pdf = data
			return err
		}),
	)
	if err != nil {
		return nil, err
	}
	return pdf, nil
}
