package main

import (
	"fmt"

	"github.com/jonathan/resume-wizard/internal/document"
	"github.com/jonathan/resume-wizard/internal/generation"
	"github.com/jonathan/resume-wizard/internal/preview"
	"github.com/spf13/cobra"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Render the live preview of the resume",
	Long: "Renders the resume as styled terminal text or as an HTML page. With --generate-summary an empty " +
		"professional summary is generated first through the generation API.",
	Args: cobra.NoArgs,
	RunE: runPreview,
}

var (
	previewFormat          string
	previewWidth           int
	previewPlain           bool
	previewGenerateSummary bool
	previewGenerationURL   string
)

func init() {
	previewCmd.Flags().StringVarP(&previewFormat, "format", "f", "text", "Output format: text or html")
	previewCmd.Flags().IntVarP(&previewWidth, "width", "w", preview.DefaultWidth, "Line width for text output")
	previewCmd.Flags().BoolVar(&previewPlain, "plain", false, "Disable colours in text output")
	previewCmd.Flags().BoolVar(&previewGenerateSummary, "generate-summary", false, "Generate a professional summary when it is empty")
	previewCmd.Flags().StringVar(&previewGenerationURL, "generation-url", "", "Base URL of the generation API (env RESUME_WIZARD_GENERATION_URL)")

	rootCmd.AddCommand(previewCmd)
}

func runPreview(cmd *cobra.Command, _ []string) error {
	if previewFormat != "text" && previewFormat != "html" {
		return fmt.Errorf("unknown preview format %q (want text or html)", previewFormat)
	}

	sess, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer sess.close()

	if previewGenerateSummary && sess.store.PersonalInfo().Summary == "" {
		baseURL := sess.cfg.GenerationURL
		setString(cmd.Flags(), "generation-url", &baseURL, previewGenerationURL)

		summarizer := preview.NewSummarizer(sess.store, generation.NewHTTPClient(baseURL), nil)
		if _, err := summarizer.GenerateSummary(cmd.Context()); err != nil {
			// the preview still renders without a summary
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: failed to generate professional summary: %v\n", err)
		}
	}

	state := sess.store.Snapshot()
	blocks := preview.Blocks(document.Resolve(state.ResumeData), preview.Options{
		ShowGenerateSummary: !previewGenerateSummary,
	})

	out := cmd.OutOrStdout()
	if previewFormat == "html" {
		return preview.WriteHTML(out, blocks, state.Theme)
	}

	styles := preview.DefaultStyles(state.Theme)
	if previewPlain {
		styles = preview.PlainStyles()
	}
	return preview.WriteText(out, blocks, styles, previewWidth)
}
