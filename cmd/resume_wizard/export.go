package main

import (
	"fmt"
	"log"

	"github.com/jonathan/resume-wizard/internal/export"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the resume as a downloadable file",
	Long: "Writes <First>_<Last>_Resume.<ext> to the output directory. Requires first name, last name and email. " +
		"Formats: tex (LaTeX source), pdf (compiled with pdflatex), chrome-pdf (printed by headless Chrome).",
	Args: cobra.NoArgs,
	RunE: runExport,
}

var (
	exportFormat   string
	exportOutDir   string
	exportTemplate string
)

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "", "Export format: tex, pdf or chrome-pdf (default from config, else tex)")
	exportCmd.Flags().StringVarP(&exportOutDir, "out", "o", "", "Output directory (default current directory)")
	exportCmd.Flags().StringVarP(&exportTemplate, "template", "t", "", "Path to a custom LaTeX template")

	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, _ []string) error {
	sess, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer sess.close()

	flags := cmd.Flags()
	cfg := sess.cfg
	setString(flags, "format", &cfg.ExportFormat, exportFormat)
	setString(flags, "out", &cfg.OutputDir, exportOutDir)
	setString(flags, "template", &cfg.Template, exportTemplate)

	format, err := export.ParseFormat(cfg.ExportFormat)
	if err != nil {
		return err
	}

	exporter := export.NewExporter(export.Options{
		TemplatePath: cfg.Template,
		Logger:       log.New(cmd.ErrOrStderr(), "", log.LstdFlags),
	})

	artifact, err := exporter.Export(cmd.Context(), sess.store.Snapshot().ResumeData, format)
	if err != nil {
		return fmt.Errorf("failed to generate export: %w", err)
	}

	path, err := artifact.Save(cfg.OutputDir)
	if err != nil {
		return err
	}

	sess.printer.PrintExport(path, artifact.Pages)
	return nil
}
