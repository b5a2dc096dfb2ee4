package main

import (
	"fmt"

	"github.com/jonathan/resume-wizard/internal/editor"
	"github.com/jonathan/resume-wizard/internal/generation"
	"github.com/jonathan/resume-wizard/internal/types"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var workCmd = &cobra.Command{
	Use:   "work",
	Short: "Manage work experience entries",
}

var workAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a work experience entry",
	Args:  cobra.NoArgs,
	RunE:  runWorkAdd,
}

var workUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update fields of a work experience entry",
	Long:  "Only the given flags change; --bullet replaces the whole bullet list when given.",
	Args:  cobra.ExactArgs(1),
	RunE:  runWorkUpdate,
}

var workRemoveCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Remove a work experience entry",
	Args:  cobra.ExactArgs(1),
	RunE:  runWorkRemove,
}

var workListCmd = &cobra.Command{
	Use:   "list",
	Short: "List work experience entries",
	Args:  cobra.NoArgs,
	RunE:  runWorkList,
}

var workGenerateCmd = &cobra.Command{
	Use:   "generate-bullets <id>",
	Short: "Generate bullet points for a work experience entry",
	Long: "Asks the generation API for 3-5 bullet points based on the entry's job title and company. " +
		"The bullets are printed; pass --save to replace the entry's description with them.",
	Args: cobra.ExactArgs(1),
	RunE: runWorkGenerate,
}

type workFlagValues struct {
	title, company, location, start, end string
	current                              bool
	bullets                              []string
}

var (
	workAddFlags     workFlagValues
	workUpdateFlags  workFlagValues
	workGenerateURL  string
	workGenerateSave bool
)

func bindWorkFlags(f *pflag.FlagSet, v *workFlagValues) {
	f.StringVarP(&v.title, "title", "t", "", "Job title")
	f.StringVar(&v.company, "company", "", "Company")
	f.StringVar(&v.location, "location", "", "Location")
	f.StringVar(&v.start, "start", "", "Start date (YYYY-MM)")
	f.StringVar(&v.end, "end", "", "End date (YYYY-MM)")
	f.BoolVar(&v.current, "current", false, "I currently work here (end date becomes Present)")
	f.StringArrayVarP(&v.bullets, "bullet", "b", nil, "Description bullet (repeatable)")
}

func init() {
	bindWorkFlags(workAddCmd.Flags(), &workAddFlags)
	bindWorkFlags(workUpdateCmd.Flags(), &workUpdateFlags)
	workGenerateCmd.Flags().StringVar(&workGenerateURL, "generation-url", "", "Base URL of the generation API (env RESUME_WIZARD_GENERATION_URL)")
	workGenerateCmd.Flags().BoolVar(&workGenerateSave, "save", false, "Save the generated bullets to the entry")

	workCmd.AddCommand(workAddCmd, workUpdateCmd, workRemoveCmd, workListCmd, workGenerateCmd)
	rootCmd.AddCommand(workCmd)
}

// applyWorkFlags copies the changed flags into the editor's draft
func applyWorkFlags(ed *editor.WorkEditor, flags *pflag.FlagSet, v workFlagValues) {
	ed.Update(func(w *types.WorkExperience) {
		setString(flags, "title", &w.JobTitle, v.title)
		setString(flags, "company", &w.Company, v.company)
		setString(flags, "location", &w.Location, v.location)
		setString(flags, "start", &w.StartDate, v.start)
		setString(flags, "end", &w.EndDate, v.end)
		if flags.Changed("bullet") {
			w.Description = append([]string(nil), v.bullets...)
		}
	})
	if flags.Changed("current") {
		ed.SetCurrentRole(v.current)
	}
}

func runWorkAdd(cmd *cobra.Command, _ []string) error {
	sess, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer sess.close()

	ed := editor.NewWorkEditor(sess.store, nil)
	applyWorkFlags(ed, cmd.Flags(), workAddFlags)

	id, err := ed.CommitDraft()
	if err != nil {
		return sess.reportValidation(err)
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Added work experience %s\n", id)
	return nil
}

func runWorkUpdate(cmd *cobra.Command, args []string) error {
	sess, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer sess.close()

	ed := editor.NewWorkEditor(sess.store, nil)
	if err := ed.BeginEdit(args[0]); err != nil {
		return err
	}
	applyWorkFlags(ed, cmd.Flags(), workUpdateFlags)

	id, err := ed.CommitDraft()
	if err != nil {
		return sess.reportValidation(err)
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Updated work experience %s\n", id)
	return nil
}

func runWorkRemove(cmd *cobra.Command, args []string) error {
	sess, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer sess.close()

	if _, ok := sess.store.WorkExperience(args[0]); !ok {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "No work experience with id %s\n", args[0])
		return nil
	}
	sess.store.RemoveWorkExperience(args[0])
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Removed work experience %s\n", args[0])
	return nil
}

func runWorkList(cmd *cobra.Command, _ []string) error {
	sess, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer sess.close()

	sess.printer.PrintWorkExperience(sess.store.Snapshot().ResumeData.WorkExperience)
	return nil
}

func runWorkGenerate(cmd *cobra.Command, args []string) error {
	sess, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer sess.close()

	ed := editor.NewWorkEditor(sess.store, nil)
	if err := ed.BeginEdit(args[0]); err != nil {
		return err
	}

	baseURL := sess.cfg.GenerationURL
	setString(cmd.Flags(), "generation-url", &baseURL, workGenerateURL)

	bullets, err := ed.GenerateBullets(cmd.Context(), generation.NewHTTPClient(baseURL))
	if err != nil {
		return fmt.Errorf("failed to generate bullet points: %w", err)
	}

	out := cmd.OutOrStdout()
	for _, b := range bullets {
		_, _ = fmt.Fprintf(out, "• %s\n", b)
	}

	if !workGenerateSave {
		return nil
	}
	if _, err := ed.CommitDraft(); err != nil {
		return sess.reportValidation(err)
	}
	_, _ = fmt.Fprintf(out, "Saved %d bullets to %s\n", len(bullets), args[0])
	return nil
}
