package main

import (
	"fmt"

	"github.com/jonathan/resume-wizard/internal/editor"
	"github.com/jonathan/resume-wizard/internal/types"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var educationCmd = &cobra.Command{
	Use:     "education",
	Aliases: []string{"edu"},
	Short:   "Manage education entries",
}

var educationAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add an education entry",
	Args:  cobra.NoArgs,
	RunE:  runEducationAdd,
}

var educationUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update fields of an education entry",
	Args:  cobra.ExactArgs(1),
	RunE:  runEducationUpdate,
}

var educationRemoveCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Remove an education entry",
	Args:  cobra.ExactArgs(1),
	RunE:  runEducationRemove,
}

var educationListCmd = &cobra.Command{
	Use:   "list",
	Short: "List education entries",
	Args:  cobra.NoArgs,
	RunE:  runEducationList,
}

type educationFlagValues struct {
	degree, school, location, graduation, gpa, coursework string
}

var educationAddFlags, educationUpdateFlags educationFlagValues

func bindEducationFlags(f *pflag.FlagSet, v *educationFlagValues) {
	f.StringVar(&v.degree, "degree", "", "Degree")
	f.StringVar(&v.school, "school", "", "School")
	f.StringVar(&v.location, "location", "", "Location")
	f.StringVar(&v.graduation, "graduation", "", "Graduation date (YYYY-MM)")
	f.StringVar(&v.gpa, "gpa", "", "GPA (optional)")
	f.StringVar(&v.coursework, "coursework", "", "Relevant coursework (optional)")
}

func init() {
	bindEducationFlags(educationAddCmd.Flags(), &educationAddFlags)
	bindEducationFlags(educationUpdateCmd.Flags(), &educationUpdateFlags)

	educationCmd.AddCommand(educationAddCmd, educationUpdateCmd, educationRemoveCmd, educationListCmd)
	rootCmd.AddCommand(educationCmd)
}

func applyEducationFlags(ed *editor.Editor[types.Education], flags *pflag.FlagSet, v educationFlagValues) {
	ed.Update(func(e *types.Education) {
		setString(flags, "degree", &e.Degree, v.degree)
		setString(flags, "school", &e.School, v.school)
		setString(flags, "location", &e.Location, v.location)
		setString(flags, "graduation", &e.GraduationDate, v.graduation)
		setString(flags, "gpa", &e.GPA, v.gpa)
		setString(flags, "coursework", &e.RelevantCoursework, v.coursework)
	})
}

func runEducationAdd(cmd *cobra.Command, _ []string) error {
	sess, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer sess.close()

	ed := editor.NewEducationEditor(sess.store, nil)
	applyEducationFlags(ed, cmd.Flags(), educationAddFlags)

	id, err := ed.CommitDraft()
	if err != nil {
		return sess.reportValidation(err)
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Added education %s\n", id)
	return nil
}

func runEducationUpdate(cmd *cobra.Command, args []string) error {
	sess, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer sess.close()

	ed := editor.NewEducationEditor(sess.store, nil)
	if err := ed.BeginEdit(args[0]); err != nil {
		return err
	}
	applyEducationFlags(ed, cmd.Flags(), educationUpdateFlags)

	id, err := ed.CommitDraft()
	if err != nil {
		return sess.reportValidation(err)
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Updated education %s\n", id)
	return nil
}

func runEducationRemove(cmd *cobra.Command, args []string) error {
	sess, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer sess.close()

	if _, ok := sess.store.Education(args[0]); !ok {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "No education with id %s\n", args[0])
		return nil
	}
	sess.store.RemoveEducation(args[0])
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Removed education %s\n", args[0])
	return nil
}

func runEducationList(cmd *cobra.Command, _ []string) error {
	sess, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer sess.close()

	sess.printer.PrintEducation(sess.store.Snapshot().ResumeData.Education)
	return nil
}
