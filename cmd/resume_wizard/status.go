package main

import (
	"errors"
	"fmt"

	"github.com/jonathan/resume-wizard/internal/types"
	"github.com/jonathan/resume-wizard/internal/wizard"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the wizard position and section counts",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear all resume data and return to the first step",
	Args:  cobra.NoArgs,
	RunE:  runReset,
}

var resetConfirm bool

func init() {
	resetCmd.Flags().BoolVarP(&resetConfirm, "yes", "y", false, "Confirm clearing all resume data")
	rootCmd.AddCommand(statusCmd, resetCmd)
}

func runStatus(cmd *cobra.Command, _ []string) error {
	sess, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer sess.close()

	sess.printer.PrintWizardStatus(sess.store.Snapshot())

	err = wizard.New(sess.store, nil).Gate()
	switch {
	case err == nil:
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Ready to continue: run 'resume_wizard step next'")
	case errors.Is(err, wizard.ErrLastStep):
	default:
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Before continuing: %v\n", err)
		var verr *types.ValidationError
		if sess.cfg.Verbose && errors.As(err, &verr) {
			sess.printer.PrintValidationErrors(verr)
		}
	}
	return nil
}

func runReset(cmd *cobra.Command, _ []string) error {
	if !resetConfirm {
		return fmt.Errorf("reset clears all resume data; pass --yes to confirm")
	}

	sess, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer sess.close()

	sess.store.Reset()
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Resume cleared")
	return nil
}
