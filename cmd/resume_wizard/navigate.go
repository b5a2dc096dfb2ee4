package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/jonathan/resume-wizard/internal/types"
	"github.com/jonathan/resume-wizard/internal/wizard"
	"github.com/spf13/cobra"
)

var stepCmd = &cobra.Command{
	Use:   "step",
	Short: "Move between wizard steps",
}

var stepNextCmd = &cobra.Command{
	Use:   "next",
	Short: "Continue to the next step if the current one is complete",
	Args:  cobra.NoArgs,
	RunE:  runStepNext,
}

var stepBackCmd = &cobra.Command{
	Use:   "back",
	Short: "Go back one step",
	Args:  cobra.NoArgs,
	RunE:  runStepBack,
}

var stepJumpCmd = &cobra.Command{
	Use:   "jump <step-number>",
	Short: "Jump to a step (1-5) without checking completeness",
	Args:  cobra.ExactArgs(1),
	RunE:  runStepJump,
}

var themeCmd = &cobra.Command{
	Use:   "theme",
	Short: "Preview colour theme",
}

var themeToggleCmd = &cobra.Command{
	Use:   "toggle",
	Short: "Switch between the light and dark theme",
	Args:  cobra.NoArgs,
	RunE:  runThemeToggle,
}

func init() {
	stepCmd.AddCommand(stepNextCmd, stepBackCmd, stepJumpCmd)
	themeCmd.AddCommand(themeToggleCmd)
	rootCmd.AddCommand(stepCmd, themeCmd)
}

func printStep(cmd *cobra.Command, step wizard.Step) {
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Step %d of %d: %s (%s)\n",
		step.Index+1, len(wizard.Steps), step.Name, step.Description)
}

func runStepNext(cmd *cobra.Command, _ []string) error {
	sess, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer sess.close()

	step, err := wizard.New(sess.store, nil).Next()
	if errors.Is(err, wizard.ErrLastStep) {
		printStep(cmd, step)
		return nil
	}
	if err != nil {
		var verr *types.ValidationError
		if errors.As(err, &verr) {
			sess.printer.PrintValidationErrors(verr)
		}
		return err
	}
	printStep(cmd, step)
	return nil
}

func runStepBack(cmd *cobra.Command, _ []string) error {
	sess, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer sess.close()

	printStep(cmd, wizard.New(sess.store, nil).Back())
	return nil
}

func runStepJump(cmd *cobra.Command, args []string) error {
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid step number %q", args[0])
	}

	sess, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer sess.close()

	printStep(cmd, wizard.New(sess.store, nil).Jump(n-1))
	return nil
}

func runThemeToggle(cmd *cobra.Command, _ []string) error {
	sess, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer sess.close()

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Theme: %s\n", sess.store.ToggleTheme())
	return nil
}
