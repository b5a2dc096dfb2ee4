package main

import (
	"fmt"

	"github.com/jonathan/resume-wizard/internal/editor"
	"github.com/jonathan/resume-wizard/internal/types"
	"github.com/spf13/cobra"
)

var personalCmd = &cobra.Command{
	Use:   "personal",
	Short: "Edit personal information",
}

var personalSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Set personal information fields",
	Long: "Merges the given fields into the saved personal information. The merged record must pass validation: " +
		"first name, last name, phone and location are required and the email must be valid.",
	Args: cobra.NoArgs,
	RunE: runPersonalSet,
}

var personalFlags struct {
	firstName, lastName, email, phone, location, linkedin, website, summary string
}

func init() {
	f := personalSetCmd.Flags()
	f.StringVar(&personalFlags.firstName, "first-name", "", "First name")
	f.StringVar(&personalFlags.lastName, "last-name", "", "Last name")
	f.StringVarP(&personalFlags.email, "email", "e", "", "Email address")
	f.StringVar(&personalFlags.phone, "phone", "", "Phone number")
	f.StringVar(&personalFlags.location, "location", "", "City, State")
	f.StringVar(&personalFlags.linkedin, "linkedin", "", "LinkedIn profile URL")
	f.StringVar(&personalFlags.website, "website", "", "Portfolio website URL")
	f.StringVar(&personalFlags.summary, "summary", "", "Professional summary")

	personalCmd.AddCommand(personalSetCmd)
	rootCmd.AddCommand(personalCmd)
}

func runPersonalSet(cmd *cobra.Command, _ []string) error {
	sess, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer sess.close()

	flags := cmd.Flags()
	ed := editor.NewPersonalInfoEditor(sess.store, nil)
	ed.Update(func(p *types.PersonalInfo) {
		setString(flags, "first-name", &p.FirstName, personalFlags.firstName)
		setString(flags, "last-name", &p.LastName, personalFlags.lastName)
		setString(flags, "email", &p.Email, personalFlags.email)
		setString(flags, "phone", &p.Phone, personalFlags.phone)
		setString(flags, "location", &p.Location, personalFlags.location)
		setString(flags, "linkedin", &p.LinkedIn, personalFlags.linkedin)
		setString(flags, "website", &p.Website, personalFlags.website)
		setString(flags, "summary", &p.Summary, personalFlags.summary)
	})

	if err := ed.CommitDraft(); err != nil {
		return sess.reportValidation(err)
	}

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Personal information saved")
	return nil
}
