package main

import (
	"fmt"
	"strings"

	"github.com/jonathan/resume-wizard/internal/editor"
	"github.com/jonathan/resume-wizard/internal/types"
	"github.com/spf13/cobra"
)

var skillsCmd = &cobra.Command{
	Use:   "skills",
	Short: "Manage skill categories",
	Long:  "Recommended categories: " + strings.Join(types.RecommendedSkillCategories, ", "),
}

var skillsAddGroupCmd = &cobra.Command{
	Use:   "add-group",
	Short: "Add a skill category with at least one skill",
	Args:  cobra.NoArgs,
	RunE:  runSkillsAddGroup,
}

var skillsUpdateGroupCmd = &cobra.Command{
	Use:   "update-group <id>",
	Short: "Rename a skill category or replace its skills",
	Args:  cobra.ExactArgs(1),
	RunE:  runSkillsUpdateGroup,
}

var skillsAddCmd = &cobra.Command{
	Use:   "add <group-id> <skill>",
	Short: "Add one skill to a category",
	Args:  cobra.ExactArgs(2),
	RunE:  runSkillsAdd,
}

var skillsRemoveCmd = &cobra.Command{
	Use:   "remove <group-id> <skill>",
	Short: "Remove one skill from a category",
	Args:  cobra.ExactArgs(2),
	RunE:  runSkillsRemove,
}

var skillsRemoveGroupCmd = &cobra.Command{
	Use:   "remove-group <id>",
	Short: "Remove a skill category",
	Args:  cobra.ExactArgs(1),
	RunE:  runSkillsRemoveGroup,
}

var skillsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List skill categories",
	Args:  cobra.NoArgs,
	RunE:  runSkillsList,
}

var (
	skillsAddCategory    string
	skillsAddSkills      []string
	skillsUpdateCategory string
	skillsUpdateSkills   []string
)

func init() {
	skillsAddGroupCmd.Flags().StringVar(&skillsAddCategory, "category", "", "Category name")
	skillsAddGroupCmd.Flags().StringArrayVarP(&skillsAddSkills, "skill", "s", nil, "Skill (repeatable)")
	skillsUpdateGroupCmd.Flags().StringVar(&skillsUpdateCategory, "category", "", "New category name")
	skillsUpdateGroupCmd.Flags().StringArrayVarP(&skillsUpdateSkills, "skill", "s", nil, "Skill (repeatable, replaces the list)")

	skillsCmd.AddCommand(skillsAddGroupCmd, skillsUpdateGroupCmd, skillsAddCmd, skillsRemoveCmd,
		skillsRemoveGroupCmd, skillsListCmd)
	rootCmd.AddCommand(skillsCmd)
}

// fillSkillsDraft adds each skill through the editor so blanks are dropped and duplicates rejected
func fillSkillsDraft(ed *editor.SkillsEditor, skills []string) error {
	for _, skill := range skills {
		if err := ed.AddSkillToDraft(skill); err != nil {
			return err
		}
	}
	return nil
}

func runSkillsAddGroup(cmd *cobra.Command, _ []string) error {
	sess, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer sess.close()

	ed := editor.NewSkillsEditor(sess.store, nil)
	ed.SetCategory(skillsAddCategory)
	if err := fillSkillsDraft(ed, skillsAddSkills); err != nil {
		return err
	}

	id, err := ed.CommitDraft()
	if err != nil {
		return sess.reportValidation(err)
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Added skill category %s\n", id)
	return nil
}

func runSkillsUpdateGroup(cmd *cobra.Command, args []string) error {
	sess, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer sess.close()

	ed := editor.NewSkillsEditor(sess.store, nil)
	if err := ed.BeginEdit(args[0]); err != nil {
		return err
	}
	if cmd.Flags().Changed("category") {
		ed.SetCategory(skillsUpdateCategory)
	}
	if cmd.Flags().Changed("skill") {
		ed.Update(func(g *types.SkillGroup) { g.Skills = []string{} })
		if err := fillSkillsDraft(ed, skillsUpdateSkills); err != nil {
			return err
		}
	}

	id, err := ed.CommitDraft()
	if err != nil {
		return sess.reportValidation(err)
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Updated skill category %s\n", id)
	return nil
}

func runSkillsAdd(cmd *cobra.Command, args []string) error {
	sess, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer sess.close()

	if err := sess.store.AddSkill(args[0], args[1]); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Added %q to %s\n", strings.TrimSpace(args[1]), args[0])
	return nil
}

func runSkillsRemove(cmd *cobra.Command, args []string) error {
	sess, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer sess.close()

	if err := sess.store.RemoveSkill(args[0], args[1]); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Removed %q from %s\n", args[1], args[0])
	return nil
}

func runSkillsRemoveGroup(cmd *cobra.Command, args []string) error {
	sess, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer sess.close()

	if _, ok := sess.store.SkillGroup(args[0]); !ok {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "No skill category with id %s\n", args[0])
		return nil
	}
	sess.store.RemoveSkillGroup(args[0])
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Removed skill category %s\n", args[0])
	return nil
}

func runSkillsList(cmd *cobra.Command, _ []string) error {
	sess, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer sess.close()

	sess.printer.PrintSkills(sess.store.Snapshot().ResumeData.Skills)
	return nil
}
