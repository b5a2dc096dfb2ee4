package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/jonathan/resume-wizard/internal/config"
	"github.com/jonathan/resume-wizard/internal/export"
	"github.com/jonathan/resume-wizard/internal/generation"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetFlags restores every flag in the tree to its default between in-process runs
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// runCLI executes the command tree in-process against stateDir
func runCLI(t *testing.T, stateDir string, args ...string) (string, error) {
	t.Helper()
	t.Setenv(config.EnvDatabaseURL, "")

	resetFlags(rootCmd)
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(append([]string{"--state-dir", stateDir}, args...))

	err := rootCmd.Execute()
	return out.String(), err
}

func mustRun(t *testing.T, stateDir string, args ...string) string {
	t.Helper()
	out, err := runCLI(t, stateDir, args...)
	require.NoError(t, err, out)
	return out
}

var addedID = regexp.MustCompile(`Added [a-z ]+ (\S+)`)

func idFrom(t *testing.T, out string) string {
	t.Helper()
	m := addedID.FindStringSubmatch(out)
	require.Len(t, m, 2, out)
	return m[1]
}

func setPersonal(t *testing.T, dir string) {
	t.Helper()
	mustRun(t, dir, "personal", "set",
		"--first-name", "Ann", "--last-name", "Lee", "--email", "ann@example.com",
		"--phone", "555-0100", "--location", "New York, NY")
}

func TestPersonalSet_InvalidShowsFieldMessages(t *testing.T) {
	dir := t.TempDir()

	out, err := runCLI(t, dir, "personal", "set", "--first-name", "Ann", "--email", "not-an-email")
	require.Error(t, err)
	assert.Contains(t, out, "INVALID PERSONALINFO")
	assert.Contains(t, out, "Please enter a valid email")
	assert.Contains(t, out, "Last name is required")

	status := mustRun(t, dir, "status")
	assert.Contains(t, status, "(not set)", "invalid input is not saved")
}

func TestWizardFlow(t *testing.T) {
	dir := t.TempDir()

	_, err := runCLI(t, dir, "step", "next")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot continue from Personal Info")

	setPersonal(t, dir)
	assert.Contains(t, mustRun(t, dir, "step", "next"), "Step 2 of 5: Work Experience")

	_, err = runCLI(t, dir, "step", "next")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least one work experience")

	mustRun(t, dir, "work", "add", "--title", "Staff Engineer", "--company", "Acme",
		"--location", "Remote", "--start", "2021-03", "--current", "-b", "Led X", "-b", "Built Y")
	assert.Contains(t, mustRun(t, dir, "step", "next"), "Education")

	mustRun(t, dir, "education", "add", "--degree", "BSc", "--school", "State U",
		"--location", "Albany", "--graduation", "2017-05", "--gpa", "3.8")
	assert.Contains(t, mustRun(t, dir, "step", "next"), "Skills")

	mustRun(t, dir, "skills", "add-group", "--category", "Languages", "-s", "Go", "-s", " Rust ")
	assert.Contains(t, mustRun(t, dir, "step", "next"), "Step 5 of 5: Preview")
	assert.Contains(t, mustRun(t, dir, "step", "next"), "Preview", "next on the last step stays put")

	assert.Contains(t, mustRun(t, dir, "step", "back"), "Skills")
	assert.Contains(t, mustRun(t, dir, "step", "jump", "1"), "Personal Info")
	assert.Contains(t, mustRun(t, dir, "step", "jump", "9"), "Preview")

	status := mustRun(t, dir, "status")
	assert.Contains(t, status, "Ann Lee")
	assert.Contains(t, status, "Experience: 1")
	assert.Contains(t, status, "▶ 5. Preview")
}

func TestWorkCommands(t *testing.T) {
	dir := t.TempDir()

	id := idFrom(t, mustRun(t, dir, "work", "add", "--title", "Engineer", "--company", "Acme",
		"--location", "Remote", "--start", "2020-01", "--current"))

	list := mustRun(t, dir, "work", "list")
	assert.Contains(t, list, id)
	assert.Contains(t, list, "Engineer at Acme")
	assert.Contains(t, list, "2020-01 - Present, 0 bullets")

	mustRun(t, dir, "work", "update", id, "--title", "Senior Engineer", "--current=false", "--end", "2022-06")
	list = mustRun(t, dir, "work", "list")
	assert.Contains(t, list, "Senior Engineer at Acme")
	assert.Contains(t, list, "2020-01 - 2022-06")

	_, err := runCLI(t, dir, "work", "update", "missing-id", "--title", "X")
	assert.Error(t, err)

	_, err = runCLI(t, dir, "work", "add", "--title", "No Company")
	assert.Error(t, err)

	assert.Contains(t, mustRun(t, dir, "work", "remove", id), "Removed")
	assert.Contains(t, mustRun(t, dir, "work", "remove", id), "No work experience")
	assert.Contains(t, mustRun(t, dir, "work", "list"), "No work experience added yet")
}

func TestEducationCommands(t *testing.T) {
	dir := t.TempDir()

	id := idFrom(t, mustRun(t, dir, "education", "add", "--degree", "BSc", "--school", "State U",
		"--location", "Albany", "--graduation", "2017-05"))
	mustRun(t, dir, "edu", "update", id, "--degree", "MSc")

	list := mustRun(t, dir, "education", "list")
	assert.Contains(t, list, "MSc, State U (2017-05)")

	mustRun(t, dir, "education", "remove", id)
	assert.Contains(t, mustRun(t, dir, "education", "list"), "No education added yet")
}

func TestSkillsCommands(t *testing.T) {
	dir := t.TempDir()

	_, err := runCLI(t, dir, "skills", "add-group", "--category", "Languages")
	require.Error(t, err, "a category needs at least one skill")

	_, err = runCLI(t, dir, "skills", "add-group", "--category", "Languages", "-s", "Go", "-s", "Go")
	require.Error(t, err)

	id := idFrom(t, mustRun(t, dir, "skills", "add-group", "--category", "Languages", "-s", "Go"))
	mustRun(t, dir, "skills", "add", id, "  Rust ")
	_, err = runCLI(t, dir, "skills", "add", id, "Rust")
	assert.Error(t, err, "duplicate skill")

	assert.Contains(t, mustRun(t, dir, "skills", "list"), "Languages: Go, Rust")

	mustRun(t, dir, "skills", "remove", id, "Go")
	mustRun(t, dir, "skills", "update-group", id, "--category", "Programming Languages")
	assert.Contains(t, mustRun(t, dir, "skills", "list"), "Programming Languages: Rust")

	mustRun(t, dir, "skills", "update-group", id, "-s", "Zig", "-s", "C")
	assert.Contains(t, mustRun(t, dir, "skills", "list"), "Programming Languages: Zig, C")

	mustRun(t, dir, "skills", "remove-group", id)
	assert.Contains(t, mustRun(t, dir, "skills", "list"), "No skills added yet")
}

func TestPreviewCommand(t *testing.T) {
	dir := t.TempDir()

	empty := mustRun(t, dir, "preview", "--plain")
	assert.Contains(t, empty, "Your resume preview will appear here")

	setPersonal(t, dir)
	text := mustRun(t, dir, "preview", "--plain", "--width", "60")
	assert.Contains(t, text, "Ann Lee")
	assert.Contains(t, text, "ann@example.com • 555-0100 • New York, NY")
	assert.Contains(t, text, "[✨ Generate AI Summary]")

	html := mustRun(t, dir, "preview", "--format", "html")
	assert.Contains(t, html, "<h1")
	assert.Contains(t, html, "mailto:ann@example.com")

	_, err := runCLI(t, dir, "preview", "--format", "pdf")
	assert.Error(t, err)
}

func newGenerationServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc(generation.SummaryPath, func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(generation.SummaryResponse{Summary: "Engineer who ships."})
	})
	mux.HandleFunc(generation.BulletsPath, func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(generation.BulletsResponse{Bullets: []string{"Cut latency 40%", "Led migration"}})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestPreview_GenerateSummary(t *testing.T) {
	dir := t.TempDir()
	srv := newGenerationServer(t)
	setPersonal(t, dir)

	out := mustRun(t, dir, "preview", "--plain", "--generate-summary", "--generation-url", srv.URL)
	assert.Contains(t, out, "Engineer who ships.")
	assert.NotContains(t, out, "Generate AI Summary")

	// the generated summary is saved
	assert.Contains(t, mustRun(t, dir, "preview", "--plain"), "Engineer who ships.")
}

func TestWorkGenerateBullets(t *testing.T) {
	dir := t.TempDir()
	srv := newGenerationServer(t)

	id := idFrom(t, mustRun(t, dir, "work", "add", "--title", "Engineer", "--company", "Acme",
		"--location", "Remote", "--start", "2020-01"))

	out := mustRun(t, dir, "work", "generate-bullets", id, "--generation-url", srv.URL)
	assert.Contains(t, out, "• Cut latency 40%")
	assert.Contains(t, mustRun(t, dir, "work", "list"), "0 bullets", "without --save nothing is stored")

	out = mustRun(t, dir, "work", "generate-bullets", id, "--generation-url", srv.URL, "--save")
	assert.Contains(t, out, "Saved 2 bullets")
	assert.Contains(t, mustRun(t, dir, "work", "list"), "2 bullets")
}

func TestExportCommand(t *testing.T) {
	dir := t.TempDir()
	outDir := filepath.Join(t.TempDir(), "out")

	_, err := runCLI(t, dir, "export", "--out", outDir)
	require.Error(t, err)
	assert.ErrorIs(t, err, export.ErrNotExportable)

	setPersonal(t, dir)
	out := mustRun(t, dir, "export", "--format", "tex", "--out", outDir)
	assert.Contains(t, out, "EXPORT COMPLETE")

	data, err := os.ReadFile(filepath.Join(outDir, "Ann_Lee_Resume.tex"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `\huge\bfseries Ann Lee`)

	_, err = runCLI(t, dir, "export", "--format", "docx")
	assert.Error(t, err)
}

func TestThemeAndReset(t *testing.T) {
	dir := t.TempDir()

	assert.Contains(t, mustRun(t, dir, "theme", "toggle"), "Theme: dark")

	setPersonal(t, dir)
	_, err := runCLI(t, dir, "reset")
	require.Error(t, err)
	assert.Contains(t, mustRun(t, dir, "status"), "Ann Lee")

	mustRun(t, dir, "reset", "--yes")
	status := mustRun(t, dir, "status")
	assert.Contains(t, status, "(not set)")
	assert.Contains(t, status, "Theme:      dark", "reset keeps the theme")
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(t.TempDir(), "wizard.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("storage_key: other-resume\n"), 0644))

	setPersonal(t, dir)
	assert.Contains(t, mustRun(t, dir, "status", "--config", cfgPath), "(not set)", "a different key is a different resume")
	mustRun(t, dir, "theme", "toggle", "--config", cfgPath)
	assert.FileExists(t, filepath.Join(dir, "other-resume.json"))
	assert.FileExists(t, filepath.Join(dir, "resume-builder-storage.json"))

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"export_format": "docx"}`), 0644))
	_, err := runCLI(t, dir, "status", "--config", bad)
	assert.Error(t, err)
}

func TestBinary_Help(t *testing.T) {
	binaryPath := getBinaryPath(t)

	cmd := exec.Command(binaryPath, "--help")
	output, err := cmd.CombinedOutput()
	require.NoError(t, err)

	for _, name := range []string{"personal", "work", "education", "skills", "step", "preview", "export", "serve"} {
		assert.Contains(t, string(output), name)
	}
}

func TestBinary_JumpRequiresArgument(t *testing.T) {
	binaryPath := getBinaryPath(t)

	cmd := exec.Command(binaryPath, "--state-dir", t.TempDir(), "step", "jump")
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "accepts 1 arg(s)")
}
