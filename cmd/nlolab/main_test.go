package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/nlolab/internal/storage"
)

func testCommand(t *testing.T) (*cobra.Command, *bytes.Buffer) {
	t.Helper()
	configFile, preset, logLevel = "", "", "error"
	cmd := &cobra.Command{}
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	require.NoError(t, setup(cmd, nil))
	return cmd, &buf
}

func TestWalkOffCommand(t *testing.T) {
	cmd, out := testCommand(t)
	require.NoError(t, runWalkOff(cmd, nil))
	assert.Equal(t, "tau_m = 0.5 ns\n", out.String())
}

func TestPhaseCommand(t *testing.T) {
	cmd, out := testCommand(t)
	require.NoError(t, runPhase(cmd, nil))
	assert.Contains(t, out.String(), "mismatch:")
	assert.Contains(t, out.String(), "phase-matched")
}

func TestPresetsCommand(t *testing.T) {
	cmd, out := testCommand(t)
	require.NoError(t, runPresets(cmd, nil))
	for _, name := range []string{"PRESET", "bbo", "kdp", "long"} {
		assert.Contains(t, out.String(), name)
	}
}

func TestSetupRejectsBadLevel(t *testing.T) {
	configFile, preset, logLevel = "", "", "loud"
	assert.Error(t, setup(&cobra.Command{}, nil))
	preset, logLevel = "unobtainium", "error"
	assert.Error(t, setup(&cobra.Command{}, nil))
	preset = ""
}

func TestSweepSaveAndList(t *testing.T) {
	cmd, out := testCommand(t)
	dir := t.TempDir()
	dataDir = dir
	sweepMin, sweepMax, sweepPoints, sweepWorkers = -1, 1, 5, 2
	csvFile = filepath.Join(dir, "sweep.csv")
	saveRun = true
	t.Cleanup(func() { csvFile, saveRun = "", false })

	require.NoError(t, runSweep(cmd, nil))
	assert.Contains(t, out.String(), "TAU (ns)")
	assert.Contains(t, out.String(), "peak at tau=0.500 ns")
	_, err := os.Stat(csvFile)
	require.NoError(t, err)

	out.Reset()
	require.NoError(t, listRuns(cmd, nil))
	assert.Contains(t, out.String(), "CRYSTAL")
	assert.Contains(t, out.String(), "default")
	assert.Contains(t, out.String(), "closed")

	runs, err := storage.New(dir).List()
	require.NoError(t, err)
	require.Len(t, runs, 1)
	out.Reset()
	require.NoError(t, listRuns(cmd, []string{runs[0].ID}))
	assert.Contains(t, out.String(), "crystal=default")
	assert.Contains(t, out.String(), "TAU (ns)")

	assert.ErrorIs(t, listRuns(cmd, []string{"ghost"}), storage.ErrNoRun)
}

func TestListRunsEmpty(t *testing.T) {
	cmd, out := testCommand(t)
	dataDir = filepath.Join(t.TempDir(), "none")
	require.NoError(t, listRuns(cmd, nil))
	assert.Equal(t, "no runs found\n", out.String())
}

func runDial(t *testing.T, name string, args ...string) string {
	t.Helper()
	testCommand(t)
	cmd := dialCommand(name)
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs(args)
	require.NoError(t, cmd.Execute())
	return buf.String()
}

func assertPNG(t *testing.T, path string) {
	t.Helper()
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(b, []byte("\x89PNG")), path)
}

func TestDialSnapshots(t *testing.T) {
	dir := t.TempDir()

	corr := filepath.Join(dir, "corr.png")
	out := runDial(t, "correlation", "--at", "tau=17", "--png", corr)
	assert.Contains(t, out, "saved "+corr)
	assert.Contains(t, out, "Overlap: γ_corr = 0.49")
	assertPNG(t, corr)

	surf := filepath.Join(dir, "gauss.png")
	runDial(t, "gaussian", "--png", surf)
	assertPNG(t, surf)

	base := runDial(t, "ellipsoid", "--png", filepath.Join(dir, "e0.png"))
	png := filepath.Join(dir, "e.png")
	svg := filepath.Join(dir, "e.svg")
	out = runDial(t, "ellipsoid", "--at", "phi=45,theta=30", "--png", png, "--svg", svg)
	assertPNG(t, png)
	b, err := os.ReadFile(svg)
	require.NoError(t, err)
	assert.Contains(t, string(b), "<circle")
	assert.NotEqual(t, lastLine(base), lastLine(out))
}

func TestDialRejectsUnknownControl(t *testing.T) {
	testCommand(t)
	cmd := dialCommand("correlation")
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"--at", "zoom=3", "--png", filepath.Join(t.TempDir(), "x.png")})
	assert.Error(t, cmd.Execute())
}

func lastLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	return lines[len(lines)-1]
}
