package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gubarz/brendatab/internal/parser"
)

const sampleBrenda = `* BRENDA export
ID	1.1.1.1
PROTEIN
PR	#1# Homo sapiens
KM_VALUE
KM	#1# 0.5 {ethanol}
///
ID	1.1.1.2 (deleted, see 1.1.1.1)
PROTEIN
REACTION
///
`

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func writeSample(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "brenda.txt")
	require.NoError(t, os.WriteFile(path, []byte(sampleBrenda), 0644))
	return path
}

func TestExportCommand(t *testing.T) {
	out, err := runCLI(t, writeSample(t), "--format", "jsonl", "--field", "PROTEIN", "--field", parser.TransferredDeleted)
	require.NoError(t, err)

	var got []parser.Record
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		var rec parser.Record
		require.NoError(t, json.Unmarshal([]byte(line), &rec))
		got = append(got, rec)
	}

	assert.Equal(t, []parser.Record{
		{ID: "1.1.1.1", Field: "PROTEIN", Description: "PR\t#1# Homo sapiens\n"},
		{ID: "1.1.1.2", Field: parser.TransferredDeleted, Description: "deleted, see 1.1.1.1"},
	}, got)
}

func TestFieldsCommand(t *testing.T) {
	out, err := runCLI(t, "fields")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Equal(t, parser.FieldTags(), lines)
}

func TestStatsCommand(t *testing.T) {
	out, err := runCLI(t, "stats", writeSample(t))
	require.NoError(t, err)

	assert.Contains(t, out, "transferred/deleted")
	assert.Contains(t, out, "KM_VALUE")
	assert.Contains(t, out, "blake3")
}

func TestMissingFile(t *testing.T) {
	_, err := runCLI(t, "stats", filepath.Join(t.TempDir(), "nope.txt"))
	assert.ErrorIs(t, err, parser.ErrNotFound)
}
