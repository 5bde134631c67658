package cli_test

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCLI_FileInputOutput formats the sample document into a file
func TestCLI_FileInputOutput(t *testing.T) {
	tempDir := t.TempDir()
	outputFile := filepath.Join(tempDir, "output.json")

	cmd := exec.Command("go", "run", "../../main.go", "-i", "../../testdata/samples/user.json", "-o", outputFile)
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "CLI command failed: %s", string(output))

	got, err := os.ReadFile(outputFile)
	require.NoError(t, err)
	expected, err := os.ReadFile("../../testdata/samples/user.formatted.json")
	require.NoError(t, err)
	assert.Equal(t, string(expected), string(got))
}

// TestCLI_StdinStdout tests the CLI with stdin input and stdout output
func TestCLI_StdinStdout(t *testing.T) {
	cmd := exec.Command("go", "run", "../../main.go")
	cmd.Stdin = strings.NewReader(`{"name": "Jane Smith", "age": 25, "active": true}`)
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	require.NoError(t, err, "CLI command failed: %s", stderr.String())

	expected := "{\n    \"active\":true,\n    \"age\":25,\n    \"name\":\"Jane Smith\"\n}\n"
	assert.Equal(t, expected, stdout.String())
}

// TestCLI_KeyCase renames keys from the command line
func TestCLI_KeyCase(t *testing.T) {
	cmd := exec.Command("go", "run", "../../main.go", "-k", "snake", "-l", "2")
	cmd.Stdin = strings.NewReader(`[{"userName": "x", "lastLoginAt": null}]`)
	var stdout bytes.Buffer
	cmd.Stdout = &stdout

	err := cmd.Run()
	require.NoError(t, err)

	output := stdout.String()
	assert.Contains(t, output, `"user_name":"x"`)
	assert.Contains(t, output, `"last_login_at":null`)
	assert.True(t, strings.HasSuffix(output, "\n  ]\n"))
}

// TestCLI_Stats prints the document summary
func TestCLI_Stats(t *testing.T) {
	cmd := exec.Command("go", "run", "../../main.go", "-s", "-i", "../../testdata/samples/user.json")
	var stdout bytes.Buffer
	cmd.Stdout = &stdout

	err := cmd.Run()
	require.NoError(t, err)

	output := stdout.String()
	assert.Contains(t, output, "root:      object")
	assert.Contains(t, output, "max depth: 3")
	assert.Contains(t, output, "formats:   date-time=1, uuid=1")
}

// TestCLI_Check validates without printing anything
func TestCLI_Check(t *testing.T) {
	cmd := exec.Command("go", "run", "../../main.go", "--check")
	cmd.Stdin = strings.NewReader(`{"ok": [1, 2.5, -3e2]}`)
	var stdout bytes.Buffer
	cmd.Stdout = &stdout

	err := cmd.Run()
	require.NoError(t, err)
	assert.Empty(t, stdout.String())
}

// TestCLI_ScalarRoot tests the scalar root restriction and its flag
func TestCLI_ScalarRoot(t *testing.T) {
	cmd := exec.Command("go", "run", "../../main.go")
	cmd.Stdin = strings.NewReader(`42`)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	assert.Error(t, cmd.Run(), "scalar documents are rejected by default")
	assert.Contains(t, stderr.String(), "must begin with")

	cmd = exec.Command("go", "run", "../../main.go", "--allow-scalar-root")
	cmd.Stdin = strings.NewReader(`42`)
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	require.NoError(t, cmd.Run())
	assert.Equal(t, "42\n", stdout.String())
}

// TestCLI_InvalidJSON tests the CLI with invalid JSON input
func TestCLI_InvalidJSON(t *testing.T) {
	cmd := exec.Command("go", "run", "../../main.go")
	cmd.Stdin = strings.NewReader(`{"name": "Invalid JSON, "age": 30}`)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	assert.Error(t, err, "CLI should fail with invalid JSON")
	assert.Contains(t, stderr.String(), "JSON parsing error")
	assert.Contains(t, stderr.String(), "line 1, column 26")
}

// TestCLI_EmptyInput tests the CLI with empty input
func TestCLI_EmptyInput(t *testing.T) {
	cmd := exec.Command("go", "run", "../../main.go")
	cmd.Stdin = strings.NewReader("")
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	assert.Error(t, err, "CLI should fail with empty input")
	assert.Contains(t, stderr.String(), "empty input")
}

// TestCLI_Version tests the version flag
func TestCLI_Version(t *testing.T) {
	cmd := exec.Command("go", "run", "../../main.go", "-v")
	output, err := cmd.CombinedOutput()
	require.NoError(t, err)
	assert.Contains(t, string(output), "jvalue version")
}

// TestCLI_Help tests the help output
func TestCLI_Help(t *testing.T) {
	cmd := exec.Command("go", "run", "../../main.go", "--help")
	output, err := cmd.CombinedOutput()
	require.NoError(t, err)

	helpOutput := string(output)
	assert.Contains(t, helpOutput, "Usage:")
	assert.Contains(t, helpOutput, "-i, --input")
	assert.Contains(t, helpOutput, "-o, --output")
	assert.Contains(t, helpOutput, "-k, --key-case")
	assert.Contains(t, helpOutput, "-s, --stats")
	assert.Contains(t, helpOutput, "--max-depth")
}
