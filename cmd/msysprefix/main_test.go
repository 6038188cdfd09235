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
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/dorcha-inc/msysprefix/internal/msys"
	msysTesting "github.com/dorcha-inc/msysprefix/internal/testing"
)

// setEnv sets MSYSTEM and clears any MSYSPREFIX_* overrides from the host
func setEnv(t *testing.T, msystem string) {
	t.Helper()
	for _, key := range []string{"MSYSPREFIX_LOG_LEVEL", "MSYSPREFIX_LOG_FORMAT", "MSYSPREFIX_STRICT", "MSYSPREFIX_VARIABLE"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
	t.Setenv("MSYSTEM", msystem)
	t.Cleanup(func() { zap.ReplaceGlobals(zap.NewNop()) })
}

// unsetMSYSTEM removes MSYSTEM for the duration of the test
func unsetMSYSTEM(t *testing.T) {
	t.Helper()
	setEnv(t, "")
	require.NoError(t, os.Unsetenv("MSYSTEM"))
}

// runCLI runs the CLI with buffered output
func runCLI(args ...string) (int, string, string) {
	var stdout, stderr bytes.Buffer
	code := run(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRun_KnownEnvironments(t *testing.T) {
	for _, c := range msysTesting.PrefixCases() {
		t.Run(c.MSYSTEM, func(t *testing.T) {
			setEnv(t, c.MSYSTEM)

			code, stdout, stderr := runCLI()
			assert.Equal(t, 0, code)
			assert.Equal(t, c.Expected, stdout)
			assert.Empty(t, stderr)
		})
	}
}

func TestRun_UnknownEnvironments(t *testing.T) {
	for _, value := range msysTesting.UnknownValues() {
		t.Run(value, func(t *testing.T) {
			setEnv(t, value)

			code, stdout, stderr := runCLI()
			assert.Equal(t, 0, code)
			assert.Empty(t, stdout)
			assert.Empty(t, stderr)
		})
	}
}

func TestRun_MissingEnvironment(t *testing.T) {
	unsetMSYSTEM(t)

	code, stdout, stderr := runCLI()
	assert.Equal(t, 1, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "Error: environment variable MSYSTEM is not set")
}

func TestRun_UcrtFamilySharesOutput(t *testing.T) {
	for _, value := range []string{"ucrt64", "clang64", "clangarm64"} {
		setEnv(t, value)
		code, stdout, _ := runCLI()
		assert.Equal(t, 0, code)
		assert.Equal(t, "x64-ucrt\n", stdout)
	}
}

func TestRun_RejectsArguments(t *testing.T) {
	setEnv(t, "mingw64")

	code, stdout, stderr := runCLI("mingw32")
	assert.Equal(t, 1, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "unknown command")
}

func TestRun_StrictFlag(t *testing.T) {
	setEnv(t, "MINGW46")

	code, stdout, stderr := runCLI("--strict")
	assert.Equal(t, 1, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "unknown MSYS2 environment 'MINGW46'")
	assert.Contains(t, stderr, "did you mean 'mingw64'")
	assert.Contains(t, stderr, "valid values: clang32, clang64, clangarm64, mingw32, mingw64, ucrt64")
}

func TestRun_StrictFromEnvironment(t *testing.T) {
	setEnv(t, "foobar")
	t.Setenv("MSYSPREFIX_STRICT", "true")

	code, _, stderr := runCLI()
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "unknown MSYS2 environment 'foobar'")
}

func TestRun_StrictKnownEnvironment(t *testing.T) {
	setEnv(t, "clang32")

	code, stdout, _ := runCLI("--strict")
	assert.Equal(t, 0, code)
	assert.Equal(t, "ucrt\n", stdout)
}

func TestRun_ConfigFileVariable(t *testing.T) {
	setEnv(t, "mingw64")
	t.Setenv("MY_MSYSTEM", "mingw32")

	configPath := filepath.Join(t.TempDir(), "msysprefix.yaml")
	// #nosec G306 -- test file permissions are acceptable for temporary test files
	require.NoError(t, os.WriteFile(configPath, []byte("variable: MY_MSYSTEM\n"), 0644))

	code, stdout, stderr := runCLI("--config", configPath)
	assert.Equal(t, 0, code)
	assert.Equal(t, "msvcrt\n", stdout)
	assert.Empty(t, stderr)
}

func TestRun_ConfigError(t *testing.T) {
	setEnv(t, "mingw64")

	code, stdout, stderr := runCLI("--config", "/nonexistent/msysprefix.yaml")
	assert.Equal(t, 1, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "failed to read config file")
}

func TestRun_InvalidLogLevel(t *testing.T) {
	setEnv(t, "mingw64")

	code, stdout, stderr := runCLI("--log-level", "loud")
	assert.Equal(t, 1, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "log_level must be one of")
}

func TestRun_Version(t *testing.T) {
	setEnv(t, "mingw64")

	code, stdout, _ := runCLI("--version")
	assert.Equal(t, 0, code)
	assert.Contains(t, stdout, "dev (built: unknown)")
}

func TestRun_WritesToProcessStdout(t *testing.T) {
	setEnv(t, "ucrt64")

	captured, err := msysTesting.NewCapturedOutput()
	require.NoError(t, err)

	code := run(nil, os.Stdout, os.Stderr)

	stdout, stderr, err := captured.Stop()
	require.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.Equal(t, "x64-ucrt\n", stdout)
	assert.Empty(t, stderr)
}

func TestRun_DebugLogsStayOffStdout(t *testing.T) {
	setEnv(t, "MinGW64")

	captured, err := msysTesting.NewCapturedOutput()
	require.NoError(t, err)

	code := run([]string{"--log-level", "debug"}, os.Stdout, os.Stderr)
	// Detach the logger from the capture pipe before it closes
	zap.ReplaceGlobals(zap.NewNop())

	stdout, stderr, err := captured.Stop()
	require.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.Equal(t, "x64-msvcrt\n", stdout)
	assert.Equal(t, 1, strings.Count(stdout, "\n"))
	assert.Contains(t, stderr, "Resolution completed")
	assert.Contains(t, stderr, `"msg":"Reading MSYS2 environment","variable":"MSYSTEM"`)
}

func TestRun_DebugLogNamesConfiguredVariable(t *testing.T) {
	setEnv(t, "mingw64")
	t.Setenv("MSYSPREFIX_VARIABLE", "MY_MSYSTEM")
	t.Setenv("MY_MSYSTEM", "clang32")

	captured, err := msysTesting.NewCapturedOutput()
	require.NoError(t, err)

	code := run([]string{"--log-level", "debug"}, os.Stdout, os.Stderr)
	zap.ReplaceGlobals(zap.NewNop())

	stdout, stderr, err := captured.Stop()
	require.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.Equal(t, "ucrt\n", stdout)
	assert.Contains(t, stderr, `"msg":"Reading MSYS2 environment","variable":"MY_MSYSTEM"`)
}

func TestListCmd_Plain(t *testing.T) {
	setEnv(t, "mingw64")

	code, stdout, stderr := runCLI("list")
	require.Equal(t, 0, code, stderr)

	lines := strings.Split(strings.TrimRight(stdout, "\n"), "\n")
	require.Len(t, lines, len(msys.Mappings())+1)
	assert.True(t, strings.HasPrefix(lines[0], "MSYSTEM"))
	assert.Equal(t, []string{"mingw64", "x64-msvcrt"}, strings.Fields(lines[1]))
	assert.Equal(t, []string{"clang32", "ucrt"}, strings.Fields(lines[6]))
}

func TestListCmd_WorksWithoutMSYSTEM(t *testing.T) {
	unsetMSYSTEM(t)

	code, stdout, _ := runCLI("list")
	assert.Equal(t, 0, code)
	assert.Contains(t, stdout, "clangarm64")
}

func TestListCmd_JSON(t *testing.T) {
	setEnv(t, "mingw64")

	code, stdout, stderr := runCLI("list", "--json")
	require.Equal(t, 0, code, stderr)

	var mappings []msys.Mapping
	require.NoError(t, json.Unmarshal([]byte(stdout), &mappings))
	assert.Equal(t, msys.Mappings(), mappings)
}

func TestListCmd_YAML(t *testing.T) {
	setEnv(t, "mingw64")

	code, stdout, stderr := runCLI("list", "--yaml")
	require.Equal(t, 0, code, stderr)
	assert.Contains(t, stdout, "- environment: mingw64\n  prefix: x64-msvcrt\n")

	var mappings []msys.Mapping
	require.NoError(t, yaml.Unmarshal([]byte(stdout), &mappings))
	assert.Equal(t, msys.Mappings(), mappings)
}

func TestListCmd_FormatsMutuallyExclusive(t *testing.T) {
	setEnv(t, "mingw64")

	code, _, stderr := runCLI("list", "--json", "--yaml")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "none of the others can be")
}
