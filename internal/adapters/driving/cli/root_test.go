package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testServices struct {
	router   *mockRouter
	status   *mockStatus
	settings *mockSettings
}

// setupTestServices installs mocks and resets command state.
func setupTestServices() (*testServices, func()) {
	ts := &testServices{
		router:   &mockRouter{},
		status:   &mockStatus{},
		settings: newMockSettings(),
	}
	SetBootstrap(nil)
	SetServices(&Services{
		Router:   ts.router,
		Status:   ts.status,
		Settings: ts.settings,
	})

	return ts, func() {
		SetServices(nil)
		SetBootstrap(nil)
		askThreshold, askTopK, askProviders = 0, 0, nil
		askJSON, askShowContext = false, false
		statusJSON = false
		indexWithDocuments = false
		settingsInput = os.Stdin
		rootCmd.SetArgs(nil)
	}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return buf.String(), err
}

func TestRootCmd_Use(t *testing.T) {
	assert.Equal(t, "kcc", rootCmd.Use)
}

func TestRootCmd_HasPersistentFlags(t *testing.T) {
	require.NotNil(t, rootCmd.PersistentFlags().Lookup("verbose"))
	require.NotNil(t, rootCmd.PersistentFlags().Lookup("config-dir"))
}

func TestRootCmd_BootstrapRunsBeforeCommand(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()
	SetServices(nil)

	router := &mockRouter{}
	var gotDir string
	var cleaned bool
	SetBootstrap(func(_ context.Context, dir string) (*Services, func(), error) {
		gotDir = dir
		return &Services{Router: router}, func() { cleaned = true }, nil
	})
	defer func() { configDir = "" }()

	_, err := execute(t, "--config-dir", "/tmp/kcc-test", "corpus", "normalize")

	require.NoError(t, err)
	assert.Equal(t, "/tmp/kcc-test", gotDir)
	assert.Equal(t, 1, router.docCalls)
	assert.True(t, cleaned)
}

func TestRootCmd_BootstrapError(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	SetBootstrap(func(context.Context, string) (*Services, func(), error) {
		return nil, nil, errors.New("disk full")
	})

	_, err := execute(t, "status")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}

func TestRootCmd_StartupWarningsGoToStderr(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	status := &mockStatus{}
	SetBootstrap(func(context.Context, string) (*Services, func(), error) {
		return &Services{
			Status:   status,
			Warnings: []string{"web result cache disabled: connection refused"},
		}, nil, nil
	})

	stdout, stderr := new(bytes.Buffer), new(bytes.Buffer)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	rootCmd.SetArgs([]string{"status", "--json"})

	require.NoError(t, rootCmd.ExecuteContext(context.Background()))
	assert.Contains(t, stderr.String(), "Warning: web result cache disabled: connection refused")
	assert.NotContains(t, stdout.String(), "Warning")
}

func TestRootCmd_SkipsBootstrapForVersion(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	called := false
	SetBootstrap(func(context.Context, string) (*Services, func(), error) {
		called = true
		return &Services{}, nil, nil
	})

	_, err := execute(t, "version")

	require.NoError(t, err)
	assert.False(t, called)
}

func TestSetVersion_IgnoresEmpty(t *testing.T) {
	original := version
	defer func() { version = original }()

	SetVersion("1.2.3")
	SetVersion("")

	assert.Equal(t, "1.2.3", version)
}
