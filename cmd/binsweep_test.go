package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runApp(t *testing.T, args ...string) (string, error) {
	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	app.ErrWriter = &out

	err := app.Run(append([]string{"binsweep"}, args...))
	return out.String(), err
}

// binServer answers 200 with "{}" for bin "a" and 404 for everything else, counting every request.
func binServer(t *testing.T) (*httptest.Server, *atomic.Int64) {
	var requests atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		if strings.TrimPrefix(r.URL.Path, "/bins/") != "a" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte("{}"))
	}))
	t.Cleanup(server.Close)
	return server, &requests
}

func TestCountOnlyUsesDefaults(t *testing.T) {
	out, err := runApp(t, "--count-only")
	require.NoError(t, err)
	assert.Equal(t, "46656\n", out)
}

func TestCountOnlyUsesConfigFile(t *testing.T) {
	out, err := runApp(t, "--config", "testdata/sweep.yaml", "--count-only")
	require.NoError(t, err)

	// alphabet "abc" and length 2 both come from the file.
	assert.Equal(t, "9\n", out)
}

func TestFlagOverridesConfigFile(t *testing.T) {
	out, err := runApp(t, "--config", "testdata/sweep.yaml", "--length", "3", "--count-only")
	require.NoError(t, err)

	// length from the flag, alphabet still from the file.
	assert.Equal(t, "27\n", out)
}

func TestEnvironmentOverridesConfigFile(t *testing.T) {
	t.Setenv("BINSWEEP_ALPHABET", "ab")

	out, err := runApp(t, "--config", "testdata/sweep.yaml", "--count-only")
	require.NoError(t, err)
	assert.Equal(t, "4\n", out)
}

func TestInvalidFlagFailsValidation(t *testing.T) {
	_, err := runApp(t, "--failure-policy", "retry", "--count-only")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "FailurePolicy")
}

func TestSweepWritesResultsToOutput(t *testing.T) {
	server, requests := binServer(t)
	output := filepath.Join(t.TempDir(), "results.txt")

	_, err := runApp(t,
		"--alphabet", "ab",
		"--length", "1",
		"--endpoint", server.URL+"/bins/",
		"--output", output,
	)
	require.NoError(t, err)

	contents, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, "a\t{}\n", string(contents))
	assert.Equal(t, int64(2), requests.Load())
}

func TestBadOutputFailsBeforeSweeping(t *testing.T) {
	server, requests := binServer(t)
	output := filepath.Join(t.TempDir(), "missing", "results.txt")

	_, err := runApp(t,
		"--alphabet", "ab",
		"--length", "1",
		"--endpoint", server.URL+"/bins/",
		"--output", output,
	)
	require.Error(t, err)
	assert.Equal(t, int64(0), requests.Load())
}

func TestUnknownFormatFailsBeforeSweeping(t *testing.T) {
	server, requests := binServer(t)

	_, err := runApp(t,
		"--alphabet", "ab",
		"--length", "1",
		"--endpoint", server.URL+"/bins/",
		"--format", "xml",
	)
	require.Error(t, err)
	assert.Equal(t, int64(0), requests.Load())
}
