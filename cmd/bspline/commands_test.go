package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"honnef.co/go/bspline"
)

func writeSpline(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "spline.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := newRootCmd()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return stdout.String(), err
}

const curve2D = `
degree: 3
controlPoints:
  - [0, 0]
  - [1, 3]
  - [2, -1]
  - [4, 2]
  - [5, 0]
`

func TestEval(t *testing.T) {
	path := writeSpline(t, uniformQuadratic)
	out, err := run(t, "eval", path, "0.5", "0.4")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "0.5 1", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "0.4 "))
}

func TestEvalVector(t *testing.T) {
	path := writeSpline(t, curve2D)
	out, err := run(t, "eval", path, "0.5")
	require.NoError(t, err)
	assert.Len(t, strings.Fields(out), 3)
}

func TestEvalErrors(t *testing.T) {
	path := writeSpline(t, uniformQuadratic)

	_, err := run(t, "eval", path, "half")
	assert.ErrorContains(t, err, `invalid parameter "half"`)

	_, err = run(t, "eval", path)
	assert.Error(t, err)

	_, err = run(t, "eval", filepath.Join(t.TempDir(), "missing.yaml"), "0.5")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestSample(t *testing.T) {
	path := writeSpline(t, uniformQuadratic)
	out, err := run(t, "sample", "--steps", "4", path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "0.333333 1.5", lines[0])
	for _, line := range lines {
		assert.Len(t, strings.Fields(line), 2)
	}
}

func TestSampleBasis(t *testing.T) {
	path := writeSpline(t, curve2D)
	out, err := run(t, "sample", "--steps", "8", "--basis", path)
	require.NoError(t, err)

	b, err := loadSpline(path)
	require.NoError(t, err)
	terms := len(b.Basis())

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 9)
	for _, line := range lines {
		// parameter, value and one value per term, two components each
		assert.Len(t, strings.Fields(line), 1+2*(1+terms))
	}
}

func TestSampleCanceled(t *testing.T) {
	b, err := parseSpline([]byte(uniformQuadratic))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = sampleColumns(ctx, []bspline.Evaluable{b}, []float64{0.4, 0.5})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSampleInvalidSteps(t *testing.T) {
	path := writeSpline(t, uniformQuadratic)
	_, err := run(t, "sample", "--steps", "0", path)
	assert.ErrorContains(t, err, "--steps")
}

func TestSVG(t *testing.T) {
	path := writeSpline(t, curve2D)
	out, err := run(t, "svg", path)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "<svg viewBox="))
	assert.Contains(t, out, ` d="M`)
	assert.Contains(t, out, "C")
	assert.True(t, strings.HasSuffix(out, "</svg>\n"))
}

func TestSVGGraph(t *testing.T) {
	path := writeSpline(t, uniformQuadratic)
	out, err := run(t, "svg", "--accuracy", "0.01", "--padding", "0", path)
	require.NoError(t, err)
	assert.Contains(t, out, ` d="M`)
}

func TestSVGErrors(t *testing.T) {
	path := writeSpline(t, "degree: 1\ncontrolPoints: [[1, 2, 3], [4, 5, 6]]\n")
	_, err := run(t, "svg", path)
	assert.ErrorIs(t, err, bspline.ErrDimensionMismatch)

	_, err = run(t, "svg", "--accuracy", "0", writeSpline(t, uniformQuadratic))
	assert.ErrorContains(t, err, "--accuracy")
}

func TestInfo(t *testing.T) {
	path := writeSpline(t, uniformQuadratic)
	out, err := run(t, "info", path)
	require.NoError(t, err)

	assert.Contains(t, out, "degree: 2\n")
	assert.Contains(t, out, "order: 3\n")
	assert.Contains(t, out, "control points: 4\n")
	assert.Contains(t, out, "domain: [0.3333333333333333, 0.6666666666666666)\n")
	assert.Contains(t, out, "terms: 6\n")
	assert.Contains(t, out, "flattened: true\n")
}

func TestFormatValue(t *testing.T) {
	assert.Equal(t, "1.5", formatValue(bspline.Scalar(1.5), 1))
	assert.Equal(t, "0 0", formatValue(bspline.Zero, 2))
	assert.Equal(t, "1 2", formatValue(bspline.Tuple(bspline.Vec(1, 2)), 2))
	assert.Equal(t, "0", formatValue(bspline.Zero, 0))
}

func TestSVGOutput(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out.svg")
	stdout, err := run(t, "svg", "-o", out, writeSpline(t, curve2D))
	require.NoError(t, err)
	assert.Empty(t, stdout)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "<svg viewBox="))
}

func TestSVGWatchRequiresOutput(t *testing.T) {
	_, err := run(t, "svg", "--watch", writeSpline(t, curve2D))
	assert.ErrorContains(t, err, "--output")
}

func TestSVGWatch(t *testing.T) {
	path := writeSpline(t, curve2D)
	out := filepath.Join(t.TempDir(), "out.svg")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	errc := make(chan error, 1)
	go func() {
		root := newRootCmd()
		root.SetOut(io.Discard)
		root.SetErr(io.Discard)
		root.SetArgs([]string{"svg", "--watch", "-o", out, path})
		errc <- root.ExecuteContext(ctx)
	}()

	// read returns the document, or "" while it is missing or incomplete.
	read := func() string {
		data, _ := os.ReadFile(out)
		if !strings.HasSuffix(string(data), "</svg>\n") {
			return ""
		}
		return string(data)
	}
	var first string
	require.Eventually(t, func() bool {
		first = read()
		return first != ""
	}, 5*time.Second, 10*time.Millisecond)

	require.NoError(t, os.WriteFile(path, []byte(uniformQuadratic), 0o644))
	require.Eventually(t, func() bool {
		s := read()
		return s != "" && s != first
	}, 5*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-errc:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch didn't stop after cancellation")
	}
}

func TestLogHandler(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(newLogHandler(&buf, slog.LevelInfo))
	logger.Debug("hidden")
	logger.Info("shown", "x", 1)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"msg":"shown"`)
}
