package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pborges/wires"
	"github.com/pborges/wires/examples"
	"github.com/pborges/wires/internal/circuit"
	"github.com/pborges/wires/internal/netlist"
	"github.com/pborges/wires/internal/testutil"
)

func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cfgPath := filepath.Join(t.TempDir(), "wires.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("log_level: error\n"), 0644))

	var out, errOut bytes.Buffer
	cmd := newRootCmd(&out, &errOut)
	cmd.SetArgs(append([]string{"--config", cfgPath}, args...))
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func exampleFile(t *testing.T, name string) string {
	t.Helper()
	data, err := examples.FS.ReadFile(name)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

func TestEvalAllWires(t *testing.T) {
	for _, name := range []string{"gates.txt", "gates.yaml"} {
		t.Run(name, func(t *testing.T) {
			out, _, err := runCLI(t, "eval", exampleFile(t, name))
			require.NoError(t, err)

			got, err := testutil.ParseReport([]byte(out))
			require.NoError(t, err)
			expect, err := examples.FS.ReadFile("gates.expect")
			require.NoError(t, err)
			want, err := testutil.ParseReport(expect)
			require.NoError(t, err)

			if diff := testutil.CompareReport(got, want); diff != "" {
				t.Fatal(diff)
			}
			assert.Equal(t, []string{"d", "e", "f", "g", "h", "i", "x", "y"}, got.Order)
		})
	}
}

func TestEvalHeader(t *testing.T) {
	path := exampleFile(t, "override.txt")
	out, _, err := runCLI(t, "eval", path, "a")
	require.NoError(t, err)
	assert.Equal(t,
		"# wires    "+wires.Version()+"\n# netlist  "+path+"\na = 11107\n",
		out)
}

func TestEvalForce(t *testing.T) {
	out, _, err := runCLI(t, "eval", exampleFile(t, "override.txt"), "a", "b", "--force", "b=11107")
	require.NoError(t, err)
	assert.Contains(t, out, "a = 2777\n")
	assert.Contains(t, out, "b = 11107  # forced\n")
}

func TestEvalForceUndefinedWireIsIgnored(t *testing.T) {
	out, _, err := runCLI(t, "eval", exampleFile(t, "override.txt"), "a", "--force", "zz=1")
	require.NoError(t, err)
	assert.Contains(t, out, "a = 11107\n")
}

func TestEvalUndefinedWire(t *testing.T) {
	out, _, err := runCLI(t, "eval", exampleFile(t, "override.txt"), "nope")
	require.NoError(t, err)
	assert.Contains(t, out, "nope = 0  # undefined\n")
}

func TestEvalRadix(t *testing.T) {
	path := exampleFile(t, "override.txt")

	out, _, err := runCLI(t, "eval", path, "a", "--radix", "hex")
	require.NoError(t, err)
	assert.Contains(t, out, "a = 0x2b63\n")

	out, _, err = runCLI(t, "eval", path, "a", "--radix", "bin")
	require.NoError(t, err)
	assert.Contains(t, out, "a = 0b0010101101100011\n")
}

func TestEvalCycle(t *testing.T) {
	_, _, err := runCLI(t, "eval", exampleFile(t, "cycle.txt"), "r")
	require.Error(t, err)
	assert.True(t, errors.Is(err, circuit.ErrCircularReference))

	var cerr *circuit.CycleError
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, 1, exitCode(err))
}

func TestEvalMalformedNetlist(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.txt")
	require.NoError(t, os.WriteFile(path, []byte("1 -> x\nx XOR 2 -> y\nnope\n"), 0644))

	_, _, err := runCLI(t, "eval", path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, circuit.ErrInvalidInput))
	assert.Contains(t, err.Error(), "line 2")
	assert.Contains(t, err.Error(), "line 3")
	assert.Equal(t, 1, exitCode(err))
}

func TestOverride(t *testing.T) {
	out, _, err := runCLI(t, "override", exampleFile(t, "override.txt"))
	require.NoError(t, err)
	assert.Contains(t, out, "a = 11107  # initial\n")
	assert.Contains(t, out, "a = 2777  # b forced to 11107\n")
}

func TestOverrideHelper(t *testing.T) {
	data, err := examples.FS.ReadFile("override.txt")
	require.NoError(t, err)
	rules, err := netlist.Parse(data)
	require.NoError(t, err)
	c := netlist.Build(rules)

	first, second, err := override(c, "a", "b")
	require.NoError(t, err)
	assert.Equal(t, uint16(11107), first)
	assert.Equal(t, uint16(2777), second)

	info, ok := c.Lookup("b")
	require.True(t, ok)
	assert.True(t, info.Forced)
	assert.Equal(t, uint16(11107), info.Value)
}

func TestExplain(t *testing.T) {
	out, _, err := runCLI(t, "explain", exampleFile(t, "override.txt"), "a")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "a = c OR 1 = 11107", lines[0])
	assert.Contains(t, lines[1], "c = b RSHIFT 2 = 11107")
	assert.Contains(t, lines[2], "b = 44430")
}

func TestFmt(t *testing.T) {
	out, _, err := runCLI(t, "fmt", exampleFile(t, "override.txt"))
	require.NoError(t, err)
	assert.Equal(t, "c OR 1 -> a\n44430 -> b\nb RSHIFT 2 -> c\n", out)
}

func TestFmtWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "messy.txt")
	require.NoError(t, os.WriteFile(path, []byte("  x   AND  1->y\n3 -> x\n5 -> x\n"), 0644))

	out, _, err := runCLI(t, "fmt", "-w", path)
	require.NoError(t, err)
	assert.Empty(t, out)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "5 -> x\nx AND 1 -> y\n", string(data))
}

func TestFmtWriteRejectsYAML(t *testing.T) {
	_, _, err := runCLI(t, "fmt", "-w", exampleFile(t, "gates.yaml"))
	require.Error(t, err)
	assert.Equal(t, 2, exitCode(err))
}

func TestVersion(t *testing.T) {
	out, _, err := runCLI(t, "version")
	require.NoError(t, err)
	assert.Equal(t, wires.Version()+"\n", out)
}

func TestUsageErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"no command", nil},
		{"unknown command", []string{"frobnicate"}},
		{"missing file", []string{"eval"}},
		{"unknown flag", []string{"eval", "--bogus", "x.txt"}},
		{"bad force", []string{"eval", "x.txt", "--force", "b"}},
		{"bad radix", []string{"eval", "x.txt", "--radix", "oct"}},
		{"extra args", []string{"override", "x.txt", "y.txt"}},
		{"bad log level", []string{"--log-level", "loud", "version"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := runCLI(t, tt.args...)
			require.Error(t, err)
			assert.Equal(t, 2, exitCode(err), "error: %v", err)
		})
	}
}

func TestMissingNetlistFile(t *testing.T) {
	_, _, err := runCLI(t, "eval", filepath.Join(t.TempDir(), "absent.txt"))
	require.Error(t, err)
	assert.Equal(t, 1, exitCode(err))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestParseForce(t *testing.T) {
	name, v, err := parseForce("b=0x10")
	require.NoError(t, err)
	assert.Equal(t, "b", name)
	assert.Equal(t, uint16(16), v)

	_, _, err = parseForce("b=65536")
	assert.Error(t, err)
	_, _, err = parseForce("=1")
	assert.Error(t, err)
}
