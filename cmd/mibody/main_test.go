package main

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/bbrard/mibody/internal/output"
	"github.com/bbrard/mibody/internal/testutil"
)

func run(t *testing.T, stdin string, args ...string) (string, *logtest.Hook, error) {
	t.Helper()
	logger, hook := logtest.NewNullLogger()
	cmd := newRootCmd(logger)
	var out bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), hook, err
}

func TestHexFromStdin(t *testing.T) {
	out, _, err := run(t, testutil.LoadHex(t, "mibody/two_records.hex"), "--hex", "--unit", "kg")
	require.NoError(t, err)
	require.Equal(t, testutil.LoadText(t, "mibody/two_records_kg.txt"), out)
}

func writeBinary(t *testing.T, fixture, name string) string {
	t.Helper()
	raw, err := hex.DecodeString(strings.ReplaceAll(testutil.LoadHex(t, fixture), " ", ""))
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, raw, 0o600))
	return path
}

func TestBinaryFile(t *testing.T) {
	path := writeBinary(t, "mibody/two_records.hex", "scale.bin")

	out, _, err := run(t, "", path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	require.Contains(t, lines[0], "\t147.9\t")
}

func TestConfigFileAndFlagOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mibody.yaml")
	require.NoError(t, os.WriteFile(path, []byte("unit: st\nformat: json\n"), 0o600))
	hexStr := testutil.LoadHex(t, "mibody/two_records.hex")

	out, _, err := run(t, hexStr, "--hex", "--config", path)
	require.NoError(t, err)
	require.Contains(t, out, `"unit": "st"`)

	out, _, err = run(t, hexStr, "--hex", "--config", path, "--format", "text")
	require.NoError(t, err)
	require.Contains(t, out, "\t10.6\t")
}

func TestCorruptedInputWarns(t *testing.T) {
	out, hook, err := run(t, testutil.LoadHex(t, "mibody/corrupted_repeat.hex"), "--hex")
	require.NoError(t, err)
	require.Len(t, strings.Split(strings.TrimSpace(out), "\n"), 1)
	require.NotNil(t, hook.LastEntry())
	require.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
	require.Equal(t, "corruption", hook.LastEntry().Data["reason"])
}

func TestTruncatedInputWarns(t *testing.T) {
	out, hook, err := run(t, testutil.LoadHex(t, "mibody/truncated.hex"), "--hex")
	require.NoError(t, err)
	require.Empty(t, out)
	require.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
}

func TestUnknownFormat(t *testing.T) {
	_, _, err := run(t, "", "--format", "xml")
	require.ErrorContains(t, err, "xml")
}

func TestMissingFile(t *testing.T) {
	_, _, err := run(t, "", filepath.Join(t.TempDir(), "nope.bin"))
	require.ErrorContains(t, err, "open input")
}

func TestMultipleFilesJSONIsOneDocument(t *testing.T) {
	a := writeBinary(t, "mibody/two_records.hex", "a.bin")
	b := writeBinary(t, "mibody/two_records.hex", "b.bin")

	out, _, err := run(t, "", "--format", "json", "--unit", "kg", a, b)
	require.NoError(t, err)

	var got []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 4)
	require.Equal(t, "2014-02-12 09:24:30", got[2]["datetime"])
	require.InDelta(t, 66.2, got[3]["weight"], 1e-9)
}

func TestMultipleFilesMsgpackIsOneDocument(t *testing.T) {
	a := writeBinary(t, "mibody/two_records.hex", "a.bin")
	b := writeBinary(t, "mibody/corrupted_repeat.hex", "b.bin")

	out, _, err := run(t, "", "--format", "msgpack", a, b)
	require.NoError(t, err)

	var got []output.Measurement
	dec := msgpack.NewDecoder(bytes.NewReader([]byte(out)))
	require.NoError(t, dec.Decode(&got))
	require.Len(t, got, 3)
	_, err = dec.DecodeInterface()
	require.Error(t, err)
}

func TestMultipleFilesTextKeepsOrder(t *testing.T) {
	a := writeBinary(t, "mibody/two_records.hex", "a.bin")
	b := writeBinary(t, "mibody/truncated.hex", "b.bin")
	c := writeBinary(t, "mibody/corrupted_repeat.hex", "c.bin")

	out, _, err := run(t, "", a, b, c)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	require.True(t, strings.HasPrefix(lines[0], "2014-02-12 09:24:30\t"))
	require.True(t, strings.HasPrefix(lines[1], "2014-02-10 08:48:59\t"))
	require.True(t, strings.HasPrefix(lines[2], "2014-02-12 09:24:30\t"))
}
