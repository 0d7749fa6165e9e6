package cmd

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const handoffScenario = `version = 1

[[steps]]
action = "connect"
device = "iphone-1"

[[steps]]
action = "pair"
device = "ipad-2"

[[steps]]
action = "move"
ordinal = 1
control = "secondary"

[[steps]]
action = "select"
index = 0

[[steps]]
action = "set-location"
coordinate = "52.52,13.40"

[[steps]]
action = "select"
index = 1

[[steps]]
action = "autofocus"
enabled = true
`

func TestVersionPrintsBuildVersion(t *testing.T) {
	stdout, _, err := executeCLI(t, t.TempDir(), "version")
	require.NoError(t, err)
	assert.Equal(t, "dev\n", stdout)
}

func TestReplayRendersFinalStatus(t *testing.T) {
	home := t.TempDir()
	path := writeScenario(t, home, handoffScenario)

	stdout, _, err := executeCLI(t, home, "replay", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, "device iphone-1: location 52.520000,13.400000")
	assert.Contains(t, stdout, "device iphone-1: location none")
	assert.Contains(t, stdout, "autofocus: on")
	assert.Contains(t, stdout, "devices: 2")
	assert.Contains(t, stdout, "* 1 ipad-2")
	assert.Contains(t, stdout, "[cycle]")
	assert.Contains(t, stdout, "iphone-1 52.520000,13.400000")
}

func TestReplayJSONOutput(t *testing.T) {
	home := t.TempDir()
	path := writeScenario(t, home, handoffScenario)

	stdout, _, err := executeCLI(t, home, "replay", path, "--json")
	require.NoError(t, err)
	require.True(t, json.Valid([]byte(stdout)), stdout)

	var decoded statusOutput
	require.NoError(t, json.Unmarshal([]byte(stdout), &decoded))
	assert.Equal(t, []string{"iphone-1", "ipad-2"}, decoded.Devices)
	assert.Equal(t, "ipad-2", decoded.ActiveDevice)
	assert.NotEmpty(t, decoded.SessionID)
	assert.Nil(t, decoded.Location)
	assert.Equal(t, "cycle", decoded.MoveType)
	assert.True(t, decoded.AutoFocus)
	require.Len(t, decoded.Cached, 1)
	assert.Equal(t, "iphone-1", decoded.Cached[0].Device)
	assert.Equal(t, coordinateOutput{Latitude: 52.52, Longitude: 13.40}, decoded.Cached[0].Location)
	assert.True(t, decoded.Actions["setLocation"])
	assert.False(t, decoded.Actions["moveUp"])
}

func TestReplayFailsOnHardStepError(t *testing.T) {
	home := t.TempDir()
	path := writeScenario(t, home, "[[steps]]\naction = \"set-location\"\ncoordinate = \"1,2\"\n")

	_, _, err := executeCLI(t, home, "replay", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "step 1 (set-location): no active session")
}

func TestReplayRejectsMissingFile(t *testing.T) {
	home := t.TempDir()

	_, _, err := executeCLI(t, home, "replay", filepath.Join(home, "missing.toml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read scenario file")
}

func TestReplayUsesConfiguredDefaults(t *testing.T) {
	home := t.TempDir()
	writeConfig(t, home, "[session]\ndefault_move_type = \"drive\"\ndefault_location = \"10,20\"\n")
	path := writeScenario(t, home, "[[steps]]\naction = \"connect\"\ndevice = \"iphone-1\"\n\n[[steps]]\naction = \"select\"\n")

	stdout, _, err := executeCLI(t, home, "replay", path, "--json")
	require.NoError(t, err)

	var decoded statusOutput
	require.NoError(t, json.Unmarshal([]byte(stdout), &decoded))
	assert.Equal(t, "drive", decoded.MoveType)
	require.NotNil(t, decoded.Location)
	assert.Equal(t, coordinateOutput{Latitude: 10, Longitude: 20}, *decoded.Location)
}

func TestInvalidConfigSurfacesFromEveryCommand(t *testing.T) {
	home := t.TempDir()
	writeConfig(t, home, "[session]\ndefault_move_type = \"fly\"\n")

	_, _, err := executeCLI(t, home, "version")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load config: parse default move type")
}

func TestRunConsoleHandsSessionOver(t *testing.T) {
	home := t.TempDir()

	stdout, _, err := executeCLIWithInput(t, home, strings.Join([]string{
		"connect iphone-1",
		"pair ipad-2",
		"select 0",
		"set 1.5,2.5",
		"select 1",
		"teleport",
		"select 7",
		"select 0",
		"status",
		"quit",
		"connect never-read",
	}, "\n"), "run")
	require.NoError(t, err)

	assert.Contains(t, stdout, "device iphone-1: location 1.500000,2.500000")
	assert.Contains(t, stdout, "device iphone-1: location none")
	assert.Contains(t, stdout, `error: unknown command "teleport"`)
	assert.Contains(t, stdout, "error: device index out of range: 7")
	assert.Contains(t, stdout, "* 0 iphone-1")
	assert.Contains(t, stdout, "location: 1.500000,2.500000")
	assert.NotContains(t, stdout, "never-read")
}

func TestRunAnnouncesStaticDevices(t *testing.T) {
	home := t.TempDir()

	stdout, _, err := executeCLIWithInput(t, home, "status\n", "run", "--device", "iphone-1", "--device", "ipad-2")
	require.NoError(t, err)
	assert.Contains(t, stdout, "devices: 2")
	assert.Contains(t, stdout, "  0 iphone-1")
	assert.Contains(t, stdout, "  1 ipad-2")
}

func TestRunFallsBackWhenBridgeIsDown(t *testing.T) {
	home := t.TempDir()

	stdout, stderr, err := executeCLIWithInput(t, home, "connect iphone-1\nstatus\n",
		"run", "--bridge", "ws://127.0.0.1:1/events")
	require.NoError(t, err)
	assert.Contains(t, stderr, "device bridge ws://127.0.0.1:1/events unavailable")
	assert.Contains(t, stdout, "  0 iphone-1")
}

func TestRunReportsBridgeConnection(t *testing.T) {
	home := t.TempDir()

	upgrader := websocket.Upgrader{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
	t.Cleanup(server.Close)
	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/events"

	_, stderr, err := executeCLIWithInput(t, home, "status\n", "run", "--bridge", url)
	require.NoError(t, err)
	assert.Contains(t, stderr, "connected to device bridge "+url+" in ")
	assert.NotContains(t, stderr, "unavailable")
}

func TestRunRecordsReplayableScenario(t *testing.T) {
	home := t.TempDir()
	record := filepath.Join(home, "scenarios", "recorded.toml")

	stdout, _, err := executeCLIWithInput(t, home, "connect iphone-1\nselect 0\nmove drive\nbogus\nset 3,4\n", "run", "--record", record)
	require.NoError(t, err)
	assert.Contains(t, stdout, "recorded 4 steps to "+record)

	stdout, _, err = executeCLI(t, home, "replay", record, "--json")
	require.NoError(t, err)

	var decoded statusOutput
	require.NoError(t, json.Unmarshal([]byte(stdout), &decoded))
	assert.Equal(t, "iphone-1", decoded.ActiveDevice)
	assert.Equal(t, "drive", decoded.MoveType)
	require.NotNil(t, decoded.Location)
	assert.Equal(t, coordinateOutput{Latitude: 3, Longitude: 4}, *decoded.Location)
}

func TestRunRecordsStaticDevicesForReplay(t *testing.T) {
	home := t.TempDir()
	record := filepath.Join(home, "static.toml")

	stdout, _, err := executeCLIWithInput(t, home, "select 0\nset 3,4\n", "run", "--device", "iphone-1", "--record", record)
	require.NoError(t, err)
	assert.Contains(t, stdout, "recorded 3 steps to "+record)

	stdout, _, err = executeCLI(t, home, "replay", record, "--json")
	require.NoError(t, err)

	var decoded statusOutput
	require.NoError(t, json.Unmarshal([]byte(stdout), &decoded))
	assert.Equal(t, []string{"iphone-1"}, decoded.Devices)
	assert.Equal(t, "iphone-1", decoded.ActiveDevice)
	require.NotNil(t, decoded.Location)
	assert.Equal(t, coordinateOutput{Latitude: 3, Longitude: 4}, *decoded.Location)
}

func TestRunRecordWithoutCommandsFails(t *testing.T) {
	home := t.TempDir()

	_, _, err := executeCLIWithInput(t, home, "status\n", "run", "--record", filepath.Join(home, "empty.toml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no commands were applied")
}

func executeCLI(t *testing.T, home string, args ...string) (string, string, error) {
	t.Helper()
	return executeCLIWithInput(t, home, "", args...)
}

func executeCLIWithInput(t *testing.T, home string, input string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("HOME", home)
	t.Setenv("LOCSIM_BRIDGE_URL", "")
	t.Setenv("LOCSIM_DEFAULT_MOVE_TYPE", "")
	t.Setenv("LOCSIM_LOG_LEVEL", "warn")

	root := newRootCmd()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetIn(strings.NewReader(input))
	root.SetArgs(args)

	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func writeScenario(t *testing.T, home string, content string) string {
	t.Helper()

	path := filepath.Join(home, "scenario.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func writeConfig(t *testing.T, home string, content string) {
	t.Helper()

	dir := filepath.Join(home, ".config", "locsim")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0o600))
}
