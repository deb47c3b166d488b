package command

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap/zaptest"
)

const rosterJSON = `[
  {"user_id":{"value":"uD"},"first_name":{"value":"D"},"picture":{"value":"d"},
   "access_information":{"hris":{"values":{"EmployeeID":4,"WorkersManagersEmployeeID":2}}}},
  {"user_id":{"value":"uC"},"first_name":{"value":"C"},"picture":{"value":"c"},
   "access_information":{"hris":{"values":{"EmployeeID":3,"WorkersManagersEmployeeID":1}}}},
  {"user_id":{"value":"uA"},"first_name":{"value":"A"},"picture":{"value":"a"},
   "access_information":{"hris":{"values":{"EmployeeID":1}}}},
  {"user_id":{"value":"uB"},"first_name":{"value":"B"},"picture":{"value":"b"},
   "access_information":{"hris":{"values":{"EmployeeID":2,"WorkersManagersEmployeeID":1}}}}
]`

func writeRoster(t *testing.T, content string) string {
	t.Helper()
	file := filepath.Join(t.TempDir(), "roster.json")
	require.NoError(t, os.WriteFile(file, []byte(content), 0o600))
	return file
}

func chartCommand(t *testing.T, args ...string) (*cobra.Command, *bytes.Buffer) {
	t.Helper()
	handler := NewChartHandler(zaptest.NewLogger(t))
	cmd := &cobra.Command{Use: "chart", RunE: handler.Chart, SilenceUsage: true, SilenceErrors: true}
	cmd.Flags().String("file", "", "")
	cmd.Flags().String("user", "", "")
	cmd.Flags().String("view", "full", "")
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetArgs(args)
	return cmd, out
}

func TestChart_Trace(t *testing.T) {
	file := writeRoster(t, rosterJSON)
	cmd, out := chartCommand(t, "--file", file, "--view", "trace", "--user", "uD")

	require.NoError(t, cmd.Execute())
	assert.JSONEq(t, `{"trace":"0-0-0"}`, out.String())
}

func TestChart_FullByDefault(t *testing.T) {
	file := writeRoster(t, rosterJSON)
	cmd, out := chartCommand(t, "--file", file)

	require.NoError(t, cmd.Execute())
	var chart []struct {
		Data     map[string]any `json:"data"`
		Children []any          `json:"children"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &chart))
	require.Len(t, chart, 1)
	assert.Equal(t, "uA", chart[0].Data["user_id"])
	assert.Len(t, chart[0].Children, 2)
}

func TestChart_UnknownUserPrintsErrorResult(t *testing.T) {
	file := writeRoster(t, rosterJSON)
	cmd, out := chartCommand(t, "--file", file, "--view", "directs", "--user", "ghost")

	err := cmd.Execute()
	assert.EqualError(t, err, "unknown userid: ghost")
	assert.JSONEq(t, `{"error":"unknown userid: ghost"}`, out.String())
}

func TestChart_RequiresUserForScopedViews(t *testing.T) {
	file := writeRoster(t, rosterJSON)
	cmd, _ := chartCommand(t, "--file", file, "--view", "related")

	assert.Error(t, cmd.Execute())
}

func TestChart_RejectsNonArrayRoster(t *testing.T) {
	file := writeRoster(t, `{"user_id":{"value":"uA"}}`)
	cmd, _ := chartCommand(t, "--file", file)

	assert.ErrorContains(t, cmd.Execute(), "expected a JSON array of profiles")
}

type fakeWriter struct {
	got     []map[string]any
	deleted []string
	err     error
}

func (w *fakeWriter) UpsertMany(_ context.Context, profiles []map[string]any) (*mongo.BulkWriteResult, error) {
	w.got = profiles
	if w.err != nil {
		return nil, w.err
	}
	return &mongo.BulkWriteResult{UpsertedCount: int64(len(profiles))}, nil
}

func (w *fakeWriter) DeleteByUserID(_ context.Context, userID string) (int64, error) {
	if userID != "uA" {
		return 0, nil
	}
	w.deleted = append(w.deleted, userID)
	return 1, nil
}

func (w *fakeWriter) Count(context.Context) (int64, error) {
	return int64(len(w.got)), nil
}

func importCommand(t *testing.T, writer ProfileWriter, args ...string) (*cobra.Command, *bytes.Buffer) {
	t.Helper()
	handler := NewImportHandler(zaptest.NewLogger(t), writer)
	cmd := &cobra.Command{Use: "import", RunE: handler.Import, SilenceUsage: true, SilenceErrors: true}
	cmd.Flags().String("file", "", "")
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetArgs(args)
	return cmd, out
}

func TestImport(t *testing.T) {
	writer := &fakeWriter{}
	cmd, out := importCommand(t, writer, "--file", writeRoster(t, rosterJSON))

	require.NoError(t, cmd.Execute())
	require.Len(t, writer.got, 4)
	assert.Equal(t, map[string]any{"value": "uD"}, writer.got[0]["user_id"])
	assert.Contains(t, out.String(), "imported 4 profiles")
	assert.Contains(t, out.String(), "4 in collection")
}

func TestImport_MissingFile(t *testing.T) {
	writer := &fakeWriter{}
	cmd, _ := importCommand(t, writer, "--file", filepath.Join(t.TempDir(), "nope.json"))

	assert.Error(t, cmd.Execute())
	assert.Nil(t, writer.got)
}

func TestImport_WriteFailure(t *testing.T) {
	writer := &fakeWriter{err: errors.New("bulk write failed")}
	cmd, _ := importCommand(t, writer, "--file", writeRoster(t, rosterJSON))

	assert.EqualError(t, cmd.Execute(), "bulk write failed")
}

func removeCommand(t *testing.T, writer ProfileWriter, args ...string) (*cobra.Command, *bytes.Buffer) {
	t.Helper()
	handler := NewImportHandler(zaptest.NewLogger(t), writer)
	cmd := &cobra.Command{Use: "remove", RunE: handler.Remove, SilenceUsage: true, SilenceErrors: true}
	cmd.Flags().String("user", "", "")
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetArgs(args)
	return cmd, out
}

func TestRemove(t *testing.T) {
	writer := &fakeWriter{}
	cmd, out := removeCommand(t, writer, "--user", "uA")

	require.NoError(t, cmd.Execute())
	assert.Equal(t, []string{"uA"}, writer.deleted)
	assert.Equal(t, "removed uA\n", out.String())
}

func TestRemove_UnknownUser(t *testing.T) {
	writer := &fakeWriter{}
	cmd, _ := removeCommand(t, writer, "--user", "ghost")

	assert.EqualError(t, cmd.Execute(), "unknown userid: ghost")
	assert.Empty(t, writer.deleted)
}

func TestRemove_RequiresUser(t *testing.T) {
	writer := &fakeWriter{}
	cmd, _ := removeCommand(t, writer)

	assert.Error(t, cmd.Execute())
	assert.Empty(t, writer.deleted)
}
