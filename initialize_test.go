// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package lspclient

import (
	"encoding/json"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

func TestInitializeRequestJSON(t *testing.T) {
	pid := os.Getpid()
	req := NewInitializeRequest(1, NewInitializeParams(
		pid,
		"file://path/to/root",
		"YourLSPClientName",
		"1.0.0",
		[]WorkspaceFolder{{URI: "file://path/to/workspace", Name: "file://path/to/workspace"}},
	))

	got, err := json.Marshal(req)
	require.NoError(t, err)

	want := `{
		"jsonrpc": "2.0",
		"id": 1,
		"method": "initialize",
		"params": {
			"processId": ` + jsonString(t, pid) + `,
			"clientInfo": {"name": "YourLSPClientName", "version": "1.0.0"},
			"rootUri": "file://path/to/root",
			"capabilities": {
				"workspace": {
					"workspaceFolders": true,
					"didChangeConfiguration": {"dynamicRegistration": true},
					"workspaceEdit": {"documentChanges": true},
					"configuration": true
				},
				"textDocument": {
					"hover": {"contentFormat": ["plaintext"]},
					"completion": {"completionItem": {"snippetSupport": true}},
					"codeAction": {
						"codeActionLiteralSupport": {
							"codeActionKind": {
								"valueSet": ["source.organizeImports", "refactor.rewrite", "refactor.extract"]
							}
						}
					}
				}
			},
			"workspaceFolders": [{"uri": "file://path/to/workspace", "name": "file://path/to/workspace"}]
		}
	}`
	assert.JSONEq(t, want, string(got))
}

func TestInitializeParamsRoundTrip(t *testing.T) {
	params := NewInitializeParams(77, "file:///src", "client", "2.1.0", []WorkspaceFolder{{URI: "file:///src", Name: "src"}})
	data, err := json.Marshal(NewInitializeRequest(1, params))
	require.NoError(t, err)

	var decoded struct {
		Params InitializeParams `json:"params"`
	}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, params, decoded.Params)

	caps := decoded.Params.Capabilities
	require.NotNil(t, caps.Workspace)
	require.NotNil(t, caps.TextDocument)
	assert.True(t, caps.Workspace.WorkspaceFolders)
	assert.True(t, caps.Workspace.DidChangeConfiguration.DynamicRegistration)
	assert.True(t, caps.Workspace.WorkspaceEdit.DocumentChanges)
	assert.True(t, caps.Workspace.Configuration)
	assert.Equal(t, []protocol.MarkupKind{"plaintext"}, caps.TextDocument.Hover.ContentFormat)
	assert.True(t, caps.TextDocument.Completion.CompletionItem.SnippetSupport)
	assert.Equal(t,
		[]protocol.CodeActionKind{"source.organizeImports", "refactor.rewrite", "refactor.extract"},
		caps.TextDocument.CodeAction.CodeActionLiteralSupport.CodeActionKind.ValueSet,
	)
}

func TestNilWorkspaceFoldersEncodeAsEmptyArray(t *testing.T) {
	data, err := json.Marshal(NewInitializeParams(1, "file:///", "c", "1", nil))
	require.NoError(t, err)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "[]", string(raw["workspaceFolders"]))
}

func TestInitializedNotificationJSON(t *testing.T) {
	data, err := json.Marshal(NewInitializedNotification())
	require.NoError(t, err)
	assert.Equal(t, `{"jsonrpc":"2.0","method":"initialized","params":{}}`, string(data))

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))
	_, hasID := raw["id"]
	assert.False(t, hasID)
}

func jsonString(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return string(data)
}
