// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package lspclient

import (
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// Lifecycle method names.
const (
	MethodInitialize  = "initialize"
	MethodInitialized = "initialized"
)

// InitializeParams is the payload of the initialize request.
type InitializeParams struct {
	ProcessID        int                `json:"processId"`
	RootURI          string             `json:"rootUri"`
	ClientInfo       ClientInfo         `json:"clientInfo"`
	Capabilities     ClientCapabilities `json:"capabilities"`
	WorkspaceFolders []WorkspaceFolder  `json:"workspaceFolders"`
}

type ClientInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

type WorkspaceFolder struct {
	URI  string `json:"uri"`
	Name string `json:"name"`
}

// ClientCapabilities is the subset of LSP client capabilities this client
// advertises.
type ClientCapabilities struct {
	Workspace    *WorkspaceCapabilities    `json:"workspace,omitempty"`
	TextDocument *TextDocumentCapabilities `json:"textDocument,omitempty"`
}

type WorkspaceCapabilities struct {
	WorkspaceFolders       bool                   `json:"workspaceFolders"`
	DidChangeConfiguration DidChangeConfiguration `json:"didChangeConfiguration"`
	WorkspaceEdit          WorkspaceEdit          `json:"workspaceEdit"`
	Configuration          bool                   `json:"configuration"`
}

type DidChangeConfiguration struct {
	DynamicRegistration bool `json:"dynamicRegistration"`
}

type WorkspaceEdit struct {
	DocumentChanges bool `json:"documentChanges"`
}

type TextDocumentCapabilities struct {
	Hover      HoverCapabilities      `json:"hover"`
	Completion CompletionCapabilities `json:"completion"`
	CodeAction CodeActionCapabilities `json:"codeAction"`
}

type HoverCapabilities struct {
	ContentFormat []protocol.MarkupKind `json:"contentFormat"`
}

type CompletionCapabilities struct {
	CompletionItem CompletionItemCapabilities `json:"completionItem"`
}

type CompletionItemCapabilities struct {
	SnippetSupport bool `json:"snippetSupport"`
}

type CodeActionCapabilities struct {
	CodeActionLiteralSupport CodeActionLiteralSupport `json:"codeActionLiteralSupport"`
}

type CodeActionLiteralSupport struct {
	CodeActionKind CodeActionKindSet `json:"codeActionKind"`
}

type CodeActionKindSet struct {
	ValueSet []protocol.CodeActionKind `json:"valueSet"`
}

// DefaultCapabilities returns the fixed capability tree sent on initialize.
func DefaultCapabilities() ClientCapabilities {
	return ClientCapabilities{
		Workspace: &WorkspaceCapabilities{
			WorkspaceFolders:       true,
			DidChangeConfiguration: DidChangeConfiguration{DynamicRegistration: true},
			WorkspaceEdit:          WorkspaceEdit{DocumentChanges: true},
			Configuration:          true,
		},
		TextDocument: &TextDocumentCapabilities{
			Hover: HoverCapabilities{
				ContentFormat: []protocol.MarkupKind{protocol.MarkupKindPlainText},
			},
			Completion: CompletionCapabilities{
				CompletionItem: CompletionItemCapabilities{SnippetSupport: true},
			},
			CodeAction: CodeActionCapabilities{
				CodeActionLiteralSupport: CodeActionLiteralSupport{
					CodeActionKind: CodeActionKindSet{
						ValueSet: []protocol.CodeActionKind{
							protocol.CodeActionKindSourceOrganizeImports,
							protocol.CodeActionKindRefactorRewrite,
							protocol.CodeActionKindRefactorExtract,
						},
					},
				},
			},
		},
	}
}

// NewInitializeParams builds the handshake payload with the default
// capability tree. A nil folder list is sent as an empty array.
func NewInitializeParams(processID int, rootURI, clientName, clientVersion string, folders []WorkspaceFolder) InitializeParams {
	if folders == nil {
		folders = []WorkspaceFolder{}
	}
	return InitializeParams{
		ProcessID:        processID,
		RootURI:          rootURI,
		ClientInfo:       ClientInfo{Name: clientName, Version: clientVersion},
		Capabilities:     DefaultCapabilities(),
		WorkspaceFolders: folders,
	}
}

// NewInitializeRequest wraps params in an initialize request with the given id.
func NewInitializeRequest(id any, params InitializeParams) *Request {
	return NewRequest(id, MethodInitialize, params)
}

// NewInitializedNotification returns the notification sent after the
// initialize response. Its params are always an empty object.
func NewInitializedNotification() *Notification {
	return NewNotification(MethodInitialized, struct{}{})
}
