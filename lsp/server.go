// Package lsp serves Quench documents to editors over the Language Server
// Protocol.
//
// Text synchronisation is incremental: a change notification carrying a
// single ranged edit is applied through the incremental reparse path, any
// other batch replaces the document text. After every change the server
// publishes the syntax errors of the new tree as diagnostics.
package lsp

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	_ "github.com/tliron/commonlog/simple"

	"github.com/quench-lang/quench/compiler"
	"github.com/quench-lang/quench/document"
	"github.com/quench-lang/quench/parser"
)

const lsName = "quench"

const (
	CommandSyntaxTree = "quench.syntaxTree"
	CommandCompile    = "quench.compile"
)

var log = commonlog.GetLogger("quench.lsp")

type LSPServer struct {
	store    *document.Store
	compiler *compiler.Compiler
	handler  protocol.Handler
	server   *server.Server
	version  string
}

func NewLSPServer(version string, comp *compiler.Compiler) *LSPServer {
	if comp == nil {
		comp = compiler.New()
	}
	ls := &LSPServer{
		store:    document.NewStore(),
		compiler: comp,
		version:  version,
	}

	ls.handler = protocol.Handler{
		Initialize:                     ls.initialize,
		Initialized:                    ls.initialized,
		Shutdown:                       ls.shutdown,
		SetTrace:                       ls.setTrace,
		TextDocumentDidOpen:            ls.textDocumentDidOpen,
		TextDocumentDidChange:          ls.textDocumentDidChange,
		TextDocumentDidClose:           ls.textDocumentDidClose,
		TextDocumentSemanticTokensFull: ls.textDocumentSemanticTokensFull,
		WorkspaceExecuteCommand:        ls.workspaceExecuteCommand,
	}

	ls.server = server.NewServer(&ls.handler, lsName, false)

	return ls
}

func (ls *LSPServer) RunStdio() error {
	return ls.server.RunStdio()
}

// Store exposes the documents the server is tracking.
func (ls *LSPServer) Store() *document.Store {
	return ls.store
}

func (ls *LSPServer) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	capabilities := ls.handler.CreateServerCapabilities()

	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    syncKindPtr(protocol.TextDocumentSyncKindIncremental),
	}
	capabilities.SemanticTokensProvider = &protocol.SemanticTokensOptions{
		Legend: protocol.SemanticTokensLegend{
			TokenTypes:     tokenTypes,
			TokenModifiers: []string{},
		},
		Full: true,
	}
	capabilities.ExecuteCommandProvider = &protocol.ExecuteCommandOptions{
		Commands: []string{CommandSyntaxTree, CommandCompile},
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &ls.version,
		},
	}, nil
}

func (ls *LSPServer) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	log.Info("client initialized")
	return nil
}

func (ls *LSPServer) shutdown(ctx *glsp.Context) error {
	log.Infof("shutting down with %d open documents", len(ls.store.IDs()))
	return nil
}

func (ls *LSPServer) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (ls *LSPServer) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	uri := params.TextDocument.URI
	if err := ls.store.Open(uri, params.TextDocument.Text); err != nil {
		if !errors.Is(err, document.ErrAlreadyOpen) {
			return err
		}
		// Some clients reopen without closing; treat it as a full update.
		if err := ls.store.Update(uri, params.TextDocument.Text); err != nil {
			return err
		}
	}
	ls.publishDiagnostics(ctx, uri)
	return nil
}

func (ls *LSPServer) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	uri := params.TextDocument.URI
	old, err := ls.store.Text(uri)
	if err != nil {
		return err
	}

	if len(params.ContentChanges) == 1 {
		if change, ok := params.ContentChanges[0].(protocol.TextDocumentContentChangeEvent); ok && change.Range != nil {
			next, edit := editFromChange(old, change)
			if err := ls.store.Edit(uri, edit, next); err != nil {
				log.Warningf("incremental update of %s failed, reparsing: %s", uri, err.Error())
				if err := ls.store.Update(uri, next); err != nil {
					return err
				}
			}
			ls.publishDiagnostics(ctx, uri)
			return nil
		}
	}

	text := old
	for _, change := range params.ContentChanges {
		switch c := change.(type) {
		case protocol.TextDocumentContentChangeEvent:
			if c.Range == nil {
				text = c.Text
				continue
			}
			text, _ = editFromChange(text, c)
		case protocol.TextDocumentContentChangeEventWhole:
			text = c.Text
		}
	}
	if err := ls.store.Update(uri, text); err != nil {
		return err
	}
	ls.publishDiagnostics(ctx, uri)
	return nil
}

// editFromChange applies a ranged change to text and describes it as an
// edit in byte offsets.
func editFromChange(text string, change protocol.TextDocumentContentChangeEvent) (string, parser.Edit) {
	start := offsetAt(text, change.Range.Start)
	end := offsetAt(text, change.Range.End)
	if end < start {
		start, end = end, start
	}
	raw := []byte(text)
	return document.ApplyEdit(text, parser.Edit{
		StartByte:   start,
		OldEndByte:  end,
		StartPoint:  parser.PointAt(raw, start),
		OldEndPoint: parser.PointAt(raw, end),
	}, change.Text)
}

func (ls *LSPServer) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	uri := params.TextDocument.URI
	if err := ls.store.Close(uri); err != nil {
		return err
	}
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: []protocol.Diagnostic{},
	})
	return nil
}

func (ls *LSPServer) publishDiagnostics(ctx *glsp.Context, uri string) {
	state, err := ls.store.State(uri)
	if err != nil {
		log.Errorf("diagnostics: %s", err.Error())
		return
	}
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics(state.Text(), state.Root()),
	})
}

// diagnostics reports one error per error node in the tree.
func diagnostics(text string, root *parser.Node) []protocol.Diagnostic {
	severity := protocol.DiagnosticSeverityError
	source := lsName

	result := []protocol.Diagnostic{}
	root.Walk(func(n *parser.Node) bool {
		if !n.IsError() {
			return true
		}
		msg := "syntax error"
		if n.Error != nil && n.Error.Message != "" {
			msg = n.Error.Message
		}
		result = append(result, protocol.Diagnostic{
			Range:    rangeOf(text, n.Range),
			Severity: &severity,
			Source:   &source,
			Message:  msg,
		})
		return false
	})
	return result
}

func (ls *LSPServer) textDocumentSemanticTokensFull(ctx *glsp.Context, params *protocol.SemanticTokensParams) (*protocol.SemanticTokens, error) {
	text, err := ls.store.Text(params.TextDocument.URI)
	if err != nil {
		return nil, err
	}
	return &protocol.SemanticTokens{Data: semanticTokens(text)}, nil
}

func (ls *LSPServer) workspaceExecuteCommand(ctx *glsp.Context, params *protocol.ExecuteCommandParams) (any, error) {
	if len(params.Arguments) != 1 {
		return nil, fmt.Errorf("%s: expected a document URI argument", params.Command)
	}
	uri, ok := params.Arguments[0].(string)
	if !ok {
		return nil, fmt.Errorf("%s: document URI must be a string", params.Command)
	}

	switch params.Command {
	case CommandSyntaxTree:
		return ls.store.DebugString(uri)
	case CommandCompile:
		root, err := ls.store.Root(uri)
		if err != nil {
			return nil, err
		}
		return ls.compiler.Compile(root)
	}
	return nil, fmt.Errorf("unknown command %q (want one of %s)",
		params.Command, strings.Join([]string{CommandSyntaxTree, CommandCompile}, ", "))
}

func boolPtr(b bool) *bool {
	return &b
}

func syncKindPtr(kind protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &kind
}
