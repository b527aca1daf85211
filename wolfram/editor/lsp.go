package editor

import (
	"errors"

	"github.com/dhamidi/wlx/wolfram/parser"

	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	_ "github.com/tliron/commonlog/simple"
)

const lsName = "wlx"

var log = commonlog.GetLogger("wlx.lsp")

// LSPServer publishes syntax diagnostics for Wolfram Language buffers.
// It consumes the core through Document only: parse errors and unknown
// tokens become diagnostics on didOpen/didChange.
type LSPServer struct {
	documents map[string]*Document
	handler   protocol.Handler
	server    *server.Server
	version   string
}

func NewLSPServer(version string) *LSPServer {
	ls := &LSPServer{
		documents: make(map[string]*Document),
		version:   version,
	}

	ls.handler = protocol.Handler{
		Initialize:            ls.initialize,
		Initialized:           ls.initialized,
		Shutdown:              ls.shutdown,
		SetTrace:              ls.setTrace,
		TextDocumentDidOpen:   ls.textDocumentDidOpen,
		TextDocumentDidChange: ls.textDocumentDidChange,
		TextDocumentDidClose:  ls.textDocumentDidClose,
	}

	ls.server = server.NewServer(&ls.handler, lsName, false)

	return ls
}

func (ls *LSPServer) RunStdio() error {
	return ls.server.RunStdio()
}

func (ls *LSPServer) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	capabilities := ls.handler.CreateServerCapabilities()

	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    intPtr(int(protocol.TextDocumentSyncKindFull)),
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
	return nil
}

func (ls *LSPServer) shutdown(ctx *glsp.Context) error {
	return nil
}

func (ls *LSPServer) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (ls *LSPServer) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	uri := params.TextDocument.URI
	ls.documents[uri] = NewDocument([]byte(params.TextDocument.Text), uri)
	ls.publishDiagnostics(ctx, uri)
	return nil
}

func (ls *LSPServer) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	uri := params.TextDocument.URI
	if len(params.ContentChanges) > 0 {
		change := params.ContentChanges[len(params.ContentChanges)-1]
		if textChange, ok := change.(protocol.TextDocumentContentChangeEventWhole); ok {
			ls.documents[uri] = NewDocument([]byte(textChange.Text), uri)
			ls.publishDiagnostics(ctx, uri)
		}
	}
	return nil
}

func (ls *LSPServer) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	delete(ls.documents, params.TextDocument.URI)
	return nil
}

func (ls *LSPServer) publishDiagnostics(ctx *glsp.Context, uri string) {
	doc, ok := ls.documents[uri]
	if !ok {
		return
	}

	diagnostics := []protocol.Diagnostic{}

	for _, lexErr := range doc.UnknownTokens() {
		diagnostics = append(diagnostics, diagnosticAt(lexErr.Pos, len(lexErr.Text), lexErr.Error(), protocol.DiagnosticSeverityWarning))
	}

	if _, err := doc.Parse(); err != nil {
		diagnostics = append(diagnostics, parseDiagnostic(err))
	}

	log.Debugf("publishing %d diagnostics for %s", len(diagnostics), uri)

	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
}

func parseDiagnostic(err error) protocol.Diagnostic {
	var syntaxErr *parser.SyntaxError
	if errors.As(err, &syntaxErr) {
		width := len(syntaxErr.Found.Text)
		if width == 0 {
			width = 1
		}
		return diagnosticAt(syntaxErr.Pos, width, err.Error(), protocol.DiagnosticSeverityError)
	}
	var groupErr *parser.UnterminatedGroupError
	if errors.As(err, &groupErr) {
		return diagnosticAt(groupErr.Open, 1, err.Error(), protocol.DiagnosticSeverityError)
	}
	return diagnosticAt(parser.Position{Line: 1, Column: 1}, 1, err.Error(), protocol.DiagnosticSeverityError)
}

func diagnosticAt(pos parser.Position, width int, message string, severity protocol.DiagnosticSeverity) protocol.Diagnostic {
	line := uint32(pos.Line - 1)
	col := uint32(pos.Column - 1)
	source := lsName
	return protocol.Diagnostic{
		Range: protocol.Range{
			Start: protocol.Position{Line: line, Character: col},
			End:   protocol.Position{Line: line, Character: col + uint32(width)},
		},
		Severity: &severity,
		Source:   &source,
		Message:  message,
	}
}

func boolPtr(b bool) *bool {
	return &b
}

func intPtr(i int) *protocol.TextDocumentSyncKind {
	kind := protocol.TextDocumentSyncKind(i)
	return &kind
}
