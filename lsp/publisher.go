package lsp

import (
	"context"
	"sync"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/jbearak/rlsp/diag"
	"github.com/jbearak/rlsp/location"
)

// notifyFunc matches the signature of glsp.Context.Notify, captured once
// from the first request's *glsp.Context rather than retaining the whole
// context: Notify is bound to the long-lived connection and stays valid
// for the life of the server, exactly as the teacher's Notifier
// (lsp/workspace.go) documents.
type notifyFunc func(method string, params any)

// diagnosticsPublisher implements revalidate.Publisher: it converts a
// diag.Result into LSP PublishDiagnosticsParams and sends it over a
// captured notify function. Publish is a no-op until setNotify has been
// called (e.g. before the client's first request reaches the server),
// matching the teacher's "notify nil -> compute but don't publish"
// contract used in its own tests.
type diagnosticsPublisher struct {
	mu       sync.RWMutex
	notify   notifyFunc
	renderer *diag.Renderer
}

func newDiagnosticsPublisher() *diagnosticsPublisher {
	return &diagnosticsPublisher{renderer: diag.NewRenderer()}
}

func (p *diagnosticsPublisher) setNotify(n notifyFunc) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.notify = n
}

// Publish implements revalidate.Publisher.
func (p *diagnosticsPublisher) Publish(_ context.Context, file location.FileID, result diag.Result) {
	p.mu.RLock()
	notify := p.notify
	p.mu.RUnlock()
	if notify == nil {
		return
	}

	diagnostics := toProtocolDiagnostics(p.renderer, result)
	notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         fileIDToURI(file),
		Diagnostics: diagnostics,
	})
}

// toProtocolDiagnostics converts a diag.Result to the protocol.Diagnostic
// slice PublishDiagnosticsParams needs, reusing diag.Renderer's own
// LSP-shaped conversion (diag/lsp.go) rather than re-deriving severity
// and range mapping here.
func toProtocolDiagnostics(renderer *diag.Renderer, result diag.Result) []protocol.Diagnostic {
	lspDiags := renderer.LSPDiagnostics(result)
	out := make([]protocol.Diagnostic, 0, len(lspDiags))
	for _, d := range lspDiags {
		severity := protocol.DiagnosticSeverity(d.Severity)
		code := &protocol.IntegerOrString{Value: d.Code}
		source := d.Source
		out = append(out, protocol.Diagnostic{
			Range: protocol.Range{
				Start: protocol.Position{Line: protocol.UInteger(d.Range.Start.Line), Character: protocol.UInteger(d.Range.Start.Character)},
				End:   protocol.Position{Line: protocol.UInteger(d.Range.End.Line), Character: protocol.UInteger(d.Range.End.Character)},
			},
			Severity:           &severity,
			Code:               code,
			Source:             &source,
			Message:            d.Message,
			RelatedInformation: toProtocolRelatedInfo(d.RelatedInformation),
		})
	}
	return out
}

func toProtocolRelatedInfo(related []diag.LSPRelatedInfo) []protocol.DiagnosticRelatedInformation {
	if len(related) == 0 {
		return nil
	}
	out := make([]protocol.DiagnosticRelatedInformation, 0, len(related))
	for _, r := range related {
		out = append(out, protocol.DiagnosticRelatedInformation{
			Location: protocol.Location{
				URI: r.Location.URI,
				Range: protocol.Range{
					Start: protocol.Position{Line: protocol.UInteger(r.Location.Range.Start.Line), Character: protocol.UInteger(r.Location.Range.Start.Character)},
					End:   protocol.Position{Line: protocol.UInteger(r.Location.Range.End.Line), Character: protocol.UInteger(r.Location.Range.End.Character)},
				},
			},
			Message: r.Message,
		})
	}
	return out
}
