package driven

import (
	"context"

	"github.com/custodia-labs/regscan/internal/core/domain"
)

// DocumentAssembler combines the fragments of a source document into a
// single PDF. A single fragment is returned unchanged; several fragments
// are concatenated in order. Failures are *domain.AssemblyError.
type DocumentAssembler interface {
	Assemble(ctx context.Context, doc domain.SourceDocument) ([]byte, error)
}
