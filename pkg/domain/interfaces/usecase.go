package interfaces

import (
	"context"

	"github.com/m-mizutani/kforge/pkg/domain/model"
)

// ConvertUseCase defines the interface for Postman-to-Karate conversion
type ConvertUseCase interface {
	// GenerateSuite produces a Karate test suite bundle for a collection.
	// Unparseable model replies fall back to a deterministic bundle; only
	// transport-level failures of the model call return an error.
	GenerateSuite(ctx context.Context, col *model.Collection) (*model.Bundle, error)
}
