package chain

import (
	"context"
	"errors"
	"fmt"

	filestore "github.com/bnema/azdo-agent-scaler/internal/adapters/secrets/file"
	passstore "github.com/bnema/azdo-agent-scaler/internal/adapters/secrets/pass"
	"github.com/bnema/azdo-agent-scaler/internal/ports"
)

// Source asks each source in turn and returns the first value found.
type Source struct {
	sources []ports.CredentialSource
}

var _ ports.CredentialSource = (*Source)(nil)

var errNoSources = errors.New("credential chain has no sources")

func NewSource(sources ...ports.CredentialSource) (*Source, error) {
	if len(sources) == 0 {
		return nil, errNoSources
	}
	for i, source := range sources {
		if source == nil {
			return nil, fmt.Errorf("credential source %d is nil", i)
		}
	}

	return &Source{sources: sources}, nil
}

func NewPassFirstWithFileFallback(fileRoot string) (*Source, error) {
	return NewSource(passstore.NewSource(), filestore.NewSource(fileRoot))
}

func (s *Source) Get(ctx context.Context, key string) (string, error) {
	var errs []error
	for i, source := range s.sources {
		value, err := source.Get(ctx, key)
		if err == nil {
			return value, nil
		}
		if shouldStop(err) {
			return "", err
		}
		errs = append(errs, fmt.Errorf("source %d: %w", i+1, err))
	}

	return "", fmt.Errorf("credential %q: %w", key, errors.Join(errs...))
}

func shouldStop(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
