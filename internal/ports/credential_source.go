package ports

import "context"

type CredentialSource interface {
	Get(ctx context.Context, key string) (string, error)
}
