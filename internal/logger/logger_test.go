package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFromContext(t *testing.T) {
	lg := New()
	ctx := context.WithValue(context.Background(), ContextKey, lg) //nolint:staticcheck

	require.Same(t, lg, FromContext(ctx))

	// missing logger falls back to a fresh one instead of returning nil
	require.NotNil(t, FromContext(context.Background()))
}
