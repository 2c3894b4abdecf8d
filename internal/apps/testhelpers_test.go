package apps

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// syncDispatcher runs handed-over work immediately on the calling goroutine.
var syncDispatcher = DispatcherFunc(func(fn func()) { fn() })

func newTestService(t *testing.T, dir string, opts Options) *Service {
	t.Helper()
	opts.DataDir = dir
	svc, err := NewService(opts)
	require.NoError(t, err)
	t.Cleanup(func() { svc.Close() })
	return svc
}

func touch(t *testing.T, dir, name string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte("MZ"), 0644))
	return p
}

func flushService(t *testing.T, svc *Service) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, svc.Flush(ctx))
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

func names(entries []Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Name)
	}
	return out
}
