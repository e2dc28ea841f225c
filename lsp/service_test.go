package lsp

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/bnlang/bnls/completion"
	"github.com/bnlang/bnls/document"
	"github.com/bnlang/bnls/errors"
)

func setupService(t *testing.T, extensions ...string) *Service {
	t.Helper()
	svc, err := NewService(Options{
		Completion: completion.DefaultOptions(),
		Extensions: extensions,
	}, zap.NewNop().Sugar())
	require.NoError(t, err, "Failed to create language service")
	return svc
}

func writeExtension(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func labelsOf(items []completion.Candidate, kind completion.Kind) []string {
	var out []string
	for _, it := range items {
		if it.Kind == kind {
			out = append(out, it.Label)
		}
	}
	return out
}

func TestComplete(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	doc := document.New("file:///demo.bnl", "ধরি s = \"hello\".", 1)
	items, err := svc.Complete(ctx, CompletionRequest{Document: doc, Position: document.Position{Character: 16}})
	require.NoError(t, err)

	methods := labelsOf(items, completion.KindMethod)
	assert.Contains(t, methods, "toUpperCase")
	assert.NotContains(t, methods, "push")
}

func TestCompleteErrors(t *testing.T) {
	svc := setupService(t)

	_, err := svc.Complete(context.Background(), CompletionRequest{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidRequest))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = svc.Complete(ctx, CompletionRequest{Document: document.FromText("")})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestHover(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()
	doc := document.FromText("যদি (x) {}")

	h, err := svc.Hover(ctx, doc, document.Position{Character: 1})
	require.NoError(t, err)
	require.NotNil(t, h)
	assert.Equal(t, []string{"if", "যদি", "jodi"}, h.Aliases)

	h, err = svc.Hover(ctx, doc, document.Position{Character: 5})
	require.NoError(t, err)
	assert.Nil(t, h)
}

func TestFormat(t *testing.T) {
	svc := setupService(t)
	edits, err := svc.Format(context.Background(), document.FromText("a\r\nb\r\n"))
	require.NoError(t, err)
	require.Len(t, edits, 1)
	assert.Equal(t, "a\r\nb\r\n", edits[0].NewText)

	_, err = svc.Format(context.Background(), nil)
	assert.Error(t, err)
}

func TestServiceWithExtension(t *testing.T) {
	dir := t.TempDir()
	path := writeExtension(t, dir, "dialect.toml", `
name = "dialect"
[keywords]
if = ["jadi"]
[receivers.Math]
aliases = ["ganit"]
`)
	svc := setupService(t, path)
	assert.Equal(t, []string{"dialect"}, svc.Engine().Extensions)

	items, err := svc.Complete(context.Background(), CompletionRequest{
		Document: document.FromText("ganit."),
		Position: document.Position{Character: 6},
	})
	require.NoError(t, err)
	assert.Contains(t, labelsOf(items, completion.KindMethod), "abs")
	assert.Contains(t, labelsOf(items, completion.KindKeyword), "jadi")
}

func TestNewServiceRejectsBrokenExtension(t *testing.T) {
	path := writeExtension(t, t.TempDir(), "bad.toml", "name = \"bad\"\n[keywords]\nelse = [\"jodi\"]\n")
	_, err := NewService(Options{Completion: completion.DefaultOptions(), Extensions: []string{path}}, zap.NewNop().Sugar())
	require.Error(t, err)
	assert.True(t, errors.IsCollisionError(err))
}

func TestReloadSwapsEngine(t *testing.T) {
	dir := t.TempDir()
	path := writeExtension(t, dir, "dialect.toml", "name = \"dialect\"\n[keywords]\nif = [\"jadi\"]\n")
	svc := setupService(t, path)
	before := svc.Engine()
	assert.True(t, before.Registry.IsKeyword("jadi"))

	writeExtension(t, dir, "dialect.toml", "name = \"dialect\"\n[keywords]\nif = [\"jodii\"]\n")
	require.NoError(t, svc.Reload())

	after := svc.Engine()
	assert.NotSame(t, before, after)
	assert.False(t, after.Registry.IsKeyword("jadi"))
	assert.True(t, after.Registry.IsKeyword("jodii"))
}

func TestReloadFailureKeepsEngine(t *testing.T) {
	dir := t.TempDir()
	path := writeExtension(t, dir, "dialect.toml", "name = \"dialect\"\n[keywords]\nif = [\"jadi\"]\n")
	svc := setupService(t, path)
	before := svc.Engine()

	writeExtension(t, dir, "dialect.toml", "name = \"dialect\"\nrequires = \">= 9.0.0\"\n")
	err := svc.Reload()
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrIncompatible))
	assert.Same(t, before, svc.Engine())
}

func TestReloadWithChangesExtensionList(t *testing.T) {
	svc := setupService(t)
	path := writeExtension(t, t.TempDir(), "x.toml", "name = \"x\"\n[keywords]\nwhile = [\"jotokkhonJabot\"]\n")

	require.NoError(t, svc.ReloadWith([]string{path}))
	assert.Equal(t, []string{path}, svc.Extensions())
	assert.True(t, svc.Registry().IsKeyword("jotokkhonJabot"))

	require.NoError(t, svc.ReloadWith(nil))
	assert.Empty(t, svc.Extensions())
	assert.False(t, svc.Registry().IsKeyword("jotokkhonJabot"))
}

func TestConcurrentRequestsDuringReload(t *testing.T) {
	svc := setupService(t)
	doc := document.FromText("Math.")
	pos := document.Position{Character: 5}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				items, err := svc.Complete(context.Background(), CompletionRequest{Document: doc, Position: pos})
				if assert.NoError(t, err) {
					assert.NotEmpty(t, items)
				}
			}
		}()
	}
	for i := 0; i < 5; i++ {
		require.NoError(t, svc.Reload())
	}
	wg.Wait()
}
