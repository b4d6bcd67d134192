package di

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ssargent/mojilens/pkg/analyzer"
	"github.com/ssargent/mojilens/pkg/api"
	"github.com/ssargent/mojilens/pkg/tutor"
)

type fakeStarter struct{ called bool }

func (f *fakeStarter) StartServer(context.Context, api.Dependencies, api.ServerConfig) error {
	f.called = true
	return nil
}

type fakeServerFactory struct{ starter *fakeStarter }

func (f *fakeServerFactory) CreateServerStarter() api.ServerStarter { return f.starter }

func TestContainerDefaults(t *testing.T) {
	c := NewContainer()

	t.Run("analyzer with legacy", func(t *testing.T) {
		a := c.NewAnalyzer(true)
		assert.True(t, a.LegacyAvailable())
	})

	t.Run("analyzer without legacy", func(t *testing.T) {
		a := c.NewAnalyzer(false)
		assert.False(t, a.LegacyAvailable())
	})

	t.Run("tutor without key is disabled", func(t *testing.T) {
		asker := c.NewTutor(tutor.Config{})
		assert.False(t, asker.Enabled())
	})

	t.Run("snippet store opens", func(t *testing.T) {
		store, err := c.OpenSnippetStore(filepath.Join(t.TempDir(), "snippets"))
		require.NoError(t, err)
		defer store.Close()

		n, err := store.Seed()
		require.NoError(t, err)
		assert.Greater(t, n, 0)
	})

	assert.NotNil(t, c.GetServerFactory())
}

func TestContainerOverrides(t *testing.T) {
	c := NewContainer()

	starter := &fakeStarter{}
	c.SetServerFactory(&fakeServerFactory{starter: starter})
	err := c.GetServerFactory().CreateServerStarter().StartServer(context.Background(), api.Dependencies{}, api.ServerConfig{})
	require.NoError(t, err)
	assert.True(t, starter.called)

	var gotCfg tutor.Config
	c.SetTutorFactory(func(cfg tutor.Config) tutor.Asker {
		gotCfg = cfg
		return tutor.NewClient(tutor.Config{}, nil)
	})
	c.NewTutor(tutor.Config{Model: "tiny"})
	assert.Equal(t, "tiny", gotCfg.Model)

	legacyArg := true
	c.SetAnalyzerFactory(func(legacyEnabled bool) *analyzer.Analyzer {
		legacyArg = legacyEnabled
		return defaultAnalyzer(legacyEnabled)
	})
	c.NewAnalyzer(false)
	assert.False(t, legacyArg)

	c.SetSnippetStoreOpener(func(string) (SnippetStore, error) {
		return nil, errors.New("disk full")
	})
	_, err = c.OpenSnippetStore("ignored")
	assert.EqualError(t, err, "disk full")
}
