// Package di provides dependency injection container
package di

import (
	"net/http"

	"github.com/ssargent/mojilens/pkg/analyzer" //nolint:depguard
	"github.com/ssargent/mojilens/pkg/api"      //nolint:depguard
	"github.com/ssargent/mojilens/pkg/charset"  //nolint:depguard
	"github.com/ssargent/mojilens/pkg/storage"  //nolint:depguard
	"github.com/ssargent/mojilens/pkg/tutor"    //nolint:depguard
)

// SnippetStore is a snippet store the process owns and must close
type SnippetStore interface {
	api.SnippetStore
	Seed() (int, error)
	Close() error
}

// AnalyzerFactory builds the analysis engine; legacyEnabled false leaves the Shift_JIS codec out
type AnalyzerFactory func(legacyEnabled bool) *analyzer.Analyzer

// TutorFactory builds the tutoring client
type TutorFactory func(cfg tutor.Config) tutor.Asker

// SnippetStoreOpener opens the snippet store at path
type SnippetStoreOpener func(path string) (SnippetStore, error)

// Container holds all the dependencies for the application
type Container struct {
	analyzerFactory AnalyzerFactory
	tutorFactory    TutorFactory
	snippetOpener   SnippetStoreOpener
	serverFactory   api.ServerFactory
}

// NewContainer creates a new dependency injection container
func NewContainer() *Container {
	return &Container{
		analyzerFactory: defaultAnalyzer,
		tutorFactory:    defaultTutor,
		snippetOpener:   defaultSnippetStore,
		serverFactory:   api.NewServerFactory(),
	}
}

func defaultAnalyzer(legacyEnabled bool) *analyzer.Analyzer {
	if !legacyEnabled {
		return analyzer.New(analyzer.WithLegacy(charset.MissingLegacy()))
	}
	return analyzer.New()
}

func defaultTutor(cfg tutor.Config) tutor.Asker {
	return tutor.NewClient(cfg, &http.Client{})
}

func defaultSnippetStore(path string) (SnippetStore, error) {
	store, err := storage.NewSnippetStore(path)
	if err != nil {
		return nil, err
	}
	return store, nil
}

// NewAnalyzer builds an analysis engine
func (c *Container) NewAnalyzer(legacyEnabled bool) *analyzer.Analyzer {
	return c.analyzerFactory(legacyEnabled)
}

// NewTutor builds a tutoring client
func (c *Container) NewTutor(cfg tutor.Config) tutor.Asker {
	return c.tutorFactory(cfg)
}

// OpenSnippetStore opens the snippet store at path
func (c *Container) OpenSnippetStore(path string) (SnippetStore, error) {
	return c.snippetOpener(path)
}

// GetServerFactory returns the server factory
func (c *Container) GetServerFactory() api.ServerFactory {
	return c.serverFactory
}

// SetAnalyzerFactory allows overriding the analyzer factory (for testing)
func (c *Container) SetAnalyzerFactory(factory AnalyzerFactory) {
	c.analyzerFactory = factory
}

// SetTutorFactory allows overriding the tutor factory (for testing)
func (c *Container) SetTutorFactory(factory TutorFactory) {
	c.tutorFactory = factory
}

// SetSnippetStoreOpener allows overriding how the snippet store is opened (for testing)
func (c *Container) SetSnippetStoreOpener(opener SnippetStoreOpener) {
	c.snippetOpener = opener
}

// SetServerFactory allows overriding the server factory (for testing)
func (c *Container) SetServerFactory(factory api.ServerFactory) {
	c.serverFactory = factory
}
