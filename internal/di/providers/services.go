package providers

import (
	"github.com/samber/do/v2"

	"github.com/pageturnapp/pageturn-server/internal/config"
	"github.com/pageturnapp/pageturn-server/internal/logger"
	"github.com/pageturnapp/pageturn-server/internal/service"
)

// ProvideSubjectResolver provides the subject frequency resolver.
func ProvideSubjectResolver(i do.Injector) (*service.SubjectResolver, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	isbndbHandle := do.MustInvoke[*ISBNdbClientHandle](i)

	return service.NewSubjectResolver(isbndbHandle.Client, cfg.ISBNdb.LookupConcurrency, log.Logger), nil
}

// ProvideBookService provides the book library service.
func ProvideBookService(i do.Injector) (*service.BookService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewBookService(storeHandle.Store, log.Logger), nil
}

// ProvideLogService provides the reading log service.
func ProvideLogService(i do.Injector) (*service.LogService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewLogService(storeHandle.Store, log.Logger), nil
}

// ProvideRewindService provides the rewind summary service.
func ProvideRewindService(i do.Injector) (*service.RewindService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	resolver := do.MustInvoke[*service.SubjectResolver](i)
	classifierHandle := do.MustInvoke[*ClassifierHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	// Pass a typed nil through as an absent classifier, not a non-nil
	// interface wrapping nil.
	var classifier service.PersonalityClassifier
	if classifierHandle.Classifier != nil {
		classifier = classifierHandle.Classifier
	}

	return service.NewRewindService(storeHandle.Store, resolver, classifier, log.Logger), nil
}

// ProvideDiscoveryService provides the catalog discovery service.
func ProvideDiscoveryService(i do.Injector) (*service.DiscoveryService, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	olHandle := do.MustInvoke[*OpenLibraryClientHandle](i)

	return service.NewDiscoveryService(olHandle.Client, cfg.Discovery.ResultLimit, log.Logger), nil
}
