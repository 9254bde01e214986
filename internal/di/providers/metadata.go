package providers

import (
	"github.com/samber/do/v2"

	"github.com/pageturnapp/pageturn-server/internal/config"
	"github.com/pageturnapp/pageturn-server/internal/logger"
	"github.com/pageturnapp/pageturn-server/internal/metadata/isbndb"
	"github.com/pageturnapp/pageturn-server/internal/metadata/openlibrary"
)

// ISBNdbClientHandle wraps the ISBNdb client with shutdown capability.
type ISBNdbClientHandle struct {
	*isbndb.Client
}

// Shutdown implements do.Shutdownable.
func (h *ISBNdbClientHandle) Shutdown() error {
	h.Close()
	return nil
}

// ProvideISBNdbClient provides the ISBNdb metadata client. The client
// is always constructed; without an API key it reports itself disabled
// and the subject resolver skips lookups.
func ProvideISBNdbClient(i do.Injector) (*ISBNdbClientHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	client := isbndb.New(cfg.ISBNdb.APIKey, log.Logger)
	if !client.Enabled() {
		log.Warn("ISBNdb API key not configured, subject lookups disabled")
	}

	return &ISBNdbClientHandle{Client: client}, nil
}

// OpenLibraryClientHandle wraps the Open Library client with shutdown capability.
type OpenLibraryClientHandle struct {
	*openlibrary.Client
}

// Shutdown implements do.Shutdownable.
func (h *OpenLibraryClientHandle) Shutdown() error {
	h.Close()
	return nil
}

// ProvideOpenLibraryClient provides the Open Library discovery client.
func ProvideOpenLibraryClient(i do.Injector) (*OpenLibraryClientHandle, error) {
	log := do.MustInvoke[*logger.Logger](i)
	return &OpenLibraryClientHandle{Client: openlibrary.New(log.Logger)}, nil
}
