package providers

import (
	"github.com/samber/do/v2"

	"github.com/pageturnapp/pageturn-server/internal/classifier"
	"github.com/pageturnapp/pageturn-server/internal/config"
	"github.com/pageturnapp/pageturn-server/internal/logger"
)

// ClassifierHandle holds the personality classifier. Classifier is nil
// when no oracle API key is configured.
type ClassifierHandle struct {
	Classifier *classifier.Classifier
}

// ProvideClassifier provides the personality classifier.
func ProvideClassifier(i do.Injector) (*ClassifierHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	if cfg.Classifier.APIKey == "" {
		log.Warn("Classifier API key not configured, personality classification disabled")
		return &ClassifierHandle{}, nil
	}

	oracle := classifier.NewOpenAIOracle(cfg.Classifier.APIKey, cfg.Classifier.Model, log.Logger)
	log.Info("Personality classifier ready", "model", cfg.Classifier.Model)

	return &ClassifierHandle{
		Classifier: classifier.New(oracle, log.Logger),
	}, nil
}
