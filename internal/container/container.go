// Package container wires the application's dependency graph.
package container

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"wordflow/internal/batch"
	"wordflow/internal/config"
	"wordflow/internal/imageproc"
	"wordflow/internal/language"
	"wordflow/internal/logger"
	"wordflow/internal/ocr"
	"wordflow/internal/service"
	"wordflow/internal/spelling"
	"wordflow/internal/storage"
	"wordflow/internal/textanalysis"
	"wordflow/internal/transport"
)

// Container holds all application dependencies
type Container struct {
	config       *config.Config
	analyzer     *textanalysis.Analyzer
	textService  service.TextAnalysisService
	imageService service.ImageAnalysisService
	handler      http.Handler
}

// NewContainer builds the dependency graph from the loaded configuration.
func NewContainer(cfg *config.Config) (*Container, error) {
	analyzer := textanalysis.NewAnalyzer()
	textService := service.NewTextAnalysisService(analyzer)

	engines := ocr.NewRegistry()
	if tesseract := ocr.NewTesseractEngine(cfg.TesseractLang); tesseract != nil {
		engines.Register(tesseract)
	} else {
		logger.Warn("tesseract binary not found, OCR endpoints will report no available engine")
	}

	fetcher := storage.NewHTTPImageFetcher(cfg.MaxImageSize)

	var azureFetcher storage.ImageFetcher
	if cfg.AzureConfigured() {
		af, err := storage.NewAzureImageFetcher(cfg.AzureAccountName, cfg.AzureAccountKey, cfg.MaxImageSize)
		if err != nil {
			return nil, err
		}
		azureFetcher = af
		logger.WithFields(logrus.Fields{
			"account": cfg.AzureAccountName,
		}).Info("Azure blob image fetcher enabled")
	}

	imageService := service.NewImageAnalysisService(service.ImageServiceOptions{
		Engines:      engines,
		Detector:     language.NewDetector(),
		SpellCache:   spelling.NewCache(cfg.DictDir),
		Preprocessor: imageproc.NewPreprocessor(),
		Fetcher:      fetcher,
		AzureFetcher: azureFetcher,
		Analyzer:     analyzer,
		Sessions:     batch.NewSessionStore(cfg.SessionTTL),
		MaxImageSize: cfg.MaxImageSize,
		OCRTimeout:   cfg.OCRTimeout,
		FetchTimeout: cfg.ImageFetchTimeout,
		BatchWorkers: cfg.BatchWorkers,
	})

	handler := transport.NewHandler(textService, imageService, cfg)

	return &Container{
		config:       cfg,
		analyzer:     analyzer,
		textService:  textService,
		imageService: imageService,
		handler:      handler,
	}, nil
}

// Handler returns the HTTP handler
func (c *Container) Handler() http.Handler {
	return c.handler
}

// Config returns the configuration
func (c *Container) Config() *config.Config {
	return c.config
}
