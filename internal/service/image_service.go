package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"wordflow/internal/apperrors"
	"wordflow/internal/batch"
	"wordflow/internal/imageproc"
	"wordflow/internal/language"
	"wordflow/internal/logger"
	"wordflow/internal/ocr"
	"wordflow/internal/spelling"
	"wordflow/internal/storage"
	"wordflow/internal/textanalysis"
	"wordflow/pkg/models"
)

// AllowedImageTypes are the accepted upload content types.
var AllowedImageTypes = []string{
	"image/jpeg", "image/jpg", "image/png", "image/bmp", "image/tiff",
}

// ImageRequest describes one image to analyze. Either Data or URL is set.
type ImageRequest struct {
	Data        []byte
	Filename    string
	ContentType string
	URL         string

	Engine        string
	Preprocess    bool
	ValidateWords bool
	ExpectedText  string
}

// Capabilities is the health-endpoint view of the OCR stack.
type Capabilities struct {
	AvailableEngines           []string `json:"available_engines"`
	SpellCheckerLanguages      []string `json:"spell_checker_languages"`
	LanguageDetectionAvailable bool     `json:"language_detection_available"`
}

// ImageAnalysisService handles single and batch image operations.
type ImageAnalysisService interface {
	Analyze(ctx context.Context, req ImageRequest) (*models.ImageAnalysisResult, error)
	AnalyzeBatch(reqs []ImageRequest) (*batch.Session, error)
	Session(id string) (*batch.Session, error)
	Capabilities() Capabilities
}

type imageAnalysisService struct {
	engines      *ocr.Registry
	detector     language.Detector
	spellCache   *spelling.Cache
	preprocessor imageproc.Preprocessor
	fetcher      storage.ImageFetcher
	azureFetcher storage.ImageFetcher
	analyzer     *textanalysis.Analyzer
	sessions     *batch.SessionStore

	maxImageSize int64
	ocrTimeout   time.Duration
	fetchTimeout time.Duration
	batchWorkers int
}

// ImageServiceOptions carries the collaborators and limits for the image
// pipeline. AzureFetcher may be nil when blob storage is not configured.
type ImageServiceOptions struct {
	Engines      *ocr.Registry
	Detector     language.Detector
	SpellCache   *spelling.Cache
	Preprocessor imageproc.Preprocessor
	Fetcher      storage.ImageFetcher
	AzureFetcher storage.ImageFetcher
	Analyzer     *textanalysis.Analyzer
	Sessions     *batch.SessionStore

	MaxImageSize int64
	OCRTimeout   time.Duration
	FetchTimeout time.Duration
	BatchWorkers int
}

func NewImageAnalysisService(opts ImageServiceOptions) ImageAnalysisService {
	return &imageAnalysisService{
		engines:      opts.Engines,
		detector:     opts.Detector,
		spellCache:   opts.SpellCache,
		preprocessor: opts.Preprocessor,
		fetcher:      opts.Fetcher,
		azureFetcher: opts.AzureFetcher,
		analyzer:     opts.Analyzer,
		sessions:     opts.Sessions,
		maxImageSize: opts.MaxImageSize,
		ocrTimeout:   opts.OCRTimeout,
		fetchTimeout: opts.FetchTimeout,
		batchWorkers: opts.BatchWorkers,
	}
}

// Analyze runs the full pipeline for one image: validate, optionally fetch,
// optionally preprocess, recognize, detect language, validate words.
func (s *imageAnalysisService) Analyze(ctx context.Context, req ImageRequest) (*models.ImageAnalysisResult, error) {
	start := time.Now()

	data, err := s.resolvePayload(ctx, &req)
	if err != nil {
		return nil, err
	}

	if req.Preprocess {
		enhanced, err := s.preprocessor.Enhance(data)
		if err != nil {
			// Preprocessing failure is not fatal; recognition still
			// gets the original payload.
			logger.WithError(err).WithFields(logrus.Fields{
				"filename": req.Filename,
			}).Warn("Image preprocessing failed, using original image")
		} else {
			data = enhanced
		}
	}

	engine, err := s.engines.Select(req.Engine)
	if err != nil {
		return nil, err
	}

	ocrCtx, cancel := context.WithTimeout(ctx, s.ocrTimeout)
	defer cancel()
	recognition, err := engine.Recognize(ocrCtx, data, "")
	if err != nil {
		return nil, err
	}

	detected := s.detector.Detect(recognition.Text)

	result := &models.ImageAnalysisResult{
		Text:       recognition.Text,
		Language:   detected,
		Confidence: recognition.Confidence,
		Engine:     string(engine.Tag()),
		Words:      s.validateWords(recognition.Words, detected, req.ValidateWords),
	}
	result.Summary = summarize(result.Words)

	if req.ExpectedText != "" {
		score := ocr.MatchScore(req.ExpectedText, recognition.Text)
		result.MatchScore = &score
	}

	if strings.TrimSpace(recognition.Text) != "" {
		analysis, err := s.analyzer.Analyze(recognition.Text, textanalysis.DefaultMinWordLength)
		if err == nil {
			result.Analysis = analysis
		}
	}

	result.ProcessingTimeSec = time.Since(start).Seconds()

	logger.WithFields(logrus.Fields{
		"engine":             result.Engine,
		"language":           result.Language,
		"total_words":        result.Summary.TotalWords,
		"processing_time_ms": time.Since(start).Milliseconds(),
	}).Info("Image analysis completed")

	return result, nil
}

// AnalyzeBatch accepts the jobs, creates a session and processes the images
// on a bounded worker pool in the background. One image's failure never
// aborts its siblings.
func (s *imageAnalysisService) AnalyzeBatch(reqs []ImageRequest) (*batch.Session, error) {
	if len(reqs) == 0 {
		return nil, apperrors.NewValidationError("no images provided", nil)
	}
	for _, req := range reqs {
		if err := s.validateUpload(&req); err != nil {
			return nil, err
		}
	}

	session := batch.NewSession(len(reqs))
	s.sessions.Add(session)
	session.Begin()

	workers := s.batchWorkers
	if len(reqs) < workers {
		workers = len(reqs)
	}
	pool := batch.NewWorkerPool(workers)
	pool.Start()

	for _, req := range reqs {
		req := req
		pool.Submit(func() {
			result, err := s.Analyze(context.Background(), req)
			if err != nil {
				logger.WithError(err).WithFields(logrus.Fields{
					"session_id": session.ID,
					"image":      req.Filename,
				}).Error("Batch image failed")
				session.RecordFailure(models.BatchItemResult{
					ImageName: req.Filename,
					Error:     err.Error(),
				})
				return
			}
			session.RecordSuccess(models.BatchItemResult{
				ImageName: req.Filename,
				Success:   true,
				Result:    result,
			})
		})
	}

	go func() {
		pool.Wait()
		pool.Close()
		logger.WithFields(logrus.Fields{
			"session_id": session.ID,
		}).Info("Batch processing finished")
	}()

	return session, nil
}

// Session looks up a batch session by id.
func (s *imageAnalysisService) Session(id string) (*batch.Session, error) {
	session := s.sessions.Get(id)
	if session == nil {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("unknown batch session %q", id))
	}
	return session, nil
}

// Capabilities reports which collaborators are live in this process.
func (s *imageAnalysisService) Capabilities() Capabilities {
	return Capabilities{
		AvailableEngines:           s.engines.Available(),
		SpellCheckerLanguages:      s.spellCache.Languages(),
		LanguageDetectionAvailable: s.detector.Available(),
	}
}

// resolvePayload returns the image bytes, fetching them when the request
// names a URL instead of carrying an upload.
func (s *imageAnalysisService) resolvePayload(ctx context.Context, req *ImageRequest) ([]byte, error) {
	if req.URL != "" {
		fetcher := s.fetcher
		if s.azureFetcher != nil && strings.Contains(req.URL, ".blob.core.windows.net") {
			fetcher = s.azureFetcher
		}

		fetchCtx, cancel := context.WithTimeout(ctx, s.fetchTimeout)
		defer cancel()
		data, contentType, err := fetcher.FetchImage(fetchCtx, req.URL)
		if err != nil {
			return nil, apperrors.NewNetworkError("failed to fetch image", err)
		}
		req.Data = data
		if req.ContentType == "" {
			req.ContentType = contentType
		}
		if req.Filename == "" {
			req.Filename = req.URL
		}
	}

	if err := s.validateUpload(req); err != nil {
		return nil, err
	}
	return req.Data, nil
}

func (s *imageAnalysisService) validateUpload(req *ImageRequest) error {
	if len(req.Data) == 0 && req.URL == "" {
		return apperrors.NewValidationError("no image provided", nil)
	}
	if len(req.Data) == 0 {
		return nil // URL payload resolved later
	}
	if int64(len(req.Data)) > s.maxImageSize {
		return apperrors.NewValidationError(
			fmt.Sprintf("image exceeds the %d byte limit", s.maxImageSize), nil)
	}
	if req.ContentType != "" && !isAllowedImageType(req.ContentType) {
		return apperrors.NewUnsupportedFormatError(
			fmt.Sprintf("unsupported image type %q", req.ContentType), AllowedImageTypes)
	}
	return nil
}

// validateWords attaches dictionary validation to the recognized words. When
// validation is disabled or no dictionary exists for the language, IsValid
// stays nil and suggestions stay empty.
func (s *imageAnalysisService) validateWords(words []ocr.RecognizedWord, lang string, validate bool) []models.WordValidation {
	out := make([]models.WordValidation, 0, len(words))

	var checker *spelling.Checker
	if validate && lang != language.Unknown {
		var err error
		checker, err = s.spellCache.Get(lang)
		if err != nil {
			logger.WithError(err).WithFields(logrus.Fields{
				"language": lang,
			}).Debug("No spelling dictionary for detected language")
		}
	}

	for _, w := range words {
		entry := models.WordValidation{
			Text:        w.Text,
			Confidence:  w.Confidence,
			Suggestions: []string{},
		}
		if checker != nil {
			valid := checker.IsValid(w.Text)
			entry.IsValid = &valid
			if !valid {
				entry.Suggestions = checker.Suggest(w.Text)
			}
		}
		out = append(out, entry)
	}
	return out
}

func summarize(words []models.WordValidation) models.OCRSummary {
	summary := models.OCRSummary{TotalWords: len(words)}
	validated := 0
	for _, w := range words {
		if w.IsValid == nil {
			continue
		}
		validated++
		if *w.IsValid {
			summary.ValidWords++
		} else {
			summary.InvalidWords++
		}
	}
	if validated > 0 {
		summary.AccuracyPercentage = float64(summary.ValidWords) / float64(validated) * 100
	}
	return summary
}

func isAllowedImageType(contentType string) bool {
	for _, allowed := range AllowedImageTypes {
		if contentType == allowed {
			return true
		}
	}
	return false
}
