package transport

import (
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"wordflow/internal/apperrors"
	"wordflow/internal/config"
	"wordflow/internal/logger"
	"wordflow/internal/service"
)

// Version is reported by the health endpoint.
const Version = "1.0.0"

type TextAnalysisRequest struct {
	Text          string `json:"text" binding:"required"`
	MinWordLength int    `json:"min_word_length,omitempty"`
}

type ImageURLRequest struct {
	URL           string `json:"url" binding:"required,url"`
	Engine        string `json:"engine,omitempty"`
	Preprocess    bool   `json:"preprocess,omitempty"`
	ValidateWords bool   `json:"validate_words,omitempty"`
	ExpectedText  string `json:"expected_text,omitempty"`
}

type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

func NewHandler(texts service.TextAnalysisService, images service.ImageAnalysisService, cfg *config.Config) http.Handler {
	r := gin.Default()

	r.Use(requestSizeLimiter(cfg.MaxRequestBodySize))

	v1 := r.Group("/api/v1")
	v1.GET("/health", healthCheck(images))
	v1.POST("/analyze/text", analyzeText(texts))
	v1.POST("/analyze/text/statistics", textStatistics(texts))
	v1.POST("/analyze/subtitle", analyzeSubtitle(texts))
	v1.POST("/analyze/epub", analyzeEpub(texts))
	v1.POST("/analyze/image", analyzeImage(images, cfg))
	v1.POST("/analyze/image/batch", analyzeImageBatch(images))
	v1.GET("/analyze/image/batch/:session_id", batchSession(images))

	return r
}

func healthCheck(images service.ImageAnalysisService) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":       "available",
			"version":      Version,
			"time":         time.Now().UTC().Format(time.RFC3339),
			"capabilities": images.Capabilities(),
		})
	}
}

func analyzeText(texts service.TextAnalysisService) gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()

		var req TextAnalysisRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, apperrors.NewValidationError("invalid request format", err))
			return
		}

		result, err := texts.AnalyzeText(req.Text, req.MinWordLength)
		if err != nil {
			respondError(c, err)
			return
		}

		logger.WithFields(logrus.Fields{
			"total_words":        result.TotalWords,
			"total_sentences":    result.TotalSentences,
			"processing_time_ms": time.Since(startTime).Milliseconds(),
		}).Info("Text analysis completed")

		c.JSON(http.StatusOK, result)
	}
}

func textStatistics(texts service.TextAnalysisService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req TextAnalysisRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, apperrors.NewValidationError("invalid request format", err))
			return
		}

		stats, err := texts.TextStatistics(req.Text, req.MinWordLength)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, stats)
	}
}

func analyzeSubtitle(texts service.TextAnalysisService) gin.HandlerFunc {
	return func(c *gin.Context) {
		content, filename, err := readUpload(c, "file")
		if err != nil {
			respondError(c, err)
			return
		}
		minLength := formInt(c, "min_word_length")

		result, info, err := texts.AnalyzeSubtitle(content, filename, minLength)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"file":               info,
			"sentences":          result.Sentences,
			"unique_words":       result.UniqueWords,
			"total_words":        result.TotalWords,
			"total_unique_words": result.TotalUniqueWords,
			"total_sentences":    result.TotalSentences,
		})
	}
}

func analyzeEpub(texts service.TextAnalysisService) gin.HandlerFunc {
	return func(c *gin.Context) {
		content, filename, err := readUpload(c, "file")
		if err != nil {
			respondError(c, err)
			return
		}

		result, err := texts.AnalyzeEpub(content, filename)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

func analyzeImage(images service.ImageAnalysisService, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), cfg.RequestTimeout)
		defer cancel()

		logger.WithFields(logrus.Fields{
			"method": c.Request.Method,
			"path":   c.Request.URL.Path,
			"ip":     c.ClientIP(),
		}).Info("Processing image analysis request")

		req, err := buildImageRequest(c)
		if err != nil {
			respondError(c, err)
			return
		}

		result, err := images.Analyze(ctx, req)
		if err != nil {
			if errors.Is(err, context.DeadlineExceeded) {
				err = apperrors.NewTimeoutError("image analysis timeout", err)
			}
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

func analyzeImageBatch(images service.ImageAnalysisService) gin.HandlerFunc {
	return func(c *gin.Context) {
		form, err := c.MultipartForm()
		if err != nil {
			respondError(c, apperrors.NewValidationError("invalid multipart form", err))
			return
		}

		files := form.File["images"]
		if len(files) == 0 {
			respondError(c, apperrors.NewValidationError("no images provided", nil))
			return
		}

		reqs := make([]service.ImageRequest, 0, len(files))
		for _, header := range files {
			data, err := readFileHeader(header)
			if err != nil {
				respondError(c, err)
				return
			}
			reqs = append(reqs, service.ImageRequest{
				Data:          data,
				Filename:      header.Filename,
				ContentType:   header.Header.Get("Content-Type"),
				Engine:        c.PostForm("engine"),
				Preprocess:    formBool(c, "preprocess"),
				ValidateWords: formBool(c, "validate_words"),
			})
		}

		session, err := images.AnalyzeBatch(reqs)
		if err != nil {
			respondError(c, err)
			return
		}

		logger.WithFields(logrus.Fields{
			"session_id": session.ID,
			"images":     len(reqs),
		}).Info("Batch analysis accepted")

		c.JSON(http.StatusAccepted, session.View())
	}
}

func batchSession(images service.ImageAnalysisService) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, err := images.Session(c.Param("session_id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, session.View())
	}
}

// buildImageRequest accepts either a JSON body naming an image URL or a
// multipart upload with option fields.
func buildImageRequest(c *gin.Context) (service.ImageRequest, error) {
	if strings.Contains(c.ContentType(), "application/json") {
		var req ImageURLRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			return service.ImageRequest{}, apperrors.NewValidationError("invalid request format", err)
		}
		if err := validateImageURL(req.URL); err != nil {
			return service.ImageRequest{}, err
		}
		return service.ImageRequest{
			URL:           req.URL,
			Engine:        req.Engine,
			Preprocess:    req.Preprocess,
			ValidateWords: req.ValidateWords,
			ExpectedText:  req.ExpectedText,
		}, nil
	}

	data, filename, err := readUpload(c, "image")
	if err != nil {
		return service.ImageRequest{}, err
	}
	header, _ := c.FormFile("image")
	return service.ImageRequest{
		Data:          data,
		Filename:      filename,
		ContentType:   header.Header.Get("Content-Type"),
		Engine:        c.PostForm("engine"),
		Preprocess:    formBool(c, "preprocess"),
		ValidateWords: formBool(c, "validate_words"),
		ExpectedText:  c.PostForm("expected_text"),
	}, nil
}

func validateImageURL(imageURL string) error {
	parsed, err := url.Parse(imageURL)
	if err != nil {
		return apperrors.NewValidationError("invalid URL format", err)
	}
	if parsed.Host == "" {
		return apperrors.NewValidationError("URL must have a valid host", nil)
	}
	return nil
}

func readUpload(c *gin.Context, field string) ([]byte, string, error) {
	header, err := c.FormFile(field)
	if err != nil {
		return nil, "", apperrors.NewValidationError("missing file upload "+strconv.Quote(field), err)
	}
	data, err := readFileHeader(header)
	if err != nil {
		return nil, "", err
	}
	return data, header.Filename, nil
}

func readFileHeader(header *multipart.FileHeader) ([]byte, error) {
	file, err := header.Open()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to open uploaded file", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to read uploaded file", err)
	}
	return data, nil
}

func formBool(c *gin.Context, field string) bool {
	return c.PostForm(field) == "true"
}

func formInt(c *gin.Context, field string) int {
	value, err := strconv.Atoi(c.PostForm(field))
	if err != nil {
		return 0
	}
	return value
}

// Middleware and helper functions
func requestSizeLimiter(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

func respondError(c *gin.Context, err error) {
	code := apperrors.GetStatusCode(err)
	errType := string(apperrors.ErrorTypeInternal)
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		errType = string(appErr.Type)
	}

	logger.WithError(err).WithFields(logrus.Fields{
		"status_code": code,
		"path":        c.Request.URL.Path,
		"method":      c.Request.Method,
		"ip":          c.ClientIP(),
	}).Error("Request failed")

	c.AbortWithStatusJSON(code, ErrorResponse{
		Success: false,
		Error:   errType,
		Message: err.Error(),
	})
}
