package models

// WordValidation is the per-word outcome of OCR plus dictionary validation.
// IsValid is nil when validation was disabled or no dictionary was available
// for the detected language.
type WordValidation struct {
	Text        string   `json:"text"`
	Confidence  float64  `json:"confidence"`
	IsValid     *bool    `json:"is_valid"`
	Suggestions []string `json:"suggestions"`
}

// OCRSummary aggregates the validation entries of one image.
type OCRSummary struct {
	TotalWords         int     `json:"total_words"`
	ValidWords         int     `json:"valid_words"`
	InvalidWords       int     `json:"invalid_words"`
	AccuracyPercentage float64 `json:"accuracy_percentage"`
}

// ImageAnalysisResult is the full outcome of a single image request.
type ImageAnalysisResult struct {
	Text              string           `json:"text"`
	Language          string           `json:"language"`
	Confidence        float64          `json:"confidence"`
	Engine            string           `json:"engine"`
	ProcessingTimeSec float64          `json:"processing_time"`
	Words             []WordValidation `json:"words"`
	Summary           OCRSummary       `json:"summary"`
	// MatchScore is 1-WER against the caller-supplied expected text,
	// present only when expected text was given.
	MatchScore *float64        `json:"match_score,omitempty"`
	Analysis   *AnalysisResult `json:"analysis,omitempty"`
}

// BatchProgress carries the live counters of a batch session.
// Processed == Successful + Failed at every observable point.
type BatchProgress struct {
	Total      int `json:"total"`
	Processed  int `json:"processed"`
	Successful int `json:"successful"`
	Failed     int `json:"failed"`
}

// BatchItemResult is one image's outcome within a batch session.
type BatchItemResult struct {
	ImageName string               `json:"image_name"`
	Success   bool                 `json:"success"`
	Error     string               `json:"error,omitempty"`
	Result    *ImageAnalysisResult `json:"result,omitempty"`
}

// BatchSessionView is the serialized form of a batch session.
type BatchSessionView struct {
	SessionID string            `json:"session_id"`
	Status    string            `json:"status"`
	Progress  BatchProgress     `json:"progress"`
	Results   []BatchItemResult `json:"results,omitempty"`
}
