package models

// WordEntry is one unique word and how many times it occurred.
type WordEntry struct {
	Text       string `json:"text"`
	UsageCount int    `json:"usage_count"`
}

// AnalysisResult holds the outcome of analyzing one text payload.
// TotalUniqueWords always equals len(UniqueWords); TotalWords counts every
// qualifying token before deduplication.
type AnalysisResult struct {
	Sentences        []string    `json:"sentences"`
	UniqueWords      []WordEntry `json:"unique_words"`
	TotalWords       int         `json:"total_words"`
	TotalUniqueWords int         `json:"total_unique_words"`
	TotalSentences   int         `json:"total_sentences"`
}

// TextStatistics are the derived metrics exposed alongside a full analysis.
type TextStatistics struct {
	TotalWords            int     `json:"total_words"`
	TotalUniqueWords      int     `json:"total_unique_words"`
	TotalSentences        int     `json:"total_sentences"`
	AverageWordLength     float64 `json:"average_word_length"`
	AverageSentenceLength float64 `json:"average_sentence_length"`
}

// EpubAnalysisResponse extends the common analysis shape with the raw
// word list and the book title taken from OPF metadata.
type EpubAnalysisResponse struct {
	Title            string      `json:"title"`
	WordList         []string    `json:"word_list"`
	Sentences        []string    `json:"sentences"`
	UniqueWords      []WordEntry `json:"unique_words"`
	TotalWords       int         `json:"total_words"`
	TotalUniqueWords int         `json:"total_unique_words"`
	TotalSentences   int         `json:"total_sentences"`
}
