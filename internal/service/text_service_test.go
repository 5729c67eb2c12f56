package service

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wordflow/internal/apperrors"
	"wordflow/internal/textanalysis"
)

func newTextService() TextAnalysisService {
	return NewTextAnalysisService(textanalysis.NewAnalyzer())
}

func TestAnalyzeText(t *testing.T) {
	svc := newTextService()

	result, err := svc.AnalyzeText("This is a sample text for analysis.", 0)
	require.NoError(t, err)

	assert.Equal(t, 1, result.TotalSentences)
	assert.Equal(t, 6, result.TotalWords)
	assert.Equal(t, 6, result.TotalUniqueWords)
}

func TestAnalyzeText_TooShort(t *testing.T) {
	svc := newTextService()

	_, err := svc.AnalyzeText("short", 0)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
}

func TestAnalyzeText_Empty(t *testing.T) {
	svc := newTextService()

	_, err := svc.AnalyzeText("   ", 0)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeEmptyInput))
}

func TestTextStatistics(t *testing.T) {
	svc := newTextService()

	stats, err := svc.TextStatistics("One two three. Four five six.", 1)
	require.NoError(t, err)
	assert.Equal(t, 6, stats.TotalWords)
	assert.Equal(t, 2, stats.TotalSentences)
	assert.InDelta(t, 3.0, stats.AverageSentenceLength, 0.001)
}

func TestAnalyzeSubtitle(t *testing.T) {
	svc := newTextService()

	srt := "1\n00:00:01,000 --> 00:00:04,000\nHello world!\n\n2\n00:00:05,000 --> 00:00:08,000\nThis is a subtitle file.\n"
	result, info, err := svc.AnalyzeSubtitle([]byte(srt), "movie.srt", 0)
	require.NoError(t, err)

	assert.Equal(t, 2, result.TotalSentences)
	assert.Equal(t, "utf-8", info.Encoding)
	assert.Equal(t, ".srt", info.Extension)
}

func TestAnalyzeSubtitle_BadExtension(t *testing.T) {
	svc := newTextService()

	_, _, err := svc.AnalyzeSubtitle([]byte("content"), "movie.doc", 0)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeUnsupportedFormat))
}

func TestAnalyzeEpub(t *testing.T) {
	svc := newTextService()

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	add := func(name, content string) {
		f, err := w.Create(name)
		require.NoError(t, err)
		_, err = f.Write([]byte(content))
		require.NoError(t, err)
	}
	add("META-INF/container.xml", `<?xml version="1.0"?>
<container><rootfiles><rootfile full-path="content.opf" media-type="application/oebps-package+xml"/></rootfiles></container>`)
	add("content.opf", `<?xml version="1.0"?>
<package><metadata><title>A Tale</title></metadata>
<manifest><item id="c1" href="ch1.xhtml" media-type="application/xhtml+xml"/></manifest>
<spine><itemref idref="c1"/></spine></package>`)
	add("ch1.xhtml", "<html><body><p>The cat sat on a mat.</p></body></html>")
	require.NoError(t, w.Close())

	resp, err := svc.AnalyzeEpub(buf.Bytes(), "tale.epub")
	require.NoError(t, err)

	assert.Equal(t, "A Tale", resp.Title)
	// The raw word list keeps every token, single letters included
	assert.Equal(t, []string{"the", "cat", "sat", "on", "a", "mat"}, resp.WordList)
	assert.Equal(t, len(resp.WordList), resp.TotalWords)
	assert.Equal(t, resp.TotalUniqueWords, len(resp.UniqueWords))
	assert.Equal(t, 1, resp.TotalSentences)
}

func TestAnalyzeEpub_Corrupt(t *testing.T) {
	svc := newTextService()

	_, err := svc.AnalyzeEpub([]byte("not a zip"), "bad.epub")
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeParse))
}
