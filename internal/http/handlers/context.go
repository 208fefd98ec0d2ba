package handlers

import (
	"io"
	"net/http"

	"brandgenius/internal/extract"
)

const previewLength = 50

type extractContextResponse struct {
	Status        string `json:"status"`
	ExtractedText string `json:"extracted_text"`
	Preview       string `json:"preview"`
}

// ExtractContext ingests a brand-guideline document, extracts its text, and
// replaces the stored default context. Failed extraction never touches the
// stored value.
func (a *App) ExtractContext(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, a.MaxUploadBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "multipart field 'file' is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "failed to read upload")
		return
	}

	text, err := extract.Extract(data, header.Filename)
	if err != nil {
		a.Logger.Warn().Err(err).Str("filename", header.Filename).Msg("context extraction failed")
		a.fail(w, err)
		return
	}

	a.Store.Set(text)
	a.Logger.Info().Int("chars", len(text)).Str("filename", header.Filename).Msg("brand guidelines ingested")

	a.json(w, http.StatusOK, extractContextResponse{
		Status:        "Brand Guidelines Ingested",
		ExtractedText: text,
		Preview:       preview(text),
	})
}

func preview(text string) string {
	runes := []rune(text)
	if len(runes) <= previewLength {
		return text
	}
	return string(runes[:previewLength]) + "..."
}
