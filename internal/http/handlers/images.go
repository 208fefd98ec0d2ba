package handlers

import (
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"brandgenius/internal/pipeline"
	"brandgenius/internal/providers/image"
)

type generateImageRequest struct {
	Prompt  string `json:"prompt"`
	Context string `json:"context"`
}

// GenerateImage accepts either a JSON body or a multipart form with an
// optional style-reference file, and responds with raw PNG bytes.
func (a *App) GenerateImage(w http.ResponseWriter, r *http.Request) {
	var req pipeline.GenerateRequest

	if isMultipart(r) {
		r.Body = http.MaxBytesReader(w, r.Body, a.MaxUploadBytes)
		if err := r.ParseMultipartForm(a.MaxUploadBytes); err != nil {
			a.error(w, http.StatusBadRequest, "bad_request", "invalid multipart payload")
			return
		}
		req.Prompt = r.FormValue("prompt")
		req.Context = r.FormValue("context")
		if reference, ok := a.readReference(w, r); ok {
			req.Reference = reference
		} else {
			return
		}
	} else {
		var body generateImageRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
			return
		}
		req.Prompt = body.Prompt
		req.Context = body.Context
	}
	req.Context = a.Store.Resolve(req.Context)

	asset, err := a.Dispatcher.GenerateImage(r.Context(), req)
	if err != nil {
		a.fail(w, err)
		return
	}
	a.writeImage(w, asset)
}

// SwapBackground edits an uploaded image, replacing its background while
// preserving the foreground subject.
func (a *App) SwapBackground(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, a.MaxUploadBytes)
	if err := r.ParseMultipartForm(a.MaxUploadBytes); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid multipart payload")
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "multipart field 'file' is required")
		return
	}
	defer file.Close()
	source, err := io.ReadAll(file)
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "failed to read upload")
		return
	}

	asset, err := a.Dispatcher.EditImage(r.Context(), pipeline.EditRequest{
		Prompt:  r.FormValue("prompt"),
		Context: a.Store.Resolve(r.FormValue("context")),
		Source:  source,
		Mode:    image.NormalizeEditMode(r.FormValue("mode")),
	})
	if err != nil {
		a.fail(w, err)
		return
	}
	a.writeImage(w, asset)
}

// readReference pulls the optional style-reference file from a multipart
// form. A missing file is not an error; an unreadable one is.
func (a *App) readReference(w http.ResponseWriter, r *http.Request) (*pipeline.Reference, bool) {
	file, header, err := r.FormFile("file")
	if err == http.ErrMissingFile {
		return nil, true
	}
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "failed to read reference image")
		return nil, false
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "failed to read reference image")
		return nil, false
	}
	return &pipeline.Reference{Data: data, MimeType: referenceMime(header)}, true
}

func referenceMime(header *multipart.FileHeader) string {
	if header == nil {
		return "image/png"
	}
	if mime := header.Header.Get("Content-Type"); mime != "" {
		return mime
	}
	return "image/png"
}

func (a *App) writeImage(w http.ResponseWriter, asset *pipeline.Asset) {
	w.Header().Set("Content-Type", asset.MimeType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(asset.Data)
}

func isMultipart(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data")
}
