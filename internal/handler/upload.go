package handler

import (
	"context"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/pygus/pygus-backend/internal/queue"
	"github.com/pygus/pygus-backend/internal/storage"
	"github.com/pygus/pygus-backend/internal/textutil"
	"github.com/pygus/pygus-backend/internal/webutil"
)

// UploadHandler ingests task media. Files land in the same object store the
// read path resolves URLs from, under keys derived from the normalized task
// name, so an upload becomes visible to GetTask without any record change.
type UploadHandler struct {
	Store   AssetUploader
	Publish func(ctx context.Context, ev queue.TaskEvent) error
}

func NewUploadHandler(store AssetUploader) *UploadHandler {
	return &UploadHandler{Store: store, Publish: queue.PublishTaskEvent}
}

// Image handles POST /tasks/upload/image: multipart fields "name" (task
// name) and "image" (file). Stored at tasks_images/{NAME}.png.
func (h *UploadHandler) Image(c echo.Context) error {
	name, msg := taskNameField(c)
	if msg != "" {
		return webutil.Fail(c, nil, msg)
	}
	fh, err := c.FormFile("image")
	if err != nil {
		return webutil.Fail(c, nil, "Arquivo de imagem é obrigatório")
	}
	key := name + ".png"
	if err := h.store(c, storage.ImagePrefix, key, fh); err != nil {
		return webutil.Fail(c, nil, err.Error())
	}
	h.emit(storage.ImagePrefix + "/" + key)
	return webutil.OK(c, map[string]any{}, "Image uploaded successfuly")
}

// Audio handles POST /tasks/upload/audio: the whole-word audio, stored at
// tasks_complete_audios/{NAME}.mp3.
func (h *UploadHandler) Audio(c echo.Context) error {
	name, msg := taskNameField(c)
	if msg != "" {
		return webutil.Fail(c, nil, msg)
	}
	fh, err := c.FormFile("audio")
	if err != nil {
		return webutil.Fail(c, nil, "Arquivo de áudio é obrigatório")
	}
	key := name + ".mp3"
	if err := h.store(c, storage.WordAudioPrefix, key, fh); err != nil {
		return webutil.Fail(c, nil, err.Error())
	}
	h.emit(storage.WordAudioPrefix + "/" + key)
	return webutil.OK(c, map[string]any{}, "Audio uploaded successfuly")
}

// Audios handles POST /tasks/upload/audios: one file per syllable. Each
// file's base name is taken as the syllable text and normalized, landing at
// tasks_audios/{TASKNAME}/{SYLLABLE}.mp3.
func (h *UploadHandler) Audios(c echo.Context) error {
	name, msg := taskNameField(c)
	if msg != "" {
		return webutil.Fail(c, nil, msg)
	}
	form, err := c.MultipartForm()
	if err != nil {
		return webutil.Fail(c, nil, "Requisição inválida")
	}
	files := form.File["audios"]
	if len(files) == 0 {
		return webutil.Fail(c, nil, "Arquivos de áudio são obrigatórios")
	}
	prefix := storage.SyllableAudioPrefix + "/" + name
	for _, fh := range files {
		stem := strings.TrimSuffix(fh.Filename, filepath.Ext(fh.Filename))
		key := textutil.Normalize(stem) + ".mp3"
		if err := h.store(c, prefix, key, fh); err != nil {
			return webutil.Fail(c, nil, err.Error())
		}
		h.emit(prefix + "/" + key)
	}
	return webutil.OK(c, map[string]any{}, "Audios uploaded successfuly")
}

// taskNameField reads and normalizes the "name" form value shared by all
// upload endpoints. The normalization here must match lookup-time
// normalization exactly or uploaded assets stop resolving.
func taskNameField(c echo.Context) (name, failMsg string) {
	raw := strings.TrimSpace(c.FormValue("name"))
	if raw == "" {
		return "", "O nome da tarefa é obrigatório"
	}
	return textutil.Normalize(raw), ""
}

func (h *UploadHandler) store(c echo.Context, prefix, filename string, fh *multipart.FileHeader) error {
	f, err := fh.Open()
	if err != nil {
		return err
	}
	defer f.Close()
	contentType := fh.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return h.Store.Upload(c.Request().Context(), prefix, filename, f, contentType)
}

func (h *UploadHandler) emit(assetKey string) {
	if h.Publish == nil {
		return
	}
	ev := queue.TaskEvent{
		Action:   queue.ActionAssetUploaded,
		AssetKey: assetKey,
		At:       time.Now().UTC().Format(time.RFC3339),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = h.Publish(ctx, ev)
	}()
}
