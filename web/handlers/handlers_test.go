package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/jyouturner/mediabox/pkg/content"
	"github.com/jyouturner/mediabox/pkg/documents"
	"github.com/jyouturner/mediabox/pkg/media"
	"github.com/jyouturner/mediabox/pkg/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubMedia struct {
	flipCalls, videoCalls, stickerCalls int
	direction, mimeType, pack, author   string
	err                                 error
}

func (s *stubMedia) Flip(_ context.Context, data []byte, mimeType, direction string) ([]byte, error) {
	s.flipCalls++
	s.direction, s.mimeType = direction, mimeType
	if s.err != nil {
		return nil, s.err
	}
	return append([]byte("flipped:"), data...), nil
}

func (s *stubMedia) BlackVideo(_ context.Context, audio []byte) ([]byte, error) {
	s.videoCalls++
	if s.err != nil {
		return nil, s.err
	}
	return []byte("mp4"), nil
}

func (s *stubMedia) Sticker(_ context.Context, data []byte, mimeType, pack, author string) ([]byte, error) {
	s.stickerCalls++
	s.mimeType, s.pack, s.author = mimeType, pack, author
	if s.err != nil {
		return nil, s.err
	}
	return []byte("RIFF....WEBP"), nil
}

type stubArchive struct {
	name string
	data []byte
	err  error
}

func (s *stubArchive) Put(_ context.Context, name, _ string, body []byte) (string, error) {
	s.name, s.data = name, body
	if s.err != nil {
		return "", s.err
	}
	return "https://archive.example/" + name, nil
}

type stubContent struct {
	bibleCalls, shortenCalls, removeCalls int
	err                                   error
}

func (s *stubContent) Verse(_ context.Context, verse string) (string, error) {
	s.bibleCalls++
	if s.err != nil {
		return "", s.err
	}
	return "text of " + verse, nil
}

func (s *stubContent) Shorten(_ context.Context, url string) (string, error) {
	s.shortenCalls++
	if s.err != nil {
		return "", s.err
	}
	return "https://tinyurl.com/x", nil
}

func (s *stubContent) RemoveBackground(_ context.Context, image []byte) ([]byte, error) {
	s.removeCalls++
	if s.err != nil {
		return nil, s.err
	}
	return []byte("\x89PNG"), nil
}

var (
	testFacts  = []string{"fact one", "fact two", "fact three"}
	testQuotes = []content.Quote{{Quote: "q1", Author: "a1"}, {Quote: "q2", Author: "a2"}}
)

type fixture struct {
	router  *mux.Router
	media   *stubMedia
	content *stubContent
	archive *stubArchive
	metrics *metrics.Metrics
	dataDir string
}

func newFixture(t *testing.T, withArchive bool) *fixture {
	t.Helper()
	dataDir := t.TempDir()
	writeData(t, dataDir, content.FactsFile, map[string]any{"facts": testFacts})
	writeData(t, dataDir, content.QuotesFile, map[string]any{"quotes": testQuotes})

	f := &fixture{
		media:   &stubMedia{},
		content: &stubContent{},
		metrics: metrics.New(),
		dataDir: dataDir,
	}
	deps := Deps{
		Metrics:   f.metrics,
		DataDir:   dataDir,
		Media:     f.media,
		PDF:       documents.NewRenderer(t.TempDir()),
		Library:   content.NewLibrary(testFacts, testQuotes, []string{"line"}),
		Bible:     f.content,
		Shortener: f.content,
		Remover:   f.content,
		Fancy:     content.Fancy,
	}
	if withArchive {
		f.archive = &stubArchive{}
		deps.Archive = f.archive
	}
	f.router = NewRouter(deps)
	return f
}

func writeData(t *testing.T, dir, name string, v any) {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), data, 0o600))
}

func (f *fixture) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

// multipartRequest builds a form with one file part declaring mimeType and
// the given extra fields.
func multipartRequest(t *testing.T, target, field, mimeType string, data []byte, fields map[string]string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if field != "" {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="`+field+`"; filename="upload"`)
		if mimeType != "" {
			h.Set("Content-Type", mimeType)
		}
		part, err := mw.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write(data)
		require.NoError(t, err)
	}
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, target, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func jsonRequest(t *testing.T, method, target string, payload any) *http.Request {
	t.Helper()
	data, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(method, target, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func TestHello(t *testing.T) {
	f := newFixture(t, false)
	rec := f.do(httptest.NewRequest(http.MethodGet, "/api/hello", http.NoBody))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]any{"message": "Running"}, decodeBody(t, rec))
	assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))
}

func TestRequestIDIsEchoed(t *testing.T) {
	f := newFixture(t, false)
	req := httptest.NewRequest(http.MethodGet, "/healthz", http.NoBody)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec := f.do(req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))
}

func TestAPIFactsMembership(t *testing.T) {
	f := newFixture(t, false)
	for i := 0; i < 20; i++ {
		rec := f.do(httptest.NewRequest(http.MethodGet, "/api/facts", http.NoBody))
		require.Equal(t, http.StatusOK, rec.Code)
		body := decodeBody(t, rec)
		assert.Contains(t, testFacts, body["fact"])
		assert.NotContains(t, body, "success")
	}
}

func TestAPIFactsReadPerRequest(t *testing.T) {
	f := newFixture(t, false)
	writeData(t, f.dataDir, content.FactsFile, map[string]any{"facts": []string{"fresh"}})

	rec := f.do(httptest.NewRequest(http.MethodGet, "/api/facts", http.NoBody))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "fresh", decodeBody(t, rec)["fact"])
}

func TestAPIFactsMissingFile(t *testing.T) {
	f := newFixture(t, false)
	require.NoError(t, os.Remove(filepath.Join(f.dataDir, content.FactsFile)))

	rec := f.do(httptest.NewRequest(http.MethodGet, "/api/facts", http.NoBody))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, map[string]any{"error": "Facts file not found"}, decodeBody(t, rec))
}

func TestAPIQuotesUnreadableFile(t *testing.T) {
	f := newFixture(t, false)
	require.NoError(t, os.WriteFile(filepath.Join(f.dataDir, content.QuotesFile), []byte("{"), 0o600))

	rec := f.do(httptest.NewRequest(http.MethodGet, "/api/quotes", http.NoBody))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, map[string]any{"error": "Failed to read quotes file"}, decodeBody(t, rec))
}

func TestAPIQuotesBareObject(t *testing.T) {
	f := newFixture(t, false)
	rec := f.do(httptest.NewRequest(http.MethodGet, "/api/quotes", http.NoBody))
	require.Equal(t, http.StatusOK, rec.Code)

	var q content.Quote
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &q))
	assert.Contains(t, testQuotes, q)
}

func TestFlip(t *testing.T) {
	f := newFixture(t, false)
	req := multipartRequest(t, "/api/flip?direction=horizontal", "media", "image/jpeg", []byte("jpegdata"), nil)

	rec := f.do(req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/jpeg", rec.Header().Get("Content-Type"))
	assert.Equal(t, "flipped:jpegdata", rec.Body.String())
	assert.Equal(t, "horizontal", f.media.direction)
	assert.Equal(t, 1, f.media.flipCalls)
	assert.Equal(t, 1.0, f.metrics.OperationCount("flip", metrics.OutcomeSuccess))
}

func TestFlipJPEGWithProcessor(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 32, 16))
	for y := 0; y < 16; y++ {
		for x := 0; x < 32; x++ {
			c := color.RGBA{R: 255, A: 255}
			if x >= 16 {
				c = color.RGBA{B: 255, A: 255}
			}
			src.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, src, &jpeg.Options{Quality: 95}))

	router := NewRouter(Deps{Media: media.NewProcessor("ffmpeg", t.TempDir())})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, multipartRequest(t, "/api/flip?direction=horizontal", "media", "image/jpeg", buf.Bytes(), nil))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "image/jpeg", rec.Header().Get("Content-Type"))
	require.NotZero(t, rec.Body.Len())

	out, err := jpeg.Decode(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, src.Bounds(), out.Bounds())
	r, _, b, _ := out.At(4, 8).RGBA()
	assert.Greater(t, b, r, "left edge should now be blue")
}

func TestFlipMissingDirectionNeverInvokes(t *testing.T) {
	f := newFixture(t, false)
	for _, target := range []string{"/api/flip", "/api/flip?direction="} {
		req := multipartRequest(t, target, "media", "image/png", []byte("png"), nil)
		rec := f.do(req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, map[string]any{"error": "Direction query parameter is required"}, decodeBody(t, rec))
	}
	assert.Zero(t, f.media.flipCalls)
	assert.Equal(t, 2.0, f.metrics.OperationCount("flip", metrics.OutcomeInvalid))
}

func TestFlipMissingFile(t *testing.T) {
	f := newFixture(t, false)
	rec := f.do(httptest.NewRequest(http.MethodPost, "/api/flip?direction=vertical", http.NoBody))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, map[string]any{"error": "No file uploaded"}, decodeBody(t, rec))

	req := multipartRequest(t, "/api/flip?direction=vertical", "other", "image/png", []byte("png"), nil)
	rec = f.do(req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, f.media.flipCalls)
}

func TestFlipOperationFailure(t *testing.T) {
	f := newFixture(t, false)
	f.media.err = errors.New("unknown flip direction: \"sideways\"")
	req := multipartRequest(t, "/api/flip?direction=sideways", "media", "image/png", []byte("png"), nil)

	rec := f.do(req)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, map[string]any{"error": "unknown flip direction: \"sideways\""}, decodeBody(t, rec))
	assert.Equal(t, 1.0, f.metrics.OperationCount("flip", metrics.OutcomeFailure))
}

func TestIntakeSniffsUndeclaredType(t *testing.T) {
	f := newFixture(t, false)
	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")
	req := multipartRequest(t, "/api/flip?direction=both", "media", "", png, nil)

	rec := f.do(req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", f.media.mimeType)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
}

func TestBlackVideo(t *testing.T) {
	f := newFixture(t, false)
	rec := f.do(multipartRequest(t, "/api/blackvideo", "audio", "audio/mpeg", []byte("mp3"), nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "video/mp4", rec.Header().Get("Content-Type"))
	assert.Equal(t, "mp4", rec.Body.String())
}

func TestBlackVideoErrors(t *testing.T) {
	f := newFixture(t, false)
	rec := f.do(multipartRequest(t, "/api/blackvideo", "media", "audio/mpeg", []byte("mp3"), nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, map[string]any{"error": "No audio file uploaded"}, decodeBody(t, rec))

	f.media.err = errors.New("ffmpeg: exit status 1")
	rec = f.do(multipartRequest(t, "/api/blackvideo", "audio", "audio/mpeg", []byte("mp3"), nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, map[string]any{"error": "Failed to convert audio to video"}, decodeBody(t, rec))
}

func TestStickerDefaults(t *testing.T) {
	f := newFixture(t, false)
	rec := f.do(multipartRequest(t, "/api/sticker", "media", "image/png", []byte("png"), nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/webp", rec.Header().Get("Content-Type"))
	assert.Equal(t, DefaultPackName, f.media.pack)
	assert.Equal(t, DefaultAuthor, f.media.author)
}

func TestStickerCustomMetadata(t *testing.T) {
	f := newFixture(t, false)
	fields := map[string]string{"packname": "Cats", "author": "Ada"}
	rec := f.do(multipartRequest(t, "/api/sticker", "media", "video/mp4", []byte("mp4"), fields))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Cats", f.media.pack)
	assert.Equal(t, "Ada", f.media.author)
}

func TestStickerRejectsTextMedia(t *testing.T) {
	f := newFixture(t, false)
	for _, mt := range []string{"text/plain", "text/html", "application/pdf"} {
		rec := f.do(multipartRequest(t, "/api/sticker", "media", mt, []byte("hello"), nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code, mt)
		assert.Contains(t, decodeBody(t, rec)["error"], "Unsupported media type")
	}
	assert.Zero(t, f.media.stickerCalls)
}

func TestStickerMissingFile(t *testing.T) {
	f := newFixture(t, false)
	rec := f.do(multipartRequest(t, "/api/sticker", "", "", nil, map[string]string{"packname": "x"}))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, map[string]any{"error": "No media file uploaded"}, decodeBody(t, rec))
}

func assertPDFResponse(t *testing.T, rec *httptest.ResponseRecorder) {
	t.Helper()
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	body := rec.Body.Bytes()
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF-")))
	assert.True(t, bytes.Contains(body, []byte("%%EOF")))
}

func TestToPDF(t *testing.T) {
	f := newFixture(t, false)
	for i := 0; i < 2; i++ {
		rec := f.do(jsonRequest(t, http.MethodPost, "/api/topdf", map[string]string{"text": "hello pdf"}))
		assertPDFResponse(t, rec)
		assert.Empty(t, rec.Header().Get(ArchiveURLHeader))
	}
}

func TestPDFRoutesAcceptAnyNonEmptyText(t *testing.T) {
	f := newFixture(t, false)
	for _, text := range []string{"   ", "\n\n", "日本語のテキスト", "party 🎉"} {
		assertPDFResponse(t, f.do(jsonRequest(t, http.MethodPost, "/api/topdf", map[string]string{"text": text})))
		assertPDFResponse(t, f.do(jsonRequest(t, http.MethodPost, "/textToPdf", map[string]string{"content": text})))
	}
}

func TestToPDFFormEncoded(t *testing.T) {
	f := newFixture(t, false)
	req := httptest.NewRequest(http.MethodPost, "/api/topdf", strings.NewReader("text=from+a+form"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	assertPDFResponse(t, f.do(req))
}

func TestToPDFMissingText(t *testing.T) {
	f := newFixture(t, false)
	rec := f.do(jsonRequest(t, http.MethodPost, "/api/topdf", map[string]string{}))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, map[string]any{"error": "Text is required"}, decodeBody(t, rec))

	req := httptest.NewRequest(http.MethodPost, "/api/topdf?text=query-is-not-body", http.NoBody)
	rec = f.do(req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestToPDFInvalidJSON(t *testing.T) {
	f := newFixture(t, false)
	req := httptest.NewRequest(http.MethodPost, "/api/topdf", strings.NewReader("{"))
	req.Header.Set("Content-Type", "application/json")
	rec := f.do(req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestToPDFArchives(t *testing.T) {
	f := newFixture(t, true)
	req := jsonRequest(t, http.MethodPost, "/api/topdf", map[string]string{"text": "keep me"})
	req.Header.Set(RequestIDHeader, "req-42")

	rec := f.do(req)
	assertPDFResponse(t, rec)
	assert.Equal(t, "req-42.pdf", f.archive.name)
	assert.Equal(t, rec.Body.Bytes(), f.archive.data)
	assert.Equal(t, "https://archive.example/req-42.pdf", rec.Header().Get(ArchiveURLHeader))
}

func TestToPDFArchiveFailureIsNotFatal(t *testing.T) {
	f := newFixture(t, true)
	f.archive.err = errors.New("bucket gone")

	rec := f.do(jsonRequest(t, http.MethodPost, "/api/topdf", map[string]string{"text": "keep me"}))
	assertPDFResponse(t, rec)
	assert.Empty(t, rec.Header().Get(ArchiveURLHeader))
}

func TestBaseFactsAndQuotes(t *testing.T) {
	f := newFixture(t, false)
	for i := 0; i < 10; i++ {
		body := decodeBody(t, f.do(httptest.NewRequest(http.MethodGet, "/facts", http.NoBody)))
		assert.Equal(t, true, body["success"])
		assert.Contains(t, testFacts, body["fact"])
	}

	rec := f.do(httptest.NewRequest(http.MethodGet, "/quotes", http.NoBody))
	require.Equal(t, http.StatusOK, rec.Code)
	var out struct {
		Success bool          `json:"success"`
		Quote   content.Quote `json:"quote"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.True(t, out.Success)
	assert.Contains(t, testQuotes, out.Quote)
}

func TestBaseEmptyLibraryFails(t *testing.T) {
	router := NewRouter(Deps{Library: content.NewLibrary(nil, nil, nil)})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/rizz", http.NoBody))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, content.ErrEmpty.Error(), body["error"])
}

func TestRizz(t *testing.T) {
	f := newFixture(t, false)
	body := decodeBody(t, f.do(httptest.NewRequest(http.MethodGet, "/rizz", http.NoBody)))
	assert.Equal(t, map[string]any{"success": true, "text": "line"}, body)
}

func TestBible(t *testing.T) {
	f := newFixture(t, false)
	rec := f.do(httptest.NewRequest(http.MethodGet, "/bible", http.NoBody))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, map[string]any{"success": false, "error": "Verse is required"}, decodeBody(t, rec))
	assert.Zero(t, f.content.bibleCalls)

	rec = f.do(httptest.NewRequest(http.MethodGet, "/bible?verse=John+3:16", http.NoBody))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]any{"success": true, "text": "text of John 3:16"}, decodeBody(t, rec))

	f.content.err = errors.New("bible: HTTP 404: not found")
	rec = f.do(httptest.NewRequest(http.MethodGet, "/bible?verse=Nope", http.NoBody))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, map[string]any{"success": false, "error": "bible: HTTP 404: not found"}, decodeBody(t, rec))
}

func TestFancy(t *testing.T) {
	f := newFixture(t, false)
	rec := f.do(httptest.NewRequest(http.MethodGet, "/fancy", http.NoBody))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, map[string]any{"success": false, "error": "Text is required"}, decodeBody(t, rec))

	rec = f.do(httptest.NewRequest(http.MethodGet, "/fancy?text=Hi", http.NoBody))
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	result, ok := body["result"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Ｈｉ", result[content.StyleFullwidth])
}

func TestRemoveBg(t *testing.T) {
	f := newFixture(t, false)
	rec := f.do(httptest.NewRequest(http.MethodPost, "/removeBg", http.NoBody))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, map[string]any{"success": false, "error": "Image file is required"}, decodeBody(t, rec))
	assert.Zero(t, f.content.removeCalls)

	rec = f.do(multipartRequest(t, "/removeBg", "image", "image/jpeg", []byte("jpg"), nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.Equal(t, "\x89PNG", rec.Body.String())
}

func TestTinyURL(t *testing.T) {
	f := newFixture(t, false)
	rec := f.do(httptest.NewRequest(http.MethodGet, "/tinyurl", http.NoBody))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, map[string]any{"success": false, "error": "URL is required"}, decodeBody(t, rec))
	assert.Zero(t, f.content.shortenCalls)

	rec = f.do(httptest.NewRequest(http.MethodGet, "/tinyurl?url=https://example.com", http.NoBody))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]any{"success": true, "result": "https://tinyurl.com/x"}, decodeBody(t, rec))
}

func TestTextToPDF(t *testing.T) {
	f := newFixture(t, false)
	rec := f.do(jsonRequest(t, http.MethodPost, "/textToPdf", map[string]string{"content": "body text"}))
	assertPDFResponse(t, rec)

	rec = f.do(jsonRequest(t, http.MethodPost, "/textToPdf", map[string]string{"text": "wrong field"}))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, map[string]any{"success": false, "error": "Content is required"}, decodeBody(t, rec))
}

func TestUnknownRouteAndMethod(t *testing.T) {
	f := newFixture(t, false)
	rec := f.do(httptest.NewRequest(http.MethodGet, "/nope", http.NoBody))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, map[string]any{"error": "Not found"}, decodeBody(t, rec))
	assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))
	assert.Equal(t, 1.0, f.metrics.RequestCount(http.MethodGet, "unmatched", http.StatusNotFound))

	req := httptest.NewRequest(http.MethodGet, "/api/flip", http.NoBody)
	req.Header.Set(RequestIDHeader, "req-405")
	rec = f.do(req)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "req-405", rec.Header().Get(RequestIDHeader))
}

func TestRecovererAnswersJSON(t *testing.T) {
	router := NewRouter(Deps{})
	router.HandleFunc("/boom", func(http.ResponseWriter, *http.Request) { panic("boom") })

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", http.NoBody))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, map[string]any{"error": "Internal server error"}, decodeBody(t, rec))
}

func TestMetricsEndpoint(t *testing.T) {
	f := newFixture(t, false)
	f.do(httptest.NewRequest(http.MethodGet, "/api/hello", http.NoBody))

	rec := f.do(httptest.NewRequest(http.MethodGet, "/metrics", http.NoBody))
	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `mediabox_http_requests_total{method="GET",route="/api/hello",status="200"} 1`)
}
