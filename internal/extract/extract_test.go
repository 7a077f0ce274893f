package extract

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-studio/internal/shared/auth"
	"resume-studio/internal/shared/server/middleware"
	"resume-studio/resume/model"
	"resume-studio/resume/render"
)

func sampleDOCX(t *testing.T) []byte {
	t.Helper()
	data, err := render.Assemble(model.Profile{
		FirstName: "Jane",
		LastName:  "Doe",
		Title:     "Backend Engineer",
		Skills:    []string{"Go"},
	}, model.GeneratedResume{Summary: "Builds payment systems."})
	require.NoError(t, err)
	return data
}

// samplePDF writes a one-page PDF with a correct xref table.
func samplePDF(text string) []byte {
	content := fmt.Sprintf("BT /F1 12 Tf 72 712 Td (%s) Tj ET", text)
	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Contents 4 0 R /Resources << /Font << /F1 5 0 R >> >> >>",
		fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content), content),
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>",
	}
	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}
	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n0000000000 65535 f \n", len(objects)+1)
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)
	return buf.Bytes()
}

func plainZip(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("notes.txt")
	require.NoError(t, err)
	_, err = w.Write([]byte("hello"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestTextFromDOCX(t *testing.T) {
	text, err := Text(context.Background(), sampleDOCX(t), MimeDOCX, "cv.docx")
	require.NoError(t, err)
	assert.Contains(t, text, "Jane Doe")
	assert.Contains(t, text, "Builds payment systems.")
	assert.NotContains(t, text, "<w:")
}

func TestTextFromDOCXSentAsZip(t *testing.T) {
	text, err := Text(context.Background(), sampleDOCX(t), "application/zip", "cv.docx")
	require.NoError(t, err)
	assert.Contains(t, text, "Backend Engineer")
}

func TestTextFromPDF(t *testing.T) {
	text, err := Text(context.Background(), samplePDF("Jane Doe Resume"), "", "cv.pdf")
	require.NoError(t, err)
	assert.Contains(t, text, "Jane Doe Resume")
}

func TestTextRejectsPlainZip(t *testing.T) {
	_, err := Text(context.Background(), plainZip(t), "application/zip", "notes.zip")
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestTextRejectsEmptyAndCancelled(t *testing.T) {
	_, err := Text(context.Background(), nil, MimePDF, "a.pdf")
	assert.ErrorIs(t, err, ErrEmpty)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = Text(ctx, []byte("x"), MimePDF, "a.pdf")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDetectType(t *testing.T) {
	docx := sampleDOCX(t)
	cases := []struct {
		mime, name string
		data       []byte
		want       string
	}{
		{"application/pdf; charset=binary", "a", nil, MimePDF},
		{"application/octet-stream", "cv", []byte("%PDF-1.7 ..."), MimePDF},
		{"application/octet-stream", "cv.bin", docx, MimeDOCX},
		{"application/zip", "notes.docx", plainZip(t), "application/zip"},
		{"text/plain", "notes.txt", []byte("hi"), "text/plain"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, DetectType(tc.mime, tc.name, tc.data), tc.name)
	}
}

func TestTidy(t *testing.T) {
	assert.Equal(t, "a\n\nb\nc", tidy("  a \r\n\n\n\n b\n c  \n\n"))
}

func upload(t *testing.T, field, name, contentType string, data []byte) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, field, name))
	header.Set("Content-Type", contentType)
	part, err := mw.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		middleware.SetPrincipalForTest(c, auth.Principal{UserID: "mgr-1", Role: auth.RoleManager})
		c.Next()
	})
	NewHandler().RegisterRoutes(r.Group("/api"))
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/profiles/extract-text", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	r.ServeHTTP(w, req)
	return w
}

func TestHandlerExtractsDOCX(t *testing.T) {
	w := upload(t, "file", "cv.docx", MimeDOCX, sampleDOCX(t))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "Jane Doe")
}

func TestHandlerErrors(t *testing.T) {
	w := upload(t, "resume", "cv.docx", MimeDOCX, sampleDOCX(t))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = upload(t, "file", "notes.txt", "text/plain", []byte("hello"))
	assert.Equal(t, http.StatusUnsupportedMediaType, w.Code)

	w = upload(t, "file", "big.pdf", MimePDF, bytes.Repeat([]byte("a"), MaxUploadBytes+10))
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}
