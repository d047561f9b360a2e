package ocr

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shinmonzen/purchasing-tracker/internal/entity"
)

type stubCall struct {
	name string
	args []string
}

// stubRunner fakes the external pdftotext/pdftoppm/tesseract binaries.
type stubRunner struct {
	calls []stubCall

	pdftotextOut string
	pdftotextErr error

	rasterPages  int
	pdftoppmErr  error
	tesseractOut []string // one entry per page, consumed in order
	tesseractIdx int
}

func (r *stubRunner) Run(_ context.Context, name string, args ...string) ([]byte, []byte, error) {
	r.calls = append(r.calls, stubCall{name: name, args: args})
	switch {
	case strings.Contains(name, "pdftotext"):
		return []byte(r.pdftotextOut), nil, r.pdftotextErr
	case strings.Contains(name, "pdftoppm"):
		if r.pdftoppmErr != nil {
			return nil, nil, r.pdftoppmErr
		}
		prefix := args[len(args)-1]
		for i := 1; i <= r.rasterPages; i++ {
			if err := os.WriteFile(fmt.Sprintf("%s-%d.png", prefix, i), []byte("png"), 0644); err != nil {
				return nil, nil, err
			}
		}
		return nil, nil, nil
	case strings.Contains(name, "tesseract"):
		out := r.tesseractOut[r.tesseractIdx]
		r.tesseractIdx++
		return []byte(out), nil, nil
	default:
		return nil, nil, errors.New("unexpected command: " + name)
	}
}

func (r *stubRunner) callsFor(name string) []stubCall {
	var out []stubCall
	for _, c := range r.calls {
		if strings.Contains(c.name, name) {
			out = append(out, c)
		}
	}
	return out
}

func newTestExtractor(stub *stubRunner) *Extractor {
	e := NewExtractor(Config{}, nil)
	e.runner = stub
	return e
}

func testDoc() entity.RawDocument {
	return entity.RawDocument{Filename: "hirayama_oct.pdf", Content: []byte("%PDF-1.4 fake")}
}

func TestRecover_TextLayerSkipsOCR(t *testing.T) {
	stub := &stubRunner{pdftotextOut: "請求書 page one\fpage two"}
	e := newTestExtractor(stub)

	res, err := e.Recover(context.Background(), testDoc())
	require.NoError(t, err)

	assert.Equal(t, "pdf-text", res.Method)
	assert.Equal(t, 2, res.Pages)
	assert.Equal(t, "請求書 page one\npage two", res.Text)

	assert.Empty(t, stub.callsFor("pdftoppm"), "rasterizer must not run when the text layer succeeds")
	assert.Empty(t, stub.callsFor("tesseract"), "ocr must not run when the text layer succeeds")
}

func TestRecover_OCRFallbackPerPage(t *testing.T) {
	stub := &stubRunner{
		pdftotextOut: "  \n \n", // whitespace-only text layer
		rasterPages:  2,
		tesseractOut: []string{"page one text", "page two text"},
	}
	e := newTestExtractor(stub)

	res, err := e.Recover(context.Background(), testDoc())
	require.NoError(t, err)

	assert.Equal(t, "pdf-ocr", res.Method)
	assert.Equal(t, 2, res.Pages)
	assert.Equal(t, "page one text\npage two text", res.Text)

	tess := stub.callsFor("tesseract")
	require.Len(t, tess, 2, "ocr must run exactly once per page")
	assert.True(t, strings.HasSuffix(tess[0].args[0], "-1.png"))
	assert.True(t, strings.HasSuffix(tess[1].args[0], "-2.png"))
	// Fixed bilingual language pair.
	assert.Equal(t, []string{"-l", "jpn+eng"}, tess[0].args[len(tess[0].args)-2:])
}

func TestRecover_RasterizerDPI(t *testing.T) {
	stub := &stubRunner{pdftotextOut: "", rasterPages: 1, tesseractOut: []string{"text"}}
	e := newTestExtractor(stub)

	_, err := e.Recover(context.Background(), testDoc())
	require.NoError(t, err)

	ppm := stub.callsFor("pdftoppm")
	require.Len(t, ppm, 1)
	assert.Contains(t, ppm[0].args, "-r")
	assert.Contains(t, ppm[0].args, "300")
}

func TestRecover_BothStrategiesFail(t *testing.T) {
	stub := &stubRunner{pdftotextOut: "", pdftoppmErr: errors.New("broken pdf")}
	e := newTestExtractor(stub)

	res, err := e.Recover(context.Background(), testDoc())
	require.NoError(t, err, "total extraction failure is not an error")
	assert.Empty(t, res.Text)
	assert.Empty(t, res.Method)
	assert.NotEmpty(t, res.Warnings)
}

func TestRecover_TempDocumentCleanedUp(t *testing.T) {
	stub := &stubRunner{pdftotextOut: "text layer"}
	e := newTestExtractor(stub)

	_, err := e.Recover(context.Background(), testDoc())
	require.NoError(t, err)

	// pdftotext receives the temp path as its second-to-last argument.
	calls := stub.callsFor("pdftotext")
	require.Len(t, calls, 1)
	tmpPath := calls[0].args[len(calls[0].args)-2]
	_, statErr := os.Stat(tmpPath)
	assert.True(t, os.IsNotExist(statErr), "temp document must be removed after recovery")
}

func TestRecover_RasterDirCleanedUp(t *testing.T) {
	stub := &stubRunner{pdftotextOut: "", rasterPages: 1, tesseractOut: []string{"text"}}
	e := newTestExtractor(stub)

	_, err := e.Recover(context.Background(), testDoc())
	require.NoError(t, err)

	tess := stub.callsFor("tesseract")
	require.Len(t, tess, 1)
	_, statErr := os.Stat(filepath.Dir(tess[0].args[0]))
	assert.True(t, os.IsNotExist(statErr), "raster temp dir must be removed after recovery")
}

func TestNormalize(t *testing.T) {
	in := "a\tb\r\nc\n\n\n\nd   \n"
	out := Normalize(in)
	assert.Equal(t, "a b\nc\n\nd", out)
}
