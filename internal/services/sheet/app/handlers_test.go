package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"testing"

	"github.com/bytedance/sonic"

	"github.com/elysium-rpg/pdf-service/internal/services/sheet/domain"
	"github.com/elysium-rpg/pdf-service/internal/services/sheet/schema"
	"github.com/elysium-rpg/pdf-service/internal/testkit/sheetpdf"
)

func writeTemplate(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "v20_character_sheet.pdf")
	if err := os.WriteFile(path, sheetpdf.Build(sheetpdf.V20Fields()), 0o600); err != nil {
		t.Fatalf("write template: %v", err)
	}
	return path
}

func newTestHandler(t *testing.T, templatePath string) http.Handler {
	t.Helper()
	validator, err := schema.NewValidator()
	if err != nil {
		t.Fatalf("new validator: %v", err)
	}
	return newHandler(handlers{validator: validator, templatePath: templatePath})
}

func decodeJSONBody(t *testing.T, rr *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var payload map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response body %q: %v", rr.Body.String(), err)
	}
	return payload
}

func TestRootProbeReportsActive(t *testing.T) {
	h := newTestHandler(t, writeTemplate(t))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	payload := decodeJSONBody(t, rr)
	if payload["status"] != "active" {
		t.Errorf("status field = %q, want %q", payload["status"], "active")
	}
	if payload["message"] != "Elysium PDF Service is running..." {
		t.Errorf("message field = %q, want running banner", payload["message"])
	}
	if rr.Header().Get("X-Request-ID") == "" {
		t.Error("expected response to carry a request id")
	}
}

func TestHealthProbeReportsHealthy(t *testing.T) {
	h := newTestHandler(t, writeTemplate(t))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	if payload := decodeJSONBody(t, rr); payload["status"] != "healthy" {
		t.Errorf("status field = %q, want %q", payload["status"], "healthy")
	}
}

func TestUnknownPathIsNotFound(t *testing.T) {
	h := newTestHandler(t, writeTemplate(t))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/characters", nil))

	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusNotFound)
	}
}

func TestMethodMismatchesAreRejected(t *testing.T) {
	h := newTestHandler(t, writeTemplate(t))

	tcs := []struct {
		name   string
		method string
		path   string
		allow  string
	}{
		{"get on sheet", http.MethodGet, "/sheet", http.MethodPost},
		{"post on root", http.MethodPost, "/", http.MethodGet},
		{"delete on health", http.MethodDelete, "/health", http.MethodGet},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, httptest.NewRequest(tc.method, tc.path, nil))
			if rr.Code != http.StatusMethodNotAllowed {
				t.Fatalf("status = %d, want %d", rr.Code, http.StatusMethodNotAllowed)
			}
			if got := rr.Header().Get("Allow"); !strings.Contains(got, tc.allow) {
				t.Errorf("Allow = %q, want it to include %q", got, tc.allow)
			}
		})
	}
}

func TestGenerateRejectsMalformedJSON(t *testing.T) {
	h := newTestHandler(t, writeTemplate(t))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/sheet", strings.NewReader("not json")))

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusBadRequest)
	}
	if payload := decodeJSONBody(t, rr); payload["error"] == "" {
		t.Error("expected error message in response body")
	}
}

func TestGenerateRejectsNonObjectRecords(t *testing.T) {
	h := newTestHandler(t, writeTemplate(t))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/sheet", strings.NewReader(`[1,2,3]`)))

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusBadRequest)
	}
}

func TestGenerateRejectsSchemaViolations(t *testing.T) {
	h := newTestHandler(t, writeTemplate(t))

	tcs := []struct {
		name string
		body string
	}{
		{"generation above cap", `{"generation": 20}`},
		{"humanity above cap", `{"humanity": 11}`},
		{"numeric name", `{"name": 42}`},
		{"attributes as array", `{"attributes": [1, 2]}`},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/sheet", strings.NewReader(tc.body)))
			if rr.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want %d", rr.Code, http.StatusBadRequest)
			}
			if payload := decodeJSONBody(t, rr); payload["error"] == "" {
				t.Error("expected violation message in response body")
			}
		})
	}
}

func TestGenerateRejectsOversizedBody(t *testing.T) {
	h := newTestHandler(t, writeTemplate(t))

	body := bytes.Repeat([]byte("a"), maxRecordBytes+16)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/sheet", bytes.NewReader(body)))

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusBadRequest)
	}
}

func TestGenerateFillsTemplate(t *testing.T) {
	h := newTestHandler(t, writeTemplate(t))

	record := `{
		"name": "Theo Bell",
		"clan": {"name": "Brujah", "weakness": "Prone to frenzy."},
		"generation": 12,
		"attributes": {"strength": 3, "dexterity": 2},
		"abilities": {"brawl": 4},
		"disciplines": {"potence": 2, "celerity": 1},
		"virtues": {"conscience": 3}
	}`
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/sheet", strings.NewReader(record)))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d, body %q", rr.Code, http.StatusOK, rr.Body.String())
	}
	if got := rr.Header().Get("Content-Type"); got != "application/pdf" {
		t.Errorf("content-type = %q, want %q", got, "application/pdf")
	}
	wantDisposition := "attachment; filename=Theo_Bell_Sheet.pdf"
	if got := rr.Header().Get("Content-Disposition"); got != wantDisposition {
		t.Errorf("content-disposition = %q, want %q", got, wantDisposition)
	}
	if !bytes.HasPrefix(rr.Body.Bytes(), []byte("%PDF")) {
		t.Error("response body does not start with a PDF header")
	}
	if got, want := rr.Header().Get("Content-Length"), strconv.Itoa(rr.Body.Len()); got != want {
		t.Errorf("content-length = %q, want %q", got, want)
	}
}

func TestGenerateFilenameFallbacks(t *testing.T) {
	h := newTestHandler(t, writeTemplate(t))

	tcs := []struct {
		name string
		body string
		want string
	}{
		{"blank name", `{"name": "   "}`, "attachment; filename=Character_Sheet.pdf"},
		{"absent name uses default", `{}`, "attachment; filename=Unknown_Kindred_Sheet.pdf"},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/sheet", strings.NewReader(tc.body)))
			if rr.Code != http.StatusOK {
				t.Fatalf("status = %d, want %d, body %q", rr.Code, http.StatusOK, rr.Body.String())
			}
			if got := rr.Header().Get("Content-Disposition"); got != tc.want {
				t.Errorf("content-disposition = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestGenerateMissingTemplateIsInternal(t *testing.T) {
	h := newTestHandler(t, filepath.Join(t.TempDir(), "absent.pdf"))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/sheet", strings.NewReader(`{}`)))

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusInternalServerError)
	}
}

func TestGenerateCorruptTemplateIsUnavailable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corrupt.pdf")
	if err := os.WriteFile(path, []byte("this is not a pdf"), 0o600); err != nil {
		t.Fatalf("write corrupt template: %v", err)
	}
	h := newTestHandler(t, path)

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/sheet", strings.NewReader(`{}`)))

	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusServiceUnavailable)
	}
}

func TestSheetFilename(t *testing.T) {
	tcs := []struct {
		name string
		in   string
		want string
	}{
		{"simple", "Theo Bell", "Theo_Bell_Sheet.pdf"},
		{"multiple spaces", "Dr John Dee", "Dr_John_Dee_Sheet.pdf"},
		{"blank", "   ", "Character_Sheet.pdf"},
		{"empty", "", "Character_Sheet.pdf"},
		{"no spaces", "Lucita", "Lucita_Sheet.pdf"},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			if got := sheetFilename(tc.in); got != tc.want {
				t.Errorf("sheetFilename(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

// Trait ranking breaks ties on document order, so the transport's decoder
// must drive the ordered trait map the same way encoding/json does.
func TestSonicDecodeKeepsTraitOrder(t *testing.T) {
	c := domain.NewCharacter()
	record := `{"disciplines": {"obfuscate": 2, "animalism": 2, "celerity": 2}}`
	if err := sonic.Unmarshal([]byte(record), &c); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	want := []string{"obfuscate", "animalism", "celerity"}
	if got := c.Disciplines.Names(); !slices.Equal(got, want) {
		t.Fatalf("discipline names = %v, want %v", got, want)
	}
	if got := c.Disciplines.Rating("animalism", 0); got != 2 {
		t.Fatalf("animalism = %d, want 2", got)
	}
}
