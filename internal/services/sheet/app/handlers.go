package server

import (
	"io"
	"log"
	"mime"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/bytedance/sonic"

	apperrors "github.com/elysium-rpg/pdf-service/internal/platform/errors"
	"github.com/elysium-rpg/pdf-service/internal/services/sheet/domain"
	"github.com/elysium-rpg/pdf-service/internal/services/sheet/pdfform"
	"github.com/elysium-rpg/pdf-service/internal/services/sheet/platform/httpx"
	"github.com/elysium-rpg/pdf-service/internal/services/sheet/schema"
)

// maxRecordBytes caps the request body size for character records.
const maxRecordBytes = 1 << 20

// handlers carries the shared dependencies for the HTTP routes.
type handlers struct {
	validator    *schema.Validator
	templatePath string
}

func newHandler(h handlers) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(http.MethodGet+" /{$}", h.handleRoot)
	mux.HandleFunc(http.MethodGet+" /health", h.handleHealth)
	mux.HandleFunc(http.MethodPost+" /sheet", h.handleGenerate)
	return httpx.Chain(mux, httpx.RequestID(), httpx.RecoverPanic())
}

func (h handlers) handleRoot(w http.ResponseWriter, _ *http.Request) {
	_ = httpx.WriteJSON(w, http.StatusOK, map[string]string{
		"status":  "active",
		"message": "Elysium PDF Service is running...",
	})
}

func (h handlers) handleHealth(w http.ResponseWriter, _ *http.Request) {
	_ = httpx.WriteJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// handleGenerate runs the generation pipeline: validate the record,
// assemble field values, fill the template, stream the document back.
func (h handlers) handleGenerate(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxRecordBytes))
	if err != nil {
		h.writeFailure(w, r, apperrors.Wrap(apperrors.CodeInvalidCharacter, "read character record", err))
		return
	}

	var doc map[string]any
	if err := sonic.Unmarshal(body, &doc); err != nil || doc == nil {
		h.writeFailure(w, r, apperrors.Wrap(apperrors.CodeInvalidCharacter, "character record must be a JSON object", err))
		return
	}
	if violations := h.validator.Validate(doc); len(violations) > 0 {
		h.writeFailure(w, r, apperrors.New(apperrors.CodeInvalidCharacter, violations[0].String()))
		return
	}

	character := domain.NewCharacter()
	if err := sonic.Unmarshal(body, &character); err != nil {
		h.writeFailure(w, r, apperrors.Wrap(apperrors.CodeInvalidCharacter, "decode character record", err))
		return
	}

	template, err := os.ReadFile(h.templatePath)
	if err != nil {
		code := apperrors.CodeRenderFailed
		if os.IsNotExist(err) {
			code = apperrors.CodeTemplateMissing
		}
		h.writeFailure(w, r, apperrors.Wrap(code, "load sheet template", err))
		return
	}

	document, err := pdfform.Fill(template, domain.BuildFieldMap(character))
	if err != nil {
		h.writeFailure(w, r, apperrors.Wrap(apperrors.CodeRenderFailed, "render character sheet", err))
		return
	}

	disposition := mime.FormatMediaType("attachment", map[string]string{
		"filename": sheetFilename(character.Name),
	})
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", disposition)
	w.Header().Set("Content-Length", strconv.Itoa(len(document)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(document); err != nil {
		log.Printf("write sheet response: %v", err)
	}
}

// writeFailure logs server-side failures and maps the error onto the wire.
func (h handlers) writeFailure(w http.ResponseWriter, r *http.Request, err error) {
	if httpx.HTTPStatus(err) >= http.StatusInternalServerError {
		log.Printf("%s %s failed request_id=%s: %v", r.Method, r.URL.Path, r.Header.Get("X-Request-ID"), err)
	}
	httpx.WriteError(w, err)
}

// sheetFilename derives the download filename from the character name.
func sheetFilename(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "Character_Sheet.pdf"
	}
	return strings.ReplaceAll(name, " ", "_") + "_Sheet.pdf"
}
