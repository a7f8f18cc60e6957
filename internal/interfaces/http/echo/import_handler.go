package echo

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	app "github.com/mohammadpnp/backoffice-import/internal/application/importing"
	"github.com/mohammadpnp/backoffice-import/internal/infrastructure/file"
)

const HeaderUserID = "X-User-ID"

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type apiResponse struct {
	Data  any        `json:"data,omitempty"`
	Error *errorBody `json:"error,omitempty"`
}

type ImportUseCases struct {
	Preview  app.PreviewImport
	Commit   app.CommitImport
	Cancel   app.CancelImport
	Template app.ExportTemplate
	Logs     app.ListImportLogs
}

type ImportHandler struct {
	useCases     ImportUseCases
	maxFileBytes int64
	logger       *logrus.Entry
}

func NewImportHandler(useCases ImportUseCases, maxFileBytes int64, logger *logrus.Entry) *ImportHandler {
	if logger == nil {
		logger = logrus.NewEntry(logrus.StandardLogger())
	}
	return &ImportHandler{useCases: useCases, maxFileBytes: maxFileBytes, logger: logger}
}

func (h *ImportHandler) Preview(c echo.Context) error {
	header, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, apiResponse{Error: &errorBody{
			Code:    "bad_request",
			Message: "multipart field 'file' is required",
		}})
	}

	src, err := header.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, apiResponse{Error: &errorBody{
			Code:    "bad_request",
			Message: "uploaded file could not be read",
		}})
	}
	defer src.Close()

	payload, err := file.ReadLimited(src, h.maxFileBytes)
	if err != nil {
		if errors.Is(err, file.ErrFileTooLarge) {
			return c.JSON(http.StatusRequestEntityTooLarge, apiResponse{Error: &errorBody{
				Code:    "file_too_large",
				Message: fmt.Sprintf("file exceeds %d bytes", h.maxFileBytes),
			}})
		}
		return c.JSON(http.StatusBadRequest, apiResponse{Error: &errorBody{
			Code:    "bad_request",
			Message: "uploaded file could not be read",
		}})
	}

	out, err := h.useCases.Preview.Execute(c.Request().Context(), app.PreviewImportInput{
		Domain:   c.Param("domain"),
		FileName: header.Filename,
		Payload:  payload,
		ActedBy:  c.Request().Header.Get(HeaderUserID),
	})
	if err != nil {
		return h.writeError(c, err, nil)
	}

	return c.JSON(http.StatusOK, apiResponse{Data: out})
}

func (h *ImportHandler) Commit(c echo.Context) error {
	summary, err := h.useCases.Commit.Execute(c.Request().Context(), app.CommitImportInput{
		SessionID: c.Param("id"),
		ActedBy:   c.Request().Header.Get(HeaderUserID),
	})
	if err != nil {
		// A summary with an id was produced by the committer, so records may already be written.
		if summary.ID != "" {
			return h.writeError(c, err, summary)
		}
		return h.writeError(c, err, nil)
	}

	return c.JSON(http.StatusOK, apiResponse{Data: summary})
}

func (h *ImportHandler) Cancel(c echo.Context) error {
	if err := h.useCases.Cancel.Execute(c.Request().Context(), app.CancelImportInput{SessionID: c.Param("id")}); err != nil {
		return h.writeError(c, err, nil)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *ImportHandler) Template(c echo.Context) error {
	out, err := h.useCases.Template.Execute(c.Request().Context(), app.ExportTemplateInput{Domain: c.Param("domain")})
	if err != nil {
		return h.writeError(c, err, nil)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", out.FileName))
	return c.Blob(http.StatusOK, out.ContentType, out.Content)
}

func (h *ImportHandler) Logs(c echo.Context) error {
	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			return c.JSON(http.StatusBadRequest, apiResponse{Error: &errorBody{
				Code:    "bad_request",
				Message: "limit must be a non-negative integer",
			}})
		}
		limit = parsed
	}

	out, err := h.useCases.Logs.Execute(c.Request().Context(), app.ListImportLogsInput{
		Domain: c.QueryParam("domain"),
		Limit:  limit,
	})
	if err != nil {
		return h.writeError(c, err, nil)
	}
	return c.JSON(http.StatusOK, apiResponse{Data: out})
}

func (h *ImportHandler) writeError(c echo.Context, err error, data any) error {
	status, body := importErrorBody(err)
	if status >= http.StatusInternalServerError {
		h.logger.WithError(err).WithFields(logrus.Fields{
			"path":   c.Path(),
			"status": status,
		}).Error("import.request_failed")
	}
	return c.JSON(status, apiResponse{Data: data, Error: body})
}

func importErrorBody(err error) (int, *errorBody) {
	switch {
	case errors.Is(err, app.ErrUnknownDomain):
		return http.StatusNotFound, &errorBody{Code: "unknown_domain", Message: "unknown import domain"}
	case errors.Is(err, app.ErrSessionNotFound):
		return http.StatusNotFound, &errorBody{Code: "session_not_found", Message: "import session not found or expired"}
	case errors.Is(err, app.ErrMissingActor):
		return http.StatusBadRequest, &errorBody{Code: "missing_user", Message: HeaderUserID + " header is required"}
	case errors.Is(err, app.ErrEmptyFile):
		return http.StatusBadRequest, &errorBody{Code: "empty_file", Message: "file has no data rows"}
	case errors.Is(err, app.ErrUnsupportedFormat):
		return http.StatusBadRequest, &errorBody{Code: "unsupported_format", Message: "file must be .csv or .xlsx"}
	case errors.Is(err, app.ErrInvalidImportFile):
		return http.StatusBadRequest, &errorBody{Code: "invalid_file", Message: err.Error()}
	case errors.Is(err, app.ErrReferenceLookup), errors.Is(err, app.ErrReconciliationLookup):
		return http.StatusBadGateway, &errorBody{Code: "lookup_failed", Message: "could not check existing data, nothing was imported"}
	case errors.Is(err, app.ErrCommit):
		return http.StatusBadGateway, &errorBody{Code: "commit_failed", Message: "import could not be written"}
	case errors.Is(err, app.ErrAuditLog):
		return http.StatusInternalServerError, &errorBody{Code: "audit_log_failed", Message: "import was written but its log entry could not be saved"}
	default:
		return http.StatusInternalServerError, &errorBody{Code: "internal_error", Message: "import request failed"}
	}
}
