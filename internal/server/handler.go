package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/joseph-ayodele/aps-analyzer/constants"
	"github.com/joseph-ayodele/aps-analyzer/internal/analysis"
	"github.com/joseph-ayodele/aps-analyzer/internal/common"
	"github.com/joseph-ayodele/aps-analyzer/internal/report"
)

// ExportFilename is the attachment name of the XLSX download.
const ExportFilename = "analise_pedido.xlsx"

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Analyzer runs one analysis.
type Analyzer interface {
	Run(ctx context.Context, in analysis.Input) (*analysis.Result, error)
}

// Exporter renders a result as a workbook.
type Exporter interface {
	WriteXLSX(res *analysis.Result) ([]byte, error)
}

// Handler holds the HTTP handlers' dependencies.
type Handler struct {
	analyzer       Analyzer
	exporter       Exporter
	maxUploadBytes int64
	logger         *slog.Logger
}

func NewHandler(analyzer Analyzer, exporter Exporter, maxUploadMB int64, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	if maxUploadMB <= 0 {
		maxUploadMB = 20
	}
	return &Handler{
		analyzer:       analyzer,
		exporter:       exporter,
		maxUploadBytes: maxUploadMB << 20,
		logger:         logger,
	}
}

// HealthCheck returns the health status of the service
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "aps-analyzer",
	})
}

// CreateAnalysis runs the uploaded pair and answers with the JSON report.
func (h *Handler) CreateAnalysis(c *gin.Context) {
	res, ok := h.analyze(c)
	if !ok {
		return
	}
	body, err := report.Marshal(report.Build(res))
	if err != nil {
		h.fail(c, fmt.Errorf("render report: %w", err))
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}

// ExportAnalysis runs the uploaded pair and answers with the XLSX workbook.
func (h *Handler) ExportAnalysis(c *gin.Context) {
	res, ok := h.analyze(c)
	if !ok {
		return
	}
	xlsx, err := h.exporter.WriteXLSX(res)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", ExportFilename))
	c.Data(http.StatusOK, xlsxContentType, xlsx)
}

func (h *Handler) analyze(c *gin.Context) (*analysis.Result, bool) {
	in, err := h.readInput(c)
	if err != nil {
		h.fail(c, err)
		return nil, false
	}
	res, err := h.analyzer.Run(c.Request.Context(), in)
	if err != nil {
		h.fail(c, err)
		return nil, false
	}
	return res, true
}

func (h *Handler) readInput(c *gin.Context) (analysis.Input, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)

	catalogName, catalogData, err := readUpload(c, "catalog")
	if err != nil {
		return analysis.Input{}, err
	}
	if !constants.IsTabularExt(filepath.Ext(catalogName)) {
		return analysis.Input{}, common.NewInvalidInput(fmt.Sprintf("price table must be .xlsx or .csv, got %q", catalogName), nil)
	}
	orderName, orderData, err := readUpload(c, "order")
	if err != nil {
		return analysis.Input{}, err
	}
	modality, err := constants.ParseModality(c.PostForm("modality"))
	if err != nil {
		return analysis.Input{}, common.NewInvalidInput(err.Error(), nil)
	}

	return analysis.Input{
		Modality:    modality,
		OrderName:   orderName,
		Order:       orderData,
		CatalogName: catalogName,
		Catalog:     catalogData,
	}, nil
}

func readUpload(c *gin.Context, field string) (string, []byte, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return "", nil, err
		}
		return "", nil, common.NewInvalidInput(fmt.Sprintf("form file %q is required", field), err)
	}
	data, err := readFile(fh)
	if err != nil {
		return "", nil, common.NewInvalidInput(fmt.Sprintf("read %q", field), err)
	}
	return filepath.Base(fh.Filename), data, nil
}

func readFile(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return io.ReadAll(f)
}

func (h *Handler) fail(c *gin.Context, err error) {
	status, body := errorResponse(err)
	body["request_id"] = common.RequestIDFromContext(c.Request.Context())

	log := h.logger.With("path", c.FullPath(), "request_id", body["request_id"], "status", status)
	if status >= http.StatusInternalServerError {
		log.Error("http.analysis.failed", "error", err)
	} else {
		log.Warn("http.analysis.rejected", "error", err)
	}
	c.AbortWithStatusJSON(status, body)
}
