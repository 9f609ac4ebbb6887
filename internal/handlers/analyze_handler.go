package handlers

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"alfredoptarigan/resume-analyzer/internal/models"
	"alfredoptarigan/resume-analyzer/internal/services"
)

const exportFilename = "resume_analysis.csv"

type AnalyzeHandler struct {
	analyzer    services.AnalyzerService
	maxFileSize int64
	log         *zap.Logger
}

func NewAnalyzeHandler(
	analyzer services.AnalyzerService,
	maxFileSize int64,
	log *zap.Logger,
) *AnalyzeHandler {
	return &AnalyzeHandler{
		analyzer:    analyzer,
		maxFileSize: maxFileSize,
		log:         log.Named("http"),
	}
}

// HandleAnalyze handles POST /analyze
func (h *AnalyzeHandler) HandleAnalyze(c *fiber.Ctx) error {
	result, err := h.analyze(c)
	if err != nil {
		return h.respondError(c, err)
	}

	return c.JSON(models.AnalysisResponse{
		ID:              result.ID.String(),
		Profile:         result.Profile,
		MatchedSkills:   result.MatchedSkills,
		Match:           result.Match,
		JobMatchScore:   services.FormatPercent(result.Match.Similarity),
		OverallFitScore: services.FormatPercent(result.Match.FitScore),
	})
}

// HandleExport handles POST /analyze/export
func (h *AnalyzeHandler) HandleExport(c *fiber.Ctx) error {
	result, err := h.analyze(c)
	if err != nil {
		return h.respondError(c, err)
	}

	data, err := services.ExportCSV(result)
	if err != nil {
		return h.respondError(c, err)
	}

	c.Attachment(exportFilename)
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	return c.Send(data)
}

type badRequestError struct {
	msg string
}

func (e *badRequestError) Error() string { return e.msg }

func (h *AnalyzeHandler) analyze(c *fiber.Ctx) (*models.AnalysisResult, error) {
	jobDescription := c.FormValue("job_description")
	if strings.TrimSpace(jobDescription) == "" {
		return nil, fmt.Errorf("job_description is required: %w", services.ErrEmptyInput)
	}

	fileHeader, err := c.FormFile("resume")
	if err != nil {
		return nil, fmt.Errorf("resume file is required: %w", services.ErrEmptyInput)
	}

	if fileHeader.Size > h.maxFileSize {
		return nil, &badRequestError{msg: fmt.Sprintf("Resume file too large. Max size: %d bytes", h.maxFileSize)}
	}

	src, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("failed to read uploaded file: %w", err)
	}

	doc := services.Document{
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get(fiber.HeaderContentType),
		Data:        data,
	}

	return h.analyzer.Analyze(c.UserContext(), doc, jobDescription)
}

func (h *AnalyzeHandler) respondError(c *fiber.Ctx, err error) error {
	code := statusFor(err)
	if code >= fiber.StatusInternalServerError {
		h.log.Error("analysis failed", zap.Error(err))
	}

	return c.Status(code).JSON(models.ErrorResponse{
		Error: err.Error(),
		Code:  code,
	})
}

func statusFor(err error) int {
	var badRequest *badRequestError
	switch {
	case errors.As(err, &badRequest), errors.Is(err, services.ErrEmptyInput):
		return fiber.StatusBadRequest
	case errors.Is(err, services.ErrDocumentRead):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, services.ErrRecognition):
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}
