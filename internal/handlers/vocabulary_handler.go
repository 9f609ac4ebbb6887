package handlers

import (
	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/resume-analyzer/internal/models"
	"alfredoptarigan/resume-analyzer/internal/services"
)

type VocabularyHandler struct {
	analyzer services.AnalyzerService
}

func NewVocabularyHandler(analyzer services.AnalyzerService) *VocabularyHandler {
	return &VocabularyHandler{
		analyzer: analyzer,
	}
}

// HandleGetSkills handles GET /skills
func (h *VocabularyHandler) HandleGetSkills(c *fiber.Ctx) error {
	vocab := h.analyzer.Vocabulary()

	return c.JSON(models.VocabularyResponse{
		Skills: vocab.Terms(),
		Count:  vocab.Len(),
	})
}
