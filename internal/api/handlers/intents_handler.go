package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/DJ-no1/floatchat-backend/internal/intent"
)

// intentDescriptions is what the UI shows next to each intent's examples.
var intentDescriptions = map[intent.Intent]string{
	intent.ProgramOverview: "General information about the Argo program",
	intent.RegionalStatus:  "Status of Argo floats in a sea region",
	intent.DataAccess:      "How to access and download Argo data",
	intent.LocationLookup:  "Finding Argo floats near specific locations",
}

// HandleIntents lists the supported intents and their trigger patterns.
func HandleIntents(c *fiber.Ctx) error {
	type intentInfo struct {
		Name        string   `json:"name"`
		Description string   `json:"description"`
		Patterns    []string `json:"patterns"`
	}

	infos := make([]intentInfo, 0)
	for _, p := range intent.Patterns() {
		infos = append(infos, intentInfo{
			Name:        p.Intent.String(),
			Description: intentDescriptions[p.Intent],
			Patterns:    p.Patterns,
		})
	}

	return c.JSON(fiber.Map{
		"intents_supported": infos,
		"default_intent":    intent.Default.String(),
	})
}
