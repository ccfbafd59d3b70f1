package diagnosis

import "github.com/agrivision/agrivision/internal/infra/llm/gemini"

// requiredFields is the validation contract: a response missing any of these
// is rejected outright.
var requiredFields = []string{
	"plantName",
	"diseaseName",
	"severity",
	"treatments",
	"soilTypeRecommendation",
	"recommendedCrops",
	"isHealthy",
}

// analysisSchema is the declared output shape requested from the provider.
func analysisSchema() *gemini.Schema {
	return &gemini.Schema{
		Type: gemini.TypeObject,
		Properties: map[string]*gemini.Schema{
			"plantName":   {Type: gemini.TypeString, Description: "The common name of the plant identified in the image"},
			"diseaseName": {Type: gemini.TypeString, Description: "Name of the detected disease or 'Healthy'"},
			"confidence":  {Type: gemini.TypeNumber, Description: "Confidence score between 0 and 1"},
			"severity":    {Type: gemini.TypeNumber, Description: "Severity percentage 0-100"},
			"treatments": {
				Type:        gemini.TypeArray,
				Items:       &gemini.Schema{Type: gemini.TypeString},
				Description: "List of 3-5 actionable treatment steps",
			},
			"isHealthy":     {Type: gemini.TypeBoolean},
			"pestsDetected": {Type: gemini.TypeBoolean},
			"pestDetails":   {Type: gemini.TypeString, Description: "Brief description of pests if found, else empty"},
			"detectedPests": {
				Type: gemini.TypeArray,
				Items: &gemini.Schema{
					Type: gemini.TypeObject,
					Properties: map[string]*gemini.Schema{
						"name":        {Type: gemini.TypeString, Description: "Common name of the specific pest"},
						"description": {Type: gemini.TypeString, Description: "Very short description of the pest"},
					},
				},
				Description: "List of specific pests identified in the image, if any",
			},
			"nutrientDeficiency":     {Type: gemini.TypeBoolean},
			"deficiencyDetails":      {Type: gemini.TypeString, Description: "Brief description of deficiency if found, else empty"},
			"weedDetected":           {Type: gemini.TypeBoolean},
			"yieldPrediction":        {Type: gemini.TypeString, Description: "Short yield prediction based on health"},
			"soilTypeRecommendation": {Type: gemini.TypeString, Description: "Detected or recommended soil type for this plant"},
			"soilExplanation":        {Type: gemini.TypeString, Description: "Why this soil is good"},
			"recommendedCrops": {
				Type: gemini.TypeArray,
				Items: &gemini.Schema{
					Type: gemini.TypeObject,
					Properties: map[string]*gemini.Schema{
						"name":        {Type: gemini.TypeString},
						"suitability": {Type: gemini.TypeString, Enum: []string{HighlySuitable, Suitable, ModeratelySuitable}},
					},
				},
			},
		},
		Required: requiredFields,
	}
}
