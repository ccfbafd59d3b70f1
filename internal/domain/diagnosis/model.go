package diagnosis

import "github.com/agrivision/agrivision/internal/domain/i18n"

// Suitability grades returned for recommended crops.
const (
	HighlySuitable     = "Highly Suitable"
	Suitable           = "Suitable"
	ModeratelySuitable = "Moderately Suitable"
)

// CropRecommendation pairs a crop with how well it fits the detected soil.
type CropRecommendation struct {
	Name        string `json:"name"`
	Suitability string `json:"suitability"`
}

// DetectedPest is one specific pest identified in the image.
type DetectedPest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Analysis is the validated diagnosis of one plant image. A successful
// analysis always carries every required field; partial results are rejected.
type Analysis struct {
	PlantName              string               `json:"plantName"`
	DiseaseName            string               `json:"diseaseName"`
	Confidence             float64              `json:"confidence,omitempty"`
	Severity               float64              `json:"severity"`
	Treatments             []string             `json:"treatments"`
	IsHealthy              bool                 `json:"isHealthy"`
	PestsDetected          bool                 `json:"pestsDetected"`
	PestDetails            string               `json:"pestDetails,omitempty"`
	DetectedPests          []DetectedPest       `json:"detectedPests,omitempty"`
	NutrientDeficiency     bool                 `json:"nutrientDeficiency"`
	DeficiencyDetails      string               `json:"deficiencyDetails,omitempty"`
	WeedDetected           bool                 `json:"weedDetected"`
	YieldPrediction        string               `json:"yieldPrediction,omitempty"`
	SoilTypeRecommendation string               `json:"soilTypeRecommendation"`
	SoilExplanation        string               `json:"soilExplanation,omitempty"`
	RecommendedCrops       []CropRecommendation `json:"recommendedCrops"`
}

// Request carries one image to analyze.
type Request struct {
	ImageData string // base64, optionally with a data-URI prefix
	MIMEType  string
	Language  i18n.Language
}

// Config wires runtime tuning for the diagnosis domain.
type Config struct {
	Temperature float32
}
