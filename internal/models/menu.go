package models

import "time"

// Menu questionnaire options
var (
	MenuGoals = []string{
		"Emagrecer e desinchar",
		"Manter peso",
		"Ganhar energia",
		"Melhorar digestão",
	}

	MenuEquipment = []string{"Fogão", "Airfryer", "Micro-ondas", "Liquidificador"}

	HungerLevels = []HungerLevel{
		{Value: "low", Label: "Leve - Prefiro refeições pequenas"},
		{Value: "medium", Label: "Moderado - Refeições equilibradas"},
		{Value: "high", Label: "Alto - Preciso de porções maiores"},
	}
)

// HungerLevel is a selectable answer for the hunger question
type HungerLevel struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// HungerLevelValues returns the accepted hunger level values
func HungerLevelValues() []string {
	values := make([]string, len(HungerLevels))
	for i, h := range HungerLevels {
		values[i] = h.Value
	}
	return values
}

// MenuRequest holds the questionnaire answers
type MenuRequest struct {
	Goal        string   `json:"goal"`
	Equipment   []string `json:"equipment"`
	HungerLevel string   `json:"hungerLevel"`
}

// MenuMeal is one meal of a generated menu
type MenuMeal struct {
	Name        string `json:"name"`
	Calories    int    `json:"calories"`
	Time        int    `json:"time"`
	Description string `json:"description"`
}

// MenuDay is one day of a generated menu
type MenuDay struct {
	Day       int      `json:"day"`
	Breakfast MenuMeal `json:"breakfast"`
	Lunch     MenuMeal `json:"lunch"`
	Dinner    MenuMeal `json:"dinner"`
}

// GeneratedMenu is a stored questionnaire result
type GeneratedMenu struct {
	ID          int64             `json:"id"`
	UserID      int64             `json:"-"`
	Goal        string            `json:"goal"`
	Equipment   []string          `json:"equipment"`
	Preferences map[string]string `json:"preferences"`
	Days        []MenuDay         `json:"menu"`
	CreatedAt   time.Time         `json:"createdAt"`
}
