package models

import "time"

// Recipe categories
const (
	CategoryBreakfast = "Café da manhã"
	CategoryLunch     = "Almoço"
	CategoryDinner    = "Jantar"
	CategoryDessert   = "Sobremesa"
	CategorySnack     = "Lanche"

	// CategoryAll is the filter value that disables category filtering
	CategoryAll = "Todos"
)

// Categories lists the catalog categories in display order
var Categories = []string{CategoryBreakfast, CategoryLunch, CategoryDinner, CategoryDessert, CategorySnack}

// Meal types of the daily challenge recipes
const (
	MealBreakfast = "breakfast"
	MealLunch     = "lunch"
	MealDinner    = "dinner"
)

// Recipe is an entry in the recipe catalog
type Recipe struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Category     string    `json:"category"`
	Calories     int       `json:"calories"`
	PrepTime     int       `json:"prepTime"`
	ImageURL     string    `json:"imageUrl"`
	Ingredients  []string  `json:"ingredients"`
	Instructions []string  `json:"instructions"`
	AudioURL     string    `json:"audioUrl,omitempty"`
	Tags         []string  `json:"tags"`
	IsBonus      bool      `json:"isBonus"`
	CreatedAt    time.Time `json:"createdAt"`
}

// DailyRecipe is a meal assigned to a challenge day
type DailyRecipe struct {
	ID          string   `json:"id"`
	DayNumber   int      `json:"dayNumber"`
	MealType    string   `json:"mealType"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	ImageURL    string   `json:"imageUrl"`
	Tags        []string `json:"tags"`
}

// DayMeals groups a day's recipes by meal
type DayMeals struct {
	Breakfast *DailyRecipe `json:"breakfast"`
	Lunch     *DailyRecipe `json:"lunch"`
	Dinner    *DailyRecipe `json:"dinner"`
}

// GroupByMeal picks the breakfast, lunch and dinner recipes. Unknown meal
// types are ignored and a missing meal stays nil.
func GroupByMeal(recipes []DailyRecipe) DayMeals {
	var meals DayMeals
	for i := range recipes {
		r := &recipes[i]
		switch r.MealType {
		case MealBreakfast:
			if meals.Breakfast == nil {
				meals.Breakfast = r
			}
		case MealLunch:
			if meals.Lunch == nil {
				meals.Lunch = r
			}
		case MealDinner:
			if meals.Dinner == nil {
				meals.Dinner = r
			}
		}
	}
	return meals
}

// Favorite marks a recipe as favorited by a user
type Favorite struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"-"`
	RecipeID  string    `json:"recipeId"`
	CreatedAt time.Time `json:"createdAt"`
}
