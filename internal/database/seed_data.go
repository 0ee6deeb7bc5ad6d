package database

import "corpoleve/internal/models"

const defaultRecipeImage = "https://images.pexels.com/photos/1640777/pexels-photo-1640777.jpeg?auto=compress&cs=tinysrgb&w=800"

type recipeDetail struct {
	ingredients  []string
	instructions []string
	tags         []string
}

// recipeDetails holds the catalog text for every dish of the weekly plan
var recipeDetails = map[string]recipeDetail{
	"Smoothie Verde Detox": {
		ingredients:  []string{"1 folha de couve", "1 fatia de abacaxi", "1/2 maçã verde", "200 ml de água de coco", "Gengibre a gosto"},
		instructions: []string{"Lave bem a couve e as frutas.", "Bata tudo no liquidificador até ficar homogêneo.", "Sirva gelado, sem coar."},
		tags:         []string{"Detox", "Sem lactose"},
	},
	"Frango Grelhado com Legumes": {
		ingredients:  []string{"150 g de peito de frango", "1 abobrinha", "1 cenoura", "Azeite, sal e ervas"},
		instructions: []string{"Tempere o frango com sal e ervas.", "Grelhe o frango em frigideira antiaderente.", "Salteie os legumes em cubos no azeite e sirva junto."},
		tags:         []string{"Proteico"},
	},
	"Sopa Cremosa de Abóbora": {
		ingredients:  []string{"300 g de abóbora cabotiá", "1/2 cebola", "1 dente de alho", "Pimenta calabresa a gosto"},
		instructions: []string{"Refogue a cebola e o alho.", "Cozinhe a abóbora com água até amaciar.", "Bata tudo e finalize com a pimenta."},
		tags:         []string{"Leve", "Vegano"},
	},
	"Panqueca Fit de Banana": {
		ingredients:  []string{"1 banana madura", "1 ovo", "2 colheres de aveia", "Canela a gosto"},
		instructions: []string{"Amasse a banana e misture com o ovo e a aveia.", "Doure dos dois lados em frigideira untada.", "Polvilhe canela e sirva."},
		tags:         []string{"Sem açúcar"},
	},
	"Omelete Caprese com Salada": {
		ingredients:  []string{"2 ovos", "4 tomates-cereja", "30 g de muçarela de búfala", "Manjericão", "Folhas verdes"},
		instructions: []string{"Bata os ovos com sal.", "Despeje na frigideira e adicione tomate, muçarela e manjericão.", "Dobre a omelete e sirva com as folhas."},
		tags:         []string{"Vegetariano", "Proteico"},
	},
	"Peixe ao Limão com Aspargos": {
		ingredients:  []string{"150 g de filé de peixe branco", "6 aspargos", "1 limão siciliano", "Azeite e sal"},
		instructions: []string{"Tempere o peixe com limão e sal.", "Grelhe o peixe e os aspargos na mesma frigideira.", "Regue com azeite e raspas de limão."},
		tags:         []string{"Leve", "Proteico"},
	},
	"Overnight Oats de Chia": {
		ingredients:  []string{"3 colheres de aveia", "1 colher de chia", "150 ml de leite vegetal", "Frutas vermelhas"},
		instructions: []string{"Misture aveia, chia e leite em um pote.", "Deixe na geladeira durante a noite.", "Cubra com as frutas antes de servir."},
		tags:         []string{"Prático", "Vegano"},
	},
	"Salada de Atum com Grão-de-Bico": {
		ingredients:  []string{"1 lata de atum em água", "1/2 xícara de grão-de-bico cozido", "Tomate e pepino", "Limão e azeite"},
		instructions: []string{"Escorra o atum e o grão-de-bico.", "Pique os legumes em cubos.", "Misture tudo e tempere com limão e azeite."},
		tags:         []string{"Proteico", "Sem fogão"},
	},
	"Caldo Verde Brasileiro": {
		ingredients:  []string{"2 batatas pequenas", "1 maço de couve fatiada fina", "1/2 cebola", "Alho e azeite"},
		instructions: []string{"Cozinhe as batatas com cebola e alho.", "Bata até formar um creme.", "Junte a couve e ferva por dois minutos."},
		tags:         []string{"Reconfortante"},
	},
	"Vitamina de Mamão com Aveia": {
		ingredients:  []string{"1 fatia de mamão", "1 colher de aveia", "150 ml de leite desnatado"},
		instructions: []string{"Bata tudo no liquidificador.", "Sirva em seguida."},
		tags:         []string{"Digestivo", "Prático"},
	},
	"Peito de Peru na Airfryer": {
		ingredients:  []string{"150 g de peito de peru", "Páprica defumada", "Alho em pó", "Sal"},
		instructions: []string{"Tempere o peru com as especiarias.", "Asse na airfryer a 200 °C por 12 minutos.", "Descanse por dois minutos antes de fatiar."},
		tags:         []string{"Airfryer", "Proteico"},
	},
	"Sopa de Tomate Assado": {
		ingredients:  []string{"4 tomates maduros", "1/2 cebola", "Manjericão", "Páprica defumada"},
		instructions: []string{"Asse os tomates e a cebola até dourar.", "Bata com água quente e manjericão.", "Tempere com a páprica e sirva."},
		tags:         []string{"Leve", "Vegano"},
	},
	"Tapioca Recheada com Ovo": {
		ingredients:  []string{"3 colheres de goma de tapioca", "1 ovo mexido", "Orégano"},
		instructions: []string{"Espalhe a goma na frigideira quente.", "Quando firmar, recheie com o ovo mexido.", "Dobre e sirva com orégano."},
		tags:         []string{"Sem glúten"},
	},
	"Salada Caesar de Frango": {
		ingredients:  []string{"Alface americana", "120 g de frango grelhado", "Croutons integrais", "Molho de iogurte com limão"},
		instructions: []string{"Rasgue a alface e disponha no prato.", "Adicione o frango em tiras e os croutons.", "Regue com o molho de iogurte."},
		tags:         []string{"Proteico"},
	},
	"Legumes Assados com Ervas": {
		ingredients:  []string{"Brócolis", "Cenoura", "Abobrinha", "Alecrim e tomilho", "Azeite"},
		instructions: []string{"Corte os legumes em pedaços médios.", "Tempere com ervas e azeite.", "Asse até caramelizar as bordas."},
		tags:         []string{"Vegano", "Leve"},
	},
	"Mingau de Quinoa com Canela": {
		ingredients:  []string{"3 colheres de flocos de quinoa", "200 ml de leite vegetal", "Canela em pau"},
		instructions: []string{"Aqueça o leite com a canela.", "Adicione a quinoa mexendo sempre.", "Cozinhe até engrossar."},
		tags:         []string{"Sem glúten"},
	},
	"Hambúrguer de Frango na Airfryer": {
		ingredients:  []string{"150 g de frango moído", "Cebola ralada", "Salsinha", "Sal e pimenta"},
		instructions: []string{"Misture o frango com os temperos.", "Modele os hambúrgueres.", "Asse na airfryer a 200 °C por 12 minutos, virando na metade."},
		tags:         []string{"Airfryer", "Proteico"},
	},
	"Creme de Brócolis Detox": {
		ingredients:  []string{"1 maço de brócolis", "1 chuchu", "Alho", "Gengibre"},
		instructions: []string{"Cozinhe o brócolis e o chuchu no vapor.", "Bata com alho, gengibre e água do cozimento.", "Acerte o sal e sirva."},
		tags:         []string{"Detox", "Vegano"},
	},
	"Crepioca com Pasta de Atum": {
		ingredients:  []string{"1 ovo", "2 colheres de tapioca", "1/2 lata de atum", "1 colher de iogurte natural"},
		instructions: []string{"Bata o ovo com a tapioca e doure na frigideira.", "Misture o atum com o iogurte.", "Recheie a crepioca com a pasta."},
		tags:         []string{"Proteico", "Prático"},
	},
	"Filé de Tilápia com Purê": {
		ingredients:  []string{"150 g de filé de tilápia", "1 mandioquinha", "Limão", "Salsinha"},
		instructions: []string{"Cozinhe e amasse a mandioquinha.", "Tempere a tilápia com limão e grelhe.", "Sirva sobre o purê com salsinha."},
		tags:         []string{"Leve"},
	},
	"Sopa de Legumes com Frango": {
		ingredients:  []string{"100 g de frango em cubos", "Cenoura", "Chuchu", "Vagem", "Cheiro-verde"},
		instructions: []string{"Doure o frango na panela.", "Junte os legumes e cubra com água.", "Cozinhe até os legumes ficarem macios."},
		tags:         []string{"Caseiro"},
	},
}

// bonusRecipes are catalog-only recipes unlocked alongside the plan
var bonusRecipes = []models.Recipe{
	{
		Name:         "Mousse de Maracujá Fit",
		Description:  "Aerada, azedinha e sem açúcar refinado",
		Category:     models.CategoryDessert,
		Calories:     120,
		PrepTime:     10,
		Ingredients:  []string{"1 polpa de maracujá", "170 g de iogurte grego", "1 colher de gelatina sem sabor", "Adoçante a gosto"},
		Instructions: []string{"Hidrate e dissolva a gelatina.", "Bata com a polpa, o iogurte e o adoçante.", "Leve à geladeira por duas horas."},
		Tags:         []string{"Sobremesa", "Sem açúcar"},
		IsBonus:      true,
	},
	{
		Name:         "Chips de Batata-Doce na Airfryer",
		Description:  "Crocantes, douradas e sem fritura",
		Category:     models.CategorySnack,
		Calories:     95,
		PrepTime:     15,
		Ingredients:  []string{"1 batata-doce pequena", "Azeite em spray", "Sal e alecrim"},
		Instructions: []string{"Fatie a batata bem fina.", "Tempere com azeite, sal e alecrim.", "Asse na airfryer a 180 °C até dourar, mexendo a cada cinco minutos."},
		Tags:         []string{"Airfryer", "Lanche"},
		IsBonus:      true,
	},
}

var mealCategories = map[string]string{
	models.MealBreakfast: models.CategoryBreakfast,
	models.MealLunch:     models.CategoryLunch,
	models.MealDinner:    models.CategoryDinner,
}

// CatalogRecipes returns the seed catalog: one recipe per dish of the
// weekly plan followed by the bonus recipes.
func CatalogRecipes() []models.Recipe {
	var recipes []models.Recipe
	for _, day := range models.WeeklyPlan() {
		for _, mealType := range []string{models.MealBreakfast, models.MealLunch, models.MealDinner} {
			meal := day.Meals()[mealType]
			detail := recipeDetails[meal.Name]
			recipes = append(recipes, models.Recipe{
				ID:           recipeID(meal.Name),
				Name:         meal.Name,
				Description:  meal.Description,
				Category:     mealCategories[mealType],
				Calories:     meal.Calories,
				PrepTime:     meal.Time,
				ImageURL:     defaultRecipeImage,
				Ingredients:  detail.ingredients,
				Instructions: detail.instructions,
				Tags:         detail.tags,
			})
		}
	}
	for _, r := range bonusRecipes {
		r.ID = recipeID(r.Name)
		r.ImageURL = defaultRecipeImage
		recipes = append(recipes, r)
	}
	return recipes
}

// DailyRecipes returns the challenge assignments, three meals per day
func DailyRecipes() []models.DailyRecipe {
	var daily []models.DailyRecipe
	for _, day := range models.WeeklyPlan() {
		for _, mealType := range []string{models.MealBreakfast, models.MealLunch, models.MealDinner} {
			meal := day.Meals()[mealType]
			daily = append(daily, models.DailyRecipe{
				ID:          dailyRecipeID(day.Day, mealType),
				DayNumber:   day.Day,
				MealType:    mealType,
				Name:        meal.Name,
				Description: meal.Description,
				ImageURL:    defaultRecipeImage,
				Tags:        recipeDetails[meal.Name].tags,
			})
		}
	}
	return daily
}
