package models

// WeeklyPlan returns the fixed 7-day meal plan. The smart menu serves it
// for every questionnaire answer and the daily challenge recipes are
// seeded from it.
func WeeklyPlan() []MenuDay {
	return []MenuDay{
		{
			Day:       1,
			Breakfast: MenuMeal{Name: "Smoothie Verde Detox", Calories: 142, Time: 5, Description: "Refrescante, levemente adocicado com abacaxi"},
			Lunch:     MenuMeal{Name: "Frango Grelhado com Legumes", Calories: 285, Time: 12, Description: "Suculento, colorido e temperado na medida"},
			Dinner:    MenuMeal{Name: "Sopa Cremosa de Abóbora", Calories: 168, Time: 10, Description: "Aveludada, levemente picante"},
		},
		{
			Day:       2,
			Breakfast: MenuMeal{Name: "Panqueca Fit de Banana", Calories: 183, Time: 7, Description: "Macia, naturalmente doce"},
			Lunch:     MenuMeal{Name: "Omelete Caprese com Salada", Calories: 248, Time: 9, Description: "Colorida, fresca e aromática"},
			Dinner:    MenuMeal{Name: "Peixe ao Limão com Aspargos", Calories: 225, Time: 13, Description: "Leve, delicado e perfumado"},
		},
		{
			Day:       3,
			Breakfast: MenuMeal{Name: "Overnight Oats de Chia", Calories: 195, Time: 2, Description: "Cremoso, levemente crocante"},
			Lunch:     MenuMeal{Name: "Salada de Atum com Grão-de-Bico", Calories: 312, Time: 8, Description: "Completa, crocante e proteica"},
			Dinner:    MenuMeal{Name: "Caldo Verde Brasileiro", Calories: 145, Time: 11, Description: "Reconfortante e nutritivo"},
		},
		{
			Day:       4,
			Breakfast: MenuMeal{Name: "Vitamina de Mamão com Aveia", Calories: 158, Time: 4, Description: "Cremosa, digestiva e energizante"},
			Lunch:     MenuMeal{Name: "Peito de Peru na Airfryer", Calories: 265, Time: 14, Description: "Crocante por fora, macio por dentro"},
			Dinner:    MenuMeal{Name: "Sopa de Tomate Assado", Calories: 135, Time: 12, Description: "Aromática, levemente defumada"},
		},
		{
			Day:       5,
			Breakfast: MenuMeal{Name: "Tapioca Recheada com Ovo", Calories: 210, Time: 6, Description: "Quentinha, macia e satisfatória"},
			Lunch:     MenuMeal{Name: "Salada Caesar de Frango", Calories: 298, Time: 10, Description: "Clássica, crocante e saborosa"},
			Dinner:    MenuMeal{Name: "Legumes Assados com Ervas", Calories: 155, Time: 13, Description: "Caramelizados e aromáticos"},
		},
		{
			Day:       6,
			Breakfast: MenuMeal{Name: "Mingau de Quinoa com Canela", Calories: 172, Time: 8, Description: "Quentinho, cremoso e reconfortante"},
			Lunch:     MenuMeal{Name: "Hambúrguer de Frango na Airfryer", Calories: 280, Time: 12, Description: "Suculento, temperado e crocante"},
			Dinner:    MenuMeal{Name: "Creme de Brócolis Detox", Calories: 142, Time: 9, Description: "Aveludado, nutritivo e leve"},
		},
		{
			Day:       7,
			Breakfast: MenuMeal{Name: "Crepioca com Pasta de Atum", Calories: 188, Time: 5, Description: "Prática e salgada"},
			Lunch:     MenuMeal{Name: "Filé de Tilápia com Purê", Calories: 255, Time: 14, Description: "Delicado e cremoso"},
			Dinner:    MenuMeal{Name: "Sopa de Legumes com Frango", Calories: 178, Time: 11, Description: "Completa, caseira e nutritiva"},
		},
	}
}

// Meals returns the day's meals keyed by meal type
func (d MenuDay) Meals() map[string]MenuMeal {
	return map[string]MenuMeal{
		MealBreakfast: d.Breakfast,
		MealLunch:     d.Lunch,
		MealDinner:    d.Dinner,
	}
}
