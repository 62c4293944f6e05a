package voice

import "strings"

type RecipeIngredient struct {
	ProductName  string
	Quantity     string
	Alternatives []string
}

type Recipe struct {
	Name        string
	NameHindi   string
	NameBengali string
	Ingredients []RecipeIngredient
}

var recipes = []Recipe{
	{
		Name:        "Chicken Biryani",
		NameHindi:   "चिकन बिरयानी",
		NameBengali: "চিকেন বিরিয়ানি",
		Ingredients: []RecipeIngredient{
			{ProductName: "chicken", Quantity: "1 kg", Alternatives: []string{"chicken thighs", "chicken breast"}},
			{ProductName: "basmati rice", Quantity: "500 g", Alternatives: []string{"rice"}},
			{ProductName: "onion", Quantity: "3 pieces", Alternatives: []string{"onions"}},
			{ProductName: "tomato", Quantity: "2 pieces", Alternatives: []string{"tomatoes"}},
			{ProductName: "yogurt", Quantity: "200 g", Alternatives: []string{"curd", "dahi"}},
			{ProductName: "ginger garlic paste", Quantity: "2 tbsp", Alternatives: []string{"ginger", "garlic"}},
			{ProductName: "biryani masala", Quantity: "2 tbsp", Alternatives: []string{"garam masala"}},
			{ProductName: "oil", Quantity: "100 ml", Alternatives: []string{"cooking oil", "vegetable oil"}},
			{ProductName: "salt", Quantity: "1 tsp"},
			{ProductName: "coriander", Quantity: "1 bunch", Alternatives: []string{"fresh coriander", "cilantro"}},
			{ProductName: "mint", Quantity: "1 bunch", Alternatives: []string{"mint leaves"}},
		},
	},
	{
		Name:        "Butter Chicken",
		NameHindi:   "बटर चिकन",
		NameBengali: "বাটার চিকেন",
		Ingredients: []RecipeIngredient{
			{ProductName: "chicken", Quantity: "750 g", Alternatives: []string{"chicken breast", "boneless chicken"}},
			{ProductName: "butter", Quantity: "100 g", Alternatives: []string{"unsalted butter"}},
			{ProductName: "cream", Quantity: "200 ml", Alternatives: []string{"fresh cream", "heavy cream"}},
			{ProductName: "tomato", Quantity: "500 g", Alternatives: []string{"tomatoes", "tomato puree"}},
			{ProductName: "onion", Quantity: "2 pieces", Alternatives: []string{"onions"}},
			{ProductName: "ginger garlic paste", Quantity: "2 tbsp", Alternatives: []string{"ginger", "garlic"}},
			{ProductName: "kasuri methi", Quantity: "1 tbsp", Alternatives: []string{"fenugreek leaves"}},
			{ProductName: "garam masala", Quantity: "1 tsp"},
			{ProductName: "red chili powder", Quantity: "1 tsp", Alternatives: []string{"chili powder"}},
			{ProductName: "salt", Quantity: "1 tsp"},
		},
	},
	{
		Name:        "Paneer Butter Masala",
		NameHindi:   "पनीर बटर मसाला",
		NameBengali: "পনির বাটার মসলা",
		Ingredients: []RecipeIngredient{
			{ProductName: "paneer", Quantity: "400 g", Alternatives: []string{"cottage cheese"}},
			{ProductName: "butter", Quantity: "50 g", Alternatives: []string{"unsalted butter"}},
			{ProductName: "cream", Quantity: "150 ml", Alternatives: []string{"fresh cream"}},
			{ProductName: "tomato", Quantity: "400 g", Alternatives: []string{"tomatoes"}},
			{ProductName: "onion", Quantity: "2 pieces", Alternatives: []string{"onions"}},
			{ProductName: "cashew", Quantity: "50 g", Alternatives: []string{"cashew nuts", "cashews"}},
			{ProductName: "ginger garlic paste", Quantity: "1 tbsp", Alternatives: []string{"ginger", "garlic"}},
			{ProductName: "garam masala", Quantity: "1 tsp"},
			{ProductName: "kasuri methi", Quantity: "1 tsp", Alternatives: []string{"fenugreek leaves"}},
			{ProductName: "salt", Quantity: "1 tsp"},
		},
	},
	{
		Name:        "Dal Tadka",
		NameHindi:   "दाल तड़का",
		NameBengali: "ডাল তড়কা",
		Ingredients: []RecipeIngredient{
			{ProductName: "toor dal", Quantity: "250 g", Alternatives: []string{"yellow dal", "arhar dal", "lentils"}},
			{ProductName: "onion", Quantity: "2 pieces", Alternatives: []string{"onions"}},
			{ProductName: "tomato", Quantity: "2 pieces", Alternatives: []string{"tomatoes"}},
			{ProductName: "ghee", Quantity: "3 tbsp", Alternatives: []string{"clarified butter", "butter"}},
			{ProductName: "cumin seeds", Quantity: "1 tsp", Alternatives: []string{"jeera"}},
			{ProductName: "garlic", Quantity: "6 cloves", Alternatives: []string{"garlic cloves"}},
			{ProductName: "ginger", Quantity: "1 inch", Alternatives: []string{"fresh ginger"}},
			{ProductName: "red chili powder", Quantity: "1 tsp", Alternatives: []string{"chili powder"}},
			{ProductName: "turmeric powder", Quantity: "1/2 tsp", Alternatives: []string{"haldi"}},
			{ProductName: "coriander", Quantity: "1 bunch", Alternatives: []string{"fresh coriander"}},
			{ProductName: "salt", Quantity: "1 tsp"},
		},
	},
	{
		Name:        "Egg Curry",
		NameHindi:   "अंडा करी",
		NameBengali: "ডিম কারি",
		Ingredients: []RecipeIngredient{
			{ProductName: "eggs", Quantity: "6 pieces", Alternatives: []string{"egg"}},
			{ProductName: "onion", Quantity: "2 pieces", Alternatives: []string{"onions"}},
			{ProductName: "tomato", Quantity: "3 pieces", Alternatives: []string{"tomatoes"}},
			{ProductName: "ginger garlic paste", Quantity: "1 tbsp", Alternatives: []string{"ginger", "garlic"}},
			{ProductName: "oil", Quantity: "3 tbsp", Alternatives: []string{"cooking oil"}},
			{ProductName: "turmeric powder", Quantity: "1/2 tsp", Alternatives: []string{"haldi"}},
			{ProductName: "red chili powder", Quantity: "1 tsp", Alternatives: []string{"chili powder"}},
			{ProductName: "coriander powder", Quantity: "1 tsp", Alternatives: []string{"dhania powder"}},
			{ProductName: "garam masala", Quantity: "1 tsp"},
			{ProductName: "salt", Quantity: "1 tsp"},
			{ProductName: "coriander", Quantity: "1 bunch", Alternatives: []string{"fresh coriander"}},
		},
	},
}

// FindRecipe matches a recipe by name in English, Hindi or Bengali. The
// English match is a case-insensitive substring; the Hindi/Bengali match
// is a plain substring of the query as spoken.
func FindRecipe(query string) *Recipe {
	normalized := strings.ToLower(strings.TrimSpace(query))
	for i := range recipes {
		r := &recipes[i]
		if strings.Contains(strings.ToLower(r.Name), normalized) {
			return r
		}
		if r.NameHindi != "" && strings.Contains(r.NameHindi, query) {
			return r
		}
		if r.NameBengali != "" && strings.Contains(r.NameBengali, query) {
			return r
		}
	}
	return nil
}

// AllRecipeNames lists every recipe name in every language, used to tell
// the agent which recipes it can expand.
func AllRecipeNames() []string {
	var names []string
	for _, r := range recipes {
		names = append(names, r.Name)
		if r.NameHindi != "" {
			names = append(names, r.NameHindi)
		}
		if r.NameBengali != "" {
			names = append(names, r.NameBengali)
		}
	}
	return names
}
