package recipe

import (
	"context"

	"recipe-viewer/internal/pkg/common"
)

// RecipeSource 食譜資料來源
type RecipeSource interface {
	ListRecipes(ctx context.Context) ([]common.Recipe, error)
	GetRecipe(ctx context.Context, id string) (*common.Recipe, error)
}

// IngredientView 食材顯示資料
type IngredientView struct {
	Name        string  `json:"name"`
	DisplayName string  `json:"display_name"`
	Quantity    string  `json:"quantity"`
	Unit        string  `json:"unit"`
	Display     string  `json:"display"` // 數量與單位以空格分隔，例如 "500 g"
	Compact     string  `json:"compact"` // 數量與單位緊貼，例如 "500g"
	Value       float64 `json:"value"`   // 解析後的數量，無法解析時為 0
}

// Summary 食譜清單項目
type Summary struct {
	ID                 common.RecipeID `json:"id"`
	Name               string          `json:"name"`
	Description        string          `json:"description,omitempty"`
	ImageURL           string          `json:"image,omitempty"`
	IngredientCount    int             `json:"ingredient_count"`
	DominantIngredient *string         `json:"dominant_ingredient"`
}

// Detail 食譜詳細資料
type Detail struct {
	ID                 common.RecipeID  `json:"id"`
	Name               string           `json:"name"`
	Description        string           `json:"description,omitempty"`
	ImageURL           string           `json:"image,omitempty"`
	Ingredients        []IngredientView `json:"ingredients"`
	DominantIngredient *string          `json:"dominant_ingredient"`
}
