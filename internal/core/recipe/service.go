package recipe

import (
	"context"
	"fmt"

	"recipe-viewer/internal/core/quantity"
	"recipe-viewer/internal/pkg/common"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Service 食譜目錄服務：取得食譜並計算顯示用的數量字串與主要食材
type Service struct {
	source  RecipeSource
	workers int
}

// NewService 創建新的食譜服務；workers 為 Overview 同時載入詳細資料的上限
func NewService(source RecipeSource, workers int) *Service {
	if workers <= 0 {
		workers = 1
	}
	return &Service{
		source:  source,
		workers: workers,
	}
}

// List 取得食譜清單，主要食材由清單內附的食材計算
func (s *Service) List(ctx context.Context) ([]Summary, error) {
	recipes, err := s.source.ListRecipes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}

	summaries := make([]Summary, len(recipes))
	for i := range recipes {
		summaries[i] = Summarize(&recipes[i])
	}
	return summaries, nil
}

// Detail 取得單一食譜與格式化後的食材
func (s *Service) Detail(ctx context.Context, id string) (*Detail, error) {
	r, err := s.source.GetRecipe(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get recipe %q: %w", id, err)
	}

	return &Detail{
		ID:                 r.ID,
		Name:               r.Name,
		Description:        r.Description,
		ImageURL:           r.ImageURL,
		Ingredients:        FormatIngredients(r.Ingredients),
		DominantIngredient: Dominant(r.Ingredients),
	}, nil
}

// Overview 取得清單後並行載入每一筆詳細資料，以完整食材計算主要食材。
// 順序與清單相同；單筆載入失敗時沿用清單內的資料。
func (s *Service) Overview(ctx context.Context) ([]Summary, error) {
	recipes, err := s.source.ListRecipes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}

	summaries := make([]Summary, len(recipes))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)

	for i := range recipes {
		g.Go(func() error {
			listed := &recipes[i]
			summaries[i] = Summarize(listed)

			if listed.ID == "" {
				return nil
			}

			detail, err := s.source.GetRecipe(gctx, listed.ID.String())
			if err != nil {
				if ctxErr := gctx.Err(); ctxErr != nil {
					return ctxErr
				}
				common.LogWarn("載入食譜詳細資料失敗，沿用清單資料",
					zap.String("recipe_id", listed.ID.String()),
					zap.Error(err),
				)
				return nil
			}

			merged := *listed
			merged.Ingredients = detail.Ingredients
			summaries[i] = Summarize(&merged)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load recipe details: %w", err)
	}

	return summaries, nil
}

// Summarize 建立清單項目
func Summarize(r *common.Recipe) Summary {
	return Summary{
		ID:                 r.ID,
		Name:               r.Name,
		Description:        r.Description,
		ImageURL:           r.ImageURL,
		IngredientCount:    len(r.Ingredients),
		DominantIngredient: Dominant(r.Ingredients),
	}
}

// FormatIngredients 將食材轉為顯示資料
func FormatIngredients(ingredients []common.Ingredient) []IngredientView {
	views := make([]IngredientView, len(ingredients))
	for i, ing := range ingredients {
		views[i] = IngredientView{
			Name:        ing.Name,
			DisplayName: quantity.FormatName(ing.Name),
			Quantity:    ing.Quantity,
			Unit:        ing.Unit,
			Display:     quantity.FormatSpaced(ing.Quantity, ing.Unit),
			Compact:     quantity.FormatUnspaced(ing.Quantity, ing.Unit),
			Value:       quantity.Parse(ing.Quantity),
		}
	}
	return views
}

// Dominant 主要食材名稱，無法判定時為 nil
func Dominant(ingredients []common.Ingredient) *string {
	name, ok := quantity.ResolveDominant(ingredients)
	if !ok {
		return nil
	}
	return &name
}
