package cli

import (
	"strconv"

	"recipe-viewer/internal/core/recipe"
)

type summaryTable []recipe.Summary

func (t summaryTable) Header() []string {
	return []string{"ID", "NAME", "INGREDIENTS", "DOMINANT"}
}

func (t summaryTable) Rows() [][]string {
	rows := make([][]string, len(t))
	for i, s := range t {
		rows[i] = []string{s.ID.String(), s.Name, strconv.Itoa(s.IngredientCount), orDash(s.DominantIngredient)}
	}
	return rows
}

// detailTable 以食材列出食譜內容；JSON/YAML 輸出與 recipe.Detail 相同
type detailTable recipe.Detail

func (t *detailTable) Header() []string {
	return []string{"INGREDIENT", "DISPLAY", "COMPACT", "VALUE"}
}

func (t *detailTable) Rows() [][]string {
	rows := make([][]string, len(t.Ingredients))
	for i, ing := range t.Ingredients {
		rows[i] = []string{ing.DisplayName, ing.Display, ing.Compact, formatValue(ing.Value)}
	}
	return rows
}

type parseResult struct {
	Raw   string  `json:"raw" yaml:"raw"`
	Value float64 `json:"value" yaml:"value"`
}

type parseTable []parseResult

func (t parseTable) Header() []string {
	return []string{"RAW", "VALUE"}
}

func (t parseTable) Rows() [][]string {
	rows := make([][]string, len(t))
	for i, r := range t {
		rows[i] = []string{strconv.Quote(r.Raw), formatValue(r.Value)}
	}
	return rows
}

type formatResult struct {
	Quantity string  `json:"quantity" yaml:"quantity"`
	Unit     string  `json:"unit" yaml:"unit"`
	Display  string  `json:"display" yaml:"display"`
	Compact  string  `json:"compact" yaml:"compact"`
	Value    float64 `json:"value" yaml:"value"`
}

type formatTable []formatResult

func (t formatTable) Header() []string {
	return []string{"DISPLAY", "COMPACT", "VALUE"}
}

func (t formatTable) Rows() [][]string {
	rows := make([][]string, len(t))
	for i, r := range t {
		rows[i] = []string{strconv.Quote(r.Display), strconv.Quote(r.Compact), formatValue(r.Value)}
	}
	return rows
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func orDash(s *string) string {
	if s == nil {
		return "-"
	}
	return *s
}
