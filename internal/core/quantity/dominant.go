package quantity

import (
	"math"
	"strings"

	"recipe-viewer/internal/pkg/common"
)

// ResolveDominant 找出數量最大的食材名稱。
//
// 依序掃描，只有嚴格大於目前最大值時才替換，所以同值時保留先出現者。
// 勝出的食材沒有名稱時會清空目前名稱；掃描結束後若仍沒有名稱，
// 一律退回第一個食材的名稱（即使最大值屬於其他食材）。
// 第二個回傳值為 false 表示無法給出名稱。
func ResolveDominant(ingredients []common.Ingredient) (string, bool) {
	if len(ingredients) == 0 {
		return "", false
	}

	best := math.Inf(-1)
	name := ""
	found := false

	for _, ing := range ingredients {
		v := Parse(ing.Quantity)
		if v > best {
			best = v
			if ing.Name != "" {
				name, found = ing.Name, true
			} else {
				name, found = "", false
			}
		}
	}

	if !found {
		if ingredients[0].Name == "" {
			return "", false
		}
		name = ingredients[0].Name
	}

	return strings.TrimSpace(SpaceOut(name)), true
}
