package cart

import (
	"github.com/shopfront/internal/models"
)

// State 购物车状态：按加入顺序排列的购物车项，商品ID唯一
type State struct {
	Items []models.CartItem `json:"items"`
}

// Summary 派生汇总值
type Summary struct {
	ItemCount int          `json:"item_count"`
	Total     models.Money `json:"total"`
}

// Action 购物车变更动作
type Action interface {
	apply(items []models.CartItem) []models.CartItem
}

// AddItem 加入商品：已存在则数量 +1，否则追加数量为 1 的新项
type AddItem struct {
	Product models.Product
}

// RemoveItem 按商品ID移除购物车项
type RemoveItem struct {
	ProductID string
}

// SetQuantity 设置数量；<= 0 等同于移除
type SetQuantity struct {
	ProductID string
	Quantity  int
}

// Clear 清空购物车
type Clear struct{}

// Reduce 纯函数：根据动作返回新状态，不修改输入
func Reduce(state State, action Action) State {
	items := cloneItems(state.Items)
	if action == nil {
		return State{Items: items}
	}
	return State{Items: action.apply(items)}
}

// Summarize 计算件数与总价（折后价 × 数量）
func Summarize(items []models.CartItem) Summary {
	summary := Summary{Total: models.MustMoney("0")}
	for _, item := range items {
		summary.ItemCount += item.Quantity
		summary.Total = summary.Total.Add(item.LineTotal())
	}
	return summary
}

func (a AddItem) apply(items []models.CartItem) []models.CartItem {
	if idx := indexOf(items, a.Product.ID); idx >= 0 {
		items[idx].Quantity++
		return items
	}
	return append(items, models.CartItem{Product: a.Product, Quantity: 1})
}

func (a RemoveItem) apply(items []models.CartItem) []models.CartItem {
	idx := indexOf(items, a.ProductID)
	if idx < 0 {
		return items
	}
	return append(items[:idx], items[idx+1:]...)
}

func (a SetQuantity) apply(items []models.CartItem) []models.CartItem {
	if a.Quantity <= 0 {
		return RemoveItem{ProductID: a.ProductID}.apply(items)
	}
	if idx := indexOf(items, a.ProductID); idx >= 0 {
		items[idx].Quantity = a.Quantity
	}
	return items
}

func (Clear) apply([]models.CartItem) []models.CartItem {
	return []models.CartItem{}
}

func indexOf(items []models.CartItem, productID string) int {
	for i := range items {
		if items[i].ID == productID {
			return i
		}
	}
	return -1
}

func cloneItems(items []models.CartItem) []models.CartItem {
	out := make([]models.CartItem, len(items))
	copy(out, items)
	return out
}
