package models

// CartItem 购物车项（商品快照 + 数量）
type CartItem struct {
	Product
	Quantity int `json:"quantity"` // 数量，始终 >= 1
}

// LineTotal 行小计（折后价 × 数量）
func (i CartItem) LineTotal() Money {
	return i.DiscountedPrice.Mul(i.Quantity)
}
