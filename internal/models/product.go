package models

// ProductImage 商品图片
type ProductImage struct {
	URL string `json:"url"`           // 图片地址
	Alt string `json:"alt,omitempty"` // 替代文本
}

// Review 商品评价
type Review struct {
	ID       string  `json:"id,omitempty"` // 评价ID
	Username string  `json:"username"`     // 用户名
	Rating   float64 `json:"rating"`       // 评分（0-5，不做校验）
	Comment  string  `json:"comment"`      // 评价内容
}

// Product 商品（规范化后的内部结构）
type Product struct {
	ID              string         `json:"id"`               // 商品ID
	Title           string         `json:"title"`            // 标题
	Description     string         `json:"description"`      // 描述
	Price           Money          `json:"price"`            // 原价
	DiscountedPrice Money          `json:"discounted_price"` // 折后价
	Images          []ProductImage `json:"images"`           // 图片列表
	Rating          float64        `json:"rating"`           // 平均评分
	Tags            []string       `json:"tags"`             // 标签
	Reviews         []Review       `json:"reviews"`          // 评价列表
}

// PrimaryImage 返回首张图片，没有图片时返回 nil
func (p *Product) PrimaryImage() *ProductImage {
	if p == nil || len(p.Images) == 0 {
		return nil
	}
	return &p.Images[0]
}
