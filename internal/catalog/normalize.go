package catalog

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/shopfront/internal/models"
)

// flexString 兼容字符串或数字形式的ID
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*f = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexString(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = flexString(n.String())
	return nil
}

type rawImage struct {
	URL string `json:"url"`
	Alt string `json:"alt"`
}

type rawReview struct {
	ID          flexString `json:"id"`
	Username    string     `json:"username"`
	Rating      float64    `json:"rating"`
	Description string     `json:"description"`
	Comment     string     `json:"comment"`
}

// rawProduct 远程接口的商品记录，兼容多个版本的字段命名
type rawProduct struct {
	ID                   flexString      `json:"id"`
	Title                string          `json:"title"`
	Description          string          `json:"description"`
	Price                models.Money    `json:"price"`
	DiscountedPrice      *models.Money   `json:"discountedPrice"`
	DiscountedPriceSnake *models.Money   `json:"discounted_price"`
	Image                json.RawMessage `json:"image"`
	Images               json.RawMessage `json:"images"`
	Rating               float64         `json:"rating"`
	Tags                 []string        `json:"tags"`
	Reviews              []rawReview     `json:"reviews"`
}

type envelope struct {
	Data json.RawMessage `json:"data"`
}

// normalizeProduct 将远程记录转换为内部商品结构；缺少ID时返回 false
func normalizeProduct(raw rawProduct) (models.Product, bool) {
	id := strings.TrimSpace(string(raw.ID))
	if id == "" {
		return models.Product{}, false
	}

	discounted := raw.Price
	switch {
	case raw.DiscountedPrice != nil:
		discounted = *raw.DiscountedPrice
	case raw.DiscountedPriceSnake != nil:
		discounted = *raw.DiscountedPriceSnake
	}

	images := decodeImages(raw.Images)
	if len(images) == 0 {
		images = decodeImages(raw.Image)
	}

	reviews := make([]models.Review, 0, len(raw.Reviews))
	for _, r := range raw.Reviews {
		comment := strings.TrimSpace(r.Comment)
		if comment == "" {
			comment = strings.TrimSpace(r.Description)
		}
		reviews = append(reviews, models.Review{
			ID:       string(r.ID),
			Username: strings.TrimSpace(r.Username),
			Rating:   r.Rating,
			Comment:  comment,
		})
	}

	tags := raw.Tags
	if tags == nil {
		tags = []string{}
	}

	return models.Product{
		ID:              id,
		Title:           strings.TrimSpace(raw.Title),
		Description:     strings.TrimSpace(raw.Description),
		Price:           raw.Price,
		DiscountedPrice: discounted,
		Images:          images,
		Rating:          raw.Rating,
		Tags:            tags,
		Reviews:         reviews,
	}, true
}

// decodeImages 兼容单个图片对象与图片数组
func decodeImages(raw json.RawMessage) []models.ProductImage {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" {
		return []models.ProductImage{}
	}

	var list []rawImage
	switch raw[0] {
	case '[':
		if err := json.Unmarshal(raw, &list); err != nil {
			return []models.ProductImage{}
		}
	case '{':
		var single rawImage
		if err := json.Unmarshal(raw, &single); err != nil {
			return []models.ProductImage{}
		}
		list = []rawImage{single}
	case '"':
		var url string
		if err := json.Unmarshal(raw, &url); err != nil {
			return []models.ProductImage{}
		}
		list = []rawImage{{URL: url}}
	}

	images := make([]models.ProductImage, 0, len(list))
	for _, img := range list {
		url := strings.TrimSpace(img.URL)
		if url == "" {
			continue
		}
		images = append(images, models.ProductImage{URL: url, Alt: strings.TrimSpace(img.Alt)})
	}
	return images
}

// decodeProductList 解析 {"data": [...]} 列表响应
func decodeProductList(body []byte) ([]models.Product, int, error) {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, 0, err
	}
	data := bytes.TrimSpace(env.Data)
	if len(data) == 0 || string(data) == "null" {
		return []models.Product{}, 0, nil
	}
	var raws []rawProduct
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, 0, err
	}
	products := make([]models.Product, 0, len(raws))
	skipped := 0
	for _, raw := range raws {
		product, ok := normalizeProduct(raw)
		if !ok {
			skipped++
			continue
		}
		products = append(products, product)
	}
	return products, skipped, nil
}

// decodeProduct 解析 {"data": {...}} 单个商品响应；data 为空时返回 nil
func decodeProduct(body []byte) (*models.Product, error) {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, err
	}
	data := bytes.TrimSpace(env.Data)
	if len(data) == 0 || string(data) == "null" {
		return nil, nil
	}
	var raw rawProduct
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	product, ok := normalizeProduct(raw)
	if !ok {
		return nil, nil
	}
	return &product, nil
}
