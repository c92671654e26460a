package i18n

var messages = map[string]map[string]string{
	LocaleEnUS: {
		"success":                      "success",
		"error.bad_request":            "Invalid request",
		"error.not_found":              "Resource not found",
		"error.internal":               "Internal server error",
		"error.rate_limited":           "Too many requests, please retry in %d seconds",
		"error.rate_limit_unavailable": "Rate limiter unavailable",
		"error.session_unavailable":    "Cart session unavailable",
		"error.product_not_found":      "Product not found",
		"error.product_id_required":    "Product id is required",
		"error.quantity_invalid":       "Quantity must be a whole number",
		"error.cart_unavailable":       "Cart is temporarily unavailable",
		"error.cart_save_failed":       "Cart could not be saved",
		"error.contact_invalid":        "Please fix the errors in the form",
		"error.contact_submit_failed":  "Message could not be sent",
		"contact.full_name_min":        "Full name must be at least 3 characters",
		"contact.subject_min":          "Subject must be at least 3 characters",
		"contact.email_invalid":        "Please enter a valid email address",
		"contact.body_min":             "Message must be at least 3 characters",
		"contact.submitted":            "Thank you for your message! We'll get back to you soon.",
		"checkout.success":             "Thank you for your order! Your cart has been cleared.",
		"cart.cleared":                 "Cart cleared",
	},
	LocaleZhCN: {
		"success":                      "成功",
		"error.bad_request":            "请求参数错误",
		"error.not_found":              "资源不存在",
		"error.internal":               "服务器内部错误",
		"error.rate_limited":           "请求过于频繁，请 %d 秒后重试",
		"error.rate_limit_unavailable": "限流服务不可用",
		"error.session_unavailable":    "购物车会话不可用",
		"error.product_not_found":      "商品不存在",
		"error.product_id_required":    "商品ID不能为空",
		"error.quantity_invalid":       "数量必须为整数",
		"error.cart_unavailable":       "购物车暂时不可用",
		"error.cart_save_failed":       "购物车保存失败",
		"error.contact_invalid":        "请修正表单中的错误",
		"error.contact_submit_failed":  "留言发送失败",
		"contact.full_name_min":        "姓名至少 3 个字符",
		"contact.subject_min":          "主题至少 3 个字符",
		"contact.email_invalid":        "请输入有效的邮箱地址",
		"contact.body_min":             "留言内容至少 3 个字符",
		"contact.submitted":            "感谢留言，我们已收到您的消息。",
		"checkout.success":             "感谢下单，购物车已清空。",
		"cart.cleared":                 "购物车已清空",
	},
}
