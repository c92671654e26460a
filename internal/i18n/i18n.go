package i18n

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	LocaleEnUS = "en-US"
	LocaleZhCN = "zh-CN"

	// DefaultLocale 默认语言
	DefaultLocale = LocaleEnUS

	localeHeader = "X-Locale"
	localeQuery  = "lang"
)

var supportedLocales = []string{LocaleEnUS, LocaleZhCN}

// ResolveLocale 依次从查询参数、X-Locale 头、Accept-Language 头解析语言
func ResolveLocale(c *gin.Context) string {
	if c == nil || c.Request == nil {
		return DefaultLocale
	}
	candidates := []string{
		c.Query(localeQuery),
		c.GetHeader(localeHeader),
	}
	for _, part := range strings.Split(c.GetHeader("Accept-Language"), ",") {
		if idx := strings.Index(part, ";"); idx >= 0 {
			part = part[:idx]
		}
		candidates = append(candidates, part)
	}
	for _, candidate := range candidates {
		if locale := NormalizeLocale(candidate); locale != "" {
			return locale
		}
	}
	return DefaultLocale
}

// NormalizeLocale 将语言标识归一化为受支持的语言，不支持时返回空串
func NormalizeLocale(raw string) string {
	value := strings.ToLower(strings.TrimSpace(raw))
	if value == "" {
		return ""
	}
	value = strings.ReplaceAll(value, "_", "-")
	for _, locale := range supportedLocales {
		if strings.ToLower(locale) == value {
			return locale
		}
	}
	switch {
	case strings.HasPrefix(value, "zh"):
		return LocaleZhCN
	case strings.HasPrefix(value, "en"):
		return LocaleEnUS
	}
	return ""
}

// T 翻译消息键，找不到时回退默认语言，仍找不到则返回键本身
func T(locale, key string) string {
	if table, ok := messages[NormalizeLocale(locale)]; ok {
		if msg, ok := table[key]; ok {
			return msg
		}
	}
	if msg, ok := messages[DefaultLocale][key]; ok {
		return msg
	}
	return key
}

// Sprintf 翻译后按参数格式化
func Sprintf(locale, key string, args ...interface{}) string {
	return fmt.Sprintf(T(locale, key), args...)
}
