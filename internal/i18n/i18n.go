package i18n

import (
	"fmt"
	"strings"
)

// Locales supported by the agent surface.
const (
	LocaleEN = "en"
	LocaleZH = "zh"
)

var messages = map[string]map[string]string{
	LocaleEN: {
		"search.no_artworks":       "No artworks matched your search.",
		"search.no_editions":       "No editions matched your search.",
		"search.no_locations":      "No locations matched your search.",
		"history.no_artwork_match": "No artwork matched the title %q, so there is no history to show.",
		"history.no_edition_match": "The matched artworks have no editions, so there is no history to show.",
		"history.no_results":       "No history entries matched your search.",
		"stats.empty":              "The inventory is empty: no artworks or editions recorded yet.",
		"stats.unknown_location":   "Unknown location",
		"edition.not_found":        "Edition not found.",
		"artwork.not_found":        "Artwork not found.",
		"export.no_match":          "No artworks matched %q, nothing to export.",
		"export.multiple_matches":  "Several artworks match %q. Please pick one.",
		"confirm.reason_default":   "Update requested via assistant",
		"chat.turn_limit":          "I had to stop before finishing; please narrow your request and try again.",
	},
	LocaleZH: {
		"search.no_artworks":       "没有找到符合条件的作品。",
		"search.no_editions":       "没有找到符合条件的版本。",
		"search.no_locations":      "没有找到符合条件的地点。",
		"history.no_artwork_match": "没有找到标题为 %q 的作品，因此没有历史记录。",
		"history.no_edition_match": "匹配的作品没有任何版本，因此没有历史记录。",
		"history.no_results":       "没有找到符合条件的历史记录。",
		"stats.empty":              "库存为空：还没有录入任何作品或版本。",
		"stats.unknown_location":   "未知地点",
		"edition.not_found":        "找不到该版本。",
		"artwork.not_found":        "找不到该作品。",
		"export.no_match":          "没有找到与 %q 匹配的作品，无法导出。",
		"export.multiple_matches":  "有多件作品与 %q 匹配，请选择其中一件。",
		"confirm.reason_default":   "通过助手提交的更新",
		"chat.turn_limit":          "这次对话中断在完成之前，请缩小请求范围后重试。",
	},
}

// Normalize clamps an arbitrary locale string to a supported one.
// Region subtags ("zh-CN", "zh_TW") collapse to the base language.
func Normalize(locale string) string {
	if strings.HasPrefix(strings.ToLower(locale), LocaleZH) {
		return LocaleZH
	}
	return LocaleEN
}

// T resolves a message key for the given locale. Unknown keys never
// panic; they come back as a visible placeholder so missing strings
// are easy to spot in responses.
func T(locale, key string, args ...any) string {
	table, ok := messages[Normalize(locale)]
	if !ok {
		table = messages[LocaleEN]
	}
	msg, ok := table[key]
	if !ok {
		return "??" + key + "??"
	}
	if len(args) == 0 {
		return msg
	}
	return fmt.Sprintf(msg, args...)
}
