// Package naming 公司名称的规范化与基于域名的兜底识别
package naming

import (
	"net"
	"net/url"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/Matan-123/competitor_radar/app/competitor_radar/pkg/model"
)

// Normalize 将原始名称转换为展示名称：
// 在驼峰拼接处插入空格（"ProfitGym" -> "Profit Gym"），合并多余空白，
// 若结果仍是单个单词则只大写首字母。
// 只在小写字母或数字之后的大写字母前断开，连续大写的缩写保持不变（"IBM" 不变，"OpenAI" -> "Open AI"）。
func Normalize(raw string) string {
	var sb strings.Builder
	var prev rune
	for i, r := range strings.TrimSpace(raw) {
		if i > 0 && unicode.IsUpper(r) && (unicode.IsLower(prev) || unicode.IsDigit(prev)) {
			sb.WriteRune(' ')
		}
		sb.WriteRune(r)
		prev = r
	}

	name := strings.Join(strings.Fields(sb.String()), " ")
	if name == "" || strings.Contains(name, " ") {
		return name
	}

	first, size := utf8.DecodeRuneInString(name)
	return string(unicode.ToUpper(first)) + name[size:]
}

var commonSubdomains = map[string]bool{
	"www": true, "m": true, "amp": true, "mobile": true,
	"en": true, "blog": true, "news": true,
}

var genericSecondLevel = map[string]bool{
	"co": true, "com": true, "org": true, "net": true,
	"ac": true, "gov": true, "edu": true,
}

var denylist = map[string]bool{
	"": true, "com": true, "org": true, "co": true,
	"net": true, "www": true, "localhost": true,
}

// FromHost 从 URL 的主机名推断公司名称，无法推断时返回 model.UnknownCompany
func FromHost(rawURL string) string {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return model.UnknownCompany
	}

	host := strings.ToLower(u.Hostname())
	if host == "" || net.ParseIP(host) != nil {
		return model.UnknownCompany
	}

	labels := strings.Split(strings.Trim(host, "."), ".")
	for len(labels) > 1 && commonSubdomains[labels[0]] {
		labels = labels[1:]
	}
	if len(labels) > 1 {
		labels = labels[:len(labels)-1]
	}
	for len(labels) > 1 && genericSecondLevel[labels[len(labels)-1]] {
		labels = labels[:len(labels)-1]
	}

	label := labels[len(labels)-1]
	if denylist[label] {
		return model.UnknownCompany
	}

	label = strings.NewReplacer("-", " ", "_", " ").Replace(label)
	return Normalize(capitalizeWords(label))
}

func capitalizeWords(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		first, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(first)) + w[size:]
	}
	return strings.Join(words, " ")
}

var legalSuffixes = []string{
	"ltd", "ltd.", "limited", "inc", "inc.", "incorporated", "llc", "l.l.c.",
	"corp", "corp.", "corporation", "co.", "gmbh", "plc", "s.a.", "sa", "ag",
	"bv", "b.v.", "pty", "בע\"מ", "בעמ",
}

// StripLegalSuffix 去掉名称末尾的公司法律形式后缀，例如 "Acme Ltd." -> "Acme"
func StripLegalSuffix(name string) string {
	words := strings.Fields(name)
	for len(words) > 1 {
		last := strings.ToLower(strings.TrimRight(words[len(words)-1], ","))
		if !isLegalSuffix(last) {
			break
		}
		words = words[:len(words)-1]
	}
	return strings.TrimRight(strings.Join(words, " "), ",")
}

func isLegalSuffix(word string) bool {
	for _, s := range legalSuffixes {
		if word == s {
			return true
		}
	}
	return false
}
