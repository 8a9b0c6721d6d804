// Package chunker 将长文本切分为适合单次模型调用的分块
package chunker

import (
	"strings"
	"unicode/utf8"
)

// DefaultMaxLength 默认分块长度（字符数）
const DefaultMaxLength = 3000

// Split 按单词边界切分文本，每块拼接后不超过 maxLength 个字符。
// 单个超长单词独占一块，不会被截断。空文本返回空切片。
func Split(text string, maxLength int) []string {
	if maxLength <= 0 {
		panic("chunker: maxLength must be positive")
	}

	var chunks []string
	var buf []string
	bufLen := 0

	for _, word := range strings.Fields(text) {
		wordLen := utf8.RuneCountInString(word)
		if len(buf) > 0 && bufLen+1+wordLen > maxLength {
			chunks = append(chunks, strings.Join(buf, " "))
			buf = buf[:0]
			bufLen = 0
		}
		if len(buf) > 0 {
			bufLen++
		}
		buf = append(buf, word)
		bufLen += wordLen
	}

	if len(buf) > 0 {
		chunks = append(chunks, strings.Join(buf, " "))
	}
	return chunks
}
