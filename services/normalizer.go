package services

import (
	"regexp"
	"sort"
	"strings"
)

var (
	// urlMentionRegexp matches URL-like and @-mention tokens.
	urlMentionRegexp = regexp.MustCompile(`http\S+|www\S+|@\w+`)
	// nonWordRegexp matches anything that is not a word character or whitespace.
	nonWordRegexp = regexp.MustCompile(`[^\w\s]`)
	// whitespaceRegexp matches runs of whitespace.
	whitespaceRegexp = regexp.MustCompile(`\s+`)
)

// NormalizeText lowercases, strips URLs/handles/punctuation and collapses
// whitespace. Deterministic and pure; empty input normalizes to "".
func NormalizeText(text string) string {
	text = strings.ToLower(text)
	text = urlMentionRegexp.ReplaceAllString(text, "")
	text = nonWordRegexp.ReplaceAllString(text, " ")
	text = whitespaceRegexp.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// TopKeywords returns the n most frequent words longer than minLen runes in
// the (already normalized) text. Frequency ties break by first occurrence,
// so results are reproducible.
func TopKeywords(text string, n, minLen int) []string {
	words := strings.Fields(text)

	type wordStat struct {
		word  string
		count int
		first int
	}

	index := make(map[string]*wordStat)
	var stats []*wordStat
	for i, w := range words {
		if len([]rune(w)) <= minLen {
			continue
		}
		if st, ok := index[w]; ok {
			st.count++
			continue
		}
		st := &wordStat{word: w, count: 1, first: i}
		index[w] = st
		stats = append(stats, st)
	}

	sort.SliceStable(stats, func(i, j int) bool {
		if stats[i].count != stats[j].count {
			return stats[i].count > stats[j].count
		}
		return stats[i].first < stats[j].first
	})

	if len(stats) > n {
		stats = stats[:n]
	}
	keywords := make([]string, len(stats))
	for i, st := range stats {
		keywords[i] = st.word
	}
	return keywords
}
