// Package wordcloud renders review text into word-cloud images. The
// analyzer only depends on the Renderer capability, so the rasterizer can be
// swapped or disabled without touching the pipeline.
package wordcloud

import (
	"fmt"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/psykhi/wordclouds"
)

// Renderer turns text into an image file and returns its path. An empty
// path with a nil error means rendering was skipped.
type Renderer interface {
	Render(text, name string) (string, error)
}

// Words that dominate review text without carrying meaning: Tagalog
// particles plus common English fillers.
var stopwords = map[string]struct{}{
	"ang": {}, "ng": {}, "sa": {}, "na": {}, "at": {}, "mga": {}, "para": {},
	"ko": {}, "mo": {}, "po": {}, "yung": {}, "lang": {}, "naman": {}, "pa": {},
	"din": {}, "rin": {}, "kasi": {}, "yan": {}, "yun": {},
	"the": {}, "and": {}, "is": {}, "it": {}, "to": {}, "of": {}, "a": {},
	"in": {}, "for": {}, "on": {}, "very": {}, "so": {}, "got": {}, "just": {},
	"really": {}, "much": {}, "good": {},
}

var unsafeNameRegexp = regexp.MustCompile(`[^\w\s-]`)

const (
	imageWidth  = 800
	imageHeight = 400
	maxWords    = 100
	maxNameLen  = 50
)

// PNGRenderer rasterizes word clouds to PNG files in a fixed directory.
type PNGRenderer struct {
	outputDir string
	fontPath  string
}

// NewPNGRenderer creates a renderer writing into outputDir using the given
// TTF font. Rendering is skipped (not failed) when no font is configured.
func NewPNGRenderer(outputDir, fontPath string) *PNGRenderer {
	return &PNGRenderer{outputDir: outputDir, fontPath: fontPath}
}

// Render draws the word cloud for the text and writes
// <safe-name>_wordcloud.png. Empty text or a missing font skips rendering.
func (r *PNGRenderer) Render(text, name string) (string, error) {
	if strings.TrimSpace(text) == "" || r.fontPath == "" {
		return "", nil
	}
	if _, err := os.Stat(r.fontPath); err != nil {
		return "", nil
	}

	counts := wordCounts(text)
	if len(counts) == 0 {
		return "", nil
	}

	if err := os.MkdirAll(r.outputDir, 0755); err != nil {
		return "", fmt.Errorf("wordcloud: create output dir: %w", err)
	}

	cloud := wordclouds.NewWordcloud(counts,
		wordclouds.FontFile(r.fontPath),
		wordclouds.Width(imageWidth),
		wordclouds.Height(imageHeight),
		wordclouds.FontMinSize(12),
		wordclouds.FontMaxSize(64),
		wordclouds.BackgroundColor(color.White),
	)
	img := cloud.Draw()

	path := filepath.Join(r.outputDir, safeName(name)+"_wordcloud.png")
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("wordcloud: create %q: %w", path, err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return "", fmt.Errorf("wordcloud: encode png: %w", err)
	}
	return path, nil
}

// wordCounts builds the frequency map fed to the rasterizer, dropping
// stopwords and capping at the most frequent words.
func wordCounts(text string) map[string]int {
	counts := make(map[string]int)
	for _, w := range strings.Fields(text) {
		if _, skip := stopwords[w]; skip {
			continue
		}
		counts[w]++
	}

	if len(counts) <= maxWords {
		return counts
	}

	type wc struct {
		word  string
		count int
	}
	all := make([]wc, 0, len(counts))
	for w, c := range counts {
		all = append(all, wc{w, c})
	}
	sort.Slice(all, func(i, j int) bool { return all[i].count > all[j].count })

	top := make(map[string]int, maxWords)
	for _, e := range all[:maxWords] {
		top[e.word] = e.count
	}
	return top
}

func safeName(name string) string {
	safe := unsafeNameRegexp.ReplaceAllString(name, "")
	safe = strings.TrimSpace(safe)
	if len(safe) > maxNameLen {
		safe = safe[:maxNameLen]
	}
	if safe == "" {
		safe = "product"
	}
	return safe
}
