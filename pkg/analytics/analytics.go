// Package analytics derives qualitative signals from search-term text:
// word frequencies for spotting recurring customer intent, and language
// distribution for campaigns that attract searches in several locales.
package analytics

import (
	"sort"
	"strings"

	"github.com/pemistahl/lingua-go"
)

// noiseWords are tokens that carry no intent signal in ad search terms.
var noiseWords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "are": {}, "at": {}, "be": {}, "by": {},
	"can": {}, "do": {}, "for": {}, "from": {}, "get": {}, "how": {},
	"i": {}, "in": {}, "is": {}, "it": {}, "me": {}, "my": {}, "of": {},
	"on": {}, "or": {}, "the": {}, "to": {}, "what": {}, "where": {},
	"who": {}, "why": {}, "with": {}, "you": {}, "your": {},

	// Generic ad vocabulary that appears in almost every term.
	"ad": {}, "ads": {}, "near": {}, "nearby": {}, "online": {},
	"services": {}, "company": {}, "companies": {},
}

// defaultLanguages bounds the lingua detector. Narrowing the candidate set
// keeps short-phrase detection usable; search terms are rarely longer than
// a few words.
var defaultLanguages = []lingua.Language{
	lingua.English,
	lingua.Spanish,
	lingua.French,
	lingua.German,
	lingua.Portuguese,
}

// WordCount is one entry of a frequency ranking.
type WordCount struct {
	Word  string `json:"word" yaml:"word"`
	Count int    `json:"count" yaml:"count"`
}

// Analytics computes term-text statistics. The zero value is not usable;
// construct with New.
type Analytics struct {
	detector lingua.LanguageDetector
}

// New builds an Analytics with a language detector over the given
// candidate languages (defaultLanguages when none are given).
func New(languages ...lingua.Language) *Analytics {
	if len(languages) == 0 {
		languages = defaultLanguages
	}
	return &Analytics{
		detector: lingua.NewLanguageDetectorBuilder().
			FromLanguages(languages...).
			Build(),
	}
}

// WordFrequency counts non-noise words across all terms.
func (a *Analytics) WordFrequency(terms []string) map[string]int {
	frequencies := make(map[string]int)
	for _, term := range terms {
		for _, word := range strings.Fields(strings.ToLower(term)) {
			word = strings.TrimFunc(word, func(r rune) bool {
				return ('a' > r || r > 'z') && ('0' > r || r > '9')
			})
			if word == "" {
				continue
			}
			if _, noisy := noiseWords[word]; noisy {
				continue
			}
			frequencies[word]++
		}
	}
	return frequencies
}

// TopWords returns the n most frequent non-noise words, count descending,
// ties broken alphabetically for stable output.
func (a *Analytics) TopWords(terms []string, n int) []WordCount {
	frequencies := a.WordFrequency(terms)

	counts := make([]WordCount, 0, len(frequencies))
	for word, count := range frequencies {
		counts = append(counts, WordCount{Word: word, Count: count})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].Word < counts[j].Word
	})

	if len(counts) > n {
		counts = counts[:n]
	}
	return counts
}

// LanguageDistribution detects the language of each term and tallies the
// results. Terms the detector cannot classify land in the "unknown"
// bucket. The counts always sum to len(terms).
func (a *Analytics) LanguageDistribution(terms []string) map[string]int {
	dist := make(map[string]int)
	for _, term := range terms {
		lang, ok := a.detector.DetectLanguageOf(term)
		if !ok {
			dist["unknown"]++
			continue
		}
		dist[lang.String()]++
	}
	return dist
}
