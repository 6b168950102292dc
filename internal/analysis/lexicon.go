package analysis

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Emotion is a detected emotional category.
type Emotion string

const (
	EmotionAnxiety    Emotion = "anxiety"
	EmotionDepression Emotion = "depression"
	EmotionAnger      Emotion = "anger"
	EmotionJoy        Emotion = "joy"
	EmotionGratitude  Emotion = "gratitude"
)

// EmotionOrder is the fixed iteration order for emotion categories. Dominant-emotion
// tie-breaks follow this order, so it must stay stable.
var EmotionOrder = []Emotion{
	EmotionAnxiety,
	EmotionDepression,
	EmotionAnger,
	EmotionJoy,
	EmotionGratitude,
}

// Lexicon holds the word-weight maps and phrase lists the analyzer matches against.
// It is built once at startup and read-only afterwards.
type Lexicon struct {
	PositiveWords  map[string]float64   `yaml:"positive_words"`
	NegativeWords  map[string]float64   `yaml:"negative_words"`
	EmotionKeyword map[Emotion][]string `yaml:"emotion_keywords"`
	CrisisHigh     []string             `yaml:"crisis_high"`
	CrisisMedium   []string             `yaml:"crisis_medium"`
	CrisisLow      []string             `yaml:"crisis_low"`
	StopWords      map[string]bool      `yaml:"-"`
	StopWordList   []string             `yaml:"stop_words"`
}

// DefaultLexicon returns the built-in lexicon tables.
func DefaultLexicon() *Lexicon {
	lex := &Lexicon{
		PositiveWords: map[string]float64{
			"good": 1, "nice": 1, "fine": 1, "okay": 1, "calm": 1, "fun": 1,
			"better": 1, "relaxed": 1, "rested": 1, "hopeful": 1.5, "happy": 1.5,
			"glad": 1.5, "excited": 1.5, "proud": 1.5, "peaceful": 1.5, "great": 1.5,
			"love": 2, "loved": 2, "amazing": 2, "wonderful": 2, "awesome": 2,
			"fantastic": 2, "grateful": 2, "thankful": 2, "blessed": 2, "joy": 2,
			"joyful": 2, "thrilled": 2, "delighted": 2,
		},
		NegativeWords: map[string]float64{
			"bad": -1, "tired": -1, "bored": -1, "meh": -1, "annoyed": -1,
			"sad": -1.5, "angry": -1.5, "upset": -1.5, "worried": -1.5, "anxious": -1.5,
			"stressed": -1.5, "scared": -1.5, "afraid": -1.5, "hurt": -1.5, "frustrated": -1.5,
			"hate": -2, "terrible": -2, "awful": -2, "horrible": -2, "lonely": -2,
			"overwhelmed": -2, "empty": -2, "numb": -2, "crying": -2,
			"depressed": -2.5, "miserable": -2.5, "useless": -2.5, "exhausted": -2,
			"hopeless": -3, "worthless": -3, "suicidal": -3,
		},
		EmotionKeyword: map[Emotion][]string{
			EmotionAnxiety: {
				"anxious", "anxiety", "worried", "worry", "nervous", "panic",
				"panicking", "afraid", "scared", "overwhelmed", "restless",
				"on edge", "tense", "racing thoughts",
			},
			EmotionDepression: {
				"depressed", "depression", "sad", "down", "empty", "numb",
				"hopeless", "crying", "lonely", "miserable", "worthless",
				"no energy", "exhausted",
			},
			EmotionAnger: {
				"angry", "anger", "mad", "furious", "frustrated", "annoyed",
				"irritated", "rage", "hate", "fed up",
			},
			EmotionJoy: {
				"happy", "joy", "excited", "great", "amazing", "wonderful",
				"fantastic", "thrilled", "delighted", "awesome",
			},
			EmotionGratitude: {
				"grateful", "gratitude", "thankful", "thanks", "thank you",
				"appreciate", "blessed",
			},
		},
		CrisisHigh: []string{
			"want to die", "kill myself", "end my life", "suicide", "suicidal",
			"better off dead", "end it all", "hurt myself", "harm myself",
			"self harm", "no reason to live", "don't want to be here anymore",
		},
		CrisisMedium: []string{
			"hopeless", "can't go on", "cant go on", "give up on everything",
			"no point anymore", "nothing matters", "can't take it anymore",
			"cant take it anymore", "want to disappear",
		},
		CrisisLow: []string{
			"breaking down", "falling apart", "can't cope", "cant cope",
			"too much for me", "at my limit", "losing control",
		},
		StopWordList: []string{
			"the", "and", "for", "are", "but", "not", "you", "all", "can", "had",
			"her", "was", "one", "our", "out", "day", "get", "has", "him", "his",
			"how", "its", "may", "new", "now", "old", "see", "two", "way", "who",
			"did", "yes", "this", "that", "with", "have", "from", "they", "been",
			"were", "them", "then", "than", "some", "very", "when", "what", "your",
			"will", "would", "could", "should", "about", "just", "like", "know",
			"really", "because", "there", "here", "into", "over", "only", "also",
			"too", "got", "she", "feel", "feeling", "feels", "today", "want",
			"dont", "cant", "ive", "youre",
		},
	}
	lex.buildStopWords()
	return lex
}

// LoadLexicon reads lexicon overrides from a YAML file, merging onto the defaults.
// Sections left empty in the file keep the built-in tables.
func LoadLexicon(path string) (*Lexicon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read lexicon file: %w", err)
	}

	var override Lexicon
	if err := yaml.Unmarshal(data, &override); err != nil {
		return nil, fmt.Errorf("failed to parse lexicon file: %w", err)
	}

	lex := DefaultLexicon()
	if len(override.PositiveWords) > 0 {
		lex.PositiveWords = override.PositiveWords
	}
	if len(override.NegativeWords) > 0 {
		lex.NegativeWords = override.NegativeWords
	}
	if len(override.EmotionKeyword) > 0 {
		lex.EmotionKeyword = override.EmotionKeyword
	}
	if len(override.CrisisHigh) > 0 {
		lex.CrisisHigh = override.CrisisHigh
	}
	if len(override.CrisisMedium) > 0 {
		lex.CrisisMedium = override.CrisisMedium
	}
	if len(override.CrisisLow) > 0 {
		lex.CrisisLow = override.CrisisLow
	}
	if len(override.StopWordList) > 0 {
		lex.StopWordList = override.StopWordList
	}
	lex.buildStopWords()
	return lex, nil
}

func (l *Lexicon) buildStopWords() {
	l.StopWords = make(map[string]bool, len(l.StopWordList))
	for _, w := range l.StopWordList {
		l.StopWords[w] = true
	}
}
