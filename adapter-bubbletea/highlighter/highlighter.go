package highlighter

import (
	"log"
	"sync"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/ionut-t/goline/core"
	"github.com/rivo/uniseg"
)

// Highlighter classifies lines with a chroma lexer. It implements core.Classifier.
type Highlighter struct {
	lexer      chroma.Lexer
	language   string
	cachedText string // text of the last classified line
	cache      []core.Class
	cacheMutex sync.RWMutex
}

// New creates a highlighter for language, a chroma lexer name, alias or
// file name. Unknown languages use the fallback lexer.
func New(language string) *Highlighter {
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Fallback
	}

	lexer = chroma.Coalesce(lexer)

	return &Highlighter{
		lexer:    lexer,
		language: language,
	}
}

// Language returns the name of the resolved lexer.
func (h *Highlighter) Language() string {
	if cfg := h.lexer.Config(); cfg != nil {
		return cfg.Name
	}
	return h.language
}

// InvalidateCache clears the class cache.
func (h *Highlighter) InvalidateCache() {
	h.cacheMutex.Lock()
	defer h.cacheMutex.Unlock()
	h.cachedText = ""
	h.cache = nil
}

// Classify returns one class per grapheme cluster of text.
// Only the most recent line is cached.
func (h *Highlighter) Classify(text string) []core.Class {
	if text == "" {
		return nil
	}

	h.cacheMutex.RLock()
	if h.cache != nil && h.cachedText == text {
		classes := h.cache
		h.cacheMutex.RUnlock()
		return classes
	}
	h.cacheMutex.RUnlock()

	classes := h.classify(text)

	h.cacheMutex.Lock()
	h.cachedText = text
	h.cache = classes
	h.cacheMutex.Unlock()

	return classes
}

func (h *Highlighter) classify(text string) []core.Class {
	byteClasses := make([]core.Class, len(text))

	iterator, err := h.lexer.Tokenise(nil, text)
	if err != nil {
		log.Printf("highlighter: tokenise %s: %v", h.Language(), err)
	} else {
		offset := 0
		for _, token := range iterator.Tokens() {
			if offset >= len(text) {
				break
			}
			end := min(offset+len(token.Value), len(text))
			class := ClassForToken(token.Type)
			for i := offset; i < end; i++ {
				byteClasses[i] = class
			}
			offset = end
		}
	}

	// A cluster takes the class of its first byte.
	classes := make([]core.Class, 0, len(text))
	state := -1
	offset := 0
	var cluster string
	for rest := text; len(rest) > 0; {
		cluster, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
		classes = append(classes, byteClasses[offset])
		offset += len(cluster)
	}
	return classes
}

// ClassForToken maps a chroma token type to a highlight class.
func ClassForToken(tokenType chroma.TokenType) core.Class {
	switch {
	case tokenType.InSubCategory(chroma.LiteralNumber):
		return core.Number
	case tokenType.InSubCategory(chroma.LiteralString):
		return core.String
	case tokenType.InCategory(chroma.Comment):
		return core.Comment
	case tokenType.InCategory(chroma.Keyword):
		return core.Keyword
	case tokenType.InCategory(chroma.Operator):
		return core.Operator
	default:
		return core.None
	}
}
