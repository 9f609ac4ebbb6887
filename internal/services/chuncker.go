package services

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

type TextChuncker interface {
	ChunkText(text string, maxChunkSize int, overlap int) []string
}

type textChunker struct{}

func NewTextChunker() TextChuncker {
	return &textChunker{}
}

// ChunkText implements TextChuncker. Chunks break on sentence boundaries and
// fall back to word boundaries for sentences longer than maxChunkSize runes.
// Overlap carries the trailing runes of a chunk into the next one.
func (tc *textChunker) ChunkText(text string, maxChunkSize int, overlap int) []string {
	if maxChunkSize <= 0 {
		maxChunkSize = 4000
	}
	if overlap < 0 {
		overlap = 0
	}
	if overlap >= maxChunkSize {
		overlap = maxChunkSize / 4
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	if utf8.RuneCountInString(text) <= maxChunkSize {
		return []string{text}
	}

	var pieces []string
	for _, sentence := range splitIntoSentences(text) {
		if utf8.RuneCountInString(sentence) <= maxChunkSize {
			pieces = append(pieces, sentence)
			continue
		}
		pieces = append(pieces, strings.Fields(sentence)...)
	}

	var chunks []string
	var currentChunk strings.Builder
	currentLen := 0

	for _, piece := range pieces {
		pieceLen := utf8.RuneCountInString(piece)

		if currentLen > 0 && currentLen+pieceLen+1 > maxChunkSize {
			chunks = append(chunks, currentChunk.String())

			currentChunk.Reset()
			currentLen = 0
			if overlap > 0 {
				overlapText := strings.TrimSpace(getLastNChars(chunks[len(chunks)-1], overlap))
				currentChunk.WriteString(overlapText)
				currentLen = utf8.RuneCountInString(overlapText)
			}
		}

		if currentLen > 0 {
			currentChunk.WriteString(" ")
			currentLen++
		}
		currentChunk.WriteString(piece)
		currentLen += pieceLen
	}

	if currentLen > 0 {
		chunks = append(chunks, currentChunk.String())
	}

	return chunks
}

// splitIntoSentences splits after '.', '!' or '?' when followed by whitespace,
// keeping the terminator so emails and versions stay intact.
func splitIntoSentences(text string) []string {
	var result []string
	start := 0
	runes := []rune(text)

	for i, r := range runes {
		if r != '.' && r != '!' && r != '?' {
			continue
		}
		if i+1 < len(runes) && !unicode.IsSpace(runes[i+1]) {
			continue
		}
		if s := strings.TrimSpace(string(runes[start : i+1])); s != "" {
			result = append(result, s)
		}
		start = i + 1
	}
	if s := strings.TrimSpace(string(runes[start:])); s != "" {
		result = append(result, s)
	}

	return result
}

func getLastNChars(text string, n int) string {
	if n <= 0 {
		return ""
	}

	runes := []rune(text)
	if len(runes) <= n {
		return text
	}

	return string(runes[len(runes)-n:])
}
