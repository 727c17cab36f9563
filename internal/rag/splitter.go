package rag

import "strings"

// Splitter breaks document text into overlapping chunks, preferring to cut
// at paragraph, then line, then word boundaries before falling back to a
// hard character cut.
type Splitter struct {
	ChunkSize    int // Maximum chunk length in runes. Zero means 1000.
	ChunkOverlap int // Carried over between neighboring chunks. Zero means 200.
}

var separators = []string{"\n\n", "\n", " "}

func (s Splitter) size() int {
	if s.ChunkSize <= 0 {
		return 1000
	}
	return s.ChunkSize
}

func (s Splitter) overlap() int {
	if s.ChunkOverlap < 0 {
		return 0
	}
	if s.ChunkOverlap == 0 {
		return 200
	}
	// Overlap must leave room for progress.
	if s.ChunkOverlap >= s.size() {
		return s.size() / 2
	}
	return s.ChunkOverlap
}

// Split chunks text. Short input comes back as a single chunk; empty or
// whitespace-only input yields nothing.
func (s Splitter) Split(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	runes := []rune(text)
	size, overlap := s.size(), s.overlap()
	if len(runes) <= size {
		return []string{text}
	}

	var chunks []string
	start := 0
	for start < len(runes) {
		end := start + size
		if end >= len(runes) {
			end = len(runes)
		} else {
			end = splitPoint(runes, start, end)
		}

		chunk := strings.TrimSpace(string(runes[start:end]))
		if chunk != "" {
			chunks = append(chunks, chunk)
		}
		if end == len(runes) {
			break
		}

		next := end - overlap
		if next <= start {
			next = start + 1
		}
		start = next
	}
	return chunks
}

// splitPoint searches backward from end for the best boundary, trying each
// separator in preference order. A boundary in the first half of the window
// is worse than a hard cut.
func splitPoint(runes []rune, start, end int) int {
	window := string(runes[start:end])
	half := len(window) / 2

	for _, sep := range separators {
		if idx := strings.LastIndex(window, sep); idx > half {
			return start + len([]rune(window[:idx+len(sep)]))
		}
	}
	return end
}
