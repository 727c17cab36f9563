package chat

import "strings"

// DefaultKeywords are the query terms that signal the user wants an answer
// grounded in indexed documents. This is a cheap deterministic gate, not a
// semantic classifier.
var DefaultKeywords = []string{
	"เอกสาร", "ไฟล์", "ข้อมูล", "บทความ",
	"หาข้อมูล", "ค้นหา", "มีอะไรบ้าง",
	"จากไฟล์", "ในเอกสาร",
}

// classify reports whether query asks for document-grounded information.
// Matching is case-insensitive substring containment.
func classify(query string, keywords []string) bool {
	lower := strings.ToLower(query)
	for _, kw := range keywords {
		if strings.Contains(lower, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}
