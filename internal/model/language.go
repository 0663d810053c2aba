package model

import "sort"

// LanguageCode identifies a supported language, usually an ISO 639-1 code
// such as "en" or "fr". Reference profile filenames and classifier class
// labels both use it.
type LanguageCode string

// Languages maps language codes to display names. Build one with
// DefaultLanguages and pass it where names are needed; it is read-only once
// handed to the engine.
type Languages map[LanguageCode]string

// Name returns the display name for code, or "Unknown".
func (l Languages) Name(code LanguageCode) string {
	if name, ok := l[code]; ok {
		return name
	}
	return "Unknown"
}

// Codes returns the known codes in lexicographic order.
func (l Languages) Codes() []LanguageCode {
	codes := make([]LanguageCode, 0, len(l))
	for c := range l {
		codes = append(codes, c)
	}
	sort.Slice(codes, func(i, j int) bool { return codes[i] < codes[j] })
	return codes
}

// DefaultLanguages returns a fresh copy of the built-in name table.
func DefaultLanguages() Languages {
	return Languages{
		"en": "English",
		"fr": "French",
		"de": "German",
		"es": "Spanish",
		"it": "Italian",
		"pt": "Portuguese",
		"ru": "Russian",
		"zh": "Chinese",
		"ja": "Japanese",
		"ko": "Korean",
		"ar": "Arabic",
		"hi": "Hindi",
		"bn": "Bengali",
		"pa": "Punjabi",
		"ur": "Urdu",
		"vi": "Vietnamese",
		"th": "Thai",
		"tr": "Turkish",
		"id": "Indonesian",
		"fi": "Finnish",
		"no": "Norwegian",
		"da": "Danish",
		"nl": "Dutch",
		"pl": "Polish",
		"cs": "Czech",
		"hu": "Hungarian",
		"ro": "Romanian",
		"el": "Greek",
		"he": "Hebrew",
		"bg": "Bulgarian",
		"ta": "Tamil",
		"te": "Telugu",
		"gu": "Gujarati",
		"kn": "Kannada",
		"ml": "Malayalam",
		"mr": "Marathi",
		"or": "Odia",
		"as": "Assamese",
		"si": "Sinhala",
		"ne": "Nepali",
		"my": "Burmese",
	}
}
