package script

// Original is the target selector meaning "return the input unchanged".
const Original = "Original"

// A zero ID means the label or selector has no script to convert with.
var sourceTable = map[WritingSystem]ID{
	Devanagari: IDDevanagari,
	Marathi:    IDDevanagari,
	Nepali:     IDDevanagari,
	Bengali:    IDBengali,
	Odia:       IDOriya,
	Gujarati:   IDGujarati,
	Punjabi:    IDGurmukhi,
	Tamil:      IDTamil,
	Telugu:     IDTelugu,
	Kannada:    IDKannada,
	Malayalam:  IDMalayalam,
	English:    IDISO,
	Unknown:    "",
}

var targetTable = map[string]ID{
	"Devanagari": IDDevanagari,
	"Bengali":    IDBengali,
	"Odia":       IDOriya,
	"Gujarati":   IDGujarati,
	"Punjabi":    IDGurmukhi,
	"Tamil":      IDTamil,
	"Telugu":     IDTelugu,
	"Kannada":    IDKannada,
	"Malayalam":  IDMalayalam,
	"English":    IDISO,
	"Latin":      IDISO,
	Original:     "",
}

// Display order for Labels and Selectors.
var (
	labelOrder = []WritingSystem{
		Devanagari, Marathi, Nepali, Bengali, Odia, Gujarati, Punjabi,
		Tamil, Telugu, Kannada, Malayalam, English, Unknown,
	}
	selectorOrder = []string{
		"Devanagari", "Bengali", "Odia", "Gujarati", "Punjabi",
		"Tamil", "Telugu", "Kannada", "Malayalam", "English", "Latin", Original,
	}
)

// SourceScript resolves a detected label. ok is false for unknown labels and
// for labels that cannot be used as a conversion source.
func SourceScript(w WritingSystem) (id ID, ok bool) {
	id = sourceTable[w]
	return id, id != ""
}

// TargetScript resolves a user-supplied selector. ok is false for unknown
// selectors and for Original.
func TargetScript(selector string) (id ID, ok bool) {
	id = targetTable[selector]
	return id, id != ""
}

// IsOriginal reports whether selector asks for no conversion.
func IsOriginal(selector string) bool { return selector == Original }

// Labels lists every declared writing system label.
func Labels() []WritingSystem {
	return append([]WritingSystem(nil), labelOrder...)
}

// Selectors lists every declared target selector, Original included.
func Selectors() []string {
	return append([]string(nil), selectorOrder...)
}
