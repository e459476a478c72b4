// Package script classifies text by writing system and maps writing systems
// and user-facing selectors to the script names the transliteration engine
// understands.
package script

// WritingSystem labels the language/script family inferred from a line of text.
type WritingSystem string

const (
	English    WritingSystem = "English"
	Devanagari WritingSystem = "Hindi/Devanagari"
	Marathi    WritingSystem = "Marathi"
	Nepali     WritingSystem = "Nepali"
	Bengali    WritingSystem = "Bengali"
	Odia       WritingSystem = "Odia"
	Gujarati   WritingSystem = "Gujarati"
	Punjabi    WritingSystem = "Punjabi"
	Tamil      WritingSystem = "Tamil"
	Telugu     WritingSystem = "Telugu"
	Kannada    WritingSystem = "Kannada"
	Malayalam  WritingSystem = "Malayalam"
	Unknown    WritingSystem = "Unknown"
)

// Valid reports whether w is one of the declared labels.
func (w WritingSystem) Valid() bool {
	_, ok := sourceTable[w]
	return ok
}

func (w WritingSystem) String() string { return string(w) }

// ID is a script name understood by the transliteration engine.
type ID string

const (
	IDDevanagari ID = "Devanagari"
	IDBengali    ID = "Bengali"
	IDOriya      ID = "Oriya"
	IDGujarati   ID = "Gujarati"
	IDGurmukhi   ID = "Gurmukhi"
	IDTamil      ID = "Tamil"
	IDTelugu     ID = "Telugu"
	IDKannada    ID = "Kannada"
	IDMalayalam  ID = "Malayalam"
	// IDISO is ISO 15919 romanization.
	IDISO ID = "ISO"
)
