package entities

// Language is a supported language code as used by the inference services.
type Language string

const (
	LanguageEnglish   Language = "en"
	LanguageHindi     Language = "hi"
	LanguageTamil     Language = "ta"
	LanguageTelugu    Language = "te"
	LanguageKannada   Language = "kn"
	LanguageMalayalam Language = "ml"
	LanguageBengali   Language = "bn"
	LanguageMarathi   Language = "mr"
	LanguageGujarati  Language = "gu"
	LanguagePunjabi   Language = "pa"
	LanguageOdia      Language = "or"
)

// PivotLanguage is the intermediate language all LLM interaction is routed
// through regardless of the user's chosen input/output language.
const PivotLanguage = LanguageEnglish

// scriptCodes maps each supported language to its writing-system tag.
var scriptCodes = map[Language]string{
	LanguageEnglish:   "Latn",
	LanguageHindi:     "Deva",
	LanguageTamil:     "Taml",
	LanguageTelugu:    "Telu",
	LanguageKannada:   "Knda",
	LanguageMalayalam: "Mlym",
	LanguageBengali:   "Beng",
	LanguageMarathi:   "Deva",
	LanguageGujarati:  "Gujr",
	LanguagePunjabi:   "Guru",
	LanguageOdia:      "Orya",
}

// ScriptCode returns the script tag for the language, or the empty string
// when no mapping is known. Services accept an empty script code.
func (l Language) ScriptCode() string {
	return scriptCodes[l]
}

// Supported reports whether the language is one of the fixed supported set.
func (l Language) Supported() bool {
	_, ok := scriptCodes[l]
	return ok
}

// SupportedLanguages returns the fixed set of supported language codes.
func SupportedLanguages() []Language {
	return []Language{
		LanguageEnglish, LanguageHindi, LanguageTamil, LanguageTelugu,
		LanguageKannada, LanguageMalayalam, LanguageBengali, LanguageMarathi,
		LanguageGujarati, LanguagePunjabi, LanguageOdia,
	}
}
