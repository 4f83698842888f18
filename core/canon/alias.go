package canon

import "strings"

// aliasTable maps lowercase spellings and abbreviations to canonical names.
// Multiple aliases may point at one canonical name; the inverse is a data
// bug and is checked by tests. Numbered books also get roman-numeral and
// unspaced variants, generated in init.
var aliasTable = map[string]string{
	// Genesis
	"gen": "Genesis", "ge": "Genesis", "gn": "Genesis",
	// Exodus
	"exod": "Exodus", "exo": "Exodus", "ex": "Exodus",
	// Leviticus
	"lev": "Leviticus", "le": "Leviticus", "lv": "Leviticus",
	// Numbers
	"num": "Numbers", "nu": "Numbers", "nm": "Numbers", "nb": "Numbers",
	// Deuteronomy
	"deut": "Deuteronomy", "deu": "Deuteronomy", "dt": "Deuteronomy",
	// Joshua
	"josh": "Joshua", "jos": "Joshua", "jsh": "Joshua",
	// Judges
	"judg": "Judges", "jdg": "Judges", "jg": "Judges", "jdgs": "Judges",
	// Ruth
	"rth": "Ruth", "ru": "Ruth",
	// 1-2 Samuel
	"1 sam": "1 Samuel", "1 sa": "1 Samuel", "1 sm": "1 Samuel",
	"2 sam": "2 Samuel", "2 sa": "2 Samuel", "2 sm": "2 Samuel",
	// 1-2 Kings
	"1 kgs": "1 Kings", "1 ki": "1 Kings", "1 kin": "1 Kings",
	"2 kgs": "2 Kings", "2 ki": "2 Kings", "2 kin": "2 Kings",
	// 1-2 Chronicles
	"1 chr": "1 Chronicles", "1 ch": "1 Chronicles", "1 chron": "1 Chronicles",
	"2 chr": "2 Chronicles", "2 ch": "2 Chronicles", "2 chron": "2 Chronicles",
	// Ezra
	"ezr": "Ezra",
	// Nehemiah
	"neh": "Nehemiah", "ne": "Nehemiah",
	// Esther
	"esth": "Esther", "est": "Esther", "es": "Esther",
	// Job
	"jb": "Job",
	// Psalms
	"ps": "Psalms", "psa": "Psalms", "psalm": "Psalms", "pslm": "Psalms", "psm": "Psalms",
	// Proverbs
	"prov": "Proverbs", "pro": "Proverbs", "prv": "Proverbs", "pr": "Proverbs",
	// Ecclesiastes
	"eccl": "Ecclesiastes", "ecc": "Ecclesiastes", "ec": "Ecclesiastes", "qoh": "Ecclesiastes",
	// Song of Solomon
	"song": "Song of Solomon", "song of songs": "Song of Solomon",
	"sos": "Song of Solomon", "so": "Song of Solomon", "canticles": "Song of Solomon",
	"cant": "Song of Solomon",
	// Isaiah
	"isa": "Isaiah", "is": "Isaiah",
	// Jeremiah
	"jer": "Jeremiah", "je": "Jeremiah", "jr": "Jeremiah",
	// Lamentations
	"lam": "Lamentations", "la": "Lamentations",
	// Ezekiel
	"ezek": "Ezekiel", "eze": "Ezekiel", "ezk": "Ezekiel",
	// Daniel
	"dan": "Daniel", "da": "Daniel", "dn": "Daniel",
	// Hosea
	"hos": "Hosea", "ho": "Hosea",
	// Joel
	"jl": "Joel", "joe": "Joel",
	// Amos
	"am": "Amos", "amo": "Amos",
	// Obadiah
	"obad": "Obadiah", "oba": "Obadiah", "ob": "Obadiah",
	// Jonah
	"jon": "Jonah", "jnh": "Jonah",
	// Micah
	"mic": "Micah", "mc": "Micah",
	// Nahum
	"nah": "Nahum", "na": "Nahum",
	// Habakkuk
	"hab": "Habakkuk", "hb": "Habakkuk",
	// Zephaniah
	"zeph": "Zephaniah", "zep": "Zephaniah", "zp": "Zephaniah",
	// Haggai
	"hag": "Haggai", "hg": "Haggai",
	// Zechariah
	"zech": "Zechariah", "zec": "Zechariah", "zc": "Zechariah",
	// Malachi
	"mal": "Malachi", "ml": "Malachi",
	// Matthew
	"matt": "Matthew", "mat": "Matthew", "mt": "Matthew",
	// Mark
	"mrk": "Mark", "mk": "Mark", "mr": "Mark",
	// Luke
	"luk": "Luke", "lk": "Luke",
	// John
	"joh": "John", "jhn": "John", "jn": "John",
	// Acts
	"act": "Acts", "ac": "Acts",
	// Romans
	"rom": "Romans", "ro": "Romans", "rm": "Romans",
	// 1-2 Corinthians
	"1 cor": "1 Corinthians", "1 co": "1 Corinthians",
	"2 cor": "2 Corinthians", "2 co": "2 Corinthians",
	// Galatians
	"gal": "Galatians", "ga": "Galatians",
	// Ephesians
	"eph": "Ephesians", "ephes": "Ephesians",
	// Philippians
	"phil": "Philippians", "php": "Philippians", "pp": "Philippians",
	// Colossians
	"col": "Colossians",
	// 1-2 Thessalonians
	"1 thess": "1 Thessalonians", "1 thes": "1 Thessalonians", "1 th": "1 Thessalonians",
	"2 thess": "2 Thessalonians", "2 thes": "2 Thessalonians", "2 th": "2 Thessalonians",
	// 1-2 Timothy
	"1 tim": "1 Timothy", "1 ti": "1 Timothy",
	"2 tim": "2 Timothy", "2 ti": "2 Timothy",
	// Titus
	"tit": "Titus", "ti": "Titus",
	// Philemon
	"phlm": "Philemon", "phm": "Philemon", "pm": "Philemon",
	// Hebrews
	"heb": "Hebrews",
	// James
	"jas": "James", "jm": "James",
	// 1-2 Peter
	"1 pet": "1 Peter", "1 pe": "1 Peter", "1 pt": "1 Peter",
	"2 pet": "2 Peter", "2 pe": "2 Peter", "2 pt": "2 Peter",
	// 1-3 John
	"1 john": "1 John", "1 jn": "1 John", "1 jhn": "1 John",
	"2 john": "2 John", "2 jn": "2 John", "2 jhn": "2 John",
	"3 john": "3 John", "3 jn": "3 John", "3 jhn": "3 John",
	// Jude
	"jud": "Jude", "jd": "Jude",
	// Revelation
	"rev": "Revelation", "re": "Revelation", "apocalypse": "Revelation",
}

// romanPrefixes maps arabic book-number prefixes to their roman spellings.
var romanPrefixes = map[string][]string{
	"1": {"i"},
	"2": {"ii"},
	"3": {"iii"},
}

func init() {
	// Every canonical name is its own alias.
	for _, b := range books {
		aliasTable[strings.ToLower(b.Name)] = b.Name
	}

	// Numbered-book variants: "1 sam" also as "1sam", "i sam", "i sa", etc.
	variants := make(map[string]string)
	for alias, name := range aliasTable {
		if len(alias) < 2 || alias[0] < '1' || alias[0] > '3' || alias[1] != ' ' {
			continue
		}
		rest := alias[2:]
		variants[alias[:1]+rest] = name
		for _, roman := range romanPrefixes[alias[:1]] {
			variants[roman+" "+rest] = name
			variants[roman+rest] = name
		}
	}
	for alias, name := range variants {
		if _, exists := aliasTable[alias]; !exists {
			aliasTable[alias] = name
		}
	}
}
