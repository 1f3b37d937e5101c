package lexical

// Word lists for the heuristic metrics. Small on purpose: the aggregation
// engine only needs values that stay consistent across one account's emails.

var positiveWords = map[string]bool{
	"great": true, "good": true, "excellent": true, "happy": true,
	"glad": true, "wonderful": true, "fantastic": true, "love": true,
	"perfect": true, "awesome": true, "pleased": true, "excited": true,
	"helpful": true, "appreciate": true, "thanks": true, "thank": true,
}

var negativeWords = map[string]bool{
	"bad": true, "wrong": true, "problem": true, "issue": true,
	"unfortunately": true, "sorry": true, "fail": true, "failed": true,
	"broken": true, "delay": true, "delayed": true, "concern": true,
	"worried": true, "difficult": true, "disappointed": true, "urgent": true,
}

var formalWords = map[string]bool{
	"regarding": true, "pursuant": true, "furthermore": true, "moreover": true,
	"accordingly": true, "therefore": true, "hereby": true, "herein": true,
	"kindly": true, "request": true, "sincerely": true, "respectfully": true,
	"notwithstanding": true, "aforementioned": true,
}

var informalWords = map[string]bool{
	"yeah": true, "yep": true, "nope": true, "gonna": true, "wanna": true,
	"kinda": true, "sorta": true, "cool": true, "stuff": true, "btw": true,
	"lol": true, "hey": true, "ok": true, "okay": true,
}

var jargonWords = map[string]bool{
	"synergy": true, "leverage": true, "bandwidth": true, "alignment": true,
	"stakeholder": true, "stakeholders": true, "deliverable": true,
	"deliverables": true, "actionable": true, "roadmap": true, "pipeline": true,
	"touchpoint": true, "learnings": true, "ideate": true, "paradigm": true,
	"utilize": true, "operationalize": true, "scalable": true,
}

var hedgeWords = map[string]bool{
	"maybe": true, "perhaps": true, "possibly": true, "probably": true,
	"might": true, "could": true, "seems": true, "somewhat": true,
	"roughly": true, "approximately": true, "likely": true, "presumably": true,
}

// hedgePhrases are multi-word hedges counted by substring occurrence.
var hedgePhrases = []string{
	"i think", "i believe", "i guess", "sort of", "kind of", "not sure",
}

var firstPersonWords = map[string]bool{
	"i": true, "me": true, "my": true, "mine": true, "myself": true,
	"we": true, "us": true, "our": true, "ours": true,
	"i'm": true, "i'll": true, "i've": true, "i'd": true, "we're": true,
	"we'll": true, "we've": true,
}

var politeWords = map[string]bool{
	"please": true, "thanks": true, "thank": true, "appreciate": true,
	"grateful": true, "kindly": true, "welcome": true, "sorry": true,
}

// passiveAuxiliaries precede a participle in a passive construction.
var passiveAuxiliaries = map[string]bool{
	"is": true, "are": true, "was": true, "were": true,
	"be": true, "been": true, "being": true, "get": true, "got": true,
}

// irregularParticiples are passive participles that don't end in "ed".
var irregularParticiples = map[string]bool{
	"made": true, "sent": true, "given": true, "taken": true, "done": true,
	"written": true, "seen": true, "known": true, "held": true, "kept": true,
	"built": true, "brought": true, "found": true, "left": true, "paid": true,
	"put": true, "set": true, "told": true, "shown": true, "chosen": true,
}

// ctaPhrases are call-to-action markers counted by substring occurrence.
var ctaPhrases = []string{
	"let me know", "please review", "please confirm", "please respond",
	"get back to me", "follow up", "reach out", "sign up", "click",
	"schedule a", "book a", "reply by", "respond by", "don't hesitate",
}

// greetingPhrases are matched as prefixes of the first non-empty line,
// longest first. The matched phrase (not the whole line) is the normalized
// greeting label.
var greetingPhrases = []string{
	"good morning", "good afternoon", "good evening", "hi there",
	"hello", "greetings", "dear", "hey", "hi", "yo",
}

// signOffPhrases are matched against trailing lines, exactly.
var signOffPhrases = map[string]bool{
	"best":            true,
	"best regards":    true,
	"kind regards":    true,
	"warm regards":    true,
	"regards":         true,
	"cheers":          true,
	"thanks":          true,
	"thank you":       true,
	"many thanks":     true,
	"thanks again":    true,
	"sincerely":       true,
	"yours sincerely": true,
	"all the best":    true,
	"take care":       true,
	"talk soon":       true,
	"best wishes":     true,
}
