package completion

// Timer globals are not receivers and have no aliases, so they live here
// rather than in the vocabulary.
var timers = []struct {
	name     string
	template string
}{
	{"setTimeout", "setTimeout(${1:cb}, ${2:ms})"},
	{"setInterval", "setInterval(${1:cb}, ${2:ms})"},
	{"clearTimeout", "clearTimeout(${1:id})"},
	{"clearInterval", "clearInterval(${1:id})"},
}

func timerCandidates() []Candidate {
	out := make([]Candidate, len(timers))
	for i, t := range timers {
		out[i] = snippet(t.name, detailBuiltinGlobal, KindFunction, t.template, "")
	}
	return out
}
