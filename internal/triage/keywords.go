package triage

// KeywordGroup maps a symptom tag to its trigger phrases, in match order.
type KeywordGroup struct {
	Tag     string   `json:"tag" yaml:"tag"`
	Phrases []string `json:"phrases" yaml:"phrases"`
}

const (
	criticalKeywordWeight   = 10
	urgentKeywordWeight     = 5
	criticalConditionWeight = 15
	urgentConditionWeight   = 7
	criticalSelectionWeight = 10
	urgentSelectionWeight   = 5
	abnormalVitalWeight     = 5
	vulnerableAgeWeight     = 2
)

var criticalKeywords = []KeywordGroup{
	{Tag: "chest_pain", Phrases: []string{"chest pain", "heart attack", "cardiac", "angina", "chest pressure", "crushing pain"}},
	{Tag: "breathing", Phrases: []string{"difficulty breathing", "shortness of breath", "dyspnea", "cant breathe", "suffocating", "respiratory distress", "gasping"}},
	{Tag: "bleeding", Phrases: []string{"severe bleeding", "hemorrhage", "blood loss", "profuse bleeding", "uncontrolled bleeding"}},
	{Tag: "unconscious", Phrases: []string{"unconscious", "unresponsive", "passed out", "collapsed", "loss of consciousness", "coma"}},
	{Tag: "stroke", Phrases: []string{"stroke", "paralysis", "facial drooping", "slurred speech", "weakness one side"}},
	{Tag: "seizure", Phrases: []string{"seizure", "convulsion", "fitting", "epileptic"}},
	{Tag: "head_injury", Phrases: []string{"head injury", "head trauma", "skull fracture", "brain injury"}},
	{Tag: "severe_pain", Phrases: []string{"excruciating", "worst pain ever", "unbearable pain", "10/10 pain"}},
	{Tag: "jaundice", Phrases: []string{"yellowness", "dark urine"}},
}

var urgentKeywords = []KeywordGroup{
	{Tag: "fever", Phrases: []string{"fever", "high temperature", "pyrexia", "febrile"}},
	{Tag: "pain", Phrases: []string{"severe pain", "intense pain", "pain", "ache", "hurts badly"}},
	{Tag: "vomiting", Phrases: []string{"vomiting", "throwing up", "emesis", "severe nausea"}},
	{Tag: "diarrhea", Phrases: []string{"diarrhea", "loose stools", "gastroenteritis"}},
	{Tag: "infection", Phrases: []string{"infection", "infected", "pus", "abscess"}},
	{Tag: "fracture", Phrases: []string{"fracture", "broken bone", "fractured"}},
	{Tag: "burn", Phrases: []string{"burn", "scalded", "thermal injury"}},
	{Tag: "allergic", Phrases: []string{"allergic reaction", "allergy", "anaphylaxis", "swelling", "hives"}},
}

// nonUrgentKeywords is reference data only; Score never consults it.
var nonUrgentKeywords = []KeywordGroup{
	{Tag: "cold", Phrases: []string{"cold", "runny nose", "sneezing", "cough"}},
	{Tag: "minor_pain", Phrases: []string{"mild pain", "slight discomfort", "minor ache"}},
	{Tag: "checkup", Phrases: []string{"checkup", "routine", "follow up", "prescription refill"}},
	{Tag: "rash", Phrases: []string{"rash", "skin irritation", "itching"}},
}

var criticalConditions = []string{"cancer", "tumor", "malignancy", "carcinoma", "leukemia", "lymphoma"}

var urgentConditions = []string{"diabetes complication", "asthma attack", "kidney stone", "appendicitis", "pneumonia"}

// Selected symptom tags that escalate the score, checked in this order.
var (
	criticalSelections = []string{"chest_pain", "breathing", "bleeding", "unconscious"}
	urgentSelections   = []string{"fever", "pain"}
)

// suggestionCue maps complaint fragments to the tags worth asking about.
type suggestionCue struct {
	fragments []string
	tags      []string
}

var suggestionCues = []suggestionCue{
	{fragments: []string{"chest", "heart"}, tags: []string{"chest_pain", "breathing"}},
	{fragments: []string{"breath", "cough"}, tags: []string{"breathing"}},
	{fragments: []string{"blood", "wound"}, tags: []string{"bleeding"}},
	{fragments: []string{"fever", "temperature"}, tags: []string{"fever"}},
	{fragments: []string{"pain", "hurt"}, tags: []string{"pain"}},
}

// KeywordTables is a snapshot of the static matching data.
type KeywordTables struct {
	Critical           []KeywordGroup `json:"critical" yaml:"critical"`
	Urgent             []KeywordGroup `json:"urgent" yaml:"urgent"`
	NonUrgent          []KeywordGroup `json:"non_urgent" yaml:"non_urgent"`
	CriticalConditions []string       `json:"critical_conditions" yaml:"critical_conditions"`
	UrgentConditions   []string       `json:"urgent_conditions" yaml:"urgent_conditions"`
}

// Tables returns a deep copy of the keyword and condition tables.
func Tables() KeywordTables {
	return KeywordTables{
		Critical:           copyGroups(criticalKeywords),
		Urgent:             copyGroups(urgentKeywords),
		NonUrgent:          copyGroups(nonUrgentKeywords),
		CriticalConditions: append([]string(nil), criticalConditions...),
		UrgentConditions:   append([]string(nil), urgentConditions...),
	}
}

func copyGroups(groups []KeywordGroup) []KeywordGroup {
	out := make([]KeywordGroup, len(groups))
	for i, g := range groups {
		out[i] = KeywordGroup{Tag: g.Tag, Phrases: append([]string(nil), g.Phrases...)}
	}
	return out
}
