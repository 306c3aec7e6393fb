package extract

// Rule maps a keyword match over a message's text to an event template.
// Rules are evaluated in order and the first match wins, so earlier
// entries take priority over later ones.
type Rule struct {
	// Keywords are case-insensitive substrings matched against the
	// message subject and body. Any one of them matching selects the rule.
	Keywords []string

	// Title is the event title produced by this rule.
	Title string

	// Recurring marks events produced by this rule as repeating.
	Recurring bool
}

// rules is the ordered rule table. More specific phrases go before the
// broader keywords they contain (e.g. "sprint review" before "review").
var rules = []Rule{
	{Keywords: []string{"standup", "stand-up"}, Title: "Daily Standup", Recurring: true},
	{Keywords: []string{"retrospective", "retro"}, Title: "Sprint Retrospective", Recurring: true},
	{Keywords: []string{"sprint review"}, Title: "Sprint Review", Recurring: true},
	{Keywords: []string{"1:1", "one-on-one", "one on one"}, Title: "One-on-One", Recurring: true},
	{Keywords: []string{"kickoff", "kick-off"}, Title: "Project Kickoff"},
	{Keywords: []string{"interview"}, Title: "Interview"},
	{Keywords: []string{"all hands", "all-hands", "town hall"}, Title: "All Hands"},
	{Keywords: []string{"lunch"}, Title: "Team Lunch"},
	{Keywords: []string{"review"}, Title: "Review Meeting"},
	{Keywords: []string{"meeting notes", "notes"}, Title: "Notes Follow-Up"},
}

// Rules returns a copy of the active rule table, mainly for tests and
// diagnostics.
func Rules() []Rule {
	out := make([]Rule, len(rules))
	copy(out, rules)
	return out
}
