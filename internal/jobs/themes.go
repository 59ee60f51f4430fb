package jobs

import "intentforge/internal/models"

// Lists holds the theme and style tables the builder cycles through. Themes
// are per action so scenario subject matter stays plausible for the intent
// being exercised; styles are global.
type Lists struct {
	Themes map[models.Action][]string
	Styles []string
}

// DefaultLists returns the built-in theme and style tables. Profiles may
// replace either table wholesale.
func DefaultLists() Lists {
	return Lists{
		Themes: map[models.Action][]string{
			models.ActionReply: {
				"calendar and scheduling questions",
				"email follow-ups",
				"travel logistics",
				"household errands",
				"restaurant and dinner plans",
				"package deliveries",
				"family reminders",
				"workplace meetings",
			},
			models.ActionStartTask: {
				"vacation planning",
				"home renovation",
				"gift shopping",
				"job applications",
				"event planning",
				"car maintenance",
				"insurance paperwork",
				"fitness goals",
			},
			models.ActionUpdateTask: {
				"contractor follow-up",
				"online order tracking",
				"appointment rescheduling",
				"document review progress",
				"travel booking changes",
				"repair status updates",
			},
			models.ActionCancelTask: {
				"called-off events",
				"returned purchases",
				"dropped subscriptions",
				"postponed travel",
				"withdrawn applications",
				"scrapped side projects",
			},
			models.ActionNoop: {
				"small talk",
				"simple acknowledgements",
				"off-topic chatter",
				"items already handled",
				"ambiguous musings",
				"social pleasantries",
			},
		},
		Styles: []string{
			"terse",
			"casual",
			"formal",
			"rambling",
			"typo-laden",
			"emoji-heavy",
		},
	}
}
