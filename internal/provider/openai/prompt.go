package openai

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"server/internal/domain"
)

// buildItineraryPrompt renders the validated request as the user message.
// City names are title-cased so casing quirks in client input don't bleed
// into the generated draft.
func buildItineraryPrompt(req domain.ItineraryRequest) string {
	c := cases.Title(language.Und)
	start := c.String(strings.TrimSpace(req.StartCity))
	end := c.String(strings.TrimSpace(req.EndCity))

	var b strings.Builder
	fmt.Fprintf(&b, "Plan a trip from %s to %s, departing %s and returning %s.\n",
		start, end, req.StartDate, req.EndDate)
	b.WriteString("Respond with a JSON object: {\"days\": [{\"date\": string, ")
	b.WriteString("\"city\": string, \"activities\": [string]}], \"summary\": string}.")
	return b.String()
}
