// Package sanitize removes respondent PII from pulled response sets before
// they are written to disk. Every email-type answer value is replaced with
// the owning response's own id, a stable pseudonymous token that keeps
// responses linkable without retaining the address itself.
//
// Usage:
//
//	clean := sanitize.Responses(raw)
//	// write clean to storage
package sanitize

import (
	"encoding/json"

	"github.com/surveyops/formpull/internal/typeform"
)

// Responses returns a copy of perTitle in which every email answer's value
// is the enclosing response's id, encoded as a JSON string. The key set,
// response order, answer order, and pagination metadata are preserved, and
// non-email answers come through byte-identical. The input is never
// mutated, so applying Responses to its own output is a no-op.
func Responses(perTitle map[string]typeform.ResponseSet) map[string]typeform.ResponseSet {
	out := make(map[string]typeform.ResponseSet, len(perTitle))
	for title, set := range perTitle {
		out[title] = responseSet(set)
	}
	return out
}

func responseSet(set typeform.ResponseSet) typeform.ResponseSet {
	if len(set.Items) == 0 {
		return set
	}
	items := make([]typeform.Response, len(set.Items))
	for i, r := range set.Items {
		items[i] = response(r)
	}
	set.Items = items
	return set
}

func response(r typeform.Response) typeform.Response {
	if len(r.Answers) == 0 {
		return r
	}
	answers := make([]typeform.Answer, len(r.Answers))
	for i, a := range r.Answers {
		if a.Type == typeform.AnswerEmail {
			a.Value = pseudonym(r.ResponseID)
		}
		answers[i] = a
	}
	r.Answers = answers
	return r
}

// pseudonym encodes id as a JSON string value. Every email answer within
// one response receives the same token.
func pseudonym(id string) json.RawMessage {
	b, _ := json.Marshal(id)
	return b
}
