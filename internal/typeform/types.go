// Package typeform provides the data model and a minimal REST client for
// the slice of the Typeform API this tool needs: the forms listing, single
// form definitions, and form responses.
package typeform

import "encoding/json"

// Form is one entry in the remote forms listing.
type Form struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// FormPage is one page of the forms listing. Pages are 1-based. PageCount
// is reported on every page but callers only learn it after fetching the
// first one.
type FormPage struct {
	Items      []Form `json:"items"`
	PageCount  int    `json:"page_count"`
	TotalItems int    `json:"total_items"`
}

// Answer kinds as tagged by the remote system. Only AnswerEmail is ever
// treated specially; everything else passes through untouched.
const (
	AnswerEmail       = "email"
	AnswerText        = "text"
	AnswerChoice      = "choice"
	AnswerChoices     = "choices"
	AnswerNumber      = "number"
	AnswerBoolean     = "boolean"
	AnswerDate        = "date"
	AnswerURL         = "url"
	AnswerPhoneNumber = "phone_number"
	AnswerFileURL     = "file_url"
	AnswerPayment     = "payment"
)

// Answer is a single captured value within a response, tagged with its
// kind. The payload shape depends on Type, so Value stays raw JSON and
// survives a decode/encode round trip byte for byte.
type Answer struct {
	Type  string          `json:"type"`
	Value json.RawMessage `json:"value"`
}

// Response is one respondent's complete submission to a form.
type Response struct {
	ResponseID string   `json:"response_id"`
	Answers    []Answer `json:"answers"`
}

// ResponseSet holds the fetched responses for one form plus the pagination
// metadata the volume guard inspects.
type ResponseSet struct {
	Items      []Response `json:"items"`
	TotalItems int        `json:"total_items"`
	PageCount  int        `json:"page_count"`
}
