package pull

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/surveyops/formpull/internal/typeform"
)

// fakeSource serves canned listing pages, form definitions, and response
// sets keyed by form id.
type fakeSource struct {
	pages     []*typeform.FormPage
	forms     map[string]json.RawMessage
	responses map[string]*typeform.ResponseSet
}

func (f *fakeSource) ListForms(ctx context.Context, page int) (*typeform.FormPage, error) {
	return f.pages[page-1], nil
}

func (f *fakeSource) GetForm(ctx context.Context, id string) (json.RawMessage, error) {
	return f.forms[id], nil
}

func (f *fakeSource) ListResponses(ctx context.Context, id string) (*typeform.ResponseSet, error) {
	return f.responses[id], nil
}

func listingWith(title, id string) []*typeform.FormPage {
	return []*typeform.FormPage{
		{Items: []typeform.Form{{ID: id, Title: title}}, PageCount: 1},
	}
}

func newTestPuller(t *testing.T, source Source, titles ...string) (*Puller, string, string) {
	t.Helper()
	formsDir := filepath.Join(t.TempDir(), "forms")
	dataDir := filepath.Join(t.TempDir(), "data")
	return New(source, titles, formsDir, dataDir), formsDir, dataDir
}

func TestSlug(t *testing.T) {
	cases := []struct {
		title string
		want  string
	}{
		{"Dogs & Children Survey", "dogs-and-children-survey"},
		{"Plain", "plain"},
		{"Already-Hyphenated Title", "already-hyphenated-title"},
		{"a & b & c", "a-and-b-and-c"},
	}
	for _, tc := range cases {
		if got := Slug(tc.title); got != tc.want {
			t.Errorf("Slug(%q) = %q, want %q", tc.title, got, tc.want)
		}
	}
}

func TestPullFormsWritesDefinition(t *testing.T) {
	def := json.RawMessage(`{"id":"id1","title":"Dogs & Children Survey","fields":[{"ref":"q1","type":"email"}]}`)
	source := &fakeSource{
		pages: listingWith("Dogs & Children Survey", "id1"),
		forms: map[string]json.RawMessage{"id1": def},
	}
	p, formsDir, _ := newTestPuller(t, source, "Dogs & Children Survey")

	require.NoError(t, p.PullForms(context.Background()))

	b, err := os.ReadFile(filepath.Join(formsDir, "dogs-and-children-survey.json"))
	require.NoError(t, err)
	require.JSONEq(t, string(def), string(b))
	// Pretty-printed with 2-space indentation.
	require.True(t, strings.Contains(string(b), "\n  \"id\""), "expected indented output, got:\n%s", b)
}

func TestPullFormsNoResolvedTitlesIsNoop(t *testing.T) {
	source := &fakeSource{pages: listingWith("Unrelated", "id9")}
	p, formsDir, _ := newTestPuller(t, source, "Dogs & Children Survey")

	require.NoError(t, p.PullForms(context.Background()))

	_, err := os.Stat(formsDir)
	require.True(t, os.IsNotExist(err), "no directory should be created when nothing resolves")
}

func TestPullResponsesWritesSanitizedFile(t *testing.T) {
	source := &fakeSource{
		pages: listingWith("Dogs & Children Survey", "id1"),
		responses: map[string]*typeform.ResponseSet{
			"id1": {
				Items: []typeform.Response{
					{ResponseID: "r1", Answers: []typeform.Answer{
						{Type: typeform.AnswerEmail, Value: json.RawMessage(`"a@x.com"`)},
						{Type: typeform.AnswerText, Value: json.RawMessage(`"hi"`)},
					}},
				},
				TotalItems: 1,
				PageCount:  1,
			},
		},
	}
	p, _, dataDir := newTestPuller(t, source, "Dogs & Children Survey")

	require.NoError(t, p.PullResponses(context.Background()))

	b, err := os.ReadFile(filepath.Join(dataDir, "dogs-and-children-survey.json"))
	require.NoError(t, err)
	require.NotContains(t, string(b), "a@x.com")

	var got typeform.ResponseSet
	require.NoError(t, json.Unmarshal(b, &got))
	require.Len(t, got.Items, 1)
	require.Equal(t, json.RawMessage(`"r1"`), got.Items[0].Answers[0].Value)
	require.Equal(t, json.RawMessage(`"hi"`), got.Items[0].Answers[1].Value)
}

func TestPullResponsesSkipsEmptySet(t *testing.T) {
	source := &fakeSource{
		pages: listingWith("Dogs & Children Survey", "id1"),
		responses: map[string]*typeform.ResponseSet{
			"id1": {TotalItems: 0, PageCount: 1},
		},
	}
	p, _, dataDir := newTestPuller(t, source, "Dogs & Children Survey")

	require.NoError(t, p.PullResponses(context.Background()))

	_, err := os.Stat(filepath.Join(dataDir, "dogs-and-children-survey.json"))
	require.True(t, os.IsNotExist(err), "empty response set must not produce a file")
}

func TestPullResponsesVolumeGuard(t *testing.T) {
	cases := []struct {
		name string
		set  *typeform.ResponseSet
	}{
		{"at page capacity", &typeform.ResponseSet{TotalItems: 1000, PageCount: 1}},
		{"multiple pages", &typeform.ResponseSet{TotalItems: 400, PageCount: 2}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			source := &fakeSource{
				pages:     listingWith("Dogs & Children Survey", "id1"),
				responses: map[string]*typeform.ResponseSet{"id1": tc.set},
			}
			p, _, dataDir := newTestPuller(t, source, "Dogs & Children Survey")

			err := p.PullResponses(context.Background())

			var ve *VolumeError
			require.ErrorAs(t, err, &ve)
			require.Equal(t, "Dogs & Children Survey", ve.Title)

			_, statErr := os.Stat(dataDir)
			require.True(t, os.IsNotExist(statErr), "nothing may be written after a volume failure")
		})
	}
}

func TestPullResponsesNoResolvedTitlesIsNoop(t *testing.T) {
	source := &fakeSource{pages: listingWith("Unrelated", "id9")}
	p, _, dataDir := newTestPuller(t, source, "Dogs & Children Survey")

	require.NoError(t, p.PullResponses(context.Background()))

	_, err := os.Stat(dataDir)
	require.True(t, os.IsNotExist(err))
}
