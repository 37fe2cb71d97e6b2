// Package locate resolves form titles to their remote identifiers by
// scanning the paginated forms listing.
package locate

import (
	"context"
	"fmt"

	"github.com/surveyops/formpull/internal/typeform"
)

// Lister provides pages of the remote forms listing. Pages are 1-based and
// the total page count is only known from the first fetched page.
// *typeform.Client satisfies this; tests supply fakes.
type Lister interface {
	ListForms(ctx context.Context, page int) (*typeform.FormPage, error)
}

// Resolve maps each target title to its form id by walking every listing
// page in order. Titles that never appear are simply absent from the
// result; callers decide whether an incomplete mapping is fatal. When a
// title occurs on more than one page the later occurrence wins.
func Resolve(ctx context.Context, lister Lister, titles []string) (map[string]string, error) {
	wanted := make(map[string]bool, len(titles))
	for _, t := range titles {
		wanted[t] = true
	}

	resolved := make(map[string]string)

	first, err := lister.ListForms(ctx, 1)
	if err != nil {
		return nil, fmt.Errorf("resolve: %w", err)
	}
	collect(first, wanted, resolved)

	for page := 2; page <= first.PageCount; page++ {
		p, err := lister.ListForms(ctx, page)
		if err != nil {
			return nil, fmt.Errorf("resolve: page %d: %w", page, err)
		}
		collect(p, wanted, resolved)
	}
	return resolved, nil
}

func collect(p *typeform.FormPage, wanted map[string]bool, out map[string]string) {
	for _, f := range p.Items {
		if wanted[f.Title] {
			out[f.Title] = f.ID
		}
	}
}
