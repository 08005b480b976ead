package book

import (
	"context"
	"fmt"
)

// Text fetches the full text of a page object from the repository.
func (b *Book) Text(ctx context.Context, pid string) (string, error) {
	body, err := b.fetcher.Fetch(ctx, b.TextURI(pid))
	if err != nil {
		return "", fmt.Errorf("full text of %s: %w", pid, err)
	}
	return string(body), nil
}
