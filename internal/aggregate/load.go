package aggregate

import (
	"context"
	"encoding/json"

	"github.com/matsen/insp/internal/inspire"
	"github.com/matsen/insp/internal/record"
)

// Fetcher retrieves author profiles and literature. *inspire.Client satisfies it.
type Fetcher interface {
	Author(ctx context.Context, id inspire.Identifier) (record.Person, error)
	AuthorLiterature(ctx context.Context, bai string, size int) ([]json.RawMessage, error)
}

var _ Fetcher = (*inspire.Client)(nil)

// Load builds the aggregate for id from up to size of the author's most recent
// records.
//
// Fetch failures are not errors: they are logged and leave the aggregate with
// whatever it could load, possibly nothing. The only error returned is the
// context's, when it is canceled.
func Load(ctx context.Context, f Fetcher, id inspire.Identifier, size int, opts ...Option) (*Author, error) {
	a := New(id, opts...)

	profile, err := f.Author(ctx, id)
	switch {
	case err == nil:
		a.setOwner(profile)
	case ctx.Err() != nil:
		return a, ctx.Err()
	default:
		a.logger.Warn("could not fetch author profile", "identifier", id.Value, "error", err)
	}

	if a.Owner.BAI == "" {
		a.logger.Warn("author has no BAI, no records loaded", "identifier", id.Value)
		return a, nil
	}

	docs, err := f.AuthorLiterature(ctx, a.Owner.BAI, size)
	if err != nil {
		if ctx.Err() != nil {
			return a, ctx.Err()
		}
		a.logger.Warn("could not fetch literature, no records loaded", "bai", a.Owner.BAI, "error", err)
		return a, nil
	}

	added, skipped := a.AddDocuments(docs)
	a.logger.Info("loaded records", "bai", a.Owner.BAI, "records", added, "skipped", skipped)

	if !a.EnrichOwner() && len(docs) > 0 {
		a.logger.Debug("owner not found among record authors", "bai", a.Owner.BAI)
	}
	return a, nil
}
