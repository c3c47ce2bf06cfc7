package swapi

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Resolve fetches every referenced entity. At most the configured
// concurrency runs at once; results keep the order of refs.
func (c *Client) Resolve(ctx context.Context, refs []string) ([]Entity, error) {
	if len(refs) == 0 {
		return nil, nil
	}

	entities := make([]Entity, len(refs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.opts.concurrency)

	for i, ref := range refs {
		g.Go(func() error {
			entity, err := c.FetchReference(ctx, ref)
			if err != nil {
				c.logger.Warn().
					Err(err).
					Str("ref", ref).
					Msg("Failed to resolve reference")
				return err
			}

			// Each goroutine owns its own slot
			entities[i] = entity
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	c.logger.Debug().Int("count", len(entities)).Msg("Resolved references")
	return entities, nil
}
