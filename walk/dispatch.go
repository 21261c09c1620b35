package walk

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Handler processes a single matched file.
type Handler func(ctx context.Context, path string) error

// WalkFiltered walks root and runs handler in its own goroutine for every
// regular file matching ext (see Files). Discovery happens on the calling
// goroutine. Once the walk is exhausted every scheduled handler is awaited,
// and the first handler failure is returned; a failure never cancels the
// other handlers.
//
// When ctx is done no further handlers are scheduled. Handlers that were
// already started still run to completion before WalkFiltered returns.
func WalkFiltered(ctx context.Context, root, ext string, handler Handler, opts ...Option) error {
	o := newOptions(opts)

	var g errgroup.Group
	if o.limit > 0 {
		g.SetLimit(o.limit)
	}

	scheduled := 0
	for path := range Files(root, ext, opts...) {
		if ctx.Err() != nil {
			break
		}
		scheduled++
		g.Go(func() error {
			return dispatch(ctx, handler, path)
		})
	}
	o.logger.Debug("walk complete", "root", root, "ext", ext, "scheduled", scheduled)

	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

func dispatch(ctx context.Context, handler Handler, path string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w while handling %s: %v", ErrHandlerPanic, path, r)
		}
	}()
	if err := handler(ctx, path); err != nil {
		return fmt.Errorf("handling %s: %w", path, err)
	}
	return nil
}
