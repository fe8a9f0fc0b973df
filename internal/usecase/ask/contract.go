package ask

import (
	"context"

	"github.com/kailas-cloud/moviedex/internal/domain"
)

// MovieGetter looks a movie up in the attribute store.
type MovieGetter interface {
	GetByID(ctx context.Context, id int) (domain.MovieRecord, error)
}

// Answerer produces a grounded answer from movie context and a question.
type Answerer interface {
	Answer(ctx context.Context, title, overview, question string) (string, error)
}
