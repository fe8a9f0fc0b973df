package ask

import (
	"context"
	"errors"
	"testing"

	"github.com/kailas-cloud/moviedex/internal/domain"
)

type mockMovieGetter struct {
	getByIDFn func(ctx context.Context, id int) (domain.MovieRecord, error)
}

func (m *mockMovieGetter) GetByID(ctx context.Context, id int) (domain.MovieRecord, error) {
	return m.getByIDFn(ctx, id)
}

type mockAnswerer struct {
	answerFn func(ctx context.Context, title, overview, question string) (string, error)
	calls    int
}

func (m *mockAnswerer) Answer(ctx context.Context, title, overview, question string) (string, error) {
	m.calls++
	return m.answerFn(ctx, title, overview, question)
}

func TestAsk_GroundsAnswerInStoredMovie(t *testing.T) {
	movies := &mockMovieGetter{
		getByIDFn: func(_ context.Context, id int) (domain.MovieRecord, error) {
			if id != 42 {
				t.Fatalf("unexpected id: %d", id)
			}
			return domain.MovieRecord{ID: 42, Title: "Blade Runner", Overview: "A replicant hunt."}, nil
		},
	}
	answerer := &mockAnswerer{
		answerFn: func(_ context.Context, title, overview, question string) (string, error) {
			if title != "Blade Runner" || overview != "A replicant hunt." {
				t.Fatalf("answerer got wrong context: %q / %q", title, overview)
			}
			if question != "Who is hunted?" {
				t.Fatalf("answerer got wrong question: %q", question)
			}
			return "Replicants.", nil
		},
	}

	svc := NewService(movies, answerer, nil)
	res, err := svc.Ask(context.Background(), 42, "Who is hunted?")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.MovieID != 42 || res.Question != "Who is hunted?" || res.Answer != "Replicants." {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestAsk_UnknownMovieSkipsModel(t *testing.T) {
	movies := &mockMovieGetter{
		getByIDFn: func(_ context.Context, _ int) (domain.MovieRecord, error) {
			return domain.MovieRecord{}, domain.ErrNotFound
		},
	}
	answerer := &mockAnswerer{
		answerFn: func(_ context.Context, _, _, _ string) (string, error) {
			return "should not run", nil
		},
	}

	svc := NewService(movies, answerer, nil)
	_, err := svc.Ask(context.Background(), 999, "Anything?")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if answerer.calls != 0 {
		t.Fatalf("model should not be called for unknown movie, got %d calls", answerer.calls)
	}
}

func TestAsk_ModelErrorPropagates(t *testing.T) {
	movies := &mockMovieGetter{
		getByIDFn: func(_ context.Context, _ int) (domain.MovieRecord, error) {
			return domain.MovieRecord{ID: 1, Title: "t", Overview: "o"}, nil
		},
	}
	answerer := &mockAnswerer{
		answerFn: func(_ context.Context, _, _, _ string) (string, error) {
			return "", domain.ErrProviderError
		},
	}

	svc := NewService(movies, answerer, nil)
	_, err := svc.Ask(context.Background(), 1, "q")
	if !errors.Is(err, domain.ErrProviderError) {
		t.Fatalf("expected ErrProviderError, got %v", err)
	}
}
