package ask

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Result is the answer to a question about one movie.
type Result struct {
	MovieID  int    `json:"movie_id"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Service answers free-text questions about a single movie. The answer is
// grounded exclusively in the movie's stored title and overview.
type Service struct {
	movies   MovieGetter
	answerer Answerer
	logger   *zap.Logger
}

func NewService(movies MovieGetter, answerer Answerer, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{movies: movies, answerer: answerer, logger: log}
}

// Ask fetches the movie and asks the language model the question against its
// title and overview. An unknown movie id returns domain.ErrNotFound before
// any model call is made.
func (s *Service) Ask(ctx context.Context, movieID int, question string) (Result, error) {
	rec, err := s.movies.GetByID(ctx, movieID)
	if err != nil {
		return Result{}, fmt.Errorf("get movie %d: %w", movieID, err)
	}

	answer, err := s.answerer.Answer(ctx, rec.Title, rec.Overview, question)
	if err != nil {
		return Result{}, fmt.Errorf("answer question: %w", err)
	}

	s.logger.Debug("question answered",
		zap.Int("movie_id", movieID),
		zap.Int("answer_len", len(answer)))

	return Result{MovieID: movieID, Question: question, Answer: answer}, nil
}
