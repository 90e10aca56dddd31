package intake

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/cris-labs/cris/internal/mapspec"
	"github.com/cris-labs/cris/internal/model"
	"github.com/cris-labs/cris/internal/roster"
	"github.com/cris-labs/cris/pkg/churn"
)

// Service runs the full intake flow: build the record, score it, append it.
// A record is never appended unscored; a predictor or storage failure leaves
// the roster exactly as it was.
type Service struct {
	store          roster.Store
	predictor      churn.Predictor
	predictTimeout time.Duration
}

// NewService creates the intake service. predictTimeout bounds how long a
// single scoring call may take; zero means no extra bound beyond the caller's
// context.
func NewService(store roster.Store, predictor churn.Predictor, predictTimeout time.Duration) *Service {
	return &Service{store: store, predictor: predictor, predictTimeout: predictTimeout}
}

// Register processes one new-customer submission and returns the appended,
// scored record.
func (s *Service) Register(ctx context.Context, fields FieldSet, location *mapspec.Coordinate) (*model.Customer, error) {
	c, err := BuildRecord(fields, location)
	if err != nil {
		return nil, err
	}

	predictCtx := ctx
	if s.predictTimeout > 0 {
		var cancel context.CancelFunc
		predictCtx, cancel = context.WithTimeout(ctx, s.predictTimeout)
		defer cancel()
	}

	p, err := s.predictor.Predict(predictCtx, c.Features())
	if err != nil {
		return nil, eris.Wrap(err, "intake: score new customer")
	}

	c.PredictedLabel = p.Label
	prob := p.Probability
	c.PredictionProbability = &prob

	if err := s.store.Append(ctx, *c); err != nil {
		return nil, err
	}

	zap.L().Info("new customer registered",
		zap.String("customer_id", c.ID),
		zap.String("predicted_label", string(p.Label)),
		zap.Float64("probability", p.Probability),
	)
	return c, nil
}
