package kafka

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/muxury/storefront/internal/core/domain"
	"github.com/muxury/storefront/internal/core/port"
	"github.com/muxury/storefront/pkg/schema"
	"github.com/twmb/franz-go/pkg/kgo"
)

var _ port.ViewsProducer = (*ViewsProducer)(nil)

// A ViewsProducer publishes [domain.ProductView] events. Each process
// gets one session id stamped on everything it emits.
type ViewsProducer struct {
	cl        ProducerClient
	encoder   Encoder
	sessionID string
}

func NewViewsProducer(opts ...ProducerOpt) (ViewsProducer, error) {
	const op = "NewViewsProducer"

	if len(opts) != 2 {
		panic(opErr(ErrTooFewOpts, op)) // develop mistake
	}

	var options producerOpts
	for _, opt := range opts {
		if err := opt(&options); err != nil {
			return ViewsProducer{}, opErr(err, op)
		}
	}

	return ViewsProducer{
		cl:        options.cl,
		encoder:   options.encoder,
		sessionID: uuid.NewString(),
	}, nil
}

func (p ViewsProducer) Close() {
	const op = "ViewsProducer.Close"
	log := slog.With("op", op)
	log.Info("closing producer...")
	p.cl.Close()
	log.Info("producer is closed")
}

func (p ViewsProducer) ProduceView(
	ctx context.Context, v domain.ProductView,
) error {
	const op = "ViewsProducer.ProduceView"

	if err := ctx.Err(); err != nil {
		return opErr(err, op)
	}

	r, err := p.createRecord(v)
	if err != nil {
		return opErr(err, op)
	}

	res := p.cl.ProduceSync(ctx, r)
	if err := res.FirstErr(); err != nil {
		return opErr(err, op)
	}
	return nil
}

func (p ViewsProducer) createRecord(
	v domain.ProductView,
) (*kgo.Record, error) {
	const op = "ViewsProducer.createRecord"

	s := p.toSchema(v)
	data, err := p.encoder.Encode(s)
	if err != nil {
		return nil, opErr(err, op)
	}
	return &kgo.Record{Key: []byte(s.ProductID), Value: data}, nil
}

func (p ViewsProducer) toSchema(v domain.ProductView) (s schema.ProductViewV1) {
	s.SessionID = p.sessionID
	s.ProductID = v.ProductID
	s.Name = v.Name
	s.Category = v.Category
	s.Price = v.Price
	s.ViewedAt = v.ViewedAt.UnixMilli()
	return s
}
