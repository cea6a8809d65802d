package out

import (
	"context"

	"liftlog/internal/modules/split/domain"
)

type SplitStore interface {
	Save(ctx context.Context, document domain.SplitDocument) (string, error)
	FindByID(ctx context.Context, id string) (domain.SplitDocument, error)
	List(ctx context.Context) ([]domain.SplitDocument, error)
}

type SplitIndexProjector interface {
	Reset(ctx context.Context) error
	UpsertSplit(ctx context.Context, split domain.Split) error
}
