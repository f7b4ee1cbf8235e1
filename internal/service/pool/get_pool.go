package pool

import (
	"context"

	"prize_pool/internal/model"
)

func (s *serv) GetPool(ctx context.Context, id int64) (*model.Pool, error) {
	return s.poolRepo.GetPool(ctx, id)
}
