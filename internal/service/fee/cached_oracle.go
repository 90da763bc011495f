package fee

import (
	"context"
	"time"

	"go.uber.org/zap"

	"wallet-txflow/internal/model"
	"wallet-txflow/internal/service/callcodec"
	"wallet-txflow/pkg/cache"
	"wallet-txflow/pkg/crypto_util"
	"wallet-txflow/pkg/logger"
)

// CachedOracle memoises fees per encoded call. Fees only change with the runtime's
// fee multiplier, so a short TTL is enough.
type CachedOracle struct {
	next  FeeOracle
	cache cache.Cache
	ttl   time.Duration
}

func NewCachedOracle(next FeeOracle, c cache.Cache, ttl time.Duration) *CachedOracle {
	return &CachedOracle{next: next, cache: c, ttl: ttl}
}

func (o *CachedOracle) Fee(ctx context.Context, chain model.Chain, tx model.Transaction) (string, error) {
	call, err := callcodec.Encode(tx, chain)
	if err != nil {
		return "", err
	}
	key := cacheKey(chain.ChainID, call)

	var fee string
	if err := o.cache.Get(ctx, key, &fee); err == nil {
		return fee, nil
	}

	fee, err = o.next.Fee(ctx, chain, tx)
	if err != nil {
		return "", err
	}
	if err := o.cache.Set(ctx, key, fee, o.ttl); err != nil {
		logger.Warn("cache fee failed", zap.String("key", key), zap.Error(err))
	}
	return fee, nil
}

func cacheKey(chainID model.ChainID, call []byte) string {
	data := make([]byte, 0, len(chainID)+len(call))
	data = append(data, string(chainID)...)
	data = append(data, call...)
	return "fee:" + crypto_util.CalculateBlake3(data)
}
