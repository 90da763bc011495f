package fee

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/avast/retry-go"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"
	"go.uber.org/zap"

	"wallet-txflow/internal/model"
	"wallet-txflow/internal/service/callcodec"
	"wallet-txflow/pkg/errno"
	"wallet-txflow/pkg/logger"
)

// RPCOracle asks a node for the partial fee through the
// TransactionPaymentCallApi runtime API (state_call). Connections are opened lazily
// per chain and reused.
type RPCOracle struct {
	mu        sync.Mutex
	endpoints map[model.ChainID]string
	clients   map[model.ChainID]*rpc.Client

	attempts uint
	delay    time.Duration
}

func NewRPCOracle(endpoints map[model.ChainID]string, attempts uint) *RPCOracle {
	if attempts == 0 {
		attempts = 1
	}
	return &RPCOracle{
		endpoints: endpoints,
		clients:   make(map[model.ChainID]*rpc.Client),
		attempts:  attempts,
		delay:     200 * time.Millisecond,
	}
}

// SetClient registers an already connected client for chainID.
func (o *RPCOracle) SetClient(chainID model.ChainID, c *rpc.Client) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.clients[chainID] = c
}

func (o *RPCOracle) Fee(ctx context.Context, chain model.Chain, tx model.Transaction) (string, error) {
	call, err := callcodec.Encode(tx, chain)
	if err != nil {
		return "", err
	}

	client, err := o.client(ctx, chain.ChainID)
	if err != nil {
		return "", err
	}

	params := hexutil.Encode(callcodec.QueryCallInfoParams(call))
	var raw hexutil.Bytes
	err = retry.Do(
		func() error {
			return client.CallContext(ctx, &raw, "state_call", callcodec.QueryCallInfoMethod, params)
		},
		retry.Context(ctx),
		retry.Attempts(o.attempts),
		retry.Delay(o.delay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			logger.Debug("retrying fee query",
				zap.String("chain_id", string(chain.ChainID)),
				zap.Uint("attempt", n+1),
				zap.Error(err),
			)
		}),
	)
	if err != nil {
		return "", fmt.Errorf("state_call %s: %w", callcodec.QueryCallInfoMethod, err)
	}

	info, err := callcodec.DecodeDispatchInfo(raw)
	if err != nil {
		return "", fmt.Errorf("decode dispatch info: %w", err)
	}
	return info.PartialFee, nil
}

func (o *RPCOracle) client(ctx context.Context, chainID model.ChainID) (*rpc.Client, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if c, ok := o.clients[chainID]; ok {
		return c, nil
	}
	url, ok := o.endpoints[chainID]
	if !ok || url == "" {
		return nil, fmt.Errorf("%w: no rpc endpoint for %s", errno.ErrChainNotFound, chainID)
	}

	c, err := rpc.DialContext(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", url, err)
	}
	o.clients[chainID] = c
	logger.Info("Connected to chain rpc", zap.String("chain_id", string(chainID)), zap.String("url", url))
	return c, nil
}

// Close 关闭所有连接
func (o *RPCOracle) Close() {
	o.mu.Lock()
	defer o.mu.Unlock()
	for id, c := range o.clients {
		c.Close()
		delete(o.clients, id)
	}
}
