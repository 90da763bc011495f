// Package chain provides read-only chain metadata loaded from configuration.
package chain

import (
	"fmt"
	"sort"
	"strings"

	"wallet-txflow/internal/model"
	"wallet-txflow/pkg/config"
	"wallet-txflow/pkg/errno"
)

type Registry struct {
	chains map[model.ChainID]model.Chain
	rpc    map[model.ChainID]string
}

// NewRegistry 校验并加载链配置
func NewRegistry(cfgs []config.ChainConfig) (*Registry, error) {
	r := &Registry{
		chains: make(map[model.ChainID]model.Chain, len(cfgs)),
		rpc:    make(map[model.ChainID]string, len(cfgs)),
	}
	for _, c := range cfgs {
		ch, err := fromConfig(c)
		if err != nil {
			return nil, err
		}
		if _, dup := r.chains[ch.ChainID]; dup {
			return nil, fmt.Errorf("duplicate chain %s", ch.ChainID)
		}
		r.chains[ch.ChainID] = ch
		r.rpc[ch.ChainID] = c.RpcUrl
	}
	return r, nil
}

func fromConfig(c config.ChainConfig) (model.Chain, error) {
	if !strings.HasPrefix(c.ChainID, "0x") {
		return model.Chain{}, fmt.Errorf("chain %q: chain_id must be a 0x genesis hash", c.Name)
	}
	indices := make(map[string]model.CallIndex, len(c.CallIndices))
	for name, idx := range c.CallIndices {
		if len(idx) != 2 {
			return model.Chain{}, fmt.Errorf("chain %q: call index %s must be [pallet, call]", c.Name, name)
		}
		indices[name] = model.CallIndex{idx[0], idx[1]}
	}
	return model.Chain{
		ChainID:       model.ChainID(strings.ToLower(c.ChainID)),
		Name:          c.Name,
		AddressPrefix: c.AddressPrefix,
		Asset:         model.Asset{Symbol: c.AssetSymbol, Precision: c.AssetPrecision},
		Multisig:      model.MultisigConstants{DepositBase: c.DepositBase, DepositFactor: c.DepositFactor},
		MaxWeight:     model.Weight{RefTime: c.MaxRefTime, ProofSize: c.MaxProofSize},
		CallIndices:   indices,
	}, nil
}

// Get 按 genesis hash 或名称 (不区分大小写) 查找
func (r *Registry) Get(idOrName string) (model.Chain, error) {
	if ch, ok := r.chains[model.ChainID(strings.ToLower(idOrName))]; ok {
		return ch, nil
	}
	for _, ch := range r.chains {
		if strings.EqualFold(ch.Name, idOrName) {
			return ch, nil
		}
	}
	return model.Chain{}, fmt.Errorf("%w: %s", errno.ErrChainNotFound, idOrName)
}

func (r *Registry) List() []model.Chain {
	out := make([]model.Chain, 0, len(r.chains))
	for _, ch := range r.chains {
		out = append(out, ch)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Endpoints returns the rpc url of each chain, for fee.NewRPCOracle.
func (r *Registry) Endpoints() map[model.ChainID]string {
	out := make(map[model.ChainID]string, len(r.rpc))
	for id, url := range r.rpc {
		out[id] = url
	}
	return out
}
