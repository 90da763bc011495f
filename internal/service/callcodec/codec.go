// Package callcodec encodes transactions into Substrate call bytes.
//
// The encoding is what other signatories hash to find a multisig operation, so it
// must only depend on the transaction and the chain metadata.
package callcodec

import (
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"

	"wallet-txflow/internal/model"
	"wallet-txflow/pkg/crypto_util"
	"wallet-txflow/pkg/errno"
	"wallet-txflow/pkg/scale"
	"wallet-txflow/pkg/ss58"
)

const (
	multiAddressID  = 0x00
	rewardStaked    = 0x00
	rewardAccount   = 0x03
	maxNestingDepth = 8
)

// Encode returns the SCALE encoded call of tx.
func Encode(tx model.Transaction, chain model.Chain) ([]byte, error) {
	e := scale.NewEncoder()
	if err := encodeCall(e, tx, chain, 0); err != nil {
		return nil, err
	}
	if err := e.Err(); err != nil {
		return nil, fmt.Errorf("encode %s: %w", tx.Type, err)
	}
	return e.Bytes(), nil
}

// EncodeHex returns Encode as 0x-prefixed hex.
func EncodeHex(tx model.Transaction, chain model.Chain) (string, error) {
	call, err := Encode(tx, chain)
	if err != nil {
		return "", err
	}
	return "0x" + hex.EncodeToString(call), nil
}

// CallHash 返回 blake2b-256(call)
func CallHash(call []byte) string {
	return crypto_util.Blake2b256Hex(call)
}

func encodeCall(e *scale.Encoder, tx model.Transaction, chain model.Chain, depth int) error {
	if depth > maxNestingDepth {
		return fmt.Errorf("%w: call nesting deeper than %d", errno.ErrInvalidWrapper, maxNestingDepth)
	}

	switch args := tx.Args.(type) {
	case model.TransferArgs:
		name := model.CallTransferAllowDeath
		if args.KeepAlive {
			name = model.CallTransferKeepAlive
		}
		if err := callIndex(e, chain, name); err != nil {
			return err
		}
		if err := multiAddress(e, args.Dest); err != nil {
			return err
		}
		return compactBalance(e, args.Value)

	case model.SetPayeeArgs:
		if err := callIndex(e, chain, model.CallSetPayee); err != nil {
			return err
		}
		if args.Destination == "" {
			e.PushByte(rewardStaked)
			return nil
		}
		e.PushByte(rewardAccount)
		return accountID(e, args.Destination)

	case model.BondExtraArgs:
		if err := callIndex(e, chain, model.CallBondExtra); err != nil {
			return err
		}
		return compactBalance(e, args.MaxAdditional)

	case model.ChillArgs:
		return callIndex(e, chain, model.CallChill)

	case model.ProxyDelegateArgs:
		name := model.CallAddProxy
		if tx.Type == model.TransactionTypeRemoveProxy {
			name = model.CallRemoveProxy
		}
		if err := callIndex(e, chain, name); err != nil {
			return err
		}
		if err := multiAddress(e, args.Delegate); err != nil {
			return err
		}
		if err := proxyType(e, args.ProxyType); err != nil {
			return err
		}
		e.U32(args.Delay)
		return nil

	case model.RemovePureProxyArgs:
		if err := callIndex(e, chain, model.CallKillPure); err != nil {
			return err
		}
		if err := multiAddress(e, args.Spawner); err != nil {
			return err
		}
		if err := proxyType(e, args.ProxyType); err != nil {
			return err
		}
		e.U16(args.Index)
		e.CompactUint(uint64(args.Height))
		e.CompactUint(uint64(args.ExtIndex))
		return nil

	case model.ProxyArgs:
		if args.Transaction == nil {
			return fmt.Errorf("%w: proxy call without inner call", errno.ErrInvalidWrapper)
		}
		if err := callIndex(e, chain, model.CallProxy); err != nil {
			return err
		}
		if err := multiAddress(e, args.Real); err != nil {
			return err
		}
		if args.ForceProxyType == "" {
			e.Option(false, nil)
		} else {
			e.PushByte(1)
			if err := proxyType(e, args.ForceProxyType); err != nil {
				return err
			}
		}
		return encodeCall(e, *args.Transaction, chain, depth+1)

	case model.AsMultiArgs:
		if args.Transaction == nil {
			return fmt.Errorf("%w: as_multi without inner call", errno.ErrInvalidWrapper)
		}
		if err := callIndex(e, chain, model.CallAsMulti); err != nil {
			return err
		}
		if err := multisigHeader(e, args.Threshold, args.OtherSignatories); err != nil {
			return err
		}
		maybeTimepoint(e, args.MaybeTimepoint)
		if err := encodeCall(e, *args.Transaction, chain, depth+1); err != nil {
			return err
		}
		weight(e, args.MaxWeight)
		return nil

	case model.ApproveAsMultiArgs:
		if err := callIndex(e, chain, model.CallApproveAsMulti); err != nil {
			return err
		}
		if err := multisigHeader(e, args.Threshold, args.OtherSignatories); err != nil {
			return err
		}
		maybeTimepoint(e, args.MaybeTimepoint)
		if err := fixedHash(e, args.CallHash); err != nil {
			return err
		}
		weight(e, args.MaxWeight)
		return nil

	case model.CancelAsMultiArgs:
		if err := callIndex(e, chain, model.CallCancelAsMulti); err != nil {
			return err
		}
		if err := multisigHeader(e, args.Threshold, args.OtherSignatories); err != nil {
			return err
		}
		e.U32(args.Timepoint.Height)
		e.U32(args.Timepoint.Index)
		return fixedHash(e, args.CallHash)

	default:
		return fmt.Errorf("%w: %s", errno.ErrUnsupportedTx, tx.Type)
	}
}

func callIndex(e *scale.Encoder, chain model.Chain, name string) error {
	idx, ok := chain.CallIndex(name)
	if !ok {
		return fmt.Errorf("%w: %s", errno.ErrInvalidCallIndex, name)
	}
	e.Raw(idx[:])
	return nil
}

func accountID(e *scale.Encoder, address string) error {
	id, err := ss58.ToAccountID(address)
	if err != nil {
		return fmt.Errorf("%w: %s", errno.ErrInvalidAddress, address)
	}
	e.Raw(id)
	return nil
}

func multiAddress(e *scale.Encoder, address string) error {
	e.PushByte(multiAddressID)
	return accountID(e, address)
}

func proxyType(e *scale.Encoder, p model.ProxyType) error {
	idx, ok := p.Index()
	if !ok {
		return fmt.Errorf("%w: unknown proxy type %q", errno.ErrInvalidWrapper, p)
	}
	e.PushByte(idx)
	return nil
}

func compactBalance(e *scale.Encoder, value string) error {
	v, ok := new(big.Int).SetString(value, 10)
	if !ok || v.Sign() < 0 {
		return fmt.Errorf("%w: %q", errno.ErrInvalidAmount, value)
	}
	e.Compact(v)
	return nil
}

func multisigHeader(e *scale.Encoder, threshold int, others []string) error {
	if threshold < 2 || threshold > 0xFFFF {
		return fmt.Errorf("%w: threshold %d", errno.ErrInvalidWrapper, threshold)
	}
	e.U16(uint16(threshold))
	e.CompactUint(uint64(len(others)))
	for _, o := range others {
		if err := accountID(e, o); err != nil {
			return err
		}
	}
	return nil
}

func maybeTimepoint(e *scale.Encoder, tp *model.Timepoint) {
	e.Option(tp != nil, func(e *scale.Encoder) {
		e.U32(tp.Height)
		e.U32(tp.Index)
	})
}

func weight(e *scale.Encoder, w model.Weight) {
	e.CompactUint(w.RefTime)
	e.CompactUint(w.ProofSize)
}

func fixedHash(e *scale.Encoder, h string) error {
	raw, err := hex.DecodeString(strings.TrimPrefix(h, "0x"))
	if err != nil || len(raw) != 32 {
		return fmt.Errorf("%w: bad call hash %q", errno.ErrInvalidWrapper, h)
	}
	e.Raw(raw)
	return nil
}
