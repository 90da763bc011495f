package callcodec

import (
	"bytes"
	"fmt"
	"sort"

	"wallet-txflow/pkg/crypto_util"
	"wallet-txflow/pkg/errno"
	"wallet-txflow/pkg/scale"
	"wallet-txflow/pkg/ss58"
)

var multisigEntropyPrefix = []byte("modlpy/utilisuba")

// MultisigAccountID derives the multisig account id the runtime assigns to a
// signatory set and threshold, returned as 0x hex.
func MultisigAccountID(signatories []string, threshold int) (string, error) {
	if threshold < 1 || threshold > 0xFFFF {
		return "", fmt.Errorf("%w: threshold %d", errno.ErrInvalidWrapper, threshold)
	}

	ids := make([][]byte, 0, len(signatories))
	for _, s := range signatories {
		id, err := ss58.ToAccountID(s)
		if err != nil {
			return "", fmt.Errorf("%w: %s", errno.ErrInvalidAddress, s)
		}
		ids = append(ids, id)
	}
	// 链上按 account id 字节序排序
	sort.Slice(ids, func(i, j int) bool { return bytes.Compare(ids[i], ids[j]) < 0 })

	e := scale.NewEncoder()
	e.Raw(multisigEntropyPrefix)
	e.CompactUint(uint64(len(ids)))
	for _, id := range ids {
		e.Raw(id)
	}
	e.U16(uint16(threshold))

	return crypto_util.Blake2b256Hex(e.Bytes()), nil
}
