package callcodec

import (
	"encoding/binary"

	"wallet-txflow/internal/model"
	"wallet-txflow/pkg/scale"
)

// QueryCallInfoMethod is the runtime API used to price a bare call.
const QueryCallInfoMethod = "TransactionPaymentCallApi_query_call_info"

// DispatchInfo is the decoded RuntimeDispatchInfo.
type DispatchInfo struct {
	Weight     model.Weight
	Class      uint8
	PartialFee string
}

// QueryCallInfoParams encodes (call, u32 length) as expected by QueryCallInfoMethod.
func QueryCallInfoParams(call []byte) []byte {
	out := make([]byte, 0, len(call)+4)
	out = append(out, call...)
	return binary.LittleEndian.AppendUint32(out, uint32(len(call)))
}

func DecodeDispatchInfo(data []byte) (DispatchInfo, error) {
	d := scale.NewDecoder(data)

	refTime, err := d.Compact()
	if err != nil {
		return DispatchInfo{}, err
	}
	proofSize, err := d.Compact()
	if err != nil {
		return DispatchInfo{}, err
	}
	class, err := d.Byte()
	if err != nil {
		return DispatchInfo{}, err
	}
	fee, err := d.U128()
	if err != nil {
		return DispatchInfo{}, err
	}

	return DispatchInfo{
		Weight:     model.Weight{RefTime: refTime.Uint64(), ProofSize: proofSize.Uint64()},
		Class:      class,
		PartialFee: fee.String(),
	}, nil
}
