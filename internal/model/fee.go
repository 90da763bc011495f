package model

// FeeData 手续费聚合
// TotalFee = Fee * 交易数量；MultisigDeposit 与分片数量无关
type FeeData struct {
	Fee             string `json:"fee"`
	TotalFee        string `json:"totalFee"`
	MultisigDeposit string `json:"multisigDeposit"`
}

func ZeroFeeData() FeeData {
	return FeeData{Fee: "0", TotalFee: "0", MultisigDeposit: "0"}
}
