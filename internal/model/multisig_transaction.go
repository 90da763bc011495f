package model

import (
	"encoding/json"
	"strings"
	"time"

	"gorm.io/gorm"
)

const (
	MultisigStatusSigning   = "SIGNING"
	MultisigStatusExecuted  = "EXECUTED"
	MultisigStatusCancelled = "CANCELLED"
)

// MultisigTransaction multisig 记账表
// 同一个 signer 对同一 call hash 只记录一次
type MultisigTransaction struct {
	ID               uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	ChainID          string    `gorm:"type:varchar(66);not null;uniqueIndex:idx_multisig_call" json:"chain_id"`
	AccountID        string    `gorm:"type:varchar(66);not null;uniqueIndex:idx_multisig_call;index" json:"account_id"`
	CallHash         string    `gorm:"type:varchar(66);not null;uniqueIndex:idx_multisig_call" json:"call_hash"`
	Signer           string    `gorm:"type:varchar(66);not null;uniqueIndex:idx_multisig_call" json:"signer"`
	CallData         string    `gorm:"type:text" json:"call_data"`
	Threshold        int       `gorm:"not null" json:"threshold"`
	OtherSignatories string    `gorm:"type:text;not null" json:"other_signatories"` // 逗号分隔, 已排序
	TxType           string    `gorm:"type:varchar(64);not null" json:"tx_type"`
	Description      string    `gorm:"type:text" json:"description"`
	Status           string    `gorm:"type:varchar(20);not null;default:'SIGNING'" json:"status"`
	BlockCreated     *uint32   `json:"block_created,omitempty"`
	IndexCreated     *uint32   `json:"index_created,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func (MultisigTransaction) TableName() string {
	return "multisig_transactions"
}

// NewMultisigTransaction 由组合结果生成记账行
func NewMultisigTransaction(rec MultisigTxRecord, description string) MultisigTransaction {
	row := MultisigTransaction{
		ChainID:          string(rec.ChainID),
		AccountID:        rec.AccountID,
		CallHash:         rec.CallHash,
		Signer:           rec.Signer,
		CallData:         rec.CallData,
		Threshold:        rec.Threshold,
		OtherSignatories: strings.Join(rec.OtherSignatories, ","),
		TxType:           string(rec.Transaction.Type),
		Description:      description,
		Status:           MultisigStatusSigning,
	}
	if rec.Timepoint != nil {
		h, i := rec.Timepoint.Height, rec.Timepoint.Index
		row.BlockCreated, row.IndexCreated = &h, &i
	}
	return row
}

// Record 还原为组合结果中的 MultisigTxRecord，Transaction 只保留类型
func (m MultisigTransaction) Record() MultisigTxRecord {
	rec := MultisigTxRecord{
		ChainID:     ChainID(m.ChainID),
		AccountID:   m.AccountID,
		Signer:      m.Signer,
		Threshold:   m.Threshold,
		CallHash:    m.CallHash,
		CallData:    m.CallData,
		Transaction: Transaction{ChainID: ChainID(m.ChainID), Type: TransactionType(m.TxType)},
	}
	if m.OtherSignatories != "" {
		rec.OtherSignatories = strings.Split(m.OtherSignatories, ",")
	}
	if m.BlockCreated != nil && m.IndexCreated != nil {
		rec.Timepoint = &Timepoint{Height: *m.BlockCreated, Index: *m.IndexCreated}
	}
	return rec
}

// OutboxMessage 本地消息表，与业务数据同一事务写入，由 RelayService 投递到 MQ
type OutboxMessage struct {
	ID        uint64         `gorm:"primaryKey;autoIncrement" json:"id"`
	Topic     string         `gorm:"type:varchar(255);not null" json:"topic"`
	Key       string         `gorm:"type:varchar(255)" json:"key"`
	Payload   []byte         `gorm:"type:text;not null" json:"payload"`
	Status    string         `gorm:"type:varchar(50);not null;default:'PENDING';index" json:"status"` // PENDING, SENT
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (OutboxMessage) TableName() string {
	return "outbox_messages"
}

// CreateOutboxMessage 在同一个事务中创建业务数据和 Outbox 消息
func CreateOutboxMessage(tx *gorm.DB, topic, key string, payload interface{}) error {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	msg := OutboxMessage{
		Topic:   topic,
		Key:     key,
		Payload: payloadBytes,
		Status:  "PENDING",
	}

	return tx.Create(&msg).Error
}
