package submission

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"wallet-txflow/internal/model"
)

// MultisigRepository 持久化 multisig 记账行
type MultisigRepository struct {
	db *gorm.DB
}

func NewMultisigRepository(db *gorm.DB) *MultisigRepository {
	return &MultisigRepository{db: db}
}

// WithTx 返回绑定到事务 tx 的仓库
func (r *MultisigRepository) WithTx(tx *gorm.DB) *MultisigRepository {
	return &MultisigRepository{db: tx}
}

// Save 幂等写入：同一 chain + account + call hash + signer 只保留第一条
func (r *MultisigRepository) Save(ctx context.Context, row *model.MultisigTransaction) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(row).Error
}

func (r *MultisigRepository) FindByCallHash(ctx context.Context, chainID, callHash string) ([]model.MultisigTransaction, error) {
	var rows []model.MultisigTransaction
	err := r.db.WithContext(ctx).
		Where("chain_id = ? AND call_hash = ?", chainID, callHash).
		Order("id").
		Find(&rows).Error
	return rows, err
}

// ListPending 返回账户下仍在签名中的操作
func (r *MultisigRepository) ListPending(ctx context.Context, chainID, accountID string) ([]model.MultisigTransaction, error) {
	var rows []model.MultisigTransaction
	err := r.db.WithContext(ctx).
		Where("chain_id = ? AND account_id = ? AND status = ?", chainID, accountID, model.MultisigStatusSigning).
		Order("created_at DESC").
		Find(&rows).Error
	return rows, err
}

// UpdateStatus 只更新仍在 SIGNING 的记录
func (r *MultisigRepository) UpdateStatus(ctx context.Context, chainID, callHash, status string) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&model.MultisigTransaction{}).
		Where("chain_id = ? AND call_hash = ? AND status = ?", chainID, callHash, model.MultisigStatusSigning).
		Update("status", status)
	return res.RowsAffected, res.Error
}
