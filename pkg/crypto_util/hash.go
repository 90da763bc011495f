package crypto_util

import (
	"encoding/hex"

	"golang.org/x/crypto/blake2b"
	"lukechampine.com/blake3"
)

// Blake2b256 计算 blake2b-256 摘要。
// Substrate 的 call hash 与 multisig 账户 ID 都基于它。
func Blake2b256(data []byte) [32]byte {
	return blake2b.Sum256(data)
}

// Blake2b256Hex 返回 0x 前缀的十六进制 blake2b-256 摘要。
func Blake2b256Hex(data []byte) string {
	hash := blake2b.Sum256(data)
	return "0x" + hex.EncodeToString(hash[:])
}

// CalculateBlake3 计算输入的 Blake3 哈希值。
// 只用于本地缓存 key，不上链。
func CalculateBlake3(data []byte) string {
	hash := blake3.Sum256(data)
	return hex.EncodeToString(hash[:])
}
