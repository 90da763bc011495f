// Package ss58 implements the Substrate SS58 address format.
//
// address = base58(prefix ‖ account id ‖ checksum), checksum = blake2b-512("SS58PRE" ‖ prefix ‖ account id)[:2]
package ss58

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcutil/base58"
	"golang.org/x/crypto/blake2b"
)

const (
	AccountIDLength = 32
	checksumLength  = 2
	maxPrefix       = 16383
)

var ssPrefix = []byte("SS58PRE")

var (
	ErrInvalidLength   = errors.New("ss58: invalid address length")
	ErrInvalidChecksum = errors.New("ss58: invalid checksum")
	ErrInvalidPrefix   = errors.New("ss58: invalid prefix")
	ErrInvalidHex      = errors.New("ss58: invalid account id hex")
)

// Encode 将 32 字节 account id 编码为指定网络前缀的地址
func Encode(accountID []byte, prefix uint16) (string, error) {
	if len(accountID) != AccountIDLength {
		return "", ErrInvalidLength
	}
	if prefix > maxPrefix {
		return "", ErrInvalidPrefix
	}

	var payload []byte
	if prefix < 64 {
		payload = append(payload, byte(prefix))
	} else {
		// 两字节前缀的特殊编码
		first := byte((prefix&0x00FC)>>2) | 0x40
		second := byte(prefix>>8) | byte((prefix&0x0003)<<6)
		payload = append(payload, first, second)
	}
	payload = append(payload, accountID...)

	sum := checksum(payload)
	payload = append(payload, sum[:checksumLength]...)

	return base58.Encode(payload), nil
}

// Decode 解析地址，返回 account id 与前缀
func Decode(address string) ([]byte, uint16, error) {
	raw := base58.Decode(address)
	if len(raw) < 1 {
		return nil, 0, ErrInvalidLength
	}

	var (
		prefix    uint16
		prefixLen int
	)
	switch {
	case raw[0] < 64:
		prefix, prefixLen = uint16(raw[0]), 1
	case raw[0] < 128:
		if len(raw) < 2 {
			return nil, 0, ErrInvalidLength
		}
		lower := (raw[0]<<2)&0xFC | raw[1]>>6
		upper := raw[1] & 0x3F
		prefix, prefixLen = uint16(lower)|uint16(upper)<<8, 2
	default:
		return nil, 0, ErrInvalidPrefix
	}

	if len(raw) != prefixLen+AccountIDLength+checksumLength {
		return nil, 0, ErrInvalidLength
	}

	body := raw[:prefixLen+AccountIDLength]
	sum := checksum(body)
	if !bytes.Equal(sum[:checksumLength], raw[prefixLen+AccountIDLength:]) {
		return nil, 0, ErrInvalidChecksum
	}

	accountID := make([]byte, AccountIDLength)
	copy(accountID, raw[prefixLen:prefixLen+AccountIDLength])
	return accountID, prefix, nil
}

// ToAccountID accepts either a 0x-prefixed hex account id or an SS58 address.
func ToAccountID(value string) ([]byte, error) {
	if strings.HasPrefix(value, "0x") {
		id, err := hex.DecodeString(value[2:])
		if err != nil || len(id) != AccountIDLength {
			return nil, ErrInvalidHex
		}
		return id, nil
	}

	id, _, err := Decode(value)
	return id, err
}

// ToAddress normalises an account id or address of any network to the given prefix.
func ToAddress(value string, prefix uint16) (string, error) {
	id, err := ToAccountID(value)
	if err != nil {
		return "", fmt.Errorf("normalise %q: %w", value, err)
	}
	return Encode(id, prefix)
}

// ToHex returns the 0x-prefixed hex account id of an address or account id.
func ToHex(value string) (string, error) {
	id, err := ToAccountID(value)
	if err != nil {
		return "", err
	}
	return "0x" + hex.EncodeToString(id), nil
}

func checksum(data []byte) [blake2b.Size]byte {
	buf := make([]byte, 0, len(ssPrefix)+len(data))
	buf = append(buf, ssPrefix...)
	buf = append(buf, data...)
	return blake2b.Sum512(buf)
}
