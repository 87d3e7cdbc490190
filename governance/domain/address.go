package domain

import (
	"encoding/hex"
	"encoding/json"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// PaymentAddress is a 20-byte payment address, rendered as "0x" followed by
// 40 lowercase hex digits per the wire format. The underlying storage is
// go-ethereum's common.Address so downstream reporting can reuse its
// checksum/serialization helpers if an embedder needs them.
type PaymentAddress common.Address

// TxHash is a 32-byte transaction hash, rendered as "0x" followed by 64
// lowercase hex digits.
type TxHash common.Hash

// ParsePaymentAddress validates and normalizes a payment address. Mixed-case
// hex is accepted at ingress; the stored/serialized form is always
// lowercase with a "0x" prefix, per spec §6.
func ParsePaymentAddress(s string) (PaymentAddress, error) {
	raw, err := decodeFixedHex(s, 20)
	if err != nil {
		return PaymentAddress{}, InvalidArgument("ParsePaymentAddress", "%v", err)
	}
	var addr common.Address
	copy(addr[:], raw)
	return PaymentAddress(addr), nil
}

// String renders the address as "0x" + 40 lowercase hex digits.
func (a PaymentAddress) String() string {
	return "0x" + hex.EncodeToString(a[:])
}

// MarshalJSON renders the address as its hex string form.
func (a PaymentAddress) MarshalJSON() ([]byte, error) {
	return []byte(`"` + a.String() + `"`), nil
}

// UnmarshalJSON parses the address from its hex string form.
func (a *PaymentAddress) UnmarshalJSON(data []byte) error {
	s, err := unquoteJSONString(data)
	if err != nil {
		return err
	}
	parsed, err := ParsePaymentAddress(s)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// IsZero reports whether the address is the unset zero value.
func (a PaymentAddress) IsZero() bool {
	return a == PaymentAddress{}
}

// ParseTxHash validates and normalizes a transaction hash.
func ParseTxHash(s string) (TxHash, error) {
	raw, err := decodeFixedHex(s, 32)
	if err != nil {
		return TxHash{}, InvalidArgument("ParseTxHash", "%v", err)
	}
	var h common.Hash
	copy(h[:], raw)
	return TxHash(h), nil
}

// String renders the hash as "0x" + 64 lowercase hex digits.
func (h TxHash) String() string {
	return "0x" + hex.EncodeToString(h[:])
}

// MarshalJSON renders the hash as its hex string form.
func (h TxHash) MarshalJSON() ([]byte, error) {
	return []byte(`"` + h.String() + `"`), nil
}

// UnmarshalJSON parses the hash from its hex string form.
func (h *TxHash) UnmarshalJSON(data []byte) error {
	s, err := unquoteJSONString(data)
	if err != nil {
		return err
	}
	parsed, err := ParseTxHash(s)
	if err != nil {
		return err
	}
	*h = parsed
	return nil
}

func unquoteJSONString(data []byte) (string, error) {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return "", InvalidArgument("unquoteJSONString", "%v", err)
	}
	return s, nil
}

func decodeFixedHex(s string, n int) ([]byte, error) {
	trimmed := strings.TrimPrefix(s, "0x")
	trimmed = strings.TrimPrefix(trimmed, "0X")
	if len(trimmed) != n*2 {
		return nil, NewError("decodeFixedHex", KindInvalidArgument, "expected %d hex digits, got %d", n*2, len(trimmed))
	}
	raw, err := hex.DecodeString(strings.ToLower(trimmed))
	if err != nil {
		return nil, NewError("decodeFixedHex", KindInvalidArgument, "not valid hex: %v", err)
	}
	return raw, nil
}
