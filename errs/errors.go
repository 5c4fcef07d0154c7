// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package errs

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// Kind identifies the terminal failure of a fill attempt.
type Kind int

const (
	Unknown Kind = iota
	EmptyOrderSet
	InvalidOrder
	UnknownChain
	InvalidDeadline
	SigningFailed
	EncodingFailed
	RelayRejected
	DeadlineExpired
	ConfirmationTimeout
	ConfirmationError
)

var kindNames = map[Kind]string{
	Unknown:             "Unknown",
	EmptyOrderSet:       "EmptyOrderSet",
	InvalidOrder:        "InvalidOrder",
	UnknownChain:        "UnknownChain",
	InvalidDeadline:     "InvalidDeadline",
	SigningFailed:       "SigningFailed",
	EncodingFailed:      "EncodingFailed",
	RelayRejected:       "RelayRejected",
	DeadlineExpired:     "DeadlineExpired",
	ConfirmationTimeout: "ConfirmationTimeout",
	ConfirmationError:   "ConfirmationError",
}

func (k Kind) String() string {
	name, ok := kindNames[k]
	if !ok {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return name
}

// FillError is returned by every stage of the fill pipeline. ChainID and TxHash are
// set when the failure can be attributed to a single chain or transaction.
type FillError struct {
	Kind    Kind
	ChainID uint64
	TxHash  common.Hash
	Err     error
}

func (e *FillError) Error() string {
	msg := e.Kind.String()
	if e.ChainID != 0 {
		msg = fmt.Sprintf("%s: chain %d", msg, e.ChainID)
	}
	if e.TxHash != (common.Hash{}) {
		msg = fmt.Sprintf("%s: tx %s", msg, e.TxHash.Hex())
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %s", msg, e.Err)
	}
	return msg
}

func (e *FillError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is match any FillError of the same kind.
func (e *FillError) Is(target error) bool {
	t, ok := target.(*FillError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.ChainID == 0 && t.TxHash == (common.Hash{}) && t.Err == nil
}

func New(kind Kind, err error) *FillError {
	return &FillError{Kind: kind, Err: err}
}

func Newf(kind Kind, format string, args ...any) *FillError {
	return &FillError{Kind: kind, Err: fmt.Errorf(format, args...)}
}

func ForChain(kind Kind, chainID uint64, err error) *FillError {
	return &FillError{Kind: kind, ChainID: chainID, Err: err}
}

func ForTx(kind Kind, chainID uint64, hash common.Hash, err error) *FillError {
	return &FillError{Kind: kind, ChainID: chainID, TxHash: hash, Err: err}
}

// KindOf returns the kind of the first FillError in the chain, or Unknown.
func KindOf(err error) Kind {
	var fe *FillError
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return Unknown
}

// Sentinel values usable with errors.Is.
var (
	ErrEmptyOrderSet       = &FillError{Kind: EmptyOrderSet}
	ErrInvalidOrder        = &FillError{Kind: InvalidOrder}
	ErrUnknownChain        = &FillError{Kind: UnknownChain}
	ErrInvalidDeadline     = &FillError{Kind: InvalidDeadline}
	ErrSigningFailed       = &FillError{Kind: SigningFailed}
	ErrEncodingFailed      = &FillError{Kind: EncodingFailed}
	ErrRelayRejected       = &FillError{Kind: RelayRejected}
	ErrDeadlineExpired     = &FillError{Kind: DeadlineExpired}
	ErrConfirmationTimeout = &FillError{Kind: ConfirmationTimeout}
	ErrConfirmationError   = &FillError{Kind: ConfirmationError}
)
