// Package ocerr defines the tagged failure surface shared by every core
// package. Failing operations return an *Error carrying a Kind a caller
// can branch on with errors.Is. A few caller errors panic instead of
// returning an *Error: poseidon2.HashSequenceWithDomain with neither
// inputs nor a seed, a non-contiguous merkle append, and a merkle proof
// request for a cid beyond the latest leaf.
package ocerr

import (
	"errors"
	"fmt"
)

// Kind tags the category of a failure.
type Kind int

const (
	// InvalidHex marks malformed hex input.
	InvalidHex Kind = iota
	// PointNotOnCurve marks a point failing the curve equation.
	PointNotOnCurve
	// InvalidCompressedPoint marks a wrong-length or undecodable compressed point.
	InvalidCompressedPoint
	// NoSquareRoot marks a y-coordinate with no corresponding x.
	NoSquareRoot
	// SeedTooShort marks a passphrase under 16 bytes.
	SeedTooShort
	// KeyDerivation marks an HKDF expansion failure.
	KeyDerivation
	// InvalidKeyPair marks a reconstructed key pair that fails validation.
	InvalidKeyPair
	// Encryption marks an AEAD seal failure.
	Encryption
	// DecryptionFailed is surfaced only when a caller demands an error for
	// a failed memo open; ordinary scanning returns a negative result instead.
	DecryptionFailed
	// Other marks structural violations such as a wrong record length.
	Other
)

func (k Kind) String() string {
	switch k {
	case InvalidHex:
		return "invalid_hex"
	case PointNotOnCurve:
		return "point_not_on_curve"
	case InvalidCompressedPoint:
		return "invalid_compressed_point"
	case NoSquareRoot:
		return "no_square_root"
	case SeedTooShort:
		return "seed_too_short"
	case KeyDerivation:
		return "key_derivation"
	case InvalidKeyPair:
		return "invalid_key_pair"
	case Encryption:
		return "encryption"
	case DecryptionFailed:
		return "decryption_failed"
	default:
		return "other"
	}
}

// Error is the concrete error type returned by every core operation that
// can fail. It wraps an optional cause and tags it with a Kind.
type Error struct {
	Kind  Kind
	Msg   string
	Cause error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error { return e.Cause }

// Is reports whether target is an *Error with the same Kind, so callers
// can write errors.Is(err, ocerr.New(ocerr.PointNotOnCurve, "")).
func (e *Error) Is(target error) bool {
	var o *Error
	if errors.As(target, &o) {
		return o.Kind == e.Kind
	}
	return false
}

// New builds an *Error with no underlying cause.
func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

// Wrap builds an *Error tagging an underlying cause.
func Wrap(kind Kind, msg string, cause error) *Error {
	return &Error{Kind: kind, Msg: msg, Cause: cause}
}

// sentinels usable with errors.Is(err, ocerr.ErrPointNotOnCurve) et al.
var (
	ErrInvalidHex             = New(InvalidHex, "")
	ErrPointNotOnCurve        = New(PointNotOnCurve, "")
	ErrInvalidCompressedPoint = New(InvalidCompressedPoint, "")
	ErrNoSquareRoot           = New(NoSquareRoot, "")
	ErrSeedTooShort           = New(SeedTooShort, "")
	ErrKeyDerivation          = New(KeyDerivation, "")
	ErrInvalidKeyPair         = New(InvalidKeyPair, "")
	ErrEncryption             = New(Encryption, "")
	ErrDecryptionFailed       = New(DecryptionFailed, "")
	ErrOther                  = New(Other, "")
)
