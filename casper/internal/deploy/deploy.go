package deploy

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/casper-ecosystem/casper-client-go/casper/common"
	"github.com/casper-ecosystem/casper-client-go/casper/internal/clvalue"
	"github.com/casper-ecosystem/casper-client-go/casper/internal/types"
)

var (
	ErrInvalidBodyHash   = errors.New("invalid body hash")
	ErrInvalidDeployHash = errors.New("invalid deploy hash")
	ErrInvalidApproval   = errors.New("invalid approval")
)

type Header struct {
	Account      types.PublicKey `json:"account"`
	Timestamp    types.Timestamp `json:"timestamp"`
	TTL          types.TimeDiff  `json:"ttl"`
	GasPrice     uint64          `json:"gas_price"`
	BodyHash     common.Hash     `json:"body_hash"`
	Dependencies []common.Hash   `json:"dependencies"`
	ChainName    string          `json:"chain_name"`
}

func (h Header) Bytes() []byte {
	w := clvalue.NewWriter()
	w.Raw(h.Account.Bytes()).
		U64(h.Timestamp.Millis()).
		U64(h.TTL.Millis()).
		U64(h.GasPrice).
		Raw(h.BodyHash[:]).
		Len(len(h.Dependencies))
	for _, dep := range h.Dependencies {
		w.Raw(dep[:])
	}
	w.Str(h.ChainName)
	return w.Bytes()
}

func (h Header) Hash() common.Hash {
	return common.Blake2bHash(h.Bytes())
}

type Approval struct {
	Signer    types.PublicKey `json:"signer"`
	Signature types.Signature `json:"signature"`
}

type Deploy struct {
	Hash      common.Hash          `json:"hash"`
	Header    Header               `json:"header"`
	Payment   ExecutableDeployItem `json:"payment"`
	Session   ExecutableDeployItem `json:"session"`
	Approvals []Approval           `json:"approvals"`
}

// Signer produces approvals. crypto.SecretKey implements it.
type Signer interface {
	PublicKey() types.PublicKey
	Sign(msg []byte) (types.Signature, error)
}

// BodyHash hashes the serialized payment followed by the serialized session.
func BodyHash(payment, session ExecutableDeployItem) common.Hash {
	w := clvalue.NewWriter()
	payment.Write(w)
	session.Write(w)
	return common.Blake2bHash(w.Bytes())
}

// New builds an unsigned deploy and computes its hashes.
func New(meta Metadata, payment, session ExecutableDeployItem) *Deploy {
	d := &Deploy{
		Header: Header{
			Account:      meta.Account,
			Timestamp:    meta.Timestamp,
			TTL:          meta.TTL,
			GasPrice:     meta.GasPrice,
			BodyHash:     BodyHash(payment, session),
			Dependencies: slices.Clone(meta.Dependencies),
			ChainName:    meta.ChainName,
		},
		Payment:   payment,
		Session:   session,
		Approvals: []Approval{},
	}
	if d.Header.Dependencies == nil {
		d.Header.Dependencies = []common.Hash{}
	}
	d.Hash = d.Header.Hash()
	return d
}

// Sign appends the signer's approval. Signing twice with the same key is a no-op.
func (d *Deploy) Sign(s Signer) error {
	signer := s.PublicKey()
	for _, a := range d.Approvals {
		if a.Signer.Equal(signer) {
			return nil
		}
	}
	sig, err := s.Sign(d.Hash[:])
	if err != nil {
		return fmt.Errorf("failed to sign deploy %s: %w", d.Hash, err)
	}
	d.Approvals = append(d.Approvals, Approval{Signer: signer, Signature: sig})
	return nil
}

// Validate recomputes both hashes and verifies every approval.
func (d *Deploy) Validate() error {
	if got := BodyHash(d.Payment, d.Session); got != d.Header.BodyHash {
		return fmt.Errorf("%w: header has %s, body hashes to %s", ErrInvalidBodyHash, d.Header.BodyHash, got)
	}
	if got := d.Header.Hash(); got != d.Hash {
		return fmt.Errorf("%w: deploy has %s, header hashes to %s", ErrInvalidDeployHash, d.Hash, got)
	}
	for i, a := range d.Approvals {
		if err := a.Signer.Verify(d.Hash[:], a.Signature); err != nil {
			return fmt.Errorf("%w #%d by %s: %w", ErrInvalidApproval, i+1, a.Signer, err)
		}
	}
	return nil
}

// WriteJSON writes the deploy in the node's JSON format.
func (d *Deploy) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(d)
}

// ReadJSON reads a deploy written by WriteJSON and checks its hashes.
// Approvals are not verified here, see Validate.
func ReadJSON(r io.Reader) (*Deploy, error) {
	var d Deploy
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return nil, fmt.Errorf("failed to decode deploy: %w", err)
	}
	if d.Approvals == nil {
		d.Approvals = []Approval{}
	}
	if d.Header.Dependencies == nil {
		d.Header.Dependencies = []common.Hash{}
	}
	if got := BodyHash(d.Payment, d.Session); got != d.Header.BodyHash {
		return nil, fmt.Errorf("%w: header has %s, body hashes to %s", ErrInvalidBodyHash, d.Header.BodyHash, got)
	}
	if got := d.Header.Hash(); got != d.Hash {
		return nil, fmt.Errorf("%w: deploy has %s, header hashes to %s", ErrInvalidDeployHash, d.Hash, got)
	}
	return &d, nil
}
