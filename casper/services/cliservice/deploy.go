package cliservice

import (
	"bytes"
	"fmt"
	"os"

	"github.com/casper-ecosystem/casper-client-go/casper/client"
	"github.com/casper-ecosystem/casper-client-go/casper/common"
	"github.com/casper-ecosystem/casper-client-go/casper/common/logging"
	"github.com/casper-ecosystem/casper-client-go/casper/internal/args"
	"github.com/casper-ecosystem/casper-client-go/casper/internal/crypto"
	"github.com/casper-ecosystem/casper-client-go/casper/internal/deploy"
	"github.com/casper-ecosystem/casper-client-go/casper/internal/types"
)

// DeployInput is the raw command line input of put-deploy and make-deploy.
type DeployInput struct {
	Session deploy.SessionOptions
	Payment deploy.PaymentOptions

	// SecretKey is the path of a PEM file. Without it the deploy stays
	// unsigned and SessionAccount is required.
	SecretKey      string
	SessionAccount string

	// Timestamp defaults to the current time.
	Timestamp    string
	TTL          string
	ChainName    string
	GasPrice     uint64
	Dependencies []string
}

// CreateDeploy resolves, assembles, builds and optionally signs a deploy.
func (s *Service) CreateDeploy(in DeployInput) (*deploy.Deploy, error) {
	session, err := deploy.ResolveSession(in.Session)
	if err != nil {
		return nil, err
	}
	payment, err := deploy.ResolvePayment(in.Payment)
	if err != nil {
		return nil, err
	}

	var signer *crypto.SecretKey
	if in.SecretKey != "" {
		signer, err = crypto.LoadSecretKey(in.SecretKey)
		if err != nil {
			return nil, err
		}
	}

	meta, err := s.metadata(in, signer)
	if err != nil {
		return nil, err
	}

	var opts []deploy.AssembleOption
	if in.Session.ArgsComplex != nil {
		complexArgs, err := readComplexArgs(*in.Session.ArgsComplex)
		if err != nil {
			return nil, err
		}
		opts = append(opts, deploy.WithSessionComplexArgs(complexArgs))
	}
	if in.Payment.ArgsComplex != nil {
		complexArgs, err := readComplexArgs(*in.Payment.ArgsComplex)
		if err != nil {
			return nil, err
		}
		opts = append(opts, deploy.WithPaymentComplexArgs(complexArgs))
	}

	params, err := deploy.Assemble(session, in.Session.Args, payment, in.Payment.Args, meta, opts...)
	if err != nil {
		return nil, err
	}

	d, err := deploy.NewBuilder(s.loader).Build(s.ctx, params)
	if err != nil {
		return nil, err
	}
	if signer != nil {
		if err := d.Sign(signer); err != nil {
			return nil, err
		}
	}

	s.logger.Debug().
		Stringer(logging.FieldDeployHash, d.Hash).
		Str(logging.FieldChainName, d.Header.ChainName).
		Stringer(logging.FieldAccount, d.Header.Account).
		Msg("Deploy created")
	return d, nil
}

func (s *Service) metadata(in DeployInput, signer *crypto.SecretKey) (deploy.Metadata, error) {
	meta := deploy.Metadata{
		ChainName: in.ChainName,
		GasPrice:  in.GasPrice,
	}

	switch {
	case in.SessionAccount != "":
		account, err := crypto.LoadPublicKey(in.SessionAccount)
		if err != nil {
			return deploy.Metadata{}, fmt.Errorf("session account: %w", err)
		}
		meta.Account = account
	case signer != nil:
		meta.Account = signer.PublicKey()
	}

	meta.Timestamp = types.NewTimestamp(s.clock.Now())
	if in.Timestamp != "" {
		ts, err := types.ParseTimestamp(in.Timestamp)
		if err != nil {
			return deploy.Metadata{}, err
		}
		meta.Timestamp = ts
	}

	ttl := in.TTL
	if ttl == "" {
		ttl = deploy.DefaultTTL
	}
	var err error
	if meta.TTL, err = types.ParseTimeDiff(ttl); err != nil {
		return deploy.Metadata{}, err
	}

	meta.Dependencies = make([]common.Hash, 0, len(in.Dependencies))
	for _, dep := range in.Dependencies {
		h, err := types.ParseHashAddr(dep)
		if err != nil {
			return deploy.Metadata{}, fmt.Errorf("dependency %q: %w", dep, err)
		}
		meta.Dependencies = append(meta.Dependencies, h)
	}
	return meta, nil
}

func readComplexArgs(path string) (args.NamedArgs, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read complex args: %w", err)
	}
	a, err := args.ReadComplexArgs(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return a, nil
}

// MakeDeploy creates a deploy and writes its JSON to output. With an empty
// output the JSON is returned instead.
func (s *Service) MakeDeploy(in DeployInput, output string, force bool) ([]byte, error) {
	d, err := s.CreateDeploy(in)
	if err != nil {
		return nil, err
	}
	return s.emitDeploy(d, output, force)
}

func (s *Service) emitDeploy(d *deploy.Deploy, output string, force bool) ([]byte, error) {
	var buf bytes.Buffer
	if err := d.WriteJSON(&buf); err != nil {
		return nil, err
	}
	if output == "" {
		return buf.Bytes(), nil
	}
	if err := writeOutput(output, buf.Bytes(), force); err != nil {
		return nil, err
	}
	s.logger.Info().
		Stringer(logging.FieldDeployHash, d.Hash).
		Str(logging.FieldPath, output).
		Msg("Deploy written")
	return nil, nil
}

// PutDeploy creates a deploy and sends it to the node.
func (s *Service) PutDeploy(in DeployInput) (*client.PutDeployResult, error) {
	c, err := s.nodeClient()
	if err != nil {
		return nil, err
	}
	d, err := s.CreateDeploy(in)
	if err != nil {
		return nil, err
	}
	return s.putDeploy(c, d)
}

func (s *Service) putDeploy(c client.Client, d *deploy.Deploy) (*client.PutDeployResult, error) {
	res, err := c.PutDeploy(s.ctx, d)
	if err != nil {
		s.logger.Error().Err(err).Stringer(logging.FieldDeployHash, d.Hash).Msg("Failed to send deploy")
		return nil, err
	}
	s.logger.Info().Stringer(logging.FieldDeployHash, res.DeployHash).Msg("Deploy sent")
	return res, nil
}

func readDeployFile(path string) (*deploy.Deploy, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return deploy.ReadJSON(f)
}

// SignDeploy adds an approval to the deploy read from input.
func (s *Service) SignDeploy(input, secretKey, output string, force bool) ([]byte, error) {
	d, err := readDeployFile(input)
	if err != nil {
		return nil, err
	}
	key, err := crypto.LoadSecretKey(secretKey)
	if err != nil {
		return nil, err
	}
	if err := d.Sign(key); err != nil {
		return nil, err
	}
	s.logger.Debug().
		Stringer(logging.FieldDeployHash, d.Hash).
		Stringer(logging.FieldPublicKey, key.PublicKey()).
		Msg("Deploy signed")
	return s.emitDeploy(d, output, force)
}

// SendDeploy validates the deploy read from input and sends it to the node.
func (s *Service) SendDeploy(input string) (*client.PutDeployResult, error) {
	c, err := s.nodeClient()
	if err != nil {
		return nil, err
	}
	d, err := readDeployFile(input)
	if err != nil {
		return nil, err
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return s.putDeploy(c, d)
}
