package cliservice

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/casper-ecosystem/casper-client-go/casper/client"
	"github.com/casper-ecosystem/casper-client-go/casper/common"
	"github.com/casper-ecosystem/casper-client-go/casper/internal/args"
	"github.com/casper-ecosystem/casper-client-go/casper/internal/crypto"
	"github.com/casper-ecosystem/casper-client-go/casper/internal/deploy"
	"github.com/casper-ecosystem/casper-client-go/casper/internal/types"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/suite"
)

var errNotFound = errors.New("deploy not found")

type fakeClient struct {
	mu       sync.Mutex
	deploys  map[common.Hash]*deploy.Deploy
	putCalls int

	block client.BlockIdentifier
	state client.GlobalStateIdentifier
	key   types.Key
	path  []string
}

var _ client.Client = (*fakeClient)(nil)

func (c *fakeClient) RawCall(context.Context, string, any) (json.RawMessage, error) {
	return nil, errors.New("not implemented")
}

func (c *fakeClient) PutDeploy(_ context.Context, d *deploy.Deploy) (*client.PutDeployResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.putCalls++
	c.deploys[d.Hash] = d
	return &client.PutDeployResult{APIVersion: "1.5.6", DeployHash: d.Hash}, nil
}

func (c *fakeClient) GetDeploy(_ context.Context, hash common.Hash, _ bool) (*client.GetDeployResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	d, ok := c.deploys[hash]
	if !ok {
		return nil, errNotFound
	}
	return &client.GetDeployResult{APIVersion: "1.5.6", Deploy: d}, nil
}

func (c *fakeClient) GetStatus(context.Context) (*client.NodeStatus, error) {
	return &client.NodeStatus{APIVersion: "1.5.6", ChainspecName: "casper-test"}, nil
}

func (c *fakeClient) GetBlock(_ context.Context, id client.BlockIdentifier) (*client.GetBlockResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.block = id
	return &client.GetBlockResult{APIVersion: "1.5.6", Block: &client.Block{}}, nil
}

func (c *fakeClient) GetChainspec(context.Context) (*client.GetChainspecResult, error) {
	return &client.GetChainspecResult{APIVersion: "1.5.6"}, nil
}

func (c *fakeClient) QueryGlobalState(
	_ context.Context, state client.GlobalStateIdentifier, key types.Key, path []string,
) (*client.QueryGlobalStateResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state, c.key, c.path = state, key, path
	return &client.QueryGlobalStateResult{APIVersion: "1.5.6"}, nil
}

func (c *fakeClient) GetAuctionInfo(_ context.Context, id client.BlockIdentifier) (*client.GetAuctionInfoResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.block = id
	return &client.GetAuctionInfoResult{APIVersion: "1.5.6"}, nil
}

type fakeLoader struct{}

func (fakeLoader) LoadModule(context.Context, string) ([]byte, error) {
	return []byte{0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00}, nil
}

type ServiceSuite struct {
	suite.Suite

	dir     string
	keyPath string
	key     *crypto.SecretKey
	client  *fakeClient
	clock   *clockwork.FakeClock
	service *Service
}

func (s *ServiceSuite) SetupTest() {
	s.dir = s.T().TempDir()
	s.client = &fakeClient{deploys: make(map[common.Hash]*deploy.Deploy)}
	s.clock = clockwork.NewFakeClockAt(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC))
	s.service = NewService(s.T().Context(), s.client, s.clock, fakeLoader{})

	var err error
	s.key, err = crypto.GenerateKey(types.AlgorithmEd25519)
	s.Require().NoError(err)
	files, err := crypto.WriteKeyFiles(s.dir, s.key, false)
	s.Require().NoError(err)
	s.keyPath = files.SecretKey
}

func ptr[T any](v T) *T { return &v }

func (s *ServiceSuite) transferInput() DeployInput {
	return DeployInput{
		Session: deploy.SessionOptions{
			Transfer: true,
			SourceOptions: deploy.SourceOptions{Args: []string{
				"amount:u512='2500000000'",
				"target:public_key='" + s.key.PublicKey().String() + "'",
				"id:opt_u64=null",
			}},
		},
		Payment:   deploy.PaymentOptions{StandardAmount: ptr("100000000")},
		SecretKey: s.keyPath,
		ChainName: "casper-test",
	}
}

func (s *ServiceSuite) TestCreateDeploy() {
	d, err := s.service.CreateDeploy(s.transferInput())
	s.Require().NoError(err)

	s.Equal(deploy.ItemTransfer, d.Session.Kind)
	s.Equal([]string{"amount", "target", "id"}, d.Session.Args.Names())
	s.True(d.Payment.IsStandardPayment())
	s.Equal("2024-05-01T12:00:00.000Z", d.Header.Timestamp.String())
	s.Equal("30m", d.Header.TTL.String())
	s.Equal(uint64(deploy.DefaultGasPrice), d.Header.GasPrice)
	s.True(s.key.PublicKey().Equal(d.Header.Account))
	s.Require().Len(d.Approvals, 1)
	s.NoError(d.Validate())
}

func (s *ServiceSuite) TestCreateDeployUnsigned() {
	in := s.transferInput()
	in.SecretKey = ""
	in.SessionAccount = filepath.Join(s.dir, crypto.PublicKeyHexFile)
	in.Timestamp = "2020-01-01 00:00:00"
	in.TTL = "1hr 12min"
	in.Dependencies = []string{"hash-" + common.Blake2bHash(nil).Hex()}

	d, err := s.service.CreateDeploy(in)
	s.Require().NoError(err)
	s.Empty(d.Approvals)
	s.True(s.key.PublicKey().Equal(d.Header.Account))
	s.Equal("2020-01-01T00:00:00.000Z", d.Header.Timestamp.String())
	s.Equal("1h 12m", d.Header.TTL.String())
	s.Equal([]common.Hash{common.Blake2bHash(nil)}, d.Header.Dependencies)

	in.SessionAccount = ""
	_, err = s.service.CreateDeploy(in)
	s.ErrorIs(err, deploy.ErrMissingRequiredField)
}

func (s *ServiceSuite) TestCreateDeployErrors() {
	in := s.transferInput()
	in.Session.Path = ptr("session.wasm")
	_, err := s.service.CreateDeploy(in)
	s.ErrorIs(err, deploy.ErrConflictingArguments)

	in = s.transferInput()
	in.Session.Args = append(in.Session.Args, "bad:u8='256'", "worse:bool='1'")
	_, err = s.service.CreateDeploy(in)
	s.ErrorIs(err, args.ErrInvalidNumber)
	s.ErrorIs(err, args.ErrInvalidValue)

	in = s.transferInput()
	in.TTL = "soon"
	_, err = s.service.CreateDeploy(in)
	s.ErrorIs(err, types.ErrInvalidDuration)
}

func (s *ServiceSuite) TestComplexArgs() {
	complexArgs, err := s.service.EncodeArgs([]string{"amount:u512='5'", "target:account_hash='" + s.key.PublicKey().AccountHash().String() + "'"})
	s.Require().NoError(err)
	path := filepath.Join(s.dir, "args.bin")
	s.Require().NoError(os.WriteFile(path, complexArgs.ToBytes(), 0o600))

	in := s.transferInput()
	in.Session.Args = nil
	in.Session.ArgsComplex = &path
	d, err := s.service.CreateDeploy(in)
	s.Require().NoError(err)
	s.Equal(complexArgs.ToBytes(), d.Session.Args.ToBytes())
}

func (s *ServiceSuite) TestMakeSignSend() {
	unsigned := s.transferInput()
	unsigned.SecretKey = ""
	unsigned.SessionAccount = s.key.PublicKey().String()

	out := filepath.Join(s.dir, "deploy.json")
	data, err := s.service.MakeDeploy(unsigned, out, false)
	s.Require().NoError(err)
	s.Nil(data)

	_, err = s.service.MakeDeploy(unsigned, out, false)
	s.ErrorIs(err, ErrFileExists)

	data, err = s.service.SignDeploy(out, s.keyPath, "", false)
	s.Require().NoError(err)
	s.Contains(string(data), `"approvals"`)

	signed := filepath.Join(s.dir, "signed.json")
	_, err = s.service.SignDeploy(out, s.keyPath, signed, false)
	s.Require().NoError(err)

	res, err := s.service.SendDeploy(signed)
	s.Require().NoError(err)
	s.Equal(1, s.client.putCalls)

	got, err := s.service.GetDeploys([]common.Hash{res.DeployHash}, false)
	s.Require().NoError(err)
	s.Require().Len(got, 1)
	s.Len(got[0].Deploy.Approvals, 1)
}

func (s *ServiceSuite) TestPutAndGetDeploys() {
	var hashes []common.Hash
	for i := range 3 {
		in := s.transferInput()
		in.GasPrice = uint64(i + 1)
		res, err := s.service.PutDeploy(in)
		s.Require().NoError(err)
		hashes = append(hashes, res.DeployHash)
	}

	got, err := s.service.GetDeploys(hashes, true)
	s.Require().NoError(err)
	s.Require().Len(got, 3)
	for i, res := range got {
		s.Equal(hashes[i], res.Deploy.Hash)
		s.Equal(uint64(i+1), res.Deploy.Header.GasPrice)
	}

	_, err = s.service.GetDeploys(append(hashes, common.EmptyHash), false)
	s.ErrorIs(err, errNotFound)
}

func (s *ServiceSuite) TestNoClient() {
	service := NewService(s.T().Context(), nil, s.clock, fakeLoader{})
	_, err := service.PutDeploy(s.transferInput())
	s.ErrorIs(err, ErrNoClient)
	_, err = service.GetStatus()
	s.ErrorIs(err, ErrNoClient)
	_, err = service.GetBlock("")
	s.ErrorIs(err, ErrNoClient)
	_, err = service.GetChainspec()
	s.ErrorIs(err, ErrNoClient)

	_, err = service.MakeDeploy(s.transferInput(), "", false)
	s.NoError(err)
}

func (s *ServiceSuite) TestGenerateKeys() {
	dir := filepath.Join(s.dir, "secp")
	files, pk, err := s.service.GenerateKeys(dir, types.AlgorithmSecp256k1, false)
	s.Require().NoError(err)
	s.Equal(types.AlgorithmSecp256k1, pk.Algorithm)

	key, err := crypto.LoadSecretKey(files.SecretKey)
	s.Require().NoError(err)
	s.True(pk.Equal(key.PublicKey()))

	_, _, err = s.service.GenerateKeys(dir, types.AlgorithmSecp256k1, false)
	s.ErrorIs(err, crypto.ErrFileExists)
}

func (s *ServiceSuite) TestBlockIdentifiers() {
	_, err := s.service.GetBlock("42")
	s.Require().NoError(err)
	s.Equal(client.BlockByHeight(42), s.client.block)

	_, err = s.service.GetAuctionInfo("")
	s.Require().NoError(err)
	s.True(s.client.block.Latest())

	_, err = s.service.GetBlock("not-a-block")
	s.ErrorIs(err, client.ErrInvalidIdentifier)
	_, err = s.service.GetAuctionInfo("-3")
	s.ErrorIs(err, client.ErrInvalidIdentifier)
}

func (s *ServiceSuite) TestQueryGlobalState() {
	root := common.BytesToHash([]byte{7})
	_, err := s.service.QueryGlobalState(QueryInput{
		StateRootHash: root.Hex(),
		Key:           s.key.PublicKey().String(),
		Path:          "/counter//count/",
	})
	s.Require().NoError(err)
	s.Equal(client.StateAtRoot(root), s.client.state)
	s.Equal(types.NewAccountKey(s.key.PublicKey().AccountHash()), s.client.key)
	s.Equal([]string{"counter", "count"}, s.client.path)

	hashKey := "hash-" + root.Hex()
	_, err = s.service.QueryGlobalState(QueryInput{BlockHash: root.Hex(), Key: hashKey})
	s.Require().NoError(err)
	s.Equal(client.StateAtBlock(root), s.client.state)
	s.Equal(hashKey, s.client.key.String())
	s.Empty(s.client.path)

	_, err = s.service.QueryGlobalState(QueryInput{
		Key:       filepath.Join(s.dir, crypto.PublicKeyHexFile),
		BlockHash: root.Hex(),
	})
	s.Require().NoError(err)
	s.Equal(types.NewAccountKey(s.key.PublicKey().AccountHash()), s.client.key)

	_, err = s.service.QueryGlobalState(QueryInput{Key: hashKey})
	s.ErrorIs(err, client.ErrInvalidIdentifier)
	_, err = s.service.QueryGlobalState(QueryInput{BlockHash: root.Hex(), StateRootHash: root.Hex(), Key: hashKey})
	s.ErrorIs(err, client.ErrInvalidIdentifier)
	_, err = s.service.QueryGlobalState(QueryInput{BlockHash: root.Hex(), Key: "uref-nonsense"})
	s.Error(err)
}

func TestServiceSuite(t *testing.T) {
	t.Parallel()

	suite.Run(t, new(ServiceSuite))
}

func TestFormatMotes(t *testing.T) {
	t.Parallel()

	tests := map[uint64]string{
		0:             "0 CSPR",
		1:             "0.000000001 CSPR",
		2_500_000_000: "2.5 CSPR",
		1_000_000_000: "1 CSPR",
	}
	for motes, want := range tests {
		if got := FormatMotes(types.NewU512(motes)); got != want {
			t.Errorf("FormatMotes(%d) = %q, want %q", motes, got, want)
		}
	}
}

func TestFormatExecution(t *testing.T) {
	t.Parallel()

	res := &client.GetDeployResult{}
	if got := FormatExecution(res); got != "Not executed yet" {
		t.Fatalf("unexpected %q", got)
	}

	block := common.Blake2bHash([]byte("block"))
	res.ExecutionResults = make([]client.ExecutionResult, 1)
	res.ExecutionResults[0].BlockHash = block
	res.ExecutionResults[0].Result.Failure = &client.ExecutionOutcome{Cost: types.NewU512(1_500_000_000), ErrorMessage: "User error: 1"}
	want := "Block " + block.Hex() + ": failure (User error: 1), cost 1.5 CSPR"
	if got := FormatExecution(res); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}
