package rpc

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/casper-ecosystem/casper-client-go/casper/client"
	"github.com/casper-ecosystem/casper-client-go/casper/common"
	"github.com/casper-ecosystem/casper-client-go/casper/common/check"
	"github.com/casper-ecosystem/casper-client-go/casper/common/logging"
	"github.com/casper-ecosystem/casper-client-go/casper/internal/deploy"
	"github.com/casper-ecosystem/casper-client-go/casper/internal/types"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

var (
	ErrFailedToMarshalRequest    = errors.New("failed to marshal request")
	ErrFailedToSendRequest       = errors.New("failed to send request")
	ErrUnexpectedStatusCode      = errors.New("unexpected status code")
	ErrFailedToReadResponse      = errors.New("failed to read response")
	ErrFailedToUnmarshalResponse = errors.New("failed to unmarshal response")
	ErrRPCError                  = errors.New("rpc error")
	ErrUnsupportedAPIVersion     = errors.New("unsupported api version")
)

// StatusCodeError is returned when the node answers with a status other than
// 200 OK. It matches ErrUnexpectedStatusCode.
type StatusCodeError struct {
	Code int
	Body string
}

func (e *StatusCodeError) Error() string {
	return fmt.Sprintf("%s: %d: %s", ErrUnexpectedStatusCode, e.Code, e.Body)
}

func (e *StatusCodeError) Is(target error) bool {
	return target == ErrUnexpectedStatusCode
}

const (
	Account_putDeploy = "account_put_deploy"
	Info_getDeploy    = "info_get_deploy"
	Info_getStatus    = "info_get_status"

	Chain_getBlock       = "chain_get_block"
	Info_getChainspec    = "info_get_chainspec"
	Query_globalState    = "query_global_state"
	State_getAuctionInfo = "state_get_auction_info"
)

// Path of the JSON-RPC endpoint relative to the node address.
const rpcPath = "/rpc"

// SupportedAPIVersions is the range of node api_version values this client understands.
const SupportedAPIVersions = ">= 1.0.0, < 3.0.0"

var supportedAPIVersions = func() *semver.Constraints {
	c, err := semver.NewConstraint(SupportedAPIVersions)
	check.PanicIfErr(err)
	return c
}()

type Client struct {
	endpoint string
	id       string
	client   http.Client
	headers  map[string]string
	logger   zerolog.Logger
	retrier  *common.RetryRunner
}

type Request struct {
	Version string `json:"jsonrpc"`
	Method  string `json:"method"`
	Params  any    `json:"params,omitempty"`
	Id      any    `json:"id"`
}

// NewRequest builds a JSON-RPC 2.0 request. An id made of digits only is sent
// as a number.
func NewRequest(id string, method string, params any) *Request {
	r := &Request{
		Version: "2.0",
		Method:  method,
		Id:      id,
		Params:  params,
	}
	if n, err := strconv.ParseInt(id, 10, 64); err == nil {
		r.Id = n
	}
	return r
}

// RPCError is the error object of a JSON-RPC response.
type RPCError struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

func (e *RPCError) Error() string {
	msg := fmt.Sprintf("%s: %s (code %d)", ErrRPCError, e.Message, e.Code)
	if len(e.Data) > 0 {
		msg += ": " + string(e.Data)
	}
	return msg
}

func (e *RPCError) Is(target error) bool {
	return target == ErrRPCError
}

var _ client.Client = (*Client)(nil)

func NewClient(endpoint string, logger zerolog.Logger, opts ...Option) *Client {
	return NewClientWithDefaultHeaders(endpoint, logger, nil, opts...)
}

// NewHttpClient maps a node address to an HTTP client and the JSON-RPC URL.
// Besides http(s) URLs it accepts unix://<socket> and tcp://<host:port>.
func NewHttpClient(url string) (http.Client, string) {
	client := http.Client{}
	endpoint := strings.TrimSuffix(url, "/")
	if strings.HasPrefix(url, "unix://") {
		socketPath := strings.TrimPrefix(url, "unix://")
		endpoint = "http://unix"
		check.PanicIfNot(socketPath != "")
		client.Transport = &http.Transport{
			DialContext: func(_ context.Context, _, _ string) (net.Conn, error) {
				return net.Dial("unix", socketPath)
			},
		}
	} else if strings.HasPrefix(url, "tcp://") {
		endpoint = "http://" + strings.TrimPrefix(endpoint, "tcp://")
	}
	if !strings.HasSuffix(endpoint, rpcPath) {
		endpoint += rpcPath
	}
	return client, endpoint
}

func NewClientWithDefaultHeaders(
	url string, logger zerolog.Logger, headers map[string]string, opts ...Option,
) *Client {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}

	client, endpoint := NewHttpClient(url)
	client.Timeout = cfg.timeout
	c := &Client{
		endpoint: endpoint,
		id:       cfg.id,
		logger:   logger,
		headers:  headers,
		client:   client,
	}

	if cfg.retry != nil {
		retrier := common.NewRetryRunner(*cfg.retry, c.logger)
		c.retrier = &retrier
	}

	return c
}

func (c *Client) Endpoint() string {
	return c.endpoint
}

func (c *Client) getNextId() string {
	if c.id != "" {
		return c.id
	}
	return uuid.NewString()
}

func (c *Client) call(ctx context.Context, method string, params any) (json.RawMessage, error) {
	request := NewRequest(c.getNextId(), method, params)

	var result json.RawMessage
	call := func(ctx context.Context) error {
		var err error
		result, err = c.performRequest(ctx, request)
		return err
	}

	var err error
	if c.retrier != nil {
		err = c.retrier.Do(ctx, call)
	} else {
		err = call(ctx)
	}
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (c *Client) performRequest(ctx context.Context, request *Request) (json.RawMessage, error) {
	requestBody, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFailedToMarshalRequest, err)
	}

	body, err := c.PlainTextCall(ctx, requestBody)
	if err != nil {
		return nil, err
	}

	var rpcResponse struct {
		Result json.RawMessage `json:"result"`
		Error  *RPCError       `json:"error"`
	}
	if err := json.Unmarshal(body, &rpcResponse); err != nil {
		c.logger.Debug().Str("response", string(body)).Msg("failed to unmarshal response")
		return nil, fmt.Errorf("%w: %w", ErrFailedToUnmarshalResponse, err)
	}
	c.logger.Trace().RawJSON("response", body).Send()

	if rpcResponse.Error != nil {
		return nil, rpcResponse.Error
	}
	return rpcResponse.Result, nil
}

func (c *Client) PlainTextCall(ctx context.Context, requestBody []byte) (json.RawMessage, error) {
	c.logger.Trace().RawJSON("request", requestBody).Send()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewBuffer(requestBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	for key, value := range c.headers {
		req.Header.Set(key, value)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFailedToSendRequest, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFailedToReadResponse, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusCodeError{Code: resp.StatusCode, Body: string(body)}
	}
	return body, nil
}

func (c *Client) RawCall(ctx context.Context, method string, params any) (json.RawMessage, error) {
	return c.call(ctx, method, params)
}

// callInto performs the call, decodes the result into out and checks its api_version.
func (c *Client) callInto(ctx context.Context, method string, params any, out any) error {
	raw, err := c.call(ctx, method, params)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrFailedToUnmarshalResponse, method, err)
	}

	var versioned struct {
		APIVersion string `json:"api_version"`
	}
	if err := json.Unmarshal(raw, &versioned); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrFailedToUnmarshalResponse, method, err)
	}
	return c.checkAPIVersion(method, versioned.APIVersion)
}

func (c *Client) checkAPIVersion(method, apiVersion string) error {
	if apiVersion == "" {
		return nil
	}
	v, err := semver.NewVersion(apiVersion)
	if err != nil {
		return fmt.Errorf("%w: %q: %w", ErrUnsupportedAPIVersion, apiVersion, err)
	}
	if !supportedAPIVersions.Check(v) {
		return fmt.Errorf("%w: %s, expected %s", ErrUnsupportedAPIVersion, v, SupportedAPIVersions)
	}
	c.logger.Debug().
		Str(logging.FieldRpcMethod, method).
		Stringer(logging.FieldApiVersion, v).
		Msg("Node replied")
	return nil
}

func (c *Client) PutDeploy(ctx context.Context, d *deploy.Deploy) (*client.PutDeployResult, error) {
	params := map[string]any{"deploy": d}
	var res client.PutDeployResult
	if err := c.callInto(ctx, Account_putDeploy, params, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) GetDeploy(ctx context.Context, hash common.Hash, finalizedApprovals bool) (*client.GetDeployResult, error) {
	params := map[string]any{"deploy_hash": hash, "finalized_approvals": finalizedApprovals}
	var res client.GetDeployResult
	if err := c.callInto(ctx, Info_getDeploy, params, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) GetStatus(ctx context.Context) (*client.NodeStatus, error) {
	var res client.NodeStatus
	if err := c.callInto(ctx, Info_getStatus, nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) GetBlock(ctx context.Context, id client.BlockIdentifier) (*client.GetBlockResult, error) {
	var res client.GetBlockResult
	if err := c.callInto(ctx, Chain_getBlock, id.Params(), &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) GetChainspec(ctx context.Context) (*client.GetChainspecResult, error) {
	var res client.GetChainspecResult
	if err := c.callInto(ctx, Info_getChainspec, nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// QueryGlobalState reads the value under key, descending along path into
// named keys and fields.
func (c *Client) QueryGlobalState(
	ctx context.Context, state client.GlobalStateIdentifier, key types.Key, path []string,
) (*client.QueryGlobalStateResult, error) {
	if err := state.Validate(); err != nil {
		return nil, err
	}
	if path == nil {
		path = []string{}
	}
	params := map[string]any{"state_identifier": state, "key": key.String(), "path": path}
	var res client.QueryGlobalStateResult
	if err := c.callInto(ctx, Query_globalState, params, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) GetAuctionInfo(ctx context.Context, id client.BlockIdentifier) (*client.GetAuctionInfoResult, error) {
	var res client.GetAuctionInfoResult
	if err := c.callInto(ctx, State_getAuctionInfo, id.Params(), &res); err != nil {
		return nil, err
	}
	return &res, nil
}
