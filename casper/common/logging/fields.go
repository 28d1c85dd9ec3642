package logging

const (
	// FieldError can be used instead of Err(err) if you have only the error message string.
	FieldError = "err"

	FieldComponent = "component"

	FieldDuration = "duration"
	FieldUrl      = "url"
	FieldReqId    = "reqId"

	FieldRpcMethod     = "rpcMethod"
	FieldRpcParams     = "rpcParams"
	FieldRpcResult     = "rpcResult"
	FieldApiVersion    = "apiVersion"
	FieldClientVersion = "clientVersion"

	FieldDeployHash = "deployHash"
	FieldChainName  = "chainName"
	FieldAccount    = "account"
	FieldPublicKey  = "publicKey"
	FieldSignature  = "signature"
	FieldArgName    = "argName"
	FieldArgType    = "argType"
	FieldPath       = "path"
	FieldBlock      = "block"
	FieldKey        = "key"
)
