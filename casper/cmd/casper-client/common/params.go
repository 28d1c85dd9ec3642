package common

const DefaultNodeAddress = "http://localhost:7777"

var Quiet = false
