package domain

const (
	// Blockchain constants
	ETHEREUM_ZERO_ADDRESS = "0x0000000000000000000000000000000000000000"
	ZERO_BYTES32          = "0x0000000000000000000000000000000000000000000000000000000000000000"
)
