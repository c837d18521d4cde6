package ledger

// ParseABI exposes parseABI to the external test package.
var ParseABI = parseABI
