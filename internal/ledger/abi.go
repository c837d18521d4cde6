package ledger

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// campusABI is the fixed interface of the deployed campus access contract.
// The contract itself is an external collaborator; only this surface is
// consumed. Unit indexes are 1-based on this interface.
const campusABI = `[
	{"inputs":[{"name":"entityTokenId","type":"uint256"}],"name":"enroll","outputs":[],"stateMutability":"nonpayable","type":"function"},
	{"inputs":[{"name":"account","type":"address"},{"name":"entityTokenId","type":"uint256"}],"name":"isEnrolled","outputs":[{"name":"","type":"bool"}],"stateMutability":"view","type":"function"},
	{"inputs":[{"name":"entityTokenId","type":"uint256"},{"name":"unitIndex","type":"uint8"}],"name":"completeModule","outputs":[],"stateMutability":"nonpayable","type":"function"},
	{"inputs":[{"name":"account","type":"address"},{"name":"entityTokenId","type":"uint256"},{"name":"unitIndex","type":"uint8"}],"name":"isModuleCompleted","outputs":[{"name":"","type":"bool"}],"stateMutability":"view","type":"function"},
	{"inputs":[{"name":"account","type":"address"},{"name":"entityTokenId","type":"uint256"}],"name":"getModulesCompleted","outputs":[{"name":"","type":"uint256"}],"stateMutability":"view","type":"function"},
	{"inputs":[{"name":"contestId","type":"uint256"},{"name":"metadataURI","type":"string"}],"name":"submitEntry","outputs":[{"name":"","type":"bytes32"}],"stateMutability":"nonpayable","type":"function"},
	{"inputs":[{"name":"submissionId","type":"bytes32"}],"name":"vote","outputs":[],"stateMutability":"nonpayable","type":"function"},
	{"inputs":[{"name":"submissionId","type":"bytes32"}],"name":"removeVote","outputs":[],"stateMutability":"nonpayable","type":"function"},
	{"inputs":[{"name":"contestId","type":"uint256"},{"name":"account","type":"address"}],"name":"getUserSubmission","outputs":[{"name":"","type":"bytes32"}],"stateMutability":"view","type":"function"},
	{"inputs":[{"name":"contestId","type":"uint256"},{"name":"account","type":"address"}],"name":"getUserVoteInContest","outputs":[{"name":"","type":"bytes32"}],"stateMutability":"view","type":"function"},
	{"inputs":[{"name":"contestId","type":"uint256"},{"name":"account","type":"address"}],"name":"computeSubmissionId","outputs":[{"name":"","type":"bytes32"}],"stateMutability":"pure","type":"function"}
]`

// parseABI parses the campus contract ABI
func parseABI() (abi.ABI, error) {
	parsed, err := abi.JSON(strings.NewReader(campusABI))
	if err != nil {
		return abi.ABI{}, fmt.Errorf("failed to parse campus contract ABI: %w", err)
	}
	return parsed, nil
}
