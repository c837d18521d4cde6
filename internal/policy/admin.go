package policy

import (
	"fmt"
	"strings"

	"github.com/campuschain/access-layer/internal/adapter"
	"github.com/campuschain/access-layer/internal/domain"
)

// AdminPolicy answers whether an address holds platform admin rights.
// Constructed once at startup and injected into every consumer; there is
// deliberately no other source of admin addresses in the codebase.
//
//go:generate mockgen -source=admin.go -destination=../mocks/admin_policy.go -package=mocks -mock_names=AdminPolicy=MockAdminPolicy
type AdminPolicy interface {
	// IsAdmin reports whether the address is an admin
	IsAdmin(address string) bool
}

// adminPolicyData is the on-disk format: {"version": 1, "admins": ["0x..."]}
type adminPolicyData struct {
	Version int      `json:"version"`
	Admins  []string `json:"admins"`
}

type adminPolicy struct {
	admins map[string]struct{}
}

// AdminPolicyLoader loads the admin allowlist from a JSON file
//
//go:generate mockgen -source=admin.go -destination=../mocks/admin_policy.go -package=mocks -mock_names=AdminPolicyLoader=MockAdminPolicyLoader
type AdminPolicyLoader interface {
	// Load loads the admin policy from a JSON file
	Load(filePath string) (AdminPolicy, error)
}

type adminPolicyLoader struct {
	fs   adapter.FileSystem
	json adapter.JSON
}

// NewAdminPolicyLoader creates a new AdminPolicyLoader with injected dependencies
func NewAdminPolicyLoader(fs adapter.FileSystem, json adapter.JSON) AdminPolicyLoader {
	return &adminPolicyLoader{fs: fs, json: json}
}

// Load loads the admin policy from a JSON file
func (l *adminPolicyLoader) Load(filePath string) (AdminPolicy, error) {
	data, err := l.fs.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read admin policy file: %w", err)
	}

	var policyData adminPolicyData
	if err := l.json.Unmarshal(data, &policyData); err != nil {
		return nil, fmt.Errorf("failed to parse admin policy JSON: %w", err)
	}

	admins := make(map[string]struct{}, len(policyData.Admins))
	for _, addr := range policyData.Admins {
		if !domain.IsValidAddress(addr) {
			return nil, fmt.Errorf("invalid admin address: %s", addr)
		}
		admins[strings.ToLower(addr)] = struct{}{}
	}

	return &adminPolicy{admins: admins}, nil
}

// NewStaticAdminPolicy builds a policy from an in-memory list; used for
// tests and for deployments without a policy file.
func NewStaticAdminPolicy(addresses []string) AdminPolicy {
	admins := make(map[string]struct{}, len(addresses))
	for _, addr := range addresses {
		admins[strings.ToLower(addr)] = struct{}{}
	}
	return &adminPolicy{admins: admins}
}

// IsAdmin reports whether the address is an admin
func (p *adminPolicy) IsAdmin(address string) bool {
	if p == nil {
		return false
	}
	_, ok := p.admins[strings.ToLower(address)]
	return ok
}
