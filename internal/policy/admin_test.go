package policy_test

import (
	"encoding/json"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/campuschain/access-layer/internal/mocks"
	"github.com/campuschain/access-layer/internal/policy"
)

func TestAdminPolicyLoader_Load(t *testing.T) {
	tests := []struct {
		name         string
		setupMocks   func(*mocks.MockFileSystem, *mocks.MockJSON)
		expectedErr  string // Error message to assert, empty means no error expected
		validateFunc func(t *testing.T, p policy.AdminPolicy)
	}{
		{
			name: "successful load with valid JSON",
			setupMocks: func(mockFS *mocks.MockFileSystem, mockJSON *mocks.MockJSON) {
				mockFS.
					EXPECT().
					ReadFile("admins.json").
					Return([]byte(`{
					"version": 1,
					"admins": [
						"0xAb5801a7D398351b8bE11C439e05C5B3259aeC9B",
						"0x220866B1A2219f40e72f5c628B65D54268cA3A9D"
					]
				}`), nil)
				mockJSON.
					EXPECT().
					Unmarshal(gomock.Any(), gomock.Any()).
					DoAndReturn(func(data []byte, v interface{}) error {
						return json.Unmarshal(data, v)
					})
			},
			expectedErr: "",
			validateFunc: func(t *testing.T, p policy.AdminPolicy) {
				assert.NotNil(t, p)
				assert.True(t, p.IsAdmin("0xAb5801a7D398351b8bE11C439e05C5B3259aeC9B"))
				assert.True(t, p.IsAdmin("0x220866B1A2219f40e72f5c628B65D54268cA3A9D"))
				assert.False(t, p.IsAdmin("0x00000000219ab540356cBB839Cbe05303d7705Fa"))
			},
		},
		{
			name: "successful load with empty admin list",
			setupMocks: func(mockFS *mocks.MockFileSystem, mockJSON *mocks.MockJSON) {
				mockFS.
					EXPECT().
					ReadFile("admins.json").
					Return([]byte(`{"version": 1, "admins": []}`), nil)
				mockJSON.
					EXPECT().
					Unmarshal(gomock.Any(), gomock.Any()).
					DoAndReturn(func(data []byte, v interface{}) error {
						return json.Unmarshal(data, v)
					})
			},
			expectedErr: "",
			validateFunc: func(t *testing.T, p policy.AdminPolicy) {
				assert.NotNil(t, p)
				assert.False(t, p.IsAdmin("0xAb5801a7D398351b8bE11C439e05C5B3259aeC9B"))
			},
		},
		{
			name: "file read error",
			setupMocks: func(mockFS *mocks.MockFileSystem, mockJSON *mocks.MockJSON) {
				mockFS.
					EXPECT().
					ReadFile("admins.json").
					Return(nil, assert.AnError)
			},
			expectedErr: "failed to read admin policy file",
		},
		{
			name: "JSON parse error",
			setupMocks: func(mockFS *mocks.MockFileSystem, mockJSON *mocks.MockJSON) {
				policyJSON := []byte(`invalid json`)
				mockFS.
					EXPECT().
					ReadFile("admins.json").
					Return(policyJSON, nil)
				mockJSON.
					EXPECT().
					Unmarshal(policyJSON, gomock.Any()).
					Return(assert.AnError)
			},
			expectedErr: "failed to parse admin policy JSON",
		},
		{
			name: "invalid admin address",
			setupMocks: func(mockFS *mocks.MockFileSystem, mockJSON *mocks.MockJSON) {
				mockFS.
					EXPECT().
					ReadFile("admins.json").
					Return([]byte(`{"version": 1, "admins": ["not-an-address"]}`), nil)
				mockJSON.
					EXPECT().
					Unmarshal(gomock.Any(), gomock.Any()).
					DoAndReturn(func(data []byte, v interface{}) error {
						return json.Unmarshal(data, v)
					})
			},
			expectedErr: "invalid admin address: not-an-address",
		},
		{
			name: "case insensitive lookup",
			setupMocks: func(mockFS *mocks.MockFileSystem, mockJSON *mocks.MockJSON) {
				mockFS.
					EXPECT().
					ReadFile("admins.json").
					Return([]byte(`{
					"version": 1,
					"admins": ["0xAB5801A7D398351B8BE11C439E05C5B3259AEC9B"]
				}`), nil)
				mockJSON.
					EXPECT().
					Unmarshal(gomock.Any(), gomock.Any()).
					DoAndReturn(func(data []byte, v interface{}) error {
						return json.Unmarshal(data, v)
					})
			},
			expectedErr: "",
			validateFunc: func(t *testing.T, p policy.AdminPolicy) {
				assert.True(t, p.IsAdmin("0xab5801a7d398351b8be11c439e05c5b3259aec9b"))
				assert.True(t, p.IsAdmin("0xAb5801a7D398351b8bE11C439e05C5B3259aeC9B"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockFS := mocks.NewMockFileSystem(ctrl)
			mockJSON := mocks.NewMockJSON(ctrl)

			if tt.setupMocks != nil {
				tt.setupMocks(mockFS, mockJSON)
			}

			loader := policy.NewAdminPolicyLoader(mockFS, mockJSON)
			p, err := loader.Load("admins.json")

			if tt.expectedErr != "" {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedErr)
				assert.Nil(t, p)
			} else {
				assert.NoError(t, err)
				if tt.validateFunc != nil {
					tt.validateFunc(t, p)
				}
			}
		})
	}
}

func TestNewStaticAdminPolicy(t *testing.T) {
	p := policy.NewStaticAdminPolicy([]string{"0xAb5801a7D398351b8bE11C439e05C5B3259aeC9B"})

	assert.True(t, p.IsAdmin("0xab5801a7d398351b8be11c439e05c5b3259aec9b"))
	assert.False(t, p.IsAdmin("0x00000000219ab540356cBB839Cbe05303d7705Fa"))

	empty := policy.NewStaticAdminPolicy(nil)
	assert.False(t, empty.IsAdmin("0xAb5801a7D398351b8bE11C439e05C5B3259aeC9B"))
}
