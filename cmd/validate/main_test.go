package main

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwebster45206/urea-quest/pkg/quest"
	"github.com/jwebster45206/urea-quest/pkg/world"
)

func writeQuest(t *testing.T, name string, mutate func(string) string) string {
	t.Helper()
	raw, err := os.ReadFile(filepath.Join("..", "..", "pkg", "quest", "data", "urea_cycle.yaml"))
	require.NoError(t, err)
	content := string(raw)
	if mutate != nil {
		content = mutate(content)
	}
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestValidateFile(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		mutate  func(string) string
		wantErr string
	}{
		{name: "built-in quest copy", file: "urea_cycle.yaml"},
		{name: "yml extension", file: "urea_cycle.yml"},
		{name: "wrong extension", file: "urea_cycle.json", wantErr: ".yaml extension"},
		{name: "not snake case", file: "UreaCycle.yaml", wantErr: "snake_case"},
		{
			name:    "unknown field",
			file:    "urea_cycle.yaml",
			mutate:  func(s string) string { return s + "\nbonus_round: true\n" },
			wantErr: "strict YAML",
		},
		{
			name:    "bad quest id",
			file:    "urea_cycle.yaml",
			mutate:  func(s string) string { return strings.Replace(s, "id: urea_cycle", "id: Urea-Cycle", 1) },
			wantErr: "quest ID 'Urea-Cycle'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &QuestValidator{}
			err := v.validateFile(writeQuest(t, tt.file, tt.mutate))
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateDefault(t *testing.T) {
	v := &QuestValidator{}
	assert.NoError(t, v.validateDefault())
}

func TestValidateCatalog_UnknownState(t *testing.T) {
	def := *quest.MustDefault()
	def.States = slices.DeleteFunc(slices.Clone(def.States), func(s quest.State) bool {
		return s == quest.MakeBicarbonate
	})

	v := &QuestValidator{}
	v.validateCatalog(&def, world.DefaultCatalog(nil))
	require.Len(t, v.errors, 1)
	assert.Contains(t, v.errors[0], "carbonic_shrine requires unknown state MAKE_BICARBONATE")
}

func TestIsValidID(t *testing.T) {
	assert.True(t, isValidID("urea_cycle"))
	assert.True(t, isValidID("atp_1"))
	assert.False(t, isValidID("atp-1"))
	assert.False(t, isValidID("_hidden"))
	assert.False(t, isValidID(""))
}
