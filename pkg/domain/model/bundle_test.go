package model_test

import (
	"strings"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/kforge/pkg/domain/model"
)

func TestRunnerClassName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"Plain name", "X", "XTestRunner"},
		{"Hyphens stripped", "pet-store", "petstoreTestRunner"},
		{"Spaces stripped", "My API", "MyAPITestRunner"},
		{"Mixed", "my-cool API", "mycoolAPITestRunner"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gt.V(t, model.RunnerClassName(tt.in)).Equal(tt.want)
		})
	}
}

func TestFallbackBundle(t *testing.T) {
	bundle := model.FallbackBundle("pet-store")

	gt.V(t, bundle.IsComplete()).Equal(true)
	gt.V(t, len(bundle.Features)).Equal(1)

	if !strings.Contains(bundle.Runner, "public class petstoreTestRunner") {
		t.Errorf("Runner does not embed class name: %s", bundle.Runner)
	}
	if !strings.Contains(bundle.Config, "karate.env") {
		t.Error("Config does not select by environment")
	}
	if !strings.Contains(bundle.Features["sample.feature"], "Scenario: Sample GET request") {
		t.Error("Sample feature missing scenario")
	}
}

func TestFallbackBundle_Idempotent(t *testing.T) {
	a := model.FallbackBundle("same-name")
	b := model.FallbackBundle("same-name")

	gt.V(t, a.Config).Equal(b.Config)
	gt.V(t, a.Runner).Equal(b.Runner)
	gt.V(t, a.Features).Equal(b.Features)
}

func TestBundleIsComplete(t *testing.T) {
	tests := []struct {
		name   string
		bundle model.Bundle
		want   bool
	}{
		{
			name: "Complete",
			bundle: model.Bundle{
				Config:   "cfg",
				Runner:   "runner",
				Features: map[string]string{"a.feature": "A"},
			},
			want: true,
		},
		{
			name: "Missing config",
			bundle: model.Bundle{
				Runner:   "runner",
				Features: map[string]string{"a.feature": "A"},
			},
			want: false,
		},
		{
			name: "Missing runner",
			bundle: model.Bundle{
				Config:   "cfg",
				Features: map[string]string{"a.feature": "A"},
			},
			want: false,
		},
		{
			name: "No features",
			bundle: model.Bundle{
				Config: "cfg",
				Runner: "runner",
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gt.V(t, tt.bundle.IsComplete()).Equal(tt.want)
		})
	}
}
