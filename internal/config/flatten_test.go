package config

import (
	"reflect"
	"testing"
)

func TestFlattenUnflattenRoundTrip(t *testing.T) {
	nested := map[string]any{
		"data_dir": "/tmp/qb",
		"llm": map[string]any{
			"provider": "ollama",
			"model":    "llama3",
		},
	}

	flat := Flatten(nested)
	if flat["llm.provider"] != "ollama" {
		t.Errorf("expected llm.provider=ollama, got %v", flat["llm.provider"])
	}
	if flat["data_dir"] != "/tmp/qb" {
		t.Errorf("expected data_dir=/tmp/qb, got %v", flat["data_dir"])
	}

	back := Unflatten(flat)
	if !reflect.DeepEqual(back, nested) {
		t.Errorf("round trip mismatch:\n%v\n%v", back, nested)
	}
}

func TestMaskSecrets(t *testing.T) {
	flat := map[string]any{
		"llm.api_key":    "sk-verysecret",
		"telegram.token": "ab",
		"llm.model":      "llama3",
	}
	masked := MaskSecrets(flat)
	if masked["llm.api_key"] != "***cret" {
		t.Errorf("expected masked api key, got %v", masked["llm.api_key"])
	}
	if masked["telegram.token"] != "***ab" {
		t.Errorf("expected short token masked whole, got %v", masked["telegram.token"])
	}
	if masked["llm.model"] != "llama3" {
		t.Errorf("non-secret value should pass through, got %v", masked["llm.model"])
	}
}

func TestIsSecretKey(t *testing.T) {
	if !IsSecretKey("llm.api_key") {
		t.Error("llm.api_key should be secret")
	}
	if IsSecretKey("llm.model") {
		t.Error("llm.model should not be secret")
	}
}
