package openapi

import (
	"context"
	"encoding/json"
	"testing"
)

func TestEmbeddedDocumentIsValid(t *testing.T) {
	doc, err := Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	for _, path := range []string{"/analyze", "/analyze-text", "/chat", "/chat/health", "/health", "/news"} {
		if doc.Paths.Find(path) == nil {
			t.Fatalf("path %s missing from document", path)
		}
	}
}

func TestJSONRendersDocument(t *testing.T) {
	raw, err := JSON(context.Background())
	if err != nil {
		t.Fatalf("json: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded["openapi"] != "3.0.3" {
		t.Fatalf("unexpected openapi version: %v", decoded["openapi"])
	}
}
