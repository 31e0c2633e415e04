// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"context"
	"testing"
)

func TestContextKeyString(t *testing.T) {
	key := contextKey("testKey")
	if key.String() != "testKey" {
		t.Errorf("expected 'testKey', got '%s'", key.String())
	}
}

func TestGetUserIDFromContext_Success(t *testing.T) {
	ctx := WithUserID(context.Background(), "user-42")

	userID, ok := GetUserIDFromContext(ctx)

	if !ok {
		t.Fatal("expected ok=true, got false")
	}
	if userID != "user-42" {
		t.Errorf("expected userID=user-42, got %s", userID)
	}
}

func TestGetUserIDFromContext_Rejected(t *testing.T) {
	tests := []struct {
		name string
		ctx  context.Context
	}{
		{"missing", context.Background()},
		{"empty", WithUserID(context.Background(), "")},
		{"wrong type", context.WithValue(context.Background(), UserIDCtxKey, int64(42))},
		{"different key", context.WithValue(context.Background(), contextKey("otherKey"), "user-42")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userID, ok := GetUserIDFromContext(tt.ctx)
			if ok {
				t.Fatal("expected ok=false, got true")
			}
			if userID != "" {
				t.Errorf("expected empty userID, got %q", userID)
			}
		})
	}
}
