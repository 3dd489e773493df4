package auth

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestVerifyPlainSecret(t *testing.T) {
	m := NewMaster("morango2024")

	if !m.Verify("morango2024") {
		t.Error("correct password should verify")
	}
	if m.Verify("morango2023") {
		t.Error("wrong password should not verify")
	}
	if m.Verify("") {
		t.Error("empty password should not verify")
	}
}

func TestVerifyBcryptSecret(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("morango2024"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("generate hash: %v", err)
	}

	m := NewMaster(string(hash))

	if !m.Verify("morango2024") {
		t.Error("correct password should verify against hash")
	}
	if m.Verify("morango2023") {
		t.Error("wrong password should not verify against hash")
	}
}

func TestVerifyEmptySecret(t *testing.T) {
	m := NewMaster("")

	if m.Verify("") {
		t.Error("empty secret must never match, even an empty password")
	}
	if m.Verify("anything") {
		t.Error("empty secret must never match")
	}
}
