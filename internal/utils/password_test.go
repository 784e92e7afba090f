package utils

import "testing"

func TestHashPasswordSaltsEachCall(t *testing.T) {
	first, err := HashPassword("password123")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	second, err := HashPassword("password123")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if first == second {
		t.Error("equal plaintexts produced equal hashes; salt missing")
	}
	if first == "password123" {
		t.Error("hash stored the plaintext")
	}
}

func TestCheckPassword(t *testing.T) {
	hash, err := HashPassword("password123")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if !CheckPassword(hash, "password123") {
		t.Error("correct password rejected")
	}
	if CheckPassword(hash, "password124") {
		t.Error("wrong password accepted")
	}
	if CheckPassword("not-a-hash", "password123") {
		t.Error("garbage hash accepted")
	}
}
