package utils

import "testing"

func TestGenerateID(t *testing.T) {
	id, err := GenerateID(16)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(id) != 32 {
		t.Fatalf("16 random bytes should hex-encode to 32 chars, got %d", len(id))
	}

	other, err := GenerateID(16)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if id == other {
		t.Fatal("two generated ids collided")
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "correct horse battery staple" {
		t.Fatal("password stored in the clear")
	}
	if err := CheckPassword(hash, "correct horse battery staple"); err != nil {
		t.Fatalf("correct password rejected: %v", err)
	}
	if err := CheckPassword(hash, "wrong"); err == nil {
		t.Fatal("wrong password accepted")
	}
}
