package auth

import "testing"

func TestHashAndVerifyPassword(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("longenough", 4)
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if hash == "longenough" {
		t.Fatal("hash must not equal the plaintext")
	}

	if !VerifyPassword(hash, "longenough") {
		t.Error("expected matching password to verify")
	}
	if VerifyPassword(hash, "otherpassword") {
		t.Error("expected mismatched password to fail verification")
	}
}

func TestVerifyPassword_MalformedHash(t *testing.T) {
	t.Parallel()

	if VerifyPassword("not-a-bcrypt-hash", "whatever") {
		t.Error("malformed hash must verify as false, not panic or pass")
	}
}

func TestHashPassword_DistinctSalts(t *testing.T) {
	t.Parallel()

	h1, err := HashPassword("longenough", 4)
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	h2, err := HashPassword("longenough", 4)
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if h1 == h2 {
		t.Error("two hashes of the same password should differ by salt")
	}
}
