package auth

import "testing"

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("s3cret", 4)
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if hash == "s3cret" {
		t.Error("HashPassword() returned the plaintext")
	}
	if !CheckPassword(hash, "s3cret") {
		t.Error("CheckPassword() = false for the correct password")
	}
	if CheckPassword(hash, "wrong") {
		t.Error("CheckPassword() = true for a wrong password")
	}
}

func TestCheckPassword_MalformedHashFailsClosed(t *testing.T) {
	for _, hash := range []string{"", "not-a-bcrypt-hash", "$2a$xx$garbage"} {
		if CheckPassword(hash, "anything") {
			t.Errorf("CheckPassword(%q) = true, want false", hash)
		}
	}
}

func TestHashPassword_DistinctSalts(t *testing.T) {
	h1, err := HashPassword("same", 4)
	if err != nil {
		t.Fatal(err)
	}
	h2, err := HashPassword("same", 4)
	if err != nil {
		t.Fatal(err)
	}
	if h1 == h2 {
		t.Error("two hashes of the same password are identical, salt missing")
	}
}
