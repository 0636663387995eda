package auth

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestPasswordHasher_HashAndVerify(t *testing.T) {
	hasher := NewPasswordHasher(bcrypt.MinCost)

	hash, err := hasher.Hash("s3cret")
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	if !hasher.Verify("s3cret", hash) {
		t.Error("expected correct password to verify")
	}
	if hasher.Verify("wrong", hash) {
		t.Error("expected wrong password to fail verification")
	}
}

// The salt is generated per call, so hashing the same plaintext twice must
// not produce the same stored value.
func TestPasswordHasher_SaltPerCall(t *testing.T) {
	hasher := NewPasswordHasher(bcrypt.MinCost)

	first, err := hasher.Hash("s3cret")
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	second, err := hasher.Hash("s3cret")
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	if first == second {
		t.Error("expected distinct hashes for the same plaintext")
	}
	if !hasher.Verify("s3cret", first) || !hasher.Verify("s3cret", second) {
		t.Error("expected both hashes to verify")
	}
}

// A malformed stored hash is a verification failure, not an error.
func TestPasswordHasher_MalformedHash(t *testing.T) {
	hasher := NewPasswordHasher(bcrypt.MinCost)

	if hasher.Verify("s3cret", "not-a-bcrypt-hash") {
		t.Error("expected malformed hash to fail verification")
	}
	if hasher.Verify("s3cret", "") {
		t.Error("expected empty hash to fail verification")
	}
}

func TestNewPasswordHasher_CostFloor(t *testing.T) {
	hasher := NewPasswordHasher(0)
	if hasher.cost != DefaultBcryptCost {
		t.Errorf("expected cost %d for out-of-range input, got %d", DefaultBcryptCost, hasher.cost)
	}
}
