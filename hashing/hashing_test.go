package hashing

import (
	"encoding/hex"
	"testing"
)

func TestDefaultAlgorithm(t *testing.T) {
	expected := "sha256"
	actual := DefaultAlgorithm()
	if actual != expected {
		t.Errorf("Expected default algorithm %s, but got %s", expected, actual)
	}
}

func TestGetHasher(t *testing.T) {
	for _, name := range Algorithms() {
		hasher := GetHasher(name)
		if hasher == nil {
			t.Fatalf("Expected %s hasher, but got nil", name)
		}
		if hasher.Size() != 32 {
			t.Errorf("Expected 32 byte sums from %s, got %d", name, hasher.Size())
		}
	}

	if hasher := GetHasher("unknown"); hasher != nil {
		t.Error("Expected nil for unknown algorithm, but got non-nil")
	}
}

func TestSha256Vector(t *testing.T) {
	hasher := GetHasher("sha256")
	hasher.Write([]byte("abc"))
	got := hex.EncodeToString(hasher.Sum(nil))
	expected := "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"
	if got != expected {
		t.Errorf("Expected %s, got %s", expected, got)
	}
}
