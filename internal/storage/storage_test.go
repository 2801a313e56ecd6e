package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSaveAndDelete(t *testing.T) {
	store, err := New(t.TempDir(), "https://festiloc.fr/")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	key, err := store.Save("products", "chaise-napoleon.JPG", strings.NewReader("image-bytes"))
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if !strings.HasPrefix(key, "products/") {
		t.Errorf("key %q must start with the folder", key)
	}
	if !strings.HasSuffix(key, ".jpg") {
		t.Errorf("key %q must carry the lowercased extension", key)
	}

	data, err := os.ReadFile(filepath.Join(store.Root(), filepath.FromSlash(key)))
	if err != nil {
		t.Fatalf("stored object unreadable: %v", err)
	}
	if string(data) != "image-bytes" {
		t.Errorf("stored content = %q", data)
	}

	if err := store.Delete(key); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	// A second delete of the same key is a no-op.
	if err := store.Delete(key); err != nil {
		t.Errorf("deleting a missing object must not fail: %v", err)
	}
}

func TestPublicURL(t *testing.T) {
	store, err := New(t.TempDir(), "https://festiloc.fr/")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	got := store.PublicURL("products/abc.jpg")
	if got != "https://festiloc.fr/media/products/abc.jpg" {
		t.Errorf("PublicURL = %q", got)
	}
}

func TestSanitizeFolder(t *testing.T) {
	cases := map[string]string{
		"products":        "products",
		"realisations":    "realisations",
		"../../etc":       "etc", // traversal collapses at the root
		"a/b":             "misc",
		"":                "misc",
		"/products/":      "products",
	}
	for input, want := range cases {
		if got := sanitizeFolder(input); got != want {
			t.Errorf("sanitizeFolder(%q) = %q, want %q", input, got, want)
		}
	}
}
