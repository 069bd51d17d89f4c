package user

import (
	"errors"
	"fmt"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestPasswordHashing(t *testing.T) {
	pw := "supersecret"
	hash, err := HashPassword(pw)
	if err != nil {
		t.Fatalf("hash error: %v", err)
	}
	if hash == pw {
		t.Fatalf("hash must not equal the raw password")
	}
	if err := CheckPassword(hash, pw); err != nil {
		t.Errorf("check should succeed: %v", err)
	}
	if err := CheckPassword(hash, "wrongpw"); err == nil {
		t.Errorf("expected failure for wrong password")
	}
}

func TestPasswordHashing_SaltedPerCall(t *testing.T) {
	h1, err := HashPassword("same")
	if err != nil {
		t.Fatalf("hash error: %v", err)
	}
	h2, err := HashPassword("same")
	if err != nil {
		t.Fatalf("hash error: %v", err)
	}
	if h1 == h2 {
		t.Errorf("two hashes of the same password should differ")
	}
}

func TestCheckPassword_MalformedHash(t *testing.T) {
	if err := CheckPassword("not-a-bcrypt-hash", "anything"); err == nil {
		t.Errorf("malformed stored hash should fail verification")
	}
}

func setupStore(t *testing.T) *Store {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&User{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return NewStore(db)
}

func TestStore_CreateAndFind(t *testing.T) {
	store := setupStore(t)

	created, err := store.Create("alice", "pw123")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	found, err := store.FindByUsername("alice")
	if err != nil {
		t.Fatalf("find by username failed: %v", err)
	}
	if found.ID != created.ID {
		t.Errorf("expected id %v, got %v", created.ID, found.ID)
	}
	if err := CheckPassword(found.PasswordHash, "pw123"); err != nil {
		t.Errorf("stored hash should verify against the raw password: %v", err)
	}
	if found.PasswordHash == "pw123" {
		t.Errorf("raw password must never be stored")
	}
	if found.IsAdmin {
		t.Errorf("new users must not be admins")
	}

	byID, err := store.FindByID(created.ID)
	if err != nil {
		t.Fatalf("find by id failed: %v", err)
	}
	if byID.Username != "alice" {
		t.Errorf("expected username alice, got %s", byID.Username)
	}
}

func TestStore_DuplicateUsername(t *testing.T) {
	store := setupStore(t)

	if _, err := store.Create("bob", "first"); err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	_, err := store.Create("bob", "second")
	if !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}

	var count int64
	if err := store.db.Model(&User{}).Where("username = ?", "bob").Count(&count).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 1 {
		t.Errorf("expected exactly one bob after conflict, got %d", count)
	}
	// First row must be intact.
	u, err := store.FindByUsername("bob")
	if err != nil {
		t.Fatalf("find after conflict failed: %v", err)
	}
	if err := CheckPassword(u.PasswordHash, "first"); err != nil {
		t.Errorf("conflict must not overwrite the existing user")
	}
}

func TestStore_FindMissing(t *testing.T) {
	store := setupStore(t)

	_, err := store.FindByUsername("nobody")
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("expected gorm.ErrRecordNotFound, got %v", err)
	}
}
