package models

import (
	"strings"
	"testing"
)

func TestUser_BeforeCreate_UsernameLength(t *testing.T) {
	tests := []struct {
		name     string
		username string
		wantErr  bool
	}{
		{
			name:     "Minimum length",
			username: "bob",
			wantErr:  false,
		},
		{
			name:     "Normal username",
			username: "nikita",
			wantErr:  false,
		},
		{
			name:     "Maximum length",
			username: strings.Repeat("a", UsernameMaxLength),
			wantErr:  false,
		},
		{
			name:     "Too short",
			username: "ab",
			wantErr:  true,
		},
		{
			name:     "Too long",
			username: strings.Repeat("a", UsernameMaxLength+1),
			wantErr:  true,
		},
		{
			name:     "Empty",
			username: "",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user := &User{
				Username:     tt.username,
				PasswordHash: "hash",
			}

			err := user.BeforeCreate(nil)
			if (err != nil) != tt.wantErr {
				t.Errorf("BeforeCreate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestUser_BeforeCreate_AboutLength(t *testing.T) {
	user := &User{
		Username:     "nikita",
		PasswordHash: "hash",
		About:        strings.Repeat("a", AboutMaxLength+1),
	}

	if err := user.BeforeCreate(nil); err == nil {
		t.Error("BeforeCreate() expected error for overlong about text")
	}

	user.About = strings.Repeat("a", AboutMaxLength)
	if err := user.BeforeCreate(nil); err != nil {
		t.Errorf("BeforeCreate() error = %v for about text at the limit", err)
	}
}

func TestUser_HasAvatar(t *testing.T) {
	user := &User{Username: "nikita"}
	if user.HasAvatar() {
		t.Error("HasAvatar() = true for user without an uploaded avatar")
	}

	user.Image = "a1b2c3.png"
	if !user.HasAvatar() {
		t.Error("HasAvatar() = false for user with an uploaded avatar")
	}
}

func TestUser_TableName(t *testing.T) {
	user := User{}
	tableName := user.TableName()

	if tableName != "users" {
		t.Errorf("TableName() = %q, want %q", tableName, "users")
	}
}
