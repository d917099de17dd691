package config

import "testing"

func TestParseAdminEmails_Single(t *testing.T) {
	emails := parseAdminEmails("admin@gmail.com")
	if len(emails) != 1 || emails[0] != "admin@gmail.com" {
		t.Errorf("parseAdminEmails() = %v, want [admin@gmail.com]", emails)
	}
}

func TestParseAdminEmails_NormalizesCaseAndWhitespace(t *testing.T) {
	emails := parseAdminEmails(" Admin@Gmail.com , SECOND@example.COM ")
	if len(emails) != 2 {
		t.Fatalf("parseAdminEmails() = %v, want 2 entries", emails)
	}
	if emails[0] != "admin@gmail.com" || emails[1] != "second@example.com" {
		t.Errorf("parseAdminEmails() = %v, want lowercased trimmed entries", emails)
	}
}

func TestParseAdminEmails_DropsEmptyEntries(t *testing.T) {
	emails := parseAdminEmails("admin@gmail.com,, ,")
	if len(emails) != 1 {
		t.Errorf("parseAdminEmails() = %v, want 1 entry", emails)
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	if cfg.JWTExpiry.Hours() != 24 {
		t.Errorf("JWTExpiry = %v, want 24h", cfg.JWTExpiry)
	}
	if len(cfg.AdminEmails) == 0 {
		t.Error("AdminEmails should default to a non-empty allow-list")
	}
}
